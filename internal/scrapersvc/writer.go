package scrapersvc

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/mohamedhayballa22/job-ingestion-pipeline/internal/model"
)

// writeListingsFile writes listings as pretty-printed UTF-8 JSON to
// {dataDir}/{jobID}_jobs.json, creating the parent directory if needed
// (SPEC_FULL.md §4.2 step 5). listings is never nil — an empty scrape
// writes an empty JSON array, per scenario 5.
func writeListingsFile(dataDir, jobID string, listings []model.JobListing) (string, error) {
	if listings == nil {
		listings = []model.JobListing{}
	}

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(dataDir, jobID+"_jobs.json")
	data, err := json.MarshalIndent(listings, "", "  ")
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
