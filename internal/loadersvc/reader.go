package loadersvc

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mohamedhayballa22/job-ingestion-pipeline/internal/model"
)

// dataFilePath returns the scraper-written path for a job's result file.
func dataFilePath(dataDir, jobID string) string {
	return filepath.Join(dataDir, jobID+"_jobs.json")
}

// readListingsFile reads and decodes {job_id}_jobs.json. A missing file or a
// body that isn't a JSON array is a pipeline failure (SPEC_FULL.md §4.3
// step 1). Any decode error is reported as "not a JSON array"; any other read
// error is returned unchanged for the caller to classify.
func readListingsFile(dataDir, jobID string) ([]model.JobListing, error) {
	path := dataFilePath(dataDir, jobID)
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("data file not found: %s", path)
		}
		return nil, err
	}

	var listings []model.JobListing
	if err := json.Unmarshal(raw, &listings); err != nil {
		return nil, fmt.Errorf("data file is not a JSON array: %w", err)
	}
	return listings, nil
}

// deleteListingsFile removes the job's data file once the loader is done
// with it (SPEC_FULL.md §4.3 step 10).
func deleteListingsFile(dataDir, jobID string) error {
	return os.Remove(dataFilePath(dataDir, jobID))
}
