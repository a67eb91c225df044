package model

import (
	"errors"
	"strings"
)

// Allowed values for ScrapingParameters.TimeFilter.
const (
	TimeFilter24h = "24h"
	TimeFilter1w  = "1w"
	TimeFilter1m  = "1m"
)

// ScrapingParameters is carried in the initial job_requested payload and
// drives the scraper's search query construction.
type ScrapingParameters struct {
	GoogleAPIKey string `json:"google_api_key,omitempty"`
	JobTitles    string `json:"job_titles"`
	Location     string `json:"location"`
	TimeFilter   string `json:"time_filter,omitempty"`
	MaxJobs      int    `json:"max_jobs"`
}

// Titles splits the comma-delimited JobTitles field into a trimmed,
// non-empty list, matching P8's round-trip requirement.
func (p ScrapingParameters) Titles() []string {
	parts := strings.Split(p.JobTitles, ",")
	var titles []string
	for _, part := range parts {
		t := strings.TrimSpace(part)
		if t != "" {
			titles = append(titles, t)
		}
	}
	return titles
}

// Validate checks the invariants from SPEC_FULL.md §4.1 operation 1.
func (p ScrapingParameters) Validate() error {
	if len(p.Titles()) == 0 {
		return errors.New("job_titles must contain at least one non-empty title")
	}
	if strings.TrimSpace(p.Location) == "" {
		return errors.New("location must not be empty")
	}
	switch p.TimeFilter {
	case "", TimeFilter24h, TimeFilter1w, TimeFilter1m:
	default:
		return errors.New("time_filter must be one of 24h, 1w, 1m")
	}
	if p.MaxJobs <= 0 {
		return errors.New("max_jobs must be greater than zero")
	}
	return nil
}

// LLMEnabled reports whether skill extraction should run for this job.
func (p ScrapingParameters) LLMEnabled() bool {
	return strings.TrimSpace(p.GoogleAPIKey) != ""
}

// JobListing is one scraped job posting, written by the scraper and read by
// the loader from the per-job data file.
type JobListing struct {
	SearchQuery      string   `json:"search_query"`
	Title            string   `json:"title"`
	Company          string   `json:"company"`
	Location         string   `json:"location"`
	DatePosted       string   `json:"date_posted"`
	URL              string   `json:"url"`
	Description      string   `json:"description,omitempty"`
	ExtractedSkills  []string `json:"extracted_skills"`
}

// ValidForPersistence matches the loader's record-level validation in
// SPEC_FULL.md §4.3 step 6.
func (l JobListing) ValidForPersistence() bool {
	return strings.TrimSpace(l.Title) != "" &&
		strings.TrimSpace(l.Company) != "" &&
		strings.TrimSpace(l.Location) != ""
}

// IdempotencyKey returns the loader's duplicate discriminator.
func (l JobListing) IdempotencyKey() IdempotencyKey {
	return IdempotencyKey{
		Title:   strings.ToLower(strings.TrimSpace(l.Title)),
		Company: strings.ToLower(strings.TrimSpace(l.Company)),
	}
}

// IdempotencyKey is the (lower(title), lower(company_name)) pair the loader
// uses to suppress duplicate rows.
type IdempotencyKey struct {
	Title   string
	Company string
}
