package model

import "time"

// Event types carried on the four broker topics. The string values are the
// wire representation and must match across gateway, scraper and loader.
const (
	EventJobRequested    = "job_requested"
	EventJobStarted      = "job_started"
	EventJobProgress     = "job_progress"
	EventLoadingRequested = "loading_requested"
	EventLoadingProgress = "loading_progress"
	EventLoadingComplete = "loading_complete"
	EventJobFailed       = "job_failed"
	EventSystemWarning   = "system_warning"
)

// Producer/source roles.
const (
	SourceGateway = "gateway"
	SourceScraper = "scraper"
	SourceLoader  = "loader"
)

// Topic names forming the broker contract (see SPEC_FULL.md §6).
const (
	TopicScrapingJobs      = "scraping-jobs"
	TopicJobStatusUpdates  = "job-status-updates"
	TopicDataProcessing    = "data-processing"
	TopicSystemNotifications = "system-notifications"
)

// Consumer group IDs, one per topic/role pairing.
const (
	GroupScraper       = "scraper-group"
	GroupLoader        = "loader-group"
	GroupAPIStatusListener = "api_status_listener_group"
)

// JobEvent is the JSON envelope carried by every broker message. Mandatory
// fields are always set; the rest are populated per event type.
type JobEvent struct {
	JobID       string             `json:"job_id"`
	EventType   string             `json:"event_type"`
	Source      string             `json:"source"`
	Timestamp   float64            `json:"timestamp"`
	Parameters  *ScrapingParameters `json:"parameters,omitempty"`
	Percentage  *float64           `json:"percentage,omitempty"`
	Description string             `json:"description,omitempty"`
	ErrorDetails string            `json:"error_details,omitempty"`
	DataPath    string             `json:"data_path,omitempty"`
}

// NowTimestamp returns the current time as floating seconds since epoch,
// matching the original producer's timestamp format.
func NowTimestamp() float64 {
	return float64(time.Now().UnixNano()) / 1e9
}

// Pct is a small helper for building a *float64 percentage field inline.
func Pct(p float64) *float64 {
	return &p
}
