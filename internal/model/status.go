package model

import "time"

// Gateway-facing status values recorded in the status map.
const (
	StatusRequested   = "requested"
	StatusRunning     = "RUNNING"
	StatusLoadingData = "LOADING DATA"
	StatusComplete    = "COMPLETE"
	StatusFailed      = "FAILED"
)

// StatusEntry is the gateway's in-memory record for one job_id. It is never
// evicted within a process lifetime (documented limitation, see SPEC_FULL.md
// §9).
type StatusEntry struct {
	Status        string    `json:"status"`
	Stage         string    `json:"stage,omitempty"`
	Percentage    float64   `json:"percentage"`
	LastEventType string    `json:"last_event_type,omitempty"`
	Source        string    `json:"source,omitempty"`
	RequestedAt   time.Time `json:"requested_at"`
	LastUpdate    time.Time `json:"last_update"`
	EventTimestamp float64  `json:"event_timestamp,omitempty"`
	ErrorDetails  string    `json:"error_details,omitempty"`
	Details       string    `json:"details,omitempty"`
}

// Terminal reports whether the entry has reached a status that should no
// longer regress (used to document, not enforce, the monotone-terminality
// invariant described in SPEC_FULL.md §3).
func (s StatusEntry) Terminal() bool {
	return s.Status == StatusComplete || s.Status == StatusFailed
}

// BroadcastPayload is the snapshot-minus-nulls shape sent over the push
// channel for a single status_update message (P7).
type BroadcastPayload struct {
	Status        string  `json:"status,omitempty"`
	Stage         string  `json:"stage,omitempty"`
	Percentage    *float64 `json:"percentage,omitempty"`
	ErrorDetails  string  `json:"error_details,omitempty"`
	LastUpdate    string  `json:"last_update,omitempty"`
	LastEventType string  `json:"last_event_type,omitempty"`
}

// ToBroadcastPayload projects a StatusEntry into the wire shape broadcast to
// push-channel clients.
func (s StatusEntry) ToBroadcastPayload() BroadcastPayload {
	pct := s.Percentage
	return BroadcastPayload{
		Status:        s.Status,
		Stage:         s.Stage,
		Percentage:    &pct,
		ErrorDetails:  s.ErrorDetails,
		LastUpdate:    s.LastUpdate.UTC().Format(time.RFC3339Nano),
		LastEventType: s.LastEventType,
	}
}
