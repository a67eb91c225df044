// Package gatewaysvc implements the gateway's in-memory job state machine,
// its push-channel hub, HTTP handlers and the broker consumer that feeds
// both. Generalized from the teacher's controller/service/JobWorker idiom,
// grounded on the Python original's api/kafka_client.py
// consume_kafka_messages status-map update algorithm.
package gatewaysvc

import (
	"strings"
	"sync"
	"time"

	"github.com/mohamedhayballa22/job-ingestion-pipeline/internal/model"
)

// StatusMap is the gateway's single source of truth for per-job state,
// guarded by one RWMutex so that HTTP-handler reads and broker-goroutine
// writes are serialized (SPEC_FULL.md §5).
type StatusMap struct {
	mu      sync.RWMutex
	entries map[string]model.StatusEntry
}

// NewStatusMap creates an empty status map.
func NewStatusMap() *StatusMap {
	return &StatusMap{entries: make(map[string]model.StatusEntry)}
}

// Get returns a copy of the entry for jobID and whether it exists.
func (m *StatusMap) Get(jobID string) (model.StatusEntry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[jobID]
	return e, ok
}

// Snapshot returns a shallow copy of the whole map, safe to send to a newly
// connected push-channel client as initial_state.
func (m *StatusMap) Snapshot() map[string]model.StatusEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]model.StatusEntry, len(m.entries))
	for k, v := range m.entries {
		out[k] = v
	}
	return out
}

// CreateRequested records the status=requested entry created by
// POST /trigger-job-pipeline.
func (m *StatusMap) CreateRequested(jobID string) model.StatusEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	e := model.StatusEntry{
		Status:      model.StatusRequested,
		RequestedAt: now,
		LastUpdate:  now,
	}
	m.entries[jobID] = e
	return e
}

// ApplyEvent runs the status-map update algorithm of SPEC_FULL.md §4.1 for
// one received broker event. It returns the updated entry and whether the
// event type was recognized (unrecognized types are logged by the caller
// and leave state unchanged).
func (m *StatusMap) ApplyEvent(topic string, event model.JobEvent) (model.StatusEntry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, existed := m.entries[event.JobID]
	if !existed {
		entry = model.StatusEntry{RequestedAt: time.Now()}
	}

	recognized := true
	switch {
	case topic == model.TopicJobStatusUpdates && event.EventType == model.EventJobStarted:
		entry.Status = model.StatusRunning
		entry.Stage = strings.ToUpper(event.Source)
		entry.Percentage = 0.0
	case topic == model.TopicJobStatusUpdates && event.EventType == model.EventJobProgress:
		entry.Status = model.StatusRunning
		entry.Stage = strings.ToUpper(event.Source)
		if event.Percentage != nil {
			entry.Percentage = *event.Percentage
		}
		entry.Details = event.Description
	case topic == model.TopicJobStatusUpdates && event.EventType == model.EventLoadingProgress:
		entry.Status = model.StatusLoadingData
		entry.Stage = model.StatusLoadingData
		if event.Percentage != nil {
			entry.Percentage = *event.Percentage
		}
		entry.Details = event.Description
	case topic == model.TopicJobStatusUpdates && event.EventType == model.EventLoadingComplete:
		entry.Status = model.StatusComplete
		entry.Stage = model.StatusLoadingData
		entry.Percentage = 100.0
		entry.Details = event.Description
	case topic == model.TopicSystemNotifications && event.EventType == model.EventJobFailed:
		entry.Status = model.StatusFailed
		entry.Stage = strings.ToUpper(event.Source)
		entry.ErrorDetails = event.ErrorDetails
	default:
		recognized = false
	}

	if !recognized {
		return entry, false
	}

	entry.LastEventType = event.EventType
	entry.Source = event.Source
	entry.EventTimestamp = event.Timestamp
	entry.LastUpdate = time.Now()

	m.entries[event.JobID] = entry
	return entry, true
}
