package gatewaysvc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohamedhayballa22/job-ingestion-pipeline/internal/model"
)

func TestStatusMap_CreateRequested(t *testing.T) {
	m := NewStatusMap()
	entry := m.CreateRequested("job-1")
	assert.Equal(t, model.StatusRequested, entry.Status)

	got, ok := m.Get("job-1")
	require.True(t, ok)
	assert.Equal(t, model.StatusRequested, got.Status)
}

func TestStatusMap_ApplyEvent_JobStarted(t *testing.T) {
	m := NewStatusMap()
	m.CreateRequested("job-1")

	entry, recognized := m.ApplyEvent(model.TopicJobStatusUpdates, model.JobEvent{
		JobID:     "job-1",
		EventType: model.EventJobStarted,
		Source:    model.SourceScraper,
	})

	require.True(t, recognized)
	assert.Equal(t, model.StatusRunning, entry.Status)
	assert.Equal(t, "SCRAPER", entry.Stage)
	assert.Equal(t, 0.0, entry.Percentage)
}

func TestStatusMap_ApplyEvent_JobProgress(t *testing.T) {
	m := NewStatusMap()
	entry, recognized := m.ApplyEvent(model.TopicJobStatusUpdates, model.JobEvent{
		JobID:       "job-2",
		EventType:   model.EventJobProgress,
		Source:      model.SourceScraper,
		Percentage:  model.Pct(42.0),
		Description: "Processing job 1/5",
	})

	require.True(t, recognized)
	assert.Equal(t, model.StatusRunning, entry.Status)
	assert.Equal(t, 42.0, entry.Percentage)
	assert.Equal(t, "Processing job 1/5", entry.Details)
}

func TestStatusMap_ApplyEvent_LoadingCompleteForcesFullPercentage(t *testing.T) {
	m := NewStatusMap()
	m.ApplyEvent(model.TopicJobStatusUpdates, model.JobEvent{
		JobID:      "job-3",
		EventType:  model.EventJobProgress,
		Source:     model.SourceScraper,
		Percentage: model.Pct(88.0),
	})

	entry, recognized := m.ApplyEvent(model.TopicJobStatusUpdates, model.JobEvent{
		JobID:      "job-3",
		EventType:  model.EventLoadingComplete,
		Source:     model.SourceLoader,
		Percentage: model.Pct(91.0), // should be ignored; complete always forces 100
	})

	require.True(t, recognized)
	assert.Equal(t, model.StatusComplete, entry.Status)
	assert.Equal(t, 100.0, entry.Percentage)
	assert.True(t, entry.Terminal())
}

func TestStatusMap_ApplyEvent_JobFailed(t *testing.T) {
	m := NewStatusMap()
	entry, recognized := m.ApplyEvent(model.TopicSystemNotifications, model.JobEvent{
		JobID:        "job-4",
		EventType:    model.EventJobFailed,
		Source:       model.SourceLoader,
		ErrorDetails: "DatabaseError - connection refused",
	})

	require.True(t, recognized)
	assert.Equal(t, model.StatusFailed, entry.Status)
	assert.Equal(t, "DatabaseError - connection refused", entry.ErrorDetails)
	assert.True(t, entry.Terminal())
}

func TestStatusMap_ApplyEvent_SystemWarningLeavesStateUnchanged(t *testing.T) {
	m := NewStatusMap()
	m.ApplyEvent(model.TopicJobStatusUpdates, model.JobEvent{
		JobID:      "job-6",
		EventType:  model.EventJobProgress,
		Source:     model.SourceScraper,
		Percentage: model.Pct(50.0),
	})

	before, _ := m.Get("job-6")

	_, recognized := m.ApplyEvent(model.TopicSystemNotifications, model.JobEvent{
		JobID:       "job-6",
		EventType:   model.EventSystemWarning,
		Source:      model.SourceLoader,
		Description: "failed to delete data file",
	})

	assert.False(t, recognized)
	after, ok := m.Get("job-6")
	require.True(t, ok)
	assert.Equal(t, before, after)
}

func TestStatusMap_ApplyEvent_UnrecognizedCombination(t *testing.T) {
	m := NewStatusMap()
	_, recognized := m.ApplyEvent(model.TopicScrapingJobs, model.JobEvent{
		JobID:     "job-5",
		EventType: model.EventJobRequested,
	})
	assert.False(t, recognized)
}

func TestStatusMap_Snapshot_IsIndependentCopy(t *testing.T) {
	m := NewStatusMap()
	m.CreateRequested("job-1")

	snap := m.Snapshot()
	snap["job-1"] = model.StatusEntry{Status: "mutated"}

	got, ok := m.Get("job-1")
	require.True(t, ok)
	assert.Equal(t, model.StatusRequested, got.Status)
}
