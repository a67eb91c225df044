package broker

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"github.com/mohamedhayballa22/job-ingestion-pipeline/internal/model"
)

// Publish marshals the event as JSON and writes it with job_id as the message
// key. Writers built by NewWriter use the LeastBytes balancer, which does not
// route by key, so events of one job are not pinned to one partition.
func Publish(ctx context.Context, w *kafka.Writer, event model.JobEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.JobID),
		Value: value,
	})
}

// PublishFailure emits the dual (job_failed, terminal job_progress) pair
// every non-validation failure path must produce (SPEC_FULL.md §7). The
// caller supplies the terminal percentage appropriate to the stage the
// failure occurred at.
func PublishFailure(ctx context.Context, notifications, statusUpdates *kafka.Writer, source, jobID, errorDetails string, terminalPercentage float64) error {
	now := model.NowTimestamp()

	failedEvent := model.JobEvent{
		JobID:        jobID,
		EventType:    model.EventJobFailed,
		Source:       source,
		Timestamp:    now,
		ErrorDetails: errorDetails,
	}
	if err := Publish(ctx, notifications, failedEvent); err != nil {
		return err
	}

	progressEvent := model.JobEvent{
		JobID:       jobID,
		EventType:   model.EventJobProgress,
		Source:      source,
		Timestamp:   now,
		Percentage:  model.Pct(terminalPercentage),
		Description: "Failed: " + errorDetails,
	}
	return Publish(ctx, statusUpdates, progressEvent)
}
