// Package loadersvc implements the loader worker's pipeline: consuming
// loading_requested events, reading the scraper's per-job result file,
// deduplicating against the database, bulk-committing new rows, and
// publishing banded loading_progress / loading_complete / job_failed /
// system_warning events. Grounded in the teacher's service.JobWorker
// consume-loop shape, adapted to the loader's dedup-then-bulk-insert
// semantics instead of the teacher's per-message persistence.
package loadersvc

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/mohamedhayballa22/job-ingestion-pipeline/internal/broker"
	"github.com/mohamedhayballa22/job-ingestion-pipeline/internal/config"
	"github.com/mohamedhayballa22/job-ingestion-pipeline/internal/model"
)

// Repository is the subset of internal/db.JobRepository the loader needs.
// Isolated as an interface so the pipeline can be exercised against a fake
// in package tests without a live database.
type Repository interface {
	ExistingIdempotencyKeys() (map[model.IdempotencyKey]struct{}, error)
	BulkCreate(jobs []model.Job) error
}

// Worker consumes one loading_requested event at a time off
// data-processing, group loader-group (SPEC_FULL.md §4.3).
type Worker struct {
	reader  *kafka.Reader
	statusW *kafka.Writer
	notifW  *kafka.Writer

	repo    Repository
	dataDir string

	log zerolog.Logger
}

// NewWorker builds a Worker from config and a repository, after the broker
// connection has been established by the caller.
func NewWorker(cfg config.Config, repo Repository, log zerolog.Logger) *Worker {
	return &Worker{
		reader:  broker.NewReader(cfg.KafkaBrokerURL, model.TopicDataProcessing, model.GroupLoader),
		statusW: broker.NewWriter(cfg.KafkaBrokerURL, model.TopicJobStatusUpdates),
		notifW:  broker.NewWriter(cfg.KafkaBrokerURL, model.TopicSystemNotifications),
		repo:    repo,
		dataDir: cfg.DataDir,
		log:     log,
	}
}

// Run consumes loading_requested events forever until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	broker.ConsumeLoop(ctx, w.reader, w.handle, w.log)
}

// Close releases the worker's broker connections.
func (w *Worker) Close() {
	_ = w.reader.Close()
	_ = broker.Close(w.statusW)
	_ = broker.Close(w.notifW)
}

// handle validates the incoming event's shape before dispatching to the
// pipeline, and converts any panic into the dual job_failed/terminal
// job_progress emission (SPEC_FULL.md §4.4, §7 error kind 7).
func (w *Worker) handle(ctx context.Context, event model.JobEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			msg := fmt.Sprintf("PanicError - %v", r)
			w.log.Error().Str("job_id", event.JobID).Str("error", msg).Msg("loader pipeline panicked")
			if pubErr := broker.PublishFailure(ctx, w.notifW, w.statusW, model.SourceLoader, event.JobID, msg, 90.0); pubErr != nil {
				w.log.Error().Err(pubErr).Msg("failed to publish failure after panic")
			}
		}
	}()

	if event.EventType != model.EventLoadingRequested || event.Source != model.SourceScraper || event.JobID == "" {
		w.log.Warn().Str("event_type", event.EventType).Str("source", event.Source).Msg("ignoring malformed event on data-processing")
		return nil
	}

	return w.processJob(ctx, event)
}
