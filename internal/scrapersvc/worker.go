// Package scrapersvc implements the scraper worker's pipeline: consuming
// job_requested events, fetching listings from the external job site,
// optionally enriching them with LLM-extracted skills, writing the per-job
// result file, and handing off to the loader. Grounded in the teacher's
// service.JobWorker consume-loop shape and in jmylchreest-refyne-api's
// Colly-based url_discovery.go for the HTML-fetch idiom, with the
// retry/backoff/dead-letter machinery of the teacher's worker replaced by
// the flat dual-emit failure contract SPEC_FULL.md §4.4 requires.
package scrapersvc

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"golang.org/x/time/rate"

	"github.com/mohamedhayballa22/job-ingestion-pipeline/internal/broker"
	"github.com/mohamedhayballa22/job-ingestion-pipeline/internal/config"
	"github.com/mohamedhayballa22/job-ingestion-pipeline/internal/llm"
	"github.com/mohamedhayballa22/job-ingestion-pipeline/internal/model"
)

// Worker consumes one job_requested event at a time off scraping-jobs,
// group scraper-group, and drives it through the scraping pipeline
// (SPEC_FULL.md §4.2). There is no internal parallelism: horizontal
// scaling relies on the broker rebalancing partitions across worker
// replicas (SPEC_FULL.md §5).
type Worker struct {
	reader     *kafka.Reader
	dataWriter *kafka.Writer
	statusW    *kafka.Writer
	notifW     *kafka.Writer

	httpClient  *resty.Client
	rateLimiter *rate.Limiter

	dataDir    string
	llmTimeout time.Duration

	log zerolog.Logger
}

// NewWorker builds a Worker from config, after the broker connection has
// been established by the caller.
func NewWorker(cfg config.Config, log zerolog.Logger) *Worker {
	httpClient := resty.New().
		SetTimeout(cfg.ScraperFetchTimeout).
		SetRetryCount(2).
		SetRetryWaitTime(1 * time.Second).
		SetHeader("User-Agent", "Mozilla/5.0 (compatible; job-ingestion-pipeline/1.0)")

	return &Worker{
		reader:      broker.NewReader(cfg.KafkaBrokerURL, model.TopicScrapingJobs, model.GroupScraper),
		dataWriter:  broker.NewWriter(cfg.KafkaBrokerURL, model.TopicDataProcessing),
		statusW:     broker.NewWriter(cfg.KafkaBrokerURL, model.TopicJobStatusUpdates),
		notifW:      broker.NewWriter(cfg.KafkaBrokerURL, model.TopicSystemNotifications),
		httpClient:  httpClient,
		rateLimiter: rate.NewLimiter(rate.Every(500*time.Millisecond), 1),
		dataDir:     cfg.DataDir,
		llmTimeout:  cfg.LLMRequestTimeout,
		log:         log,
	}
}

// Run consumes job_requested events forever until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	broker.ConsumeLoop(ctx, w.reader, w.handle, w.log)
}

// Close releases the worker's broker connections.
func (w *Worker) Close() {
	_ = w.reader.Close()
	_ = broker.Close(w.dataWriter)
	_ = broker.Close(w.statusW)
	_ = broker.Close(w.notifW)
}

// handle recovers from any panic in the pipeline and converts it into the
// dual job_failed/terminal job_progress emission required by SPEC_FULL.md
// §7 (error kind 7), matching "<ExceptionKind> - <message>".
func (w *Worker) handle(ctx context.Context, event model.JobEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			msg := fmt.Sprintf("PanicError - %v", r)
			w.log.Error().Str("job_id", event.JobID).Str("error", msg).Msg("scraper pipeline panicked")
			if pubErr := broker.PublishFailure(ctx, w.notifW, w.statusW, model.SourceScraper, event.JobID, msg, 0.0); pubErr != nil {
				w.log.Error().Err(pubErr).Msg("failed to publish failure after panic")
			}
		}
	}()

	if event.EventType != model.EventJobRequested {
		w.log.Warn().Str("event_type", event.EventType).Msg("ignoring non job_requested event on scraping-jobs")
		return nil
	}

	return w.processJob(ctx, event)
}
