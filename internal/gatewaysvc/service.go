package gatewaysvc

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/mohamedhayballa22/job-ingestion-pipeline/internal/broker"
	"github.com/mohamedhayballa22/job-ingestion-pipeline/internal/model"
)

// kafkaJobsWriter adapts a *kafka.Writer to the brokerWriter interface the
// handlers depend on, recording the broker-publish counter the teacher's
// hand-rolled Metrics never captured (GET /metrics, SPEC_FULL.md §4.1 op 7).
type kafkaJobsWriter struct {
	w       *kafka.Writer
	metrics *Metrics
}

func (k *kafkaJobsWriter) WriteMessagesCtx(event model.JobEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := broker.Publish(ctx, k.w, event)
	if k.metrics != nil {
		outcome := "success"
		if err != nil {
			outcome = "failure"
		}
		k.metrics.brokerPublish.WithLabelValues(model.TopicScrapingJobs, outcome).Inc()
	}
	return err
}

// Runtime owns the gateway's broker connections, consumer goroutines and
// the status map/hub they feed. It is the Go analogue of the teacher's
// process-wide producer/consumer singletons, and of the Python original's
// lifespan-managed background consumer thread (SPEC_FULL.md §9).
type Runtime struct {
	StatusMap *StatusMap
	Hub       *Hub
	Metrics   *Metrics

	jobsWriter          *kafka.Writer
	statusNotifications *kafka.Writer

	statusReader *kafka.Reader
	notifReader  *kafka.Reader

	log zerolog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRuntime connects to the broker (bounded retry) and constructs the
// readers/writers for all four topics the gateway touches.
func NewRuntime(ctx context.Context, brokerURL string, log zerolog.Logger) (*Runtime, error) {
	if err := broker.WaitForBroker(ctx, brokerURL, log); err != nil {
		return nil, err
	}

	metrics := NewMetrics()
	rt := &Runtime{
		StatusMap:           NewStatusMap(),
		Hub:                 NewHub(log, metrics),
		Metrics:             metrics,
		jobsWriter:          broker.NewWriter(brokerURL, model.TopicScrapingJobs),
		statusNotifications: broker.NewWriter(brokerURL, model.TopicSystemNotifications),
		statusReader:        broker.NewReader(brokerURL, model.TopicJobStatusUpdates, model.GroupAPIStatusListener),
		notifReader:         broker.NewReader(brokerURL, model.TopicSystemNotifications, model.GroupAPIStatusListener),
		log:                 log,
	}
	return rt, nil
}

// JobsWriter exposes the scraping-jobs producer wrapped for Handlers.
func (rt *Runtime) JobsWriter() brokerWriter {
	return &kafkaJobsWriter{w: rt.jobsWriter, metrics: rt.Metrics}
}

// Start launches the two consumer goroutines (job-status-updates and
// system-notifications, both under api_status_listener_group) that drive
// the status-map update algorithm and hub broadcasts.
func (rt *Runtime) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	rt.cancel = cancel

	rt.wg.Add(2)
	go func() {
		defer rt.wg.Done()
		broker.ConsumeLoop(ctx, rt.statusReader, rt.handle(model.TopicJobStatusUpdates), rt.log)
	}()
	go func() {
		defer rt.wg.Done()
		broker.ConsumeLoop(ctx, rt.notifReader, rt.handle(model.TopicSystemNotifications), rt.log)
	}()
}

// handle builds the broker.Handler for a given topic: apply the status-map
// update algorithm, and if the event changed state, broadcast it. A panic
// inside the status-map/hub path is recovered here, logged, and -- if a
// job_id survived the panic -- published as job_failed, matching the
// recovery scrapersvc/loadersvc apply at their own consumer handlers
// (SPEC_FULL.md §7, error kind 7).
func (rt *Runtime) handle(topic string) broker.Handler {
	return func(ctx context.Context, event model.JobEvent) (err error) {
		defer func() {
			if r := recover(); r != nil {
				msg := fmt.Sprintf("PanicError - %v", r)
				rt.log.Error().Str("topic", topic).Str("job_id", event.JobID).
					Str("error", msg).Msg("gateway consumer handler panicked")
				if event.JobID != "" {
					failedEvent := model.JobEvent{
						JobID:        event.JobID,
						EventType:    model.EventJobFailed,
						Source:       model.SourceGateway,
						Timestamp:    model.NowTimestamp(),
						ErrorDetails: msg,
					}
					if pubErr := broker.Publish(ctx, rt.statusNotifications, failedEvent); pubErr != nil {
						rt.log.Error().Err(pubErr).Msg("failed to publish job_failed after panic")
					}
				}
			}
		}()

		rt.Metrics.brokerConsume.WithLabelValues(topic, event.EventType).Inc()

		entry, recognized := rt.StatusMap.ApplyEvent(topic, event)
		if !recognized {
			rt.log.Warn().Str("topic", topic).Str("event_type", event.EventType).
				Str("job_id", event.JobID).Msg("unrecognized event type, state unchanged")
			return nil
		}

		rt.Hub.Broadcast(event.JobID, entry)
		if entry.Terminal() {
			rt.Metrics.jobsByStatus.WithLabelValues(entry.Status).Inc()
		}
		return nil
	}
}

// Shutdown signals the consumer goroutines to stop, joins them with a 10s
// timeout, then flushes and closes the producers (SPEC_FULL.md §4.1
// failure semantics).
func (rt *Runtime) Shutdown() {
	if rt.cancel != nil {
		rt.cancel()
	}

	done := make(chan struct{})
	go func() {
		rt.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		rt.log.Warn().Msg("consumer goroutines did not stop within 10s")
	}

	_ = rt.statusReader.Close()
	_ = rt.notifReader.Close()
	_ = broker.Close(rt.jobsWriter)
	_ = broker.Close(rt.statusNotifications)
}
