package broker

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/mohamedhayballa22/job-ingestion-pipeline/internal/model"
)

// Handler processes one decoded event. A returned error is logged; it does
// not prevent the offset from committing (SPEC_FULL.md §4.4: at-least-once,
// no application-level retry).
type Handler func(ctx context.Context, event model.JobEvent) error

// ConsumeLoop reads messages from r forever until ctx is cancelled,
// decoding each as a JobEvent and invoking handle. Decode failures and
// handler errors are both logged and skipped — the offset still commits,
// matching the teacher's manual-commit pattern but without its
// backoff/dead-letter retry machinery, which this spec's broker contract
// does not carry.
func ConsumeLoop(ctx context.Context, r *kafka.Reader, handle Handler, log zerolog.Logger) {
	for {
		msg, err := r.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Error().Err(err).Msg("failed to fetch message")
			continue
		}

		var event model.JobEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error().Err(err).Str("topic", r.Config().Topic).Msg("failed to decode event, skipping")
			_ = r.CommitMessages(ctx, msg)
			continue
		}

		if err := handle(ctx, event); err != nil {
			log.Error().Err(err).Str("job_id", event.JobID).Str("event_type", event.EventType).
				Msg("handler failed, message will not be retried")
		}

		if err := r.CommitMessages(ctx, msg); err != nil {
			log.Error().Err(err).Msg("failed to commit offset")
		}
	}
}
