// Package broker wraps segmentio/kafka-go with the retry-connect, producer
// and consumer configuration shared by all three binaries (SPEC_FULL.md
// §4.4), generalizing the teacher's KafkaProducerConfig.go/
// KafkaConsumerConfig.go free functions into reusable constructors.
package broker

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

const (
	connectAttempts = 5
	connectBackoff  = 5 * time.Second
)

// NewWriter builds a producer for the given topic with the durability
// settings from SPEC_FULL.md §4.4: acks from all in-sync replicas, five
// retries (six attempts), gzip compression, a 10s write timeout.
func NewWriter(brokerURL, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokerURL),
		Topic:        topic,
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  6,
		Compression:  kafka.Gzip,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: 10 * time.Second,
	}
}

// NewReader builds a consumer for the given topic/group with earliest-offset
// start and the session/heartbeat tuning carried over from the teacher.
// Offset commits are manual — CommitMessages is called once per message,
// after it has been handled (successfully or not), matching the
// at-least-once / no-retry contract of SPEC_FULL.md §4.4.
func NewReader(brokerURL, topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:           []string{brokerURL},
		Topic:             topic,
		GroupID:           groupID,
		StartOffset:       kafka.FirstOffset,
		MinBytes:          1,
		MaxWait:           500 * time.Millisecond,
		SessionTimeout:    30 * time.Second,
		HeartbeatInterval: 10 * time.Second,
		MaxAttempts:       3,
	})
}

// WaitForBroker dials the broker up to five times with a five-second
// backoff, matching the bounded retry-connect contract every role uses on
// startup. It returns the last dial error if all attempts fail.
func WaitForBroker(ctx context.Context, brokerURL string, log zerolog.Logger) error {
	var lastErr error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		conn, err := kafka.DialContext(ctx, "tcp", brokerURL)
		if err == nil {
			conn.Close()
			return nil
		}
		lastErr = err
		log.Warn().Err(err).Int("attempt", attempt).Int("max_attempts", connectAttempts).
			Msg("broker connect attempt failed")
		if attempt < connectAttempts {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(connectBackoff):
			}
		}
	}
	return lastErr
}

// Ping performs a single, short-lived dial to check broker reachability
// without the bounded-retry startup behavior of WaitForBroker. Used by the
// gateway's GET /health so a down broker never stalls the health check.
func Ping(ctx context.Context, brokerURL string) error {
	dialCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	conn, err := kafka.DialContext(dialCtx, "tcp", brokerURL)
	if err != nil {
		return err
	}
	return conn.Close()
}

// Close flushes and closes a writer with a bounded deadline, matching the
// gateway's shutdown contract (5s flush).
func Close(w *kafka.Writer) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Close() }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
