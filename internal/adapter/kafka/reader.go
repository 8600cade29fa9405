package kafka

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/palegrove/heritage-map-etl/internal/config"
	"github.com/palegrove/heritage-map-etl/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Reader consumes raw site records from the source topic as part of a
// consumer group, with manual offset commits. It implements
// pipeline.BatchExtractor.
type Reader struct {
	reader *kafkago.Reader
	flush  time.Duration
	logger *slog.Logger
}

// NewReader creates a Kafka consumer for the configured source topic.
func NewReader(cfg *config.Config, logger *slog.Logger) *Reader {
	r := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  cfg.KafkaBrokers,
		GroupID:  cfg.KafkaGroupID,
		Topic:    cfg.KafkaSourceTopic,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	return &Reader{reader: r, flush: cfg.BatchFlushInterval, logger: logger}
}

// ExtractBatch blocks until at least one message is available, then drains up
// to batchSize messages within the flush interval. Each returned event
// carries a commit callback bound to its offset.
func (r *Reader) ExtractBatch(ctx context.Context, batchSize int) ([]domain.RawEvent, error) {
	first, err := r.reader.FetchMessage(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, nil
		}
		return nil, err
	}

	batch := make([]domain.RawEvent, 0, batchSize)
	batch = append(batch, r.toRawEvent(first))

	// A short drain window trades a little latency for fewer, larger sink
	// writes. Errors here just end the batch early.
	drainCtx, cancel := context.WithTimeout(ctx, r.flush)
	defer cancel()

	for len(batch) < batchSize {
		msg, err := r.reader.FetchMessage(drainCtx)
		if err != nil {
			break
		}
		batch = append(batch, r.toRawEvent(msg))
	}

	return batch, nil
}

func (r *Reader) Close() error {
	return r.reader.Close()
}

// toRawEvent maps a Kafka message to a domain event and attaches the offset
// commit callback.
func (r *Reader) toRawEvent(msg kafkago.Message) domain.RawEvent {
	raw := mapMessageToRawEvent(msg)
	raw.Commit = func(ctx context.Context) error {
		return r.reader.CommitMessages(ctx, msg)
	}
	return raw
}

// mapMessageToRawEvent copies the message fields into a domain.RawEvent.
func mapMessageToRawEvent(msg kafkago.Message) domain.RawEvent {
	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	return domain.RawEvent{
		Key:       msg.Key,
		Value:     msg.Value,
		Headers:   headers,
		Topic:     msg.Topic,
		Partition: msg.Partition,
		Offset:    msg.Offset,
		Timestamp: msg.Time,
	}
}
