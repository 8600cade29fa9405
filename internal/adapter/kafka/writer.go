package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/palegrove/heritage-map-etl/internal/config"
	"github.com/palegrove/heritage-map-etl/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer produces converted sites to the sink topic.
// It implements pipeline.BatchLoader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// LoadBatch serializes and publishes multiple sites to the sink topic in a
// single WriteMessages call for efficiency.
func (w *Writer) LoadBatch(ctx context.Context, sites []domain.Site) error {
	if len(sites) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(sites))
	for i := range sites {
		msg, err := serializeToMessage(sites[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	return w.writer.WriteMessages(ctx, msgs...)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a Site into a Kafka message keyed by site ID.
func serializeToMessage(site domain.Site) (kafkago.Message, error) {
	data, err := json.Marshal(site)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize site: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(site.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "category", Value: []byte(site.CategoryKey)},
			{Key: "processed_at", Value: []byte(site.ProcessedAt.Format(time.RFC3339))},
		},
	}, nil
}
