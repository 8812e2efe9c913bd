package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"hrportal/internal/domain/notifications"
	"hrportal/internal/platform/config"
)

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, notifications.Event) error { return nil }

func (noopPublisher) Close() error { return nil }

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer writes lifecycle events to Kafka, keyed by record id so every
// event of one record lands on the same partition.
type Producer struct {
	l     *slog.Logger
	w     messageWriter
	topic string
}

// New returns a Kafka producer, or a no-op publisher when no brokers are configured.
func New(l *slog.Logger, cfg config.Kafka) notifications.Publisher {
	if len(cfg.Brokers) == 0 {
		return noopPublisher{}
	}
	l = l.WithGroup("kafka").With("topic", cfg.EventsTopic)
	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.EventsTopic,
		Balancer:               &kafka.LeastBytes{},
		Async:                  true,
		Logger:                 kafka.LoggerFunc(func(msg string, args ...any) { l.Debug(fmt.Sprintf(msg, args...)) }),
		ErrorLogger:            kafka.LoggerFunc(func(msg string, args ...any) { l.Error(fmt.Sprintf(msg, args...)) }),
		AllowAutoTopicCreation: true,
	}
	return &Producer{l: l, w: w, topic: cfg.EventsTopic}
}

func (p *Producer) Publish(ctx context.Context, event notifications.Event) error {
	b, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.EntityType + ":" + event.EntityID),
		Value: b,
	}); err != nil {
		return fmt.Errorf("write kafka message: %w", err)
	}
	return nil
}

func (p *Producer) Close() error {
	if err := p.w.Close(); err != nil {
		return fmt.Errorf("close kafka writer: %w", err)
	}
	return nil
}
