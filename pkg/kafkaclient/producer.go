package kafkaclient

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// Writer defines the interface for a Kafka message writer, mockable in tests.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publishes JSON-encoded events to a single topic.
type Producer struct {
	writer Writer
	log    zerolog.Logger
}

func NewProducer(topic, broker string, log zerolog.Logger) *Producer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(broker),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	return &Producer{writer: writer, log: log}
}

// Publish encodes v as JSON and writes it under the given key.
func (p *Producer) Publish(ctx context.Context, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("kafka: encode event: %w", err)
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: payload,
	})
	if err != nil {
		return fmt.Errorf("kafka: publish event: %w", err)
	}
	p.log.Debug().Str("key", key).Msg("event published")
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
