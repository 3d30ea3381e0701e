// Package kafkaclient wraps segmentio/kafka-go behind small interfaces so the
// announcer's transport can be mocked in unit tests.
package kafkaclient

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// Reader defines the interface for a Kafka message reader.
// This allows for easy mocking in unit tests.
type Reader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer manages a Kafka reader and its message loop. Messages are exposed
// on a channel and offsets are committed manually by the caller once a
// message has been fully processed.
type Consumer struct {
	reader      Reader
	log         zerolog.Logger
	doneChan    chan struct{}
	wg          sync.WaitGroup
	messageChan chan kafka.Message
}

// NewConsumer creates a consumer for the given topic. Auto-commit is
// disabled; offsets move only through CommitOffset.
func NewConsumer(topic, groupID, broker string, log zerolog.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        []string{broker},
		Topic:          topic,
		GroupID:        groupID,
		CommitInterval: 0,
		// Read messages in batches between 10KB and 10MB.
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	return &Consumer{
		reader:      reader,
		log:         log,
		doneChan:    make(chan struct{}),
		messageChan: make(chan kafka.Message),
	}
}

// Messages returns the channel the consumer loop delivers on. The channel is
// closed when the loop exits.
func (c *Consumer) Messages() <-chan kafka.Message {
	return c.messageChan
}

// CommitOffset acknowledges that a message has been fully processed.
func (c *Consumer) CommitOffset(ctx context.Context, msg kafka.Message) error {
	c.log.Debug().
		Str("topic", msg.Topic).
		Int("partition", msg.Partition).
		Int64("offset", msg.Offset).
		Msg("committing offset")
	return c.reader.CommitMessages(ctx, msg)
}

// Start begins the message consumption loop in a separate goroutine.
func (c *Consumer) Start(ctx context.Context) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer close(c.messageChan)

		c.log.Info().Msg("starting kafka consumer loop")

		for {
			select {
			case <-ctx.Done():
				c.log.Info().Msg("context canceled, stopping consumer loop")
				return
			case <-c.doneChan:
				c.log.Info().Msg("shutdown signal received, stopping consumer loop")
				return
			default:
				msg, err := c.reader.ReadMessage(ctx)
				if err != nil {
					if strings.Contains(err.Error(), "reader closed") || ctx.Err() != nil {
						return
					}
					c.log.Warn().Err(err).Msg("error reading message")
					// Backoff to prevent a tight error loop.
					time.Sleep(1 * time.Second)
					continue
				}

				select {
				case c.messageChan <- msg:
					c.log.Debug().
						Str("topic", msg.Topic).
						Int("partition", msg.Partition).
						Int64("offset", msg.Offset).
						Msg("message received")
				case <-ctx.Done():
					return
				case <-c.doneChan:
					return
				}
			}
		}
	}()
}

// Stop gracefully shuts down the consumer and waits for the loop to exit.
func (c *Consumer) Stop() {
	close(c.doneChan)
	c.wg.Wait()
	if err := c.reader.Close(); err != nil {
		c.log.Warn().Err(err).Msg("failed to close kafka reader")
	}
	c.log.Info().Msg("kafka consumer stopped")
}
