// Package feed bridges bucket notifications to loaded objects. It consumes
// storage events from a message source (Kafka via pkg/kafkaclient), decodes
// each message as a MinIO notification, loads the referenced object through a
// pluggable loader, and yields the loaded items on a channel.
package feed

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/minio/minio-go/v7/pkg/notification"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// Source is the message stream the feed drains. The feed does not manage the
// source's lifecycle; callers start and stop their consumer around it.
type Source interface {
	// Messages returns a receive-only channel of Kafka messages, closed by
	// the implementation when the consumer stops.
	Messages() <-chan kafka.Message

	// CommitOffset acknowledges that a message has been fully processed.
	CommitOffset(ctx context.Context, msg kafka.Message) error
}

// Loader fetches and decodes the object a storage event points at.
// Implementations should be read-only and honor the context.
type Loader[T any] func(ctx context.Context, bucket, key string) (T, error)

// Item pairs a loaded object with the bucket and key it came from.
type Item[T any] struct {
	Data   T
	Bucket string
	Key    string
}

// Feed is generic over the loaded item type T. Decode and load errors skip
// the offending message and processing continues; the offset is committed
// only after the item has been emitted downstream.
type Feed[T any] struct {
	source Source
	load   Loader[T]
	log    zerolog.Logger
}

func New[T any](source Source, load Loader[T], log zerolog.Logger) *Feed[T] {
	return &Feed[T]{source: source, load: load, log: log}
}

// Items starts a goroutine draining the source and returns the channel of
// loaded items. The channel closes when the source's message channel closes
// or the context is canceled.
func (f *Feed[T]) Items(ctx context.Context) <-chan Item[T] {
	out := make(chan Item[T])
	go func() {
		defer close(out)

		for msg := range f.source.Messages() {
			var info notification.Info
			if err := json.Unmarshal(msg.Value, &info); err != nil {
				f.log.Warn().Err(err).Int64("offset", msg.Offset).Msg("skipping undecodable storage event")
				continue
			}
			if len(info.Records) == 0 {
				f.log.Warn().Int64("offset", msg.Offset).Msg("skipping storage event with no records")
				continue
			}

			s3 := info.Records[0].S3
			objectKey, err := url.QueryUnescape(s3.Object.Key)
			if err != nil {
				f.log.Warn().Err(err).Str("key", s3.Object.Key).Msg("skipping event with undecodable object key")
				continue
			}

			data, err := f.load(ctx, s3.Bucket.Name, objectKey)
			if err != nil {
				f.log.Warn().Err(err).Str("bucket", s3.Bucket.Name).Str("key", objectKey).Msg("failed to load object")
				continue
			}

			select {
			case out <- Item[T]{Data: data, Bucket: s3.Bucket.Name, Key: objectKey}:
			case <-ctx.Done():
				return
			}

			if err := f.source.CommitOffset(ctx, msg); err != nil {
				f.log.Warn().Err(err).Int64("offset", msg.Offset).Msg("failed to commit offset")
			}
		}
	}()
	return out
}
