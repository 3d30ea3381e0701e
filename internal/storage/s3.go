package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"

	"placecast/models"
)

// KeyFunc maps a place to its canonical object key.
type KeyFunc func(models.Place) string

// PlaceStore persists place records as JSON objects in an S3-compatible
// bucket. Writes are idempotent: an existing object is never overwritten.
type PlaceStore struct {
	client *minio.Client
	bucket string
	key    KeyFunc
	log    zerolog.Logger
}

// NewPlaceStore connects to the MinIO endpoint configured through
// MINIO_ENDPOINT, MINIO_ACCESS_KEY, MINIO_SECRET_KEY and MINIO_USE_SSL.
func NewPlaceStore(bucket string, key KeyFunc, log zerolog.Logger) (*PlaceStore, error) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	accessKey := os.Getenv("MINIO_ACCESS_KEY")
	secretKey := os.Getenv("MINIO_SECRET_KEY")
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	if endpoint == "" || accessKey == "" || secretKey == "" {
		return nil, fmt.Errorf("missing one or more required environment variables: MINIO_ENDPOINT, MINIO_ACCESS_KEY, MINIO_SECRET_KEY")
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	log.Info().Str("endpoint", endpoint).Str("bucket", bucket).Msg("connected to MinIO")
	return &PlaceStore{client: client, bucket: bucket, key: key, log: log}, nil
}

// EnsureBucket creates the store's bucket if it does not exist yet.
func (s *PlaceStore) EnsureBucket(ctx context.Context, region string) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("error checking bucket existence: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: region}); err != nil {
			return err
		}
	}
	return nil
}

// PutPlace stores a place record under its canonical key. A place that is
// already in the bucket is left untouched so resubmissions do not trigger a
// second announcement.
func (s *PlaceStore) PutPlace(ctx context.Context, p models.Place) error {
	objectKey := s.key(p)

	_, err := s.client.StatObject(ctx, s.bucket, objectKey, minio.StatObjectOptions{})
	if err == nil {
		s.log.Info().Str("key", objectKey).Msg("place already exists, ignoring write")
		return nil
	}
	if minio.ToErrorResponse(err).Code != "NoSuchKey" {
		return fmt.Errorf("failed to check for existing object: %w", err)
	}

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal place to JSON: %w", err)
	}

	_, err = s.client.PutObject(
		ctx,
		s.bucket,
		objectKey,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"},
	)
	if err != nil {
		return fmt.Errorf("failed to store place: %w", err)
	}

	s.log.Info().Str("key", objectKey).Str("name", p.Name).Msg("stored place")
	return nil
}

// GetPlace retrieves and decodes a place object by bucket and key. The bucket
// is taken from the event rather than the store so the announcer can follow
// whatever bucket the notification names.
func (s *PlaceStore) GetPlace(ctx context.Context, bucket, objectKey string) (*models.Place, error) {
	object, err := s.client.GetObject(ctx, bucket, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer object.Close()

	var place models.Place
	if err := json.NewDecoder(object).Decode(&place); err != nil {
		return nil, fmt.Errorf("failed to decode place JSON: %w", err)
	}
	return &place, nil
}
