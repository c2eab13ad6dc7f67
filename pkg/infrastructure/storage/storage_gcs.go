package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	gcs "cloud.google.com/go/storage"

	"github.com/vsinha/planboard/pkg/infrastructure/config"
)

// GCSStorage implements Store using Google Cloud Storage.
// It uses Application Default Credentials.
type GCSStorage struct {
	client *gcs.Client
	bucket string
	prefix string
}

// NewGCSStorage creates a GCS-backed Store.
func NewGCSStorage(ctx context.Context, cfg config.GCSConfig) (*GCSStorage, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create gcs client: %w", err)
	}
	return &GCSStorage{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

var _ Store = (*GCSStorage)(nil)

func (s *GCSStorage) key(key string) string {
	return path.Join(s.prefix, "snapshots", key+".json")
}

func (s *GCSStorage) Put(ctx context.Context, key string, data []byte) error {
	objectKey := s.key(key)
	w := s.client.Bucket(s.bucket).Object(objectKey).NewWriter(ctx)
	w.ContentType = "application/json"
	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("gcs write %s: %w", objectKey, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("gcs close %s: %w", objectKey, err)
	}
	return nil
}

func (s *GCSStorage) Get(ctx context.Context, key string) ([]byte, error) {
	objectKey := s.key(key)
	r, err := s.client.Bucket(s.bucket).Object(objectKey).NewReader(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, objectKey)
	}
	if err != nil {
		return nil, fmt.Errorf("gcs read %s: %w", objectKey, err)
	}
	defer r.Close()
	return io.ReadAll(r)
}

func (s *GCSStorage) Close() error {
	return s.client.Close()
}
