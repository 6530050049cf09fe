package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

type GCSStorage struct {
	client *storage.Client
	bucket string
}

func NewGCSStorage(ctx context.Context, bucket, credentials string) (*GCSStorage, error) {
	if bucket == "" {
		return nil, errors.New("missing GCS bucket name")
	}

	var opts []option.ClientOption
	creds := strings.TrimSpace(credentials)
	if strings.HasPrefix(creds, "{") {
		opts = append(opts, option.WithCredentialsJSON([]byte(creds)))
	} else if creds != "" {
		opts = append(opts, option.WithCredentialsFile(creds))
	}
	opts = append(opts, option.WithScopes(storage.ScopeReadOnly))

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &GCSStorage{client: client, bucket: bucket}, nil
}

// Read accepts an object key, "gs://bucket/key" or a storage.googleapis.com URL.
func (s *GCSStorage) Read(ctx context.Context, path string) ([]byte, error) {
	key := s.objectKey(path)

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	r, err := s.client.Bucket(s.bucket).Object(key).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, fmt.Errorf("%w: gs://%s/%s", ErrFileNotFound, s.bucket, key)
		}
		return nil, fmt.Errorf("failed to open GCS object: %w", err)
	}
	defer r.Close()

	data, err := io.ReadAll(io.LimitReader(r, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read GCS object: %w", err)
	}
	if len(data) > MaxFileSize {
		return nil, fmt.Errorf("%w: gs://%s/%s", ErrFileTooLarge, s.bucket, key)
	}
	return data, nil
}

func (s *GCSStorage) Close() error {
	return s.client.Close()
}

func (s *GCSStorage) objectKey(path string) string {
	key := strings.TrimSpace(path)
	for _, prefix := range []string{
		"gs://" + s.bucket + "/",
		"https://storage.googleapis.com/" + s.bucket + "/",
	} {
		key = strings.TrimPrefix(key, prefix)
	}
	return strings.TrimLeft(key, "/")
}
