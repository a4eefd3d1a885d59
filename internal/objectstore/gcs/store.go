// Package gcs implements objectstore.Store on Google Cloud Storage.
package gcs

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"codescope/internal/objectstore"
)

// Store is a GCS-backed objectstore.Store.
type Store struct {
	client *storage.Client
}

var _ objectstore.Store = (*Store)(nil)

// New creates a GCS store. When credentialsFile is empty, application
// default credentials are used.
func New(ctx context.Context, credentialsFile string) (*Store, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &Store{client: client}, nil
}

func (s *Store) Get(ctx context.Context, bucket, key string) (*objectstore.Object, error) {
	reader, err := s.client.Bucket(bucket).Object(key).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open object %s in bucket %s: %w", key, bucket, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read object %s: %w", key, err)
	}

	return &objectstore.Object{Data: data, Size: int64(len(data))}, nil
}

func (s *Store) Put(ctx context.Context, bucket, key string, data []byte, contentType string, metadata map[string]string) error {
	writer := s.client.Bucket(bucket).Object(key).NewWriter(ctx)
	writer.ContentType = contentType
	writer.Metadata = metadata

	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return fmt.Errorf("failed to write object %s to bucket %s: %w", key, bucket, err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close writer for %s: %w", key, err)
	}

	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}
