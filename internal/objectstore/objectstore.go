// Package objectstore defines the narrow object-store contract the service
// depends on, so orchestration logic is testable without a real backend.
package objectstore

import "context"

// Object is a fetched object's content and size.
type Object struct {
	Data []byte
	Size int64
}

// Store is the get/put contract for an external object store.
type Store interface {
	// Get fetches an object's bytes and size.
	Get(ctx context.Context, bucket, key string) (*Object, error)

	// Put stores an object with a content type and descriptive metadata.
	Put(ctx context.Context, bucket, key string, data []byte, contentType string, metadata map[string]string) error

	Close() error
}
