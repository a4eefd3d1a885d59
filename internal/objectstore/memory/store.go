// Package memory provides an in-memory object store for tests and local
// development.
package memory

import (
	"context"
	"fmt"
	"sync"

	"codescope/internal/objectstore"
)

type storedObject struct {
	data        []byte
	contentType string
	metadata    map[string]string
}

// Store is an in-memory objectstore.Store implementation.
type Store struct {
	mu      sync.RWMutex
	objects map[string]storedObject
}

var _ objectstore.Store = (*Store)(nil)

// New creates an empty in-memory store.
func New() *Store {
	return &Store{objects: make(map[string]storedObject)}
}

func objectKey(bucket, key string) string {
	return bucket + "/" + key
}

func (s *Store) Get(ctx context.Context, bucket, key string) (*objectstore.Object, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	obj, ok := s.objects[objectKey(bucket, key)]
	if !ok {
		return nil, fmt.Errorf("object %s not found in bucket %s", key, bucket)
	}

	data := make([]byte, len(obj.data))
	copy(data, obj.data)

	return &objectstore.Object{Data: data, Size: int64(len(data))}, nil
}

func (s *Store) Put(ctx context.Context, bucket, key string, data []byte, contentType string, metadata map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)

	meta := make(map[string]string, len(metadata))
	for k, v := range metadata {
		meta[k] = v
	}

	s.objects[objectKey(bucket, key)] = storedObject{
		data:        stored,
		contentType: contentType,
		metadata:    meta,
	}
	return nil
}

// Metadata returns the stored metadata for an object, or nil if absent.
// Test helper.
func (s *Store) Metadata(bucket, key string) map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	obj, ok := s.objects[objectKey(bucket, key)]
	if !ok {
		return nil
	}
	return obj.metadata
}

// ContentType returns the stored content type for an object. Test helper.
func (s *Store) ContentType(bucket, key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.objects[objectKey(bucket, key)].contentType
}

// Keys lists all stored "bucket/key" entries. Test helper.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.objects))
	for k := range s.objects {
		keys = append(keys, k)
	}
	return keys
}

func (s *Store) Close() error {
	return nil
}
