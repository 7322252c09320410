package store

import (
	"bytes"
	"context"
	"maps"
	"sync"

	"github.com/MKhiriev/go-sync-keeper/internal/utils"
)

// memoryBlobStore keeps objects in a map. It is used by tests and by the
// "memory" backend for single-process deployments.
type memoryBlobStore struct {
	mu      sync.Mutex
	objects map[string]Blob
}

// NewMemoryBlobStore returns an empty in-memory [BlobStore].
func NewMemoryBlobStore() BlobStore {
	return &memoryBlobStore{objects: make(map[string]Blob)}
}

func (m *memoryBlobStore) Get(ctx context.Context, key string) (Blob, error) {
	if err := ctx.Err(); err != nil {
		return Blob{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	blob, ok := m.objects[key]
	if !ok {
		return Blob{}, ErrBlobNotFound
	}
	return Blob{Body: bytes.Clone(blob.Body), ETag: blob.ETag, Metadata: maps.Clone(blob.Metadata)}, nil
}

func (m *memoryBlobStore) Head(ctx context.Context, key string) (BlobInfo, error) {
	if err := ctx.Err(); err != nil {
		return BlobInfo{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	blob, ok := m.objects[key]
	if !ok {
		return BlobInfo{}, ErrBlobNotFound
	}
	return BlobInfo{ETag: blob.ETag, Metadata: maps.Clone(blob.Metadata)}, nil
}

func (m *memoryBlobStore) Put(ctx context.Context, key string, body []byte, meta Metadata) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return m.putLocked(key, body, meta), nil
}

func (m *memoryBlobStore) PutIfMatch(ctx context.Context, key string, body []byte, meta Metadata, etag string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	current, exists := m.objects[key]
	switch {
	case etag == "" && exists:
		return "", ErrPreconditionFailed
	case etag != "" && (!exists || current.ETag != etag):
		return "", ErrPreconditionFailed
	}

	return m.putLocked(key, body, meta), nil
}

func (m *memoryBlobStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.objects, key)
	return nil
}

func (m *memoryBlobStore) putLocked(key string, body []byte, meta Metadata) string {
	etag := utils.ContentETag(body)
	m.objects[key] = Blob{Body: bytes.Clone(body), ETag: etag, Metadata: maps.Clone(meta)}
	return etag
}
