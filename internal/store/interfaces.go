package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-sync-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// Metadata holds small string attributes written together with an object.
// Keys are lower case; S3 folds user metadata keys to lower case anyway.
type Metadata map[string]string

// Blob is a stored object together with its opaque version tag.
type Blob struct {
	Body     []byte
	ETag     string
	Metadata Metadata
}

// BlobInfo describes a stored object without its body.
type BlobInfo struct {
	ETag     string
	Metadata Metadata
}

// BlobStore is a key-addressed object store with optimistic concurrency.
// Every implementation must make PutIfMatch atomic with respect to other
// writers of the same key, and must store meta atomically with body.
type BlobStore interface {
	// Get returns the object stored under key or [ErrBlobNotFound].
	Get(ctx context.Context, key string) (Blob, error)
	// Head returns the ETag and metadata of key without transferring the
	// body, or [ErrBlobNotFound].
	Head(ctx context.Context, key string) (BlobInfo, error)
	// Put stores body under key unconditionally and returns the new ETag.
	Put(ctx context.Context, key string, body []byte, meta Metadata) (string, error)
	// PutIfMatch stores body only if the current ETag equals etag. An empty
	// etag means "only if the key does not exist yet". A failed condition
	// yields [ErrPreconditionFailed].
	PutIfMatch(ctx context.Context, key string, body []byte, meta Metadata, etag string) (string, error)
	// Delete removes the object. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// SyncRecordRepository persists one [models.SyncRecord] per user.
type SyncRecordRepository interface {
	// Get returns the record of userID or [ErrSyncRecordNotFound]. A record
	// that cannot be decoded yields [ErrCorruptRecord] together with its
	// Version, so that it can still be replaced by CompareAndSwap.
	Get(ctx context.Context, userID string) (VersionedRecord, error)
	// LastSync returns the lastSync of userID's record without reading the
	// payload, or [ErrSyncRecordNotFound].
	LastSync(ctx context.Context, userID string) (time.Time, error)
	// Save overwrites the record unconditionally.
	Save(ctx context.Context, record models.SyncRecord) error
	// CompareAndSwap writes record only if the stored version is still
	// version. An empty version means the record must not exist yet.
	// A lost race yields [ErrPreconditionFailed].
	CompareAndSwap(ctx context.Context, record models.SyncRecord, version string) error
	// Delete removes the record of userID.
	Delete(ctx context.Context, userID string) error
}

// VersionedRecord is a record plus the storage version it was read at.
type VersionedRecord struct {
	Record  models.SyncRecord
	Version string
}
