package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/models"
)

// MetaLastSync is the blob metadata key that mirrors the record's lastSync
// in RFC 3339 form.
const MetaLastSync = "last-sync"

// syncRecordRepository stores every user's [models.SyncRecord] as one JSON
// object in a [BlobStore]. The blob ETag is the record version.
type syncRecordRepository struct {
	blobs  BlobStore
	logger *logger.Logger
}

// NewSyncRecordRepository returns a [SyncRecordRepository] on top of blobs.
func NewSyncRecordRepository(blobs BlobStore, log *logger.Logger) SyncRecordRepository {
	return &syncRecordRepository{
		blobs:  blobs,
		logger: log,
	}
}

// RecordKey is the object key of a user's record: users/{userID}/data.json.
// The user ID is path-escaped so it always occupies a single segment.
func RecordKey(userID string) string {
	return "users/" + url.PathEscape(userID) + "/data.json"
}

func (r *syncRecordRepository) Get(ctx context.Context, userID string) (VersionedRecord, error) {
	log := logger.FromContext(ctx)

	blob, err := r.blobs.Get(ctx, RecordKey(userID))
	if errors.Is(err, ErrBlobNotFound) {
		return VersionedRecord{}, ErrSyncRecordNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "syncRecordRepository.Get").Str("user_id", userID).Msg("failed to read sync record")
		return VersionedRecord{}, err
	}

	var record models.SyncRecord
	if err = json.Unmarshal(blob.Body, &record); err != nil {
		log.Err(err).Str("func", "syncRecordRepository.Get").Str("user_id", userID).Msg("failed to decode sync record")
		return VersionedRecord{Version: blob.ETag}, fmt.Errorf("%w: %w", ErrCorruptRecord, err)
	}

	return VersionedRecord{Record: record, Version: blob.ETag}, nil
}

func (r *syncRecordRepository) LastSync(ctx context.Context, userID string) (time.Time, error) {
	log := logger.FromContext(ctx)

	info, err := r.blobs.Head(ctx, RecordKey(userID))
	if errors.Is(err, ErrBlobNotFound) {
		return time.Time{}, ErrSyncRecordNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "syncRecordRepository.LastSync").Str("user_id", userID).Msg("failed to read sync record metadata")
		return time.Time{}, err
	}

	if raw, ok := info.Metadata[MetaLastSync]; ok {
		lastSync, err := time.Parse(time.RFC3339Nano, raw)
		if err == nil {
			return lastSync, nil
		}
		log.Warn().Err(err).Str("func", "syncRecordRepository.LastSync").Str("user_id", userID).Msg("bad last-sync metadata")
	}

	// objects written without metadata need the full read
	current, err := r.Get(ctx, userID)
	if err != nil {
		return time.Time{}, err
	}
	return current.Record.LastSync, nil
}

func (r *syncRecordRepository) Save(ctx context.Context, record models.SyncRecord) error {
	body, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode sync record: %w", err)
	}

	if _, err = r.blobs.Put(ctx, RecordKey(record.UserID), body, recordMeta(record)); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "syncRecordRepository.Save").
			Str("user_id", record.UserID).
			Msg("failed to write sync record")
		return err
	}

	return nil
}

func (r *syncRecordRepository) CompareAndSwap(ctx context.Context, record models.SyncRecord, version string) error {
	body, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode sync record: %w", err)
	}

	if _, err = r.blobs.PutIfMatch(ctx, RecordKey(record.UserID), body, recordMeta(record), version); err != nil {
		if !errors.Is(err, ErrPreconditionFailed) {
			logger.FromContext(ctx).Err(err).
				Str("func", "syncRecordRepository.CompareAndSwap").
				Str("user_id", record.UserID).
				Msg("failed to write sync record")
		}
		return err
	}

	return nil
}

func (r *syncRecordRepository) Delete(ctx context.Context, userID string) error {
	return r.blobs.Delete(ctx, RecordKey(userID))
}

func recordMeta(record models.SyncRecord) Metadata {
	return Metadata{MetaLastSync: record.LastSync.UTC().Format(time.RFC3339Nano)}
}
