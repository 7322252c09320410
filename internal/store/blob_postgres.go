package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/internal/utils"
)

// postgresBlobStore keeps objects in the sync_blobs table. Conditional
// writes are single statements guarded by the etag column, so they are
// atomic across server instances.
type postgresBlobStore struct {
	*DB
	etags  *utils.UUIDGenerator
	logger *logger.Logger
}

// NewPostgresBlobStore returns a [BlobStore] backed by db.
func NewPostgresBlobStore(db *DB, log *logger.Logger) BlobStore {
	return &postgresBlobStore{
		DB:     db,
		etags:  utils.NewUUIDGenerator(),
		logger: log,
	}
}

func (p *postgresBlobStore) Get(ctx context.Context, key string) (Blob, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetBlobQuery(key)
	if err != nil {
		return Blob{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		blob Blob
		meta []byte
	)
	err = p.DB.QueryRowContext(ctx, query, args...).Scan(&blob.Body, &blob.ETag, &meta)
	if errors.Is(err, sql.ErrNoRows) {
		return Blob{}, ErrBlobNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "postgresBlobStore.Get").Str("key", key).Msg("failed to select blob")
		return Blob{}, p.wrapDBError(ErrExecutingQuery, err)
	}

	if blob.Metadata, err = decodeBlobMeta(meta); err != nil {
		log.Err(err).Str("func", "postgresBlobStore.Get").Str("key", key).Msg("failed to decode blob metadata")
		return Blob{}, err
	}
	return blob, nil
}

func (p *postgresBlobStore) Head(ctx context.Context, key string) (BlobInfo, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildHeadBlobQuery(key)
	if err != nil {
		return BlobInfo{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		info BlobInfo
		meta []byte
	)
	err = p.DB.QueryRowContext(ctx, query, args...).Scan(&info.ETag, &meta)
	if errors.Is(err, sql.ErrNoRows) {
		return BlobInfo{}, ErrBlobNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "postgresBlobStore.Head").Str("key", key).Msg("failed to select blob metadata")
		return BlobInfo{}, p.wrapDBError(ErrExecutingQuery, err)
	}

	if info.Metadata, err = decodeBlobMeta(meta); err != nil {
		log.Err(err).Str("func", "postgresBlobStore.Head").Str("key", key).Msg("failed to decode blob metadata")
		return BlobInfo{}, err
	}
	return info, nil
}

func (p *postgresBlobStore) Put(ctx context.Context, key string, body []byte, meta Metadata) (string, error) {
	etag := p.newETag()

	rawMeta, err := encodeBlobMeta(meta)
	if err != nil {
		return "", err
	}

	query, args, err := buildUpsertBlobQuery(key, body, rawMeta, etag)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = p.DB.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "postgresBlobStore.Put").Str("key", key).Msg("failed to upsert blob")
		return "", p.wrapDBError(ErrExecutingStatement, err)
	}

	return etag, nil
}

func (p *postgresBlobStore) PutIfMatch(ctx context.Context, key string, body []byte, meta Metadata, expected string) (string, error) {
	etag := p.newETag()

	rawMeta, err := encodeBlobMeta(meta)
	if err != nil {
		return "", err
	}

	var (
		query string
		args  []any
	)
	if expected == "" {
		query, args, err = buildInsertBlobIfAbsentQuery(key, body, rawMeta, etag)
	} else {
		query, args, err = buildUpdateBlobIfMatchQuery(key, body, rawMeta, etag, expected)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := p.DB.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "postgresBlobStore.PutIfMatch").Str("key", key).Msg("failed to write blob")
		return "", p.wrapDBError(ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return "", p.wrapDBError(ErrExecutingStatement, err)
	}
	if affected == 0 {
		return "", ErrPreconditionFailed
	}

	return etag, nil
}

func (p *postgresBlobStore) Delete(ctx context.Context, key string) error {
	query, args, err := buildDeleteBlobQuery(key)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = p.DB.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "postgresBlobStore.Delete").Str("key", key).Msg("failed to delete blob")
		return p.wrapDBError(ErrExecutingStatement, err)
	}
	return nil
}

// newETag returns a version tag that is never reused, even when the same
// body is written again.
func (p *postgresBlobStore) newETag() string {
	return `"` + p.etags.Generate() + `"`
}

func encodeBlobMeta(meta Metadata) (string, error) {
	if len(meta) == 0 {
		return "{}", nil
	}
	raw, err := json.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("failed to encode blob metadata: %w", err)
	}
	return string(raw), nil
}

func decodeBlobMeta(raw []byte) (Metadata, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var meta Metadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, fmt.Errorf("failed to decode blob metadata: %w", err)
	}
	if len(meta) == 0 {
		return nil, nil
	}
	return meta, nil
}
