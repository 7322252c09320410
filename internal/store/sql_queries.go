package store

import (
	sq "github.com/Masterminds/squirrel"
)

const blobsTable = "sync_blobs"

// psql renders $n placeholders for PostgreSQL.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func buildGetBlobQuery(key string) (string, []any, error) {
	return psql.
		Select("body", "etag", "meta").
		From(blobsTable).
		Where(sq.Eq{"key": key}).
		ToSql()
}

func buildHeadBlobQuery(key string) (string, []any, error) {
	return psql.
		Select("etag", "meta").
		From(blobsTable).
		Where(sq.Eq{"key": key}).
		ToSql()
}

// meta is the JSON text of the object's Metadata.
func buildUpsertBlobQuery(key string, body []byte, meta, etag string) (string, []any, error) {
	return psql.
		Insert(blobsTable).
		Columns("key", "body", "etag", "meta", "updated_at").
		Values(key, body, etag, meta, sq.Expr("NOW()")).
		Suffix("ON CONFLICT (key) DO UPDATE SET body = EXCLUDED.body, etag = EXCLUDED.etag, meta = EXCLUDED.meta, updated_at = EXCLUDED.updated_at").
		ToSql()
}

func buildInsertBlobIfAbsentQuery(key string, body []byte, meta, etag string) (string, []any, error) {
	return psql.
		Insert(blobsTable).
		Columns("key", "body", "etag", "meta", "updated_at").
		Values(key, body, etag, meta, sq.Expr("NOW()")).
		Suffix("ON CONFLICT (key) DO NOTHING").
		ToSql()
}

func buildUpdateBlobIfMatchQuery(key string, body []byte, meta, etag, expected string) (string, []any, error) {
	return psql.
		Update(blobsTable).
		Set("body", body).
		Set("etag", etag).
		Set("meta", meta).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"key": key, "etag": expected}).
		ToSql()
}

func buildDeleteBlobQuery(key string) (string, []any, error) {
	return psql.
		Delete(blobsTable).
		Where(sq.Eq{"key": key}).
		ToSql()
}
