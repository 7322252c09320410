package store

import "errors"

// Sentinel errors returned by blob stores and repositories. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrBlobNotFound is returned by [BlobStore.Get] when no object exists
	// under the requested key.
	ErrBlobNotFound = errors.New("blob not found")

	// ErrPreconditionFailed is returned by [BlobStore.PutIfMatch] when the
	// stored object no longer carries the expected ETag, or already exists
	// when the write was conditioned on absence.
	ErrPreconditionFailed = errors.New("blob precondition failed")

	// ErrSyncRecordNotFound is returned when a user has never pushed any data.
	ErrSyncRecordNotFound = errors.New("sync record was not found")

	// ErrStorageUnavailable wraps backend failures that may succeed when
	// attempted again (lost connection, deadlock, throttling).
	ErrStorageUnavailable = errors.New("storage is temporarily unavailable")

	// ErrCorruptRecord is returned when a stored object cannot be decoded.
	ErrCorruptRecord = errors.New("stored sync record is corrupt")

	// ErrUnknownBackend is returned when the configured backend name is not
	// supported.
	ErrUnknownBackend = errors.New("unknown storage backend")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing an INSERT, UPDATE or
	// DELETE fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a result row fails.
	ErrScanningRow = errors.New("failed to scan row")
)
