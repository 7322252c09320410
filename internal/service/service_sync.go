package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/internal/store"
	"github.com/MKhiriev/go-sync-keeper/internal/utils"
	"github.com/MKhiriev/go-sync-keeper/internal/validators"
	"github.com/MKhiriev/go-sync-keeper/models"
)

const (
	acceptMaxRetries  = 5
	acceptRetryBase   = 10 * time.Millisecond
	acceptRetryJitter = 5 * time.Millisecond
)

// syncService is the concrete implementation of SyncService on top of a
// SyncRecordRepository. A nil repository means storage is not configured.
type syncService struct {
	records   store.SyncRecordRepository
	clock     utils.Clock
	validator validators.Validator

	maxRetries uint64

	logger *logger.Logger
}

// NewSyncService constructs a SyncService. records may be nil, in which case
// every data operation fails with ErrStorageNotConfigured.
func NewSyncService(records store.SyncRecordRepository, clock utils.Clock, logger *logger.Logger) SyncService {
	return &syncService{
		records:    records,
		clock:      clock,
		validator:  validators.NewSyncValidator(),
		maxRetries: acceptMaxRetries,
		logger:     logger,
	}
}

func (s *syncService) Configured() bool {
	return s.records != nil
}

// Pull implements SyncService.
func (s *syncService) Pull(ctx context.Context, userID string) (models.PullResponse, error) {
	if !s.Configured() {
		return models.PullResponse{}, ErrStorageNotConfigured
	}

	current, err := s.records.Get(ctx, userID)
	if errors.Is(err, store.ErrSyncRecordNotFound) {
		return models.PullResponse{}, nil
	}
	if err != nil {
		return models.PullResponse{}, fmt.Errorf("read sync record: %w", err)
	}

	lastSync := current.Record.LastSync
	return models.PullResponse{
		Data:     current.Record.AppData,
		LastSync: &lastSync,
	}, nil
}

// Accept implements SyncService.
//
// The conflict check runs inside the compare-and-swap loop of writeRecord,
// so a conflict is always judged against the copy actually being replaced.
// Equal timestamps are accepted.
func (s *syncService) Accept(ctx context.Context, userID string, payload models.SyncPayload) (time.Time, error) {
	if !s.Configured() {
		return time.Time{}, ErrStorageNotConfigured
	}
	if err := s.validator.Validate(ctx, payload); err != nil {
		return time.Time{}, err
	}

	return s.writeRecord(ctx, "syncService.Accept", userID, payload.AppData, func(current store.VersionedRecord, err error) error {
		if err != nil {
			return err
		}
		if current.Record.LastSync.After(payload.LocalTimestamp) {
			return &ConflictError{
				CloudData:      current.Record.AppData,
				CloudTimestamp: current.Record.LastSync,
			}
		}
		return nil
	})
}

// Force implements SyncService. It skips the conflict check but still writes
// through compare-and-swap, so a concurrent Accept is never overwritten with
// an older lastSync.
func (s *syncService) Force(ctx context.Context, userID string, data models.Payload) (time.Time, error) {
	if !s.Configured() {
		return time.Time{}, ErrStorageNotConfigured
	}
	if err := s.validator.Validate(ctx, data); err != nil {
		return time.Time{}, err
	}

	lastSync, err := s.writeRecord(ctx, "syncService.Force", userID, data, func(_ store.VersionedRecord, err error) error {
		// an undecodable record is replaced, keyed on the version it was read at
		if errors.Is(err, store.ErrCorruptRecord) {
			return nil
		}
		return err
	})
	if err != nil {
		return time.Time{}, fmt.Errorf("force write sync record: %w", err)
	}
	return lastSync, nil
}

// writeRecord stores data as userID's record with a read, an admit check and
// a compare-and-swap on the version read. A lost race repeats the sequence.
// admit sees the current record and the read error, if any; it is not called
// when no record exists yet. The new lastSync never precedes the replaced one.
func (s *syncService) writeRecord(
	ctx context.Context,
	op, userID string,
	data models.Payload,
	admit func(current store.VersionedRecord, readErr error) error,
) (time.Time, error) {
	log := logger.FromContext(ctx)

	var written time.Time
	attempt := 0
	err := retry.Do(ctx, s.backoff(), func(ctx context.Context) error {
		attempt++

		current, err := s.records.Get(ctx, userID)
		if errors.Is(err, store.ErrSyncRecordNotFound) {
			current = store.VersionedRecord{}
		} else if err = admit(current, err); err != nil {
			return retryableStorageError(err)
		}

		record := models.SyncRecord{
			AppData:  data,
			LastSync: s.nextLastSync(current.Record.LastSync),
			UserID:   userID,
		}
		if err = s.records.CompareAndSwap(ctx, record, current.Version); err != nil {
			if errors.Is(err, store.ErrPreconditionFailed) {
				log.Debug().Str("func", op).Str("user_id", userID).Int("attempt", attempt).Msg("lost compare-and-swap race")
				return retry.RetryableError(err)
			}
			return retryableStorageError(err)
		}

		written = record.LastSync
		return nil
	})
	if errors.Is(err, store.ErrPreconditionFailed) {
		return time.Time{}, fmt.Errorf("%w: %w", ErrTooManyConcurrentWrites, err)
	}
	if err != nil {
		return time.Time{}, err
	}

	return written, nil
}

// Status implements SyncService. It reads only the record metadata, never
// the payload.
func (s *syncService) Status(ctx context.Context, userID string) (models.StatusResponse, error) {
	status := models.StatusResponse{Configured: s.Configured(), User: userID}
	if !status.Configured {
		return status, nil
	}

	lastSync, err := s.records.LastSync(ctx, userID)
	if errors.Is(err, store.ErrSyncRecordNotFound) {
		return status, nil
	}
	if err != nil {
		return models.StatusResponse{}, fmt.Errorf("read sync record: %w", err)
	}

	status.LastSync = &lastSync
	return status, nil
}

// nextLastSync returns the server-assigned instant of a write: the current
// UTC time at millisecond precision, never earlier than previous.
func (s *syncService) nextLastSync(previous time.Time) time.Time {
	now := s.clock.Now().UTC().Truncate(time.Millisecond)
	if previous.After(now) {
		return previous.UTC()
	}
	return now
}

func (s *syncService) backoff() retry.Backoff {
	b := retry.NewExponential(acceptRetryBase)
	b = retry.WithJitter(acceptRetryJitter, b)
	return retry.WithMaxRetries(s.maxRetries, b)
}

func retryableStorageError(err error) error {
	if errors.Is(err, store.ErrStorageUnavailable) {
		return retry.RetryableError(err)
	}
	return err
}
