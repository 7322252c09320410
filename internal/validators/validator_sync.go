package validators

import (
	"context"

	"github.com/MKhiriev/go-sync-keeper/models"
)

const (
	FieldAppData        = "app_data"
	FieldLocalTimestamp = "local_timestamp"
	FieldUserID         = "user_id"
)

// SyncValidator checks the inputs of sync writes. appData must carry data in
// the sense of [models.IsEmptyPayload]; the falsy JSON scalars count as
// missing.
type SyncValidator struct {
}

func NewSyncValidator() Validator {
	return &SyncValidator{}
}

func (v *SyncValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.SyncPayload:
		return v.validateSyncPayload(ctx, value, fields...)
	case *models.SyncPayload:
		return v.validateSyncPayload(ctx, *value, fields...)

	case models.Payload:
		return v.validateAppData(value)

	case models.SyncRecord:
		return v.validateSyncRecord(ctx, value, fields...)
	case *models.SyncRecord:
		return v.validateSyncRecord(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *SyncValidator) validateSyncPayload(_ context.Context, payload models.SyncPayload, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldAppData, FieldLocalTimestamp}
	}

	for _, f := range fields {
		switch f {
		case FieldAppData:
			if err := v.validateAppData(payload.AppData); err != nil {
				return err
			}
		case FieldLocalTimestamp:
			if payload.LocalTimestamp.IsZero() {
				return ErrNoLocalTimestamp
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *SyncValidator) validateSyncRecord(_ context.Context, record models.SyncRecord, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldAppData}
	}

	for _, f := range fields {
		switch f {
		case FieldUserID:
			if record.UserID == "" {
				return ErrNoUserID
			}
		case FieldAppData:
			if err := v.validateAppData(record.AppData); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *SyncValidator) validateAppData(data models.Payload) error {
	if models.IsEmptyPayload(data) {
		return ErrNoAppData
	}
	return nil
}
