// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// UploadOutcome tags the result of a client upload.
type UploadOutcome string

const (
	// UploadAccepted means the server stored the payload.
	UploadAccepted UploadOutcome = "accepted"
	// UploadConflict means the server holds a newer copy. The caller must
	// resolve the conflict before further uploads take effect.
	UploadConflict UploadOutcome = "conflict"
	// UploadQueued means the network was unavailable and the payload was
	// placed in the pending slot.
	UploadQueued UploadOutcome = "queued"
	// UploadSkipped means nothing happened, e.g. the client is not
	// authenticated.
	UploadSkipped UploadOutcome = "skipped"
	// UploadFailed means the attempt failed; ErrKind tells whether the
	// payload was queued for retry.
	UploadFailed UploadOutcome = "failed"
)

// UploadErrorKind classifies an upload failure.
type UploadErrorKind string

const (
	ErrKindNone          UploadErrorKind = ""
	ErrKindAuth          UploadErrorKind = "auth"
	ErrKindValidation    UploadErrorKind = "validation"
	ErrKindConfiguration UploadErrorKind = "configuration"
	ErrKindTransient     UploadErrorKind = "transient"
)

// Retryable reports whether failures of this kind keep the payload queued.
func (k UploadErrorKind) Retryable() bool {
	return k == ErrKindConfiguration || k == ErrKindTransient
}

// UploadResult is the tagged result of SyncClient.Upload.
type UploadResult struct {
	Outcome  UploadOutcome
	LastSync time.Time
	Conflict *ConflictSnapshot
	ErrKind  UploadErrorKind
	Err      error
}

// Terminal reports whether the upload reached an outcome after which a
// pending entry may be discarded.
func (r UploadResult) Terminal() bool {
	return r.Outcome == UploadAccepted || r.Outcome == UploadConflict
}

// PullResult is the client view of a pulled record. Data and LastSync are
// nil for a user who never pushed anything.
type PullResult struct {
	Data     Payload
	LastSync *time.Time
}

// CloudUpdate reports whether the cloud copy is newer than the local one.
type CloudUpdate struct {
	Newer    bool
	Data     Payload
	LastSync *time.Time
}

// ResolveResult is returned by conflict resolution. For the cloud branch
// AdoptPayload holds the data the caller must install locally.
type ResolveResult struct {
	Choice       ResolutionChoice
	AdoptPayload Payload
	LastSync     time.Time
}
