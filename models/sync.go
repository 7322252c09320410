// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// Payload is the opaque application state being synchronized. Its structure
// is never interpreted by the sync core; it is stored and transferred as a
// raw JSON tree.
type Payload = json.RawMessage

// falsyPayloads are JSON literals that count as "no data provided".
var falsyPayloads = [][]byte{
	[]byte("null"),
	[]byte(`""`),
	[]byte("false"),
}

// IsEmptyPayload reports whether p carries no application data: it is absent,
// JSON null, or one of the falsy scalars "", false and any number equal to
// zero (0, -0, 0.0, 0e5).
func IsEmptyPayload(p Payload) bool {
	trimmed := bytes.TrimSpace(p)
	if len(trimmed) == 0 {
		return true
	}
	for _, falsy := range falsyPayloads {
		if bytes.Equal(trimmed, falsy) {
			return true
		}
	}
	return isZeroNumber(trimmed)
}

func isZeroNumber(literal []byte) bool {
	if c := literal[0]; c != '-' && (c < '0' || c > '9') {
		return false
	}
	f, err := strconv.ParseFloat(string(literal), 64)
	return err == nil && f == 0
}

// SyncStatus is the client-local state of the synchronization workflow.
// Exactly one value is current for a client at any instant.
type SyncStatus string

const (
	// SyncStatusIdle is the state of a freshly created client before its
	// first sync attempt.
	SyncStatusIdle SyncStatus = "idle"
	// SyncStatusOffline means the network is known to be unavailable.
	SyncStatusOffline SyncStatus = "offline"
	// SyncStatusSyncing means an upload or download is in flight.
	SyncStatusSyncing SyncStatus = "syncing"
	// SyncStatusSynced means the last exchange with the server succeeded.
	SyncStatusSynced SyncStatus = "synced"
	// SyncStatusError means the last exchange failed.
	SyncStatusError SyncStatus = "error"
	// SyncStatusConflict means the server rejected an upload because the
	// cloud copy is newer; automatic uploads are paused until resolution.
	SyncStatusConflict SyncStatus = "conflict"
)

// String implements fmt.Stringer.
func (s SyncStatus) String() string {
	return string(s)
}

// SyncRecord is the document persisted in the blob store, one per user.
// LastSync is assigned by the server only.
type SyncRecord struct {
	AppData  Payload   `json:"appData"`
	LastSync time.Time `json:"lastSync"`
	UserID   string    `json:"userId"`
}

// SyncPayload is what a device pushes to the server: its data plus the
// instant it believes its copy was last modified.
type SyncPayload struct {
	AppData        Payload
	LocalTimestamp time.Time
}

// PendingSyncEntry is the single durable slot holding a payload that could
// not be delivered. A new entry always replaces the previous one.
type PendingSyncEntry struct {
	Payload  Payload   `json:"data"`
	QueuedAt time.Time `json:"timestamp"`
}

// ConflictSnapshot holds both sides of an unresolved conflict. It lives only
// while the client status is [SyncStatusConflict].
type ConflictSnapshot struct {
	CloudPayload   Payload
	CloudTimestamp time.Time
	LocalPayload   Payload
}

// ResolutionChoice selects which side wins a conflict.
type ResolutionChoice string

const (
	// ResolveWithCloud adopts the cloud copy and discards the local payload.
	ResolveWithCloud ResolutionChoice = "cloud"
	// ResolveWithLocal force-pushes the local payload over the cloud copy.
	ResolveWithLocal ResolutionChoice = "local"
)
