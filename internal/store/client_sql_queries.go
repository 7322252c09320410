// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

const (
	stateKeyPending  = "pending"
	stateKeyLastSync = "last_sync"

	getStateValue = `SELECT value FROM client_state WHERE key = ?;`

	setStateValue = `
		INSERT INTO client_state (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at;`

	deleteStateValue = `DELETE FROM client_state WHERE key = ?;`
)
