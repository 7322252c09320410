// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the message strings shared by the HTTP and gRPC
// handlers, so both transports answer with the same wording.
package app

// Error messages written to clients.
const (
	// MsgInvalidJSON is returned when a request body cannot be decoded.
	MsgInvalidJSON = "Invalid JSON was passed"

	// MsgNotConfigured is returned while no blob store backend is configured.
	MsgNotConfigured = "Cloud sync not configured"

	// MsgNoDataProvided is returned when appData is missing or falsy.
	MsgNoDataProvided = "No data provided"

	// MsgNoLocalTimestamp is returned when a conditional push carries no
	// localTimestamp.
	MsgNoLocalTimestamp = "No local timestamp provided"

	// MsgConflictDetected accompanies a conflict answer that carries the
	// cloud copy.
	MsgConflictDetected = "Conflict detected"

	MsgFailedToDownload  = "Failed to download data"
	MsgFailedToSync      = "Failed to sync data"
	MsgFailedToForceSync = "Failed to force sync"
	MsgFailedToGetStatus = "Failed to get sync status"
)

// Success messages.
const (
	MsgNoCloudData     = "No cloud data found"
	MsgDataDownloaded  = "Data downloaded"
	MsgDataSynced      = "Data synced to cloud"
	MsgDataForceSynced = "Data force synced to cloud"
)
