// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client defines the lifecycle of a runnable client session.
type Client interface {
	// Run starts the sync session and blocks until ctx is cancelled.
	Run(ctx context.Context) error
	// Close releases local storage and stops pending timers.
	Close() error
}

var _ Client = (*App)(nil)
