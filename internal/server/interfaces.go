package server

import "context"

// Server defines the lifecycle of the sync server's transports.
type Server interface {
	// RunServer serves until an OS stop signal arrives.
	RunServer()

	// Run serves until ctx is cancelled, then shuts every transport down.
	Run(ctx context.Context) error

	// Shutdown gracefully stops all transports.
	Shutdown()
}
