// Package server runs the sync server's HTTP and gRPC transports.
//
// Either transport may be disabled by leaving its address empty. Both are
// stopped together on SIGTERM, SIGINT or SIGQUIT.
package server
