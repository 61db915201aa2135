package server

import "context"

// Server defines the lifecycle contract of the web server.
//
// RunServer blocks until ctx is cancelled, a stop signal arrives or serving
// fails. Shutdown stops accepting connections and waits for in-flight
// requests until ctx expires.
type Server interface {
	// RunServer binds the listener and serves requests until stopped.
	RunServer(ctx context.Context) error

	// Shutdown gracefully stops the server.
	Shutdown(ctx context.Context) error
}
