// Package logging provides a minimal logging interface and adapters for travelmesh.
//
// The Logger interface defines the leveled methods (Debug, Info, Warn, Error)
// that agents, the coordinator and the front ends use. This package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - NoOpLogger for silent operation (testing, minimal setups)
//
// Usage:
//
//	logger := logging.NewSlogLogger(logging.LogLevelInfo, "json", false)
//	mesh, err := travelmesh.New(provider, func(o *travelmesh.Options) { o.Logger = logger })
package logging
