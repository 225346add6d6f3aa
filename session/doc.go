// Package session keeps per-client state for long running front ends.
//
// The HTTP server uses it to give every browser session its own routing
// state and agent histories, created lazily from a factory on first use.
package session
