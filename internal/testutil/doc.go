// Package testutil contains helpers used across tests to reduce boilerplate
// when wiring agents and asserting dispatch order. They are not intended for
// production usage.
package testutil
