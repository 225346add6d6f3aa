package core

import (
	"context"
	"errors"
)

var (
	// ErrAgentNotFound is returned when a message is addressed to a name that
	// has no registered agent.
	ErrAgentNotFound = errors.New("agent not found")

	// ErrEmptyInput is returned when a blank utterance is submitted.
	ErrEmptyInput = errors.New("empty input")
)

// Roles used in Turn.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is a single role-tagged entry of the conversation handed to a model.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Agent is a named conversational participant. Process never fails: any
// downstream problem is reported inside the returned Message's metadata.
type Agent interface {
	// Name returns the unique agent name used for addressing.
	Name() string

	// Initialize prepares the agent. Calling it more than once is a no-op.
	Initialize() error

	// Process handles an inbound message and returns the agent's reply.
	Process(ctx context.Context, msg Message) Message

	// History returns a snapshot of every message the agent has seen or sent.
	History() []Message
}
