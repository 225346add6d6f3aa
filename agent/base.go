package agent

import (
	"context"
	"fmt"
	"sync"

	"github.com/hupe1980/travelmesh/core"
	"github.com/qmuntal/stateless"
)

// Lifecycle states and triggers driving BaseAgent.
const (
	StateUninitialized = "uninitialized"
	StateInitialized   = "initialized"

	triggerInitialize = "initialize"
)

// BaseAgent bundles shared identity, history and lifecycle handling. Embed it
// in concrete agent implementations and supply a Process method to satisfy
// the core.Agent interface.
type BaseAgent struct {
	name        string
	description string
	history     core.History

	mu  sync.Mutex // serializes lifecycle transitions
	fsm *stateless.StateMachine
}

// NewBaseAgent constructs a BaseAgent with generated description (customizable via SetDescription).
// onInit runs exactly once, on the first transition into StateInitialized.
func NewBaseAgent(name string, onInit func() error) *BaseAgent {
	b := &BaseAgent{
		name:        name,
		description: fmt.Sprintf("Agent %s", name),
		fsm:         stateless.NewStateMachine(StateUninitialized),
	}

	b.fsm.Configure(StateUninitialized).
		Permit(triggerInitialize, StateInitialized)

	b.fsm.Configure(StateInitialized).
		OnEntry(func(_ context.Context, _ ...any) error {
			if onInit == nil {
				return nil
			}
			return onInit()
		}).
		Ignore(triggerInitialize)

	return b
}

// Name returns the human-readable name for this agent.
func (b *BaseAgent) Name() string { return b.name }

// Description returns a detailed description of this agent's purpose.
func (b *BaseAgent) Description() string { return b.description }

// SetDescription updates the agent's description.
func (b *BaseAgent) SetDescription(desc string) { b.description = desc }

// Initialize transitions the agent into StateInitialized. Subsequent calls
// are ignored.
func (b *BaseAgent) Initialize() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.fsm.Fire(triggerInitialize); err != nil {
		return fmt.Errorf("initialize agent %s: %w", b.name, err)
	}
	return nil
}

// Initialized reports whether Initialize has completed.
func (b *BaseAgent) Initialized() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.fsm.MustState() == StateInitialized
}

// History returns a snapshot of every message this agent has processed or produced.
func (b *BaseAgent) History() []core.Message { return b.history.Messages() }

// AddToHistory appends a message to the agent's history.
func (b *BaseAgent) AddToHistory(msg core.Message) { b.history.Append(msg) }
