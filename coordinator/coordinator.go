// Package coordinator implements the agent registry and message dispatcher.
// It owns the global transcript: the ordered record of every message routed
// to an agent and every reply produced.
package coordinator

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/hupe1980/travelmesh/core"
	"github.com/hupe1980/travelmesh/logging"
)

// Hook observes a completed dispatch.
type Hook func(target string, in, out core.Message, elapsed time.Duration)

// Options configures a Coordinator.
type Options struct {
	Logger logging.Logger
	Hooks  []Hook
}

// Coordinator routes messages to registered agents and records the exchange.
type Coordinator struct {
	mu     sync.RWMutex
	agents map[string]core.Agent
	order  []string

	transcriptMu sync.Mutex
	transcript   []core.Message

	hooks  []Hook
	logger logging.Logger
}

// New creates an empty Coordinator.
func New(optFns ...func(o *Options)) *Coordinator {
	opts := Options{
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Coordinator{
		agents: make(map[string]core.Agent),
		hooks:  opts.Hooks,
		logger: logging.With(opts.Logger, "component", "coordinator"),
	}
}

// Register adds agents under their names. A later registration replaces an
// earlier one with the same name.
func (c *Coordinator) Register(agents ...core.Agent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, a := range agents {
		name := a.Name()
		if _, exists := c.agents[name]; exists {
			c.logger.Debug("replacing agent", "agent", name)
		} else {
			c.order = append(c.order, name)
		}
		c.agents[name] = a
	}
}

// Remove unregisters the named agent. It reports whether an agent was removed.
func (c *Coordinator) Remove(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.agents[name]; !ok {
		return false
	}
	delete(c.agents, name)
	c.order = slices.DeleteFunc(c.order, func(n string) bool { return n == name })
	return true
}

// Agent looks up a registered agent by name.
func (c *Coordinator) Agent(name string) (core.Agent, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	a, ok := c.agents[name]
	return a, ok
}

// Names returns the registered agent names in registration order.
func (c *Coordinator) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.order)
}

// Process dispatches msg to the target agent. An unknown target yields an
// error wrapping core.ErrAgentNotFound and leaves every history untouched.
// On success the inbound message and the reply are appended to the
// transcript, after the agent has recorded them in its own history.
func (c *Coordinator) Process(ctx context.Context, msg core.Message, target string) (core.Message, error) {
	a, ok := c.Agent(target)
	if !ok {
		return core.Message{}, fmt.Errorf("%w: %q", core.ErrAgentNotFound, target)
	}

	start := time.Now()
	reply := a.Process(ctx, msg)
	elapsed := time.Since(start)

	c.transcriptMu.Lock()
	c.transcript = append(c.transcript, msg, reply)
	c.transcriptMu.Unlock()

	if reply.IsError() {
		c.logger.Warn("agent replied with error", "agent", target, "error", reply.Err(), "elapsed", elapsed)
	} else {
		c.logger.Debug("dispatched", "agent", target, "elapsed", elapsed)
	}

	for _, h := range c.hooks {
		h(target, msg, reply, elapsed)
	}

	return reply, nil
}

// Transcript returns a snapshot of every message routed through the coordinator.
func (c *Coordinator) Transcript() []core.Message {
	c.transcriptMu.Lock()
	defer c.transcriptMu.Unlock()
	return slices.Clone(c.transcript)
}
