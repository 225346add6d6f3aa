package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/hupe1980/travelmesh/core"
)

// ScriptedAgent is a core.Agent returning canned replies. Every call is
// recorded in a shared CallLog (when set) so tests can assert ordering
// across several agents.
type ScriptedAgent struct {
	name    string
	history core.History
	log     *CallLog

	mu      sync.Mutex
	replies map[string]string
	errs    map[string]string
}

// NewScriptedAgent creates an agent that answers "<name>: <input>" unless a
// reply was scripted with Reply.
func NewScriptedAgent(name string, log *CallLog) *ScriptedAgent {
	return &ScriptedAgent{name: name, log: log, replies: map[string]string{}, errs: map[string]string{}}
}

// Reply scripts the answer to an exact input (chainable).
func (s *ScriptedAgent) Reply(input, reply string) *ScriptedAgent {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies[input] = reply
	return s
}

// Fail makes the agent answer input with an error-marked reply (chainable).
func (s *ScriptedAgent) Fail(input, code string) *ScriptedAgent {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs[input] = code
	return s
}

// Name implements core.Agent.
func (s *ScriptedAgent) Name() string { return s.name }

// Initialize implements core.Agent.
func (s *ScriptedAgent) Initialize() error { return nil }

// History implements core.Agent.
func (s *ScriptedAgent) History() []core.Message { return s.history.Messages() }

// Process implements core.Agent.
func (s *ScriptedAgent) Process(_ context.Context, msg core.Message) core.Message {
	s.history.Append(msg)
	if s.log != nil {
		s.log.add(Call{Agent: s.name, Input: msg.Content()})
	}

	s.mu.Lock()
	code, failed := s.errs[msg.Content()]
	text, ok := s.replies[msg.Content()]
	s.mu.Unlock()

	var reply core.Message
	switch {
	case failed:
		reply = core.NewMessage(s.name, "scripted failure", map[string]any{core.MetaError: code})
	case ok:
		reply = core.NewMessage(s.name, text, nil)
	default:
		reply = core.NewMessage(s.name, fmt.Sprintf("%s: %s", s.name, msg.Content()), nil)
	}
	s.history.Append(reply)
	return reply
}

// Call is a single recorded Process invocation.
type Call struct {
	Agent string
	Input string
}

// CallLog records calls across agents in order.
type CallLog struct {
	mu    sync.Mutex
	calls []Call
}

func (l *CallLog) add(c Call) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, c)
}

// Calls returns a snapshot of recorded calls.
func (l *CallLog) Calls() []Call {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Call, len(l.calls))
	copy(out, l.calls)
	return out
}

// Agents returns the agent names of recorded calls, in order.
func (l *CallLog) Agents() []string {
	calls := l.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.Agent
	}
	return out
}
