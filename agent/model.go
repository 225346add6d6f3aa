package agent

import (
	"context"
	"errors"
	"sync"

	"github.com/hupe1980/travelmesh/core"
	"github.com/hupe1980/travelmesh/logging"
	"github.com/hupe1980/travelmesh/model"
)

// DefaultWindowSize is the number of trailing history entries sent to the provider.
const DefaultWindowSize = 5

// ModelAgentOptions configures a ModelAgent instance.
//
// Use functional options with NewModelAgent to override defaults.
type ModelAgentOptions struct {
	// SystemPrompt is the persona line; defaults to "You are <name>, a helpful AI assistant."
	SystemPrompt string
	// Specialization is appended to the persona after a blank line.
	Specialization string
	// DefaultSpecialization is applied on Initialize when Specialization is empty.
	DefaultSpecialization string
	Description           string
	WindowSize            int
	Logger                logging.Logger
}

// ModelAgent is a conversational agent backed by a model.Provider.
//
// Each call to Process:
//   - appends the inbound message to the agent's history
//   - sends the last WindowSize entries, role-tagged, plus the system prompt
//   - appends and returns the reply
//
// Provider failures never escape as errors; they are converted into a reply
// whose metadata carries the "error" key.
type ModelAgent struct {
	*BaseAgent
	provider   model.Provider
	windowSize int
	logger     logging.Logger

	promptMu              sync.RWMutex
	instruction           Instruction
	defaultSpecialization string

	processMu sync.Mutex // one turn at a time per agent
}

// NewModelAgent creates a new model-based agent with sensible defaults.
func NewModelAgent(name string, provider model.Provider, optFns ...func(o *ModelAgentOptions)) *ModelAgent {
	opts := ModelAgentOptions{
		SystemPrompt: PersonaPrompt(name, "helpful"),
		WindowSize:   DefaultWindowSize,
		Logger:       logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.WindowSize <= 0 {
		opts.WindowSize = DefaultWindowSize
	}

	a := &ModelAgent{
		provider:              provider,
		windowSize:            opts.WindowSize,
		logger:                logging.With(opts.Logger, "agent", name),
		instruction:           NewInstruction(opts.SystemPrompt).WithSpecialization(opts.Specialization),
		defaultSpecialization: opts.DefaultSpecialization,
	}
	a.BaseAgent = NewBaseAgent(name, a.onInitialize)
	if opts.Description != "" {
		a.SetDescription(opts.Description)
	}

	return a
}

// onInitialize applies the default specialization and surfaces provider
// configuration problems as warnings.
func (a *ModelAgent) onInitialize() error {
	a.promptMu.Lock()
	if a.instruction.Specialization() == "" && a.defaultSpecialization != "" {
		a.instruction = a.instruction.WithSpecialization(a.defaultSpecialization)
	}
	a.promptMu.Unlock()

	if checker, ok := a.provider.(model.Checker); ok {
		if err := checker.Check(); err != nil {
			a.logger.Warn("provider configuration problem", "provider", a.provider.Info().Provider, "error", err)
		}
	}

	a.logger.Debug("agent initialized", "model", a.provider.Info().Name)

	return nil
}

// SetSpecialization replaces the specialization block of the system prompt.
func (a *ModelAgent) SetSpecialization(s string) {
	a.promptMu.Lock()
	defer a.promptMu.Unlock()
	a.instruction = a.instruction.WithSpecialization(s)
}

// Specialization returns the current specialization block.
func (a *ModelAgent) Specialization() string {
	a.promptMu.RLock()
	defer a.promptMu.RUnlock()
	return a.instruction.Specialization()
}

// SystemPrompt returns the full prompt sent to the provider.
func (a *ModelAgent) SystemPrompt() string {
	a.promptMu.RLock()
	defer a.promptMu.RUnlock()
	return a.instruction.String()
}

// Provider returns the backing model provider.
func (a *ModelAgent) Provider() model.Provider { return a.provider }

// Process implements core.Agent.
func (a *ModelAgent) Process(ctx context.Context, msg core.Message) core.Message {
	if !a.Initialized() {
		if err := a.Initialize(); err != nil {
			a.logger.Warn("lazy initialization failed", "error", err)
		}
	}

	a.processMu.Lock()
	defer a.processMu.Unlock()

	a.AddToHistory(msg)

	req := model.Request{
		SystemPrompt: a.SystemPrompt(),
		Turns:        a.buildTurns(msg),
	}

	info := a.provider.Info()
	resp, err := a.provider.Generate(ctx, req)

	var reply core.Message
	if err != nil {
		reply = a.errorReply(info, err)
	} else {
		reply = core.NewMessage(a.Name(), resp.Text, map[string]any{
			core.MetaProvider: info.Provider,
			core.MetaModel:    firstNonEmpty(resp.Model, info.Name),
		})
	}

	a.AddToHistory(reply)

	return reply
}

// buildTurns converts the history window into provider turns. A message is
// tagged assistant only when this agent sent it. The current message is
// appended again if the window does not already end with its content.
func (a *ModelAgent) buildTurns(current core.Message) []core.Turn {
	window := a.history.Window(a.windowSize)
	turns := make([]core.Turn, 0, len(window)+1)

	for _, m := range window {
		role := core.RoleUser
		if m.Sender() == a.Name() {
			role = core.RoleAssistant
		}
		turns = append(turns, core.Turn{Role: role, Content: m.Content()})
	}

	if len(turns) == 0 || turns[len(turns)-1].Content != current.Content() {
		turns = append(turns, core.Turn{Role: core.RoleUser, Content: current.Content()})
	}

	return turns
}

func (a *ModelAgent) errorReply(info model.Info, err error) core.Message {
	me := model.AsError(err)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		a.logger.Warn("generation aborted", "error", err)
	} else {
		a.logger.Error("generation failed", "code", me.Code, "details", me.Details)
	}

	md := map[string]any{
		core.MetaError:    me.Code,
		core.MetaProvider: info.Provider,
		core.MetaModel:    info.Name,
	}
	if me.Details != "" {
		md[core.MetaDetails] = me.Details
	}
	if me.WaitTime != "" {
		md[core.MetaWaitTime] = me.WaitTime
	}

	return core.NewMessage(a.Name(), me.Message, md)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
