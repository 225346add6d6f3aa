// Package travelmesh wires a team of travel agents behind a single entry
// point. Each user utterance is classified and then either answered by one
// agent or expanded into a full travel guide built from every specialist.
//
// Typical usage:
//
//	provider := openai.NewProvider(func(o *openai.Options) { o.APIKey = key })
//	mesh, err := travelmesh.New(provider)
//	reply, err := mesh.Handle(ctx, "I want to go to Paris on July 4th")
//	fmt.Println(reply.Text)
package travelmesh

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/hupe1980/travelmesh/agent"
	"github.com/hupe1980/travelmesh/aggregator"
	"github.com/hupe1980/travelmesh/artifact"
	"github.com/hupe1980/travelmesh/coordinator"
	"github.com/hupe1980/travelmesh/core"
	"github.com/hupe1980/travelmesh/logging"
	"github.com/hupe1980/travelmesh/model"
	"github.com/hupe1980/travelmesh/router"
)

// Options configures a Mesh.
type Options struct {
	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
	// Store persists composed travel guides. Nil disables persistence.
	Store artifact.Store
	// Hooks observe every dispatch made through the coordinator.
	Hooks []coordinator.Hook
	// Agents replaces the preset travel team. The first agent is the general
	// agent and the initial current agent.
	Agents []core.Agent
	// GuideObserver is called after every travel guide attempt.
	GuideObserver func(guide *aggregator.Guide, err error)
	// Notify receives progress events while an utterance is handled.
	Notify func(ev Event)
}

// EventKind identifies a progress event.
type EventKind int

const (
	// EventSwitched: the current agent changed to Agent.
	EventSwitched EventKind = iota + 1
	// EventTravelIntent: a guide for Location and Date is being composed.
	EventTravelIntent
	// EventFallback: composing failed with Err; Agent answers instead.
	EventFallback
	// EventRouted: keyword routing picked Agent.
	EventRouted
	// EventDispatch: the utterance is about to be sent to Agent.
	EventDispatch
)

// Event reports progress from Handle.
type Event struct {
	Kind     EventKind
	Agent    string
	Location string
	Date     string
	Err      error
}

// Reply is the outcome of handling one utterance.
type Reply struct {
	// Text is what the user should see.
	Text string
	// Agent answered the utterance, or is the newly selected agent when
	// Switched is set.
	Agent string
	// Switched is set when the utterance only changed the current agent.
	Switched bool
	// Routed is set when keyword routing picked Agent over the current agent.
	Routed bool
	// Guide is set for a successfully composed travel guide.
	Guide *aggregator.Guide
	// GuideID is the storage id of the persisted guide, if any.
	GuideID string
	// Message is the agent reply. It is zero when Switched is set.
	Message core.Message
}

// Mesh is the travel assistant entry point. It is safe for concurrent use;
// utterances are handled one at a time.
type Mesh struct {
	mu sync.Mutex

	coordinator *coordinator.Coordinator
	router      *router.Router
	aggregator  *aggregator.Aggregator
	store       artifact.Store
	observe     func(*aggregator.Guide, error)
	notify      func(Event)
	logger      logging.Logger

	current string
}

// New builds a Mesh whose preset agents all generate through provider.
func New(provider model.Provider, optFns ...func(o *Options)) (*Mesh, error) {
	opts := Options{
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	if len(opts.Agents) == 0 {
		if provider == nil {
			return nil, errors.New("travelmesh: provider is required")
		}
		team := agent.NewTravelTeam(provider, func(o *agent.ModelAgentOptions) {
			o.Logger = opts.Logger
		})
		for _, a := range team {
			opts.Agents = append(opts.Agents, a)
		}
	}

	for _, a := range opts.Agents {
		if err := a.Initialize(); err != nil {
			return nil, fmt.Errorf("initialize agent %s: %w", a.Name(), err)
		}
	}

	general := opts.Agents[0].Name()

	coord := coordinator.New(func(o *coordinator.Options) {
		o.Logger = opts.Logger
		o.Hooks = opts.Hooks
	})
	coord.Register(opts.Agents...)

	return &Mesh{
		coordinator: coord,
		router: router.New(func(r *router.Router) {
			r.General = general
		}),
		aggregator: aggregator.New(coord, func(o *aggregator.Options) {
			o.General = general
			o.Logger = opts.Logger
		}),
		store:   opts.Store,
		observe: opts.GuideObserver,
		notify:  opts.Notify,
		logger:  logging.With(opts.Logger, "component", "mesh"),
		current: general,
	}, nil
}

// Handle processes one user utterance.
//
//   - "@Name rest" selects agent Name and then handles rest; without rest the
//     selection is all that happens.
//   - A travel request composes a guide; if composing fails the raw input is
//     sent to the current agent instead.
//   - Anything else goes to the current agent, or, while the general agent is
//     current, to the specialist whose keywords it mentions.
func (m *Mesh) Handle(ctx context.Context, input string) (*Reply, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	text := strings.TrimSpace(input)
	if text == "" {
		return nil, core.ErrEmptyInput
	}

	if name, rest, ok := router.ParseOverride(text); ok {
		if _, found := m.coordinator.Agent(name); !found {
			return nil, fmt.Errorf("%w: %q", core.ErrAgentNotFound, name)
		}
		m.current = name
		m.logger.Info("switched agent", "agent", name)
		m.emit(Event{Kind: EventSwitched, Agent: name})
		if rest == "" {
			return &Reply{Agent: name, Switched: true}, nil
		}
		text = rest
	}

	switch intent := m.router.Classify(text, m.current).(type) {
	case router.TravelGuide:
		return m.handleTravel(ctx, text, intent)
	case router.SingleQuery:
		if intent.Agent != m.current {
			m.emit(Event{Kind: EventRouted, Agent: intent.Agent})
		}
		return m.dispatch(ctx, text, intent.Agent)
	default:
		return nil, fmt.Errorf("travelmesh: unexpected intent %T", intent)
	}
}

func (m *Mesh) handleTravel(ctx context.Context, text string, tg router.TravelGuide) (*Reply, error) {
	m.emit(Event{Kind: EventTravelIntent, Location: tg.Location, Date: tg.Date})

	guide, err := m.aggregator.Compose(ctx, tg)
	if m.observe != nil {
		m.observe(guide, err)
	}
	if err != nil {
		m.logger.Error("travel guide failed, falling back", "error", err, "agent", m.current)
		m.emit(Event{Kind: EventFallback, Agent: m.current, Err: err})
		return m.dispatch(ctx, text, m.current)
	}

	reply := &Reply{
		Text:    guide.Text(),
		Agent:   guide.Final.Sender(),
		Guide:   guide,
		Message: guide.Final,
	}

	if m.store != nil {
		id, err := m.store.Save(ctx, NewRecord(text, guide))
		if err != nil {
			m.logger.Error("failed to save travel guide", "error", err)
		} else {
			reply.GuideID = id
			m.logger.Debug("saved travel guide", "id", id)
		}
	}

	return reply, nil
}

func (m *Mesh) dispatch(ctx context.Context, text, target string) (*Reply, error) {
	m.emit(Event{Kind: EventDispatch, Agent: target})
	msg, err := m.coordinator.Process(ctx, core.NewUserMessage(text), target)
	if err != nil {
		return nil, err
	}
	return &Reply{
		Text:    msg.Content(),
		Agent:   target,
		Routed:  target != m.current,
		Message: msg,
	}, nil
}

func (m *Mesh) emit(ev Event) {
	if m.notify != nil {
		m.notify(ev)
	}
}

// NewRecord converts a composed guide into its persisted form.
func NewRecord(query string, g *aggregator.Guide) *artifact.Record {
	section := func(label string) string {
		s, ok := g.Section(label)
		if !ok {
			return ""
		}
		return s.Reply.Content()
	}
	return &artifact.Record{
		Timestamp:          g.Created,
		UserQuery:          query,
		Location:           g.Location,
		Date:               g.Date,
		WeatherResponse:    section("WEATHER"),
		HotelResponse:      section("HOTELS"),
		RestaurantResponse: section("RESTAURANTS"),
		AttractionResponse: section("ATTRACTIONS"),
		FinalResponse:      g.Text(),
	}
}

// Current returns the name of the currently selected agent.
func (m *Mesh) Current() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Agents returns the registered agent names, general agent first.
func (m *Mesh) Agents() []string { return m.coordinator.Names() }

// Coordinator exposes the underlying dispatcher, e.g. for its transcript.
func (m *Mesh) Coordinator() *coordinator.Coordinator { return m.coordinator }
