// Package aggregator builds travel guides by querying the specialist agents
// one after another and asking the general agent to merge their answers.
package aggregator

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/travelmesh/core"
	"github.com/hupe1980/travelmesh/internal/util"
	"github.com/hupe1980/travelmesh/logging"
	"github.com/hupe1980/travelmesh/router"
)

// Dispatcher delivers a message to a named agent.
// *coordinator.Coordinator satisfies it.
type Dispatcher interface {
	Process(ctx context.Context, msg core.Message, target string) (core.Message, error)
}

// Step is one specialist sub-query. Template is rendered with the
// router.TravelGuide fields (.Location, .Date).
type Step struct {
	Label    string
	Agent    string
	Template string
}

// DefaultSteps returns the weather, hotel, restaurant and attraction steps.
func DefaultSteps() []Step {
	return []Step{
		{Label: "WEATHER", Agent: "WeatherExpert", Template: "What will the weather be like in {{.Location}} on {{.Date}}?"},
		{Label: "HOTELS", Agent: "HotelExpert", Template: "What are the 5 best hotels in {{.Location}}?"},
		{Label: "RESTAURANTS", Agent: "RestaurantExpert", Template: "What are the 5 best restaurants in {{.Location}}?"},
		{Label: "ATTRACTIONS", Agent: "AttractionExpert", Template: "What are the 5 best attractions in {{.Location}}?"},
	}
}

// DefaultComposeTemplate is the prompt sent to the general agent.
const DefaultComposeTemplate = `Create a comprehensive travel guide for {{.Location}} on {{.Date}} using the following information:
{{range .Sections}}
{{.Label}}:
{{.Reply.Content}}
{{end}}
Format the guide in a clear, organized way with sections for weather, accommodation, dining, and sightseeing.
Add a brief introduction and conclusion.`

// Options configures an Aggregator.
type Options struct {
	General         string
	Steps           []Step
	ComposeTemplate string
	Logger          logging.Logger
}

// Aggregator runs the travel guide workflow.
type Aggregator struct {
	dispatcher Dispatcher
	opts       Options
	logger     logging.Logger
}

// New creates an Aggregator dispatching through d.
func New(d Dispatcher, optFns ...func(o *Options)) *Aggregator {
	opts := Options{
		General:         router.DefaultGeneral,
		Steps:           DefaultSteps(),
		ComposeTemplate: DefaultComposeTemplate,
		Logger:          logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Aggregator{
		dispatcher: d,
		opts:       opts,
		logger:     logging.With(opts.Logger, "component", "aggregator"),
	}
}

// Section is the outcome of one specialist step.
type Section struct {
	Label string
	Agent string
	Query string
	Reply core.Message
}

// Guide is a composed travel guide.
type Guide struct {
	Location string
	Date     string
	Sections []Section
	Prompt   string
	Final    core.Message
	Created  time.Time
}

// Text returns the composed guide text.
func (g *Guide) Text() string { return g.Final.Content() }

// Section returns the section with the given label.
func (g *Guide) Section(label string) (Section, bool) {
	for _, s := range g.Sections {
		if s.Label == label {
			return s, true
		}
	}
	return Section{}, false
}

// Compose queries every step sequentially and then the general agent.
// Any dispatch failure aborts the whole run. Replies that merely carry an
// error marker are passed through to the compose prompt unchanged.
func (a *Aggregator) Compose(ctx context.Context, tg router.TravelGuide) (*Guide, error) {
	guide := &Guide{
		Location: tg.Location,
		Date:     tg.Date,
		Sections: make([]Section, 0, len(a.opts.Steps)),
	}

	a.logger.Info("building travel guide", "location", tg.Location, "date", tg.Date)

	for _, step := range a.opts.Steps {
		query, err := util.RenderTemplate(step.Template, tg)
		if err != nil {
			return nil, fmt.Errorf("aggregation failed at agent %s: %w", step.Agent, err)
		}

		reply, err := a.dispatch(ctx, query, step.Agent)
		if err != nil {
			return nil, err
		}

		guide.Sections = append(guide.Sections, Section{
			Label: step.Label,
			Agent: step.Agent,
			Query: query,
			Reply: reply,
		})
	}

	prompt, err := util.RenderTemplate(a.opts.ComposeTemplate, guide)
	if err != nil {
		return nil, fmt.Errorf("aggregation failed at agent %s: %w", a.opts.General, err)
	}
	guide.Prompt = prompt

	final, err := a.dispatch(ctx, prompt, a.opts.General)
	if err != nil {
		return nil, err
	}
	guide.Final = final
	guide.Created = time.Now()

	return guide, nil
}

func (a *Aggregator) dispatch(ctx context.Context, content, target string) (core.Message, error) {
	if err := ctx.Err(); err != nil {
		return core.Message{}, fmt.Errorf("aggregation failed at agent %s: %w", target, err)
	}
	reply, err := a.dispatcher.Process(ctx, core.NewUserMessage(content), target)
	if err != nil {
		return core.Message{}, fmt.Errorf("aggregation failed at agent %s: %w", target, err)
	}
	if reply.IsError() {
		a.logger.Warn("step replied with error", "agent", target, "error", reply.Err())
	}
	return reply, nil
}
