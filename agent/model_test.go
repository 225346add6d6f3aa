package agent

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/hupe1980/travelmesh/core"
	"github.com/hupe1980/travelmesh/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var _ core.Agent = (*ModelAgent)(nil)

// MockProviderImpl for testing provider interaction
type MockProviderImpl struct{ mock.Mock }

func (m *MockProviderImpl) Generate(ctx context.Context, req model.Request) (model.Response, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(model.Response), args.Error(1)
}

func (m *MockProviderImpl) Info() model.Info {
	return model.Info{Name: "mock-model", Provider: "mock"}
}

type checkingProvider struct {
	MockProviderImpl
	checks int
}

func (c *checkingProvider) Check() error {
	c.checks++
	return model.ErrMissingAPIKey
}

func TestModelAgent_NewAgent(t *testing.T) {
	p := &MockProviderImpl{}
	a := NewModelAgent("Test Agent", p)

	assert.Equal(t, "Test Agent", a.Name())
	assert.Equal(t, "You are Test Agent, a helpful AI assistant.", a.SystemPrompt())
	assert.Equal(t, DefaultWindowSize, a.windowSize)
	assert.False(t, a.Initialized())
	assert.Empty(t, a.History())
}

func TestModelAgent_SystemPromptWithSpecialization(t *testing.T) {
	a := NewModelAgent("Bot", &MockProviderImpl{}, func(o *ModelAgentOptions) {
		o.Specialization = "Only talk about trains."
	})
	assert.Equal(t, "You are Bot, a helpful AI assistant.\n\nOnly talk about trains.", a.SystemPrompt())

	a.SetSpecialization("")
	assert.Equal(t, "You are Bot, a helpful AI assistant.", a.SystemPrompt())
}

func TestModelAgent_Process(t *testing.T) {
	p := &MockProviderImpl{}
	a := NewModelAgent("Bot", p)

	p.On("Generate", mock.Anything, model.Request{
		SystemPrompt: "You are Bot, a helpful AI assistant.",
		Turns:        []core.Turn{{Role: core.RoleUser, Content: "hello"}},
	}).Return(model.Response{Text: "hi there", Model: "mock-model-v2"}, nil).Once()

	in := core.NewUserMessage("hello")
	out := a.Process(context.Background(), in)

	assert.Equal(t, "hi there", out.Content())
	assert.Equal(t, "Bot", out.Sender())
	assert.False(t, out.IsError())
	provider, _ := out.Meta(core.MetaProvider)
	modelName, _ := out.Meta(core.MetaModel)
	assert.Equal(t, "mock", provider)
	assert.Equal(t, "mock-model-v2", modelName)

	hist := a.History()
	require.Len(t, hist, 2)
	assert.Equal(t, in.ID(), hist[0].ID())
	assert.Equal(t, out.ID(), hist[1].ID())
	assert.True(t, a.Initialized(), "Process should initialize lazily")
	p.AssertExpectations(t)
}

func TestModelAgent_WindowAndRoles(t *testing.T) {
	p := &MockProviderImpl{}
	a := NewModelAgent("Bot", p)

	var last model.Request
	p.On("Generate", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		last = args.Get(1).(model.Request)
	}).Return(model.Response{Text: "ok"}, nil)

	for i := range 4 {
		a.Process(context.Background(), core.NewUserMessage(fmt.Sprintf("q%d", i)))
	}

	// history before the last call: q0 ok q1 ok q2 ok q3
	require.Len(t, last.Turns, 5)
	assert.Equal(t, core.Turn{Role: core.RoleUser, Content: "q1"}, last.Turns[0])
	assert.Equal(t, core.Turn{Role: core.RoleAssistant, Content: "ok"}, last.Turns[1])
	assert.Equal(t, core.Turn{Role: core.RoleUser, Content: "q2"}, last.Turns[2])
	assert.Equal(t, core.Turn{Role: core.RoleUser, Content: "q3"}, last.Turns[4])
	assert.Len(t, a.History(), 8)
}

func TestModelAgent_SenderDeterminesRole(t *testing.T) {
	p := &MockProviderImpl{}
	a := NewModelAgent("Bot", p)

	var last model.Request
	p.On("Generate", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		last = args.Get(1).(model.Request)
	}).Return(model.Response{Text: "ok"}, nil)

	a.AddToHistory(core.NewMessage("OtherAgent", "from another agent", nil))
	a.Process(context.Background(), core.NewMessage("Bot", "self-addressed", nil))

	require.Len(t, last.Turns, 2)
	assert.Equal(t, core.RoleUser, last.Turns[0].Role)
	assert.Equal(t, core.RoleAssistant, last.Turns[1].Role)
}

func TestModelAgent_ProviderError(t *testing.T) {
	p := &MockProviderImpl{}
	a := NewModelAgent("Bot", p)

	p.On("Generate", mock.Anything, mock.Anything).Return(model.Response{}, &model.Error{
		Code:     model.CodeModelLoading,
		Message:  "warming up",
		Details:  "loading",
		WaitTime: "12",
	}).Once()

	out := a.Process(context.Background(), core.NewUserMessage("hello"))

	assert.True(t, out.IsError())
	assert.Equal(t, model.CodeModelLoading, out.Err())
	assert.Equal(t, "warming up", out.Content())
	wait, _ := out.Meta(core.MetaWaitTime)
	assert.Equal(t, "12", wait)
	assert.Len(t, a.History(), 2, "error replies are still recorded")
}

func TestModelAgent_ForeignError(t *testing.T) {
	p := &MockProviderImpl{}
	a := NewModelAgent("Bot", p)
	p.On("Generate", mock.Anything, mock.Anything).Return(model.Response{}, errors.New("socket closed")).Once()

	out := a.Process(context.Background(), core.NewUserMessage("hello"))
	assert.True(t, out.IsError())
	assert.Equal(t, model.CodeTransport, out.Err())
	assert.Equal(t, "I apologize, but I encountered an error when trying to process your query: socket closed", out.Content())
}

func TestModelAgent_InitializeIdempotent(t *testing.T) {
	p := &checkingProvider{}
	a := NewModelAgent("Bot", p, func(o *ModelAgentOptions) {
		o.DefaultSpecialization = "default focus"
	})

	require.NoError(t, a.Initialize())
	require.NoError(t, a.Initialize())
	assert.True(t, a.Initialized())
	assert.Equal(t, 1, p.checks)
	assert.Equal(t, "default focus", a.Specialization())
}

func TestModelAgent_ExplicitSpecializationWins(t *testing.T) {
	a := NewModelAgent("Bot", &MockProviderImpl{}, func(o *ModelAgentOptions) {
		o.DefaultSpecialization = "default focus"
	})
	a.SetSpecialization("custom focus")
	require.NoError(t, a.Initialize())
	assert.Equal(t, "custom focus", a.Specialization())
}
