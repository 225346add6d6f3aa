package coordinator

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/hupe1980/travelmesh/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockAgent for testing coordinator dispatch
type MockAgent struct {
	mock.Mock
	name    string
	history core.History
}

func NewMockAgent(name string) *MockAgent { return &MockAgent{name: name} }

func (m *MockAgent) Name() string { return m.name }

func (m *MockAgent) Initialize() error { return nil }

func (m *MockAgent) Process(ctx context.Context, msg core.Message) core.Message {
	args := m.Called(ctx, msg)
	m.history.Append(msg)
	reply := args.Get(0).(core.Message)
	m.history.Append(reply)
	return reply
}

func (m *MockAgent) History() []core.Message { return m.history.Messages() }

func TestCoordinator_ProcessNotFound(t *testing.T) {
	known := NewMockAgent("Known")
	c := New()
	c.Register(known)

	_, err := c.Process(context.Background(), core.NewUserMessage("hi"), "Missing")

	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrAgentNotFound))
	assert.Contains(t, err.Error(), `"Missing"`)
	assert.Empty(t, c.Transcript())
	assert.Empty(t, known.History())
	known.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
}

func TestCoordinator_ProcessRecordsInOrder(t *testing.T) {
	a := NewMockAgent("A")
	b := NewMockAgent("B")

	var hooked []string
	c := New(func(o *Options) {
		o.Hooks = []Hook{func(target string, in, out core.Message, _ time.Duration) {
			hooked = append(hooked, target+":"+in.Content()+"->"+out.Content())
		}}
	})
	c.Register(a, b)

	in1 := core.NewUserMessage("one")
	out1 := core.NewMessage("A", "reply one", nil)
	a.On("Process", mock.Anything, in1).Return(out1).Once()

	in2 := core.NewUserMessage("two")
	out2 := core.NewMessage("B", "reply two", nil)
	b.On("Process", mock.Anything, in2).Return(out2).Once()

	got, err := c.Process(context.Background(), in1, "A")
	require.NoError(t, err)
	assert.Equal(t, out1.ID(), got.ID())

	_, err = c.Process(context.Background(), in2, "B")
	require.NoError(t, err)

	tr := c.Transcript()
	require.Len(t, tr, 4)
	assert.Equal(t, []string{in1.ID(), out1.ID(), in2.ID(), out2.ID()},
		[]string{tr[0].ID(), tr[1].ID(), tr[2].ID(), tr[3].ID()})
	assert.Equal(t, []string{"A:one->reply one", "B:two->reply two"}, hooked)
	assert.Len(t, a.History(), 2)
	assert.Len(t, b.History(), 2)
}

func TestCoordinator_RegisterLastWins(t *testing.T) {
	first := NewMockAgent("Dup")
	second := NewMockAgent("Dup")
	c := New()
	c.Register(first, NewMockAgent("Other"))
	c.Register(second)

	got, ok := c.Agent("Dup")
	require.True(t, ok)
	assert.Same(t, second, got)
	assert.Equal(t, []string{"Dup", "Other"}, c.Names())
}

func TestCoordinator_Remove(t *testing.T) {
	c := New()
	c.Register(NewMockAgent("A"), NewMockAgent("B"))

	assert.True(t, c.Remove("A"))
	assert.False(t, c.Remove("A"))
	assert.Equal(t, []string{"B"}, c.Names())

	_, err := c.Process(context.Background(), core.NewUserMessage("x"), "A")
	assert.ErrorIs(t, err, core.ErrAgentNotFound)
}

func TestCoordinator_ConcurrentDispatch(t *testing.T) {
	a := NewMockAgent("A")
	a.On("Process", mock.Anything, mock.Anything).Return(core.NewMessage("A", "ok", nil))
	c := New()
	c.Register(a)

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Process(context.Background(), core.NewUserMessage("x"), "A")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Len(t, c.Transcript(), 40)
}
