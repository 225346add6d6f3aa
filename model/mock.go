package model

import (
	"context"
	"fmt"
	"sync"
)

// MockProvider is a lightweight in-memory Provider useful for tests & examples.
// Responses are looked up by the content of the last user turn.
type MockProvider struct {
	mu        sync.Mutex
	info      Info
	responses map[string]string
	errs      map[string]error
	requests  []Request
}

// NewMockProvider constructs an empty MockProvider.
func NewMockProvider(name, provider string) *MockProvider {
	return &MockProvider{
		info:      Info{Name: name, Provider: provider},
		responses: make(map[string]string),
		errs:      make(map[string]error),
	}
}

// AddResponse registers a deterministic canned completion for a prompt.
func (m *MockProvider) AddResponse(prompt, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[prompt] = response
}

// AddError makes Generate fail for a prompt.
func (m *MockProvider) AddError(prompt string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[prompt] = err
}

// Requests returns every request received so far.
func (m *MockProvider) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.requests))
	copy(out, m.requests)
	return out
}

// Generate implements Provider.
func (m *MockProvider) Generate(ctx context.Context, req Request) (Response, error) {
	if err := ctx.Err(); err != nil {
		return Response{}, AsError(err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)

	input := req.LastUserContent()
	if err, ok := m.errs[input]; ok {
		return Response{}, AsError(err)
	}
	text, ok := m.responses[input]
	if !ok {
		text = fmt.Sprintf("Mock response to: %s", input)
	}
	return Response{Text: text, Model: m.info.Name}, nil
}

// Info implements Provider.
func (m *MockProvider) Info() Info { return m.info }
