package model

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/hupe1980/travelmesh/core"
)

// Request captures the normalized model input produced by agents.
type Request struct {
	SystemPrompt string      `json:"system_prompt"`
	Turns        []core.Turn `json:"turns"`
}

// LastUserContent returns the content of the final user turn, if any.
func (r Request) LastUserContent() string {
	for i := len(r.Turns) - 1; i >= 0; i-- {
		if r.Turns[i].Role == core.RoleUser {
			return r.Turns[i].Content
		}
	}
	return ""
}

// Response is a completed generation.
type Response struct {
	Text  string `json:"text"`
	Model string `json:"model"`
}

// Info contains metadata about a provider implementation.
type Info struct {
	Name     string `json:"name"`     // model identifier
	Provider string `json:"provider"` // "openai", "anthropic", "huggingface", ...
}

// Provider is the minimal interface agents require to drive generation.
type Provider interface {
	// Generate produces a completion for the given request. Failures are
	// always reported as *Error.
	Generate(ctx context.Context, req Request) (Response, error)

	// Info returns information about the provider implementation.
	Info() Info
}

// Checker is implemented by providers that can validate their configuration
// without performing a network round trip.
type Checker interface {
	Check() error
}

// CheckOnce wraps p so that only the first Check call runs the underlying
// check. Later calls report nil. Providers that are not Checkers are
// returned unchanged.
func CheckOnce(p Provider) Provider {
	c, ok := p.(Checker)
	if !ok {
		return p
	}
	return &onceChecker{Provider: p, checker: c}
}

type onceChecker struct {
	Provider
	checker Checker
	once    sync.Once
}

func (o *onceChecker) Check() error {
	var err error
	o.once.Do(func() { err = o.checker.Check() })
	return err
}

// ErrMissingAPIKey is wrapped by configuration errors about absent or
// placeholder credentials.
var ErrMissingAPIKey = errors.New("no API key")

var placeholderKeys = map[string]struct{}{
	"your_api_key_here":             {},
	"your_openai_api_key_here":      {},
	"your_anthropic_api_key_here":   {},
	"your_huggingface_api_key_here": {},
}

// IsPlaceholderKey reports whether key is one of the template values shipped
// in example .env files.
func IsPlaceholderKey(key string) bool {
	_, ok := placeholderKeys[strings.TrimSpace(key)]
	return ok
}

// UsableKey reports whether key is non-empty and not a placeholder.
func UsableKey(key string) bool {
	return strings.TrimSpace(key) != "" && !IsPlaceholderKey(key)
}
