// Package huggingface provides a model.Provider backed by the HuggingFace
// Inference API. Conversations are flattened into a single text prompt since
// the text-generation endpoint has no notion of chat roles.
package huggingface

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hupe1980/travelmesh/core"
	"github.com/hupe1980/travelmesh/model"
)

const (
	// DefaultModel is the inference model used when Options.Model is empty.
	DefaultModel = "HuggingFaceH4/zephyr-7b-beta"
	// DefaultBaseURL is the public Inference API endpoint.
	DefaultBaseURL = "https://api-inference.huggingface.co"
)

// Options configures the HuggingFace provider.
type Options struct {
	Model   string
	APIKey  string // optional; the free tier works without one
	BaseURL string
	Timeout time.Duration
}

// Provider calls the HuggingFace Inference API through a resty client.
type Provider struct {
	client *resty.Client
	opts   Options
}

// NewProvider creates a provider with sensible defaults.
func NewProvider(optFns ...func(o *Options)) *Provider {
	opts := Options{
		Model:   DefaultModel,
		BaseURL: DefaultBaseURL,
		Timeout: 120 * time.Second,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(opts.BaseURL, "/")).
		SetTimeout(opts.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if model.UsableKey(opts.APIKey) {
		client.SetAuthToken(opts.APIKey)
	}

	return &Provider{client: client, opts: opts}
}

// Check implements model.Checker. A missing key is not fatal here; requests
// fall back to the rate limited free tier.
func (p *Provider) Check() error {
	if !model.UsableKey(p.opts.APIKey) {
		return fmt.Errorf("huggingface: %w, using free tier with rate limits", model.ErrMissingAPIKey)
	}
	return nil
}

// Generate implements model.Provider.
func (p *Provider) Generate(ctx context.Context, req model.Request) (model.Response, error) {
	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(map[string]any{"inputs": BuildPrompt(req)}).
		Post("/models/" + p.opts.Model)
	if err != nil {
		return model.Response{}, model.AsError(err)
	}

	if resp.IsError() || resp.StatusCode() != http.StatusOK {
		return model.Response{}, statusError(resp.StatusCode(), resp.Body())
	}

	text, err := extractText(resp.Body())
	if err != nil {
		return model.Response{}, &model.Error{
			Code:    model.CodeMalformedResponse,
			Message: model.UnexpectedFormat,
			Details: err.Error(),
			Err:     err,
		}
	}
	return model.Response{Text: text, Model: p.opts.Model}, nil
}

// BuildPrompt flattens a request into the "System/User/Assistant" transcript
// format understood by instruction tuned text-generation models.
func BuildPrompt(req model.Request) string {
	var sb strings.Builder
	if req.SystemPrompt != "" {
		fmt.Fprintf(&sb, "System: %s\n\n", req.SystemPrompt)
	}
	for _, t := range req.Turns {
		switch t.Role {
		case core.RoleAssistant:
			fmt.Fprintf(&sb, "Assistant: %s\n", t.Content)
		default:
			fmt.Fprintf(&sb, "User: %s\n", t.Content)
		}
	}
	sb.WriteString("Assistant: ")
	return sb.String()
}

// extractText accepts the several response shapes the Inference API returns
// depending on the model's pipeline.
func extractText(body []byte) (string, error) {
	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	switch v := decoded.(type) {
	case []any:
		if len(v) > 0 {
			if obj, ok := v[0].(map[string]any); ok {
				if s, ok := obj["generated_text"].(string); ok {
					return s, nil
				}
			}
			if s, ok := v[0].(string); ok {
				return s, nil
			}
		}
	case map[string]any:
		if s, ok := v["generated_text"].(string); ok {
			return s, nil
		}
	case string:
		return v, nil
	}
	return strings.TrimSpace(string(body)), nil
}

func statusError(status int, body []byte) *model.Error {
	e := &model.Error{
		Code:    model.HTTPCode(status),
		Message: fmt.Sprintf("Sorry, I couldn't process your request. API error: %d", status),
		Details: string(body),
	}
	if !strings.Contains(string(body), "estimated_time") {
		return e
	}

	var loading struct {
		EstimatedTime any `json:"estimated_time"`
	}
	wait := "unknown"
	if err := json.Unmarshal(body, &loading); err == nil && loading.EstimatedTime != nil {
		wait = fmt.Sprint(loading.EstimatedTime)
	}
	e.Code = model.CodeModelLoading
	e.WaitTime = wait
	e.Message = fmt.Sprintf("I'm still warming up. The model is being loaded and will be ready in approximately %s seconds. Please try again shortly.", wait)
	return e
}

// Info returns metadata describing this provider.
func (p *Provider) Info() model.Info {
	return model.Info{Name: p.opts.Model, Provider: "huggingface"}
}
