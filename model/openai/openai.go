// Package openai provides an implementation of model.Provider using the OpenAI
// Chat Completions API. It adapts travelmesh's role-tagged turns into the
// SDK's message format and maps SDK failures onto *model.Error.
package openai

import (
	"context"
	"errors"
	"fmt"

	"github.com/hupe1980/travelmesh/core"
	"github.com/hupe1980/travelmesh/model"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const vendor = "OpenAI"

// Options configure the OpenAI provider.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int64
	APIKey              string
	BaseURL             string
}

// Provider wraps the OpenAI Chat Completions API behind model.Provider.
type Provider struct {
	client     *openai.Client
	opts       Options
	requireKey bool
}

// NewProvider creates a provider using the official client. Requests fail
// fast with a no_api_key error when APIKey is empty or a placeholder.
func NewProvider(optFns ...func(o *Options)) *Provider {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	reqOpts := []option.RequestOption{option.WithMaxRetries(0)}
	if opts.APIKey != "" {
		reqOpts = append(reqOpts, option.WithAPIKey(opts.APIKey))
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}
	client := openai.NewClient(reqOpts...)
	return &Provider{client: &client, opts: opts, requireKey: true}
}

// NewProviderFromClient creates a provider from an existing client. The
// client is assumed to carry its own credentials.
func NewProviderFromClient(client *openai.Client, optFns ...func(o *Options)) *Provider {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Provider{client: client, opts: opts}
}

func defaultOptions() Options {
	return Options{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0.7,
		MaxCompletionTokens: 1000,
	}
}

// Check implements model.Checker.
func (p *Provider) Check() error {
	if p.requireKey && !model.UsableKey(p.opts.APIKey) {
		return fmt.Errorf("openai: %w", model.ErrMissingAPIKey)
	}
	return nil
}

// Generate implements model.Provider.
func (p *Provider) Generate(ctx context.Context, req model.Request) (model.Response, error) {
	if p.Check() != nil {
		return model.Response{}, model.NoKeyError(vendor)
	}

	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages:            buildMessages(req),
		Model:               p.opts.Model,
		Temperature:         openai.Float(p.opts.Temperature),
		MaxCompletionTokens: openai.Int(p.opts.MaxCompletionTokens),
	})
	if err != nil {
		return model.Response{}, mapError(err)
	}
	if len(resp.Choices) == 0 {
		return model.Response{}, &model.Error{
			Code:    model.CodeMalformedResponse,
			Message: model.UnexpectedFormat,
			Details: "no choices returned",
		}
	}

	name := resp.Model
	if name == "" {
		name = p.opts.Model
	}
	return model.Response{Text: resp.Choices[0].Message.Content, Model: name}, nil
}

// buildMessages converts the system prompt and turns into OpenAI chat messages.
func buildMessages(req model.Request) []openai.ChatCompletionMessageParamUnion {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Turns)+1)
	if req.SystemPrompt != "" {
		messages = append(messages, openai.SystemMessage(req.SystemPrompt))
	}
	for _, t := range req.Turns {
		switch t.Role {
		case core.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(t.Content))
		default:
			messages = append(messages, openai.UserMessage(t.Content))
		}
	}
	return messages
}

func mapError(err error) *model.Error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = apiErr.Error()
		}
		return &model.Error{
			Code:    model.HTTPCode(apiErr.StatusCode),
			Message: fmt.Sprintf("I apologize, but I encountered an error: %s", msg),
			Details: msg,
			Err:     err,
		}
	}
	return model.AsError(err)
}

// Info returns metadata describing this provider.
func (p *Provider) Info() model.Info {
	return model.Info{Name: p.opts.Model, Provider: "openai"}
}
