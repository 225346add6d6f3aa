// Package anthropic provides a model.Provider for the Anthropic Claude
// Messages API.
package anthropic

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/hupe1980/travelmesh/core"
	"github.com/hupe1980/travelmesh/model"
)

const vendor = "Anthropic"

// DefaultModel is used when Options.Model is empty.
const DefaultModel = anthropic.Model("claude-3-haiku-20240307")

const creditsMessage = "I apologize, but your Anthropic API account doesn't have enough credits to process this request.\n\n" +
	"Please visit https://console.anthropic.com/ to purchase credits or upgrade your plan."

// Options configures the Anthropic provider (model id, max tokens,
// temperature, credentials). Temperature is only sent when positive.
type Options struct {
	Model       anthropic.Model
	Temperature float64
	MaxTokens   int64
	APIKey      string
	BaseURL     string
}

// Provider wraps the Anthropic Messages API behind model.Provider.
type Provider struct {
	client     *anthropic.Client
	opts       Options
	requireKey bool
}

// NewProvider creates a provider using the official client.
func NewProvider(optFns ...func(o *Options)) *Provider {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	clientOpts := []option.RequestOption{option.WithMaxRetries(0)}
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}
	if opts.BaseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(opts.BaseURL))
	}

	client := anthropic.NewClient(clientOpts...)

	return &Provider{
		client:     &client,
		opts:       opts,
		requireKey: true,
	}
}

// NewProviderFromClient creates a provider from an existing client.
func NewProviderFromClient(client *anthropic.Client, optFns ...func(o *Options)) *Provider {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Provider{
		client: client,
		opts:   opts,
	}
}

func defaultOptions() Options {
	return Options{
		Model:     DefaultModel,
		MaxTokens: 1000,
	}
}

// Check implements model.Checker.
func (p *Provider) Check() error {
	if p.requireKey && !model.UsableKey(p.opts.APIKey) {
		return fmt.Errorf("anthropic: %w", model.ErrMissingAPIKey)
	}
	return nil
}

// Generate implements model.Provider.
func (p *Provider) Generate(ctx context.Context, req model.Request) (model.Response, error) {
	if p.Check() != nil {
		return model.Response{}, model.NoKeyError(vendor)
	}

	params := anthropic.MessageNewParams{
		Model:     p.opts.Model,
		Messages:  buildMessages(req.Turns),
		MaxTokens: p.opts.MaxTokens,
	}
	if req.SystemPrompt != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.SystemPrompt}}
	}
	if p.opts.Temperature > 0 {
		params.Temperature = anthropic.Float(p.opts.Temperature)
	}

	resp, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return model.Response{}, mapError(err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.AsText().Text)
		}
	}
	if sb.Len() == 0 {
		return model.Response{}, &model.Error{
			Code:    model.CodeMalformedResponse,
			Message: model.UnexpectedFormat,
			Details: "no text content block",
		}
	}

	name := string(resp.Model)
	if name == "" {
		name = string(p.opts.Model)
	}
	return model.Response{Text: sb.String(), Model: name}, nil
}

// buildMessages converts turns into Anthropic messages. The API requires the
// conversation to open with a user turn and to alternate roles, so leading
// assistant turns are dropped and consecutive same-role turns are merged.
func buildMessages(turns []core.Turn) []anthropic.MessageParam {
	type merged struct {
		role string
		text []string
	}
	var runs []merged
	for _, t := range turns {
		role := core.RoleUser
		if t.Role == core.RoleAssistant {
			role = core.RoleAssistant
		}
		if len(runs) == 0 && role == core.RoleAssistant {
			continue
		}
		if n := len(runs); n > 0 && runs[n-1].role == role {
			runs[n-1].text = append(runs[n-1].text, t.Content)
			continue
		}
		runs = append(runs, merged{role: role, text: []string{t.Content}})
	}

	messages := make([]anthropic.MessageParam, 0, len(runs))
	for _, r := range runs {
		block := anthropic.NewTextBlock(strings.Join(r.text, "\n\n"))
		if r.role == core.RoleAssistant {
			messages = append(messages, anthropic.NewAssistantMessage(block))
		} else {
			messages = append(messages, anthropic.NewUserMessage(block))
		}
	}
	return messages
}

func mapError(err error) *model.Error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		details := apiErr.Error()
		msg := fmt.Sprintf("Sorry, I couldn't process your request. API error: %d", apiErr.StatusCode)
		if strings.Contains(details, "credit balance is too low") {
			msg = creditsMessage
		}
		return &model.Error{
			Code:    model.HTTPCode(apiErr.StatusCode),
			Message: msg,
			Details: details,
			Err:     err,
		}
	}
	return model.AsError(err)
}

// Info returns metadata describing this provider.
func (p *Provider) Info() model.Info {
	return model.Info{Name: string(p.opts.Model), Provider: "anthropic"}
}
