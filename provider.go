package travelmesh

import (
	"fmt"

	"github.com/hupe1980/travelmesh/config"
	"github.com/hupe1980/travelmesh/logging"
	"github.com/hupe1980/travelmesh/model"
	anthropicmodel "github.com/hupe1980/travelmesh/model/anthropic"
	"github.com/hupe1980/travelmesh/model/huggingface"
	openaimodel "github.com/hupe1980/travelmesh/model/openai"

	"github.com/anthropics/anthropic-sdk-go"
)

// NewProvider selects the LLM backend described by cfg. In auto mode the
// first vendor with a usable key wins, in the order OpenAI, Anthropic,
// HuggingFace; without any key the HuggingFace free tier is used.
func NewProvider(cfg *config.Config, logger logging.Logger) (model.Provider, error) {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}

	name := cfg.Provider
	if name == "" || name == config.ProviderAuto {
		switch {
		case model.UsableKey(cfg.OpenAI.APIKey):
			name = config.ProviderOpenAI
		case model.UsableKey(cfg.Anthropic.APIKey):
			name = config.ProviderAnthropic
		case model.UsableKey(cfg.HuggingFace.APIKey):
			name = config.ProviderHuggingFace
		default:
			logger.Warn("no API key configured, using the rate limited HuggingFace free tier")
			name = config.ProviderHuggingFace
		}
	}

	var p model.Provider
	switch name {
	case config.ProviderOpenAI:
		p = openaimodel.NewProvider(func(o *openaimodel.Options) {
			o.APIKey = cfg.OpenAI.APIKey
			o.BaseURL = cfg.OpenAI.BaseURL
			if cfg.OpenAI.Model != "" {
				o.Model = cfg.OpenAI.Model
			}
		})
	case config.ProviderAnthropic:
		p = anthropicmodel.NewProvider(func(o *anthropicmodel.Options) {
			o.APIKey = cfg.Anthropic.APIKey
			o.BaseURL = cfg.Anthropic.BaseURL
			if cfg.Anthropic.Model != "" {
				o.Model = anthropic.Model(cfg.Anthropic.Model)
			}
		})
	case config.ProviderHuggingFace:
		p = huggingface.NewProvider(func(o *huggingface.Options) {
			o.APIKey = cfg.HuggingFace.APIKey
			if cfg.HuggingFace.BaseURL != "" {
				o.BaseURL = cfg.HuggingFace.BaseURL
			}
			if cfg.HuggingFace.Model != "" {
				o.Model = cfg.HuggingFace.Model
			}
		})
	default:
		return nil, fmt.Errorf("unknown provider %q", name)
	}

	info := p.Info()
	logger.Info("using model provider", "provider", info.Provider, "model", info.Name)

	return p, nil
}
