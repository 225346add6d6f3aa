// Package config loads travelmesh settings from defaults, an optional YAML
// file, a .env file and the process environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/hupe1980/travelmesh/model"
)

// EnvPrefix is prepended to every configuration key read from the environment.
const EnvPrefix = "TRAVELMESH"

// DefaultFile is read when no explicit config file is given and it exists.
const DefaultFile = "travelmesh.yaml"

// Provider selections.
const (
	ProviderAuto        = "auto"
	ProviderOpenAI      = "openai"
	ProviderAnthropic   = "anthropic"
	ProviderHuggingFace = "huggingface"
)

// History backends.
const (
	HistoryFile   = "file"
	HistorySQLite = "sqlite"
	HistoryMemory = "memory"
	HistoryNone   = "none"
)

// Config holds the application configuration.
type Config struct {
	Provider    string         `mapstructure:"provider"`
	OpenAI      ProviderConfig `mapstructure:"openai"`
	Anthropic   ProviderConfig `mapstructure:"anthropic"`
	HuggingFace ProviderConfig `mapstructure:"huggingface"`
	Server      ServerConfig   `mapstructure:"server"`
	History     HistoryConfig  `mapstructure:"history"`
	Log         LogConfig      `mapstructure:"log"`
}

// ProviderConfig holds the credentials and model of one LLM vendor.
type ProviderConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// HistoryConfig selects where composed travel guides are kept.
type HistoryConfig struct {
	Backend string `mapstructure:"backend"`
	Dir     string `mapstructure:"dir"`
	DSN     string `mapstructure:"dsn"`
}

// LogConfig holds the logger settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LoadDotEnv loads environment variables from path. Missing files are ignored
// and variables already present in the environment win.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Load reads .env from the working directory, then builds the configuration.
// An empty path falls back to $TRAVELMESH_CONFIG and then to DefaultFile when
// it exists.
func Load(path string) (*Config, error) {
	if err := LoadDotEnv(".env"); err != nil {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The vendor variables are also accepted without prefix.
	for key, env := range map[string]string{
		"openai.api_key":      "OPENAI_API_KEY",
		"anthropic.api_key":   "ANTHROPIC_API_KEY",
		"huggingface.api_key": "HUGGINGFACE_API_KEY",
	} {
		prefixed := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if path == "" {
		path = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	cfg.History.Backend = strings.ToLower(strings.TrimSpace(cfg.History.Backend))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("provider", ProviderAuto)

	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.base_url", "")

	v.SetDefault("anthropic.api_key", "")
	v.SetDefault("anthropic.model", "claude-3-haiku-20240307")
	v.SetDefault("anthropic.base_url", "")

	v.SetDefault("huggingface.api_key", "")
	v.SetDefault("huggingface.model", "HuggingFaceH4/zephyr-7b-beta")
	v.SetDefault("huggingface.base_url", "https://api-inference.huggingface.co")

	v.SetDefault("server.addr", ":5000")

	v.SetDefault("history.backend", HistoryFile)
	v.SetDefault("history.dir", "history")
	v.SetDefault("history.dsn", "travelmesh.db")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderAuto, ProviderOpenAI, ProviderAnthropic, ProviderHuggingFace:
	default:
		return fmt.Errorf("invalid provider %q", c.Provider)
	}

	switch c.History.Backend {
	case HistoryFile, HistorySQLite, HistoryMemory, HistoryNone:
	default:
		return fmt.Errorf("invalid history backend %q", c.History.Backend)
	}

	return nil
}

// KeyState describes the condition of an API key.
type KeyState int

const (
	KeyMissing KeyState = iota
	KeyPlaceholder
	KeyOK
)

func (s KeyState) String() string {
	switch s {
	case KeyPlaceholder:
		return "placeholder"
	case KeyOK:
		return "ok"
	default:
		return "missing"
	}
}

// KeyStatus classifies key.
func KeyStatus(key string) KeyState {
	switch {
	case strings.TrimSpace(key) == "":
		return KeyMissing
	case model.IsPlaceholderKey(key):
		return KeyPlaceholder
	default:
		return KeyOK
	}
}
