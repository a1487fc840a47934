// Package config provides loading and parsing of the finagent YAML
// configuration file, which defines the oracle endpoint, memory backends,
// and run budgets.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/finagent-ai/finagent"
)

// Duration is a time.Duration that unmarshals from YAML duration strings
// ("5m", "90s") as well as integer nanosecond counts.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	if value.Tag == "!!int" {
		var n int64
		if err := value.Decode(&n); err != nil {
			return err
		}
		*d = Duration(n)
		return nil
	}

	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("config: invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config represents a finagent.yaml configuration file.
type Config struct {
	// Ollama configures the text-generation oracle.
	Ollama OllamaConfig `yaml:"ollama"`

	// Redis configures the research-report document store. When disabled
	// the in-memory store is used.
	Redis RedisConfig `yaml:"redis,omitempty"`

	// Run configures the orchestrator's budgets.
	Run RunConfig `yaml:"run,omitempty"`

	// ReportDir is where generated markdown reports are saved. Empty
	// disables saving.
	ReportDir string `yaml:"report_dir,omitempty"`
}

// OllamaConfig holds the oracle endpoint settings.
type OllamaConfig struct {
	// BaseURL is the full chat endpoint URL.
	BaseURL string `yaml:"base_url"`

	// Model is the model name passed to the chat API.
	Model string `yaml:"model"`

	// Timeout bounds a single generation call.
	Timeout Duration `yaml:"timeout,omitempty"`
}

// RedisConfig holds document store settings.
type RedisConfig struct {
	// Enabled switches the document store to Redis.
	Enabled bool `yaml:"enabled,omitempty"`

	// URL is the Redis connection string.
	URL string `yaml:"url,omitempty"`
}

// RunConfig holds orchestrator budgets. Zero values use the agent
// package defaults.
type RunConfig struct {
	// MaxTotalSteps caps executed steps per run.
	MaxTotalSteps int `yaml:"max_total_steps,omitempty"`

	// MaxConsecutiveRegens caps back-to-back plan regenerations.
	MaxConsecutiveRegens int `yaml:"max_consecutive_regens,omitempty"`

	// ConversationCapacity bounds short-term conversation history.
	ConversationCapacity int `yaml:"conversation_capacity,omitempty"`
}

// Default returns a configuration with working local defaults.
func Default() *Config {
	return &Config{
		Ollama: OllamaConfig{
			BaseURL: "http://localhost:11434/api/chat",
			Model:   "qwen2.5:14b",
			Timeout: Duration(10 * time.Minute),
		},
		Redis: RedisConfig{
			URL: "redis://localhost:6379",
		},
	}
}

// Load reads and parses a configuration file, filling unset fields with
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses configuration bytes, filling unset fields with defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required fields. Failures wrap finagent.ErrInvalidConfig.
func (c *Config) Validate() error {
	if c.Ollama.BaseURL == "" {
		return fmt.Errorf("config: ollama.base_url is required: %w", finagent.ErrInvalidConfig)
	}
	if c.Ollama.Model == "" {
		return fmt.Errorf("config: ollama.model is required: %w", finagent.ErrInvalidConfig)
	}
	if c.Redis.Enabled && c.Redis.URL == "" {
		return fmt.Errorf("config: redis.url is required when redis is enabled: %w", finagent.ErrInvalidConfig)
	}
	return nil
}
