package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/finagent-ai/finagent"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Ollama.BaseURL != "http://localhost:11434/api/chat" {
		t.Errorf("BaseURL = %q", cfg.Ollama.BaseURL)
	}
	if cfg.Ollama.Model != "qwen2.5:14b" {
		t.Errorf("Model = %q", cfg.Ollama.Model)
	}
	if cfg.Ollama.Timeout.Std() != 10*time.Minute {
		t.Errorf("Timeout = %v", cfg.Ollama.Timeout)
	}
	if cfg.Redis.Enabled {
		t.Error("redis must be disabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default() must validate: %v", err)
	}
}

func TestParse(t *testing.T) {
	data := []byte(`
ollama:
  base_url: http://oracle:11434/api/chat
  model: qwen2.5:32b
  timeout: 5m
redis:
  enabled: true
  url: redis://cache:6379
run:
  max_total_steps: 50
  max_consecutive_regens: 5
  conversation_capacity: 40
report_dir: /var/lib/finagent/reports
`)

	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Ollama.BaseURL != "http://oracle:11434/api/chat" {
		t.Errorf("BaseURL = %q", cfg.Ollama.BaseURL)
	}
	if cfg.Ollama.Model != "qwen2.5:32b" {
		t.Errorf("Model = %q", cfg.Ollama.Model)
	}
	if cfg.Ollama.Timeout.Std() != 5*time.Minute {
		t.Errorf("Timeout = %v", cfg.Ollama.Timeout)
	}
	if !cfg.Redis.Enabled || cfg.Redis.URL != "redis://cache:6379" {
		t.Errorf("Redis = %+v", cfg.Redis)
	}
	if cfg.Run.MaxTotalSteps != 50 || cfg.Run.MaxConsecutiveRegens != 5 {
		t.Errorf("Run = %+v", cfg.Run)
	}
	if cfg.ReportDir != "/var/lib/finagent/reports" {
		t.Errorf("ReportDir = %q", cfg.ReportDir)
	}
}

func TestParsePartialKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("ollama:\n  model: qwen2.5:7b\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Ollama.Model != "qwen2.5:7b" {
		t.Errorf("Model = %q", cfg.Ollama.Model)
	}
	if cfg.Ollama.BaseURL != "http://localhost:11434/api/chat" {
		t.Errorf("BaseURL = %q, unset fields must keep defaults", cfg.Ollama.BaseURL)
	}
}

func TestParseDurationForms(t *testing.T) {
	cfg, err := Parse([]byte("ollama:\n  timeout: 90s\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Ollama.Timeout.Std() != 90*time.Second {
		t.Errorf("Timeout = %v", cfg.Ollama.Timeout)
	}

	if _, err := Parse([]byte("ollama:\n  timeout: soon\n")); err == nil {
		t.Error("Parse() of invalid duration must fail")
	}
}

func TestParseInvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("ollama: [broken")); err == nil {
		t.Error("Parse() of invalid YAML must fail")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"missing base url", func(c *Config) { c.Ollama.BaseURL = "" }, "base_url"},
		{"missing model", func(c *Config) { c.Ollama.Model = "" }, "model"},
		{"redis enabled without url", func(c *Config) { c.Redis.Enabled = true; c.Redis.URL = "" }, "redis.url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want mention of %q", err, tt.wantErr)
			}
			if !errors.Is(err, finagent.ErrInvalidConfig) {
				t.Errorf("error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finagent.yaml")
	if err := os.WriteFile(path, []byte("ollama:\n  model: test-model\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Ollama.Model != "test-model" {
		t.Errorf("Model = %q", cfg.Ollama.Model)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load() of missing file must fail")
	}
}
