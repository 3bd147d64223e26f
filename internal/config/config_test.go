package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseDefaultConfig(t *testing.T) {
	cfg, err := parse(DefaultConfigYAML)
	if err != nil {
		t.Fatalf("failed to parse default config: %v", err)
	}

	if cfg.APIKeys.AnthropicEnv != "ANTHROPIC_API_KEY" {
		t.Errorf("expected ANTHROPIC_API_KEY, got %q", cfg.APIKeys.AnthropicEnv)
	}
	if cfg.APIKeys.TwitterEnv != "TWITTER_API_KEY" {
		t.Errorf("expected TWITTER_API_KEY, got %q", cfg.APIKeys.TwitterEnv)
	}
	if cfg.Generation.Model != "claude-sonnet-4-20250514" {
		t.Errorf("unexpected model %q", cfg.Generation.Model)
	}
	if cfg.Generation.MaxTokens != 500 {
		t.Errorf("expected max_tokens 500, got %d", cfg.Generation.MaxTokens)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("expected port 8000, got %d", cfg.Server.Port)
	}
}

func TestParseMinimalConfig(t *testing.T) {
	data := []byte(`
generation:
  model: claude-opus-4
server:
  port: 9000
`)
	cfg, err := parse(data)
	if err != nil {
		t.Fatalf("failed to parse minimal config: %v", err)
	}

	if cfg.Generation.Model != "claude-opus-4" {
		t.Errorf("expected overridden model, got %q", cfg.Generation.Model)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Server.Port)
	}
	// Defaults should still be set for unspecified fields
	if cfg.Generation.MaxTokens != 500 {
		t.Errorf("expected default max_tokens, got %d", cfg.Generation.MaxTokens)
	}
	if cfg.APIKeys.AnthropicEnv != "ANTHROPIC_API_KEY" {
		t.Errorf("expected default anthropic_env, got %q", cfg.APIKeys.AnthropicEnv)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, DefaultConfigYAML, 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("expected port from file, got %d", cfg.Server.Port)
	}
}

func TestDataFiles(t *testing.T) {
	cfg := &Config{}
	if cfg.GetDataDir() == "" {
		t.Error("expected non-empty default data dir")
	}

	cfg.Output.DataDir = "/custom/path"
	if cfg.GetDataDir() != "/custom/path" {
		t.Errorf("expected '/custom/path', got %q", cfg.GetDataDir())
	}
	if !strings.HasSuffix(cfg.EntryFile(), filepath.Join("/custom/path", "wu.json")) {
		t.Errorf("unexpected entry file %q", cfg.EntryFile())
	}
	if !strings.HasSuffix(cfg.PostFile(), filepath.Join("/custom/path", "pending-posts.json")) {
		t.Errorf("unexpected post file %q", cfg.PostFile())
	}
}
