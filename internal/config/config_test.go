package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Anthropic.Model != "claude-sonnet-4-20250514" {
		t.Errorf("expected default model 'claude-sonnet-4-20250514', got %q", cfg.Anthropic.Model)
	}

	if cfg.Anthropic.MaxTokens != 8192 {
		t.Errorf("expected default max_tokens 8192, got %d", cfg.Anthropic.MaxTokens)
	}

	if cfg.Supervisor.MaxRetries != 3 {
		t.Errorf("expected default max_retries 3, got %d", cfg.Supervisor.MaxRetries)
	}

	if cfg.Supervisor.TurnTimeout != 10*time.Minute {
		t.Errorf("expected turn timeout 10m, got %v", cfg.Supervisor.TurnTimeout)
	}

	if cfg.TUI.RefreshRate != 100*time.Millisecond {
		t.Errorf("expected refresh rate 100ms, got %v", cfg.TUI.RefreshRate)
	}

	if cfg.Paths.Workspace != "." {
		t.Errorf("expected workspace '.', got %q", cfg.Paths.Workspace)
	}
}

func TestLoadFromPath(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
anthropic:
  api_key: test-key
  model: claude-haiku-4-5-20251001
  use_bedrock: true
  aws_region: us-west-2
supervisor:
  max_retries: 5
  turn_timeout: 20m
paths:
  data_dir: /tmp/maestro-test
  workspace: /tmp/sandbox
tui:
  refresh_rate: 200ms
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}

	if cfg.Anthropic.APIKey != "test-key" {
		t.Errorf("expected api_key 'test-key', got %q", cfg.Anthropic.APIKey)
	}

	if cfg.Anthropic.Model != "claude-haiku-4-5-20251001" {
		t.Errorf("expected haiku model, got %q", cfg.Anthropic.Model)
	}

	if !cfg.Anthropic.UseBedrock {
		t.Error("expected use_bedrock true")
	}

	if cfg.Anthropic.AWSRegion != "us-west-2" {
		t.Errorf("expected region us-west-2, got %q", cfg.Anthropic.AWSRegion)
	}

	if cfg.Supervisor.MaxRetries != 5 {
		t.Errorf("expected max_retries 5, got %d", cfg.Supervisor.MaxRetries)
	}

	if cfg.Supervisor.TurnTimeout != 20*time.Minute {
		t.Errorf("expected turn timeout 20m, got %v", cfg.Supervisor.TurnTimeout)
	}

	if cfg.Paths.Workspace != "/tmp/sandbox" {
		t.Errorf("expected workspace /tmp/sandbox, got %q", cfg.Paths.Workspace)
	}

	if cfg.TUI.RefreshRate != 200*time.Millisecond {
		t.Errorf("expected refresh rate 200ms, got %v", cfg.TUI.RefreshRate)
	}
}

func TestLoadFromPathAppliesDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configPath, []byte("anthropic:\n  api_key: k\n"), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}

	if cfg.Supervisor.MaxRetries != 3 {
		t.Errorf("expected default max_retries 3, got %d", cfg.Supervisor.MaxRetries)
	}
	if cfg.Anthropic.Model == "" {
		t.Error("expected default model to be applied")
	}
}

func TestLoadFromPathExpandsEnvInAPIKey(t *testing.T) {
	t.Setenv("MAESTRO_TEST_KEY", "sk-ant-expanded")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configPath, []byte("anthropic:\n  api_key: ${MAESTRO_TEST_KEY}\n"), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}

	if cfg.Anthropic.APIKey != "sk-ant-expanded" {
		t.Errorf("expected expanded api key, got %q", cfg.Anthropic.APIKey)
	}
}
