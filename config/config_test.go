package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "8000" {
		t.Errorf("Expected port 8000, got %q", cfg.Port)
	}
	if cfg.Host != "0.0.0.0" {
		t.Errorf("Expected host 0.0.0.0, got %q", cfg.Host)
	}
	if cfg.APIKey != "sk-dummy" {
		t.Errorf("Expected sk-dummy key, got %q", cfg.APIKey)
	}
	if !cfg.EnableMetrics {
		t.Error("Expected metrics enabled by default")
	}
	if cfg.StreamGranularity != "character" {
		t.Errorf("Expected character granularity, got %q", cfg.StreamGranularity)
	}
	if cfg.Timing.ChatMinDelay != 0.5 || cfg.Timing.ChatMaxDelay != 2.0 {
		t.Errorf("Unexpected default timing: %+v", cfg.Timing)
	}
	if cfg.Models != nil || cfg.Templates != nil || cfg.Keywords != nil {
		t.Error("Expected no table overrides by default")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9001")
	t.Setenv("API_KEY", "sk-other")
	t.Setenv("LOG_REQUESTS", "true")
	t.Setenv("ENABLE_METRICS", "false")
	t.Setenv("DETERMINISTIC_EMBEDDINGS", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != "9001" || cfg.APIKey != "sk-other" {
		t.Errorf("Env overrides not applied: %+v", cfg)
	}
	if !cfg.LogRequests || cfg.EnableMetrics || !cfg.DeterministicEmbeddings {
		t.Errorf("Bool env overrides not applied: %+v", cfg)
	}
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	if _, err := Load(); err == nil {
		t.Error("Expected error for non-numeric port")
	}
}

func TestLoad_InvalidGranularity(t *testing.T) {
	t.Setenv("STREAM_GRANULARITY", "sentence")
	if _, err := Load(); err == nil {
		t.Error("Expected error for unknown granularity")
	}
}

func TestLoad_TestingEnvironment(t *testing.T) {
	t.Setenv("ENVIRONMENT", "testing")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Timing.ChatMaxDelay != 0.05 {
		t.Errorf("Expected testing timing preset, got %+v", cfg.Timing)
	}
	// The environment preset clobbers the explicit level, matching the
	// original behavior of environment-specific overrides.
	if cfg.LogLevel != "WARNING" {
		t.Errorf("Expected WARNING level under testing env, got %q", cfg.LogLevel)
	}
}

func TestLoad_DevelopmentEnvironment(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !cfg.Debug || !cfg.LogRequests || !cfg.LogResponses {
		t.Errorf("Expected development preset to enable debug logging: %+v", cfg)
	}
	if cfg.Timing.ChatMaxDelay != 0.5 {
		t.Errorf("Expected development timing preset, got %+v", cfg.Timing)
	}
}

func TestLoad_UnknownEnvironment(t *testing.T) {
	t.Setenv("ENVIRONMENT", "staging")
	if _, err := Load(); err == nil {
		t.Error("Expected error for unknown environment")
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mock.yaml")
	content := `
models:
  - id: tiny-model
    created: 123
keywords:
  - category: code
    keywords: [golang]
templates:
  generic:
    - "hi"
timing:
  chat_completion_min_delay: 0
  chat_completion_max_delay: 0.2
  embedding_delay: 0
  model_list_delay: 0
  streaming_chunk_delay: 0
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cfg.Models) != 1 || cfg.Models[0].ID != "tiny-model" {
		t.Errorf("Models override not applied: %+v", cfg.Models)
	}
	if len(cfg.Keywords) != 1 || cfg.Keywords[0].Keywords[0] != "golang" {
		t.Errorf("Keywords override not applied: %+v", cfg.Keywords)
	}
	if cfg.Timing.ChatMaxDelay != 0.2 {
		t.Errorf("Timing override not applied: %+v", cfg.Timing)
	}
}

func TestLoad_ConfigFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("keywords:\n  - category: \"\"\n    keywords: [x]\n"), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)

	if _, err := Load(); err == nil {
		t.Error("Expected error for keyword rule with empty category")
	}
}

func TestLoad_ConfigFileMissing(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))
	if _, err := Load(); err == nil {
		t.Error("Expected error for missing config file")
	}
}
