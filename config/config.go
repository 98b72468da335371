// Package config loads the server configuration from environment variables,
// with an optional YAML file overriding the built-in catalog, template,
// keyword and timing tables. Everything is resolved once at startup; the
// resulting Config is read-only afterwards.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/vnmchuo/llm-mock/internal/catalog"
	"github.com/vnmchuo/llm-mock/internal/classify"
	"github.com/vnmchuo/llm-mock/internal/latency"
)

type Config struct {
	// Server
	Port string // default: 8000
	Host string // default: 0.0.0.0

	// Auth
	APIKey string // shared secret, default: sk-dummy

	// Logging
	Debug        bool
	LogLevel     string // DEBUG, INFO, WARNING, ERROR
	LogRequests  bool
	LogResponses bool

	// Metrics
	EnableMetrics bool
	RedisAddr     string // optional; in-memory counters when empty

	// Observability
	OTELExporterType     string // "stdout" or "otlp"
	OTELExporterEndpoint string // default: "localhost:4317"

	// Behavior
	Environment             string // "", "development" or "testing"
	DeterministicEmbeddings bool
	StreamGranularity       string // "character" or "word"
	Timing                  latency.Config

	// Optional table overrides from the YAML config file. Nil means use the
	// package defaults.
	Models    []catalog.Model
	Templates map[classify.Category][]string
	Keywords  []classify.Rule
}

// fileOverrides is the YAML config file shape.
type fileOverrides struct {
	Models    []catalog.Model                `yaml:"models"`
	Templates map[classify.Category][]string `yaml:"templates"`
	Keywords  []classify.Rule                `yaml:"keywords"`
	Timing    *latency.Config                `yaml:"timing"`
}

func Load() (*Config, error) {
	// Load .env file if present (non-fatal if missing)
	_ = godotenv.Load()

	cfg := &Config{
		Port:                    getEnv("PORT", "8000"),
		Host:                    getEnv("HOST", "0.0.0.0"),
		APIKey:                  getEnv("API_KEY", "sk-dummy"),
		Debug:                   getBool("DEBUG", false),
		LogLevel:                getEnv("LOG_LEVEL", "INFO"),
		LogRequests:             getBool("LOG_REQUESTS", false),
		LogResponses:            getBool("LOG_RESPONSES", false),
		EnableMetrics:           getBool("ENABLE_METRICS", true),
		RedisAddr:               os.Getenv("REDIS_ADDR"),
		OTELExporterType:        getEnv("OTEL_EXPORTER_TYPE", "stdout"),
		OTELExporterEndpoint:    getEnv("OTEL_EXPORTER_ENDPOINT", "localhost:4317"),
		Environment:             os.Getenv("ENVIRONMENT"),
		DeterministicEmbeddings: getBool("DETERMINISTIC_EMBEDDINGS", false),
		StreamGranularity:       getEnv("STREAM_GRANULARITY", "character"),
		Timing:                  latency.Defaults(),
	}

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return nil, fmt.Errorf("invalid PORT %q: %w", cfg.Port, err)
	}
	if cfg.StreamGranularity != "character" && cfg.StreamGranularity != "word" {
		return nil, fmt.Errorf("invalid STREAM_GRANULARITY %q (want character or word)", cfg.StreamGranularity)
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}

	// Environment presets are applied last, the same way the config file is
	// allowed to clobber individual env settings.
	switch cfg.Environment {
	case "development":
		cfg.Timing = latency.DevelopmentDefaults()
		cfg.Debug = true
		cfg.LogLevel = "DEBUG"
		cfg.LogRequests = true
		cfg.LogResponses = true
	case "testing":
		cfg.Timing = latency.TestingDefaults()
		cfg.LogLevel = "WARNING"
		cfg.LogRequests = false
		cfg.LogResponses = false
	case "":
	default:
		return nil, fmt.Errorf("invalid ENVIRONMENT %q (want development, testing or empty)", cfg.Environment)
	}

	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %q: %w", path, err)
	}

	var f fileOverrides
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse config file %q: %w", path, err)
	}

	for i, rule := range f.Keywords {
		if rule.Category == "" {
			return fmt.Errorf("config file %q: keywords[%d] has empty category", path, i)
		}
		if len(rule.Keywords) == 0 {
			return fmt.Errorf("config file %q: keywords[%d] (%s) has no keywords", path, i, rule.Category)
		}
	}
	if f.Timing != nil {
		if f.Timing.ChatMaxDelay < f.Timing.ChatMinDelay {
			return fmt.Errorf("config file %q: chat_completion_max_delay below min", path)
		}
		c.Timing = *f.Timing
	}

	c.Models = f.Models
	c.Templates = f.Templates
	c.Keywords = f.Keywords
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
