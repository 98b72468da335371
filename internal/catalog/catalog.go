// Package catalog holds the static model catalog the mock server advertises.
// The catalog is built once at startup and never mutated afterwards.
package catalog

import "fmt"

// Model is one entry in the /v1/models listing.
type Model struct {
	ID         string   `json:"id" yaml:"id"`
	Object     string   `json:"object" yaml:"-"`
	Created    int64    `json:"created" yaml:"created"`
	OwnedBy    string   `json:"owned_by" yaml:"owned_by"`
	Permission []string `json:"permission" yaml:"permission"`
	Root       string   `json:"root" yaml:"root"`
	Parent     *string  `json:"parent" yaml:"-"`
}

// Settings are per-model knobs. Only the fields that make sense for a given
// model are populated; Dimensions is set for embedding models only.
type Settings struct {
	MaxTokens             int     `yaml:"max_tokens"`
	ContextWindow         int     `yaml:"context_window"`
	Dimensions            int     `yaml:"dimensions"`
	CostPer1kInputTokens  float64 `yaml:"cost_per_1k_input_tokens"`
	CostPer1kOutputTokens float64 `yaml:"cost_per_1k_output_tokens"`
	DefaultTemperature    float64 `yaml:"default_temperature"`
	DefaultMaxTokens      int     `yaml:"default_max_tokens"`
}

// Catalog is the read-only model registry.
type Catalog struct {
	models   []Model
	settings map[string]Settings
}

// DefaultEmbeddingModel is the model assumed when an embeddings request
// omits one.
const DefaultEmbeddingModel = "text-embedding-ada-002"

// DefaultChatModel is the model assumed when a chat request omits one.
const DefaultChatModel = "gpt-3.5-turbo"

// DefaultEmbeddingDimensions matches ada-002.
const DefaultEmbeddingDimensions = 1536

func defaultModels() []Model {
	mk := func(id string, created int64) Model {
		return Model{
			ID:         id,
			Object:     "model",
			Created:    created,
			OwnedBy:    "openai",
			Permission: []string{"read"},
			Root:       id,
		}
	}
	return []Model{
		mk("gpt-4", 1677610602),
		mk("gpt-3.5-turbo", 1677610603),
		mk("text-embedding-ada-002", 1677610604),
		mk("gpt-4-turbo", 1700538000),
		mk("gpt-4o", 1709000000),
	}
}

func defaultSettings() map[string]Settings {
	return map[string]Settings{
		"gpt-3.5-turbo": {
			MaxTokens:             4096,
			ContextWindow:         16384,
			CostPer1kInputTokens:  0.0015,
			CostPer1kOutputTokens: 0.002,
			DefaultTemperature:    0.7,
			DefaultMaxTokens:      150,
		},
		"gpt-4": {
			MaxTokens:             8192,
			ContextWindow:         32768,
			CostPer1kInputTokens:  0.03,
			CostPer1kOutputTokens: 0.06,
			DefaultTemperature:    0.7,
			DefaultMaxTokens:      150,
		},
		"gpt-4-turbo": {
			MaxTokens:             128000,
			ContextWindow:         128000,
			CostPer1kInputTokens:  0.01,
			CostPer1kOutputTokens: 0.03,
			DefaultTemperature:    0.7,
			DefaultMaxTokens:      150,
		},
		"gpt-4o": {
			MaxTokens:             128000,
			ContextWindow:         128000,
			CostPer1kInputTokens:  0.005,
			CostPer1kOutputTokens: 0.015,
			DefaultTemperature:    0.7,
			DefaultMaxTokens:      150,
		},
		"text-embedding-ada-002": {
			MaxTokens:            8191,
			Dimensions:           1536,
			CostPer1kInputTokens: 0.0001,
		},
	}
}

// New builds the default catalog.
func New() *Catalog {
	return &Catalog{
		models:   defaultModels(),
		settings: defaultSettings(),
	}
}

// NewFromModels builds a catalog from an explicit model list, e.g. one loaded
// from a config file. Settings stay at the built-in defaults for known ids.
func NewFromModels(models []Model) (*Catalog, error) {
	if len(models) == 0 {
		return nil, fmt.Errorf("catalog: at least one model is required")
	}
	out := make([]Model, len(models))
	for i, m := range models {
		if m.ID == "" {
			return nil, fmt.Errorf("catalog: model %d has empty id", i)
		}
		m.Object = "model"
		if m.OwnedBy == "" {
			m.OwnedBy = "openai"
		}
		if m.Root == "" {
			m.Root = m.ID
		}
		out[i] = m
	}
	return &Catalog{models: out, settings: defaultSettings()}, nil
}

// List returns all models in catalog order.
func (c *Catalog) List() []Model {
	return c.models
}

// Get looks a model up by exact id.
func (c *Catalog) Get(id string) (Model, bool) {
	for _, m := range c.models {
		if m.ID == id {
			return m, true
		}
	}
	return Model{}, false
}

// SettingsFor returns the settings for a model id. The zero value is
// returned for unknown models.
func (c *Catalog) SettingsFor(id string) Settings {
	return c.settings[id]
}

// EmbeddingDimensions returns the configured dimensionality for an embedding
// model, falling back to the ada-002 default for unknown ids.
func (c *Catalog) EmbeddingDimensions(id string) int {
	if s, ok := c.settings[id]; ok && s.Dimensions > 0 {
		return s.Dimensions
	}
	return DefaultEmbeddingDimensions
}
