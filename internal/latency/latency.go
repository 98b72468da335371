// Package latency computes artificial processing delays so the mock feels
// like a real inference backend. It only computes durations; callers decide
// whether and how to sleep.
package latency

import (
	"math/rand"
	"sync"
	"time"
)

// Kind is the request class a delay is computed for.
type Kind string

const (
	KindChat      Kind = "chat"
	KindEmbedding Kind = "embedding"
	KindListing   Kind = "listing"
)

// Config holds the timing tables. Delays are in seconds to keep the config
// file shape simple.
type Config struct {
	ChatMinDelay   float64            `yaml:"chat_completion_min_delay"`
	ChatMaxDelay   float64            `yaml:"chat_completion_max_delay"`
	EmbeddingDelay float64            `yaml:"embedding_delay"`
	ListingDelay   float64            `yaml:"model_list_delay"`
	ChunkDelay     float64            `yaml:"streaming_chunk_delay"`
	Multipliers    map[string]float64 `yaml:"model_multipliers"`
}

// Defaults returns the production timing tables.
func Defaults() Config {
	return Config{
		ChatMinDelay:   0.5,
		ChatMaxDelay:   2.0,
		EmbeddingDelay: 0.1,
		ListingDelay:   0,
		ChunkDelay:     0.01,
		Multipliers: map[string]float64{
			"gpt-3.5-turbo": 1.0,
			"gpt-4":         2.5,
			"gpt-4-turbo":   2.0,
			"gpt-4o":        1.8,
		},
	}
}

// DevelopmentDefaults shrinks chat and embedding delays for local iteration.
func DevelopmentDefaults() Config {
	cfg := Defaults()
	cfg.ChatMinDelay = 0.1
	cfg.ChatMaxDelay = 0.5
	cfg.EmbeddingDelay = 0.05
	return cfg
}

// TestingDefaults makes delays near-zero so test suites stay fast.
func TestingDefaults() Config {
	cfg := Defaults()
	cfg.ChatMinDelay = 0.01
	cfg.ChatMaxDelay = 0.05
	cfg.EmbeddingDelay = 0.01
	return cfg
}

// Simulator draws delays from the configured tables.
type Simulator struct {
	mu  sync.Mutex
	rng *rand.Rand
	cfg Config
}

// New builds a Simulator. A nil rng means a time-seeded source.
func New(cfg Config, rng *rand.Rand) *Simulator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Simulator{rng: rng, cfg: cfg}
}

// Delay returns the artificial delay for one request. Chat delays are drawn
// uniformly from [min, max] and scaled by the model multiplier (1.0 for
// unrecognized models); embedding and listing delays are fixed.
func (s *Simulator) Delay(model string, kind Kind) time.Duration {
	var secs float64
	switch kind {
	case KindChat:
		s.mu.Lock()
		secs = s.cfg.ChatMinDelay + s.rng.Float64()*(s.cfg.ChatMaxDelay-s.cfg.ChatMinDelay)
		s.mu.Unlock()
		mult, ok := s.cfg.Multipliers[model]
		if !ok {
			mult = 1.0
		}
		secs *= mult
	case KindEmbedding:
		secs = s.cfg.EmbeddingDelay
	default:
		secs = s.cfg.ListingDelay
	}
	return time.Duration(secs * float64(time.Second))
}

// ChunkDelay returns the per-chunk streaming pacing delay.
func (s *Simulator) ChunkDelay() time.Duration {
	return time.Duration(s.cfg.ChunkDelay * float64(time.Second))
}
