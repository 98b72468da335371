// Package embedding produces fixed-dimension stand-in vectors. They carry no
// semantics; components are either uniform noise or hash-seeded noise so that
// identical input reproduces an identical vector.
package embedding

import (
	"crypto/md5"
	"math"
	"math/rand"
	"sync"
	"time"
)

// Vector is one embedding entry in a batch response.
type Vector struct {
	Object    string    `json:"object"`
	Embedding []float64 `json:"embedding"`
	Index     int       `json:"index"`
}

// Synthesizer generates vectors in one of two modes. In random mode each
// component is drawn uniformly from [-1, 1) with no normalization. In
// deterministic mode the generator is seeded from a hash of the input text
// and the result is L2-normalized, so equal texts yield bit-identical unit
// vectors within one process.
type Synthesizer struct {
	mu            sync.Mutex
	rng           *rand.Rand
	deterministic bool
}

// Option customizes a Synthesizer.
type Option func(*Synthesizer)

// Deterministic switches to hash-seeded, normalized generation.
func Deterministic() Option {
	return func(s *Synthesizer) { s.deterministic = true }
}

// WithRand overrides the random source used in random mode, for tests.
func WithRand(rng *rand.Rand) Option {
	return func(s *Synthesizer) { s.rng = rng }
}

// New builds a Synthesizer in random mode unless configured otherwise.
func New(opts ...Option) *Synthesizer {
	s := &Synthesizer{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Vector generates one vector of length dim for text.
func (s *Synthesizer) Vector(text string, dim int) []float64 {
	if s.deterministic {
		return seededUnitVector(text, dim)
	}
	out := make([]float64, dim)
	s.mu.Lock()
	for i := range out {
		out[i] = s.rng.Float64()*2 - 1
	}
	s.mu.Unlock()
	return out
}

// Batch generates one vector per input text, indexed 0..N-1 in input order.
// Every vector in the result has identical length.
func (s *Synthesizer) Batch(texts []string, dim int) []Vector {
	out := make([]Vector, len(texts))
	for i, text := range texts {
		out[i] = Vector{
			Object:    "embedding",
			Embedding: s.Vector(text, dim),
			Index:     i,
		}
	}
	return out
}

// seededUnitVector draws dim components from a generator seeded by the md5
// of text, then scales to unit length.
func seededUnitVector(text string, dim int) []float64 {
	sum := md5.Sum([]byte(text))
	seed := int64(uint64(sum[0])<<24 | uint64(sum[1])<<16 | uint64(sum[2])<<8 | uint64(sum[3]))
	rng := rand.New(rand.NewSource(seed))

	out := make([]float64, dim)
	var norm float64
	for i := range out {
		out[i] = rng.Float64()*2 - 1
		norm += out[i] * out[i]
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range out {
			out[i] /= norm
		}
	}
	return out
}
