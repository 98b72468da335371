package latency

import (
	"math/rand"
	"testing"
	"time"
)

func TestDelay_ChatWithinRange(t *testing.T) {
	s := New(Defaults(), rand.New(rand.NewSource(1)))

	for i := 0; i < 100; i++ {
		d := s.Delay("gpt-3.5-turbo", KindChat)
		if d < 500*time.Millisecond || d > 2*time.Second {
			t.Fatalf("Chat delay %v outside [0.5s, 2s]", d)
		}
	}
}

func TestDelay_ModelMultiplier(t *testing.T) {
	s := New(Defaults(), rand.New(rand.NewSource(1)))

	// gpt-4 multiplies by 2.5, so the floor rises above the base minimum.
	for i := 0; i < 100; i++ {
		d := s.Delay("gpt-4", KindChat)
		if d < 1250*time.Millisecond || d > 5*time.Second {
			t.Fatalf("gpt-4 delay %v outside [1.25s, 5s]", d)
		}
	}
}

func TestDelay_UnknownModelMultiplier(t *testing.T) {
	s := New(Defaults(), rand.New(rand.NewSource(1)))
	for i := 0; i < 100; i++ {
		d := s.Delay("no-such-model", KindChat)
		if d < 500*time.Millisecond || d > 2*time.Second {
			t.Fatalf("Unknown-model delay %v should use multiplier 1.0", d)
		}
	}
}

func TestDelay_FixedKinds(t *testing.T) {
	s := New(Defaults(), nil)

	if d := s.Delay("text-embedding-ada-002", KindEmbedding); d != 100*time.Millisecond {
		t.Errorf("Expected 100ms embedding delay, got %v", d)
	}
	if d := s.Delay("gpt-4", KindListing); d != 0 {
		t.Errorf("Expected zero listing delay, got %v", d)
	}
}

func TestChunkDelay(t *testing.T) {
	s := New(Defaults(), nil)
	if d := s.ChunkDelay(); d != 10*time.Millisecond {
		t.Errorf("Expected 10ms chunk delay, got %v", d)
	}
}

func TestEnvironmentPresets(t *testing.T) {
	dev := DevelopmentDefaults()
	if dev.ChatMaxDelay != 0.5 || dev.EmbeddingDelay != 0.05 {
		t.Errorf("Unexpected development preset: %+v", dev)
	}
	tst := TestingDefaults()
	if tst.ChatMaxDelay != 0.05 || tst.EmbeddingDelay != 0.01 {
		t.Errorf("Unexpected testing preset: %+v", tst)
	}
	// Multipliers survive the presets.
	if dev.Multipliers["gpt-4"] != 2.5 {
		t.Errorf("Expected gpt-4 multiplier 2.5, got %v", dev.Multipliers["gpt-4"])
	}
}
