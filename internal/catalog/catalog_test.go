package catalog

import "testing"

func TestList(t *testing.T) {
	c := New()
	models := c.List()
	if len(models) != 5 {
		t.Fatalf("Expected 5 models, got %d", len(models))
	}
	for _, m := range models {
		if m.Object != "model" {
			t.Errorf("Model %s has object %q, want \"model\"", m.ID, m.Object)
		}
	}
}

func TestGet(t *testing.T) {
	c := New()

	m, ok := c.Get("gpt-4")
	if !ok {
		t.Fatal("Expected gpt-4 to exist")
	}
	if m.ID != "gpt-4" || m.Created != 1677610602 || m.OwnedBy != "openai" {
		t.Errorf("Unexpected gpt-4 descriptor: %+v", m)
	}

	if _, ok := c.Get("does-not-exist"); ok {
		t.Error("Expected lookup miss for unknown model")
	}
}

func TestSettingsFor(t *testing.T) {
	c := New()

	s := c.SettingsFor("gpt-4")
	if s.MaxTokens != 8192 || s.ContextWindow != 32768 {
		t.Errorf("Unexpected gpt-4 settings: %+v", s)
	}

	if s := c.SettingsFor("unknown"); s != (Settings{}) {
		t.Errorf("Expected zero settings for unknown model, got %+v", s)
	}
}

func TestEmbeddingDimensions(t *testing.T) {
	c := New()
	if got := c.EmbeddingDimensions("text-embedding-ada-002"); got != 1536 {
		t.Errorf("Expected 1536 dimensions, got %d", got)
	}
	if got := c.EmbeddingDimensions("gpt-4"); got != DefaultEmbeddingDimensions {
		t.Errorf("Expected default dimensions for non-embedding model, got %d", got)
	}
}

func TestNewFromModels(t *testing.T) {
	c, err := NewFromModels([]Model{{ID: "custom-model", Created: 42}})
	if err != nil {
		t.Fatalf("NewFromModels failed: %v", err)
	}
	m, ok := c.Get("custom-model")
	if !ok {
		t.Fatal("Expected custom-model to exist")
	}
	if m.OwnedBy != "openai" || m.Root != "custom-model" || m.Object != "model" {
		t.Errorf("Defaults not applied: %+v", m)
	}

	if _, err := NewFromModels(nil); err == nil {
		t.Error("Expected error for empty model list")
	}
	if _, err := NewFromModels([]Model{{}}); err == nil {
		t.Error("Expected error for model with empty id")
	}
}
