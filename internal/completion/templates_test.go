package completion

import (
	"math/rand"
	"testing"

	"github.com/vnmchuo/llm-mock/internal/classify"
)

func TestTemplates_PickMembership(t *testing.T) {
	tmpl, err := NewTemplates(nil, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewTemplates failed: %v", err)
	}

	table := DefaultTemplateTable()
	for cat, list := range table {
		for i := 0; i < 20; i++ {
			got := tmpl.Pick(cat)
			found := false
			for _, want := range list {
				if got == want {
					found = true
					break
				}
			}
			if !found {
				t.Fatalf("Pick(%s) returned text outside the category list", cat)
			}
		}
	}
}

func TestTemplates_UnknownCategoryFallsBack(t *testing.T) {
	tmpl, err := NewTemplates(nil, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewTemplates failed: %v", err)
	}

	got := tmpl.Pick(classify.Category("no-such-category"))
	found := false
	for _, want := range DefaultTemplateTable()[classify.CategoryGeneric] {
		if got == want {
			found = true
			break
		}
	}
	if !found {
		t.Error("Unknown category should fall back to the generic group")
	}
}

func TestTemplates_Validation(t *testing.T) {
	if _, err := NewTemplates(map[classify.Category][]string{
		classify.CategoryCode: {"only code, no generic"},
	}, nil); err == nil {
		t.Error("Expected error when generic fallback group is missing")
	}

	if _, err := NewTemplates(map[classify.Category][]string{
		classify.CategoryGeneric: {},
	}, nil); err == nil {
		t.Error("Expected error for empty category list")
	}
}

func TestTemplates_CodeCategoryHasFencedSnippets(t *testing.T) {
	for _, tmpl := range DefaultTemplateTable()[classify.CategoryCode] {
		if !containsFence(tmpl) {
			t.Errorf("Code template lacks a fenced snippet: %q", tmpl)
		}
	}
}

func containsFence(s string) bool {
	count := 0
	for i := 0; i+3 <= len(s); i++ {
		if s[i:i+3] == "```" {
			count++
			i += 2
		}
	}
	return count >= 2
}
