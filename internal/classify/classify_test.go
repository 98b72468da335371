package classify

import "testing"

func TestClassify_Categories(t *testing.T) {
	c := New(nil)

	cases := []struct {
		text string
		want Category
	}{
		{"can you write a python function for me", CategoryCode},
		{"I need help with my homework", CategoryHelp},
		{"please summarize this article", CategorySummary},
		{"what architecture would you recommend", CategoryTechnical},
		{"hello there", CategoryGeneric},
		{"", CategoryGeneric},
	}
	for _, tc := range cases {
		if got := c.Classify(tc.text); got != tc.want {
			t.Errorf("Classify(%q) = %s, want %s", tc.text, got, tc.want)
		}
	}
}

func TestClassify_PriorityOrder(t *testing.T) {
	c := New(nil)

	// "debug" is a code keyword; code outranks help even when both match.
	got := c.Classify("please help me debug this")
	if got != CategoryCode {
		t.Errorf("Expected code to win over help, got %s", got)
	}

	// summary keyword alongside a technical one: summary is evaluated first.
	got = c.Classify("give me an overview of the design")
	if got != CategorySummary {
		t.Errorf("Expected summary to win over technical, got %s", got)
	}
}

func TestClassify_CaseInsensitive(t *testing.T) {
	c := New(nil)
	if got := c.Classify("EXPLAIN This To Me"); got != CategoryHelp {
		t.Errorf("Expected help for upper-cased keyword, got %s", got)
	}
}

func TestClassify_Deterministic(t *testing.T) {
	c := New(nil)
	first := c.Classify("sql question")
	for i := 0; i < 10; i++ {
		if got := c.Classify("sql question"); got != first {
			t.Fatalf("Classification changed between calls: %s vs %s", first, got)
		}
	}
}

func TestClassify_CustomRules(t *testing.T) {
	c := New([]Rule{{Category: Category("pirate"), Keywords: []string{"arr"}}})
	if got := c.Classify("arr matey"); got != Category("pirate") {
		t.Errorf("Expected custom category, got %s", got)
	}
	if got := c.Classify("debug this"); got != CategoryGeneric {
		t.Errorf("Custom rules should replace defaults, got %s", got)
	}
}
