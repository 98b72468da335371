package tokens

import "testing"

func TestCount(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{"", 0},
		{"hello", 1},
		{"hello world", 2},
		{"  spaced   out\ttext\nhere ", 4},
	}
	for _, c := range cases {
		if got := Count(c.text); got != c.want {
			t.Errorf("Count(%q) = %d, want %d", c.text, got, c.want)
		}
	}
}

func TestCountAll(t *testing.T) {
	if got := CountAll("one two", "three", ""); got != 3 {
		t.Errorf("Expected 3 tokens, got %d", got)
	}
	if got := CountAll(); got != 0 {
		t.Errorf("Expected 0 tokens for no input, got %d", got)
	}
}
