// Package tokens approximates token counts by splitting on whitespace.
// One word counts as one token. This is deliberately not a real tokenizer;
// the numbers only need to be billing-shaped, not accurate.
package tokens

import "strings"

// Count returns the whitespace-word count of text.
func Count(text string) int {
	return len(strings.Fields(text))
}

// CountAll sums Count over every text.
func CountAll(texts ...string) int {
	total := 0
	for _, t := range texts {
		total += Count(t)
	}
	return total
}
