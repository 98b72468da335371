// Package classify maps free-text user input to a response category by
// keyword membership. Rules are evaluated in a fixed order and the first
// category with any matching keyword wins; nothing is scored or combined.
package classify

import "strings"

// Category is one of the closed set of response groups.
type Category string

const (
	CategoryGeneric   Category = "generic"
	CategoryCode      Category = "code"
	CategoryHelp      Category = "help"
	CategorySummary   Category = "summary"
	CategoryTechnical Category = "technical"
)

// Rule pairs a category with the keywords that trigger it. New categories are
// added by appending rows, not by editing control flow.
type Rule struct {
	Category Category `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}

// Classifier evaluates rules top to bottom against lower-cased input.
type Classifier struct {
	rules []Rule
}

// DefaultRules returns the built-in keyword tables in priority order.
func DefaultRules() []Rule {
	return []Rule{
		{
			Category: CategoryCode,
			Keywords: []string{
				"code", "programming", "function", "script", "algorithm",
				"debug", "syntax", "variable", "class", "method", "python",
				"javascript", "java", "c++", "html", "css", "sql", "api",
			},
		},
		{
			Category: CategoryHelp,
			Keywords: []string{
				"help", "assist", "support", "guidance", "advice", "tutorial",
				"explain", "teach", "learn", "understand", "confused",
			},
		},
		{
			Category: CategorySummary,
			Keywords: []string{
				"summarize", "summary", "overview", "brief", "main points",
				"key takeaways", "tldr", "extract", "highlight",
			},
		},
		{
			Category: CategoryTechnical,
			Keywords: []string{
				"technical", "analysis", "approach", "methodology", "strategy",
				"implementation", "architecture", "design", "best practices",
			},
		},
	}
}

// New builds a classifier over the given rules. Nil rules means the defaults.
func New(rules []Rule) *Classifier {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Classifier{rules: rules}
}

// Classify returns the first category whose keyword set has a substring match
// in text, or CategoryGeneric when nothing matches. Matching is
// case-insensitive and deterministic.
func (c *Classifier) Classify(text string) Category {
	lower := strings.ToLower(text)
	for _, r := range c.rules {
		for _, kw := range r.Keywords {
			if strings.Contains(lower, kw) {
				return r.Category
			}
		}
	}
	return CategoryGeneric
}
