package completion

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/vnmchuo/llm-mock/internal/classify"
)

// Templates is the static store of canned responses per category. Content is
// configuration, not computation; only the pick is random.
type Templates struct {
	mu         sync.Mutex
	rng        *rand.Rand
	byCategory map[classify.Category][]string
}

// DefaultTemplateTable returns the built-in response strings.
func DefaultTemplateTable() map[classify.Category][]string {
	return map[classify.Category][]string{
		classify.CategoryGeneric: {
			"Hello! I'm an AI assistant powered by dummy data. How can I help you today?",
			"That's an interesting question! Based on my training, I would say that...",
			"I understand your concern. Let me think about this carefully...",
			"Here are some thoughts on that topic:\n\n1. First consideration\n2. Second point\n3. Finally...",
			"I can help you with that! Here's what I recommend based on the information provided.",
			"Thank you for your question. Here's my response based on the available information:",
			"Great question! Let me break this down for you step by step.",
			"I appreciate you sharing that with me. Here's what I think:",
			"That's a complex topic. Let me provide you with a comprehensive answer:",
			"I'd be happy to assist you with that. Here's my analysis:",
		},
		classify.CategoryCode: {
			"Here's some example code:\n\n```python\ndef hello_world():\n    print('Hello, World!')\n    return 'Success'\n```\n\nIs this what you're looking for?",
			"Here's a code example for your request:\n\n```python\n# Your code here\ndef process_data(data):\n    result = []\n    for item in data:\n        result.append(transform(item))\n    return result\n```\n\nWould you like me to explain any part of this?",
			"Here's a sample implementation:\n\n```javascript\nfunction processItems(items) {\n    return items.map(item => {\n        return {\n            ...item,\n            processed: true\n        };\n    });\n}\n```\n\nIs this helpful?",
			"I can help with code! Here's an example:\n\n```python\nimport os\n\ndef analyze_file(filepath):\n    if os.path.exists(filepath):\n        with open(filepath, 'r') as f:\n            content = f.read()\n        return content\n    else:\n        return 'File not found'\n```\n\nLet me know if you need something specific!",
		},
		classify.CategoryHelp: {
			"I'm here to help! I can assist with a wide variety of tasks including answering questions, writing, coding, and problem-solving. What specifically would you like help with?",
			"Of course, I'd be happy to help! I can provide assistance with:\n\n- Answering questions on various topics\n- Writing and editing text\n- Programming and debugging\n- Data analysis and explanations\n- Creative projects\n\nWhat would you like to work on?",
			"I'm ready to assist! My capabilities include:\n\n✓ Information and research\n✓ Writing and content creation\n✓ Technical support and coding\n✓ Problem-solving and analysis\n✓ Learning and explanations\n\nHow can I help you today?",
			"I'm here to support you with whatever you need! Whether it's:\n\n• Answering questions\n• Helping with projects\n• Debugging code\n• Writing assistance\n• Learning new concepts\n\nJust let me know what you'd like to work on!",
		},
		classify.CategorySummary: {
			"Based on the text provided, here's a summary of the key points:\n\n- Main topic: The content discusses important concepts\n- Key findings: Multiple insights were presented\n- Conclusion: The information suggests several implications\n\nWould you like me to elaborate on any of these points?",
			"Here's a concise summary of the material:\n\n**Key Takeaways:**\n1. Primary theme: The main concepts covered\n2. Important details: Supporting information and examples\n3. Actionable insights: What this means for practical application\n\nLet me know if you'd like more detail on any section.",
			"Summary of the content:\n\n**Overview:** The text presents comprehensive information about the topic.\n\n**Main Points:**\n• Essential concepts and definitions\n• Supporting evidence and examples\n• Practical applications and implications\n\n**Conclusion:** The material provides valuable insights and actionable guidance.\n\nIs there a specific aspect you'd like me to expand on?",
		},
		classify.CategoryTechnical: {
			"Here's a detailed technical analysis:\n\n1. **Problem Definition:** Understanding the core requirements\n2. **Approach:** Recommended methodology and tools\n3. **Implementation:** Step-by-step process\n4. **Considerations:** Potential challenges and solutions\n\nWould you like me to elaborate on any of these areas?",
			"From a technical perspective, I recommend the following approach:\n\n• **Analysis:** Current situation assessment\n• **Strategy:** Optimal path forward\n• **Resources:** Required tools and knowledge\n• **Timeline:** Realistic implementation schedule\n\nWhat specific aspect would you like me to focus on?",
			"Here's my professional recommendation:\n\n**Current State:** Analysis of existing conditions\n**Recommended Solution:** Evidence-based approach\n**Implementation Plan:** Practical steps and milestones\n**Success Metrics:** How to measure effectiveness\n\nLet me know if you need clarification on any point.",
		},
	}
}

// NewTemplates builds a store over the given table. A nil table means the
// defaults; a nil rng means a time-seeded source.
func NewTemplates(table map[classify.Category][]string, rng *rand.Rand) (*Templates, error) {
	if table == nil {
		table = DefaultTemplateTable()
	}
	if _, ok := table[classify.CategoryGeneric]; !ok {
		return nil, fmt.Errorf("templates: generic fallback category is required")
	}
	for cat, list := range table {
		if len(list) == 0 {
			return nil, fmt.Errorf("templates: category %q has no entries", cat)
		}
	}
	if rng == nil {
		rng = newSeededRand()
	}
	return &Templates{rng: rng, byCategory: table}, nil
}

// Pick returns one template for the category, chosen uniformly at random.
// Unknown categories fall back to the generic group.
func (t *Templates) Pick(cat classify.Category) string {
	list, ok := t.byCategory[cat]
	if !ok {
		list = t.byCategory[classify.CategoryGeneric]
	}
	t.mu.Lock()
	i := t.rng.Intn(len(list))
	t.mu.Unlock()
	return list[i]
}

// Categories returns the configured category names.
func (t *Templates) Categories() []classify.Category {
	out := make([]classify.Category, 0, len(t.byCategory))
	for cat := range t.byCategory {
		out = append(out, cat)
	}
	return out
}
