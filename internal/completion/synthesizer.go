// Package completion synthesizes chat.completion responses from canned
// templates. The classifier picks a category from the last user message, the
// template store picks the text, and usage is estimated by word count.
package completion

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vnmchuo/llm-mock/internal/classify"
	"github.com/vnmchuo/llm-mock/pkg/tokens"
)

// Granularity controls how the synthesized text is split into stream chunks.
type Granularity string

const (
	GranularityCharacter Granularity = "character"
	GranularityWord      Granularity = "word"
)

// DefaultChunkDelay paces streaming output. It only affects cadence, never
// correctness, and may be zero.
const DefaultChunkDelay = 10 * time.Millisecond

// Synthesizer builds completion responses and chunk streams.
type Synthesizer struct {
	classifier  *classify.Classifier
	templates   *Templates
	granularity Granularity
	chunkDelay  time.Duration
	now         func() time.Time
	newID       func() string
}

// Option customizes a Synthesizer.
type Option func(*Synthesizer)

// WithGranularity sets the streaming chunk granularity.
func WithGranularity(g Granularity) Option {
	return func(s *Synthesizer) { s.granularity = g }
}

// WithChunkDelay sets the per-chunk pacing delay. Zero disables pacing.
func WithChunkDelay(d time.Duration) Option {
	return func(s *Synthesizer) { s.chunkDelay = d }
}

// WithClock overrides the timestamp source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Synthesizer) { s.now = now }
}

// WithIDFunc overrides completion id generation, for tests.
func WithIDFunc(f func() string) Option {
	return func(s *Synthesizer) { s.newID = f }
}

// New wires a Synthesizer from its collaborators.
func New(classifier *classify.Classifier, templates *Templates, opts ...Option) *Synthesizer {
	s := &Synthesizer{
		classifier:  classifier,
		templates:   templates,
		granularity: GranularityCharacter,
		chunkDelay:  DefaultChunkDelay,
		now:         time.Now,
		newID:       func() string { return "chatcmpl-" + uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func newSeededRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// lastUserMessage returns the content of the most recent message with the
// user role, or the empty string when there is none.
func lastUserMessage(messages []Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == RoleUser {
			return messages[i].Content
		}
	}
	return ""
}

// Complete synthesizes one chat.completion response. The finish reason is
// always "stop"; this mock never truncates.
func (s *Synthesizer) Complete(messages []Message, model string) (*Response, error) {
	if len(messages) == 0 {
		return nil, fmt.Errorf("completion: messages must not be empty")
	}

	category := s.classifier.Classify(lastUserMessage(messages))
	text := s.templates.Pick(category)

	contents := make([]string, len(messages))
	for i, m := range messages {
		contents[i] = m.Content
	}
	prompt := tokens.CountAll(contents...)
	reply := tokens.Count(text)

	return &Response{
		ID:      s.newID(),
		Object:  "chat.completion",
		Created: s.now().Unix(),
		Model:   model,
		Choices: []Choice{
			{
				Index:        0,
				Message:      Message{Role: RoleAssistant, Content: text},
				FinishReason: "stop",
			},
		},
		Usage: Usage{
			PromptTokens:     prompt,
			CompletionTokens: reply,
			TotalTokens:      prompt + reply,
		},
	}, nil
}

// Stream synthesizes a response and emits it as an ordered chunk sequence:
// one chunk per fragment of the text, then a terminal chunk with an empty
// delta and finish reason "stop". The channel is closed after the terminal
// chunk. Production stops when ctx is cancelled; the caller owns pacing
// expectations but never needs to drain on cancel.
func (s *Synthesizer) Stream(ctx context.Context, messages []Message, model string) (<-chan Chunk, error) {
	resp, err := s.Complete(messages, model)
	if err != nil {
		return nil, err
	}

	content := resp.Choices[0].Message.Content
	frags := fragments(content, s.granularity)

	ch := make(chan Chunk)
	go func() {
		defer close(ch)

		for _, frag := range frags {
			if !s.pace(ctx) {
				return
			}
			chunk := Chunk{
				ID:      resp.ID,
				Object:  "chat.completion.chunk",
				Created: resp.Created,
				Model:   model,
				Choices: []ChunkChoice{{Index: 0, Delta: Delta{Content: frag}}},
			}
			select {
			case ch <- chunk:
			case <-ctx.Done():
				return
			}
		}

		stop := "stop"
		final := Chunk{
			ID:      resp.ID,
			Object:  "chat.completion.chunk",
			Created: resp.Created,
			Model:   model,
			Choices: []ChunkChoice{{Index: 0, Delta: Delta{}, FinishReason: &stop}},
		}
		select {
		case ch <- final:
		case <-ctx.Done():
		}
	}()

	return ch, nil
}

// pace sleeps for the configured chunk delay, returning false if ctx was
// cancelled while waiting.
func (s *Synthesizer) pace(ctx context.Context) bool {
	if s.chunkDelay <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(s.chunkDelay)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}

// fragments splits content so that concatenating the pieces in order
// reproduces it exactly. Character granularity splits per rune; word
// granularity splits after each whitespace run.
func fragments(content string, g Granularity) []string {
	if content == "" {
		return nil
	}
	if g == GranularityWord {
		var out []string
		var b strings.Builder
		inSpace := false
		for _, r := range content {
			isSpace := r == ' ' || r == '\t' || r == '\n' || r == '\r'
			if inSpace && !isSpace && b.Len() > 0 {
				out = append(out, b.String())
				b.Reset()
			}
			b.WriteRune(r)
			inSpace = isSpace
		}
		if b.Len() > 0 {
			out = append(out, b.String())
		}
		return out
	}
	out := make([]string, 0, len(content))
	for _, r := range content {
		out = append(out, string(r))
	}
	return out
}
