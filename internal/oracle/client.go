package oracle

import (
	"context"
	"strings"

	"github.com/stellarlinkco/mcq-eval/internal/store"
)

// Client asks a provider multiple-choice questions and normalizes the
// replies. Normalization happens here, at the boundary, so callers only
// ever see the closed Answer set.
type Client struct {
	provider Provider
}

func NewClient(provider Provider) *Client {
	return &Client{provider: provider}
}

func (c *Client) ProviderName() string {
	if c == nil || c.provider == nil {
		return ""
	}
	return c.provider.Name()
}

// Ask sends the question to the provider and returns a normalized answer.
// It never fails past the caller: any transport or service error, and any
// reply that is not exactly one letter A-D, degrades to AnswerError.
func (c *Client) Ask(ctx context.Context, q *store.QuestionRecord) Answer {
	if c == nil || c.provider == nil || q == nil {
		return AnswerError
	}

	raw, err := c.provider.Complete(ctx, BuildPrompt(q))
	if err != nil {
		return AnswerError
	}
	return Normalize(raw)
}

// BuildPrompt formats a question with its four labeled options and an
// instruction to answer with a single letter.
func BuildPrompt(q *store.QuestionRecord) string {
	if q == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("You are taking a multiple-choice test. Choose the best answer.\n\n")
	sb.WriteString(strings.TrimSpace(q.Question))
	sb.WriteString("\n\n")

	options := []struct {
		label string
		text  string
	}{
		{"A", q.OptionA},
		{"B", q.OptionB},
		{"C", q.OptionC},
		{"D", q.OptionD},
	}
	for _, opt := range options {
		sb.WriteString(opt.label)
		sb.WriteString(". ")
		sb.WriteString(strings.TrimSpace(opt.text))
		sb.WriteByte('\n')
	}

	sb.WriteString("\nReply with just the letter (e.g., A).\n")
	return sb.String()
}
