package oracle

import (
	"context"
	"errors"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const defaultClaudeModel = "claude-sonnet-4-5-20250929"

type ClaudeProvider struct {
	client *anthropic.Client
	model  string
}

func NewClaudeProvider(apiKey string, baseURL string, model string) *ClaudeProvider {
	opts := make([]option.RequestOption, 0, 2)
	if v := strings.TrimSpace(apiKey); v != "" {
		opts = append(opts, option.WithAPIKey(v))
	}
	if v := strings.TrimSpace(baseURL); v != "" {
		opts = append(opts, option.WithBaseURL(strings.TrimRight(v, "/")))
	}

	m := strings.TrimSpace(model)
	if m == "" {
		m = defaultClaudeModel
	}

	client := anthropic.NewClient(opts...)
	return &ClaudeProvider{
		client: &client,
		model:  m,
	}
}

func (p *ClaudeProvider) Name() string {
	return "claude"
}

func (p *ClaudeProvider) Complete(ctx context.Context, prompt string) (string, error) {
	if p == nil || p.client == nil {
		return "", errors.New("oracle: claude: nil client")
	}
	if ctx == nil {
		return "", errors.New("oracle: claude: nil context")
	}
	if strings.TrimSpace(prompt) == "" {
		return "", errors.New("oracle: claude: empty prompt")
	}

	msg, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: 16,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", err
	}
	if msg == nil {
		return "", errors.New("oracle: claude: nil response")
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.AsText().Text)
		}
	}
	return sb.String(), nil
}
