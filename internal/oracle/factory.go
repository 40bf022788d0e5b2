package oracle

import (
	"errors"
	"fmt"
	"strings"

	"github.com/stellarlinkco/mcq-eval/internal/config"
)

// FromConfig builds the configured default provider.
func FromConfig(cfg *config.Config) (Provider, error) {
	if cfg == nil {
		return nil, errors.New("oracle: nil config")
	}

	name := strings.ToLower(strings.TrimSpace(cfg.LLM.DefaultProvider))
	if name == "" {
		name = "openai"
	}

	pcfg, ok := lookupProviderConfig(cfg, name)
	if !ok {
		return nil, fmt.Errorf("oracle: provider %q not configured", name)
	}

	switch name {
	case "openai":
		return NewOpenAIProvider(pcfg.APIKey, pcfg.BaseURL, pcfg.Model), nil
	case "claude", "anthropic":
		return NewClaudeProvider(pcfg.APIKey, pcfg.BaseURL, pcfg.Model), nil
	default:
		return nil, fmt.Errorf("oracle: unknown provider %q", name)
	}
}

func lookupProviderConfig(cfg *config.Config, name string) (config.ProviderConfig, bool) {
	for key, pcfg := range cfg.LLM.Providers {
		if strings.EqualFold(strings.TrimSpace(key), name) {
			return pcfg, true
		}
	}
	// Claude accepts both spellings in config.
	if name == "claude" {
		return lookupProviderConfig(cfg, "anthropic")
	}
	return config.ProviderConfig{}, false
}
