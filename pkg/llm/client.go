package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	ProviderStub      = "stub"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// ErrConfig is wrapped by every error that means the provider or its prompt
// templates were set up wrong.
var ErrConfig = errors.New("llm configuration error")

var (
	ErrUnknownProvider = fmt.Errorf("%w: unknown provider", ErrConfig)
	ErrMissingAPIKey   = fmt.Errorf("%w: missing api key", ErrConfig)
	ErrNoTemplates     = fmt.Errorf("%w: no prompt templates loaded", ErrConfig)
	ErrPromptIndex     = fmt.Errorf("%w: prompt index out of range", ErrConfig)
)

type Result struct {
	Text      string
	LatencyMS int64
}

// Provider turns a prompt template plus some context into a short summary.
type Provider interface {
	Summarize(ctx context.Context, template, input string) (*Result, error)
	Name() string
}

type ProviderConfig struct {
	Name    string
	Model   string
	APIKey  string
	BaseURL string
}

// NewProvider builds the provider named in cfg. It never performs I/O.
func NewProvider(cfg ProviderConfig) (Provider, error) {
	name := strings.ToLower(strings.TrimSpace(cfg.Name))
	switch name {
	case "", ProviderStub:
		return NewStubProvider(), nil
	case ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%w for %s", ErrMissingAPIKey, name)
		}
		return NewOpenAIProvider(cfg.APIKey, cfg.Model, cfg.BaseURL), nil
	case ProviderAnthropic:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%w for %s", ErrMissingAPIKey, name)
		}
		return NewAnthropicProvider(cfg.APIKey, cfg.Model, cfg.BaseURL), nil
	default:
		return nil, fmt.Errorf("%w %q (supported: stub, openai, anthropic)", ErrUnknownProvider, cfg.Name)
	}
}

func cleanCompletion(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```text")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}
