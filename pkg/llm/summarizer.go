package llm

import (
	"context"
	"fmt"
)

// Summarizer pairs one provider with the loaded prompt templates.
type Summarizer struct {
	provider  Provider
	templates []Template
}

func NewSummarizer(provider Provider, templates []Template) (*Summarizer, error) {
	if provider == nil {
		return nil, fmt.Errorf("%w: nil provider", ErrConfig)
	}
	if len(templates) == 0 {
		return nil, ErrNoTemplates
	}
	return &Summarizer{provider: provider, templates: templates}, nil
}

func (s *Summarizer) Provider() Provider {
	return s.provider
}

func (s *Summarizer) Template(index int) (Template, error) {
	if index < 0 || index >= len(s.templates) {
		return Template{}, fmt.Errorf("%w: %d (have %d templates)", ErrPromptIndex, index, len(s.templates))
	}
	return s.templates[index], nil
}

func (s *Summarizer) Summarize(ctx context.Context, input string, promptIndex int) (*Result, error) {
	tmpl, err := s.Template(promptIndex)
	if err != nil {
		return nil, err
	}
	return s.provider.Summarize(ctx, tmpl.Template, input)
}
