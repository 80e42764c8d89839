package llm

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"
)

const stubMaxChars = 280

// StubProvider answers offline from the input alone; the template is ignored.
// The same input always yields the same text.
type StubProvider struct{}

func NewStubProvider() *StubProvider {
	return &StubProvider{}
}

func (p *StubProvider) Name() string {
	return ProviderStub
}

func (p *StubProvider) Summarize(ctx context.Context, template, input string) (*Result, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text := strings.Join(strings.Fields(input), " ")
	if end := strings.Index(text, ". "); end >= 0 {
		text = text[:end+1]
	}
	if utf8.RuneCountInString(text) > stubMaxChars {
		text = string([]rune(text)[:stubMaxChars-3]) + "..."
	}

	return &Result{
		Text:      text,
		LatencyMS: time.Since(start).Milliseconds(),
	}, nil
}
