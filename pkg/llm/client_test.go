package llm

import (
	"errors"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestCleanCompletion(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain text unchanged",
			input: "Apple beat estimates.",
			want:  "Apple beat estimates.",
		},
		{
			name:  "strips text fenced block",
			input: "```text\nApple beat estimates.\n```",
			want:  "Apple beat estimates.",
		},
		{
			name:  "strips plain fenced block",
			input: "```\nApple beat estimates.\n```",
			want:  "Apple beat estimates.",
		},
		{
			name:  "trims surrounding whitespace",
			input: "  Apple beat estimates.  ",
			want:  "Apple beat estimates.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cleanCompletion(tt.input)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name     string
		cfg      ProviderConfig
		wantName string
		wantErr  error
	}{
		{name: "empty defaults to stub", cfg: ProviderConfig{}, wantName: ProviderStub},
		{name: "stub", cfg: ProviderConfig{Name: "stub"}, wantName: ProviderStub},
		{name: "case insensitive", cfg: ProviderConfig{Name: " OpenAI ", APIKey: "k"}, wantName: ProviderOpenAI},
		{name: "anthropic", cfg: ProviderConfig{Name: "anthropic", APIKey: "k"}, wantName: ProviderAnthropic},
		{name: "openai without key", cfg: ProviderConfig{Name: "openai"}, wantErr: ErrMissingAPIKey},
		{name: "anthropic without key", cfg: ProviderConfig{Name: "anthropic"}, wantErr: ErrMissingAPIKey},
		{name: "unknown", cfg: ProviderConfig{Name: "cirrascale"}, wantErr: ErrUnknownProvider},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(tt.cfg)
			if tt.wantErr != nil {
				assert.Equal(t, true, errors.Is(err, tt.wantErr))
				assert.Equal(t, true, errors.Is(err, ErrConfig))
				assert.Equal(t, nil, p)
				return
			}
			assert.Equal(t, nil, err)
			assert.Equal(t, tt.wantName, p.Name())
		})
	}
}
