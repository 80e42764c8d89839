package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"newsdigest/internal/model"
	"newsdigest/pkg/llm"

	"github.com/go-playground/assert/v2"
)

func newStubAnnotator(t *testing.T) *Annotator {
	t.Helper()
	a, err := NewAnnotator(AnnotatorConfig{Provider: llm.ProviderConfig{Name: llm.ProviderStub}}, nil)
	if err != nil {
		t.Fatalf("NewAnnotator: %v", err)
	}
	return a
}

func writePrompts(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	content := "prompts:\n  - name: short\n    template: \"Summarize: {context}\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write prompts: %v", err)
	}
	return path
}

func TestClassifyHeadline(t *testing.T) {
	tests := []struct {
		headline string
		want     model.Sentiment
	}{
		{"Company beats estimates", model.SentimentPositive},
		{"Company misses guidance", model.SentimentNegative},
		{"Company holds annual meeting", model.SentimentNeutral},
		{"SHARES SURGE AFTER EARNINGS", model.SentimentPositive},
		{"Analyst downgrade triggers plunge", model.SentimentNegative},
		{"Record revenue despite lawsuit", model.SentimentPositive},
		{"", model.SentimentNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.headline, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyHeadline(DefaultSentimentRules, tt.headline))
		})
	}
}

func TestClassifyHeadlineCustomRules(t *testing.T) {
	rules := []SentimentRule{{Keywords: []string{"Merger"}, Sentiment: model.SentimentPositive}}

	assert.Equal(t, model.SentimentPositive, ClassifyHeadline(rules, "merger talks"))
	assert.Equal(t, model.SentimentNeutral, ClassifyHeadline(rules, "Company beats estimates"))
}

func TestAnnotateStub(t *testing.T) {
	a := newStubAnnotator(t)
	in := []model.NormalizedArticle{
		{Headline: "AAPL beats earnings", URL: "u1", Summary: "Strong iPhone sales."},
		{Headline: "AAPL misses outlook", URL: "u2"},
	}

	got, err := a.Annotate(context.Background(), in, "AAPL")

	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(got))
	assert.Equal(t, "Strong iPhone sales.", got[0].Summary5)
	assert.Equal(t, model.SentimentPositive, got[0].Sentiment)
	assert.Equal(t, "AAPL: AAPL misses outlook — details to follow.", got[1].Summary5)
	assert.Equal(t, model.SentimentNegative, got[1].Sentiment)
	assert.Equal(t, "u2", got[1].URL)
	assert.Equal(t, llm.ProviderStub, a.ProviderName())
}

func TestAnnotateStubDeterministic(t *testing.T) {
	a := newStubAnnotator(t)
	in := []model.NormalizedArticle{{Headline: "Company holds annual meeting"}}

	first, _ := a.Annotate(context.Background(), in, "MSFT")
	second, _ := a.Annotate(context.Background(), in, "MSFT")

	assert.Equal(t, first, second)
}

func TestAnnotateTruncatesSummary(t *testing.T) {
	a := newStubAnnotator(t)
	in := []model.NormalizedArticle{
		{Headline: "long", Summary: strings.Repeat("ü", 1200)},
		{Headline: strings.Repeat("x", 800)},
	}

	got, err := a.Annotate(context.Background(), in, "AAPL")

	assert.Equal(t, nil, err)
	for _, g := range got {
		assert.Equal(t, maxSummaryChars, len([]rune(g.Summary5)))
	}
}

func TestNewAnnotatorConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  AnnotatorConfig
		want error
	}{
		{
			name: "unknown provider",
			cfg:  AnnotatorConfig{Provider: llm.ProviderConfig{Name: "bard"}},
			want: llm.ErrUnknownProvider,
		},
		{
			name: "missing key",
			cfg:  AnnotatorConfig{Provider: llm.ProviderConfig{Name: llm.ProviderOpenAI}},
			want: llm.ErrMissingAPIKey,
		},
		{
			name: "missing templates",
			cfg: AnnotatorConfig{
				Provider:    llm.ProviderConfig{Name: llm.ProviderOpenAI, APIKey: "k"},
				PromptsPath: filepath.Join(t.TempDir(), "missing.yaml"),
			},
			want: llm.ErrNoTemplates,
		},
		{
			name: "prompt index out of range",
			cfg: AnnotatorConfig{
				Provider:    llm.ProviderConfig{Name: llm.ProviderAnthropic, APIKey: "k"},
				PromptsPath: writePrompts(t),
				PromptIndex: 3,
			},
			want: llm.ErrPromptIndex,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewAnnotator(tt.cfg, nil)
			assert.Equal(t, true, errors.Is(err, tt.want))
			assert.Equal(t, true, errors.Is(err, llm.ErrConfig))
			assert.Equal(t, true, a == nil)
		})
	}
}

func TestNewAnnotatorStubNeedsNoTemplates(t *testing.T) {
	a, err := NewAnnotator(AnnotatorConfig{
		Provider:    llm.ProviderConfig{Name: llm.ProviderStub},
		PromptsPath: "/does/not/exist.yaml",
	}, nil)

	assert.Equal(t, nil, err)
	assert.NotEqual(t, nil, a)
}

func newOpenAIServer(t *testing.T, content string, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1700000000,
			"model":   "gpt-4o-mini",
			"choices": []map[string]interface{}{
				{
					"index":         0,
					"finish_reason": "stop",
					"message":       map[string]interface{}{"role": "assistant", "content": content},
				},
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAnnotateRemoteProvider(t *testing.T) {
	srv := newOpenAIServer(t, strings.Repeat("s", 700), http.StatusOK)
	a, err := NewAnnotator(AnnotatorConfig{
		Provider:    llm.ProviderConfig{Name: llm.ProviderOpenAI, APIKey: "k", BaseURL: srv.URL},
		PromptsPath: writePrompts(t),
	}, nil)
	assert.Equal(t, nil, err)
	assert.Equal(t, llm.ProviderOpenAI, a.ProviderName())

	got, err := a.Annotate(context.Background(), []model.NormalizedArticle{{Headline: "AAPL beats earnings"}}, "AAPL")

	assert.Equal(t, nil, err)
	assert.Equal(t, maxSummaryChars, len(got[0].Summary5))
	assert.Equal(t, model.SentimentPositive, got[0].Sentiment)
}

func TestAnnotateRemoteEmptyTextFallsBack(t *testing.T) {
	srv := newOpenAIServer(t, "   ", http.StatusOK)
	a, _ := NewAnnotator(AnnotatorConfig{
		Provider:    llm.ProviderConfig{Name: llm.ProviderOpenAI, APIKey: "k", BaseURL: srv.URL},
		PromptsPath: writePrompts(t),
	}, nil)

	got, err := a.Annotate(context.Background(), []model.NormalizedArticle{{Headline: "Quiet day"}}, "IBM")

	assert.Equal(t, nil, err)
	assert.Equal(t, "IBM: Quiet day — details to follow.", got[0].Summary5)
}

func TestAnnotateRemoteFailurePropagates(t *testing.T) {
	srv := newOpenAIServer(t, "", http.StatusBadRequest)
	a, _ := NewAnnotator(AnnotatorConfig{
		Provider:    llm.ProviderConfig{Name: llm.ProviderOpenAI, APIKey: "k", BaseURL: srv.URL},
		PromptsPath: writePrompts(t),
	}, nil)

	got, err := a.Annotate(context.Background(), []model.NormalizedArticle{{Headline: "x"}}, "IBM")

	assert.NotEqual(t, nil, err)
	assert.Equal(t, 0, len(got))
}
