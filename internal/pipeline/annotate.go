package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"newsdigest/internal/model"
	"newsdigest/pkg/llm"
)

const maxSummaryChars = 500

// SentimentRule maps a keyword set to a sentiment. Rules are evaluated in
// order and the first one with a keyword in the headline wins.
type SentimentRule struct {
	Keywords  []string
	Sentiment model.Sentiment
}

var DefaultSentimentRules = []SentimentRule{
	{
		Keywords:  []string{"beats", "record", "surge", "increase", "growth", "upgrade"},
		Sentiment: model.SentimentPositive,
	},
	{
		Keywords:  []string{"misses", "plunge", "drop", "downgrade", "lawsuit"},
		Sentiment: model.SentimentNegative,
	},
}

// ClassifyHeadline applies rules to headline, case-insensitively, and falls
// back to neutral.
func ClassifyHeadline(rules []SentimentRule, headline string) model.Sentiment {
	h := strings.ToLower(headline)
	for _, rule := range rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(h, strings.ToLower(kw)) {
				return rule.Sentiment
			}
		}
	}
	return model.SentimentNeutral
}

type AnnotatorConfig struct {
	Provider    llm.ProviderConfig
	PromptsPath string
	PromptIndex int
	Rules       []SentimentRule
}

// Annotator adds summary5 and sentiment to each article. With the stub
// provider summaries are derived from the article alone; any other provider
// renders a prompt template and asks the model.
type Annotator struct {
	summarizer  *llm.Summarizer
	promptIndex int
	rules       []SentimentRule
	log         *slog.Logger
}

// NewAnnotator resolves the provider and, for remote providers, loads the
// prompt templates. All configuration problems surface here.
func NewAnnotator(cfg AnnotatorConfig, log *slog.Logger) (*Annotator, error) {
	if log == nil {
		log = slog.Default()
	}
	rules := cfg.Rules
	if len(rules) == 0 {
		rules = DefaultSentimentRules
	}

	provider, err := llm.NewProvider(cfg.Provider)
	if err != nil {
		return nil, err
	}

	a := &Annotator{rules: rules, promptIndex: cfg.PromptIndex, log: log}
	if provider.Name() == llm.ProviderStub {
		return a, nil
	}

	templates, err := llm.LoadTemplates(cfg.PromptsPath)
	if err != nil {
		return nil, err
	}
	summarizer, err := llm.NewSummarizer(provider, templates)
	if err != nil {
		return nil, err
	}
	if _, err := summarizer.Template(cfg.PromptIndex); err != nil {
		return nil, err
	}
	a.summarizer = summarizer
	return a, nil
}

// ProviderName reports which provider produces summaries.
func (a *Annotator) ProviderName() string {
	if a.summarizer == nil {
		return llm.ProviderStub
	}
	return a.summarizer.Provider().Name()
}

func (a *Annotator) Annotate(ctx context.Context, articles []model.NormalizedArticle, ticker string) ([]model.AnnotatedArticle, error) {
	annotated := make([]model.AnnotatedArticle, 0, len(articles))
	for i, article := range articles {
		summary, err := a.summarize(ctx, article, ticker)
		if err != nil {
			return nil, fmt.Errorf("annotate article %d: %w", i, err)
		}
		annotated = append(annotated, model.AnnotatedArticle{
			NormalizedArticle: article,
			Summary5:          truncateRunes(summary, maxSummaryChars),
			Sentiment:         ClassifyHeadline(a.rules, article.Headline),
		})
	}
	return annotated, nil
}

func (a *Annotator) summarize(ctx context.Context, article model.NormalizedArticle, ticker string) (string, error) {
	if a.summarizer == nil {
		return stubSummary(article, ticker), nil
	}

	res, err := a.summarizer.Summarize(ctx, articleContext(article, ticker), a.promptIndex)
	if err != nil {
		return "", err
	}
	a.log.Debug("article summarized", "ticker", ticker, "provider", a.ProviderName(), "latency_ms", res.LatencyMS)

	if strings.TrimSpace(res.Text) == "" {
		return stubSummary(article, ticker), nil
	}
	return res.Text, nil
}

func stubSummary(article model.NormalizedArticle, ticker string) string {
	if article.Summary != "" {
		return article.Summary
	}
	return fmt.Sprintf("%s: %s — details to follow.", ticker, article.Headline)
}

func articleContext(article model.NormalizedArticle, ticker string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Ticker: %s\n", ticker))
	sb.WriteString(fmt.Sprintf("Headline: %s\n", article.Headline))
	if article.Source != "" {
		sb.WriteString(fmt.Sprintf("Source: %s\n", article.Source))
	}
	if article.Datetime != nil {
		sb.WriteString(fmt.Sprintf("Published: %s\n", *article.Datetime))
	}
	if article.Summary != "" {
		sb.WriteString(fmt.Sprintf("Summary: %s\n", article.Summary))
	}
	return sb.String()
}

func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
