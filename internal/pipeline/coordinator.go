package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"

	"newsdigest/internal/model"
)

// ErrInvalidTicker is returned before any I/O when the ticker is empty or
// not purely ASCII letters and digits.
var ErrInvalidTicker = errors.New("invalid ticker")

var tickerPattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)

// Fetcher supplies raw articles for a ticker. Placeholder data counts as a
// successful fetch.
type Fetcher interface {
	Fetch(ctx context.Context, ticker string) ([]model.RawArticle, error)
}

// ArticleAnnotator is the annotation stage; *Annotator implements it.
type ArticleAnnotator interface {
	Annotate(ctx context.Context, articles []model.NormalizedArticle, ticker string) ([]model.AnnotatedArticle, error)
}

func ValidateTicker(ticker string) error {
	if !tickerPattern.MatchString(ticker) {
		return fmt.Errorf("%w: %q", ErrInvalidTicker, ticker)
	}
	return nil
}

// Coordinator runs fetch, normalize, deduplicate, annotate and build, once
// and in that order. It keeps no state between calls.
type Coordinator struct {
	fetcher   Fetcher
	annotator ArticleAnnotator
	log       *slog.Logger
}

func NewCoordinator(fetcher Fetcher, annotator ArticleAnnotator, log *slog.Logger) *Coordinator {
	if log == nil {
		log = slog.Default()
	}
	return &Coordinator{fetcher: fetcher, annotator: annotator, log: log}
}

func (c *Coordinator) BuildDigest(ctx context.Context, ticker string) (*model.DigestPayload, error) {
	if err := ValidateTicker(ticker); err != nil {
		return nil, err
	}
	log := c.log.With("ticker", ticker)

	raw, err := c.fetcher.Fetch(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	log.Debug("fetched raw articles", "count", len(raw))

	normalized := Normalize(raw)
	unique := Deduplicate(normalized)
	log.Debug("deduplicated articles", "before", len(normalized), "after", len(unique))

	annotated, err := c.annotator.Annotate(ctx, unique, ticker)
	if err != nil {
		return nil, fmt.Errorf("annotate: %w", err)
	}

	digest := BuildDigest(ticker, annotated)
	log.Info("digest built", "count", digest.Count, "overall_sentiment", digest.OverallSentiment)
	return &digest, nil
}
