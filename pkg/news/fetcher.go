package news

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"newsdigest/internal/model"

	"golang.org/x/time/rate"
)

// FallbackPolicy decides what happens when no live source is configured or
// the source fails.
type FallbackPolicy string

const (
	// FallbackPlaceholder substitutes a small deterministic dataset.
	FallbackPlaceholder FallbackPolicy = "placeholder"
	// FallbackNone reports the failure to the caller.
	FallbackNone FallbackPolicy = "none"
)

const (
	DefaultWindowDays = 7
	DefaultLimit      = 50
)

// Finnhub's free tier allows 60 calls per minute.
const DefaultRatePerMinute = 60

var ErrNoSource = errors.New("no news source configured")

func ParseFallbackPolicy(s string) (FallbackPolicy, error) {
	switch p := FallbackPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return FallbackPlaceholder, nil
	case FallbackPlaceholder, FallbackNone:
		return p, nil
	default:
		return "", fmt.Errorf("unknown fallback policy %q (supported: placeholder, none)", s)
	}
}

// FetchError is returned when the upstream source failed and the policy
// does not allow a substitute.
type FetchError struct {
	Source string
	Ticker string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s news from %s: %v", e.Ticker, e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

type FetcherConfig struct {
	WindowDays int
	Limit      int
	Policy     FallbackPolicy

	// RatePerMinute caps upstream calls; 0 disables the limiter.
	RatePerMinute int
}

// Fetcher pulls recent company news for a ticker from one client and
// applies the fallback policy.
type Fetcher struct {
	client     NewsClient
	windowDays int
	limit      int
	policy     FallbackPolicy
	limiter    *rate.Limiter
	now        func() time.Time
	log        *slog.Logger
}

// NewFetcher accepts a nil client, meaning no live source.
func NewFetcher(client NewsClient, cfg FetcherConfig, log *slog.Logger) *Fetcher {
	if log == nil {
		log = slog.Default()
	}
	policy := cfg.Policy
	if policy == "" {
		policy = FallbackPlaceholder
	}
	windowDays := cfg.WindowDays
	if windowDays < 0 {
		windowDays = 0
	}
	var limiter *rate.Limiter
	if cfg.RatePerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RatePerMinute)), 1)
	}
	return &Fetcher{
		client:     client,
		limiter:    limiter,
		windowDays: windowDays,
		limit:      cfg.Limit,
		policy:     policy,
		now:        time.Now,
		log:        log,
	}
}

func (f *Fetcher) Fetch(ctx context.Context, ticker string) ([]model.RawArticle, error) {
	symbol := strings.ToUpper(strings.TrimSpace(ticker))
	if symbol == "" {
		return []model.RawArticle{}, nil
	}

	if f.client == nil {
		if f.policy != FallbackPlaceholder {
			return nil, ErrNoSource
		}
		f.log.Warn("no news source configured, using placeholder articles", "ticker", symbol)
		return f.placeholder(symbol), nil
	}

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("news: waiting for rate limit: %w", err)
		}
	}

	to := f.now().UTC()
	from := to.AddDate(0, 0, -f.windowDays)

	articles, err := f.client.CompanyNews(ctx, symbol, from, to, f.limit)
	if err != nil {
		if f.policy != FallbackPlaceholder {
			return nil, &FetchError{Source: f.client.Name(), Ticker: symbol, Err: err}
		}
		f.log.Warn("news fetch failed, using placeholder articles", "ticker", symbol, "source", f.client.Name(), "error", err)
		return f.placeholder(symbol), nil
	}

	return clip(articles, f.limit), nil
}

func (f *Fetcher) placeholder(symbol string) []model.RawArticle {
	now := f.now().UTC()
	articles := []model.RawArticle{
		{
			"source":   "dummy",
			"headline": fmt.Sprintf("%s announces product update", symbol),
			"summary":  fmt.Sprintf("%s shared incremental updates to its product roadmap.", symbol),
			"url":      "https://example.com/article/1",
			"datetime": now.Add(-6 * time.Hour).Unix(),
		},
		{
			"source":   "dummy",
			"headline": fmt.Sprintf("Analyst revises outlook on %s", symbol),
			"summary":  "Coverage update with modest changes to near-term revenue expectations.",
			"url":      "https://example.com/article/2",
			"datetime": now.Add(-26 * time.Hour).Unix(),
		},
	}
	return clip(articles, f.limit)
}

func clip(articles []model.RawArticle, limit int) []model.RawArticle {
	if limit > 0 && len(articles) > limit {
		return articles[:limit]
	}
	return articles
}
