package news

import (
	"context"
	"fmt"
	"strings"
	"time"

	"newsdigest/internal/model"
)

const (
	SourceFinnHub      = "finnhub"
	SourceAlphaVantage = "alphavantage"
	SourceMassive      = "massive"
)

// NewsClient returns company news for one ticker within [from, to]. Records
// come back as loosely typed maps; field cleanup happens downstream.
type NewsClient interface {
	CompanyNews(ctx context.Context, ticker string, from, to time.Time, limit int) ([]model.RawArticle, error)
	Name() string
}

// NewClient builds the named client. An empty apiKey means no live source is
// configured and yields a nil client.
func NewClient(name, apiKey string) (NewsClient, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case SourceFinnHub, SourceAlphaVantage, SourceMassive:
	default:
		return nil, fmt.Errorf("unsupported news provider %q (supported: finnhub, alphavantage, massive)", name)
	}

	if apiKey == "" {
		return nil, nil
	}

	switch name {
	case SourceAlphaVantage:
		return NewAlphaVantageClient(apiKey), nil
	case SourceMassive:
		return NewMassiveClient(apiKey), nil
	default:
		return NewFinnHubClient(apiKey), nil
	}
}

func responseSnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}

// setIfPresent copies a non-nil pointer value into the record.
func setIfPresent[T any](a model.RawArticle, key string, v *T) {
	if v != nil {
		a[key] = *v
	}
}
