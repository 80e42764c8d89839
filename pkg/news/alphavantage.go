package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"newsdigest/internal/model"

	"github.com/go-resty/resty/v2"
)

const (
	alphaVantageBaseURL    = "https://www.alphavantage.co"
	alphaVantageTimeLayout = "20060102T150405"
)

type AlphaVantageClient struct {
	apiKey string
	client *resty.Client
}

func NewAlphaVantageClient(apiKey string) *AlphaVantageClient {
	return newAlphaVantageClient(apiKey, alphaVantageBaseURL)
}

func newAlphaVantageClient(apiKey, baseURL string) *AlphaVantageClient {
	return &AlphaVantageClient{
		apiKey: apiKey,
		client: resty.New().SetBaseURL(baseURL).SetTimeout(30 * time.Second),
	}
}

func (c *AlphaVantageClient) Name() string {
	return SourceAlphaVantage
}

func (c *AlphaVantageClient) CompanyNews(ctx context.Context, ticker string, from, to time.Time, limit int) ([]model.RawArticle, error) {
	params := map[string]string{
		"function":  "NEWS_SENTIMENT",
		"tickers":   ticker,
		"time_from": from.UTC().Format("20060102T1504"),
		"time_to":   to.UTC().Format("20060102T1504"),
		"sort":      "LATEST",
		"apikey":    c.apiKey,
	}
	if limit > 0 {
		params["limit"] = strconv.Itoa(limit)
	}

	resp, err := c.client.R().SetContext(ctx).SetQueryParams(params).Get("/query")
	if err != nil {
		return nil, fmt.Errorf("alphavantage fetch: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("alphavantage returned status %d body: %s", resp.StatusCode(), responseSnippet(resp.Body()))
	}

	var raw avResponse
	if err := json.Unmarshal(resp.Body(), &raw); err != nil {
		return nil, fmt.Errorf("alphavantage decode: %w", err)
	}
	if raw.Information != "" && len(raw.Feed) == 0 {
		return nil, fmt.Errorf("alphavantage: %s", raw.Information)
	}

	articles := make([]model.RawArticle, 0, len(raw.Feed))
	for _, item := range raw.Feed {
		a := model.RawArticle{
			"headline": item.Title,
			"source":   item.Source,
			"url":      item.URL,
			"summary":  item.Summary,
		}
		// AlphaVantage uses a compact layout; hand on RFC 3339 when it parses.
		if publishedAt, err := time.Parse(alphaVantageTimeLayout, item.TimePublished); err == nil {
			a["datetime"] = publishedAt.UTC().Format(time.RFC3339)
		} else if item.TimePublished != "" {
			a["datetime"] = item.TimePublished
		}
		articles = append(articles, a)
	}

	return articles, nil
}

type avResponse struct {
	Feed        []avFeedItem `json:"feed"`
	Information string       `json:"Information"`
}

type avFeedItem struct {
	Title         string `json:"title"`
	Summary       string `json:"summary"`
	URL           string `json:"url"`
	Source        string `json:"source"`
	TimePublished string `json:"time_published"`
}
