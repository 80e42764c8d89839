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

const massiveBaseURL = "https://api.massive.com"

type MassiveClient struct {
	apiKey string
	client *resty.Client
}

func NewMassiveClient(apiKey string) *MassiveClient {
	return newMassiveClient(apiKey, massiveBaseURL)
}

func newMassiveClient(apiKey, baseURL string) *MassiveClient {
	return &MassiveClient{
		apiKey: apiKey,
		client: resty.New().SetBaseURL(baseURL).SetTimeout(30 * time.Second),
	}
}

func (c *MassiveClient) Name() string {
	return SourceMassive
}

func (c *MassiveClient) CompanyNews(ctx context.Context, ticker string, from, to time.Time, limit int) ([]model.RawArticle, error) {
	params := map[string]string{
		"ticker":            ticker,
		"published_utc.gte": from.UTC().Format(time.RFC3339),
		"published_utc.lte": to.UTC().Format(time.RFC3339),
		"order":             "desc",
		"sort":              "published_utc",
		"apiKey":            c.apiKey,
	}
	if limit > 0 {
		params["limit"] = strconv.Itoa(limit)
	}

	resp, err := c.client.R().SetContext(ctx).SetQueryParams(params).Get("/v2/reference/news")
	if err != nil {
		return nil, fmt.Errorf("massive fetch: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("massive returned status %d body: %s", resp.StatusCode(), responseSnippet(resp.Body()))
	}

	var raw massiveResponse
	if err := json.Unmarshal(resp.Body(), &raw); err != nil {
		return nil, fmt.Errorf("massive decode: %w", err)
	}

	articles := make([]model.RawArticle, 0, len(raw.Results))
	for _, item := range raw.Results {
		a := model.RawArticle{
			"headline": item.Title,
			"source":   item.Publisher.Name,
			"url":      item.ArticleURL,
			"summary":  item.Description,
		}
		if item.PublishedUTC != "" {
			a["datetime"] = item.PublishedUTC
		}
		articles = append(articles, a)
	}

	return articles, nil
}

type massiveResponse struct {
	Results []massiveResult `json:"results"`
}

type massiveResult struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	ArticleURL   string           `json:"article_url"`
	PublishedUTC string           `json:"published_utc"`
	Tickers      []string         `json:"tickers"`
	Publisher    massivePublisher `json:"publisher"`
}

type massivePublisher struct {
	Name string `json:"name"`
}
