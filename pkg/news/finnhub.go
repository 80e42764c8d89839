package news

import (
	"context"
	"fmt"
	"time"

	"newsdigest/internal/model"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"
)

const finnhubDateLayout = "2006-01-02"

type FinnHubClient struct {
	client *finnhub.DefaultApiService
}

func NewFinnHubClient(apiKey string) *FinnHubClient {
	return newFinnHubClient(apiKey, "")
}

func newFinnHubClient(apiKey, baseURL string) *FinnHubClient {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	cfg.UserAgent = "newsdigest/1.0"
	if baseURL != "" {
		cfg.Servers = finnhub.ServerConfigurations{{URL: baseURL}}
	}
	client := finnhub.NewAPIClient(cfg).DefaultApi
	return &FinnHubClient{client: client}
}

// CompanyNews returns records whose datetime is the Unix epoch number the API
// sends.
func (c *FinnHubClient) CompanyNews(ctx context.Context, ticker string, from, to time.Time, limit int) ([]model.RawArticle, error) {
	res, _, err := c.client.CompanyNews(ctx).
		Symbol(ticker).
		From(from.Format(finnhubDateLayout)).
		To(to.Format(finnhubDateLayout)).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("finnhub fetch: %w", err)
	}

	articles := make([]model.RawArticle, 0, len(res))
	for _, news := range res {
		a := model.RawArticle{}
		setIfPresent(a, "headline", news.Headline)
		setIfPresent(a, "source", news.Source)
		setIfPresent(a, "datetime", news.Datetime)
		setIfPresent(a, "url", news.Url)
		setIfPresent(a, "summary", news.Summary)
		setIfPresent(a, "image", news.Image)
		setIfPresent(a, "related", news.Related)
		setIfPresent(a, "category", news.Category)
		articles = append(articles, a)

		if limit > 0 && len(articles) == limit {
			break
		}
	}

	return articles, nil
}

func (c *FinnHubClient) Name() string {
	return SourceFinnHub
}
