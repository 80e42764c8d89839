package news

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func TestFinnHubCompanyNews(t *testing.T) {
	var gotPath, gotSymbol, gotFrom, gotTo, gotToken string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotSymbol = r.URL.Query().Get("symbol")
		gotFrom = r.URL.Query().Get("from")
		gotTo = r.URL.Query().Get("to")
		gotToken = r.Header.Get("X-Finnhub-Token")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{
				"id":       7,
				"headline": "AAPL beats earnings",
				"summary":  "Record services revenue.",
				"url":      "https://example.com/aapl",
				"source":   "Reuters",
				"datetime": 1700000000,
				"related":  "AAPL",
				"category": "company",
			},
			{
				"headline": "No timestamp here",
			},
			{
				"headline": "Dropped by limit",
			},
		})
	}))
	defer srv.Close()

	client := newFinnHubClient("test-key", srv.URL)
	from := time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	articles, err := client.CompanyNews(context.Background(), "AAPL", from, to, 2)

	assert.Equal(t, nil, err)
	assert.Equal(t, "/company-news", gotPath)
	assert.Equal(t, "AAPL", gotSymbol)
	assert.Equal(t, "2026-02-23", gotFrom)
	assert.Equal(t, "2026-03-02", gotTo)
	assert.Equal(t, "test-key", gotToken)

	assert.Equal(t, 2, len(articles))
	assert.Equal(t, "AAPL beats earnings", articles[0]["headline"])
	assert.Equal(t, int64(1700000000), articles[0]["datetime"])
	assert.Equal(t, "Reuters", articles[0]["source"])

	_, hasDatetime := articles[1]["datetime"]
	assert.Equal(t, false, hasDatetime)
}

func TestFinnHubCompanyNewsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := newFinnHubClient("test-key", srv.URL)

	_, err := client.CompanyNews(context.Background(), "AAPL", time.Now(), time.Now(), 0)

	assert.NotEqual(t, nil, err)
}
