package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"
)

func newJSONServer(t *testing.T, payload map[string]interface{}, gotBody *string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		*gotBody = string(body)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(payload)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenAIProviderSummarize(t *testing.T) {
	var body string
	srv := newJSONServer(t, map[string]interface{}{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4o-mini",
		"choices": []map[string]interface{}{
			{
				"index":         0,
				"finish_reason": "stop",
				"message": map[string]interface{}{
					"role":    "assistant",
					"content": "```\nApple topped estimates.\n```",
				},
			},
		},
	}, &body)

	p := NewOpenAIProvider("test-key", "", srv.URL)
	res, err := p.Summarize(context.Background(), "Summarize: {context}", "AAPL beats earnings")

	assert.Equal(t, nil, err)
	assert.Equal(t, "Apple topped estimates.", res.Text)
	assert.Equal(t, true, strings.Contains(body, "Summarize: AAPL beats earnings"))
	assert.Equal(t, true, strings.Contains(body, defaultOpenAIModel))
}

func TestOpenAIProviderNoChoices(t *testing.T) {
	var body string
	srv := newJSONServer(t, map[string]interface{}{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4o-mini",
		"choices": []map[string]interface{}{},
	}, &body)

	p := NewOpenAIProvider("test-key", "gpt-4.1-mini", srv.URL)
	_, err := p.Summarize(context.Background(), "{context}", "x")

	assert.NotEqual(t, nil, err)
}

func TestAnthropicProviderSummarize(t *testing.T) {
	var body string
	srv := newJSONServer(t, map[string]interface{}{
		"id":          "msg_1",
		"type":        "message",
		"role":        "assistant",
		"model":       "claude-haiku-4-5",
		"stop_reason": "end_turn",
		"content": []map[string]interface{}{
			{"type": "text", "text": "Apple topped estimates."},
		},
		"usage": map[string]interface{}{"input_tokens": 10, "output_tokens": 5},
	}, &body)

	p := NewAnthropicProvider("test-key", "", srv.URL)
	res, err := p.Summarize(context.Background(), "Summarize:", "AAPL beats earnings")

	assert.Equal(t, nil, err)
	assert.Equal(t, "Apple topped estimates.", res.Text)
	assert.Equal(t, true, strings.Contains(body, defaultAnthropicModel))
}

func TestRemoteProviderServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewOpenAIProvider("test-key", "", srv.URL).Summarize(context.Background(), "{context}", "x")
	assert.NotEqual(t, nil, err)

	_, err = NewAnthropicProvider("test-key", "", srv.URL).Summarize(context.Background(), "{context}", "x")
	assert.NotEqual(t, nil, err)
}
