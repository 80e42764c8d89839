package app

import (
	"fmt"
	"log/slog"

	"newsdigest/internal/config"
	"newsdigest/internal/pipeline"
	"newsdigest/pkg/news"
)

// NewCoordinator wires the news source, annotator and pipeline described by
// cfg. Every binary builds its coordinator here.
func NewCoordinator(cfg *config.Config, log *slog.Logger) (*pipeline.Coordinator, error) {
	client, err := news.NewClient(cfg.News.Provider, cfg.News.APIKey)
	if err != nil {
		return nil, fmt.Errorf("news client: %w", err)
	}
	if client == nil {
		log.Warn("no news API key configured", "provider", cfg.News.Provider, "fallback", cfg.News.Fallback)
	}

	fetcher := news.NewFetcher(client, cfg.FetcherConfig(), log)

	annotator, err := pipeline.NewAnnotator(cfg.AnnotatorConfig(), log)
	if err != nil {
		return nil, fmt.Errorf("annotator: %w", err)
	}

	log.Info("pipeline ready", "news_provider", cfg.News.Provider, "summary_provider", annotator.ProviderName())
	return pipeline.NewCoordinator(fetcher, annotator, log), nil
}
