package config

import (
	"fmt"
	"strings"

	"newsdigest/internal/pipeline"
	"newsdigest/pkg/llm"
	"newsdigest/pkg/news"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPAddr    string
	FrontendURL string
	LogLevel    string

	News    NewsConfig
	Summary SummaryConfig

	DatabaseURL    string
	RedisURL       string
	Watchlist      []string
	DigestSchedule string
}

type NewsConfig struct {
	Provider   string
	APIKey     string
	WindowDays int
	Limit      int
	Fallback   news.FallbackPolicy
	RatePerMin int
}

type SummaryConfig struct {
	Provider    string
	Model       string
	APIKey      string
	PromptsPath string
	PromptIndex int
}

var defaults = map[string]any{
	"HTTP_ADDR":         ":8080",
	"LOG_LEVEL":         "info",
	"NEWS_PROVIDER":     news.SourceFinnHub,
	"NEWS_WINDOW_DAYS":  news.DefaultWindowDays,
	"NEWS_LIMIT":        news.DefaultLimit,
	"NEWS_RATE_PER_MIN": news.DefaultRatePerMinute,
	"NEWS_FALLBACK":     string(news.FallbackPlaceholder),
	"SUMMARY_PROVIDER":  llm.ProviderStub,
	"PROMPTS_PATH":      "data/prompts.yaml",
	"PROMPT_INDEX":      0,
	"DIGEST_SCHEDULE":   "*/30 * * * *",
}

// Load reads .env (if present), the optional CONFIG_FILE and the process
// environment, in increasing order of precedence.
func Load() (*Config, error) {
	godotenv.Load()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if path := v.GetString("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	fallback, err := news.ParseFallbackPolicy(v.GetString("NEWS_FALLBACK"))
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	newsProvider := strings.ToLower(v.GetString("NEWS_PROVIDER"))
	summaryProvider := strings.ToLower(v.GetString("SUMMARY_PROVIDER"))

	cfg := &Config{
		HTTPAddr:    v.GetString("HTTP_ADDR"),
		FrontendURL: v.GetString("FRONTEND_URL"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		News: NewsConfig{
			Provider:   newsProvider,
			APIKey:     v.GetString(newsKeyVar(newsProvider)),
			WindowDays: v.GetInt("NEWS_WINDOW_DAYS"),
			Limit:      v.GetInt("NEWS_LIMIT"),
			Fallback:   fallback,
			RatePerMin: v.GetInt("NEWS_RATE_PER_MIN"),
		},
		Summary: SummaryConfig{
			Provider:    summaryProvider,
			Model:       v.GetString("SUMMARY_MODEL"),
			APIKey:      v.GetString(summaryKeyVar(summaryProvider)),
			PromptsPath: v.GetString("PROMPTS_PATH"),
			PromptIndex: v.GetInt("PROMPT_INDEX"),
		},
		DatabaseURL:    v.GetString("DATABASE_URL"),
		RedisURL:       v.GetString("REDIS_URL"),
		Watchlist:      splitList(v.GetString("WATCHLIST")),
		DigestSchedule: v.GetString("DIGEST_SCHEDULE"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.News.WindowDays < 0 {
		return fmt.Errorf("config: NEWS_WINDOW_DAYS must not be negative")
	}
	if c.News.Limit < 0 {
		return fmt.Errorf("config: NEWS_LIMIT must not be negative")
	}
	if c.News.RatePerMin < 0 {
		return fmt.Errorf("config: NEWS_RATE_PER_MIN must not be negative")
	}
	if c.Summary.PromptIndex < 0 {
		return fmt.Errorf("config: PROMPT_INDEX must not be negative")
	}
	for _, t := range c.Watchlist {
		if err := pipeline.ValidateTicker(t); err != nil {
			return fmt.Errorf("config: WATCHLIST: %w", err)
		}
	}
	return nil
}

// AnnotatorConfig is the slice of configuration the annotation stage needs.
func (c *Config) AnnotatorConfig() pipeline.AnnotatorConfig {
	return pipeline.AnnotatorConfig{
		Provider: llm.ProviderConfig{
			Name:   c.Summary.Provider,
			Model:  c.Summary.Model,
			APIKey: c.Summary.APIKey,
		},
		PromptsPath: c.Summary.PromptsPath,
		PromptIndex: c.Summary.PromptIndex,
	}
}

func (c *Config) FetcherConfig() news.FetcherConfig {
	return news.FetcherConfig{
		WindowDays:    c.News.WindowDays,
		Limit:         c.News.Limit,
		Policy:        c.News.Fallback,
		RatePerMinute: c.News.RatePerMin,
	}
}

func newsKeyVar(provider string) string {
	switch provider {
	case news.SourceAlphaVantage:
		return "ALPHA_VANTAGE_API_KEY"
	case news.SourceMassive:
		return "MASSIVE_API_KEY"
	default:
		return "FINNHUB_API_KEY"
	}
}

func summaryKeyVar(provider string) string {
	switch provider {
	case llm.ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	default:
		return "OPENAI_API_KEY"
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.ToUpper(strings.TrimSpace(part)); p != "" {
			out = append(out, p)
		}
	}
	return out
}
