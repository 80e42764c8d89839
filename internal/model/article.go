package model

// RawArticle is whatever a news source handed back. Keys that matter are
// headline, source, datetime, url and summary; any of them may be missing,
// nil or of an unexpected type.
type RawArticle map[string]any

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// NormalizedArticle has every text field trimmed and never nil. Datetime is
// an RFC 3339 string or nil.
type NormalizedArticle struct {
	Headline string  `json:"headline"`
	Source   string  `json:"source"`
	Datetime *string `json:"datetime"`
	URL      string  `json:"url"`
	Summary  string  `json:"summary"`
}

type AnnotatedArticle struct {
	NormalizedArticle
	Summary5  string    `json:"summary5"`
	Sentiment Sentiment `json:"sentiment"`
}
