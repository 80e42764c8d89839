package model

import "time"

type Bullet struct {
	Headline  string    `json:"headline"`
	Summary   string    `json:"summary"`
	Sentiment Sentiment `json:"sentiment"`
	Source    string    `json:"source"`
	URL       string    `json:"url"`
}

type DigestPayload struct {
	Ticker           string    `json:"ticker"`
	OverallSentiment Sentiment `json:"overall_sentiment"`
	Bullets          []Bullet  `json:"bullets"`
	Count            int       `json:"count"`
}

// StoredDigest is a digest recorded in the history table.
type StoredDigest struct {
	ID               int64
	Ticker           string
	OverallSentiment Sentiment
	ArticleCount     int
	Payload          DigestPayload
	JobID            string
	CreatedAt        time.Time
}

// DigestJob is the message queued for the worker.
type DigestJob struct {
	JobID       string    `json:"job_id"`
	Ticker      string    `json:"ticker"`
	RequestedAt time.Time `json:"requested_at"`
}
