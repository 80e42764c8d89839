package handler

type JobResponse struct {
	JobID  string `json:"job_id"`
	Ticker string `json:"ticker"`
}

type StoredDigestResponse struct {
	ID               int64    `json:"id"`
	Ticker           string   `json:"ticker"`
	OverallSentiment string   `json:"overall_sentiment"`
	ArticleCount     int      `json:"article_count"`
	Bullets          []Bullet `json:"bullets"`
	JobID            string   `json:"job_id,omitempty"`
	CreatedAt        string   `json:"created_at"`
}

type Bullet struct {
	Headline  string `json:"headline"`
	Summary   string `json:"summary"`
	Sentiment string `json:"sentiment"`
	Source    string `json:"source"`
	URL       string `json:"url"`
}

type DigestHistoryResponse struct {
	Digests []StoredDigestResponse `json:"digests"`
	Total   int                    `json:"total"`
	Limit   int                    `json:"limit"`
	Offset  int                    `json:"offset"`
}
