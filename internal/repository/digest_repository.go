package repository

import (
	"database/sql"
	"encoding/json"
	"strings"

	"newsdigest/internal/model"
)

// historyKey is the form tickers are stored and looked up in, so "aapl" and
// "AAPL" share one history.
func historyKey(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

type DigestRepository struct {
	db *sql.DB
}

func NewDigestRepository(db *sql.DB) *DigestRepository {
	return &DigestRepository{db: db}
}

func (r *DigestRepository) SaveDigest(digest *model.DigestPayload, jobID string) (int64, error) {
	payload, err := json.Marshal(digest)
	if err != nil {
		return 0, err
	}

	var id int64
	err = r.db.QueryRow(`
		INSERT INTO digest_query(ticker, overall_sentiment, article_count, payload, job_id)
		VALUES($1, $2, $3, $4, $5)
		RETURNING id
	`, historyKey(digest.Ticker), string(digest.OverallSentiment), digest.Count, payload, jobID).Scan(&id)
	return id, err
}

func (r *DigestRepository) GetDigests(ticker string, limit, offset int) ([]model.StoredDigest, error) {
	rows, err := r.db.Query(`
		SELECT id, ticker, overall_sentiment, article_count, payload, job_id, created_at
		FROM digest_query
		WHERE ticker = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`, historyKey(ticker), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var digests []model.StoredDigest
	for rows.Next() {
		var d model.StoredDigest
		var sentiment string
		var payload []byte
		err := rows.Scan(&d.ID, &d.Ticker, &sentiment, &d.ArticleCount, &payload, &d.JobID, &d.CreatedAt)
		if err != nil {
			return nil, err
		}
		d.OverallSentiment = model.Sentiment(sentiment)

		if err := json.Unmarshal(payload, &d.Payload); err != nil {
			return nil, err
		}
		digests = append(digests, d)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return digests, nil
}

func (r *DigestRepository) GetDigestTotal(ticker string) (int, error) {
	var total int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM digest_query WHERE ticker = $1
	`, historyKey(ticker)).Scan(&total)
	return total, err
}

func (r *DigestRepository) Ping() error {
	return r.db.Ping()
}
