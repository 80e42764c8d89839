package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"newsdigest/internal/model"
	"newsdigest/internal/pipeline"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DigestBuilder interface {
	BuildDigest(ctx context.Context, ticker string) (*model.DigestPayload, error)
}

type DigestStore interface {
	SaveDigest(digest *model.DigestPayload, jobID string) (int64, error)
	GetDigests(ticker string, limit, offset int) ([]model.StoredDigest, error)
	GetDigestTotal(ticker string) (int, error)
	Ping() error
}

type JobQueue interface {
	PushJob(ctx context.Context, job model.DigestJob) error
	Ping(ctx context.Context) error
	Length(ctx context.Context) (int64, error)
}

// DigestHandler serves digests. store and queue may be nil when history or
// background jobs are not configured.
type DigestHandler struct {
	builder DigestBuilder
	store   DigestStore
	queue   JobQueue
}

func NewDigestHandler(builder DigestBuilder, store DigestStore, queue JobQueue) *DigestHandler {
	return &DigestHandler{builder: builder, store: store, queue: queue}
}

func (h *DigestHandler) GetDigest(c *gin.Context) {
	ticker := c.Query("ticker")

	digest, err := h.builder.BuildDigest(c.Request.Context(), ticker)
	if errors.Is(err, pipeline.ErrInvalidTicker) {
		slog.Warn("invalid ticker", "ticker", ticker)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ticker"})
		return
	}
	if err != nil {
		slog.Error("error building digest", "ticker", ticker, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if h.store != nil {
		if _, err := h.store.SaveDigest(digest, ""); err != nil {
			slog.Error("error recording digest", "ticker", ticker, "error", err)
		}
	}

	c.JSON(http.StatusOK, digest)
}

func (h *DigestHandler) CreateDigestJob(c *gin.Context) {
	if h.queue == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Job queue not configured"})
		return
	}

	ticker := c.Query("ticker")
	if err := pipeline.ValidateTicker(ticker); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ticker"})
		return
	}

	job := model.DigestJob{
		JobID:       uuid.NewString(),
		Ticker:      strings.ToUpper(ticker),
		RequestedAt: time.Now().UTC(),
	}
	if err := h.queue.PushJob(c.Request.Context(), job); err != nil {
		slog.Error("error pushing digest job", "ticker", ticker, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Queue error"})
		return
	}

	c.JSON(http.StatusAccepted, JobResponse{JobID: job.JobID, Ticker: job.Ticker})
}

func (h *DigestHandler) GetDigestHistory(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Digest history not configured"})
		return
	}

	ticker := c.Query("ticker")
	if err := pipeline.ValidateTicker(ticker); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ticker"})
		return
	}

	ticker = strings.ToUpper(ticker)
	pg := parsePage(c)

	digests, err := h.store.GetDigests(ticker, pg.Limit, pg.Offset)
	if err != nil {
		slog.Error("error fetching digest history", "ticker", ticker, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	total, err := h.store.GetDigestTotal(ticker)
	if err != nil {
		slog.Error("error fetching digest total", "ticker", ticker, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	res := DigestHistoryResponse{
		Digests: make([]StoredDigestResponse, 0, len(digests)),
		Total:   total,
		Limit:   pg.Limit,
		Offset:  pg.Offset,
	}
	for _, d := range digests {
		res.Digests = append(res.Digests, toStoredDigestResponse(d))
	}

	c.JSON(http.StatusOK, res)
}

func (h *DigestHandler) GetHealth(c *gin.Context) {
	status := http.StatusOK
	body := gin.H{"status": "healthy", "database": "disabled", "queue": "disabled"}

	if h.store != nil {
		body["database"] = "connected"
		if err := h.store.Ping(); err != nil {
			status = http.StatusServiceUnavailable
			body["database"] = "disconnected"
		}
	}
	if h.queue != nil {
		body["queue"] = "connected"
		if err := h.queue.Ping(c.Request.Context()); err != nil {
			status = http.StatusServiceUnavailable
			body["queue"] = "disconnected"
		} else if depth, err := h.queue.Length(c.Request.Context()); err == nil {
			body["queue_depth"] = depth
		}
	}
	if status != http.StatusOK {
		body["status"] = "unhealthy"
	}

	c.JSON(status, body)
}

func toStoredDigestResponse(d model.StoredDigest) StoredDigestResponse {
	bullets := make([]Bullet, 0, len(d.Payload.Bullets))
	for _, b := range d.Payload.Bullets {
		bullets = append(bullets, Bullet{
			Headline:  b.Headline,
			Summary:   b.Summary,
			Sentiment: string(b.Sentiment),
			Source:    b.Source,
			URL:       b.URL,
		})
	}

	return StoredDigestResponse{
		ID:               d.ID,
		Ticker:           d.Ticker,
		OverallSentiment: string(d.OverallSentiment),
		ArticleCount:     d.ArticleCount,
		Bullets:          bullets,
		JobID:            d.JobID,
		CreatedAt:        d.CreatedAt.Format(time.RFC3339),
	}
}
