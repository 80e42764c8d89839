package worker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"newsdigest/internal/model"
	"newsdigest/internal/pipeline"

	"github.com/google/uuid"
)

type DigestBuilder interface {
	BuildDigest(ctx context.Context, ticker string) (*model.DigestPayload, error)
}

type DigestSaver interface {
	SaveDigest(digest *model.DigestPayload, jobID string) (int64, error)
}

// Queue.PopJob returns a nil job and nil error when the timeout passes
// without work.
type Queue interface {
	PushJob(ctx context.Context, job model.DigestJob) error
	PopJob(ctx context.Context, timeout time.Duration) (*model.DigestJob, error)
}

const popTimeout = 5 * time.Second

// Worker drains digest jobs from the queue. Each job is attempted once.
type Worker struct {
	queue   Queue
	builder DigestBuilder
	saver   DigestSaver
	log     *slog.Logger
	now     func() time.Time
}

func New(queue Queue, builder DigestBuilder, saver DigestSaver, log *slog.Logger) *Worker {
	if log == nil {
		log = slog.Default()
	}
	return &Worker{queue: queue, builder: builder, saver: saver, log: log, now: time.Now}
}

// Run processes jobs until ctx is canceled or the queue fails.
func (w *Worker) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		job, err := w.queue.PopJob(ctx, popTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if job == nil {
			continue
		}

		w.Handle(ctx, *job)
	}
}

// Handle builds and saves the digest for one job. Failures are logged and
// reported but the job is not requeued.
func (w *Worker) Handle(ctx context.Context, job model.DigestJob) error {
	log := w.log.With("job_id", job.JobID, "ticker", job.Ticker)

	digest, err := w.builder.BuildDigest(ctx, job.Ticker)
	if errors.Is(err, pipeline.ErrInvalidTicker) {
		log.Warn("dropping job with invalid ticker")
		return err
	}
	if err != nil {
		log.Error("error building digest", "error", err)
		return err
	}

	id, err := w.saver.SaveDigest(digest, job.JobID)
	if err != nil {
		log.Error("error saving digest", "error", err)
		return err
	}

	log.Info("digest saved", "digest_id", id, "count", digest.Count, "wait_ms", w.now().Sub(job.RequestedAt).Milliseconds())
	return nil
}

// EnqueueWatchlist queues one job per ticker and reports how many were queued.
func (w *Worker) EnqueueWatchlist(ctx context.Context, tickers []string) int {
	queued := 0
	for _, ticker := range tickers {
		job := model.DigestJob{JobID: uuid.NewString(), Ticker: ticker, RequestedAt: w.now().UTC()}
		if err := w.queue.PushJob(ctx, job); err != nil {
			w.log.Error("error queueing watchlist ticker", "ticker", ticker, "error", err)
			continue
		}
		queued++
	}
	w.log.Info("watchlist queued", "queued", queued, "tickers", len(tickers))
	return queued
}
