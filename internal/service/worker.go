package service

import (
	"context"
	"time"

	"github.com/chicsouqsa-collab/Spay-sub002/internal/core/ports"

	"github.com/rs/zerolog"
)

// Worker polls the job queue for due transition jobs and hands them to the
// runner. Claiming uses row locks with a timeout, so several workers can run
// against the same queue without double-firing a job.
type Worker struct {
	queue        ports.JobQueue
	runner       ports.TransitionRunner
	pollInterval time.Duration
	claimTimeout time.Duration
	batchSize    int
	log          zerolog.Logger
}

// NewWorker creates a new Worker.
func NewWorker(
	queue ports.JobQueue,
	runner ports.TransitionRunner,
	pollInterval time.Duration,
	claimTimeout time.Duration,
	batchSize int,
	log zerolog.Logger,
) *Worker {
	if pollInterval <= 0 {
		pollInterval = 15 * time.Second
	}
	if claimTimeout <= 0 {
		claimTimeout = time.Minute
	}
	if batchSize <= 0 {
		batchSize = 10
	}
	return &Worker{
		queue:        queue,
		runner:       runner,
		pollInterval: pollInterval,
		claimTimeout: claimTimeout,
		batchSize:    batchSize,
		log:          log,
	}
}

// Run polls until the context is canceled. It returns ctx.Err() on shutdown.
func (w *Worker) Run(ctx context.Context) error {
	w.log.Info().
		Dur("poll_interval", w.pollInterval).
		Int("batch_size", w.batchSize).
		Msg("transition worker started")

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("transition worker stopped")
			return ctx.Err()
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *Worker) tick(ctx context.Context) {
	jobs, err := w.queue.ClaimDue(ctx, time.Now(), w.batchSize, w.claimTimeout)
	if err != nil {
		w.log.Error().Err(err).Msg("failed to claim due jobs")
		return
	}

	for _, job := range jobs {
		if ctx.Err() != nil {
			return
		}
		if err := w.runner.Run(ctx, job); err != nil {
			w.log.Error().Err(err).
				Str("hook", string(job.Hook)).
				Str("job_id", job.ID.String()).
				Msg("transition job attempt errored")
		}
	}
}
