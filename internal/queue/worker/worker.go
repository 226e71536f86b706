package worker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"evently/internal/jobs"
	"evently/internal/notifications"
	"evently/internal/observability"
	"evently/internal/queue/redisclient"
)

type Queue interface {
	Enqueue(ctx context.Context, j jobs.Job) error
	Dequeue(ctx context.Context, timeout time.Duration) (jobs.Job, error)
}

type Config struct {
	PopTimeout time.Duration
}

type Worker struct {
	cfg      Config
	queue    Queue
	notifier notifications.Notifier
	log      *slog.Logger
	metrics  *observability.Prom
}

func New(cfg Config, queue Queue, notifier notifications.Notifier, log *slog.Logger, metrics *observability.Prom) *Worker {
	if cfg.PopTimeout <= 0 {
		cfg.PopTimeout = 2 * time.Second
	}

	if log == nil {
		log = slog.Default()
	}

	return &Worker{
		cfg:      cfg,
		queue:    queue,
		notifier: notifier,
		log:      log,
		metrics:  metrics,
	}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Info("worker received shutdown signal")
			return nil
		default:
		}

		processed, err := w.ProcessOne(ctx)

		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}

			w.log.Error("dequeue failed", "err", err)

			// avoid a hot loop when redis is down
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(time.Second):
			}

			continue
		}

		_ = processed
	}
}

// ProcessOne pops and executes a single job. The bool reports whether a
// job was handled at all.
func (w *Worker) ProcessOne(ctx context.Context) (bool, error) {
	j, err := w.queue.Dequeue(ctx, w.cfg.PopTimeout)

	if err != nil {
		if errors.Is(err, redisclient.ErrEmpty) {
			return false, nil
		}

		return false, err
	}

	start := time.Now()
	err = w.execute(ctx, j)

	if err != nil {
		w.handleFailure(ctx, j, err)
		w.observe(j, "retry", time.Since(start))
		return true, nil
	}

	w.observe(j, "done", time.Since(start))

	return true, nil
}

func (w *Worker) execute(ctx context.Context, j jobs.Job) error {
	payload, err := jobs.DecodePayload(j)

	if err != nil {
		return err
	}

	switch p := payload.(type) {
	case jobs.BookingConfirmationPayload:
		return w.notifier.SendBookingConfirmation(ctx, notifications.SendBookingConfirmationInput{
			Email:      p.Email,
			EventID:    p.EventID,
			EventTitle: p.EventTitle,
			BookingID:  p.BookingID,
		})
	default:
		return jobs.ErrInvalidJobType
	}
}

func (w *Worker) handleFailure(ctx context.Context, j jobs.Job, cause error) {
	j.Attempts++

	if j.Attempts >= j.MaxAttempts {
		w.log.Error("job dropped after max attempts",
			"job", j.ID, "type", j.Type, "attempts", j.Attempts, "err", cause)
		w.observe(j, "failed", 0)
		return
	}

	w.log.Warn("job failed, requeueing",
		"job", j.ID, "type", j.Type, "attempt", j.Attempts, "err", cause)

	select {
	case <-ctx.Done():
		return
	case <-time.After(ExponentialBackoff(j.Attempts - 1)):
	}

	if err := w.queue.Enqueue(ctx, j); err != nil {
		w.log.Error("requeue failed, job lost", "job", j.ID, "err", err)
	}
}

func (w *Worker) observe(j jobs.Job, result string, d time.Duration) {
	if w.metrics == nil {
		return
	}

	w.metrics.JobResults.WithLabelValues(string(j.Type), result).Inc()

	if d > 0 {
		w.metrics.JobDuration.WithLabelValues(string(j.Type), result).Observe(d.Seconds())
	}
}
