package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"evently/internal/jobs"
	"evently/internal/notifications"
	"evently/internal/queue/redisclient"
)

type fakeQueue struct {
	pending   []jobs.Job
	requeued  []jobs.Job
	dequeueFn func() (jobs.Job, error)
}

func (q *fakeQueue) Enqueue(ctx context.Context, j jobs.Job) error {
	q.requeued = append(q.requeued, j)
	return nil
}

func (q *fakeQueue) Dequeue(ctx context.Context, timeout time.Duration) (jobs.Job, error) {
	if q.dequeueFn != nil {
		return q.dequeueFn()
	}

	if len(q.pending) == 0 {
		return jobs.Job{}, redisclient.ErrEmpty
	}

	j := q.pending[0]
	q.pending = q.pending[1:]

	return j, nil
}

type fakeNotifier struct {
	sent []notifications.SendBookingConfirmationInput
	err  error
}

func (n *fakeNotifier) SendBookingConfirmation(ctx context.Context, in notifications.SendBookingConfirmationInput) error {
	n.sent = append(n.sent, in)
	return n.err
}

func confirmationJob(t *testing.T) jobs.Job {
	t.Helper()

	j, err := jobs.NewBookingConfirmation(jobs.BookingConfirmationPayload{
		BookingID:  "b-1",
		EventID:    "e-1",
		EventTitle: "Go Conf",
		Email:      "a@b.co",
	})

	if err != nil {
		t.Fatalf("build job: %v", err)
	}

	return j
}

func TestProcessOneDeliversConfirmation(t *testing.T) {
	q := &fakeQueue{pending: []jobs.Job{confirmationJob(t)}}
	n := &fakeNotifier{}

	w := New(Config{}, q, n, nil, nil)

	processed, err := w.ProcessOne(context.Background())

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !processed {
		t.Fatalf("expected a job to be processed")
	}

	if len(n.sent) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(n.sent))
	}

	if n.sent[0].Email != "a@b.co" || n.sent[0].EventTitle != "Go Conf" {
		t.Fatalf("notification input mangled: %+v", n.sent[0])
	}

	if len(q.requeued) != 0 {
		t.Fatalf("successful job should not be requeued")
	}
}

func TestProcessOneEmptyQueue(t *testing.T) {
	q := &fakeQueue{}
	w := New(Config{}, q, &fakeNotifier{}, nil, nil)

	processed, err := w.ProcessOne(context.Background())

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if processed {
		t.Fatalf("nothing should be processed on an empty queue")
	}
}

func TestProcessOneDropsAfterMaxAttempts(t *testing.T) {
	j := confirmationJob(t)
	j.Attempts = j.MaxAttempts - 1 // next failure is the last straw

	q := &fakeQueue{pending: []jobs.Job{j}}
	n := &fakeNotifier{err: errors.New("provider down")}

	w := New(Config{}, q, n, nil, nil)

	processed, err := w.ProcessOne(context.Background())

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !processed {
		t.Fatalf("expected the job to be handled")
	}

	if len(q.requeued) != 0 {
		t.Fatalf("exhausted job must be dropped, not requeued")
	}
}

func TestProcessOneSurfacesQueueErrors(t *testing.T) {
	q := &fakeQueue{dequeueFn: func() (jobs.Job, error) {
		return jobs.Job{}, errors.New("redis down")
	}}

	w := New(Config{}, q, &fakeNotifier{}, nil, nil)

	_, err := w.ProcessOne(context.Background())

	if err == nil {
		t.Fatalf("expected dequeue error to surface")
	}
}
