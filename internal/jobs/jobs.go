package jobs

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Job is the envelope pushed onto the notification queue.
type Job struct {
	ID          string          `json:"id"`
	Type        JobType         `json:"type"`
	Payload     json.RawMessage `json:"payload"`
	Attempts    int             `json:"attempts"`
	MaxAttempts int             `json:"maxAttempts"`
	EnqueuedAt  time.Time       `json:"enqueuedAt"`
}

func New(t JobType, payload any) (Job, error) {
	raw, err := EncodePayload(t, payload)

	if err != nil {
		return Job{}, err
	}

	return Job{
		ID:          uuid.NewString(),
		Type:        t,
		Payload:     raw,
		Attempts:    0,
		MaxAttempts: 5,
		EnqueuedAt:  time.Now().UTC(),
	}, nil
}

func NewBookingConfirmation(p BookingConfirmationPayload) (Job, error) {
	return New(JobBookingConfirmation, p)
}

// BookingConfirmationPayload carries what the notifier needs; the
// worker never goes back to the database.
type BookingConfirmationPayload struct {
	BookingID  string `json:"bookingId"`
	EventID    string `json:"eventId"`
	EventTitle string `json:"eventTitle"`
	Email      string `json:"email"`
}
