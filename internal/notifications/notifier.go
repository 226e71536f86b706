package notifications

import "context"

type SendBookingConfirmationInput struct {
	Email      string
	EventID    string
	EventTitle string
	BookingID  string
}

type Notifier interface {
	SendBookingConfirmation(ctx context.Context, input SendBookingConfirmationInput) error
}
