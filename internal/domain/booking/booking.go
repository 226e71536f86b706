package booking

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Booking struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EventID   primitive.ObjectID `bson:"eventId" json:"eventId"`
	Email     string             `bson:"email" json:"email"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

var ErrNotFound = errors.New("booking not found")

type CreateBookingRequest struct {
	// populated from the URL, not the body
	EventID string `json:"-"`
	Email   string `json:"email" binding:"required"`
}

type UpdateBookingRequest struct {
	EventID string `json:"eventId" binding:"required"`
	Email   string `json:"email" binding:"required"`
}
