package booking

import (
	"regexp"
	"strings"
	"time"

	"evently/internal/domain/validation"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// local part, @, domain with a dot: good enough to catch typos without
// pretending to implement RFC 5322
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// NewFromCreateRequest validates and normalizes a booking. The caller
// is responsible for the referential check against the events store
// before persisting.
func NewFromCreateRequest(req CreateBookingRequest) (Booking, error) {
	email, err := normalizeEmail(req.Email)

	if err != nil {
		return Booking{}, err
	}

	eventID, err := parseEventID(req.EventID)

	if err != nil {
		return Booking{}, err
	}

	now := time.Now().UTC()

	return Booking{
		EventID:   eventID,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// ApplyUpdate returns the updated booking plus whether the event
// reference changed; callers re-run the referential check only then.
func (b Booking) ApplyUpdate(req UpdateBookingRequest) (Booking, bool, error) {
	email, err := normalizeEmail(req.Email)

	if err != nil {
		return Booking{}, false, err
	}

	eventID, err := parseEventID(req.EventID)

	if err != nil {
		return Booking{}, false, err
	}

	updated := b
	updated.Email = email
	updated.EventID = eventID
	updated.UpdatedAt = time.Now().UTC()

	return updated, eventID != b.EventID, nil
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))

	if email == "" {
		return "", validation.Required("email")
	}

	if !emailPattern.MatchString(email) {
		return "", validation.InvalidFormat("email", "email must look like name@domain.tld")
	}

	return email, nil
}

func parseEventID(raw string) (primitive.ObjectID, error) {
	raw = strings.TrimSpace(raw)

	if raw == "" {
		return primitive.NilObjectID, validation.Required("eventId")
	}

	id, err := primitive.ObjectIDFromHex(raw)

	if err != nil {
		return primitive.NilObjectID, validation.InvalidReference("eventId", "eventId is not a valid event identifier")
	}

	return id, nil
}
