package event

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Slug        string             `bson:"slug" json:"slug"`
	Description string             `bson:"description" json:"description"`
	Overview    string             `bson:"overview" json:"overview"`
	Image       string             `bson:"image" json:"image"`
	Venue       string             `bson:"venue" json:"venue"`
	Location    string             `bson:"location" json:"location"`
	Organizer   string             `bson:"organizer" json:"organizer"`
	Date        string             `bson:"date" json:"date"`
	Time        string             `bson:"time" json:"time"`
	Mode        string             `bson:"mode" json:"mode"`
	Audience    string             `bson:"audience" json:"audience"`
	Agenda      []string           `bson:"agenda" json:"agenda"`
	Tags        []string           `bson:"tags" json:"tags"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

var ErrNotFound = errors.New("event not found")

// unique slug index violated
var ErrDuplicateSlug = errors.New("event slug already exists")

type CreateEventRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Overview    string   `json:"overview" binding:"required"`
	Image       string   `json:"image" binding:"required"`
	Venue       string   `json:"venue" binding:"required"`
	Location    string   `json:"location" binding:"required"`
	Organizer   string   `json:"organizer" binding:"required"`
	Date        string   `json:"date" binding:"required"`
	Time        string   `json:"time" binding:"required"`
	Mode        string   `json:"mode" binding:"required"`
	Audience    string   `json:"audience" binding:"required"`
	Agenda      []string `json:"agenda" binding:"required"`
	Tags        []string `json:"tags" binding:"required"`
}

// a full update payload; the slug is never recomputed after creation.
type UpdateEventRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Overview    string   `json:"overview" binding:"required"`
	Image       string   `json:"image" binding:"required"`
	Venue       string   `json:"venue" binding:"required"`
	Location    string   `json:"location" binding:"required"`
	Organizer   string   `json:"organizer" binding:"required"`
	Date        string   `json:"date" binding:"required"`
	Time        string   `json:"time" binding:"required"`
	Mode        string   `json:"mode" binding:"required"`
	Audience    string   `json:"audience" binding:"required"`
	Agenda      []string `json:"agenda" binding:"required"`
	Tags        []string `json:"tags" binding:"required"`
}

// PublicEvent is the projection served on the public read path.
// Exactly these six fields, nothing internal.
type PublicEvent struct {
	Image    string `json:"image"`
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	Location string `json:"location"`
	Date     string `json:"date"`
	Time     string `json:"time"`
}

func (e Event) Public() PublicEvent {
	return PublicEvent{
		Image:    e.Image,
		Title:    e.Title,
		Slug:     e.Slug,
		Location: e.Location,
		Date:     e.Date,
		Time:     e.Time,
	}
}
