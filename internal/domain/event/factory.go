package event

import (
	"regexp"
	"strings"
	"time"

	"evently/internal/domain/validation"
)

var (
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

// NewFromCreateRequest builds a validated Event before anything touches
// the store. Invalid input never reaches a repository.
func NewFromCreateRequest(req CreateEventRequest) (Event, error) {
	now := time.Now().UTC()

	e := Event{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Overview:    strings.TrimSpace(req.Overview),
		Image:       strings.TrimSpace(req.Image),
		Venue:       strings.TrimSpace(req.Venue),
		Location:    strings.TrimSpace(req.Location),
		Organizer:   strings.TrimSpace(req.Organizer),
		Date:        strings.TrimSpace(req.Date),
		Time:        strings.TrimSpace(req.Time),
		Mode:        strings.TrimSpace(req.Mode),
		Audience:    strings.TrimSpace(req.Audience),
		Agenda:      trimAll(req.Agenda),
		Tags:        trimAll(req.Tags),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := e.validate(); err != nil {
		return Event{}, err
	}

	// the slug is a pure function of the title, fixed at creation
	e.Slug = Slugify(e.Title)

	if e.Slug == "" {
		return Event{}, validation.InvalidFormat("title", "title does not produce a usable slug")
	}

	return e, nil
}

// ApplyUpdate revalidates the mutated fields and bumps UpdatedAt. The
// slug stays whatever creation derived.
func (e Event) ApplyUpdate(req UpdateEventRequest) (Event, error) {
	updated := e

	updated.Title = strings.TrimSpace(req.Title)
	updated.Description = strings.TrimSpace(req.Description)
	updated.Overview = strings.TrimSpace(req.Overview)
	updated.Image = strings.TrimSpace(req.Image)
	updated.Venue = strings.TrimSpace(req.Venue)
	updated.Location = strings.TrimSpace(req.Location)
	updated.Organizer = strings.TrimSpace(req.Organizer)
	updated.Date = strings.TrimSpace(req.Date)
	updated.Time = strings.TrimSpace(req.Time)
	updated.Mode = strings.TrimSpace(req.Mode)
	updated.Audience = strings.TrimSpace(req.Audience)
	updated.Agenda = trimAll(req.Agenda)
	updated.Tags = trimAll(req.Tags)
	updated.UpdatedAt = time.Now().UTC()

	if err := updated.validate(); err != nil {
		return Event{}, err
	}

	return updated, nil
}

func (e Event) validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"title", e.Title},
		{"description", e.Description},
		{"overview", e.Overview},
		{"image", e.Image},
		{"venue", e.Venue},
		{"location", e.Location},
		{"organizer", e.Organizer},
		{"date", e.Date},
		{"time", e.Time},
		{"mode", e.Mode},
		{"audience", e.Audience},
	}

	for _, f := range required {
		if f.value == "" {
			return validation.Required(f.name)
		}
	}

	if !datePattern.MatchString(e.Date) {
		return validation.InvalidFormat("date", "date must be in YYYY-MM-DD format")
	}

	// the pattern admits impossible dates like 2025-02-31; parse to be sure
	if _, err := time.Parse("2006-01-02", e.Date); err != nil {
		return validation.InvalidFormat("date", "date must be a valid calendar date")
	}

	if !timePattern.MatchString(e.Time) {
		return validation.InvalidFormat("time", "time must be in 24-hour HH:MM format")
	}

	if len(e.Agenda) == 0 {
		return validation.EmptyCollection("agenda")
	}

	if len(e.Tags) == 0 {
		return validation.EmptyCollection("tags")
	}

	return nil
}

// trimAll trims entries and drops any left empty.
func trimAll(in []string) []string {
	out := make([]string, 0, len(in))

	for _, s := range in {
		s = strings.TrimSpace(s)

		if s != "" {
			out = append(out, s)
		}
	}

	return out
}
