package event

import (
	"errors"
	"testing"

	"evently/internal/domain/validation"
)

func validCreateRequest() CreateEventRequest {
	return CreateEventRequest{
		Title:       "Event: 2025 @ #Tech!",
		Description: "A conference about Go",
		Overview:    "Two days of talks",
		Image:       "https://cdn.example.com/tech.png",
		Venue:       "Convention Centre",
		Location:    "Toronto",
		Organizer:   "Gophers TO",
		Date:        "2025-11-02",
		Time:        "09:30",
		Mode:        "in-person",
		Audience:    "developers",
		Agenda:      []string{"Opening keynote", "Workshops"},
		Tags:        []string{"go", "backend"},
	}
}

func wantValidationCode(t *testing.T, err error, code validation.Code, field string) {
	t.Helper()

	var verr *validation.Error

	if !errors.As(err, &verr) {
		t.Fatalf("got %v, want *validation.Error", err)
	}

	if verr.Code != code {
		t.Fatalf("got code %s, want %s", verr.Code, code)
	}

	if field != "" && verr.Field != field {
		t.Fatalf("got field %s, want %s", verr.Field, field)
	}
}

func TestNewFromCreateRequest(t *testing.T) {
	e, err := NewFromCreateRequest(validCreateRequest())

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if e.Slug != "event-2025-tech" {
		t.Fatalf("got slug %q, want %q", e.Slug, "event-2025-tech")
	}

	if e.CreatedAt.IsZero() || e.UpdatedAt.IsZero() {
		t.Fatalf("timestamps not set")
	}

	if !e.CreatedAt.Equal(e.UpdatedAt) {
		t.Fatalf("createdAt and updatedAt should match on create")
	}
}

func TestNewFromCreateRequestRequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateEventRequest)
		field  string
	}{
		{"missing_title", func(r *CreateEventRequest) { r.Title = "   " }, "title"},
		{"missing_description", func(r *CreateEventRequest) { r.Description = "" }, "description"},
		{"missing_overview", func(r *CreateEventRequest) { r.Overview = "" }, "overview"},
		{"missing_image", func(r *CreateEventRequest) { r.Image = " " }, "image"},
		{"missing_venue", func(r *CreateEventRequest) { r.Venue = "" }, "venue"},
		{"missing_location", func(r *CreateEventRequest) { r.Location = "" }, "location"},
		{"missing_organizer", func(r *CreateEventRequest) { r.Organizer = "" }, "organizer"},
		{"missing_mode", func(r *CreateEventRequest) { r.Mode = "" }, "mode"},
		{"missing_audience", func(r *CreateEventRequest) { r.Audience = "" }, "audience"},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(&req)

			_, err := NewFromCreateRequest(req)

			wantValidationCode(t, err, validation.CodeRequiredFieldMissing, tt.field)
		})
	}
}

func TestNewFromCreateRequestDateValidation(t *testing.T) {
	tests := []struct {
		name string
		date string
		ok   bool
	}{
		{"valid", "2025-11-02", true},
		{"leap_day", "2024-02-29", true},
		{"bad_separator", "2025/11/02", false},
		{"short_year", "25-11-02", false},
		{"impossible_date", "2025-02-31", false},
		{"month_out_of_range", "2025-13-01", false},
		{"not_a_date", "tomorrow", false},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			req.Date = tt.date

			_, err := NewFromCreateRequest(req)

			if tt.ok {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			wantValidationCode(t, err, validation.CodeInvalidFormat, "date")
		})
	}
}

func TestNewFromCreateRequestTimeValidation(t *testing.T) {
	tests := []struct {
		name string
		time string
		ok   bool
	}{
		{"midnight", "00:00", true},
		{"last_minute", "23:59", true},
		{"morning", "09:30", true},
		{"hour_too_big", "25:00", false},
		{"minute_unpadded", "14:3", false},
		{"minute_too_big", "14:60", false},
		{"twelve_hour", "9:30 AM", false},
		{"empty_after_trim", "   ", false},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			req.Time = tt.time

			_, err := NewFromCreateRequest(req)

			if tt.ok {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var verr *validation.Error

			if !errors.As(err, &verr) {
				t.Fatalf("got %v, want *validation.Error", err)
			}

			if verr.Code != validation.CodeInvalidFormat && verr.Code != validation.CodeRequiredFieldMissing {
				t.Fatalf("got code %s, want INVALID_FORMAT or REQUIRED_FIELD_MISSING", verr.Code)
			}
		})
	}
}

func TestNewFromCreateRequestCollections(t *testing.T) {
	req := validCreateRequest()
	req.Agenda = nil

	_, err := NewFromCreateRequest(req)
	wantValidationCode(t, err, validation.CodeEmptyCollection, "agenda")

	req = validCreateRequest()
	req.Tags = []string{"  ", ""}

	// blank entries are dropped, leaving an empty set
	_, err = NewFromCreateRequest(req)
	wantValidationCode(t, err, validation.CodeEmptyCollection, "tags")
}

func TestApplyUpdateKeepsSlugAndCreatedAt(t *testing.T) {
	e, err := NewFromCreateRequest(validCreateRequest())

	if err != nil {
		t.Fatalf("create: %v", err)
	}

	update := UpdateEventRequest{
		Title:       "Renamed Conference",
		Description: e.Description,
		Overview:    e.Overview,
		Image:       e.Image,
		Venue:       e.Venue,
		Location:    "Montreal",
		Organizer:   e.Organizer,
		Date:        "2025-12-01",
		Time:        "10:00",
		Mode:        e.Mode,
		Audience:    e.Audience,
		Agenda:      e.Agenda,
		Tags:        e.Tags,
	}

	updated, err := e.ApplyUpdate(update)

	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Slug != e.Slug {
		t.Fatalf("slug changed on update: %q -> %q", e.Slug, updated.Slug)
	}

	if !updated.CreatedAt.Equal(e.CreatedAt) {
		t.Fatalf("createdAt changed on update")
	}

	if !updated.UpdatedAt.After(e.UpdatedAt) && !updated.UpdatedAt.Equal(e.UpdatedAt) {
		t.Fatalf("updatedAt not refreshed")
	}

	if updated.Location != "Montreal" {
		t.Fatalf("update not applied")
	}
}

func TestApplyUpdateRejectsInvalidFields(t *testing.T) {
	e, err := NewFromCreateRequest(validCreateRequest())

	if err != nil {
		t.Fatalf("create: %v", err)
	}

	update := UpdateEventRequest{
		Title:       e.Title,
		Description: e.Description,
		Overview:    e.Overview,
		Image:       e.Image,
		Venue:       e.Venue,
		Location:    e.Location,
		Organizer:   e.Organizer,
		Date:        e.Date,
		Time:        "26:00",
		Mode:        e.Mode,
		Audience:    e.Audience,
		Agenda:      e.Agenda,
		Tags:        e.Tags,
	}

	_, err = e.ApplyUpdate(update)
	wantValidationCode(t, err, validation.CodeInvalidFormat, "time")
}
