package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"testing"

	"evently/internal/domain/booking"
	"evently/internal/domain/event"
	"evently/internal/jobs"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeBookingsRepo struct {
	createFn      func(ctx context.Context, b booking.Booking) (booking.Booking, error)
	getByIDFn     func(ctx context.Context, id primitive.ObjectID) (booking.Booking, error)
	listByEventFn func(ctx context.Context, eventID primitive.ObjectID) ([]booking.Booking, error)
	updateFn      func(ctx context.Context, b booking.Booking) (booking.Booking, error)
	deleteFn      func(ctx context.Context, id primitive.ObjectID) error
}

func (f *fakeBookingsRepo) Create(ctx context.Context, b booking.Booking) (booking.Booking, error) {
	return f.createFn(ctx, b)
}

func (f *fakeBookingsRepo) GetByID(ctx context.Context, id primitive.ObjectID) (booking.Booking, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeBookingsRepo) ListByEvent(ctx context.Context, eventID primitive.ObjectID) ([]booking.Booking, error) {
	return f.listByEventFn(ctx, eventID)
}

func (f *fakeBookingsRepo) Update(ctx context.Context, b booking.Booking) (booking.Booking, error) {
	return f.updateFn(ctx, b)
}

func (f *fakeBookingsRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return f.deleteFn(ctx, id)
}

type fakeEventsFinder struct {
	getByIDFn   func(ctx context.Context, id primitive.ObjectID) (event.Event, error)
	getBySlugFn func(ctx context.Context, slug string) (event.Event, error)
}

func (f *fakeEventsFinder) GetByID(ctx context.Context, id primitive.ObjectID) (event.Event, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeEventsFinder) GetBySlug(ctx context.Context, slug string) (event.Event, error) {
	return f.getBySlugFn(ctx, slug)
}

type fakeEnqueuer struct {
	jobs []jobs.Job
	err  error
}

func (f *fakeEnqueuer) Enqueue(_ context.Context, j jobs.Job) error {
	if f.err != nil {
		return f.err
	}

	f.jobs = append(f.jobs, j)
	return nil
}

func newBookingsRouter(repo *fakeBookingsRepo, events *fakeEventsFinder, queue *fakeEnqueuer) *gin.Engine {
	h := NewBookingsHandler(repo, events, queue, slog.New(slog.DiscardHandler))

	r := gin.New()
	r.POST("/events/:id/bookings", h.CreateBooking)
	r.GET("/events/:slug/bookings", h.ListForEvent)
	r.PUT("/bookings/:id", h.UpdateBooking)
	r.DELETE("/bookings/:id", h.DeleteBooking)

	return r
}

func TestCreateBookingSuccess(t *testing.T) {
	ev := sampleEvent()

	var stored booking.Booking

	repo := &fakeBookingsRepo{
		createFn: func(_ context.Context, b booking.Booking) (booking.Booking, error) {
			b.ID = primitive.NewObjectID()
			stored = b
			return b, nil
		},
	}

	events := &fakeEventsFinder{
		getByIDFn: func(_ context.Context, id primitive.ObjectID) (event.Event, error) {
			if id != ev.ID {
				return event.Event{}, event.ErrNotFound
			}
			return ev, nil
		},
	}

	queue := &fakeEnqueuer{}

	body := map[string]any{"email": "  Attendee@Example.COM  "}

	w := doJSON(t, newBookingsRouter(repo, events, queue), http.MethodPost, "/events/"+ev.ID.Hex()+"/bookings", body)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201\nbody: %s", w.Code, w.Body.String())
	}

	if stored.Email != "attendee@example.com" {
		t.Fatalf("stored email = %q, want normalized form", stored.Email)
	}

	if stored.EventID != ev.ID {
		t.Fatalf("stored eventId = %s, want %s", stored.EventID.Hex(), ev.ID.Hex())
	}

	if len(queue.jobs) != 1 {
		t.Fatalf("enqueued %d jobs, want 1", len(queue.jobs))
	}

	decoded, err := jobs.DecodePayload(queue.jobs[0])

	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}

	payload, ok := decoded.(jobs.BookingConfirmationPayload)

	if !ok {
		t.Fatalf("payload type = %T", decoded)
	}

	if payload.Email != "attendee@example.com" || payload.EventTitle != ev.Title {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestCreateBookingDanglingReference(t *testing.T) {
	events := &fakeEventsFinder{
		getByIDFn: func(_ context.Context, _ primitive.ObjectID) (event.Event, error) {
			return event.Event{}, event.ErrNotFound
		},
	}

	body := map[string]any{"email": "a@b.co"}

	w := doJSON(t, newBookingsRouter(&fakeBookingsRepo{}, events, &fakeEnqueuer{}),
		http.MethodPost, "/events/"+primitive.NewObjectID().Hex()+"/bookings", body)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422\nbody: %s", w.Code, w.Body.String())
	}

	env := decodeEnvelope(t, w)

	if env.Error == nil || env.Error.Code != "DANGLING_REFERENCE" {
		t.Fatalf("unexpected envelope: %s", w.Body.String())
	}
}

func TestCreateBookingBadEventID(t *testing.T) {
	body := map[string]any{"email": "a@b.co"}

	w := doJSON(t, newBookingsRouter(&fakeBookingsRepo{}, &fakeEventsFinder{}, &fakeEnqueuer{}),
		http.MethodPost, "/events/not-hex/bookings", body)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400\nbody: %s", w.Code, w.Body.String())
	}

	env := decodeEnvelope(t, w)

	if env.Error == nil || env.Error.Code != "INVALID_REFERENCE" {
		t.Fatalf("unexpected envelope: %s", w.Body.String())
	}
}

func TestCreateBookingBadEmail(t *testing.T) {
	ev := sampleEvent()

	events := &fakeEventsFinder{
		getByIDFn: func(_ context.Context, _ primitive.ObjectID) (event.Event, error) {
			return ev, nil
		},
	}

	body := map[string]any{"email": "not-an-email"}

	w := doJSON(t, newBookingsRouter(&fakeBookingsRepo{}, events, &fakeEnqueuer{}),
		http.MethodPost, "/events/"+ev.ID.Hex()+"/bookings", body)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400\nbody: %s", w.Code, w.Body.String())
	}

	env := decodeEnvelope(t, w)

	if env.Error == nil || env.Error.Code != "INVALID_FORMAT" {
		t.Fatalf("unexpected envelope: %s", w.Body.String())
	}
}

func TestCreateBookingQueueOutageStillSucceeds(t *testing.T) {
	ev := sampleEvent()

	repo := &fakeBookingsRepo{
		createFn: func(_ context.Context, b booking.Booking) (booking.Booking, error) {
			b.ID = primitive.NewObjectID()
			return b, nil
		},
	}

	events := &fakeEventsFinder{
		getByIDFn: func(_ context.Context, _ primitive.ObjectID) (event.Event, error) {
			return ev, nil
		},
	}

	queue := &fakeEnqueuer{err: errors.New("redis down")}

	body := map[string]any{"email": "a@b.co"}

	w := doJSON(t, newBookingsRouter(repo, events, queue), http.MethodPost, "/events/"+ev.ID.Hex()+"/bookings", body)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201\nbody: %s", w.Code, w.Body.String())
	}
}

func TestListBookingsForMissingEvent(t *testing.T) {
	events := &fakeEventsFinder{
		getBySlugFn: func(_ context.Context, _ string) (event.Event, error) {
			return event.Event{}, event.ErrNotFound
		},
	}

	w := doJSON(t, newBookingsRouter(&fakeBookingsRepo{}, events, &fakeEnqueuer{}),
		http.MethodGet, "/events/no-such-event/bookings", nil)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404\nbody: %s", w.Code, w.Body.String())
	}
}

func TestListBookingsForEvent(t *testing.T) {
	ev := sampleEvent()

	events := &fakeEventsFinder{
		getBySlugFn: func(_ context.Context, slug string) (event.Event, error) {
			if slug != ev.Slug {
				return event.Event{}, event.ErrNotFound
			}
			return ev, nil
		},
	}

	repo := &fakeBookingsRepo{
		listByEventFn: func(_ context.Context, eventID primitive.ObjectID) ([]booking.Booking, error) {
			if eventID != ev.ID {
				t.Fatalf("listed for event %s, want %s", eventID.Hex(), ev.ID.Hex())
			}
			return []booking.Booking{
				{ID: primitive.NewObjectID(), EventID: ev.ID, Email: "a@b.co"},
				{ID: primitive.NewObjectID(), EventID: ev.ID, Email: "c@d.co"},
			}, nil
		},
	}

	w := doJSON(t, newBookingsRouter(repo, events, &fakeEnqueuer{}),
		http.MethodGet, "/events/"+ev.Slug+"/bookings", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\nbody: %s", w.Code, w.Body.String())
	}

	env := decodeEnvelope(t, w)

	var data struct {
		Count    int               `json:"count"`
		Bookings []booking.Booking `json:"bookings"`
	}

	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}

	if data.Count != 2 || len(data.Bookings) != 2 {
		t.Fatalf("count = %d, bookings = %d", data.Count, len(data.Bookings))
	}
}

func TestUpdateBookingReferenceMoved(t *testing.T) {
	oldEvent := primitive.NewObjectID()
	newEvent := primitive.NewObjectID()
	id := primitive.NewObjectID()

	repo := &fakeBookingsRepo{
		getByIDFn: func(_ context.Context, _ primitive.ObjectID) (booking.Booking, error) {
			return booking.Booking{ID: id, EventID: oldEvent, Email: "a@b.co"}, nil
		},
	}

	// the new target does not exist
	events := &fakeEventsFinder{
		getByIDFn: func(_ context.Context, got primitive.ObjectID) (event.Event, error) {
			if got != newEvent {
				t.Fatalf("re-checked event %s, want %s", got.Hex(), newEvent.Hex())
			}
			return event.Event{}, event.ErrNotFound
		},
	}

	body := map[string]any{"eventId": newEvent.Hex(), "email": "a@b.co"}

	w := doJSON(t, newBookingsRouter(repo, events, &fakeEnqueuer{}),
		http.MethodPut, "/bookings/"+id.Hex(), body)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422\nbody: %s", w.Code, w.Body.String())
	}
}

func TestUpdateBookingSameReferenceSkipsCheck(t *testing.T) {
	eventID := primitive.NewObjectID()
	id := primitive.NewObjectID()

	repo := &fakeBookingsRepo{
		getByIDFn: func(_ context.Context, _ primitive.ObjectID) (booking.Booking, error) {
			return booking.Booking{ID: id, EventID: eventID, Email: "a@b.co"}, nil
		},
		updateFn: func(_ context.Context, b booking.Booking) (booking.Booking, error) {
			return b, nil
		},
	}

	// any lookup here means the handler re-checked a reference that never moved
	events := &fakeEventsFinder{
		getByIDFn: func(_ context.Context, _ primitive.ObjectID) (event.Event, error) {
			t.Fatal("referential check ran for an unchanged reference")
			return event.Event{}, nil
		},
	}

	body := map[string]any{"eventId": eventID.Hex(), "email": "new@b.co"}

	w := doJSON(t, newBookingsRouter(repo, events, &fakeEnqueuer{}),
		http.MethodPut, "/bookings/"+id.Hex(), body)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\nbody: %s", w.Code, w.Body.String())
	}
}

func TestDeleteBookingNotFound(t *testing.T) {
	repo := &fakeBookingsRepo{
		deleteFn: func(_ context.Context, _ primitive.ObjectID) error {
			return booking.ErrNotFound
		},
	}

	w := doJSON(t, newBookingsRouter(repo, &fakeEventsFinder{}, &fakeEnqueuer{}),
		http.MethodDelete, "/bookings/"+primitive.NewObjectID().Hex(), nil)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404\nbody: %s", w.Code, w.Body.String())
	}
}
