package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"evently/internal/config"
	"evently/internal/domain/booking"
	"evently/internal/domain/event"
	"evently/internal/domain/validation"
	"evently/internal/jobs"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingsStore interface {
	Create(ctx context.Context, b booking.Booking) (booking.Booking, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (booking.Booking, error)
	ListByEvent(ctx context.Context, eventID primitive.ObjectID) ([]booking.Booking, error)
	Update(ctx context.Context, b booking.Booking) (booking.Booking, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// read-side dependency for the referential check; the events repo
// satisfies this
type EventsFinder interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (event.Event, error)
	GetBySlug(ctx context.Context, slug string) (event.Event, error)
}

type ConfirmationEnqueuer interface {
	Enqueue(ctx context.Context, j jobs.Job) error
}

type BookingsHandler struct {
	repo   BookingsStore
	events EventsFinder
	queue  ConfirmationEnqueuer
	log    *slog.Logger
}

func NewBookingsHandler(repo BookingsStore, events EventsFinder, queue ConfirmationEnqueuer, log *slog.Logger) *BookingsHandler {
	if log == nil {
		log = slog.Default()
	}

	return &BookingsHandler{repo: repo, events: events, queue: queue, log: log}
}

func (h *BookingsHandler) CreateBooking(ctx *gin.Context) {
	eventID := ctx.Param("id")

	var req booking.CreateBookingRequest

	if !BindJSON(ctx, &req) {
		return
	}

	// the URL is the source of truth for the event reference
	req.EventID = eventID

	b, err := booking.NewFromCreateRequest(req)

	if err != nil {
		if !RespondValidationError(ctx, err) {
			h.log.Error("create booking validation failed", "err", err)
			RespondInternal(ctx)
		}
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	// referential check: the booking may only point at a live event
	ev, err := h.events.GetByID(cctx, b.EventID)

	if err != nil {
		if errors.Is(err, event.ErrNotFound) {
			verr := validation.DanglingReference("eventId", "referenced event does not exist")
			RespondValidationError(ctx, verr)
			return
		}

		h.log.Error("booking referential check failed", "eventId", b.EventID.Hex(), "err", err)
		RespondInternal(ctx)
		return
	}

	created, err := h.repo.Create(cctx, b)

	if err != nil {
		h.log.Error("create booking failed", "eventId", b.EventID.Hex(), "err", err)
		RespondInternal(ctx)
		return
	}

	// confirmation is best effort; a queue outage must not fail the booking
	if h.queue != nil {
		j, err := jobs.NewBookingConfirmation(jobs.BookingConfirmationPayload{
			BookingID:  created.ID.Hex(),
			EventID:    ev.ID.Hex(),
			EventTitle: ev.Title,
			Email:      created.Email,
		})

		if err != nil {
			h.log.Error("build confirmation job failed", "bookingId", created.ID.Hex(), "err", err)
		} else if err := h.queue.Enqueue(cctx, j); err != nil {
			h.log.Error("enqueue confirmation failed", "bookingId", created.ID.Hex(), "err", err)
		}
	}

	RespondData(ctx, http.StatusCreated, created)
}

// ListForEvent is addressed by slug like the public read path.
func (h *BookingsHandler) ListForEvent(ctx *gin.Context) {
	slug := strings.TrimSpace(ctx.Param("slug"))

	if slug == "" || !event.SlugPattern.MatchString(slug) {
		RespondBadRequest(ctx, "INVALID_SLUG", "slug must be 1-100 lowercase letters, digits or hyphens")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	ev, err := h.events.GetBySlug(cctx, slug)

	if err != nil {
		if errors.Is(err, event.ErrNotFound) {
			RespondNotFound(ctx, "Event not found")
			return
		}

		h.log.Error("load event for bookings failed", "slug", slug, "err", err)
		RespondInternal(ctx)
		return
	}

	items, err := h.repo.ListByEvent(cctx, ev.ID)

	if err != nil {
		h.log.Error("list bookings failed", "eventId", ev.ID.Hex(), "err", err)
		RespondInternal(ctx)
		return
	}

	RespondData(ctx, http.StatusOK, gin.H{
		"eventId":  ev.ID.Hex(),
		"count":    len(items),
		"bookings": items,
	})
}

func (h *BookingsHandler) UpdateBooking(ctx *gin.Context) {
	id, ok := parseObjectID(ctx, ctx.Param("id"), "booking id")

	if !ok {
		return
	}

	var req booking.UpdateBookingRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	existing, err := h.repo.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			RespondNotFound(ctx, "Booking not found")
			return
		}

		h.log.Error("load booking for update failed", "id", id.Hex(), "err", err)
		RespondInternal(ctx)
		return
	}

	updated, refChanged, err := existing.ApplyUpdate(req)

	if err != nil {
		if !RespondValidationError(ctx, err) {
			h.log.Error("update booking validation failed", "id", id.Hex(), "err", err)
			RespondInternal(ctx)
		}
		return
	}

	// only re-verify the reference when it actually moved
	if refChanged {
		if _, err := h.events.GetByID(cctx, updated.EventID); err != nil {
			if errors.Is(err, event.ErrNotFound) {
				verr := validation.DanglingReference("eventId", "referenced event does not exist")
				RespondValidationError(ctx, verr)
				return
			}

			h.log.Error("booking referential check failed", "eventId", updated.EventID.Hex(), "err", err)
			RespondInternal(ctx)
			return
		}
	}

	saved, err := h.repo.Update(cctx, updated)

	if err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			RespondNotFound(ctx, "Booking not found")
			return
		}

		h.log.Error("update booking failed", "id", id.Hex(), "err", err)
		RespondInternal(ctx)
		return
	}

	RespondData(ctx, http.StatusOK, saved)
}

func (h *BookingsHandler) DeleteBooking(ctx *gin.Context) {
	id, ok := parseObjectID(ctx, ctx.Param("id"), "booking id")

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	err := h.repo.Delete(cctx, id)

	if err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			RespondNotFound(ctx, "Booking not found")
			return
		}

		h.log.Error("delete booking failed", "id", id.Hex(), "err", err)
		RespondInternal(ctx)
		return
	}

	ctx.Status(http.StatusNoContent)
}
