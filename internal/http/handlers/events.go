package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"evently/internal/config"
	"evently/internal/domain/event"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// intermediate caches may serve for 60s and revalidate for 300s more
const publicEventCacheControl = "public, s-maxage=60, stale-while-revalidate=300"

type EventsStore interface {
	Create(ctx context.Context, e event.Event) (event.Event, error)
	GetBySlug(ctx context.Context, slug string) (event.Event, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (event.Event, error)
	List(ctx context.Context) ([]event.Event, error)
	Update(ctx context.Context, e event.Event) (event.Event, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type EventsHandler struct {
	repo EventsStore
	log  *slog.Logger
}

func NewEventsHandler(repo EventsStore, log *slog.Logger) *EventsHandler {
	if log == nil {
		log = slog.Default()
	}

	return &EventsHandler{repo: repo, log: log}
}

// GetEventBySlug is the public read path. Outcomes, in order: missing
// slug, malformed slug, store failure, no match, then the projection
// with the public caching directive.
func (h *EventsHandler) GetEventBySlug(ctx *gin.Context) {
	slug := strings.TrimSpace(ctx.Param("slug"))

	if slug == "" {
		RespondBadRequest(ctx, "MISSING_SLUG", "slug path parameter is required")
		return
	}

	if !event.SlugPattern.MatchString(slug) {
		RespondBadRequest(ctx, "INVALID_SLUG", "slug must be 1-100 lowercase letters, digits or hyphens")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	e, err := h.repo.GetBySlug(cctx, slug)

	if err != nil {
		if errors.Is(err, event.ErrNotFound) {
			RespondNotFound(ctx, "Event not found")
			return
		}

		h.log.Error("get event by slug failed", "slug", slug, "err", err)
		RespondInternal(ctx)
		return
	}

	ctx.Header("Cache-Control", publicEventCacheControl)
	RespondData(ctx, http.StatusOK, e.Public())
}

func (h *EventsHandler) CreateEvent(ctx *gin.Context) {
	var req event.CreateEventRequest

	if !BindJSON(ctx, &req) {
		return
	}

	e, err := event.NewFromCreateRequest(req)

	if err != nil {
		if !RespondValidationError(ctx, err) {
			h.log.Error("create event validation failed", "err", err)
			RespondInternal(ctx)
		}
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	created, err := h.repo.Create(cctx, e)

	if err != nil {
		if errors.Is(err, event.ErrDuplicateSlug) {
			RespondConflict(ctx, "DUPLICATE_KEY", "an event with this slug already exists")
			return
		}

		h.log.Error("create event failed", "slug", e.Slug, "err", err)
		RespondInternal(ctx)
		return
	}

	RespondData(ctx, http.StatusCreated, created)
}

func (h *EventsHandler) ListEvents(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	events, err := h.repo.List(cctx)

	if err != nil {
		h.log.Error("list events failed", "err", err)
		RespondInternal(ctx)
		return
	}

	RespondDataWithETag(ctx, http.StatusOK, gin.H{
		"items": events,
		"count": len(events),
	})
}

func (h *EventsHandler) UpdateEvent(ctx *gin.Context) {
	id, ok := parseObjectID(ctx, ctx.Param("id"), "event id")

	if !ok {
		return
	}

	var req event.UpdateEventRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	existing, err := h.repo.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, event.ErrNotFound) {
			RespondNotFound(ctx, "Event not found")
			return
		}

		h.log.Error("load event for update failed", "id", id.Hex(), "err", err)
		RespondInternal(ctx)
		return
	}

	updated, err := existing.ApplyUpdate(req)

	if err != nil {
		if !RespondValidationError(ctx, err) {
			h.log.Error("update event validation failed", "id", id.Hex(), "err", err)
			RespondInternal(ctx)
		}
		return
	}

	saved, err := h.repo.Update(cctx, updated)

	if err != nil {
		if errors.Is(err, event.ErrNotFound) {
			RespondNotFound(ctx, "Event not found")
			return
		}

		h.log.Error("update event failed", "id", id.Hex(), "err", err)
		RespondInternal(ctx)
		return
	}

	RespondData(ctx, http.StatusOK, saved)
}

func (h *EventsHandler) DeleteEvent(ctx *gin.Context) {
	id, ok := parseObjectID(ctx, ctx.Param("id"), "event id")

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	err := h.repo.Delete(cctx, id)

	if err != nil {
		if errors.Is(err, event.ErrNotFound) {
			RespondNotFound(ctx, "Event not found")
			return
		}

		h.log.Error("delete event failed", "id", id.Hex(), "err", err)
		RespondInternal(ctx)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func parseObjectID(ctx *gin.Context, raw, what string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(raw))

	if err != nil {
		RespondBadRequest(ctx, "INVALID_REFERENCE", what+" is not a valid identifier")
		return primitive.NilObjectID, false
	}

	return id, true
}
