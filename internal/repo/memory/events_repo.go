package memory

import (
	"context"
	"sync"

	"evently/internal/domain/event"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EventsRepo is the map-backed twin of the mongo repo, used in handler
// tests and local development without a database.
type EventsRepo struct {
	mu    sync.RWMutex
	items map[primitive.ObjectID]event.Event
}

func NewEventsRepo() *EventsRepo {
	return &EventsRepo{
		items: make(map[primitive.ObjectID]event.Event),
	}
}

func (r *EventsRepo) Create(ctx context.Context, e event.Event) (event.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.Slug == e.Slug {
			return event.Event{}, event.ErrDuplicateSlug
		}
	}

	e.ID = primitive.NewObjectID()
	r.items[e.ID] = e

	return e, nil
}

func (r *EventsRepo) GetBySlug(ctx context.Context, slug string) (event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.items {
		if e.Slug == slug {
			return e, nil
		}
	}

	return event.Event{}, event.ErrNotFound
}

func (r *EventsRepo) GetByID(ctx context.Context, id primitive.ObjectID) (event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.items[id]

	if !ok {
		return event.Event{}, event.ErrNotFound
	}

	return e, nil
}

func (r *EventsRepo) List(ctx context.Context) ([]event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]event.Event, 0, len(r.items))

	for _, e := range r.items {
		out = append(out, e)
	}

	return out, nil
}

func (r *EventsRepo) Update(ctx context.Context, e event.Event) (event.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[e.ID]; !ok {
		return event.Event{}, event.ErrNotFound
	}

	for id, existing := range r.items {
		if id != e.ID && existing.Slug == e.Slug {
			return event.Event{}, event.ErrDuplicateSlug
		}
	}

	r.items[e.ID] = e

	return e, nil
}

func (r *EventsRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return event.ErrNotFound
	}

	delete(r.items, id)

	return nil
}
