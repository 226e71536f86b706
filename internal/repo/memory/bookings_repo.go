package memory

import (
	"context"
	"sync"

	"evently/internal/domain/booking"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingsRepo struct {
	mu    sync.RWMutex
	items map[primitive.ObjectID]booking.Booking
}

func NewBookingsRepo() *BookingsRepo {
	return &BookingsRepo{
		items: make(map[primitive.ObjectID]booking.Booking),
	}
}

func (r *BookingsRepo) Create(ctx context.Context, b booking.Booking) (booking.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b.ID = primitive.NewObjectID()
	r.items[b.ID] = b

	return b, nil
}

func (r *BookingsRepo) GetByID(ctx context.Context, id primitive.ObjectID) (booking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.items[id]

	if !ok {
		return booking.Booking{}, booking.ErrNotFound
	}

	return b, nil
}

func (r *BookingsRepo) ListByEvent(ctx context.Context, eventID primitive.ObjectID) ([]booking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]booking.Booking, 0)

	for _, b := range r.items {
		if b.EventID == eventID {
			out = append(out, b)
		}
	}

	return out, nil
}

func (r *BookingsRepo) Update(ctx context.Context, b booking.Booking) (booking.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[b.ID]; !ok {
		return booking.Booking{}, booking.ErrNotFound
	}

	r.items[b.ID] = b

	return b, nil
}

func (r *BookingsRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return booking.ErrNotFound
	}

	delete(r.items, id)

	return nil
}
