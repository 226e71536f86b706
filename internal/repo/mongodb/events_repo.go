package mongodb

import (
	"context"

	"evently/internal/db"
	"evently/internal/domain/event"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const eventsCollection = "events"

type EventsRepo struct {
	conn *db.Connector
}

func NewEventsRepo(conn *db.Connector) *EventsRepo {
	return &EventsRepo{
		conn: conn,
	}
}

// col resolves the collection through the shared connector so every
// operation goes through the memoized handle.
func (r *EventsRepo) col(ctx context.Context) (*mongo.Collection, error) {
	database, err := r.conn.Database(ctx)

	if err != nil {
		return nil, err
	}

	return database.Collection(eventsCollection), nil
}

func (r *EventsRepo) Create(ctx context.Context, e event.Event) (event.Event, error) {
	col, err := r.col(ctx)

	if err != nil {
		return event.Event{}, err
	}

	e.ID = primitive.NewObjectID()

	_, err = col.InsertOne(ctx, e)

	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return event.Event{}, event.ErrDuplicateSlug
		}

		return event.Event{}, err
	}

	return e, nil
}

func (r *EventsRepo) GetBySlug(ctx context.Context, slug string) (event.Event, error) {
	col, err := r.col(ctx)

	if err != nil {
		return event.Event{}, err
	}

	var e event.Event

	err = col.FindOne(ctx, bson.M{"slug": slug}).Decode(&e)

	if err != nil {
		if err == mongo.ErrNoDocuments {
			return event.Event{}, event.ErrNotFound
		}

		return event.Event{}, err
	}

	return e, nil
}

func (r *EventsRepo) GetByID(ctx context.Context, id primitive.ObjectID) (event.Event, error) {
	col, err := r.col(ctx)

	if err != nil {
		return event.Event{}, err
	}

	var e event.Event

	err = col.FindOne(ctx, bson.M{"_id": id}).Decode(&e)

	if err != nil {
		if err == mongo.ErrNoDocuments {
			return event.Event{}, event.ErrNotFound
		}

		return event.Event{}, err
	}

	return e, nil
}

func (r *EventsRepo) List(ctx context.Context) ([]event.Event, error) {
	col, err := r.col(ctx)

	if err != nil {
		return nil, err
	}

	cur, err := col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}}))

	if err != nil {
		return nil, err
	}

	defer cur.Close(ctx)

	out := make([]event.Event, 0)

	err = cur.All(ctx, &out)

	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *EventsRepo) Update(ctx context.Context, e event.Event) (event.Event, error) {
	col, err := r.col(ctx)

	if err != nil {
		return event.Event{}, err
	}

	res, err := col.ReplaceOne(ctx, bson.M{"_id": e.ID}, e)

	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return event.Event{}, event.ErrDuplicateSlug
		}

		return event.Event{}, err
	}

	if res.MatchedCount == 0 {
		return event.Event{}, event.ErrNotFound
	}

	return e, nil
}

// Delete removes the event only. Bookings referencing it are left in
// place: there is no cascade, integrity is enforced at write time.
func (r *EventsRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	col, err := r.col(ctx)

	if err != nil {
		return err
	}

	res, err := col.DeleteOne(ctx, bson.M{"_id": id})

	if err != nil {
		return err
	}

	if res.DeletedCount == 0 {
		return event.ErrNotFound
	}

	return nil
}
