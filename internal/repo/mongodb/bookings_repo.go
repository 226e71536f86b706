package mongodb

import (
	"context"

	"evently/internal/db"
	"evently/internal/domain/booking"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const bookingsCollection = "bookings"

type BookingsRepo struct {
	conn *db.Connector
}

func NewBookingsRepo(conn *db.Connector) *BookingsRepo {
	return &BookingsRepo{
		conn: conn,
	}
}

func (r *BookingsRepo) col(ctx context.Context) (*mongo.Collection, error) {
	database, err := r.conn.Database(ctx)

	if err != nil {
		return nil, err
	}

	return database.Collection(bookingsCollection), nil
}

func (r *BookingsRepo) Create(ctx context.Context, b booking.Booking) (booking.Booking, error) {
	col, err := r.col(ctx)

	if err != nil {
		return booking.Booking{}, err
	}

	b.ID = primitive.NewObjectID()

	_, err = col.InsertOne(ctx, b)

	if err != nil {
		return booking.Booking{}, err
	}

	return b, nil
}

func (r *BookingsRepo) GetByID(ctx context.Context, id primitive.ObjectID) (booking.Booking, error) {
	col, err := r.col(ctx)

	if err != nil {
		return booking.Booking{}, err
	}

	var b booking.Booking

	err = col.FindOne(ctx, bson.M{"_id": id}).Decode(&b)

	if err != nil {
		if err == mongo.ErrNoDocuments {
			return booking.Booking{}, booking.ErrNotFound
		}

		return booking.Booking{}, err
	}

	return b, nil
}

func (r *BookingsRepo) ListByEvent(ctx context.Context, eventID primitive.ObjectID) ([]booking.Booking, error) {
	col, err := r.col(ctx)

	if err != nil {
		return nil, err
	}

	cur, err := col.Find(ctx, bson.M{"eventId": eventID})

	if err != nil {
		return nil, err
	}

	defer cur.Close(ctx)

	out := make([]booking.Booking, 0)

	err = cur.All(ctx, &out)

	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *BookingsRepo) Update(ctx context.Context, b booking.Booking) (booking.Booking, error) {
	col, err := r.col(ctx)

	if err != nil {
		return booking.Booking{}, err
	}

	res, err := col.ReplaceOne(ctx, bson.M{"_id": b.ID}, b)

	if err != nil {
		return booking.Booking{}, err
	}

	if res.MatchedCount == 0 {
		return booking.Booking{}, booking.ErrNotFound
	}

	return b, nil
}

func (r *BookingsRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	col, err := r.col(ctx)

	if err != nil {
		return err
	}

	res, err := col.DeleteOne(ctx, bson.M{"_id": id})

	if err != nil {
		return err
	}

	if res.DeletedCount == 0 {
		return booking.ErrNotFound
	}

	return nil
}
