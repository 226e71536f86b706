package mongodb

import (
	"context"

	"evently/internal/db"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the unique slug index on events and the eventId
// lookup index on bookings. Safe to call on every startup.
func EnsureIndexes(ctx context.Context, conn *db.Connector) error {
	database, err := conn.Database(ctx)

	if err != nil {
		return err
	}

	_, err = database.Collection(eventsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true),
	})

	if err != nil {
		return err
	}

	_, err = database.Collection(bookingsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "eventId", Value: 1}},
	})

	return err
}
