// Package store provides persistence for the catalog collections. The Mongo
// types are the production backend; package memory mirrors them for tests.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no document matches the given id or filter.
var ErrNotFound = errors.New("document not found")

// EnsureIndexes creates the unique email indexes on the players and users
// collections. Safe to call on every startup.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	emailUnique := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	for _, name := range []string{"players", "users"} {
		if _, err := db.Collection(name).Indexes().CreateOne(ctx, emailUnique); err != nil {
			return err
		}
	}
	return nil
}
