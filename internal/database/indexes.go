package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the services rely on. Runs at startup
// and is idempotent. The partial unique index on pending requests is what
// backs the at-most-one-pending invariant per ordered (from, to) pair:
// a duplicate insert that slips past the existence check loses the race
// with a duplicate-key error instead of creating a second pending request.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("creating users indexes: %w", err)
	}

	_, err = db.Collection("friends").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "from_user", Value: 1}, {Key: "to_user", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetName("uniq_pending_request").
			SetPartialFilterExpression(bson.M{"status": "pending"}),
	})
	if err != nil {
		return fmt.Errorf("creating friends indexes: %w", err)
	}

	_, err = db.Collection("posts").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "author_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("creating posts indexes: %w", err)
	}

	_, err = db.Collection("messages").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "from_user", Value: 1}, {Key: "to_user", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("creating messages indexes: %w", err)
	}

	return nil
}
