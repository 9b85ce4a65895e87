package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/thanhng/socialhub/internal/models"
)

// MessageStore adapts the messages collection.
type MessageStore struct {
	c *mongo.Collection
}

func (s *MessageStore) Insert(ctx context.Context, msg *models.Message) (primitive.ObjectID, error) {
	res, err := s.c.InsertOne(ctx, msg)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// Between returns every message exchanged between a and b, oldest first.
func (s *MessageStore) Between(ctx context.Context, a, b primitive.ObjectID) ([]models.Message, error) {
	cur, err := s.c.Find(ctx,
		bson.M{"$or": bson.A{
			bson.M{"from_user": a, "to_user": b},
			bson.M{"from_user": b, "to_user": a},
		}},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("finding messages: %w", err)
	}
	var msgs []models.Message
	if err := cur.All(ctx, &msgs); err != nil {
		return nil, fmt.Errorf("decoding messages: %w", err)
	}
	return msgs, nil
}

// MarkRead sets read on every unread message from one user to the other.
// Idempotent: already-read messages match nothing. Returns the number of
// messages transitioned.
func (s *MessageStore) MarkRead(ctx context.Context, from, to primitive.ObjectID) (int64, error) {
	res, err := s.c.UpdateMany(ctx,
		bson.M{"from_user": from, "to_user": to, "read": false},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// LatestPerPeer groups the user's messages by the other participant and
// keeps the newest one per peer. This is the single aggregation the
// conversation view needs.
func (s *MessageStore) LatestPerPeer(ctx context.Context, user primitive.ObjectID) ([]models.PeerLatest, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"$or": bson.A{bson.M{"from_user": user}, bson.M{"to_user": user}},
		}}},
		{{Key: "$addFields", Value: bson.M{
			"other_user": bson.M{"$cond": bson.M{
				"if":   bson.M{"$eq": bson.A{"$from_user", user}},
				"then": "$to_user",
				"else": "$from_user",
			}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		{{Key: "$group", Value: bson.M{
			"_id":          "$other_user",
			"last_message": bson.M{"$first": "$$ROOT"},
		}}},
	}

	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregating conversations: %w", err)
	}
	var latest []models.PeerLatest
	if err := cur.All(ctx, &latest); err != nil {
		return nil, fmt.Errorf("decoding conversations: %w", err)
	}
	return latest, nil
}
