package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/thanhng/socialhub/internal/models"
)

// RequestStore adapts the friends collection, which holds friend-request
// history records.
type RequestStore struct {
	c *mongo.Collection
}

// PendingExists reports whether a pending request exists for the ordered
// (from, to) pair.
func (s *RequestStore) PendingExists(ctx context.Context, from, to primitive.ObjectID) (bool, error) {
	err := s.c.FindOne(ctx,
		bson.M{"from_user": from, "to_user": to, "status": models.RequestStatusPending},
		options.FindOne().SetProjection(bson.M{"_id": 1}),
	).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *RequestStore) Insert(ctx context.Context, req *models.FriendRequest) (primitive.ObjectID, error) {
	res, err := s.c.InsertOne(ctx, req)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// ListPendingFor returns the pending requests addressed to the user, in
// storage order.
func (s *RequestStore) ListPendingFor(ctx context.Context, to primitive.ObjectID) ([]models.FriendRequest, error) {
	cur, err := s.c.Find(ctx, bson.M{"to_user": to, "status": models.RequestStatusPending})
	if err != nil {
		return nil, fmt.Errorf("finding pending requests: %w", err)
	}
	var reqs []models.FriendRequest
	if err := cur.All(ctx, &reqs); err != nil {
		return nil, fmt.Errorf("decoding pending requests: %w", err)
	}
	return reqs, nil
}

// ListPendingInvolving returns pending requests where the user is either
// endpoint.
func (s *RequestStore) ListPendingInvolving(ctx context.Context, user primitive.ObjectID) ([]models.FriendRequest, error) {
	cur, err := s.c.Find(ctx, bson.M{
		"status": models.RequestStatusPending,
		"$or":    bson.A{bson.M{"from_user": user}, bson.M{"to_user": user}},
	})
	if err != nil {
		return nil, fmt.Errorf("finding pending requests: %w", err)
	}
	var reqs []models.FriendRequest
	if err := cur.All(ctx, &reqs); err != nil {
		return nil, fmt.Errorf("decoding pending requests: %w", err)
	}
	return reqs, nil
}

// AcceptPending flips a pending request addressed to the recipient into the
// accepted state, in one guarded document update. The filter requires the
// prior state, so of all concurrent callers exactly one observes the pending
// document; the rest get mongo.ErrNoDocuments.
func (s *RequestStore) AcceptPending(ctx context.Context, id, to primitive.ObjectID, at time.Time) (*models.FriendRequest, error) {
	var req models.FriendRequest
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "to_user": to, "status": models.RequestStatusPending},
		bson.M{"$set": bson.M{"status": models.RequestStatusAccepted, "accepted_at": at}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&req)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// ListAccepted returns every accepted request. Used by the friendship
// reconciliation pass.
func (s *RequestStore) ListAccepted(ctx context.Context) ([]models.FriendRequest, error) {
	cur, err := s.c.Find(ctx, bson.M{"status": models.RequestStatusAccepted})
	if err != nil {
		return nil, fmt.Errorf("finding accepted requests: %w", err)
	}
	var reqs []models.FriendRequest
	if err := cur.All(ctx, &reqs); err != nil {
		return nil, fmt.Errorf("decoding accepted requests: %w", err)
	}
	return reqs, nil
}
