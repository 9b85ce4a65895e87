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

// UserStore adapts the users collection.
type UserStore struct {
	c *mongo.Collection
}

func (s *UserStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.c.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetMany loads the users whose ids are given. Missing ids are silently
// absent from the result; order is storage order.
func (s *UserStore) GetMany(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("finding users: %w", err)
	}
	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decoding users: %w", err)
	}
	return users, nil
}

func (s *UserStore) Insert(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	res, err := s.c.InsertOne(ctx, user)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (s *UserStore) UpdateProfile(ctx context.Context, id primitive.ObjectID, update models.ProfileUpdate) error {
	set := bson.M{}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Bio != nil {
		set["bio"] = *update.Bio
	}
	if update.Avatar != nil {
		set["avatar"] = *update.Avatar
	}
	if len(set) == 0 {
		return nil
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// AddFriend inserts friendID into userID's friends set if absent ($addToSet).
// Atomic and idempotent; reports whether the document actually changed.
func (s *UserStore) AddFriend(ctx context.Context, userID, friendID primitive.ObjectID) (bool, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$addToSet": bson.M{"friends": friendID}},
	)
	if err != nil {
		return false, err
	}
	if res.MatchedCount == 0 {
		return false, mongo.ErrNoDocuments
	}
	return res.ModifiedCount > 0, nil
}

// Search matches the pattern case-insensitively against name and email,
// excluding the given ids.
func (s *UserStore) Search(ctx context.Context, pattern string, exclude []primitive.ObjectID, limit int64) ([]models.User, error) {
	filter := bson.M{
		"$or": bson.A{
			bson.M{"name": bson.M{"$regex": pattern, "$options": "i"}},
			bson.M{"email": bson.M{"$regex": pattern, "$options": "i"}},
		},
		"_id": bson.M{"$nin": exclude},
	}
	cur, err := s.c.Find(ctx, filter, options.Find().SetLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("searching users: %w", err)
	}
	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decoding users: %w", err)
	}
	return users, nil
}
