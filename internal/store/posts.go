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

// PostStore adapts the posts collection, including the embedded comment
// sequence and the reaction buckets.
type PostStore struct {
	c *mongo.Collection
}

func (s *PostStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var post models.Post
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *PostStore) Insert(ctx context.Context, post *models.Post) (primitive.ObjectID, error) {
	res, err := s.c.InsertOne(ctx, post)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (s *PostStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ListByAuthors returns the posts of the given authors, newest first.
func (s *PostStore) ListByAuthors(ctx context.Context, authors []primitive.ObjectID) ([]models.Post, error) {
	if len(authors) == 0 {
		return []models.Post{}, nil
	}
	cur, err := s.c.Find(ctx,
		bson.M{"author_id": bson.M{"$in": authors}},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("finding posts: %w", err)
	}
	var posts []models.Post
	if err := cur.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("decoding posts: %w", err)
	}
	return posts, nil
}

// AddLike inserts userID into the legacy likes set ($addToSet).
func (s *PostStore) AddLike(ctx context.Context, postID, userID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$addToSet": bson.M{"likes": userID}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// RemoveLike removes userID from the legacy likes set ($pull).
func (s *PostStore) RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$pull": bson.M{"likes": userID}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SetReaction moves userID into the kind bucket in a single document update:
// a $pull from every other bucket plus an $addToSet on the target. The
// database applies the update atomically, so the one-bucket-per-user
// invariant holds even under concurrent writers, and re-selecting the same
// kind is a no-op.
func (s *PostStore) SetReaction(ctx context.Context, postID, userID primitive.ObjectID, kind models.ReactionKind) error {
	pull := bson.M{}
	for _, k := range models.ReactionKinds() {
		if k != kind {
			pull["reactions."+string(k)] = userID
		}
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": postID}, bson.M{
		"$pull":     pull,
		"$addToSet": bson.M{"reactions." + string(kind): userID},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// AppendComment appends the comment to the post's comment sequence ($push).
func (s *PostStore) AppendComment(ctx context.Context, postID primitive.ObjectID, comment models.Comment) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$push": bson.M{"comments": comment}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
