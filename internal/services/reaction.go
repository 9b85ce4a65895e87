package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/thanhng/socialhub/internal/models"
)

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrInvalidReaction = errors.New("unrecognized reaction kind")
)

type ReactionService struct {
	posts PostStore
}

func NewReactionService(posts PostStore) *ReactionService {
	return &ReactionService{posts: posts}
}

// ToggleLike flips the user's membership in the post's like set: absent
// becomes present, present becomes absent. Returns the resulting state.
// The read and the write are separate document operations, so two racing
// toggles may collapse into one; the set itself never holds duplicates.
func (s *ReactionService) ToggleLike(ctx context.Context, postID, userID primitive.ObjectID) (bool, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, ErrPostNotFound
		}
		return false, fmt.Errorf("getting post: %w", err)
	}

	liked := false
	for _, id := range post.Likes {
		if id == userID {
			liked = true
			break
		}
	}

	if liked {
		err = s.posts.RemoveLike(ctx, postID, userID)
	} else {
		err = s.posts.AddLike(ctx, postID, userID)
	}
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, ErrPostNotFound
		}
		return false, fmt.Errorf("toggling like: %w", err)
	}
	return !liked, nil
}

// SetReaction places the user in the named reaction bucket, removing them
// from whichever bucket held them before. Re-selecting the current kind is a
// no-op, never a removal. Unknown kinds are rejected before any write.
func (s *ReactionService) SetReaction(ctx context.Context, postID, userID primitive.ObjectID, kind models.ReactionKind) error {
	if !kind.Valid() {
		return ErrInvalidReaction
	}

	if err := s.posts.SetReaction(ctx, postID, userID, kind); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrPostNotFound
		}
		return fmt.Errorf("setting reaction: %w", err)
	}
	return nil
}
