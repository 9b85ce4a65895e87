package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/thanhng/socialhub/internal/models"
)

var ErrEmptyComment = errors.New("comment content is required")

type CommentService struct {
	users UserStore
	posts PostStore
}

func NewCommentService(users UserStore, posts PostStore) *CommentService {
	return &CommentService{users: users, posts: posts}
}

// AddComment appends a comment to the post. The comment id is a fresh UUID,
// a namespace of its own with no relation to document ids, and the author
// name and avatar are snapshotted at write time. Concurrent appends both
// land; their relative order is whatever the store applied.
func (s *CommentService) AddComment(ctx context.Context, postID, authorID primitive.ObjectID, content string) (models.CommentView, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return models.CommentView{}, ErrEmptyComment
	}

	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.CommentView{}, ErrUserNotFound
		}
		return models.CommentView{}, fmt.Errorf("getting author: %w", err)
	}

	comment := models.Comment{
		ID:           uuid.NewString(),
		AuthorID:     author.ID,
		AuthorName:   author.Name,
		AuthorAvatar: author.Avatar,
		Content:      content,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.posts.AppendComment(ctx, postID, comment); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.CommentView{}, ErrPostNotFound
		}
		return models.CommentView{}, fmt.Errorf("appending comment: %w", err)
	}

	return comment.View(), nil
}
