package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/thanhng/socialhub/internal/models"
)

var (
	ErrEmptyPost     = errors.New("post content is required")
	ErrNotPostAuthor = errors.New("only the author can delete a post")
)

type PostService struct {
	users UserStore
	posts PostStore
}

func NewPostService(users UserStore, posts PostStore) *PostService {
	return &PostService{users: users, posts: posts}
}

func (s *PostService) Create(ctx context.Context, author primitive.ObjectID, content, imageURL string) (models.PostView, error) {
	content = strings.TrimSpace(content)
	if content == "" && imageURL == "" {
		return models.PostView{}, ErrEmptyPost
	}

	user, err := s.users.GetByID(ctx, author)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.PostView{}, ErrUserNotFound
		}
		return models.PostView{}, fmt.Errorf("getting author: %w", err)
	}

	post := &models.Post{
		AuthorID:  author,
		Content:   content,
		ImageURL:  imageURL,
		CreatedAt: time.Now().UTC(),
		Likes:     []primitive.ObjectID{},
		Reactions: models.NewReactions(),
		Comments:  []models.Comment{},
	}
	id, err := s.posts.Insert(ctx, post)
	if err != nil {
		return models.PostView{}, fmt.Errorf("inserting post: %w", err)
	}
	post.ID = id

	return post.View(user.PublicProfile()), nil
}

// Feed returns the posts of the user and their friends, newest first.
func (s *PostService) Feed(ctx context.Context, user primitive.ObjectID) ([]models.PostView, error) {
	u, err := s.users.GetByID(ctx, user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}

	authors := append([]primitive.ObjectID{user}, u.Friends...)
	posts, err := s.posts.ListByAuthors(ctx, authors)
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}

	return s.join(ctx, posts, authors)
}

// ListByUser returns one author's posts, newest first. Only the author and
// their friends may view them.
func (s *PostService) ListByUser(ctx context.Context, viewer, author primitive.ObjectID) ([]models.PostView, error) {
	if _, err := s.users.GetByID(ctx, author); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting author: %w", err)
	}

	if viewer != author {
		v, err := s.users.GetByID(ctx, viewer)
		if err != nil {
			return nil, fmt.Errorf("getting viewer: %w", err)
		}
		if !v.HasFriend(author) {
			return nil, ErrNotFriends
		}
	}

	posts, err := s.posts.ListByAuthors(ctx, []primitive.ObjectID{author})
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}

	return s.join(ctx, posts, []primitive.ObjectID{author})
}

func (s *PostService) Delete(ctx context.Context, user, postID primitive.ObjectID) error {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrPostNotFound
		}
		return fmt.Errorf("getting post: %w", err)
	}
	if post.AuthorID != user {
		return ErrNotPostAuthor
	}

	if err := s.posts.Delete(ctx, postID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrPostNotFound
		}
		return fmt.Errorf("deleting post: %w", err)
	}
	return nil
}

// join resolves the author profile for each post. Authors whose account has
// since disappeared render with an id-only profile rather than dropping the
// post.
func (s *PostService) join(ctx context.Context, posts []models.Post, authors []primitive.ObjectID) ([]models.PostView, error) {
	users, err := s.users.GetMany(ctx, authors)
	if err != nil {
		return nil, fmt.Errorf("loading authors: %w", err)
	}
	profiles := make(map[primitive.ObjectID]models.Profile, len(users))
	for _, u := range users {
		profiles[u.ID] = u.PublicProfile()
	}

	views := make([]models.PostView, 0, len(posts))
	for i := range posts {
		profile, ok := profiles[posts[i].AuthorID]
		if !ok {
			profile = models.Profile{ID: posts[i].AuthorID.Hex(), Name: "Unknown"}
		}
		views = append(views, posts[i].View(profile))
	}
	return views, nil
}
