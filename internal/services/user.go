package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/thanhng/socialhub/internal/models"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrEmailTaken    = errors.New("email already registered")
	ErrMissingFields = errors.New("name, email and password are required")
	ErrEmptyUpdate   = errors.New("no profile fields to update")
)

type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

func (s *UserService) Register(ctx context.Context, params models.RegisterParams) (*models.User, error) {
	name := strings.TrimSpace(params.Name)
	email := strings.ToLower(strings.TrimSpace(params.Email))
	if name == "" || email == "" || params.Password == "" {
		return nil, ErrMissingFields
	}

	// Advisory check; the unique index on email settles concurrent signups.
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("checking email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Avatar:       params.Avatar,
		CreatedAt:    time.Now().UTC(),
		Friends:      []primitive.ObjectID{},
	}

	id, err := s.users.Insert(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("inserting user: %w", err)
	}
	user.ID = id

	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, id primitive.ObjectID, update models.ProfileUpdate) error {
	if update.Name == nil && update.Bio == nil && update.Avatar == nil {
		return ErrEmptyUpdate
	}
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return ErrMissingFields
	}

	if err := s.users.UpdateProfile(ctx, id, update); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}
		return fmt.Errorf("updating profile: %w", err)
	}
	return nil
}

// ListFriends resolves the user's friends set to profiles. Ids whose account
// no longer exists are silently omitted.
func (s *UserService) ListFriends(ctx context.Context, id primitive.ObjectID) ([]models.FriendProfile, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	friends, err := s.users.GetMany(ctx, user.Friends)
	if err != nil {
		return nil, fmt.Errorf("loading friends: %w", err)
	}

	profiles := make([]models.FriendProfile, 0, len(friends))
	for _, f := range friends {
		profiles = append(profiles, models.FriendProfile{
			ID:     f.ID.Hex(),
			Name:   f.Name,
			Avatar: f.Avatar,
			Email:  f.Email,
		})
	}
	return profiles, nil
}
