package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/thanhng/socialhub/internal/models"
)

// Store contracts consumed by the services. The mongo-backed implementations
// live in internal/store; the service tests substitute in-memory fakes.

type UserStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetMany(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	Insert(ctx context.Context, user *models.User) (primitive.ObjectID, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, update models.ProfileUpdate) error
	AddFriend(ctx context.Context, userID, friendID primitive.ObjectID) (bool, error)
	Search(ctx context.Context, pattern string, exclude []primitive.ObjectID, limit int64) ([]models.User, error)
}

type RequestStore interface {
	PendingExists(ctx context.Context, from, to primitive.ObjectID) (bool, error)
	Insert(ctx context.Context, req *models.FriendRequest) (primitive.ObjectID, error)
	ListPendingFor(ctx context.Context, to primitive.ObjectID) ([]models.FriendRequest, error)
	ListPendingInvolving(ctx context.Context, user primitive.ObjectID) ([]models.FriendRequest, error)
	AcceptPending(ctx context.Context, id, to primitive.ObjectID, at time.Time) (*models.FriendRequest, error)
	ListAccepted(ctx context.Context) ([]models.FriendRequest, error)
}

type PostStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	Insert(ctx context.Context, post *models.Post) (primitive.ObjectID, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	ListByAuthors(ctx context.Context, authors []primitive.ObjectID) ([]models.Post, error)
	AddLike(ctx context.Context, postID, userID primitive.ObjectID) error
	RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) error
	SetReaction(ctx context.Context, postID, userID primitive.ObjectID, kind models.ReactionKind) error
	AppendComment(ctx context.Context, postID primitive.ObjectID, comment models.Comment) error
}

type MessageStore interface {
	Insert(ctx context.Context, msg *models.Message) (primitive.ObjectID, error)
	Between(ctx context.Context, a, b primitive.ObjectID) ([]models.Message, error)
	MarkRead(ctx context.Context, from, to primitive.ObjectID) (int64, error)
	LatestPerPeer(ctx context.Context, user primitive.ObjectID) ([]models.PeerLatest, error)
}

// UserServiceInterface defines the contract for user account operations.
type UserServiceInterface interface {
	Register(ctx context.Context, params models.RegisterParams) (*models.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, update models.ProfileUpdate) error
	ListFriends(ctx context.Context, id primitive.ObjectID) ([]models.FriendProfile, error)
}

// FriendServiceInterface defines the contract for friendship operations.
type FriendServiceInterface interface {
	SendRequest(ctx context.Context, from, to primitive.ObjectID) (*models.FriendRequest, error)
	ListIncoming(ctx context.Context, user primitive.ObjectID) ([]models.IncomingRequest, error)
	Accept(ctx context.Context, user, requestID primitive.ObjectID) (*models.FriendRequest, error)
	Status(ctx context.Context, user, other primitive.ObjectID) (models.FriendshipStatus, error)
	SearchUsers(ctx context.Context, user primitive.ObjectID, query string) ([]models.UserSearchResult, error)
	Reconcile(ctx context.Context) (int, error)
}

// PostServiceInterface defines the contract for post operations.
type PostServiceInterface interface {
	Create(ctx context.Context, author primitive.ObjectID, content, imageURL string) (models.PostView, error)
	Feed(ctx context.Context, user primitive.ObjectID) ([]models.PostView, error)
	ListByUser(ctx context.Context, viewer, author primitive.ObjectID) ([]models.PostView, error)
	Delete(ctx context.Context, user, postID primitive.ObjectID) error
}

// ReactionServiceInterface defines the contract for like and reaction
// operations.
type ReactionServiceInterface interface {
	ToggleLike(ctx context.Context, postID, userID primitive.ObjectID) (bool, error)
	SetReaction(ctx context.Context, postID, userID primitive.ObjectID, kind models.ReactionKind) error
}

// CommentServiceInterface defines the contract for comment operations.
type CommentServiceInterface interface {
	AddComment(ctx context.Context, postID, authorID primitive.ObjectID, content string) (models.CommentView, error)
}

// MessageServiceInterface defines the contract for messaging operations.
type MessageServiceInterface interface {
	Send(ctx context.Context, from, to primitive.ObjectID, content, imageURL string) (models.MessageView, error)
	ListThread(ctx context.Context, user, friend primitive.ObjectID) ([]models.MessageView, error)
	ListConversations(ctx context.Context, user primitive.ObjectID) ([]models.Conversation, error)
}
