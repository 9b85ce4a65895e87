package handlers

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/thanhng/socialhub/internal/models"
)

type mockUserService struct {
	RegisterFunc      func(ctx context.Context, params models.RegisterParams) (*models.User, error)
	GetByIDFunc       func(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	UpdateProfileFunc func(ctx context.Context, id primitive.ObjectID, update models.ProfileUpdate) error
	ListFriendsFunc   func(ctx context.Context, id primitive.ObjectID) ([]models.FriendProfile, error)
}

func (m *mockUserService) Register(ctx context.Context, params models.RegisterParams) (*models.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, params)
	}
	return nil, nil
}

func (m *mockUserService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserService) UpdateProfile(ctx context.Context, id primitive.ObjectID, update models.ProfileUpdate) error {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, id, update)
	}
	return nil
}

func (m *mockUserService) ListFriends(ctx context.Context, id primitive.ObjectID) ([]models.FriendProfile, error) {
	if m.ListFriendsFunc != nil {
		return m.ListFriendsFunc(ctx, id)
	}
	return []models.FriendProfile{}, nil
}

type mockFriendService struct {
	SendRequestFunc func(ctx context.Context, from, to primitive.ObjectID) (*models.FriendRequest, error)
	ListIncomingFunc func(ctx context.Context, user primitive.ObjectID) ([]models.IncomingRequest, error)
	AcceptFunc       func(ctx context.Context, user, requestID primitive.ObjectID) (*models.FriendRequest, error)
	StatusFunc       func(ctx context.Context, user, other primitive.ObjectID) (models.FriendshipStatus, error)
	SearchUsersFunc  func(ctx context.Context, user primitive.ObjectID, query string) ([]models.UserSearchResult, error)
	ReconcileFunc    func(ctx context.Context) (int, error)
}

func (m *mockFriendService) SendRequest(ctx context.Context, from, to primitive.ObjectID) (*models.FriendRequest, error) {
	if m.SendRequestFunc != nil {
		return m.SendRequestFunc(ctx, from, to)
	}
	return nil, nil
}

func (m *mockFriendService) ListIncoming(ctx context.Context, user primitive.ObjectID) ([]models.IncomingRequest, error) {
	if m.ListIncomingFunc != nil {
		return m.ListIncomingFunc(ctx, user)
	}
	return []models.IncomingRequest{}, nil
}

func (m *mockFriendService) Accept(ctx context.Context, user, requestID primitive.ObjectID) (*models.FriendRequest, error) {
	if m.AcceptFunc != nil {
		return m.AcceptFunc(ctx, user, requestID)
	}
	return nil, nil
}

func (m *mockFriendService) Status(ctx context.Context, user, other primitive.ObjectID) (models.FriendshipStatus, error) {
	if m.StatusFunc != nil {
		return m.StatusFunc(ctx, user, other)
	}
	return models.FriendshipStatus{}, nil
}

func (m *mockFriendService) SearchUsers(ctx context.Context, user primitive.ObjectID, query string) ([]models.UserSearchResult, error) {
	if m.SearchUsersFunc != nil {
		return m.SearchUsersFunc(ctx, user, query)
	}
	return []models.UserSearchResult{}, nil
}

func (m *mockFriendService) Reconcile(ctx context.Context) (int, error) {
	if m.ReconcileFunc != nil {
		return m.ReconcileFunc(ctx)
	}
	return 0, nil
}

type mockPostService struct {
	CreateFunc     func(ctx context.Context, author primitive.ObjectID, content, imageURL string) (models.PostView, error)
	FeedFunc       func(ctx context.Context, user primitive.ObjectID) ([]models.PostView, error)
	ListByUserFunc func(ctx context.Context, viewer, author primitive.ObjectID) ([]models.PostView, error)
	DeleteFunc     func(ctx context.Context, user, postID primitive.ObjectID) error
}

func (m *mockPostService) Create(ctx context.Context, author primitive.ObjectID, content, imageURL string) (models.PostView, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, author, content, imageURL)
	}
	return models.PostView{}, nil
}

func (m *mockPostService) Feed(ctx context.Context, user primitive.ObjectID) ([]models.PostView, error) {
	if m.FeedFunc != nil {
		return m.FeedFunc(ctx, user)
	}
	return []models.PostView{}, nil
}

func (m *mockPostService) ListByUser(ctx context.Context, viewer, author primitive.ObjectID) ([]models.PostView, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, viewer, author)
	}
	return []models.PostView{}, nil
}

func (m *mockPostService) Delete(ctx context.Context, user, postID primitive.ObjectID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, user, postID)
	}
	return nil
}

type mockReactionService struct {
	ToggleLikeFunc  func(ctx context.Context, postID, userID primitive.ObjectID) (bool, error)
	SetReactionFunc func(ctx context.Context, postID, userID primitive.ObjectID, kind models.ReactionKind) error
}

func (m *mockReactionService) ToggleLike(ctx context.Context, postID, userID primitive.ObjectID) (bool, error) {
	if m.ToggleLikeFunc != nil {
		return m.ToggleLikeFunc(ctx, postID, userID)
	}
	return false, nil
}

func (m *mockReactionService) SetReaction(ctx context.Context, postID, userID primitive.ObjectID, kind models.ReactionKind) error {
	if m.SetReactionFunc != nil {
		return m.SetReactionFunc(ctx, postID, userID, kind)
	}
	return nil
}

type mockCommentService struct {
	AddCommentFunc func(ctx context.Context, postID, authorID primitive.ObjectID, content string) (models.CommentView, error)
}

func (m *mockCommentService) AddComment(ctx context.Context, postID, authorID primitive.ObjectID, content string) (models.CommentView, error) {
	if m.AddCommentFunc != nil {
		return m.AddCommentFunc(ctx, postID, authorID, content)
	}
	return models.CommentView{}, nil
}

type mockMessageService struct {
	SendFunc              func(ctx context.Context, from, to primitive.ObjectID, content, imageURL string) (models.MessageView, error)
	ListThreadFunc        func(ctx context.Context, user, friend primitive.ObjectID) ([]models.MessageView, error)
	ListConversationsFunc func(ctx context.Context, user primitive.ObjectID) ([]models.Conversation, error)
}

func (m *mockMessageService) Send(ctx context.Context, from, to primitive.ObjectID, content, imageURL string) (models.MessageView, error) {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, from, to, content, imageURL)
	}
	return models.MessageView{}, nil
}

func (m *mockMessageService) ListThread(ctx context.Context, user, friend primitive.ObjectID) ([]models.MessageView, error) {
	if m.ListThreadFunc != nil {
		return m.ListThreadFunc(ctx, user, friend)
	}
	return []models.MessageView{}, nil
}

func (m *mockMessageService) ListConversations(ctx context.Context, user primitive.ObjectID) ([]models.Conversation, error) {
	if m.ListConversationsFunc != nil {
		return m.ListConversationsFunc(ctx, user)
	}
	return []models.Conversation{}, nil
}
