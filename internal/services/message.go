package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/thanhng/socialhub/internal/models"
)

var (
	ErrEmptyMessage = errors.New("message content is required")
	ErrNotFriends   = errors.New("users are not friends")
)

type MessageService struct {
	users    UserStore
	messages MessageStore
}

func NewMessageService(users UserStore, messages MessageStore) *MessageService {
	return &MessageService{users: users, messages: messages}
}

// Send records a message to a friend. A message needs text or an image;
// messaging is restricted to the sender's friends.
func (s *MessageService) Send(ctx context.Context, from, to primitive.ObjectID, content, imageURL string) (models.MessageView, error) {
	content = strings.TrimSpace(content)
	if content == "" && imageURL == "" {
		return models.MessageView{}, ErrEmptyMessage
	}

	sender, err := s.users.GetByID(ctx, from)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.MessageView{}, ErrUserNotFound
		}
		return models.MessageView{}, fmt.Errorf("getting sender: %w", err)
	}
	if !sender.HasFriend(to) {
		return models.MessageView{}, ErrNotFriends
	}

	msg := &models.Message{
		FromUser:  from,
		ToUser:    to,
		Content:   content,
		ImageURL:  imageURL,
		CreatedAt: time.Now().UTC(),
		Read:      false,
	}
	id, err := s.messages.Insert(ctx, msg)
	if err != nil {
		return models.MessageView{}, fmt.Errorf("inserting message: %w", err)
	}
	msg.ID = id

	return msg.View(), nil
}

// ListThread returns the full history with a friend, oldest first, and marks
// the friend's unread messages as read. Fetching a thread is deliberately a
// read with a side effect; the returned snapshot shows the messages as they
// were when fetched.
func (s *MessageService) ListThread(ctx context.Context, user, friend primitive.ObjectID) ([]models.MessageView, error) {
	u, err := s.users.GetByID(ctx, user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}
	if !u.HasFriend(friend) {
		return nil, ErrNotFriends
	}

	msgs, err := s.messages.Between(ctx, user, friend)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}

	if _, err := s.messages.MarkRead(ctx, friend, user); err != nil {
		return nil, fmt.Errorf("marking messages read: %w", err)
	}

	views := make([]models.MessageView, 0, len(msgs))
	for i := range msgs {
		views = append(views, msgs[i].View())
	}
	return views, nil
}

// ListConversations builds the per-friend summary: exactly one entry per
// friend, carrying the newest message exchanged with them or a no-messages
// marker. Entries with history sort by message recency, newest first;
// the rest follow, ordered by the friend's account age.
func (s *MessageService) ListConversations(ctx context.Context, user primitive.ObjectID) ([]models.Conversation, error) {
	u, err := s.users.GetByID(ctx, user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}
	if len(u.Friends) == 0 {
		return []models.Conversation{}, nil
	}

	latest, err := s.messages.LatestPerPeer(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("aggregating conversations: %w", err)
	}
	byPeer := make(map[primitive.ObjectID]models.Message, len(latest))
	for _, l := range latest {
		byPeer[l.Peer] = l.Message
	}

	friends, err := s.users.GetMany(ctx, u.Friends)
	if err != nil {
		return nil, fmt.Errorf("loading friends: %w", err)
	}

	convs := make([]models.Conversation, 0, len(friends))
	for _, f := range friends {
		conv := models.Conversation{User: f.PublicProfile()}
		if msg, ok := byPeer[f.ID]; ok {
			content := msg.Content
			if content == "" && msg.ImageURL != "" {
				content = models.ImagePlaceholder
			}
			conv.LastMessage = models.LastMessage{
				Content:   content,
				CreatedAt: msg.CreatedAt,
				FromMe:    msg.FromUser == user,
			}
			conv.HasMessages = true
		} else {
			conv.LastMessage = models.LastMessage{
				Content:   models.NoMessagesContent,
				CreatedAt: f.CreatedAt,
			}
		}
		convs = append(convs, conv)
	}

	sort.SliceStable(convs, func(i, j int) bool {
		if convs[i].HasMessages != convs[j].HasMessages {
			return convs[i].HasMessages
		}
		return convs[i].LastMessage.CreatedAt.After(convs[j].LastMessage.CreatedAt)
	})

	return convs, nil
}
