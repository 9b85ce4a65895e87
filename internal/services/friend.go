package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/thanhng/socialhub/internal/models"
)

var (
	ErrCannotFriendSelf = errors.New("cannot send friend request to yourself")
	ErrAlreadyFriends   = errors.New("users are already friends")
	ErrRequestExists    = errors.New("friend request already pending")
	ErrRequestNotFound  = errors.New("friend request not found")
)

const searchResultLimit = 10

type FriendService struct {
	users    UserStore
	requests RequestStore
}

func NewFriendService(users UserStore, requests RequestStore) *FriendService {
	return &FriendService{users: users, requests: requests}
}

// SendRequest records a pending friend request from one user to another.
// The duplicate check here is advisory; the partial unique index on pending
// pairs is what actually closes the race, surfacing as a duplicate key error
// on insert.
func (s *FriendService) SendRequest(ctx context.Context, from, to primitive.ObjectID) (*models.FriendRequest, error) {
	if from == to {
		return nil, ErrCannotFriendSelf
	}

	sender, err := s.users.GetByID(ctx, from)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting sender: %w", err)
	}
	if _, err := s.users.GetByID(ctx, to); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting recipient: %w", err)
	}

	if sender.HasFriend(to) {
		return nil, ErrAlreadyFriends
	}

	exists, err := s.requests.PendingExists(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("checking pending request: %w", err)
	}
	if exists {
		return nil, ErrRequestExists
	}

	req := &models.FriendRequest{
		FromUser:  from,
		ToUser:    to,
		Status:    models.RequestStatusPending,
		CreatedAt: time.Now().UTC(),
	}
	id, err := s.requests.Insert(ctx, req)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrRequestExists
		}
		return nil, fmt.Errorf("inserting friend request: %w", err)
	}
	req.ID = id

	return req, nil
}

// ListIncoming returns the pending requests addressed to the user, joined
// with each sender's public profile. Requests whose sender no longer exists
// are omitted.
func (s *FriendService) ListIncoming(ctx context.Context, user primitive.ObjectID) ([]models.IncomingRequest, error) {
	reqs, err := s.requests.ListPendingFor(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("listing pending requests: %w", err)
	}

	senderIDs := make([]primitive.ObjectID, 0, len(reqs))
	for _, r := range reqs {
		senderIDs = append(senderIDs, r.FromUser)
	}
	senders, err := s.users.GetMany(ctx, senderIDs)
	if err != nil {
		return nil, fmt.Errorf("loading senders: %w", err)
	}
	profiles := make(map[primitive.ObjectID]models.Profile, len(senders))
	for _, u := range senders {
		profiles[u.ID] = u.PublicProfile()
	}

	incoming := make([]models.IncomingRequest, 0, len(reqs))
	for _, r := range reqs {
		profile, ok := profiles[r.FromUser]
		if !ok {
			continue
		}
		incoming = append(incoming, models.IncomingRequest{
			ID:        r.ID.Hex(),
			From:      profile,
			CreatedAt: r.CreatedAt,
		})
	}
	return incoming, nil
}

// Accept transitions the request to accepted and inserts the friendship edge
// on both user documents. The transition is a single guarded update, so a
// concurrent duplicate accept loses and reports not found. The two edge
// inserts that follow are idempotent set additions; if the process dies
// between them the pair is left asymmetric until Reconcile repairs it.
func (s *FriendService) Accept(ctx context.Context, user, requestID primitive.ObjectID) (*models.FriendRequest, error) {
	req, err := s.requests.AcceptPending(ctx, requestID, user, time.Now().UTC())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("accepting request: %w", err)
	}

	if _, err := s.users.AddFriend(ctx, req.ToUser, req.FromUser); err != nil {
		return nil, fmt.Errorf("adding friend edge: %w", err)
	}
	if _, err := s.users.AddFriend(ctx, req.FromUser, req.ToUser); err != nil {
		return nil, fmt.Errorf("adding reverse friend edge: %w", err)
	}

	return req, nil
}

// Status reports the relation from the caller's point of view. RequestSent
// covers only requests the caller sent; an inbound pending request does not
// set it.
func (s *FriendService) Status(ctx context.Context, user, other primitive.ObjectID) (models.FriendshipStatus, error) {
	u, err := s.users.GetByID(ctx, user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.FriendshipStatus{}, ErrUserNotFound
		}
		return models.FriendshipStatus{}, fmt.Errorf("getting user: %w", err)
	}

	sent, err := s.requests.PendingExists(ctx, user, other)
	if err != nil {
		return models.FriendshipStatus{}, fmt.Errorf("checking pending request: %w", err)
	}

	return models.FriendshipStatus{
		IsFriend:    u.HasFriend(other),
		RequestSent: sent,
	}, nil
}

// SearchUsers matches the query against names and emails, excluding the
// caller, existing friends and anyone already involved in a pending request
// with the caller.
func (s *FriendService) SearchUsers(ctx context.Context, user primitive.ObjectID, query string) ([]models.UserSearchResult, error) {
	query = strings.TrimSpace(query)
	if len(query) < 2 {
		return []models.UserSearchResult{}, nil
	}

	u, err := s.users.GetByID(ctx, user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}

	pending, err := s.requests.ListPendingInvolving(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("listing pending requests: %w", err)
	}

	exclude := make([]primitive.ObjectID, 0, len(u.Friends)+len(pending)+1)
	exclude = append(exclude, user)
	exclude = append(exclude, u.Friends...)
	for _, r := range pending {
		if r.FromUser == user {
			exclude = append(exclude, r.ToUser)
		} else {
			exclude = append(exclude, r.FromUser)
		}
	}

	matches, err := s.users.Search(ctx, regexp.QuoteMeta(query), exclude, searchResultLimit)
	if err != nil {
		return nil, fmt.Errorf("searching users: %w", err)
	}

	results := make([]models.UserSearchResult, 0, len(matches))
	for _, m := range matches {
		results = append(results, models.UserSearchResult{
			ID:     m.ID.Hex(),
			Name:   m.Name,
			Email:  m.Email,
			Avatar: m.Avatar,
		})
	}
	return results, nil
}

// Reconcile sweeps the accepted requests and re-asserts both friendship
// edges for each. The additions are idempotent, so a clean store is a no-op;
// the return value counts the edges that were actually missing.
func (s *FriendService) Reconcile(ctx context.Context) (int, error) {
	accepted, err := s.requests.ListAccepted(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing accepted requests: %w", err)
	}

	repaired := 0
	for _, r := range accepted {
		added, err := s.users.AddFriend(ctx, r.ToUser, r.FromUser)
		if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			return repaired, fmt.Errorf("repairing friend edge: %w", err)
		}
		if added {
			repaired++
		}
		added, err = s.users.AddFriend(ctx, r.FromUser, r.ToUser)
		if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			return repaired, fmt.Errorf("repairing reverse friend edge: %w", err)
		}
		if added {
			repaired++
		}
	}
	return repaired, nil
}
