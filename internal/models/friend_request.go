package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusAccepted RequestStatus = "accepted"
)

// FriendRequest is an immutable history record of a friendship proposal.
// It transitions exactly once, pending to accepted, and is never deleted
// or reused. Declining is not modeled.
type FriendRequest struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	FromUser   primitive.ObjectID `bson:"from_user"`
	ToUser     primitive.ObjectID `bson:"to_user"`
	Status     RequestStatus      `bson:"status"`
	CreatedAt  time.Time          `bson:"created_at"`
	AcceptedAt *time.Time         `bson:"accepted_at,omitempty"`
}

// IncomingRequest is a pending request joined with the sender's public profile.
type IncomingRequest struct {
	ID        string    `json:"id"`
	From      Profile   `json:"from_user"`
	CreatedAt time.Time `json:"created_at"`
}

// FriendshipStatus describes the relation from the caller's point of view.
// RequestSent only covers outbound requests; inbound ones are not reported.
type FriendshipStatus struct {
	IsFriend    bool `json:"isFriend"`
	RequestSent bool `json:"requestSent"`
}
