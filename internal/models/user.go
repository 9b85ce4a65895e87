package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the persisted user document. The friends set is symmetric by
// convention: the friend service is the only writer, and it always inserts
// both directions. No other component may touch it.
type User struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty"`
	Name         string               `bson:"name"`
	Email        string               `bson:"email"`
	PasswordHash string               `bson:"password"`
	Avatar       string               `bson:"avatar"`
	Bio          string               `bson:"bio"`
	CreatedAt    time.Time            `bson:"created_at"`
	Friends      []primitive.ObjectID `bson:"friends"`
}

// HasFriend reports whether id is in the user's friends set.
func (u *User) HasFriend(id primitive.ObjectID) bool {
	for _, f := range u.Friends {
		if f == id {
			return true
		}
	}
	return false
}

// Profile is the public snapshot of a user embedded in joined views.
type Profile struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// PublicProfile builds the public snapshot for joins.
func (u *User) PublicProfile() Profile {
	return Profile{
		ID:     u.ID.Hex(),
		Name:   u.Name,
		Avatar: u.Avatar,
	}
}

// UserView is the full profile exposed to the owner and to friends.
type UserView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar"`
	Bio       string    `json:"bio"`
	CreatedAt time.Time `json:"created_at"`
	Friends   []string  `json:"friends"`
}

// View renders the user with opaque string identifiers.
func (u *User) View() UserView {
	friends := make([]string, 0, len(u.Friends))
	for _, f := range u.Friends {
		friends = append(friends, f.Hex())
	}
	return UserView{
		ID:        u.ID.Hex(),
		Name:      u.Name,
		Email:     u.Email,
		Avatar:    u.Avatar,
		Bio:       u.Bio,
		CreatedAt: u.CreatedAt,
		Friends:   friends,
	}
}

// FriendProfile is a friends-list entry: the public snapshot plus email.
type FriendProfile struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Email  string `json:"email"`
}

// UserSearchResult is a roster-search hit.
type UserSearchResult struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

// RegisterParams carries the input for user provisioning.
type RegisterParams struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Avatar   string `json:"avatar"`
}

// ProfileUpdate carries the mutable profile fields; nil means unchanged.
type ProfileUpdate struct {
	Name   *string
	Bio    *string
	Avatar *string
}
