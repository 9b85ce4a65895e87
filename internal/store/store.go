// Package store implements typed adapters over the MongoDB collections.
// Every method maps to a single driver call, so callers get exactly the
// per-document atomicity the database provides and nothing more: there are
// no multi-document transactions here. Missing documents surface as
// mongo.ErrNoDocuments; services translate that into domain errors.
package store

import (
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	usersCollection    = "users"
	requestsCollection = "friends"
	postsCollection    = "posts"
	messagesCollection = "messages"
)

// Store bundles the collection adapters.
type Store struct {
	Users    *UserStore
	Requests *RequestStore
	Posts    *PostStore
	Messages *MessageStore
}

func New(db *mongo.Database) *Store {
	return &Store{
		Users:    &UserStore{c: db.Collection(usersCollection)},
		Requests: &RequestStore{c: db.Collection(requestsCollection)},
		Posts:    &PostStore{c: db.Collection(postsCollection)},
		Messages: &MessageStore{c: db.Collection(messagesCollection)},
	}
}
