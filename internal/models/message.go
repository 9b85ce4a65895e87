package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message is a directed message document. It is immutable except for the
// monotonic read transition (false to true) and is never deleted.
type Message struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	FromUser  primitive.ObjectID `bson:"from_user"`
	ToUser    primitive.ObjectID `bson:"to_user"`
	Content   string             `bson:"content"`
	ImageURL  string             `bson:"image_url"`
	CreatedAt time.Time          `bson:"created_at"`
	Read      bool               `bson:"read"`
}

type MessageView struct {
	ID        string    `json:"id"`
	FromUser  string    `json:"from_user"`
	ToUser    string    `json:"to_user"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
	Read      bool      `json:"read"`
}

// View renders the message with string identifiers.
func (m *Message) View() MessageView {
	return MessageView{
		ID:        m.ID.Hex(),
		FromUser:  m.FromUser.Hex(),
		ToUser:    m.ToUser.Hex(),
		Content:   m.Content,
		ImageURL:  m.ImageURL,
		CreatedAt: m.CreatedAt,
		Read:      m.Read,
	}
}

// PeerLatest pairs a conversation peer with the newest message exchanged
// with them. Produced by the group-max aggregation in the message store.
type PeerLatest struct {
	Peer    primitive.ObjectID `bson:"_id"`
	Message Message            `bson:"last_message"`
}
