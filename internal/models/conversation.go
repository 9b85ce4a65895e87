package models

import "time"

// Fixed marker texts for conversation summaries.
const (
	ImagePlaceholder  = "[image]"
	NoMessagesContent = "No messages yet"
)

// LastMessage summarizes the newest message in a conversation.
type LastMessage struct {
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	FromMe    bool      `json:"from_me"`
}

// Conversation is the derived per-friend summary the aggregator returns.
// It is recomputed on every request and never persisted. Exactly one entry
// exists per friend; friends without history carry the no-messages marker
// and fall back to the friend's account-creation time for ordering.
type Conversation struct {
	User        Profile     `json:"user"`
	LastMessage LastMessage `json:"last_message"`
	HasMessages bool        `json:"has_messages"`
}
