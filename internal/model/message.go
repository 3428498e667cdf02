package model

import "time"

// Message is a directed message between two users. When a post is shared
// through a message, Shared is true and the SharedPost* fields describe the
// shared content. Messages cannot be edited.
type Message struct {
	ID                 uint64    // messages.id
	SenderID           uint64    // messages.sender_id
	RecipientID        uint64    // messages.recipient_id
	Body               string    // messages.body
	Shared             bool      // messages.shared
	SharedPostPath     string    // messages.shared_post_path
	SharedPostUsername string    // messages.shared_post_username
	CreatedAt          time.Time // messages.created_at

	// Joined usernames for rendering, populated by list queries.
	SenderName    string
	RecipientName string
}
