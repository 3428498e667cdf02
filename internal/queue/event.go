// Package queue defines the payloads exchanged over the message broker
// and the background consumer that drains them.
package queue

// SocialQueueName is the durable queue every social event goes through.
const SocialQueueName = "social.events"

// FollowEvent is published when a follow edge is created. It carries the
// names alongside the ids so downstream consumers can log without
// querying the primary database.
type FollowEvent struct {
	FollowerID   uint64 `json:"follower_id"`
	FollowerName string `json:"follower_name"`
	FollowedID   uint64 `json:"followed_id"`
	FollowedName string `json:"followed_name"`
	FollowedAt   string `json:"followed_at"`
}

// MessageEvent is published when a direct message is stored. The body is
// deliberately omitted; consumers see metadata only.
type MessageEvent struct {
	MessageID   uint64 `json:"message_id"`
	SenderID    uint64 `json:"sender_id"`
	RecipientID uint64 `json:"recipient_id"`
	Shared      bool   `json:"shared"`
	SentAt      string `json:"sent_at"`
}
