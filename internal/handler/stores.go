// Package handler contains the HTTP handlers. Handlers depend on small
// store interfaces rather than concrete repositories so that tests can
// substitute in-memory stubs; the repository package satisfies every
// interface with its MySQL-backed implementations.
package handler

import (
	"context"
	"time"

	"github.com/openwave/social-network-api/internal/model"
)

// UserStore is the user persistence surface the handlers consume.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id uint64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	UpdateUsername(ctx context.Context, id uint64, username string) error
	UpdateEmail(ctx context.Context, id uint64, email string) error
	UpdateImage(ctx context.Context, id uint64, url string) error
	UpdatePassword(ctx context.Context, id uint64, hash string) error
	Delete(ctx context.Context, id uint64) error
}

// RoleStore resolves roles for the user construction rule.
type RoleStore interface {
	GetByName(ctx context.Context, name string) (*model.Role, error)
	GetDefault(ctx context.Context) (*model.Role, error)
}

// FollowStore is the follow-graph surface.
type FollowStore interface {
	Follow(ctx context.Context, followerID, followingID uint64) error
	Unfollow(ctx context.Context, followerID, followingID uint64) error
	IsFollowing(ctx context.Context, followerID, followingID uint64) (bool, error)
	Followers(ctx context.Context, userID uint64) ([]model.User, error)
	Following(ctx context.Context, userID uint64) ([]model.User, error)
}

// PostStore is the post persistence surface.
type PostStore interface {
	Create(ctx context.Context, p *model.Post) error
	GetByID(ctx context.Context, id uint64) (*model.Post, error)
	List(ctx context.Context) ([]model.Post, error)
	ListByAuthor(ctx context.Context, authorID uint64) ([]model.Post, error)
	ListFollowed(ctx context.Context, followerID uint64) ([]model.Post, error)
	Update(ctx context.Context, p *model.Post) error
	Delete(ctx context.Context, id uint64) error
}

// CommentStore is the comment persistence surface.
type CommentStore interface {
	Create(ctx context.Context, c *model.Comment) error
	GetByID(ctx context.Context, id uint64) (*model.Comment, error)
	ListByPost(ctx context.Context, postID uint64) ([]model.Comment, error)
	Delete(ctx context.Context, id uint64) error
}

// LikeStore is the like persistence surface.
type LikeStore interface {
	Exists(ctx context.Context, userID, postID uint64) (bool, error)
	Add(ctx context.Context, userID, postID uint64) error
	Remove(ctx context.Context, userID, postID uint64) error
	ListByPost(ctx context.Context, postID uint64) ([]model.PostLike, error)
}

// MessageStore is the message persistence surface.
type MessageStore interface {
	Create(ctx context.Context, m *model.Message) error
	GetByID(ctx context.Context, id uint64) (*model.Message, error)
	ListSent(ctx context.Context, userID uint64) ([]model.Message, error)
	ListReceived(ctx context.Context, userID uint64) ([]model.Message, error)
	Conversation(ctx context.Context, a, b uint64) ([]model.Message, error)
	Delete(ctx context.Context, id uint64) error
}

// TokenStore records and answers token revocations.
type TokenStore interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// EventPublisher fans social events out to the message broker. Handlers
// treat publishing as best-effort and never fail a request over it; a nil
// publisher disables events entirely.
type EventPublisher interface {
	PublishFollow(ctx context.Context, follower, followed *model.User) error
	PublishMessage(ctx context.Context, m *model.Message) error
}
