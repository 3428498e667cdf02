package model

import "time"

// Post is a user-authored post. Deleting the author cascades to their
// posts, and deleting a post cascades to its comments and likes.
type Post struct {
	ID         uint64    // posts.id
	AuthorID   uint64    // posts.author_id
	Body       string    // posts.body
	ContentURL string    // posts.content_url (optional attachment)
	CreatedAt  time.Time // posts.created_at
	Author     *User     // joined author row, nil if not loaded
}

// Comment is attached to exactly one post. Creating one requires the
// commenter to follow the post's author or to be the author.
type Comment struct {
	ID        uint64    // comments.id
	PostID    uint64    // comments.post_id
	AuthorID  uint64    // comments.author_id
	Body      string    // comments.body
	CreatedAt time.Time // comments.created_at
	Author    *User     // joined author row, nil if not loaded
}

// PostLike marks that a user likes a post. At most one row exists per
// (user, post) pair; liking again removes the row.
type PostLike struct {
	ID       uint64 // post_likes.id
	UserID   uint64 // post_likes.user_id
	PostID   uint64 // post_likes.post_id
	Username string // joined users.username of the liker
}
