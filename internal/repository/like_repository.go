package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/openwave/social-network-api/internal/model"
)

// LikeRepo encapsulates queries against the post_likes table. A like is the
// presence of a (user, post) row; unliking deletes the row.
type LikeRepo struct{ DB *sql.DB }

func NewLikeRepo(db *sql.DB) *LikeRepo { return &LikeRepo{DB: db} }

// Exists reports whether user has liked post.
func (r *LikeRepo) Exists(ctx context.Context, userID, postID uint64) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM post_likes WHERE user_id=? AND post_id=? LIMIT 1",
		userID, postID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Add inserts a like row. The unique (user_id, post_id) index absorbs
// duplicate inserts from racing toggles; those are not an error because the
// end state (liked) is what the caller asked for.
func (r *LikeRepo) Add(ctx context.Context, userID, postID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO post_likes (user_id, post_id) VALUES (?,?)", userID, postID)
	if err != nil && strings.Contains(err.Error(), mysqlDupEntry) {
		return nil
	}
	return err
}

// Remove deletes the like row for (user, post) if present.
func (r *LikeRepo) Remove(ctx context.Context, userID, postID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"DELETE FROM post_likes WHERE user_id=? AND post_id=?", userID, postID)
	return err
}

// ListByPost returns a post's likes with the likers' usernames.
func (r *LikeRepo) ListByPost(ctx context.Context, postID uint64) ([]model.PostLike, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT l.id, l.user_id, l.post_id, u.username
		FROM post_likes l JOIN users u ON u.id = l.user_id WHERE l.post_id=?`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var likes []model.PostLike
	for rows.Next() {
		var l model.PostLike
		if err := rows.Scan(&l.ID, &l.UserID, &l.PostID, &l.Username); err != nil {
			return nil, err
		}
		likes = append(likes, l)
	}
	return likes, rows.Err()
}
