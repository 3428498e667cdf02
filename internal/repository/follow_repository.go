package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/openwave/social-network-api/internal/model"
)

// FollowRepo encapsulates queries against the follows edge table. Edges are
// directed: (follower, following) means follower follows following.
type FollowRepo struct{ DB *sql.DB }

func NewFollowRepo(db *sql.DB) *FollowRepo { return &FollowRepo{DB: db} }

// Follow inserts the edge follower -> following. Self-follow is rejected
// here as a hard invariant rather than left to callers. A duplicate edge
// reports ErrAlreadyFollowing, whether detected by the pre-check or by the
// composite primary key when two requests race.
func (r *FollowRepo) Follow(ctx context.Context, followerID, followingID uint64) error {
	if followerID == followingID {
		return ErrSelfFollow
	}
	following, err := r.IsFollowing(ctx, followerID, followingID)
	if err != nil {
		return err
	}
	if following {
		return ErrAlreadyFollowing
	}
	_, err = r.DB.ExecContext(ctx,
		"INSERT INTO follows (follower_id, following_id) VALUES (?,?)",
		followerID, followingID)
	if err != nil && strings.Contains(err.Error(), mysqlDupEntry) {
		return ErrAlreadyFollowing
	}
	return err
}

// Unfollow deletes the edge follower -> following. Deleting a non-existent
// edge reports ErrNotFollowing.
func (r *FollowRepo) Unfollow(ctx context.Context, followerID, followingID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM follows WHERE follower_id=? AND following_id=?",
		followerID, followingID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFollowing
	}
	return nil
}

// IsFollowing reports whether the edge follower -> following exists. An
// unpersisted target (id zero) is never followed.
func (r *FollowRepo) IsFollowing(ctx context.Context, followerID, followingID uint64) (bool, error) {
	if followerID == 0 || followingID == 0 {
		return false, nil
	}
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM follows WHERE follower_id=? AND following_id=? LIMIT 1",
		followerID, followingID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Followers returns the users following userID, resolved through a join.
// No ordering is guaranteed.
func (r *FollowRepo) Followers(ctx context.Context, userID uint64) ([]model.User, error) {
	return r.listEdgeUsers(ctx,
		"SELECT "+userColumns+" "+userJoin+
			" JOIN follows f ON f.follower_id = u.id WHERE f.following_id=?", userID)
}

// Following returns the users that userID follows.
func (r *FollowRepo) Following(ctx context.Context, userID uint64) ([]model.User, error) {
	return r.listEdgeUsers(ctx,
		"SELECT "+userColumns+" "+userJoin+
			" JOIN follows f ON f.following_id = u.id WHERE f.follower_id=?", userID)
}

func (r *FollowRepo) listEdgeUsers(ctx context.Context, query string, userID uint64) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}
