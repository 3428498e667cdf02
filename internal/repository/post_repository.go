package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/openwave/social-network-api/internal/model"
)

// PostRepo encapsulates queries against the posts table. List queries join
// the author (with role) so responses can render author details without
// extra lookups.
type PostRepo struct{ DB *sql.DB }

func NewPostRepo(db *sql.DB) *PostRepo { return &PostRepo{DB: db} }

const postColumns = "p.id, p.author_id, p.body, COALESCE(p.content_url,''), p.created_at"

const postJoin = "FROM posts p JOIN users u ON u.id = p.author_id JOIN roles r ON r.id = u.role_id"

func scanPost(row interface{ Scan(...any) error }) (*model.Post, error) {
	var (
		p    model.Post
		u    model.User
		role model.Role
	)
	err := row.Scan(&p.ID, &p.AuthorID, &p.Body, &p.ContentURL, &p.CreatedAt,
		&u.ID, &u.Email, &u.Username, &u.ImageURL, &u.PasswordHash, &u.RoleID, &u.CreatedAt,
		&role.ID, &role.Name, &role.Permissions, &role.IsDefault)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	u.Role = &role
	p.Author = &u
	return &p, nil
}

// Create inserts a post and populates its generated id.
func (r *PostRepo) Create(ctx context.Context, p *model.Post) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO posts (author_id, body, content_url) VALUES (?,?,?)",
		p.AuthorID, p.Body, p.ContentURL)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// GetByID fetches a post with its author by id.
func (r *PostRepo) GetByID(ctx context.Context, id uint64) (*model.Post, error) {
	return scanPost(r.DB.QueryRowContext(ctx,
		"SELECT "+postColumns+", "+userColumns+" "+postJoin+" WHERE p.id=? LIMIT 1", id))
}

// List returns all posts, newest first.
func (r *PostRepo) List(ctx context.Context) ([]model.Post, error) {
	return r.list(ctx,
		"SELECT "+postColumns+", "+userColumns+" "+postJoin+" ORDER BY p.created_at DESC")
}

// ListByAuthor returns the posts of one author, newest first.
func (r *PostRepo) ListByAuthor(ctx context.Context, authorID uint64) ([]model.Post, error) {
	return r.list(ctx,
		"SELECT "+postColumns+", "+userColumns+" "+postJoin+
			" WHERE p.author_id=? ORDER BY p.created_at DESC", authorID)
}

// ListFollowed returns the posts authored by every user that followerID
// follows, newest first.
func (r *PostRepo) ListFollowed(ctx context.Context, followerID uint64) ([]model.Post, error) {
	return r.list(ctx,
		"SELECT "+postColumns+", "+userColumns+" "+postJoin+
			" JOIN follows f ON f.following_id = p.author_id"+
			" WHERE f.follower_id=? ORDER BY p.created_at DESC", followerID)
}

// Update stores new body/content values for a post.
func (r *PostRepo) Update(ctx context.Context, p *model.Post) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE posts SET body=?, content_url=? WHERE id=?", p.Body, p.ContentURL, p.ID)
	return err
}

// Delete removes a post together with its comments and likes.
func (r *PostRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM post_likes WHERE post_id=?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM comments WHERE post_id=?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM posts WHERE id=?", id); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *PostRepo) list(ctx context.Context, query string, args ...any) ([]model.Post, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []model.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}
