package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/openwave/social-network-api/internal/model"
)

// CommentRepo encapsulates queries against the comments table.
type CommentRepo struct{ DB *sql.DB }

func NewCommentRepo(db *sql.DB) *CommentRepo { return &CommentRepo{DB: db} }

const commentColumns = "c.id, c.post_id, c.author_id, c.body, c.created_at"

const commentJoin = "FROM comments c JOIN users u ON u.id = c.author_id JOIN roles r ON r.id = u.role_id"

func scanComment(row interface{ Scan(...any) error }) (*model.Comment, error) {
	var (
		c    model.Comment
		u    model.User
		role model.Role
	)
	err := row.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Body, &c.CreatedAt,
		&u.ID, &u.Email, &u.Username, &u.ImageURL, &u.PasswordHash, &u.RoleID, &u.CreatedAt,
		&role.ID, &role.Name, &role.Permissions, &role.IsDefault)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCommentNotFound
	}
	if err != nil {
		return nil, err
	}
	u.Role = &role
	c.Author = &u
	return &c, nil
}

// Create inserts a comment and populates its generated id.
func (r *CommentRepo) Create(ctx context.Context, c *model.Comment) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO comments (post_id, author_id, body) VALUES (?,?,?)",
		c.PostID, c.AuthorID, c.Body)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return nil
}

// GetByID fetches a comment with its author by id.
func (r *CommentRepo) GetByID(ctx context.Context, id uint64) (*model.Comment, error) {
	return scanComment(r.DB.QueryRowContext(ctx,
		"SELECT "+commentColumns+", "+userColumns+" "+commentJoin+" WHERE c.id=? LIMIT 1", id))
}

// ListByPost returns a post's comments, newest first.
func (r *CommentRepo) ListByPost(ctx context.Context, postID uint64) ([]model.Comment, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+commentColumns+", "+userColumns+" "+commentJoin+
			" WHERE c.post_id=? ORDER BY c.created_at DESC", postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []model.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, *c)
	}
	return comments, rows.Err()
}

// Delete removes a comment by id.
func (r *CommentRepo) Delete(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM comments WHERE id=?", id)
	return err
}
