package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/openwave/social-network-api/internal/model"
)

// UserRepo encapsulates queries against the users table. All single-row
// lookups join the roles table so that permission checks on the returned
// user never need a second query.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = `u.id, u.email, u.username, COALESCE(u.user_image_url,''), u.password_hash, u.role_id, u.created_at,
	r.id, r.name, r.permissions, r.is_default`

const userJoin = "FROM users u JOIN roles r ON r.id = u.role_id"

func scanUser(row interface{ Scan(...any) error }) (*model.User, error) {
	var (
		u    model.User
		role model.Role
	)
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.ImageURL, &u.PasswordHash, &u.RoleID, &u.CreatedAt,
		&role.ID, &role.Name, &role.Permissions, &role.IsDefault)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	u.Role = &role
	return &u, nil
}

// Create inserts a user row. The caller supplies the already-hashed
// password and the role decided by the construction rule (admin email gets
// the Administrator role, everyone else the default role). The email is
// normalized to lower case so uniqueness is case-insensitive.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, username, password_hash, user_image_url, role_id) VALUES (?,?,?,?,?)",
		u.Email, u.Username, u.PasswordHash, u.ImageURL, u.RoleID)
	if err != nil {
		if strings.Contains(err.Error(), mysqlDupEntry) {
			if strings.Contains(err.Error(), "username") {
				return ErrUsernameExists
			}
			return ErrEmailExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = uint64(id)
	return nil
}

// GetByID fetches a user with its role by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" "+userJoin+" WHERE u.id=? LIMIT 1", id))
}

// GetByEmail fetches a user with its role by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" "+userJoin+" WHERE u.email=? LIMIT 1", email))
}

// GetByUsername fetches a user with its role by username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" "+userJoin+" WHERE u.username=? LIMIT 1", username))
}

// List returns all users with their roles. No ordering is guaranteed.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT "+userColumns+" "+userJoin)
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

// UpdateUsername changes a user's username. Uniqueness violations are
// reported as ErrUsernameExists.
func (r *UserRepo) UpdateUsername(ctx context.Context, id uint64, username string) error {
	_, err := r.DB.ExecContext(ctx, "UPDATE users SET username=? WHERE id=?", username, id)
	if err != nil && strings.Contains(err.Error(), mysqlDupEntry) {
		return ErrUsernameExists
	}
	return err
}

// UpdateEmail changes a user's email, normalized to lower case.
func (r *UserRepo) UpdateEmail(ctx context.Context, id uint64, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	_, err := r.DB.ExecContext(ctx, "UPDATE users SET email=? WHERE id=?", email, id)
	if err != nil && strings.Contains(err.Error(), mysqlDupEntry) {
		return ErrEmailExists
	}
	return err
}

// UpdateImage changes a user's profile image reference.
func (r *UserRepo) UpdateImage(ctx context.Context, id uint64, url string) error {
	_, err := r.DB.ExecContext(ctx, "UPDATE users SET user_image_url=? WHERE id=?", url, id)
	return err
}

// UpdatePassword stores a new password hash for the user.
func (r *UserRepo) UpdatePassword(ctx context.Context, id uint64, hash string) error {
	_, err := r.DB.ExecContext(ctx, "UPDATE users SET password_hash=? WHERE id=?", hash, id)
	return err
}

// Delete removes a user and everything they own in one transaction: likes
// (their own plus likes on their posts), comments (same), posts, follow
// edges in both directions, and finally the user row. Messages are kept;
// their sender_id/recipient_id foreign keys are declared ON DELETE SET NULL
// so the final user delete nulls them instead of failing. Orphaned social
// edges must never survive the deletion.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM post_likes WHERE user_id=? OR post_id IN (SELECT id FROM posts WHERE author_id=?)",
		id, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM comments WHERE author_id=? OR post_id IN (SELECT id FROM posts WHERE author_id=?)",
		id, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM posts WHERE author_id=?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM follows WHERE follower_id=? OR following_id=?", id, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM users WHERE id=?", id); err != nil {
		return err
	}
	return tx.Commit()
}
