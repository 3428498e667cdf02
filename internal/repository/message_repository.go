package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/openwave/social-network-api/internal/model"
)

// MessageRepo encapsulates queries against the messages table. List queries
// join both endpoints' usernames for rendering.
type MessageRepo struct{ DB *sql.DB }

func NewMessageRepo(db *sql.DB) *MessageRepo { return &MessageRepo{DB: db} }

// Messages outlive their endpoints: deleting a user nulls sender_id or
// recipient_id, so both joins are LEFT and the ids and usernames are
// coalesced for scanning.
const messageColumns = `m.id, COALESCE(m.sender_id,0), COALESCE(m.recipient_id,0), m.body, m.shared,
	COALESCE(m.shared_post_path,''), COALESCE(m.shared_post_username,''), m.created_at,
	COALESCE(s.username,''), COALESCE(t.username,'')`

const messageJoin = "FROM messages m LEFT JOIN users s ON s.id = m.sender_id LEFT JOIN users t ON t.id = m.recipient_id"

func scanMessage(row interface{ Scan(...any) error }) (*model.Message, error) {
	var m model.Message
	err := row.Scan(&m.ID, &m.SenderID, &m.RecipientID, &m.Body, &m.Shared,
		&m.SharedPostPath, &m.SharedPostUsername, &m.CreatedAt,
		&m.SenderName, &m.RecipientName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMessageNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserts a message and populates its generated id.
func (r *MessageRepo) Create(ctx context.Context, m *model.Message) error {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO messages (sender_id, recipient_id, body, shared, shared_post_path, shared_post_username)
		VALUES (?,?,?,?,?,?)`,
		m.SenderID, m.RecipientID, m.Body, m.Shared, m.SharedPostPath, m.SharedPostUsername)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return nil
}

// GetByID fetches a message by id.
func (r *MessageRepo) GetByID(ctx context.Context, id uint64) (*model.Message, error) {
	return scanMessage(r.DB.QueryRowContext(ctx,
		"SELECT "+messageColumns+" "+messageJoin+" WHERE m.id=? LIMIT 1", id))
}

// ListSent returns the messages sent by a user, newest first.
func (r *MessageRepo) ListSent(ctx context.Context, userID uint64) ([]model.Message, error) {
	return r.list(ctx,
		"SELECT "+messageColumns+" "+messageJoin+
			" WHERE m.sender_id=? ORDER BY m.created_at DESC", userID)
}

// ListReceived returns the messages received by a user, newest first.
func (r *MessageRepo) ListReceived(ctx context.Context, userID uint64) ([]model.Message, error) {
	return r.list(ctx,
		"SELECT "+messageColumns+" "+messageJoin+
			" WHERE m.recipient_id=? ORDER BY m.created_at DESC", userID)
}

// Conversation returns every message exchanged between two users in
// chronological order.
func (r *MessageRepo) Conversation(ctx context.Context, a, b uint64) ([]model.Message, error) {
	return r.list(ctx,
		"SELECT "+messageColumns+" "+messageJoin+
			" WHERE (m.sender_id=? AND m.recipient_id=?) OR (m.sender_id=? AND m.recipient_id=?)"+
			" ORDER BY m.created_at ASC", a, b, b, a)
}

// Delete removes a message by id.
func (r *MessageRepo) Delete(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM messages WHERE id=?", id)
	return err
}

func (r *MessageRepo) list(ctx context.Context, query string, args ...any) ([]model.Message, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []model.Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, *m)
	}
	return msgs, rows.Err()
}
