package storage

import (
	"context"
	"fmt"

	"github.com/rpggio/deepwork/internal/domain/session"
)

var _ session.Repository = (*SessionRepository)(nil)

// SessionRepository implements session.Repository over deep_work_sessions
type SessionRepository struct {
	db *DB
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a session and fills in its storage-assigned ID. The
// timestamp is stored as UTC.
func (r *SessionRepository) Create(ctx context.Context, sess *session.Session) error {
	query := r.db.rebind(`
		INSERT INTO deep_work_sessions (timestamp, name, buddy, task)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`)

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		sess.Timestamp.UTC(),
		sess.Name,
		sess.Buddy,
		sess.Task,
	).Scan(&id)
	if err != nil {
		return classify("failed to create session", err)
	}

	sess.ID = id
	return nil
}

// List returns every stored session. Timestamps come back in UTC.
func (r *SessionRepository) List(ctx context.Context, opts session.ListOptions) ([]session.Session, error) {
	query := `SELECT id, timestamp, name, buddy, task FROM deep_work_sessions`
	if opts.NewestFirst {
		query += " ORDER BY timestamp DESC, id DESC"
	}

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, classify("failed to list sessions", err)
	}
	defer rows.Close()

	sessions := []session.Session{}
	for rows.Next() {
		var sess session.Session
		if err := rows.Scan(
			&sess.ID,
			&sess.Timestamp,
			&sess.Name,
			&sess.Buddy,
			&sess.Task,
		); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sess.Timestamp = sess.Timestamp.UTC()
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, classify("error iterating session rows", err)
	}

	return sessions, nil
}

// Ping runs a trivial query to confirm the database answers
func (r *SessionRepository) Ping(ctx context.Context) error {
	var one int
	if err := r.db.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return classify("database connection check failed", err)
	}
	return nil
}
