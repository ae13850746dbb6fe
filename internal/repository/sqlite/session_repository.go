package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"recipebook/internal/repository"
)

// SessionRepository keeps session bindings in the sessions table. Expiry is
// stored as unix seconds.
type SessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) repository.SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, id string, userID int64, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO sessions (id, user_id, created_at, expires_at)
VALUES (?, ?, ?, ?)`,
		id,
		userID,
		time.Now().UTC(),
		expiresAt.Unix(),
	)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return fmt.Errorf("session: %w", repository.ErrDuplicate)
		case isForeignKeyViolation(err):
			return fmt.Errorf("session user %d: %w", userID, repository.ErrNotFound)
		}
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *SessionRepository) GetUserID(ctx context.Context, id string, now time.Time) (int64, error) {
	var (
		userID    int64
		expiresAt int64
	)
	err := r.db.QueryRowContext(ctx, `
SELECT user_id, expires_at
FROM sessions
WHERE id = ?`,
		id,
	).Scan(&userID, &expiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, repository.ErrNotFound
		}
		return 0, fmt.Errorf("scan session: %w", err)
	}
	if expiresAt <= now.Unix() {
		return 0, repository.ErrNotFound
	}
	return userID, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= ?`, now.Unix())
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("expired sessions rows affected: %w", err)
	}
	return aff, nil
}
