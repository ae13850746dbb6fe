package repository

import (
	"context"
	"time"
)

// SessionRepository maps opaque session ids to user ids.
type SessionRepository interface {
	Create(ctx context.Context, id string, userID int64, expiresAt time.Time) error
	// GetUserID returns ErrNotFound for unknown or expired sessions.
	GetUserID(ctx context.Context, id string, now time.Time) (int64, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
