package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"recipebook/internal/repository"
)

const keyPrefix = "session:"

// SessionRepository stores session bindings as plain keys whose TTL matches
// the session expiry. Key format: session:<id>
type SessionRepository struct {
	client redis.Cmdable
}

func NewSessionRepository(client redis.Cmdable) repository.SessionRepository {
	return &SessionRepository{client: client}
}

func (r *SessionRepository) Create(ctx context.Context, id string, userID int64, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session expiry %s is in the past", expiresAt.Format(time.RFC3339))
	}
	ok, err := r.client.SetNX(ctx, sessionKey(id), strconv.FormatInt(userID, 10), ttl).Result()
	if err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	if !ok {
		return fmt.Errorf("session: %w", repository.ErrDuplicate)
	}
	return nil
}

func (r *SessionRepository) GetUserID(ctx context.Context, id string, _ time.Time) (int64, error) {
	v, err := r.client.Get(ctx, sessionKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, repository.ErrNotFound
		}
		return 0, fmt.Errorf("load session: %w", err)
	}
	userID, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse session user id: %w", err)
	}
	return userID, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpired is a no-op; Redis evicts expired keys itself.
func (r *SessionRepository) DeleteExpired(context.Context, time.Time) (int64, error) {
	return 0, nil
}

func sessionKey(id string) string {
	return keyPrefix + id
}
