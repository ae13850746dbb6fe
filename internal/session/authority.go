// Package session binds opaque cookie tokens to signed-in users.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"recipebook/internal/domain"
	"recipebook/internal/repository"
)

// DefaultTTL is used when NewAuthority receives a non-positive ttl.
const DefaultTTL = 7 * 24 * time.Hour

// Authority issues, resolves and terminates sessions. The client only ever
// holds a signed token naming a random session id.
type Authority struct {
	store repository.SessionRepository
	codec *Codec
	ttl   time.Duration
	now   func() time.Time
}

func NewAuthority(store repository.SessionRepository, codec *Codec, ttl time.Duration) *Authority {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Authority{
		store: store,
		codec: codec,
		ttl:   ttl,
		now:   time.Now,
	}
}

// TTL reports how long newly established sessions live.
func (a *Authority) TTL() time.Duration {
	return a.ttl
}

// Establish binds a brand new session to userID and returns its token.
func (a *Authority) Establish(ctx context.Context, userID int64) (string, time.Time, error) {
	now := a.now()
	expiresAt := now.Add(a.ttl)
	id := uuid.NewString()

	if err := a.store.Create(ctx, id, userID, expiresAt); err != nil {
		return "", time.Time{}, fmt.Errorf("establish session: %w", err)
	}
	token, err := a.codec.Encode(id, now, expiresAt)
	if err != nil {
		_ = a.store.Delete(ctx, id)
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// CurrentUserID resolves token to a user id. Missing, forged, expired and
// terminated tokens all yield domain.ErrUnauthorized.
func (a *Authority) CurrentUserID(ctx context.Context, token string) (int64, error) {
	id, err := a.codec.Decode(token)
	if err != nil {
		return 0, domain.ErrUnauthorized
	}
	userID, err := a.store.GetUserID(ctx, id, a.now())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, domain.ErrUnauthorized
		}
		return 0, fmt.Errorf("resolve session: %w", err)
	}
	return userID, nil
}

// Terminate clears the binding behind token. Unknown tokens are ignored.
func (a *Authority) Terminate(ctx context.Context, token string) error {
	id, err := a.codec.Decode(token)
	if err != nil {
		return nil
	}
	if err := a.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("terminate session: %w", err)
	}
	return nil
}

// PurgeExpired removes sessions whose expiry has passed.
func (a *Authority) PurgeExpired(ctx context.Context) (int64, error) {
	return a.store.DeleteExpired(ctx, a.now())
}

// RunJanitor purges expired sessions every interval until ctx is done.
func (a *Authority) RunJanitor(ctx context.Context, interval time.Duration, logger logrus.FieldLogger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := a.PurgeExpired(ctx)
			if err != nil {
				logger.WithError(err).Warn("purge expired sessions")
				continue
			}
			if n > 0 {
				logger.WithField("count", n).Debug("purged expired sessions")
			}
		}
	}
}
