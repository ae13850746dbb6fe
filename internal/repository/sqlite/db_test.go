package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"recipebook/internal/domain"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(t.Context(), filepath.Join(t.TempDir(), "nested", "recipebook.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func createTestUser(t *testing.T, repo interface {
	Create(ctx context.Context, user *domain.User) (int64, error)
}, username string) *domain.User {
	t.Helper()
	user, err := domain.NewUser(username, "pw12345", nil, nil)
	require.NoError(t, err)
	_, err = repo.Create(t.Context(), user)
	require.NoError(t, err)
	return user
}

func TestOpenIsIdempotent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "recipebook.db")
	first, err := Open(t.Context(), path)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Open(t.Context(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	var fk int
	require.NoError(t, second.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	require.Equal(t, 1, fk)
}

func TestOpenInMemory(t *testing.T) {
	t.Parallel()

	db, err := Open(t.Context(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	createTestUser(t, NewUserRepository(db), "ana")
}
