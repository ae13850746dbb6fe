package main

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipebook/internal/domain"
	"recipebook/internal/repository/sqlite"
)

func newSeeder(t *testing.T, db *sql.DB, seed uint64) *Seeder {
	t.Helper()
	logger, _ := test.NewNullLogger()
	return &Seeder{
		Users:   sqlite.NewUserRepository(db),
		Recipes: sqlite.NewRecipeRepository(db),
		Faker:   gofakeit.New(seed),
		Logger:  logger,
	}
}

func TestSeederRun(t *testing.T) {
	t.Parallel()

	db, err := sqlite.Open(t.Context(), filepath.Join(t.TempDir(), "seed.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	summary, err := newSeeder(t, db, 42).Run(t.Context(), Options{Users: 3, Recipes: 12, Password: "securepassword"})
	require.NoError(t, err)
	assert.Equal(t, Summary{Users: 3, Recipes: 12}, summary)

	users := sqlite.NewUserRepository(db)
	rows, err := db.Query(`SELECT username FROM users`)
	require.NoError(t, err)
	var names []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		names = append(names, name)
	}
	require.NoError(t, rows.Err())
	require.NoError(t, rows.Close())
	require.Len(t, names, 3)

	for _, name := range names {
		user, err := users.GetByUsername(t.Context(), name)
		require.NoError(t, err)
		assert.True(t, user.Authenticate("securepassword"))
		assert.NotNil(t, user.Bio)
		assert.NotNil(t, user.ImageURL)
	}

	recipes, err := sqlite.NewRecipeRepository(db).List(t.Context())
	require.NoError(t, err)
	require.Len(t, recipes, 12)
	for _, r := range recipes {
		assert.GreaterOrEqual(t, len([]rune(r.Instructions)), domain.MinInstructionsLength)
		assert.GreaterOrEqual(t, r.MinutesToComplete, minMinutes)
		assert.LessOrEqual(t, r.MinutesToComplete, maxMinutes)
		assert.Contains(t, names, r.User.Username)
	}

	t.Run("rerun replaces everything", func(t *testing.T) {
		_, err := db.Exec(`INSERT INTO sessions (id, user_id, created_at, expires_at) SELECT 'stale', id, CURRENT_TIMESTAMP, 9999999999 FROM users LIMIT 1`)
		require.NoError(t, err)

		_, err = newSeeder(t, db, 7).Run(t.Context(), Options{Users: 2, Recipes: 4, Password: "other"})
		require.NoError(t, err)

		var userCount, recipeCount, sessionCount int
		require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&userCount))
		require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM recipes`).Scan(&recipeCount))
		require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM sessions`).Scan(&sessionCount))
		assert.Equal(t, 2, userCount)
		assert.Equal(t, 4, recipeCount)
		assert.Zero(t, sessionCount)
	})
}

func TestSeederRejectsRecipesWithoutUsers(t *testing.T) {
	t.Parallel()

	db, err := sqlite.Open(t.Context(), filepath.Join(t.TempDir(), "seed.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = newSeeder(t, db, 1).Run(t.Context(), Options{Users: 0, Recipes: 1, Password: "pw"})
	assert.ErrorContains(t, err, "at least one user")
}

func TestUniqueFirstName(t *testing.T) {
	t.Parallel()

	s := &Seeder{Faker: gofakeit.New(3)}
	taken := map[string]struct{}{}
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		name := s.uniqueFirstName(taken, i)
		require.False(t, seen[name], "duplicate %q", name)
		seen[name] = true
	}
}
