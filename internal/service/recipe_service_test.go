package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipebook/internal/domain"
	"recipebook/internal/repository"
)

var fiftyChars = strings.Repeat("x", domain.MinInstructionsLength)

func TestRecipeService_Create(t *testing.T) {
	t.Parallel()

	owner := storedUser(t, 3, "ana", "pw12345")
	users := &stubUserRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.User, error) {
			if id == owner.ID {
				return owner, nil
			}
			return nil, repository.ErrNotFound
		},
	}
	var saved *domain.Recipe
	recipes := &stubRecipeRepo{
		createFn: func(ctx context.Context, recipe *domain.Recipe) (int64, error) {
			saved = recipe
			recipe.ID = 10
			return 10, nil
		},
	}
	svc := NewRecipeService(recipes, users)

	recipe, err := svc.Create(t.Context(), owner.ID, "Soup", fiftyChars, 25)
	require.NoError(t, err)
	assert.Equal(t, int64(10), recipe.ID)
	assert.Equal(t, owner.ID, recipe.UserID)
	require.NotNil(t, recipe.User)
	assert.Equal(t, "ana", recipe.User.Username)
	assert.False(t, recipe.User.Password.IsSet())
	assert.Same(t, saved, recipe)

	t.Run("invalid data never reaches storage", func(t *testing.T) {
		saved = nil
		_, err := svc.Create(t.Context(), owner.ID, "Soup", fiftyChars[1:], 25)
		require.ErrorIs(t, err, domain.ErrValidation)
		_, err = svc.Create(t.Context(), owner.ID, "", fiftyChars, 25)
		require.ErrorIs(t, err, domain.ErrValidation)
		assert.Nil(t, saved)
	})

	t.Run("vanished owner", func(t *testing.T) {
		_, err := svc.Create(t.Context(), 99, "Soup", fiftyChars, 25)
		require.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

func TestRecipeService_CreateStorageErrors(t *testing.T) {
	t.Parallel()

	owner := storedUser(t, 3, "ana", "pw12345")
	users := &stubUserRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.User, error) { return owner, nil },
	}

	ownerGone := NewRecipeService(&stubRecipeRepo{
		createFn: func(ctx context.Context, recipe *domain.Recipe) (int64, error) {
			return 0, repository.ErrNotFound
		},
	}, users)
	_, err := ownerGone.Create(t.Context(), owner.ID, "Soup", fiftyChars, 25)
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	wantErr := errors.New("disk full")
	failing := NewRecipeService(&stubRecipeRepo{
		createFn: func(ctx context.Context, recipe *domain.Recipe) (int64, error) {
			return 0, wantErr
		},
	}, users)
	_, err = failing.Create(t.Context(), owner.ID, "Soup", fiftyChars, 25)
	require.ErrorIs(t, err, wantErr)
}

func TestRecipeService_List(t *testing.T) {
	t.Parallel()

	owner := storedUser(t, 3, "ana", "pw12345")
	recipes := &stubRecipeRepo{
		listFn: func(ctx context.Context) ([]domain.Recipe, error) {
			return []domain.Recipe{{ID: 1, Title: "Soup", UserID: 3, User: owner}}, nil
		},
	}

	list, err := NewRecipeService(recipes, &stubUserRepo{}).List(t.Context())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "ana", list[0].User.Username)
	assert.False(t, list[0].User.Password.IsSet())

	wantErr := errors.New("boom")
	failing := &stubRecipeRepo{
		listFn: func(ctx context.Context) ([]domain.Recipe, error) { return nil, wantErr },
	}
	_, err = NewRecipeService(failing, &stubUserRepo{}).List(t.Context())
	require.ErrorIs(t, err, wantErr)
}
