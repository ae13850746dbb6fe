package repository

import (
	"context"

	"recipebook/internal/domain"
)

// RecipeRepository exposes persistence operations for recipes. Listed
// recipes come back with their owner populated.
type RecipeRepository interface {
	Create(ctx context.Context, recipe *domain.Recipe) (int64, error)
	List(ctx context.Context) ([]domain.Recipe, error)
	DeleteAll(ctx context.Context) error
}
