package service

import (
	"context"
	"errors"

	"recipebook/internal/domain"
	"recipebook/internal/repository"
)

// RecipeService lists and creates recipes on behalf of a signed-in user.
type RecipeService interface {
	List(ctx context.Context) ([]domain.Recipe, error)
	Create(ctx context.Context, ownerID int64, title, instructions string, minutesToComplete int) (*domain.Recipe, error)
}

type recipeService struct {
	recipes repository.RecipeRepository
	users   repository.UserRepository
}

func NewRecipeService(recipes repository.RecipeRepository, users repository.UserRepository) RecipeService {
	return &recipeService{
		recipes: recipes,
		users:   users,
	}
}

func (s *recipeService) List(ctx context.Context) ([]domain.Recipe, error) {
	recipes, err := s.recipes.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range recipes {
		recipes[i].User = sanitizeUser(recipes[i].User)
	}
	return recipes, nil
}

// Create validates before touching storage. ownerID must come from the
// caller's session; an owner that no longer exists is treated as no session.
func (s *recipeService) Create(ctx context.Context, ownerID int64, title, instructions string, minutesToComplete int) (*domain.Recipe, error) {
	if err := domain.ValidateRecipe(title, instructions, minutesToComplete); err != nil {
		return nil, err
	}

	owner, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}

	recipe, err := domain.NewRecipe(sanitizeUser(owner), title, instructions, minutesToComplete)
	if err != nil {
		return nil, err
	}
	if _, err := s.recipes.Create(ctx, recipe); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	return recipe, nil
}
