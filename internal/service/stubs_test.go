package service

import (
	"context"

	"recipebook/internal/domain"
)

type stubUserRepo struct {
	createFn        func(ctx context.Context, user *domain.User) (int64, error)
	getByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	getByIDFn       func(ctx context.Context, id int64) (*domain.User, error)
}

func (s *stubUserRepo) Create(ctx context.Context, user *domain.User) (int64, error) {
	return s.createFn(ctx, user)
}

func (s *stubUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.getByUsernameFn(ctx, username)
}

func (s *stubUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.getByIDFn(ctx, id)
}

func (s *stubUserRepo) DeleteAll(context.Context) error { return nil }

type stubRecipeRepo struct {
	createFn func(ctx context.Context, recipe *domain.Recipe) (int64, error)
	listFn   func(ctx context.Context) ([]domain.Recipe, error)
}

func (s *stubRecipeRepo) Create(ctx context.Context, recipe *domain.Recipe) (int64, error) {
	return s.createFn(ctx, recipe)
}

func (s *stubRecipeRepo) List(ctx context.Context) ([]domain.Recipe, error) {
	return s.listFn(ctx)
}

func (s *stubRecipeRepo) DeleteAll(context.Context) error { return nil }
