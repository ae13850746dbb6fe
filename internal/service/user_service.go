package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"recipebook/internal/domain"
	"recipebook/internal/repository"
)

// SignupInput carries the fields accepted at signup. Optional fields are nil
// when absent.
type SignupInput struct {
	Username string
	Password string
	ImageURL *string
	Bio      *string
}

// UserService describes user lifecycle operations.
type UserService interface {
	Signup(ctx context.Context, in SignupInput) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

// Signup stores a new user. Username uniqueness is left to the storage
// constraint; a violation comes back as domain.ErrConflict.
func (s *userService) Signup(ctx context.Context, in SignupInput) (*domain.User, error) {
	user, err := domain.NewUser(in.Username, in.Password, in.ImageURL, in.Bio)
	if err != nil {
		return nil, err
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: username already taken", domain.ErrConflict)
		}
		return nil, err
	}

	return sanitizeUser(user), nil
}

func (s *userService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// burn the same bcrypt work so unknown usernames are not faster
			timingPad().Authenticate(password)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.Authenticate(password) {
		return nil, domain.ErrInvalidCredentials
	}

	return sanitizeUser(user), nil
}

func (s *userService) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return sanitizeUser(user), nil
}

var timingPad = sync.OnceValue(func() *domain.User {
	u := &domain.User{}
	_ = u.Password.Set("timing-pad")
	return u
})

// sanitizeUser drops the digest so it cannot travel past the service layer.
func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:        user.ID,
		Username:  user.Username,
		ImageURL:  user.ImageURL,
		Bio:       user.Bio,
		CreatedAt: user.CreatedAt,
	}
}
