package domain

import (
	"fmt"
	"strings"
	"time"
)

// User represents an account that can sign in and own recipes.
type User struct {
	ID        int64
	Username  string
	Password  Password
	ImageURL  *string
	Bio       *string
	CreatedAt time.Time
}

// NewUser validates the signup fields and hashes rawPassword.
func NewUser(username, rawPassword string, imageURL, bio *string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" || rawPassword == "" {
		return nil, fmt.Errorf("%w: username and password required", ErrValidation)
	}

	user := &User{
		Username: username,
		ImageURL: imageURL,
		Bio:      bio,
	}
	if err := user.Password.Set(rawPassword); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate reports whether rawPassword matches the stored digest.
func (u *User) Authenticate(rawPassword string) bool {
	if u == nil {
		return false
	}
	return u.Password.Matches(rawPassword)
}
