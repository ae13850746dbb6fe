package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// MinInstructionsLength is the shortest accepted instructions text, in characters.
const MinInstructionsLength = 50

// Recipe is a set of cooking instructions owned by exactly one user.
type Recipe struct {
	ID                int64
	Title             string
	Instructions      string
	MinutesToComplete int
	UserID            int64
	User              *User
	CreatedAt         time.Time
}

// NewRecipe builds a recipe owned by owner. Every construction path goes
// through here so the instructions rule cannot be bypassed.
func NewRecipe(owner *User, title, instructions string, minutesToComplete int) (*Recipe, error) {
	if owner == nil || owner.ID <= 0 {
		return nil, fmt.Errorf("%w: recipe owner is required", ErrValidation)
	}
	if err := ValidateRecipe(title, instructions, minutesToComplete); err != nil {
		return nil, err
	}
	return &Recipe{
		Title:             strings.TrimSpace(title),
		Instructions:      instructions,
		MinutesToComplete: minutesToComplete,
		UserID:            owner.ID,
		User:              owner,
	}, nil
}

// ValidateRecipe checks the user supplied recipe fields.
func ValidateRecipe(title, instructions string, minutesToComplete int) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if instructions == "" {
		return fmt.Errorf("%w: instructions are required", ErrValidation)
	}
	if utf8.RuneCountInString(instructions) < MinInstructionsLength {
		return fmt.Errorf("%w: instructions must be at least %d characters long", ErrValidation, MinInstructionsLength)
	}
	if minutesToComplete < 0 {
		return fmt.Errorf("%w: minutes to complete must not be negative", ErrValidation)
	}
	return nil
}
