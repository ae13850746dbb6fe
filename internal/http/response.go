package http

import "recipebook/internal/domain"

// UserResponse is the only shape a user ever takes on the wire.
type UserResponse struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	ImageURL *string `json:"image_url"`
	Bio      *string `json:"bio"`
}

type RecipeResponse struct {
	ID                int64         `json:"id"`
	Title             string        `json:"title"`
	Instructions      string        `json:"instructions"`
	MinutesToComplete int           `json:"minutes_to_complete"`
	User              *UserResponse `json:"user"`
}

func userToResponse(user *domain.User) *UserResponse {
	if user == nil {
		return nil
	}
	return &UserResponse{
		ID:       user.ID,
		Username: user.Username,
		ImageURL: user.ImageURL,
		Bio:      user.Bio,
	}
}

func recipeToResponse(recipe domain.Recipe) RecipeResponse {
	return RecipeResponse{
		ID:                recipe.ID,
		Title:             recipe.Title,
		Instructions:      recipe.Instructions,
		MinutesToComplete: recipe.MinutesToComplete,
		User:              userToResponse(recipe.User),
	}
}
