package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"recipebook/internal/domain"
	"recipebook/internal/repository"
)

type RecipeRepository struct {
	db *sql.DB
}

func NewRecipeRepository(db *sql.DB) repository.RecipeRepository {
	return &RecipeRepository{db: db}
}

func (r *RecipeRepository) Create(ctx context.Context, recipe *domain.Recipe) (int64, error) {
	recipe.CreatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
INSERT INTO recipes (title, instructions, minutes_to_complete, user_id, created_at)
VALUES (?, ?, ?, ?, ?)`,
		recipe.Title,
		recipe.Instructions,
		recipe.MinutesToComplete,
		recipe.UserID,
		recipe.CreatedAt,
	)
	if err != nil {
		switch {
		case isForeignKeyViolation(err):
			return 0, fmt.Errorf("recipe owner %d: %w", recipe.UserID, repository.ErrNotFound)
		case isCheckViolation(err):
			return 0, fmt.Errorf("%w: instructions must be at least %d characters long", domain.ErrValidation, domain.MinInstructionsLength)
		}
		return 0, fmt.Errorf("insert recipe: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("recipe last insert id: %w", err)
	}
	recipe.ID = id
	return id, nil
}

func (r *RecipeRepository) List(ctx context.Context) ([]domain.Recipe, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT r.id, r.title, r.instructions, r.minutes_to_complete, r.user_id, r.created_at,
       u.id, u.username, u.image_url, u.bio, u.created_at
FROM recipes r
JOIN users u ON u.id = r.user_id
ORDER BY r.id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query recipes: %w", err)
	}
	defer rows.Close()

	recipes := []domain.Recipe{}
	for rows.Next() {
		var (
			recipe   domain.Recipe
			owner    domain.User
			imageURL sql.NullString
			bio      sql.NullString
		)
		if err := rows.Scan(
			&recipe.ID,
			&recipe.Title,
			&recipe.Instructions,
			&recipe.MinutesToComplete,
			&recipe.UserID,
			&recipe.CreatedAt,
			&owner.ID,
			&owner.Username,
			&imageURL,
			&bio,
			&owner.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		owner.ImageURL = stringPtr(imageURL)
		owner.Bio = stringPtr(bio)
		recipe.User = &owner
		recipes = append(recipes, recipe)
	}

	return recipes, rows.Err()
}

func (r *RecipeRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM recipes`); err != nil {
		return fmt.Errorf("delete recipes: %w", err)
	}
	return nil
}
