package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/andresuchdata/mealchain/internal/domain"
)

// RecipeRepository reads recipe definitions.
type RecipeRepository interface {
	// GetRecipe returns the recipe with its ingredient lines, or
	// domain.ErrRecipeNotFound.
	GetRecipe(ctx context.Context, id string) (*domain.Recipe, error)
}

type recipeRepository struct {
	db *sqlx.DB
}

func NewRecipeRepository(db *sqlx.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) GetRecipe(ctx context.Context, id string) (*domain.Recipe, error) {
	var recipe domain.Recipe
	err := r.db.GetContext(ctx, &recipe, r.db.Rebind(`
		SELECT id, name, base_serving_size, prep_time_minutes, cook_time_minutes
		FROM recipes
		WHERE id = ?
	`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("recipe %s: %w", id, domain.ErrRecipeNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("error getting recipe %s: %w", id, err)
	}

	recipe.Ingredients = make([]domain.RecipeIngredient, 0)
	err = r.db.SelectContext(ctx, &recipe.Ingredients, r.db.Rebind(`
		SELECT
			ri.item_id,
			i.name AS item_name,
			i.category,
			i.unit,
			ri.quantity_per_unit,
			i.average_cost
		FROM recipe_ingredients ri
		JOIN inventory_items i ON i.id = ri.item_id
		WHERE ri.recipe_id = ?
		ORDER BY ri.sort_order
	`), id)
	if err != nil {
		return nil, fmt.Errorf("error getting ingredients of recipe %s: %w", id, err)
	}

	return &recipe, nil
}
