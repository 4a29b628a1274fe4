package domain

import "errors"

var (
	// ErrInvalidRequest marks caller input that fails validation.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrRecipeNotFound is returned when the recipe store has no such recipe.
	ErrRecipeNotFound = errors.New("recipe not found")
	// ErrInvalidRecipe marks a stored recipe that cannot be scaled.
	ErrInvalidRecipe = errors.New("invalid recipe")
)
