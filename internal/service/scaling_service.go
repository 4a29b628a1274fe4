package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/andresuchdata/mealchain/internal/domain"
	"github.com/andresuchdata/mealchain/internal/repository"
	"github.com/andresuchdata/mealchain/internal/scaling"
)

type ScalingService struct {
	recipes   repository.RecipeRepository
	inventory repository.InventoryRepository
}

func NewScalingService(recipes repository.RecipeRepository, inventory repository.InventoryRepository) *ScalingService {
	return &ScalingService{recipes: recipes, inventory: inventory}
}

// Scale previews a batch of the recipe at the target yield. Insufficient
// stock is reported in the response, not as an error.
func (s *ScalingService) Scale(ctx context.Context, req domain.ScalingRequest) (*domain.ScalingResponse, error) {
	recipeID := strings.TrimSpace(req.RecipeID)
	if recipeID == "" {
		return nil, fmt.Errorf("recipeId is required: %w", domain.ErrInvalidRequest)
	}
	if req.TargetPortions <= 0 {
		return nil, fmt.Errorf("targetPortions must be positive, got %d: %w", req.TargetPortions, domain.ErrInvalidRequest)
	}

	recipe, err := s.recipes.GetRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if recipe.BaseServingSize <= 0 {
		return nil, fmt.Errorf("recipe %s has base serving size %d: %w", recipe.ID, recipe.BaseServingSize, domain.ErrInvalidRecipe)
	}

	lots, err := s.inventory.GetAvailableLots(ctx, recipe.MaterialIDs())
	if err != nil {
		return nil, fmt.Errorf("fetch inventory lots: %w", err)
	}

	resp, err := scaling.Calculate(*recipe, req.TargetPortions, lots)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("recipe_id", recipe.ID).
		Int("target_portions", req.TargetPortions).
		Bool("can_produce", resp.CanProduce).
		Int("insufficient", resp.Summary.InsufficientMaterials).
		Msg("scaling: preview completed")

	return resp, nil
}
