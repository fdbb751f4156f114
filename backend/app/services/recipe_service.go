package services

import (
	"context"
	"culinary-calc/backend/app/cache"
	"culinary-calc/backend/app/dto"
	"culinary-calc/backend/app/models"
	"culinary-calc/backend/app/repo"
	"fmt"
	"strings"
)

type RecipeService struct {
	recipes     *repo.RecipeRepository
	ingredients *repo.IngredientRepository
	categories  *repo.CategoryRepository
	stats       *cache.StatsCache
}

func NewRecipeService(recipes *repo.RecipeRepository, ingredients *repo.IngredientRepository, categories *repo.CategoryRepository, stats *cache.StatsCache) *RecipeService {
	return &RecipeService{recipes: recipes, ingredients: ingredients, categories: categories, stats: stats}
}

// CreateRecipe stores a recipe owned by userID. Every referenced
// ingredient and the category must belong to the same user.
func (s *RecipeService) CreateRecipe(ctx context.Context, userID string, req dto.RecipeRequest) (*models.Recipe, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if req.Servings < 0 {
		return nil, fmt.Errorf("%w: servings must not be negative", ErrInvalidInput)
	}
	servings := req.Servings
	if servings == 0 {
		servings = 1
	}
	rec := &models.Recipe{
		Name: name, Description: req.Description, Servings: servings,
		PreparationTime: req.PreparationTime, Difficulty: req.Difficulty, Instructions: req.Instructions,
		TotalCost: req.TotalCost, OperationalCost: req.OperationalCost, FinalCost: req.FinalCost,
		SellingPrice: req.SellingPrice, ProfitMargin: req.ProfitMargin, NetProfit: req.NetProfit,
		IsActive: true, UserID: userID,
	}
	if req.CategoryID != nil {
		ok, err := s.categories.OwnedBy(ctx, *req.CategoryID, userID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: unknown category", ErrInvalidInput)
		}
		rec.CategoryID = req.CategoryID
	}

	ids := make([]string, 0, len(req.Ingredients))
	seen := make(map[string]struct{}, len(req.Ingredients))
	for _, line := range req.Ingredients {
		if line.IngredientID == "" || line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: each ingredient needs an id and a positive quantity", ErrInvalidInput)
		}
		if _, dup := seen[line.IngredientID]; dup {
			return nil, fmt.Errorf("%w: ingredient %s listed twice", ErrInvalidInput, line.IngredientID)
		}
		seen[line.IngredientID] = struct{}{}
		ids = append(ids, line.IngredientID)
		rec.Ingredients = append(rec.Ingredients, models.RecipeIngredient{IngredientID: line.IngredientID, Quantity: line.Quantity, Cost: line.Cost})
	}
	if len(ids) > 0 {
		owned, err := s.ingredients.CountOwned(ctx, ids, userID)
		if err != nil {
			return nil, err
		}
		if owned != int64(len(ids)) {
			return nil, fmt.Errorf("%w: unknown ingredient", ErrInvalidInput)
		}
	}

	if err := s.recipes.Create(ctx, rec); err != nil {
		return nil, err
	}
	invalidateStats(ctx, s.stats)
	return rec, nil
}

func (s *RecipeService) ListRecipes(ctx context.Context, userID string) ([]models.Recipe, error) {
	return s.recipes.ListByUser(ctx, userID)
}
