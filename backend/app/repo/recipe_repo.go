package repo

import (
	"context"
	"culinary-calc/backend/app/models"

	"gorm.io/gorm"
)

type RecipeRepository struct{ db *gorm.DB }

func NewRecipeRepository(db *gorm.DB) *RecipeRepository { return &RecipeRepository{db: db} }

// Create stores the recipe and its ingredient lines in one transaction.
func (r *RecipeRepository) Create(ctx context.Context, rec *models.Recipe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lines := rec.Ingredients
		rec.Ingredients = nil
		if err := tx.Omit("Category", "User").Create(rec).Error; err != nil {
			return err
		}
		for i := range lines {
			lines[i].RecipeID = rec.ID
		}
		if len(lines) > 0 {
			if err := tx.Omit("Ingredient").Create(&lines).Error; err != nil {
				return err
			}
		}
		rec.Ingredients = lines
		return nil
	})
}

func (r *RecipeRepository) ListByUser(ctx context.Context, userID string) ([]models.Recipe, error) {
	var out []models.Recipe
	err := r.db.WithContext(ctx).Preload("Category").Preload("Ingredients.Ingredient").
		Where("user_id = ?", userID).Order("created_at DESC").Find(&out).Error
	return out, err
}

// ListAll pages through every tenant's recipes for administrators.
func (r *RecipeRepository) ListAll(ctx context.Context, page Page, search string) ([]models.Recipe, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Recipe{}).Scopes(matchAny(search, "name")).Session(&gorm.Session{})
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []models.Recipe
	err := q.Preload("User", ownerColumns).Preload("Category").
		Scopes(page.Scope).Order("created_at DESC").Find(&out).Error
	return out, total, err
}

func (r *RecipeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	return count, r.db.WithContext(ctx).Model(&models.Recipe{}).Count(&count).Error
}
