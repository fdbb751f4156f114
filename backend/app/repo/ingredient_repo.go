package repo

import (
	"context"
	"culinary-calc/backend/app/models"

	"gorm.io/gorm"
)

type IngredientRepository struct{ db *gorm.DB }

func NewIngredientRepository(db *gorm.DB) *IngredientRepository {
	return &IngredientRepository{db: db}
}

func (r *IngredientRepository) Create(ctx context.Context, i *models.Ingredient) error {
	return r.db.WithContext(ctx).Omit("Category", "Supplier", "User").Create(i).Error
}

func (r *IngredientRepository) ListByUser(ctx context.Context, userID string) ([]models.Ingredient, error) {
	var out []models.Ingredient
	err := r.db.WithContext(ctx).Preload("Category").Preload("Supplier").
		Where("user_id = ?", userID).Order("name ASC").Find(&out).Error
	return out, err
}

// CountOwned returns how many of ids belong to userID.
func (r *IngredientRepository) CountOwned(ctx context.Context, ids []string, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Ingredient{}).Where("id IN ? AND user_id = ?", ids, userID).Count(&count).Error
	return count, err
}

// ListAll pages through every tenant's ingredients for administrators.
func (r *IngredientRepository) ListAll(ctx context.Context, page Page, search string) ([]models.Ingredient, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Ingredient{}).Scopes(matchAny(search, "name")).Session(&gorm.Session{})
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []models.Ingredient
	err := q.Preload("User", ownerColumns).Preload("Category").Preload("Supplier").
		Scopes(page.Scope).Order("created_at DESC").Find(&out).Error
	return out, total, err
}

func (r *IngredientRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	return count, r.db.WithContext(ctx).Model(&models.Ingredient{}).Count(&count).Error
}

// ownerColumns keeps preloaded owners down to what listings display.
func ownerColumns(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "email", "role", "is_active", "created_at", "updated_at")
}
