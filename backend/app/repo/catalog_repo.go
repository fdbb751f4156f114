package repo

import (
	"context"
	"culinary-calc/backend/app/models"

	"gorm.io/gorm"
)

type CategoryRepository struct{ db *gorm.DB }

func NewCategoryRepository(db *gorm.DB) *CategoryRepository { return &CategoryRepository{db: db} }

func (r *CategoryRepository) Create(ctx context.Context, c *models.Category) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CategoryRepository) ListByUser(ctx context.Context, userID string) ([]models.Category, error) {
	var out []models.Category
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("name ASC").Find(&out).Error
	return out, err
}

// OwnedBy reports whether category id belongs to userID.
func (r *CategoryRepository) OwnedBy(ctx context.Context, id uint, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Category{}).Where("id = ? AND user_id = ?", id, userID).Count(&count).Error
	return count > 0, err
}

type SupplierRepository struct{ db *gorm.DB }

func NewSupplierRepository(db *gorm.DB) *SupplierRepository { return &SupplierRepository{db: db} }

func (r *SupplierRepository) Create(ctx context.Context, s *models.Supplier) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SupplierRepository) ListByUser(ctx context.Context, userID string) ([]models.Supplier, error) {
	var out []models.Supplier
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("name ASC").Find(&out).Error
	return out, err
}

func (r *SupplierRepository) OwnedBy(ctx context.Context, id, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Supplier{}).Where("id = ? AND user_id = ?", id, userID).Count(&count).Error
	return count > 0, err
}

// ListAll pages through every tenant's suppliers for administrators.
func (r *SupplierRepository) ListAll(ctx context.Context, page Page, search string) ([]models.Supplier, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Supplier{}).Scopes(matchAny(search, "name", "contact", "email")).Session(&gorm.Session{})
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []models.Supplier
	err := q.Preload("User", ownerColumns).Scopes(page.Scope).Order("created_at DESC").Find(&out).Error
	return out, total, err
}

func (r *SupplierRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	return count, r.db.WithContext(ctx).Model(&models.Supplier{}).Count(&count).Error
}
