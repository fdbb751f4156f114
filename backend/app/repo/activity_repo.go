package repo

import (
	"context"
	"culinary-calc/backend/app/models"
	"time"

	"gorm.io/gorm"
)

type ActivityRepository struct{ db *gorm.DB }

func NewActivityRepository(db *gorm.DB) *ActivityRepository { return &ActivityRepository{db: db} }

func (r *ActivityRepository) Create(ctx context.Context, l *models.ActivityLog) error {
	return r.db.WithContext(ctx).Omit("User").Create(l).Error
}

func (r *ActivityRepository) List(ctx context.Context, page Page) ([]models.ActivityLog, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.ActivityLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []models.ActivityLog
	err := r.db.WithContext(ctx).Preload("User", ownerColumns).
		Scopes(page.Scope).Order("created_at DESC").Find(&out).Error
	return out, total, err
}

func (r *ActivityRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	return count, r.db.WithContext(ctx).Model(&models.ActivityLog{}).Where("created_at > ?", since).Count(&count).Error
}
