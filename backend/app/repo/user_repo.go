package repo

import (
	"context"
	"culinary-calc/backend/app/models"
	"errors"

	"gorm.io/gorm"
)

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) CountByEmail(ctx context.Context, email string) (int64, error) {
	var count int64
	return count, r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

// FindActiveByEmail returns nil, nil when no active user has exactly this email.
func (r *UserRepository) FindActiveByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.first(ctx, "email = ? AND is_active = ?", email, true)
}

// FindActiveByID returns nil, nil for unknown or deactivated users.
func (r *UserRepository) FindActiveByID(ctx context.Context, id string) (*models.User, error) {
	return r.first(ctx, "id = ? AND is_active = ?", id, true)
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *UserRepository) first(ctx context.Context, query string, args ...any) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).Where(query, args...).Take(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// List pages through users newest first, matching search against name or email.
func (r *UserRepository) List(ctx context.Context, page Page, search string) ([]models.User, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.User{}).Scopes(matchAny(search, "name", "email")).Session(&gorm.Session{})
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var users []models.User
	err := q.Scopes(page.Scope).Order("created_at DESC").Find(&users).Error
	return users, total, err
}

// SetActive reports false when no user has the given id.
func (r *UserRepository) SetActive(ctx context.Context, id string, active bool) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("is_active", active)
	return res.RowsAffected > 0, res.Error
}

// SetRole reports false when no user has the given id.
func (r *UserRepository) SetRole(ctx context.Context, id string, role models.Role) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("role", role)
	return res.RowsAffected > 0, res.Error
}

func (r *UserRepository) Count(ctx context.Context, activeOnly bool) (int64, error) {
	q := r.db.WithContext(ctx).Model(&models.User{})
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var count int64
	return count, q.Count(&count).Error
}
