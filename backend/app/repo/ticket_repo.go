package repo

import (
	"context"
	"culinary-calc/backend/app/models"
	"errors"
	"time"

	"gorm.io/gorm"
)

type TicketRepository struct{ db *gorm.DB }

func NewTicketRepository(db *gorm.DB) *TicketRepository { return &TicketRepository{db: db} }

func (r *TicketRepository) Create(ctx context.Context, t *models.SupportTicket) error {
	return r.db.WithContext(ctx).Omit("User", "Admin").Create(t).Error
}

func (r *TicketRepository) Get(ctx context.Context, id string) (*models.SupportTicket, error) {
	var t models.SupportTicket
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TicketRepository) ListByUser(ctx context.Context, userID string) ([]models.SupportTicket, error) {
	var out []models.SupportTicket
	err := r.db.WithContext(ctx).Preload("Admin", ownerColumns).
		Where("user_id = ?", userID).Order("created_at DESC").Find(&out).Error
	return out, err
}

// ListAll pages through tickets; an empty status means every status.
func (r *TicketRepository) ListAll(ctx context.Context, page Page, status models.TicketStatus) ([]models.SupportTicket, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.SupportTicket{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	q = q.Session(&gorm.Session{})
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []models.SupportTicket
	err := q.Preload("User", ownerColumns).
		Preload("Admin", ownerColumns).
		Scopes(page.Scope).Order("created_at DESC").Find(&out).Error
	return out, total, err
}

// Respond records an administrator's answer. resolved_at is stamped only
// when the new status is resolved and cleared otherwise.
func (r *TicketRepository) Respond(ctx context.Context, id, adminID, response string, status models.TicketStatus, now time.Time) (bool, error) {
	updates := map[string]any{
		"admin_response": response,
		"admin_id":       adminID,
		"status":         status,
		"resolved_at":    nil,
	}
	if status == models.TicketResolved {
		updates["resolved_at"] = now
	}
	res := r.db.WithContext(ctx).Model(&models.SupportTicket{}).Where("id = ?", id).Updates(updates)
	return res.RowsAffected > 0, res.Error
}

func (r *TicketRepository) CountByStatus(ctx context.Context, statuses ...models.TicketStatus) (int64, error) {
	var count int64
	return count, r.db.WithContext(ctx).Model(&models.SupportTicket{}).Where("status IN ?", statuses).Count(&count).Error
}
