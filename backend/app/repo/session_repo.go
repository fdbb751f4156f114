package repo

import (
	"context"
	"culinary-calc/backend/app/models"
	"errors"
	"time"

	"gorm.io/gorm"
)

type SessionRepository struct{ db *gorm.DB }

func NewSessionRepository(db *gorm.DB) *SessionRepository { return &SessionRepository{db: db} }

func (r *SessionRepository) Create(ctx context.Context, s *models.Session) error {
	return r.db.WithContext(ctx).Create(s).Error
}

// DeleteExpired removes the user's sessions that expired before now.
func (r *SessionRepository) DeleteExpired(ctx context.Context, userID string, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("user_id = ? AND expires_at < ?", userID, now).Delete(&models.Session{})
	return res.RowsAffected, res.Error
}

// FindUser resolves token to its owner. It returns nil, nil unless the
// session exists, has not expired at now, and the owner is active.
func (r *SessionRepository) FindUser(ctx context.Context, token string, now time.Time) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Joins("JOIN user_sessions ON user_sessions.user_id = users.id").
		Where("user_sessions.token = ? AND user_sessions.expires_at > ? AND users.is_active = ?", token, now, true).
		Take(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *SessionRepository) DeleteByToken(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Where("token = ?", token).Delete(&models.Session{}).Error
}
