package services

import (
	"context"
	"culinary-calc/backend/app/models"
	"culinary-calc/backend/app/repo"
	"culinary-calc/backend/global"
	"encoding/json"
)

const (
	ActionRegister         = "register"
	ActionLogin            = "login"
	ActionLogout           = "logout"
	ActionTicketCreated    = "ticket_created"
	ActionTicketResponded  = "ticket_responded"
	ActionUserRoleChanged  = "user_role_changed"
	ActionUserStatusChange = "user_status_changed"
	ActionRecipeCreated    = "recipe_created"
	ActionIngredientAdded  = "ingredient_created"
)

type Activity struct {
	UserID     string
	Action     string
	EntityType string
	EntityID   string
	Details    any
	IP         string
	UserAgent  string
}

type ActivityService struct{ logs *repo.ActivityRepository }

func NewActivityService(logs *repo.ActivityRepository) *ActivityService {
	return &ActivityService{logs: logs}
}

// Record writes an audit entry. Failures are logged and swallowed so that
// auditing never fails the request that triggered it.
func (s *ActivityService) Record(ctx context.Context, a Activity) {
	entry := &models.ActivityLog{
		UserID:     a.UserID,
		Action:     a.Action,
		EntityType: a.EntityType,
		EntityID:   a.EntityID,
		IPAddress:  a.IP,
		UserAgent:  a.UserAgent,
	}
	if a.Details != nil {
		if raw, err := json.Marshal(a.Details); err == nil {
			entry.Details = string(raw)
		}
	}
	if err := s.logs.Create(ctx, entry); err != nil {
		global.Logger.Warn().Err(err).Str("action", a.Action).Str("user", a.UserID).Msg("failed to record activity")
	}
}
