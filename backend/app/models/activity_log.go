package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActivityLog struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	UserID     string    `gorm:"index;size:36;not null" json:"user_id"`
	Action     string    `gorm:"size:64;not null" json:"action"`
	EntityType string    `gorm:"size:64" json:"entity_type,omitempty"`
	EntityID   string    `gorm:"size:64" json:"entity_id,omitempty"`
	Details    string    `gorm:"type:text" json:"details,omitempty"`
	IPAddress  string    `gorm:"size:64" json:"ip_address,omitempty"`
	UserAgent  string    `gorm:"size:512" json:"user_agent,omitempty"`
	User       *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

func (a *ActivityLog) BeforeCreate(*gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// All tables owned by the application, in dependency order.
func All() []any {
	return []any{
		&User{},
		&Session{},
		&Category{},
		&Supplier{},
		&Ingredient{},
		&Recipe{},
		&RecipeIngredient{},
		&SupportTicket{},
		&ActivityLog{},
	}
}
