package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TicketPriority string

const (
	PriorityLow    TicketPriority = "low"
	PriorityMedium TicketPriority = "medium"
	PriorityHigh   TicketPriority = "high"
	PriorityUrgent TicketPriority = "urgent"
)

func (p TicketPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type TicketStatus string

const (
	TicketOpen       TicketStatus = "open"
	TicketInProgress TicketStatus = "in_progress"
	TicketResolved   TicketStatus = "resolved"
	TicketClosed     TicketStatus = "closed"
)

func (s TicketStatus) Valid() bool {
	switch s {
	case TicketOpen, TicketInProgress, TicketResolved, TicketClosed:
		return true
	}
	return false
}

// Pending is true for tickets still waiting on an administrator.
func (s TicketStatus) Pending() bool { return s == TicketOpen || s == TicketInProgress }

type SupportTicket struct {
	ID            string         `gorm:"primaryKey;size:36" json:"id"`
	UserID        string         `gorm:"index;size:36;not null" json:"user_id"`
	Subject       string         `gorm:"size:255;not null" json:"subject"`
	Message       string         `gorm:"type:text;not null" json:"message"`
	Priority      TicketPriority `gorm:"size:16;not null;default:medium" json:"priority"`
	Status        TicketStatus   `gorm:"size:16;not null;default:open;index" json:"status"`
	AdminResponse *string        `gorm:"type:text" json:"admin_response,omitempty"`
	AdminID       *string        `gorm:"size:36" json:"admin_id,omitempty"`
	User          *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Admin         *User          `gorm:"foreignKey:AdminID" json:"admin,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	ResolvedAt    *time.Time     `json:"resolved_at,omitempty"`
}

func (t *SupportTicket) BeforeCreate(*gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
