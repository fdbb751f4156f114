package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Ingredient struct {
	ID             string     `gorm:"primaryKey;size:36" json:"id"`
	Name           string     `gorm:"size:255;not null;index" json:"name"`
	Description    string     `gorm:"type:text" json:"description,omitempty"`
	Unit           string     `gorm:"size:32;not null" json:"unit"`
	UnitCost       float64    `gorm:"not null;default:0" json:"unit_cost"`
	Stock          float64    `gorm:"not null;default:0" json:"stock"`
	MinStock       float64    `gorm:"not null;default:0" json:"min_stock"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
	IsActive       bool       `gorm:"not null;default:true" json:"is_active"`
	CategoryID     *uint      `gorm:"index" json:"category_id,omitempty"`
	SupplierID     *string    `gorm:"index;size:36" json:"supplier_id,omitempty"`
	UserID         string     `gorm:"index;size:36;not null" json:"user_id"`
	Category       *Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Supplier       *Supplier  `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	User           *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (i *Ingredient) BeforeCreate(*gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// LowStock reports whether stock has fallen to the configured minimum.
func (i Ingredient) LowStock() bool { return i.Stock <= i.MinStock }
