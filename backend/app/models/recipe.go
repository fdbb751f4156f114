package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recipe carries costing figures exactly as the client submitted them.
type Recipe struct {
	ID              string             `gorm:"primaryKey;size:36" json:"id"`
	Name            string             `gorm:"size:255;not null;index" json:"name"`
	Description     string             `gorm:"type:text" json:"description,omitempty"`
	Servings        int                `gorm:"not null;default:1" json:"servings"`
	PreparationTime *int               `json:"preparation_time,omitempty"`
	Difficulty      string             `gorm:"size:32" json:"difficulty,omitempty"`
	Instructions    string             `gorm:"type:text" json:"instructions,omitempty"`
	TotalCost       float64            `gorm:"not null;default:0" json:"total_cost"`
	OperationalCost float64            `gorm:"not null;default:0" json:"operational_cost"`
	FinalCost       float64            `gorm:"not null;default:0" json:"final_cost"`
	SellingPrice    float64            `gorm:"not null;default:0" json:"selling_price"`
	ProfitMargin    float64            `gorm:"not null;default:0" json:"profit_margin"`
	NetProfit       float64            `gorm:"not null;default:0" json:"net_profit"`
	IsActive        bool               `gorm:"not null;default:true" json:"is_active"`
	CategoryID      *uint              `gorm:"index" json:"category_id,omitempty"`
	UserID          string             `gorm:"index;size:36;not null" json:"user_id"`
	Category        *Category          `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	User            *User              `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Ingredients     []RecipeIngredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"recipe_ingredients,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

func (r *Recipe) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

type RecipeIngredient struct {
	ID           string      `gorm:"primaryKey;size:36" json:"id"`
	RecipeID     string      `gorm:"index;size:36;not null" json:"recipe_id"`
	IngredientID string      `gorm:"index;size:36;not null" json:"ingredient_id"`
	Quantity     float64     `gorm:"not null" json:"quantity"`
	Cost         float64     `gorm:"not null;default:0" json:"cost"`
	Ingredient   *Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

func (ri *RecipeIngredient) BeforeCreate(*gorm.DB) error {
	if ri.ID == "" {
		ri.ID = uuid.NewString()
	}
	return nil
}
