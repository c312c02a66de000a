package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultIngredientGroup is the group label used when a product/ingredient
// link is created without an explicit group.
const DefaultIngredientGroup = "General"

// IngredientCategory is a subcategory for ingredients (sauces, proteins, ...).
type IngredientCategory struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (IngredientCategory) TableName() string {
	return "ingredient_categories"
}

// Ingredient is something that can be added to or removed from a product.
type Ingredient struct {
	ID          uint                `gorm:"primaryKey" json:"id"`
	Name        string              `gorm:"not null" json:"name"`
	Description string              `json:"description"`
	Price       decimal.Decimal     `gorm:"type:decimal(10,2);default:0" json:"price"`
	IsActive    bool                `json:"is_active"`
	CategoryID  *uint               `json:"category_id,omitempty"`
	Category    *IngredientCategory `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// ProductIngredient links a product to an ingredient that can customize it.
// A pair (product, ingredient) appears at most once.
type ProductIngredient struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	ProductID    uint        `gorm:"not null;uniqueIndex:idx_product_ingredient" json:"product_id"`
	IngredientID uint        `gorm:"not null;uniqueIndex:idx_product_ingredient" json:"ingredient_id"`
	Ingredient   *Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`
	IsRequired   bool        `json:"is_required"`
	MaxQuantity  int         `gorm:"default:1" json:"max_quantity"`
	GroupName    string      `gorm:"default:'General'" json:"group_name"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
