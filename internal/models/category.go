package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category groups products on the menu (e.g. Burgers, Drinks).
type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	Products    []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Product is a sellable menu item belonging to a category.
type Product struct {
	ID          uint                `gorm:"primaryKey" json:"id"`
	Name        string              `gorm:"not null" json:"name"`
	Description string              `json:"description"`
	Price       decimal.Decimal     `gorm:"type:decimal(10,2);not null" json:"price"`
	Image       string              `json:"image"`
	CategoryID  uint                `gorm:"not null" json:"category_id"`
	Category    *Category           `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	IsActive    bool                `json:"is_active"`
	Ingredients []ProductIngredient `gorm:"foreignKey:ProductID" json:"available_ingredients,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}
