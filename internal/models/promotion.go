package models

import (
	"time"
)

// Promotion is a campaign an order item can be linked to. Items keep their
// own snapshot pricing, so the promotion itself only carries identity.
type Promotion struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
