package models

import (
	"time"
)

// RefreshToken is a persisted refresh token. Revoking a session deletes the
// row, so a stolen refresh token stops working after logout.
type RefreshToken struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;index"`
	Token     string    `gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}
