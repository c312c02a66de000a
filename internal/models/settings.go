package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Settings is the per-account business configuration. One row per user.
type Settings struct {
	ID                uint              `gorm:"primaryKey" json:"id"`
	UserID            uint              `gorm:"uniqueIndex;not null" json:"-"`
	BusinessName      string            `gorm:"not null" json:"business_name"`
	BusinessPhone     string            `json:"business_phone"`
	BusinessAddress   string            `json:"business_address"`
	BusinessEmail     string            `json:"business_email"`
	BusinessPhoto     string            `json:"business_photo"`
	BusinessSlug      string            `gorm:"uniqueIndex" json:"business_slug"`
	BusinessDesc      string            `json:"business_description"`
	OpeningTime       string            `json:"opening_time"`
	ClosingTime       string            `json:"closing_time"`
	IsOpen            bool              `json:"is_open"`
	DeliveryAvailable bool              `json:"delivery_available"`
	DeliveryFee       decimal.Decimal   `gorm:"type:decimal(10,2);default:0" json:"delivery_fee"`
	MinimumOrderValue decimal.Decimal   `gorm:"type:decimal(10,2);default:0" json:"minimum_order_value"`
	TaxRate           decimal.Decimal   `gorm:"type:decimal(5,2);default:0" json:"tax_rate"`
	PaymentMethods    datatypes.JSONMap `json:"payment_methods"`
	OpeningHours      []OpeningHour     `gorm:"foreignKey:SettingsID;constraint:OnDelete:CASCADE" json:"opening_hours,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

func (Settings) TableName() string {
	return "settings"
}

// OpeningHour is one weekday row of the opening-hours table. Times are
// zero-padded "HH:MM" strings in the host's local clock. A closing time
// earlier than the opening time means the window crosses midnight.
type OpeningHour struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	SettingsID  uint   `gorm:"not null;uniqueIndex:idx_settings_day_holiday" json:"-"`
	DayOfWeek   int    `gorm:"not null;uniqueIndex:idx_settings_day_holiday" json:"day_of_week"`
	OpeningTime string `gorm:"not null" json:"opening_time"`
	ClosingTime string `gorm:"not null" json:"closing_time"`
	IsOpen      bool   `json:"is_open"`
	IsHoliday   bool   `gorm:"uniqueIndex:idx_settings_day_holiday" json:"is_holiday"`
}
