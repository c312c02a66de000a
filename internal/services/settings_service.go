package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/comandago/gin-orders-api/internal/models"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrBusinessNotFound = errors.New("business_not_found")

// OpeningHourInput is one weekday row of a settings update payload.
type OpeningHourInput struct {
	DayOfWeek   int    `json:"day_of_week"`
	OpeningTime string `json:"opening_time"`
	ClosingTime string `json:"closing_time"`
	IsOpen      *bool  `json:"is_open"`
	IsHoliday   bool   `json:"is_holiday"`
}

// SettingsInput carries the mutable business configuration fields. Nil
// pointers leave the stored value untouched.
type SettingsInput struct {
	BusinessName      *string            `json:"business_name"`
	BusinessPhone     *string            `json:"business_phone"`
	BusinessAddress   *string            `json:"business_address"`
	BusinessEmail     *string            `json:"business_email"`
	BusinessDesc      *string            `json:"business_description"`
	BusinessSlug      *string            `json:"business_slug"`
	OpeningTime       *string            `json:"opening_time"`
	ClosingTime       *string            `json:"closing_time"`
	IsOpen            *bool              `json:"is_open"`
	DeliveryAvailable *bool              `json:"delivery_available"`
	DeliveryFee       *decimal.Decimal   `json:"delivery_fee"`
	MinimumOrderValue *decimal.Decimal   `json:"minimum_order_value"`
	TaxRate           *decimal.Decimal   `json:"tax_rate"`
	PaymentMethods    datatypes.JSONMap  `json:"payment_methods"`
	OpeningHours      []OpeningHourInput `json:"-"`
	// BusinessPhoto is the stored media path of an uploaded photo, set by the
	// controller after saving the file
	BusinessPhoto *string `json:"-"`
}

// SettingsService manages the per-account business configuration singleton.
type SettingsService interface {
	// GetOrCreateSettings returns the user's settings row, creating it with
	// defaults on first access
	GetOrCreateSettings(userID uint) (models.Settings, error)
	// UpdateSettings applies the input and, when opening hours are supplied,
	// replaces every stored opening-hour row with the new set
	UpdateSettings(userID uint, input SettingsInput) (models.Settings, error)
	GetSettingsBySlug(businessSlug string) (models.Settings, error)
	// IsOpenAt decides whether the business is open at the given moment,
	// consulting that weekday's opening-hour row
	IsOpenAt(settings models.Settings, now time.Time) (bool, error)
}

type settingsService struct {
	db *gorm.DB
}

// NewSettingsService creates a new instance of SettingsService
func NewSettingsService(db *gorm.DB) SettingsService {
	return &settingsService{db: db}
}

func (s *settingsService) GetOrCreateSettings(userID uint) (models.Settings, error) {
	var settings models.Settings
	err := s.db.Preload("OpeningHours").Where("user_id = ?", userID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.Settings{
			UserID:            userID,
			BusinessName:      "My Business",
			BusinessSlug:      slug.Make(fmt.Sprintf("my-business-%d", userID)),
			OpeningTime:       "08:00",
			ClosingTime:       "18:00",
			IsOpen:            true,
			DeliveryAvailable: true,
			DeliveryFee:       decimal.Zero,
			MinimumOrderValue: decimal.Zero,
			TaxRate:           decimal.Zero,
			PaymentMethods:    datatypes.JSONMap{},
		}
		if err := s.db.Create(&settings).Error; err != nil {
			return models.Settings{}, err
		}
		return settings, nil
	}
	if err != nil {
		return models.Settings{}, err
	}
	return settings, nil
}

func (s *settingsService) UpdateSettings(userID uint, input SettingsInput) (models.Settings, error) {
	settings, err := s.GetOrCreateSettings(userID)
	if err != nil {
		return models.Settings{}, err
	}

	if input.BusinessName != nil {
		settings.BusinessName = *input.BusinessName
	}
	if input.BusinessPhone != nil {
		settings.BusinessPhone = *input.BusinessPhone
	}
	if input.BusinessAddress != nil {
		settings.BusinessAddress = *input.BusinessAddress
	}
	if input.BusinessEmail != nil {
		settings.BusinessEmail = *input.BusinessEmail
	}
	if input.BusinessDesc != nil {
		settings.BusinessDesc = *input.BusinessDesc
	}
	if input.BusinessSlug != nil && *input.BusinessSlug != "" {
		settings.BusinessSlug = slug.Make(*input.BusinessSlug)
	}
	if input.OpeningTime != nil {
		settings.OpeningTime = *input.OpeningTime
	}
	if input.ClosingTime != nil {
		settings.ClosingTime = *input.ClosingTime
	}
	if input.IsOpen != nil {
		settings.IsOpen = *input.IsOpen
	}
	if input.DeliveryAvailable != nil {
		settings.DeliveryAvailable = *input.DeliveryAvailable
	}
	if input.DeliveryFee != nil {
		settings.DeliveryFee = *input.DeliveryFee
	}
	if input.MinimumOrderValue != nil {
		settings.MinimumOrderValue = *input.MinimumOrderValue
	}
	if input.TaxRate != nil {
		settings.TaxRate = *input.TaxRate
	}
	if input.PaymentMethods != nil {
		settings.PaymentMethods = input.PaymentMethods
	}
	if input.BusinessPhoto != nil {
		settings.BusinessPhoto = *input.BusinessPhoto
	}

	// The slug is derived from the business name when never set explicitly.
	if settings.BusinessSlug == "" && settings.BusinessName != "" {
		settings.BusinessSlug = slug.Make(settings.BusinessName)
	}

	if err := s.db.Save(&settings).Error; err != nil {
		return models.Settings{}, err
	}

	// Replace-all: a submitted opening-hours set fully supersedes the stored
	// rows, it is never diffed against them.
	if input.OpeningHours != nil {
		if err := s.db.Where("settings_id = ?", settings.ID).Delete(&models.OpeningHour{}).Error; err != nil {
			return models.Settings{}, err
		}
		for _, oh := range input.OpeningHours {
			isOpen := true
			if oh.IsOpen != nil {
				isOpen = *oh.IsOpen
			}
			row := models.OpeningHour{
				SettingsID:  settings.ID,
				DayOfWeek:   oh.DayOfWeek,
				OpeningTime: oh.OpeningTime,
				ClosingTime: oh.ClosingTime,
				IsOpen:      isOpen,
				IsHoliday:   oh.IsHoliday,
			}
			if err := s.db.Create(&row).Error; err != nil {
				return models.Settings{}, err
			}
		}
	}

	return s.reload(settings.ID)
}

func (s *settingsService) reload(id uint) (models.Settings, error) {
	var settings models.Settings
	if err := s.db.Preload("OpeningHours").First(&settings, id).Error; err != nil {
		return models.Settings{}, err
	}
	return settings, nil
}

func (s *settingsService) GetSettingsBySlug(businessSlug string) (models.Settings, error) {
	var settings models.Settings
	err := s.db.Preload("OpeningHours").Where("business_slug = ?", businessSlug).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Settings{}, ErrBusinessNotFound
	}
	if err != nil {
		return models.Settings{}, err
	}
	return settings, nil
}

// IsOpenAt consults the non-holiday opening-hour row for now's weekday.
// Weekdays are stored 0=Monday..6=Sunday. A closing time earlier than the
// opening time denotes a window crossing midnight.
func (s *settingsService) IsOpenAt(settings models.Settings, now time.Time) (bool, error) {
	day := (int(now.Weekday()) + 6) % 7 // time.Weekday is 0=Sunday

	var row models.OpeningHour
	err := s.db.
		Where("settings_id = ? AND day_of_week = ? AND is_holiday = ?", settings.ID, day, false).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// No row configured for today means closed.
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if !row.IsOpen {
		return false, nil
	}

	// Zero-padded HH:MM strings compare correctly as strings.
	current := now.Format("15:04")
	if row.ClosingTime < row.OpeningTime {
		// Wraparound window, e.g. 22:00-04:00.
		return current >= row.OpeningTime || current <= row.ClosingTime, nil
	}
	return current >= row.OpeningTime && current <= row.ClosingTime, nil
}
