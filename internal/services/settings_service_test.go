package services

import (
	"testing"
	"time"

	"github.com/comandago/gin-orders-api/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createTestUser(t *testing.T, db *gorm.DB) models.User {
	user := models.User{Username: "owner", Email: "owner@example.com", Role: "admin"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }

func TestGetOrCreateSettingsDefaults(t *testing.T) {
	db := setupTestDB(t)
	service := NewSettingsService(db)
	user := createTestUser(t, db)

	settings, err := service.GetOrCreateSettings(user.ID)
	require.NoError(t, err)

	assert.Equal(t, "My Business", settings.BusinessName)
	assert.NotEmpty(t, settings.BusinessSlug)
	assert.Equal(t, "08:00", settings.OpeningTime)
	assert.Equal(t, "18:00", settings.ClosingTime)
	assert.True(t, settings.IsOpen)

	// Second call returns the same row
	again, err := service.GetOrCreateSettings(user.ID)
	require.NoError(t, err)
	assert.Equal(t, settings.ID, again.ID)
}

func TestUpdateSettingsSlugFromName(t *testing.T) {
	db := setupTestDB(t)
	service := NewSettingsService(db)
	user := createTestUser(t, db)

	settings, err := service.UpdateSettings(user.ID, SettingsInput{
		BusinessName: strPtr("Paco Pizza Grill"),
		BusinessSlug: strPtr("Paco Pizza Grill"),
	})
	require.NoError(t, err)
	assert.Equal(t, "paco-pizza-grill", settings.BusinessSlug)
	assert.Equal(t, "Paco Pizza Grill", settings.BusinessName)
}

func TestUpdateSettingsPartialMerge(t *testing.T) {
	db := setupTestDB(t)
	service := NewSettingsService(db)
	user := createTestUser(t, db)

	fee := decimal.RequireFromString("2.50")
	_, err := service.UpdateSettings(user.ID, SettingsInput{
		BusinessName: strPtr("Taqueria"),
		DeliveryFee:  &fee,
	})
	require.NoError(t, err)

	// A nil field leaves the stored value alone
	settings, err := service.UpdateSettings(user.ID, SettingsInput{
		BusinessPhone: strPtr("555-0100"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Taqueria", settings.BusinessName)
	assert.Equal(t, "555-0100", settings.BusinessPhone)
	assert.True(t, settings.DeliveryFee.Equal(fee))
}

func TestUpdateSettingsReplacesOpeningHours(t *testing.T) {
	db := setupTestDB(t)
	service := NewSettingsService(db)
	user := createTestUser(t, db)

	_, err := service.UpdateSettings(user.ID, SettingsInput{
		OpeningHours: []OpeningHourInput{
			{DayOfWeek: 0, OpeningTime: "09:00", ClosingTime: "22:00"},
			{DayOfWeek: 1, OpeningTime: "09:00", ClosingTime: "22:00"},
			{DayOfWeek: 2, OpeningTime: "09:00", ClosingTime: "22:00"},
			{DayOfWeek: 3, OpeningTime: "09:00", ClosingTime: "22:00"},
			{DayOfWeek: 4, OpeningTime: "09:00", ClosingTime: "22:00"},
		},
	})
	require.NoError(t, err)

	settings, err := service.UpdateSettings(user.ID, SettingsInput{
		OpeningHours: []OpeningHourInput{
			{DayOfWeek: 5, OpeningTime: "10:00", ClosingTime: "23:00"},
			{DayOfWeek: 6, OpeningTime: "10:00", ClosingTime: "23:00", IsOpen: boolPtr(false)},
			{DayOfWeek: 0, OpeningTime: "00:00", ClosingTime: "00:00", IsHoliday: true},
		},
	})
	require.NoError(t, err)

	// The new set fully replaces the old rows
	require.Len(t, settings.OpeningHours, 3)
	var count int64
	db.Model(&models.OpeningHour{}).Count(&count)
	assert.Equal(t, int64(3), count)
}

func TestReplaceOpeningHoursPersistsClosedDay(t *testing.T) {
	db := setupTestDB(t)
	service := NewSettingsService(db)
	user := createTestUser(t, db)

	_, err := service.UpdateSettings(user.ID, SettingsInput{
		OpeningHours: []OpeningHourInput{
			{DayOfWeek: 0, OpeningTime: "09:00", ClosingTime: "22:00"},
			{DayOfWeek: 6, OpeningTime: "00:00", ClosingTime: "00:00", IsOpen: boolPtr(false)},
		},
	})
	require.NoError(t, err)

	var row models.OpeningHour
	require.NoError(t, db.Where("day_of_week = ?", 6).First(&row).Error)
	assert.False(t, row.IsOpen)

	var open models.OpeningHour
	require.NoError(t, db.Where("day_of_week = ?", 0).First(&open).Error)
	assert.True(t, open.IsOpen)
}

func TestGetSettingsBySlug(t *testing.T) {
	db := setupTestDB(t)
	service := NewSettingsService(db)
	user := createTestUser(t, db)

	created, err := service.UpdateSettings(user.ID, SettingsInput{
		BusinessName: strPtr("Corner Cafe"),
		BusinessSlug: strPtr("corner-cafe"),
	})
	require.NoError(t, err)

	found, err := service.GetSettingsBySlug("corner-cafe")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = service.GetSettingsBySlug("nowhere")
	assert.ErrorIs(t, err, ErrBusinessNotFound)
}

// at builds a time on the weekday row under test. 2026-08-24 is a Monday,
// which maps to day_of_week 0.
func at(day int, clock string) time.Time {
	parsed, _ := time.Parse("15:04", clock)
	base := time.Date(2026, time.August, 24+day, parsed.Hour(), parsed.Minute(), 0, 0, time.UTC)
	return base
}

func TestIsOpenAt(t *testing.T) {
	db := setupTestDB(t)
	service := NewSettingsService(db)
	user := createTestUser(t, db)

	settings, err := service.UpdateSettings(user.ID, SettingsInput{
		OpeningHours: []OpeningHourInput{
			{DayOfWeek: 0, OpeningTime: "09:00", ClosingTime: "22:00"},
			{DayOfWeek: 1, OpeningTime: "22:00", ClosingTime: "04:00"},
			{DayOfWeek: 2, OpeningTime: "09:00", ClosingTime: "22:00", IsOpen: boolPtr(false)},
		},
	})
	require.NoError(t, err)

	cases := []struct {
		name string
		when time.Time
		want bool
	}{
		{"inside regular window", at(0, "12:00"), true},
		{"at opening boundary", at(0, "09:00"), true},
		{"at closing boundary", at(0, "22:00"), true},
		{"after closing", at(0, "23:00"), false},
		{"overnight window, past midnight", at(1, "01:00"), true},
		{"overnight window, before opening", at(1, "21:00"), false},
		{"overnight window, after opening", at(1, "23:00"), true},
		{"day marked closed", at(2, "12:00"), false},
		{"no row for the day", at(3, "12:00"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			open, err := service.IsOpenAt(settings, tc.when)
			require.NoError(t, err)
			assert.Equal(t, tc.want, open)
		})
	}
}
