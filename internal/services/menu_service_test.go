package services

import (
	"testing"

	"github.com/comandago/gin-orders-api/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPublicMenuFiltersInactive(t *testing.T) {
	db := setupTestDB(t)
	settingsService := NewSettingsService(db)
	service := NewMenuService(db, settingsService)

	user := createTestUser(t, db)
	_, err := settingsService.UpdateSettings(user.ID, SettingsInput{
		BusinessName: strPtr("Corner Cafe"),
		BusinessSlug: strPtr("corner-cafe"),
	})
	require.NoError(t, err)

	mains := models.Category{Name: "Mains", IsActive: true}
	hidden := models.Category{Name: "Seasonal", IsActive: false}
	require.NoError(t, db.Create(&mains).Error)
	require.NoError(t, db.Create(&hidden).Error)

	products := []models.Product{
		{Name: "Burger", Price: decimal.RequireFromString("8.00"), CategoryID: mains.ID, IsActive: true},
		{Name: "Old Burger", Price: decimal.RequireFromString("7.00"), CategoryID: mains.ID, IsActive: false},
		{Name: "Pumpkin Soup", Price: decimal.RequireFromString("5.00"), CategoryID: hidden.ID, IsActive: true},
	}
	for i := range products {
		require.NoError(t, db.Create(&products[i]).Error)
	}

	menu, err := service.GetPublicMenu("corner-cafe")
	require.NoError(t, err)

	assert.Equal(t, "Corner Cafe", menu.BusinessName)
	require.Len(t, menu.Categories, 1)
	assert.Equal(t, "Mains", menu.Categories[0].Name)
	require.Len(t, menu.Categories[0].Products, 1)
	assert.Equal(t, "Burger", menu.Categories[0].Products[0].Name)
}

func TestGetPublicMenuUnknownSlug(t *testing.T) {
	db := setupTestDB(t)
	service := NewMenuService(db, NewSettingsService(db))

	_, err := service.GetPublicMenu("nowhere")
	assert.ErrorIs(t, err, ErrBusinessNotFound)
}
