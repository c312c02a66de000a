package services

import (
	"time"

	"github.com/comandago/gin-orders-api/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PublicMenu is the unauthenticated storefront projection of a business:
// identity, ordering configuration and the active catalog.
type PublicMenu struct {
	BusinessName        string               `json:"business_name"`
	BusinessPhone       string               `json:"business_phone"`
	BusinessAddress     string               `json:"business_address"`
	BusinessPhoto       string               `json:"business_photo"`
	BusinessDescription string               `json:"business_description"`
	BusinessSlug        string               `json:"business_slug"`
	IsOpenNow           bool                 `json:"is_open_now"`
	DeliveryAvailable   bool                 `json:"delivery_available"`
	DeliveryFee         decimal.Decimal      `json:"delivery_fee"`
	MinimumOrderValue   decimal.Decimal      `json:"minimum_order_value"`
	TaxRate             decimal.Decimal      `json:"tax_rate"`
	PaymentMethods      datatypes.JSONMap    `json:"payment_methods"`
	OpeningHours        []models.OpeningHour `json:"opening_hours"`
	Categories          []MenuCategory       `json:"categories"`
}

// MenuCategory is one active category with its active products nested.
type MenuCategory struct {
	ID          uint             `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Products    []models.Product `json:"products"`
}

// MenuService builds the public storefront projection.
type MenuService interface {
	// GetPublicMenu resolves a business by slug and returns its storefront
	// data with only active categories and products
	GetPublicMenu(businessSlug string) (PublicMenu, error)
}

type menuService struct {
	db       *gorm.DB
	settings SettingsService
}

// NewMenuService creates a new instance of MenuService
func NewMenuService(db *gorm.DB, settings SettingsService) MenuService {
	return &menuService{db: db, settings: settings}
}

func (s *menuService) GetPublicMenu(businessSlug string) (PublicMenu, error) {
	settings, err := s.settings.GetSettingsBySlug(businessSlug)
	if err != nil {
		return PublicMenu{}, err
	}

	openNow, err := s.settings.IsOpenAt(settings, time.Now())
	if err != nil {
		return PublicMenu{}, err
	}

	var categories []models.Category
	if err := s.db.Where("is_active = ?", true).Order("name").Find(&categories).Error; err != nil {
		return PublicMenu{}, err
	}

	menuCategories := make([]MenuCategory, 0, len(categories))
	for _, category := range categories {
		var products []models.Product
		err := s.db.
			Preload("Ingredients.Ingredient.Category").
			Where("category_id = ? AND is_active = ?", category.ID, true).
			Order("created_at").
			Find(&products).Error
		if err != nil {
			return PublicMenu{}, err
		}
		menuCategories = append(menuCategories, MenuCategory{
			ID:          category.ID,
			Name:        category.Name,
			Description: category.Description,
			Products:    products,
		})
	}

	return PublicMenu{
		BusinessName:        settings.BusinessName,
		BusinessPhone:       settings.BusinessPhone,
		BusinessAddress:     settings.BusinessAddress,
		BusinessPhoto:       settings.BusinessPhoto,
		BusinessDescription: settings.BusinessDesc,
		BusinessSlug:        settings.BusinessSlug,
		IsOpenNow:           openNow,
		DeliveryAvailable:   settings.DeliveryAvailable,
		DeliveryFee:         settings.DeliveryFee,
		MinimumOrderValue:   settings.MinimumOrderValue,
		TaxRate:             settings.TaxRate,
		PaymentMethods:      settings.PaymentMethods,
		OpeningHours:        settings.OpeningHours,
		Categories:          menuCategories,
	}, nil
}
