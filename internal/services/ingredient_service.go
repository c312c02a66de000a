package services

import (
	"errors"

	"github.com/comandago/gin-orders-api/internal/models"
	"gorm.io/gorm"
)

// IngredientService provides methods to manage ingredients
type IngredientService interface {
	GetAllIngredients() ([]models.Ingredient, error)
	// GetAvailableIngredients retrieves only active ingredients
	GetAvailableIngredients() ([]models.Ingredient, error)
	GetIngredientByID(id uint) (models.Ingredient, error)
	// CreateIngredient persists the ingredient, resolving an optional
	// category label to an IngredientCategory created on demand
	CreateIngredient(ingredient models.Ingredient, categoryName string) (models.Ingredient, error)
	UpdateIngredient(ingredient models.Ingredient, categoryName string) (models.Ingredient, error)
	// DeleteIngredient removes the ingredient and its product links
	DeleteIngredient(id uint) error
}

type ingredientService struct {
	db *gorm.DB
}

// NewIngredientService creates a new instance of IngredientService
func NewIngredientService(db *gorm.DB) IngredientService {
	return &ingredientService{db: db}
}

func (s *ingredientService) GetAllIngredients() ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	if err := s.db.Preload("Category").Order("name").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (s *ingredientService) GetAvailableIngredients() ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	if err := s.db.Preload("Category").Where("is_active = ?", true).Order("name").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (s *ingredientService) GetIngredientByID(id uint) (models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := s.db.Preload("Category").First(&ingredient, id).Error; err != nil {
		return models.Ingredient{}, err
	}
	return ingredient, nil
}

func (s *ingredientService) resolveCategory(ingredient *models.Ingredient, categoryName string) error {
	if categoryName == "" {
		return nil
	}
	var category models.IngredientCategory
	err := s.db.Where("name = ?", categoryName).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		category = models.IngredientCategory{Name: categoryName}
		err = s.db.Create(&category).Error
	}
	if err != nil {
		return err
	}
	ingredient.CategoryID = &category.ID
	return nil
}

func (s *ingredientService) CreateIngredient(ingredient models.Ingredient, categoryName string) (models.Ingredient, error) {
	if err := s.resolveCategory(&ingredient, categoryName); err != nil {
		return models.Ingredient{}, err
	}
	if err := s.db.Create(&ingredient).Error; err != nil {
		return models.Ingredient{}, err
	}
	return s.GetIngredientByID(ingredient.ID)
}

func (s *ingredientService) UpdateIngredient(ingredient models.Ingredient, categoryName string) (models.Ingredient, error) {
	if err := s.resolveCategory(&ingredient, categoryName); err != nil {
		return models.Ingredient{}, err
	}
	if err := s.db.Save(&ingredient).Error; err != nil {
		return models.Ingredient{}, err
	}
	return s.GetIngredientByID(ingredient.ID)
}

func (s *ingredientService) DeleteIngredient(id uint) error {
	if err := s.db.Where("ingredient_id = ?", id).Delete(&models.ProductIngredient{}).Error; err != nil {
		return err
	}
	return s.db.Delete(&models.Ingredient{}, id).Error
}
