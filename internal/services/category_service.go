package services

import (
	"github.com/comandago/gin-orders-api/internal/models"
	"gorm.io/gorm"
)

// CategoryService provides methods to manage product categories
type CategoryService interface {
	GetAllCategories() ([]models.Category, error)
	GetCategoryByID(id uint) (models.Category, error)
	CreateCategory(category models.Category) (models.Category, error)
	UpdateCategory(category models.Category) (models.Category, error)
	// DeleteCategory removes the category together with its products and
	// their ingredient links
	DeleteCategory(id uint) error
	// GetCategoryProducts retrieves all products of a category
	GetCategoryProducts(id uint) ([]models.Product, error)
}

type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new instance of CategoryService
func NewCategoryService(db *gorm.DB) CategoryService {
	return &categoryService{db: db}
}

func (s *categoryService) GetAllCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Order("name").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *categoryService) GetCategoryByID(id uint) (models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, id).Error; err != nil {
		return models.Category{}, err
	}
	return category, nil
}

func (s *categoryService) CreateCategory(category models.Category) (models.Category, error) {
	if err := s.db.Create(&category).Error; err != nil {
		return models.Category{}, err
	}
	return category, nil
}

func (s *categoryService) UpdateCategory(category models.Category) (models.Category, error) {
	if err := s.db.Save(&category).Error; err != nil {
		return models.Category{}, err
	}
	return category, nil
}

func (s *categoryService) DeleteCategory(id uint) error {
	var products []models.Product
	if err := s.db.Where("category_id = ?", id).Find(&products).Error; err != nil {
		return err
	}
	for _, product := range products {
		if err := s.db.Where("product_id = ?", product.ID).Delete(&models.ProductIngredient{}).Error; err != nil {
			return err
		}
	}
	if err := s.db.Where("category_id = ?", id).Delete(&models.Product{}).Error; err != nil {
		return err
	}
	return s.db.Delete(&models.Category{}, id).Error
}

func (s *categoryService) GetCategoryProducts(id uint) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Where("category_id = ?", id).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}
