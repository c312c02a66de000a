package services

import (
	"errors"

	"github.com/comandago/gin-orders-api/internal/models"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound    = errors.New("product_not_found")
	ErrIngredientNotFound = errors.New("ingredient_not_found")
	ErrLinkNotFound       = errors.New("product_ingredient_not_found")
)

// IngredientSpec describes one ingredient attached to a product payload.
// Unknown ingredient names and category labels are created on the fly.
type IngredientSpec struct {
	Name        string `json:"name" binding:"required"`
	Category    string `json:"category"`
	IsRequired  bool   `json:"isRequired"`
	MaxQuantity int    `json:"maxQuantity"`
}

// ProductService provides methods to manage products and their ingredient links
type ProductService interface {
	GetAllProducts() ([]models.Product, error)
	GetProductByID(id uint) (models.Product, error)
	// CreateProduct persists the product and attaches the given ingredient specs
	CreateProduct(product models.Product, specs []IngredientSpec) (models.Product, error)
	// UpdateProduct saves the product. A non-empty spec list replaces every
	// existing ingredient link; an empty list keeps the current links.
	UpdateProduct(product models.Product, specs []IngredientSpec) (models.Product, error)
	DeleteProduct(id uint) error
	// AddIngredient links an existing ingredient to the product, updating
	// the link attributes if it is already attached
	AddIngredient(productID, ingredientID uint, isRequired bool, maxQuantity int) (models.ProductIngredient, error)
	// RemoveIngredient detaches an ingredient from the product
	RemoveIngredient(productID, ingredientID uint) error
}

type productService struct {
	db *gorm.DB
}

// NewProductService creates a new instance of ProductService
func NewProductService(db *gorm.DB) ProductService {
	return &productService{db: db}
}

func (s *productService) GetAllProducts() ([]models.Product, error) {
	var products []models.Product
	err := s.db.
		Preload("Category").
		Preload("Ingredients.Ingredient.Category").
		Order("created_at").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (s *productService) GetProductByID(id uint) (models.Product, error) {
	var product models.Product
	err := s.db.
		Preload("Category").
		Preload("Ingredients.Ingredient.Category").
		First(&product, id).Error
	if err != nil {
		return models.Product{}, err
	}
	return product, nil
}

func (s *productService) CreateProduct(product models.Product, specs []IngredientSpec) (models.Product, error) {
	if err := s.db.Create(&product).Error; err != nil {
		return models.Product{}, err
	}
	s.applyIngredientSpecs(&product, specs)
	return s.GetProductByID(product.ID)
}

func (s *productService) UpdateProduct(product models.Product, specs []IngredientSpec) (models.Product, error) {
	if err := s.db.Save(&product).Error; err != nil {
		return models.Product{}, err
	}

	// Replace-all semantics: a resubmitted ingredient set wipes the existing
	// links and recreates them from the payload. No specs means keep.
	if len(specs) > 0 {
		if err := s.db.Where("product_id = ?", product.ID).Delete(&models.ProductIngredient{}).Error; err != nil {
			return models.Product{}, err
		}
		s.applyIngredientSpecs(&product, specs)
	}

	return s.GetProductByID(product.ID)
}

// applyIngredientSpecs creates ingredient links from payload specs, creating
// unseen ingredients and ingredient categories by name. Malformed specs are
// logged and skipped so one bad entry does not reject the product.
func (s *productService) applyIngredientSpecs(product *models.Product, specs []IngredientSpec) {
	for _, spec := range specs {
		if spec.Name == "" {
			log.WithField("product_id", product.ID).Warn("Skipping ingredient spec without a name")
			continue
		}

		var category *models.IngredientCategory
		if spec.Category != "" {
			category = &models.IngredientCategory{}
			if err := s.db.Where("name = ?", spec.Category).
				FirstOrCreate(category, models.IngredientCategory{Name: spec.Category}).Error; err != nil {
				log.WithError(err).WithField("category", spec.Category).Warn("Failed to resolve ingredient category")
				continue
			}
		}

		var ingredient models.Ingredient
		err := s.db.Where("name = ?", spec.Name).First(&ingredient).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ingredient = models.Ingredient{Name: spec.Name, IsActive: true}
			if category != nil {
				ingredient.CategoryID = &category.ID
			}
			err = s.db.Create(&ingredient).Error
		}
		if err != nil {
			log.WithError(err).WithField("ingredient", spec.Name).Warn("Failed to resolve ingredient")
			continue
		}

		// An existing ingredient adopts the submitted category
		if category != nil && (ingredient.CategoryID == nil || *ingredient.CategoryID != category.ID) {
			ingredient.CategoryID = &category.ID
			s.db.Save(&ingredient)
		}

		maxQuantity := spec.MaxQuantity
		if maxQuantity < 1 {
			maxQuantity = 1
		}
		link := models.ProductIngredient{
			ProductID:    product.ID,
			IngredientID: ingredient.ID,
			IsRequired:   spec.IsRequired,
			MaxQuantity:  maxQuantity,
			GroupName:    models.DefaultIngredientGroup,
		}
		if err := s.db.Create(&link).Error; err != nil {
			log.WithError(err).WithFields(log.Fields{
				"product_id":    product.ID,
				"ingredient_id": ingredient.ID,
			}).Warn("Failed to link ingredient to product")
		}
	}
}

func (s *productService) DeleteProduct(id uint) error {
	if err := s.db.Where("product_id = ?", id).Delete(&models.ProductIngredient{}).Error; err != nil {
		return err
	}
	return s.db.Delete(&models.Product{}, id).Error
}

func (s *productService) AddIngredient(productID, ingredientID uint, isRequired bool, maxQuantity int) (models.ProductIngredient, error) {
	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		return models.ProductIngredient{}, ErrProductNotFound
	}
	var ingredient models.Ingredient
	if err := s.db.First(&ingredient, ingredientID).Error; err != nil {
		return models.ProductIngredient{}, ErrIngredientNotFound
	}

	if maxQuantity < 1 {
		maxQuantity = 1
	}

	var link models.ProductIngredient
	err := s.db.Where("product_id = ? AND ingredient_id = ?", productID, ingredientID).First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		link = models.ProductIngredient{
			ProductID:    productID,
			IngredientID: ingredientID,
			IsRequired:   isRequired,
			MaxQuantity:  maxQuantity,
			GroupName:    models.DefaultIngredientGroup,
		}
		if err := s.db.Create(&link).Error; err != nil {
			return models.ProductIngredient{}, err
		}
	} else if err != nil {
		return models.ProductIngredient{}, err
	} else {
		link.IsRequired = isRequired
		link.MaxQuantity = maxQuantity
		if err := s.db.Save(&link).Error; err != nil {
			return models.ProductIngredient{}, err
		}
	}

	link.Ingredient = &ingredient
	return link, nil
}

func (s *productService) RemoveIngredient(productID, ingredientID uint) error {
	result := s.db.Where("product_id = ? AND ingredient_id = ?", productID, ingredientID).
		Delete(&models.ProductIngredient{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLinkNotFound
	}
	return nil
}
