package services

import (
	"github.com/comandago/gin-orders-api/internal/models"
	"gorm.io/gorm"
)

// PromotionService manages promotion campaigns order items can link to.
type PromotionService interface {
	GetAllPromotions() ([]models.Promotion, error)
	GetPromotionByID(id uint) (models.Promotion, error)
	CreatePromotion(promotion models.Promotion) (models.Promotion, error)
	UpdatePromotion(promotion models.Promotion) (models.Promotion, error)
	DeletePromotion(id uint) error
}

type promotionService struct {
	db *gorm.DB
}

func NewPromotionService(db *gorm.DB) PromotionService {
	return &promotionService{db: db}
}

func (s *promotionService) GetAllPromotions() ([]models.Promotion, error) {
	var promotions []models.Promotion
	if err := s.db.Find(&promotions).Error; err != nil {
		return nil, err
	}
	return promotions, nil
}

func (s *promotionService) GetPromotionByID(id uint) (models.Promotion, error) {
	var promotion models.Promotion
	if err := s.db.First(&promotion, id).Error; err != nil {
		return models.Promotion{}, err
	}
	return promotion, nil
}

func (s *promotionService) CreatePromotion(promotion models.Promotion) (models.Promotion, error) {
	if err := s.db.Create(&promotion).Error; err != nil {
		return models.Promotion{}, err
	}
	return promotion, nil
}

func (s *promotionService) UpdatePromotion(promotion models.Promotion) (models.Promotion, error) {
	if err := s.db.Save(&promotion).Error; err != nil {
		return models.Promotion{}, err
	}
	return promotion, nil
}

func (s *promotionService) DeletePromotion(id uint) error {
	return s.db.Delete(&models.Promotion{}, id).Error
}
