package controllers

import (
	"net/http"

	"github.com/comandago/gin-orders-api/internal/models"
	"github.com/comandago/gin-orders-api/internal/services"
	"github.com/gin-gonic/gin"
)

// PromotionController handles HTTP requests related to promotions
type PromotionController interface {
	GetAllPromotions(c *gin.Context)
	GetPromotionByID(c *gin.Context)
	CreatePromotion(c *gin.Context)
	UpdatePromotion(c *gin.Context)
	DeletePromotion(c *gin.Context)
}

type promotionController struct {
	service services.PromotionService
}

// NewPromotionController creates a new instance of PromotionController
func NewPromotionController(service services.PromotionService) PromotionController {
	return &promotionController{service: service}
}

type promotionRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

// GetAllPromotions godoc
// @Summary List promotions
// @Tags promotions
// @Produce json
// @Success 200 {array} models.Promotion
// @Security BearerAuth
// @Router /api/v1/promotions [get]
func (ctl *promotionController) GetAllPromotions(ctx *gin.Context) {
	promotions, err := ctl.service.GetAllPromotions()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve promotions"})
		return
	}
	ctx.JSON(http.StatusOK, promotions)
}

// GetPromotionByID godoc
// @Summary Get promotion by ID
// @Tags promotions
// @Produce json
// @Param id path int true "Promotion ID"
// @Success 200 {object} models.Promotion
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/promotions/{id} [get]
func (ctl *promotionController) GetPromotionByID(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	promotion, err := ctl.service.GetPromotionByID(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrNotFound, "Promotion not found"))
		return
	}
	ctx.JSON(http.StatusOK, promotion)
}

// CreatePromotion godoc
// @Summary Create a promotion
// @Tags promotions
// @Accept json
// @Produce json
// @Param promotion body promotionRequest true "Promotion data"
// @Success 201 {object} models.Promotion
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/promotions [post]
func (ctl *promotionController) CreatePromotion(ctx *gin.Context) {
	var req promotionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Promotion name is required"))
		return
	}

	promotion := models.Promotion{Name: req.Name, Description: req.Description, IsActive: true}
	if req.IsActive != nil {
		promotion.IsActive = *req.IsActive
	}

	created, err := ctl.service.CreatePromotion(promotion)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create promotion"})
		return
	}
	ctx.JSON(http.StatusCreated, created)
}

// UpdatePromotion godoc
// @Summary Update a promotion
// @Tags promotions
// @Accept json
// @Produce json
// @Param id path int true "Promotion ID"
// @Param promotion body promotionRequest true "Promotion data"
// @Success 200 {object} models.Promotion
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/promotions/{id} [put]
func (ctl *promotionController) UpdatePromotion(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	existing, err := ctl.service.GetPromotionByID(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrNotFound, "Promotion not found"))
		return
	}

	var req promotionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Promotion name is required"))
		return
	}

	existing.Name = req.Name
	existing.Description = req.Description
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}

	updated, err := ctl.service.UpdatePromotion(existing)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update promotion"})
		return
	}
	ctx.JSON(http.StatusOK, updated)
}

// DeletePromotion godoc
// @Summary Delete a promotion
// @Tags promotions
// @Param id path int true "Promotion ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/promotions/{id} [delete]
func (ctl *promotionController) DeletePromotion(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if _, err := ctl.service.GetPromotionByID(id); err != nil {
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrNotFound, "Promotion not found"))
		return
	}
	if err := ctl.service.DeletePromotion(id); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete promotion"})
		return
	}
	ctx.JSON(http.StatusNoContent, nil)
}
