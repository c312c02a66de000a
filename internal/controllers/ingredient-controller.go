package controllers

import (
	"net/http"

	"github.com/comandago/gin-orders-api/internal/models"
	"github.com/comandago/gin-orders-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// IngredientController handles HTTP requests related to ingredients
type IngredientController interface {
	GetAllIngredients(c *gin.Context)
	GetAvailableIngredients(c *gin.Context)
	GetIngredientByID(c *gin.Context)
	CreateIngredient(c *gin.Context)
	UpdateIngredient(c *gin.Context)
	DeleteIngredient(c *gin.Context)
}

type ingredientController struct {
	service services.IngredientService
}

// NewIngredientController creates a new instance of IngredientController
func NewIngredientController(service services.IngredientService) IngredientController {
	return &ingredientController{service: service}
}

type ingredientRequest struct {
	Name     string           `json:"name" binding:"required"`
	Price    *decimal.Decimal `json:"price"`
	Category string           `json:"category"`
	IsActive *bool            `json:"is_active"`
}

// GetAllIngredients godoc
// @Summary List ingredients
// @Tags ingredients
// @Produce json
// @Success 200 {array} models.Ingredient
// @Security BearerAuth
// @Router /api/v1/ingredients [get]
func (ctl *ingredientController) GetAllIngredients(ctx *gin.Context) {
	ingredients, err := ctl.service.GetAllIngredients()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve ingredients"})
		return
	}
	ctx.JSON(http.StatusOK, ingredients)
}

// GetAvailableIngredients godoc
// @Summary List active ingredients
// @Tags ingredients
// @Produce json
// @Success 200 {array} models.Ingredient
// @Router /api/v1/public/ingredients [get]
func (ctl *ingredientController) GetAvailableIngredients(ctx *gin.Context) {
	ingredients, err := ctl.service.GetAvailableIngredients()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve ingredients"})
		return
	}
	ctx.JSON(http.StatusOK, ingredients)
}

// GetIngredientByID godoc
// @Summary Get ingredient by ID
// @Tags ingredients
// @Produce json
// @Param id path int true "Ingredient ID"
// @Success 200 {object} models.Ingredient
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/ingredients/{id} [get]
func (ctl *ingredientController) GetIngredientByID(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	ingredient, err := ctl.service.GetIngredientByID(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrIngredientNotFound, "Ingredient not found"))
		return
	}
	ctx.JSON(http.StatusOK, ingredient)
}

// CreateIngredient godoc
// @Summary Create an ingredient
// @Description Create an ingredient. A category name creates the ingredient category when missing.
// @Tags ingredients
// @Accept json
// @Produce json
// @Param ingredient body ingredientRequest true "Ingredient data"
// @Success 201 {object} models.Ingredient
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/ingredients [post]
func (ctl *ingredientController) CreateIngredient(ctx *gin.Context) {
	var req ingredientRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Ingredient name is required"))
		return
	}

	ingredient := models.Ingredient{Name: req.Name, IsActive: true}
	if req.Price != nil {
		ingredient.Price = *req.Price
	}
	if req.IsActive != nil {
		ingredient.IsActive = *req.IsActive
	}

	created, err := ctl.service.CreateIngredient(ingredient, req.Category)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create ingredient"})
		return
	}
	ctx.JSON(http.StatusCreated, created)
}

// UpdateIngredient godoc
// @Summary Update an ingredient
// @Tags ingredients
// @Accept json
// @Produce json
// @Param id path int true "Ingredient ID"
// @Param ingredient body ingredientRequest true "Ingredient data"
// @Success 200 {object} models.Ingredient
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/ingredients/{id} [put]
func (ctl *ingredientController) UpdateIngredient(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	existing, err := ctl.service.GetIngredientByID(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrIngredientNotFound, "Ingredient not found"))
		return
	}

	var req ingredientRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Ingredient name is required"))
		return
	}

	existing.Name = req.Name
	if req.Price != nil {
		existing.Price = *req.Price
	}
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}

	updated, err := ctl.service.UpdateIngredient(existing, req.Category)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update ingredient"})
		return
	}
	ctx.JSON(http.StatusOK, updated)
}

// DeleteIngredient godoc
// @Summary Delete an ingredient with its product links
// @Tags ingredients
// @Param id path int true "Ingredient ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/ingredients/{id} [delete]
func (ctl *ingredientController) DeleteIngredient(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if _, err := ctl.service.GetIngredientByID(id); err != nil {
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrIngredientNotFound, "Ingredient not found"))
		return
	}
	if err := ctl.service.DeleteIngredient(id); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete ingredient"})
		return
	}
	ctx.JSON(http.StatusNoContent, nil)
}
