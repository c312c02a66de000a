package controllers

import (
	"net/http"
	"strconv"

	"github.com/comandago/gin-orders-api/internal/models"
	"github.com/comandago/gin-orders-api/internal/services"
	"github.com/gin-gonic/gin"
)

// CategoryController handles HTTP requests related to categories
type CategoryController interface {
	GetAllCategories(c *gin.Context)
	GetCategoryByID(c *gin.Context)
	CreateCategory(c *gin.Context)
	UpdateCategory(c *gin.Context)
	DeleteCategory(c *gin.Context)
	GetCategoryProducts(c *gin.Context)
}

type categoryController struct {
	service services.CategoryService
}

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

// NewCategoryController creates a new instance of CategoryController
func NewCategoryController(service services.CategoryService) CategoryController {
	return &categoryController{service: service}
}

// pathID parses the numeric :id path parameter.
func pathID(ctx *gin.Context, name string) (uint, bool) {
	raw, exists := ctx.Params.Get(name)
	if !exists {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing " + name + " parameter"})
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " format"})
		return 0, false
	}
	return uint(id), true
}

// GetAllCategories godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {array} models.Category
// @Security BearerAuth
// @Router /api/v1/categories [get]
func (ctl *categoryController) GetAllCategories(ctx *gin.Context) {
	categories, err := ctl.service.GetAllCategories()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve categories"})
		return
	}
	ctx.JSON(http.StatusOK, categories)
}

// GetCategoryByID godoc
// @Summary Get category by ID
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} models.Category
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/categories/{id} [get]
func (ctl *categoryController) GetCategoryByID(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	category, err := ctl.service.GetCategoryByID(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrCategoryNotFound, "Category not found"))
		return
	}
	ctx.JSON(http.StatusOK, category)
}

// CreateCategory godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Param category body categoryRequest true "Category data"
// @Success 201 {object} models.Category
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/categories [post]
func (ctl *categoryController) CreateCategory(ctx *gin.Context) {
	var req categoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.Name == "" {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Category name is required"))
		return
	}

	category := models.Category{Name: req.Name, Description: req.Description, IsActive: true}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	created, err := ctl.service.CreateCategory(category)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}
	ctx.JSON(http.StatusCreated, created)
}

// UpdateCategory godoc
// @Summary Update a category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param category body categoryRequest true "Category data"
// @Success 200 {object} models.Category
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/categories/{id} [put]
func (ctl *categoryController) UpdateCategory(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	existing, err := ctl.service.GetCategoryByID(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrCategoryNotFound, "Category not found"))
		return
	}

	var req categoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.Name != "" {
		existing.Name = req.Name
	}
	existing.Description = req.Description
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}

	updated, err := ctl.service.UpdateCategory(existing)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		return
	}
	ctx.JSON(http.StatusOK, updated)
}

// DeleteCategory godoc
// @Summary Delete a category with its products
// @Tags categories
// @Param id path int true "Category ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/categories/{id} [delete]
func (ctl *categoryController) DeleteCategory(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if _, err := ctl.service.GetCategoryByID(id); err != nil {
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrCategoryNotFound, "Category not found"))
		return
	}
	if err := ctl.service.DeleteCategory(id); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}
	ctx.JSON(http.StatusNoContent, nil)
}

// GetCategoryProducts godoc
// @Summary List products of a category
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {array} models.Product
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/categories/{id}/products [get]
func (ctl *categoryController) GetCategoryProducts(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if _, err := ctl.service.GetCategoryByID(id); err != nil {
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrCategoryNotFound, "Category not found"))
		return
	}
	products, err := ctl.service.GetCategoryProducts(id)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve products"})
		return
	}
	ctx.JSON(http.StatusOK, products)
}
