package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/comandago/gin-orders-api/internal/models"
	"github.com/comandago/gin-orders-api/internal/services"
	"github.com/comandago/gin-orders-api/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// ProductController handles HTTP requests related to products
type ProductController interface {
	GetAllProducts(c *gin.Context)
	GetProductByID(c *gin.Context)
	CreateProduct(c *gin.Context)
	UpdateProduct(c *gin.Context)
	DeleteProduct(c *gin.Context)
	AddIngredient(c *gin.Context)
	RemoveIngredient(c *gin.Context)
}

type productController struct {
	service services.ProductService
	images  *storage.ImageStore
}

// NewProductController creates a new instance of ProductController
func NewProductController(service services.ProductService, images *storage.ImageStore) ProductController {
	return &productController{service: service, images: images}
}

// productPayload is the decoded body of a product create/update request,
// accepted as JSON or as a multipart form (for image uploads).
type productPayload struct {
	Name        string                    `json:"name"`
	Description string                    `json:"description"`
	Price       *decimal.Decimal          `json:"price"`
	CategoryID  uint                      `json:"category_id"`
	IsActive    *bool                     `json:"is_active"`
	Ingredients []services.IngredientSpec `json:"ingredients"`
	imagePath   string
}

// bindProductPayload decodes the request. Multipart forms carry the
// ingredient list as a JSON-encoded string and may include an image file.
func (ctl *productController) bindProductPayload(ctx *gin.Context) (*productPayload, error) {
	if strings.HasPrefix(ctx.ContentType(), "multipart/form-data") {
		return ctl.bindMultipartProduct(ctx)
	}

	var payload productPayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (ctl *productController) bindMultipartProduct(ctx *gin.Context) (*productPayload, error) {
	payload := &productPayload{
		Name:        ctx.PostForm("name"),
		Description: ctx.PostForm("description"),
	}

	if raw := ctx.PostForm("price"); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, err
		}
		payload.Price = &price
	}
	if raw := ctx.PostForm("category_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return nil, err
		}
		payload.CategoryID = uint(id)
	}
	if raw := ctx.PostForm("is_active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, err
		}
		payload.IsActive = &active
	}
	if raw := ctx.PostForm("ingredients"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &payload.Ingredients); err != nil {
			return nil, err
		}
	}

	if fh, err := ctx.FormFile("image"); err == nil {
		path, err := ctl.images.SaveUpload(fh, "products")
		if err != nil {
			return nil, err
		}
		payload.imagePath = path
	}

	return payload, nil
}

// GetAllProducts godoc
// @Summary List products
// @Description Get all products with category and ingredient links
// @Tags products
// @Produce json
// @Success 200 {array} models.Product
// @Router /api/v1/public/products [get]
func (ctl *productController) GetAllProducts(ctx *gin.Context) {
	products, err := ctl.service.GetAllProducts()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve products"})
		return
	}
	for i := range products {
		products[i].Image = storage.AbsoluteURL(ctx, products[i].Image)
	}
	ctx.JSON(http.StatusOK, products)
}

// GetProductByID godoc
// @Summary Get product by ID
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Product
// @Failure 404 {object} map[string]string
// @Router /api/v1/public/products/{id} [get]
func (ctl *productController) GetProductByID(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	product, err := ctl.service.GetProductByID(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrProductNotFound, "Product not found"))
		return
	}
	product.Image = storage.AbsoluteURL(ctx, product.Image)
	ctx.JSON(http.StatusOK, product)
}

// CreateProduct godoc
// @Summary Create a product
// @Description Create a product, optionally with an image upload and an ingredient list
// @Tags products
// @Accept json
// @Accept mpfd
// @Produce json
// @Param product body productPayload true "Product data"
// @Success 201 {object} models.Product
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/products [post]
func (ctl *productController) CreateProduct(ctx *gin.Context) {
	payload, err := ctl.bindProductPayload(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Invalid product payload"))
		return
	}
	if payload.Name == "" || payload.CategoryID == 0 {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Product name and category_id are required"))
		return
	}

	product := models.Product{
		Name:        payload.Name,
		Description: payload.Description,
		CategoryID:  payload.CategoryID,
		Image:       payload.imagePath,
		IsActive:    true,
	}
	if payload.Price != nil {
		if payload.Price.IsNegative() {
			ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Price must not be negative"))
			return
		}
		product.Price = *payload.Price
	}
	if payload.IsActive != nil {
		product.IsActive = *payload.IsActive
	}

	created, err := ctl.service.CreateProduct(product, payload.Ingredients)
	if err != nil {
		log.WithError(err).Error("Failed to create product")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}
	ctx.JSON(http.StatusCreated, created)
}

// UpdateProduct godoc
// @Summary Update a product
// @Description Update a product. A submitted ingredient list replaces all existing links.
// @Tags products
// @Accept json
// @Accept mpfd
// @Produce json
// @Param id path int true "Product ID"
// @Param product body productPayload true "Product data"
// @Success 200 {object} models.Product
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/products/{id} [put]
func (ctl *productController) UpdateProduct(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	existing, err := ctl.service.GetProductByID(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrProductNotFound, "Product not found"))
		return
	}

	payload, err := ctl.bindProductPayload(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Invalid product payload"))
		return
	}

	product := existing
	product.Ingredients = nil
	if payload.Name != "" {
		product.Name = payload.Name
	}
	if payload.Description != "" {
		product.Description = payload.Description
	}
	if payload.CategoryID != 0 {
		product.CategoryID = payload.CategoryID
	}
	if payload.Price != nil {
		if payload.Price.IsNegative() {
			ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Price must not be negative"))
			return
		}
		product.Price = *payload.Price
	}
	if payload.IsActive != nil {
		product.IsActive = *payload.IsActive
	}
	if payload.imagePath != "" {
		if err := ctl.images.Remove(existing.Image); err != nil {
			log.WithError(err).Warn("Failed to remove replaced product image")
		}
		product.Image = payload.imagePath
	}

	updated, err := ctl.service.UpdateProduct(product, payload.Ingredients)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}
	ctx.JSON(http.StatusOK, updated)
}

// DeleteProduct godoc
// @Summary Delete a product with its ingredient links
// @Tags products
// @Param id path int true "Product ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/products/{id} [delete]
func (ctl *productController) DeleteProduct(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	existing, err := ctl.service.GetProductByID(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrProductNotFound, "Product not found"))
		return
	}
	if err := ctl.service.DeleteProduct(id); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}
	if err := ctl.images.Remove(existing.Image); err != nil {
		log.WithError(err).Warn("Failed to remove product image")
	}
	ctx.JSON(http.StatusNoContent, nil)
}

type addIngredientRequest struct {
	IngredientID uint `json:"ingredient_id" binding:"required"`
	IsRequired   bool `json:"is_required"`
	MaxQuantity  int  `json:"max_quantity"`
}

// AddIngredient godoc
// @Summary Attach an ingredient to a product
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param link body addIngredientRequest true "Link data"
// @Success 200 {object} models.ProductIngredient
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/products/{id}/ingredients [post]
func (ctl *productController) AddIngredient(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req addIngredientRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "ingredient_id is required"))
		return
	}

	link, err := ctl.service.AddIngredient(id, req.IngredientID, req.IsRequired, req.MaxQuantity)
	if err != nil {
		switch err {
		case services.ErrProductNotFound:
			ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrProductNotFound, "Product not found"))
		case services.ErrIngredientNotFound:
			ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrIngredientNotFound, "Ingredient not found"))
		default:
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add ingredient"})
		}
		return
	}
	ctx.JSON(http.StatusOK, link)
}

// RemoveIngredient godoc
// @Summary Detach an ingredient from a product
// @Tags products
// @Param id path int true "Product ID"
// @Param ingredientId path int true "Ingredient ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/products/{id}/ingredients/{ingredientId} [delete]
func (ctl *productController) RemoveIngredient(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	ingredientID, ok := pathID(ctx, "ingredientId")
	if !ok {
		return
	}

	if err := ctl.service.RemoveIngredient(id, ingredientID); err != nil {
		if err == services.ErrLinkNotFound {
			ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrIngredientNotFound, "Ingredient not linked to product"))
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove ingredient"})
		return
	}
	ctx.JSON(http.StatusNoContent, nil)
}
