package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/comandago/gin-orders-api/internal/models"
	"github.com/comandago/gin-orders-api/internal/services"
	"github.com/comandago/gin-orders-api/internal/storage"
	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
	log "github.com/sirupsen/logrus"
)

// MenuController handles the public storefront menu endpoints
type MenuController interface {
	GetMenu(c *gin.Context)
	GetMenuQRCode(c *gin.Context)
}

type menuController struct {
	service  services.MenuService
	settings services.SettingsService
}

// NewMenuController creates a new instance of MenuController
func NewMenuController(service services.MenuService, settings services.SettingsService) MenuController {
	return &menuController{service: service, settings: settings}
}

// GetMenu godoc
// @Summary Get the public menu
// @Description Get the storefront menu for a business slug, with active categories and products only
// @Tags menu
// @Produce json
// @Param slug query string true "Business slug"
// @Success 200 {object} services.PublicMenu
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/public/menu [get]
func (ctl *menuController) GetMenu(ctx *gin.Context) {
	businessSlug := ctx.Query("slug")
	if businessSlug == "" {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "slug query parameter is required"))
		return
	}

	menu, err := ctl.service.GetPublicMenu(businessSlug)
	if err != nil {
		if errors.Is(err, services.ErrBusinessNotFound) {
			ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrBusinessNotFound, "Business not found"))
			return
		}
		log.WithError(err).Error("Failed to build public menu")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve menu"})
		return
	}

	menu.BusinessPhoto = storage.AbsoluteURL(ctx, menu.BusinessPhoto)
	for ci := range menu.Categories {
		for pi := range menu.Categories[ci].Products {
			product := &menu.Categories[ci].Products[pi]
			product.Image = storage.AbsoluteURL(ctx, product.Image)
		}
	}

	ctx.JSON(http.StatusOK, menu)
}

// GetMenuQRCode godoc
// @Summary Get a QR code for the public menu
// @Description Generate a PNG QR code pointing at the storefront menu for a business slug
// @Tags menu
// @Produce png
// @Param slug query string true "Business slug"
// @Success 200 {string} binary
// @Failure 400 {object} map[string]string
// @Router /api/v1/public/menu/qrcode [get]
func (ctl *menuController) GetMenuQRCode(ctx *gin.Context) {
	businessSlug := ctx.Query("slug")
	if businessSlug == "" {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "slug query parameter is required"))
		return
	}

	if _, err := ctl.settings.GetSettingsBySlug(businessSlug); err != nil {
		if errors.Is(err, services.ErrBusinessNotFound) {
			ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrBusinessNotFound, "Business not found"))
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate QR code"})
		return
	}

	scheme := "http"
	if ctx.Request.TLS != nil {
		scheme = "https"
	}
	menuURL := fmt.Sprintf("%s://%s/api/v1/public/menu?slug=%s", scheme, ctx.Request.Host, businessSlug)

	png, err := qrcode.Encode(menuURL, qrcode.Medium, 256)
	if err != nil {
		log.WithError(err).Error("Failed to encode QR code")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate QR code"})
		return
	}
	ctx.Data(http.StatusOK, "image/png", png)
}
