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
	"gorm.io/datatypes"
)

// SettingsController handles the business configuration endpoints
type SettingsController interface {
	GetSettings(c *gin.Context)
	UpdateSettings(c *gin.Context)
}

type settingsController struct {
	service services.SettingsService
	images  *storage.ImageStore
}

// NewSettingsController creates a new instance of SettingsController
func NewSettingsController(service services.SettingsService, images *storage.ImageStore) SettingsController {
	return &settingsController{service: service, images: images}
}

func currentUserID(ctx *gin.Context) (uint, bool) {
	raw, exists := ctx.Get("userID")
	if !exists {
		ctx.JSON(http.StatusUnauthorized, models.NewAPIError(models.ErrUnauthorized, "Authentication required"))
		return 0, false
	}
	id, ok := raw.(uint)
	if !ok || id == 0 {
		ctx.JSON(http.StatusUnauthorized, models.NewAPIError(models.ErrUnauthorized, "Authentication required"))
		return 0, false
	}
	return id, true
}

// GetSettings godoc
// @Summary Get business settings
// @Description Get the authenticated user's business settings, created with defaults on first access
// @Tags settings
// @Produce json
// @Success 200 {object} models.Settings
// @Security BearerAuth
// @Router /api/v1/settings [get]
func (ctl *settingsController) GetSettings(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	settings, err := ctl.service.GetOrCreateSettings(userID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve settings"})
		return
	}
	settings.BusinessPhoto = storage.AbsoluteURL(ctx, settings.BusinessPhoto)
	ctx.JSON(http.StatusOK, settings)
}

// UpdateSettings godoc
// @Summary Update business settings
// @Description Update business settings. Accepts JSON or multipart form data with an optional business_photo upload. A submitted opening_hours list replaces all stored rows.
// @Tags settings
// @Accept json
// @Accept mpfd
// @Produce json
// @Param settings body services.SettingsInput true "Settings data"
// @Success 200 {object} models.Settings
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/settings [put]
func (ctl *settingsController) UpdateSettings(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	input, photoPath, err := ctl.bindSettingsInput(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Invalid settings payload"))
		return
	}

	if photoPath != "" {
		existing, err := ctl.service.GetOrCreateSettings(userID)
		if err == nil && existing.BusinessPhoto != "" {
			if err := ctl.images.Remove(existing.BusinessPhoto); err != nil {
				log.WithError(err).Warn("Failed to remove replaced business photo")
			}
		}
		input.BusinessPhoto = &photoPath
	}

	settings, err := ctl.service.UpdateSettings(userID, input)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settings"})
		return
	}

	settings.BusinessPhoto = storage.AbsoluteURL(ctx, settings.BusinessPhoto)
	ctx.JSON(http.StatusOK, settings)
}

// bindSettingsInput decodes a JSON or multipart settings update. Multipart
// forms carry opening_hours as a JSON-encoded string and may include a
// business_photo file.
func (ctl *settingsController) bindSettingsInput(ctx *gin.Context) (services.SettingsInput, string, error) {
	var input services.SettingsInput

	if strings.HasPrefix(ctx.ContentType(), "multipart/form-data") {
		if err := ctl.bindMultipartSettings(ctx, &input); err != nil {
			return input, "", err
		}
		photoPath := ""
		if fh, err := ctx.FormFile("business_photo"); err == nil {
			path, err := ctl.images.SaveUpload(fh, "business")
			if err != nil {
				return input, "", err
			}
			photoPath = path
		}
		return input, photoPath, nil
	}

	body := struct {
		services.SettingsInput
		OpeningHours json.RawMessage `json:"opening_hours"`
	}{}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return input, "", err
	}
	input = body.SettingsInput
	if len(body.OpeningHours) > 0 {
		hours, err := parseOpeningHours(body.OpeningHours)
		if err != nil {
			return input, "", err
		}
		input.OpeningHours = hours
	}
	return input, "", nil
}

func (ctl *settingsController) bindMultipartSettings(ctx *gin.Context, input *services.SettingsInput) error {
	strField := func(name string) *string {
		if v, ok := ctx.GetPostForm(name); ok {
			return &v
		}
		return nil
	}

	input.BusinessName = strField("business_name")
	input.BusinessPhone = strField("business_phone")
	input.BusinessAddress = strField("business_address")
	input.BusinessEmail = strField("business_email")
	input.BusinessDesc = strField("business_description")
	input.BusinessSlug = strField("business_slug")
	input.OpeningTime = strField("opening_time")
	input.ClosingTime = strField("closing_time")

	for name, target := range map[string]**bool{
		"is_open":            &input.IsOpen,
		"delivery_available": &input.DeliveryAvailable,
	} {
		if raw, ok := ctx.GetPostForm(name); ok {
			v, err := strconv.ParseBool(raw)
			if err != nil {
				return err
			}
			*target = &v
		}
	}

	for name, target := range map[string]**decimal.Decimal{
		"delivery_fee":        &input.DeliveryFee,
		"minimum_order_value": &input.MinimumOrderValue,
		"tax_rate":            &input.TaxRate,
	} {
		if raw, ok := ctx.GetPostForm(name); ok {
			v, err := decimal.NewFromString(raw)
			if err != nil {
				return err
			}
			*target = &v
		}
	}

	if raw, ok := ctx.GetPostForm("payment_methods"); ok && raw != "" {
		var methods datatypes.JSONMap
		if err := json.Unmarshal([]byte(raw), &methods); err != nil {
			return err
		}
		input.PaymentMethods = methods
	}

	if raw, ok := ctx.GetPostForm("opening_hours"); ok && raw != "" {
		hours, err := parseOpeningHours(json.RawMessage(raw))
		if err != nil {
			return err
		}
		input.OpeningHours = hours
	}
	return nil
}

// parseOpeningHours accepts the list directly or wrapped in a JSON string,
// which is how browser form clients submit it.
func parseOpeningHours(raw json.RawMessage) ([]services.OpeningHourInput, error) {
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "\"") {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil, err
		}
		raw = json.RawMessage(inner)
	}
	var hours []services.OpeningHourInput
	if err := json.Unmarshal(raw, &hours); err != nil {
		return nil, err
	}
	return hours, nil
}
