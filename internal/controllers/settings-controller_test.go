package controllers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/comandago/gin-orders-api/internal/models"
	"github.com/comandago/gin-orders-api/internal/services"
	"github.com/comandago/gin-orders-api/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupSettingsRouter(t *testing.T) (*gin.Engine, *gorm.DB, models.User) {
	gin.SetMode(gin.TestMode)
	db := setupTestDB(t)

	user := models.User{Username: "owner", Email: "owner@example.com", Role: "admin", IsStaff: true}
	require.NoError(t, db.Create(&user).Error)

	images, err := storage.NewImageStore(t.TempDir())
	require.NoError(t, err)

	controller := NewSettingsController(services.NewSettingsService(db), images)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userID", user.ID)
	})
	router.GET("/api/v1/settings", controller.GetSettings)
	router.PUT("/api/v1/settings", controller.UpdateSettings)
	return router, db, user
}

func putSettingsJSON(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/settings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetSettingsCreatesDefaults(t *testing.T) {
	router, _, _ := setupSettingsRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/settings", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var settings models.Settings
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &settings))
	assert.Equal(t, "My Business", settings.BusinessName)
	assert.True(t, settings.IsOpen)
}

func TestUpdateSettingsOpeningHoursJSONVariants(t *testing.T) {
	router, db, _ := setupSettingsRouter(t)

	// Plain array
	w := putSettingsJSON(t, router, `{
		"business_name": "Taqueria Sol",
		"opening_hours": [
			{"day_of_week": 0, "opening_time": "09:00", "closing_time": "17:00"},
			{"day_of_week": 1, "opening_time": "09:00", "closing_time": "17:00"},
			{"day_of_week": 2, "opening_time": "09:00", "closing_time": "17:00"}
		]
	}`)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.OpeningHour{}).Count(&count)
	require.Equal(t, int64(3), count)

	// The same list wrapped in a JSON string, as browser forms submit it.
	// It fully replaces the stored rows.
	w = putSettingsJSON(t, router, `{
		"opening_hours": "[{\"day_of_week\":5,\"opening_time\":\"10:00\",\"closing_time\":\"23:00\"},{\"day_of_week\":6,\"opening_time\":\"00:00\",\"closing_time\":\"00:00\",\"is_open\":false}]"
	}`)
	require.Equal(t, http.StatusOK, w.Code)

	var rows []models.OpeningHour
	require.NoError(t, db.Order("day_of_week").Find(&rows).Error)
	require.Len(t, rows, 2)
	assert.Equal(t, 5, rows[0].DayOfWeek)
	assert.True(t, rows[0].IsOpen)
	assert.Equal(t, 6, rows[1].DayOfWeek)
	assert.False(t, rows[1].IsOpen)
}

func TestUpdateSettingsRejectsMalformedOpeningHours(t *testing.T) {
	router, _, _ := setupSettingsRouter(t)

	w := putSettingsJSON(t, router, `{"opening_hours": "not json"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateSettingsMultipart(t *testing.T) {
	router, db, user := setupSettingsRouter(t)

	buf := &bytes.Buffer{}
	form := multipart.NewWriter(buf)
	require.NoError(t, form.WriteField("business_name", "Taqueria Sol"))
	require.NoError(t, form.WriteField("is_open", "false"))
	require.NoError(t, form.WriteField("delivery_fee", "2.50"))
	require.NoError(t, form.WriteField("opening_hours", `[{"day_of_week":4,"opening_time":"10:00","closing_time":"23:00"}]`))
	file, err := form.CreateFormFile("business_photo", "front.png")
	require.NoError(t, err)
	_, err = file.Write([]byte("png bytes"))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPut, "/api/v1/settings", buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var stored models.Settings
	require.NoError(t, db.Preload("OpeningHours").Where("user_id = ?", user.ID).First(&stored).Error)
	assert.Equal(t, "Taqueria Sol", stored.BusinessName)
	assert.False(t, stored.IsOpen)
	assert.True(t, stored.DeliveryFee.Equal(decimal.RequireFromString("2.50")))
	require.Len(t, stored.OpeningHours, 1)
	assert.Equal(t, 4, stored.OpeningHours[0].DayOfWeek)
	assert.NotEmpty(t, stored.BusinessPhoto)

	var resp models.Settings
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.BusinessPhoto, "/media/business/")
}
