package controllers

import (
	"errors"
	"net/http"

	"github.com/comandago/gin-orders-api/internal/models"
	"github.com/comandago/gin-orders-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// ClientOrderController handles the public storefront checkout endpoint
type ClientOrderController interface {
	CreateClientOrder(c *gin.Context)
}

type clientOrderController struct {
	service services.OrderService
}

// NewClientOrderController creates a new instance of ClientOrderController
func NewClientOrderController(service services.OrderService) ClientOrderController {
	return &clientOrderController{service: service}
}

type clientOrderRequest struct {
	CustomerName    string                    `json:"customer_name" binding:"required"`
	CustomerPhone   string                    `json:"customer_phone" binding:"required"`
	CustomerAddress string                    `json:"customer_address"`
	Items           []services.OrderItemInput `json:"items" binding:"required"`
	TotalAmount     *decimal.Decimal          `json:"total_amount"`
	PaymentMethod   *string                   `json:"payment_method"`
	ChangeAmount    *decimal.Decimal          `json:"change_amount"`
	Notes           string                    `json:"notes"`
}

// CreateClientOrder godoc
// @Summary Place a storefront order
// @Description Create an order from the public menu without authentication
// @Tags client-orders
// @Accept json
// @Produce json
// @Param order body clientOrderRequest true "Order data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /api/v1/public/client-orders [post]
func (ctl *clientOrderController) CreateClientOrder(ctx *gin.Context) {
	var req clientOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed,
			"customer_name, customer_phone and items are required"))
		return
	}

	input := services.OrderInput{
		Customer: &services.CustomerInfo{
			Name:    req.CustomerName,
			Phone:   req.CustomerPhone,
			Address: req.CustomerAddress,
			Notes:   req.Notes,
		},
		Items:         req.Items,
		TotalAmount:   req.TotalAmount,
		PaymentMethod: req.PaymentMethod,
		ChangeAmount:  req.ChangeAmount,
		Notes:         req.Notes,
	}

	order, err := ctl.service.CreateOrder(input, services.DefaultOrderOptions())
	if err != nil {
		var itemErr *services.ItemValidationError
		if errors.As(err, &itemErr) {
			ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrOrderInvalidItems, itemErr.Error(),
				map[string]interface{}{"item_index": itemErr.Index}))
			return
		}
		log.WithError(err).Error("Failed to create client order")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"id":      order.ID,
		"status":  "success",
		"message": "Order created successfully",
	})
}
