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

// OrderController handles the staff-facing order endpoints
type OrderController interface {
	GetAllOrders(c *gin.Context)
	GetOrderByID(c *gin.Context)
	CreateOrder(c *gin.Context)
	UpdateOrder(c *gin.Context)
	DeleteOrder(c *gin.Context)
}

type orderController struct {
	service services.OrderService
}

// NewOrderController creates a new instance of OrderController
func NewOrderController(service services.OrderService) OrderController {
	return &orderController{service: service}
}

type createOrderRequest struct {
	Items         []services.OrderItemInput `json:"items" binding:"required"`
	TotalAmount   *decimal.Decimal          `json:"total_amount"`
	PaymentMethod *string                   `json:"payment_method"`
	ChangeAmount  *decimal.Decimal          `json:"change_amount"`
	Notes         string                    `json:"notes"`
}

type updateOrderRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
	Notes  *string            `json:"notes"`
}

// GetAllOrders godoc
// @Summary List orders
// @Description Get all orders with items, ingredient customizations and customer info
// @Tags orders
// @Produce json
// @Success 200 {array} models.Order
// @Security BearerAuth
// @Router /api/v1/orders [get]
func (ctl *orderController) GetAllOrders(ctx *gin.Context) {
	orders, err := ctl.service.GetAllOrders()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve orders"})
		return
	}
	ctx.JSON(http.StatusOK, orders)
}

// GetOrderByID godoc
// @Summary Get order by ID
// @Tags orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} models.Order
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/orders/{id} [get]
func (ctl *orderController) GetOrderByID(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	order, err := ctl.service.GetOrderByID(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrOrderNotFound, "Order not found"))
		return
	}
	ctx.JSON(http.StatusOK, order)
}

// CreateOrder godoc
// @Summary Create an order
// @Description Create an order from the staff interface
// @Tags orders
// @Accept json
// @Produce json
// @Param order body createOrderRequest true "Order data"
// @Success 201 {object} models.Order
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/orders [post]
func (ctl *orderController) CreateOrder(ctx *gin.Context) {
	var req createOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Invalid order payload"))
		return
	}

	input := services.OrderInput{
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
		log.WithError(err).Error("Failed to create order")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}
	ctx.JSON(http.StatusCreated, order)
}

// UpdateOrder godoc
// @Summary Update order status and notes
// @Description Only the status and notes fields are writable after creation
// @Tags orders
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param order body updateOrderRequest true "Status update"
// @Success 200 {object} models.Order
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/orders/{id} [put]
func (ctl *orderController) UpdateOrder(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req updateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Order status is required"))
		return
	}
	if !models.ValidStatus(req.Status) {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Unknown order status"))
		return
	}

	order, err := ctl.service.UpdateOrder(id, req.Status, req.Notes)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrOrderNotFound, "Order not found"))
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		return
	}
	ctx.JSON(http.StatusOK, order)
}

// DeleteOrder godoc
// @Summary Delete an order with its items
// @Tags orders
// @Param id path int true "Order ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/orders/{id} [delete]
func (ctl *orderController) DeleteOrder(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if _, err := ctl.service.GetOrderByID(id); err != nil {
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrOrderNotFound, "Order not found"))
		return
	}
	if err := ctl.service.DeleteOrder(id); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order"})
		return
	}
	ctx.JSON(http.StatusNoContent, nil)
}
