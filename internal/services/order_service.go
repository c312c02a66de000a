package services

import (
	"errors"
	"fmt"

	"github.com/comandago/gin-orders-api/internal/models"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrOrderNotFound = errors.New("order_not_found")

// ReferencePolicy decides what happens when a line item references a product
// that does not exist.
type ReferencePolicy int

const (
	// SkipMissingReference drops the offending line item and keeps building
	// the rest of the order
	SkipMissingReference ReferencePolicy = iota
	// RejectOnMissingReference fails the submission on the first unresolvable
	// product. Items created before the failure are not rolled back.
	RejectOnMissingReference
)

// OrderOptions configures order construction behavior per call site.
type OrderOptions struct {
	// MissingProduct is applied when a line item's product id resolves to
	// no catalog row
	MissingProduct ReferencePolicy
	// AutoLinkUnknownIngredient creates the product/ingredient catalog link
	// when an ordered customization has none, instead of ignoring the gap
	AutoLinkUnknownIngredient bool
}

// DefaultOrderOptions matches the historical behavior: skip unresolvable
// products and self-heal missing catalog links.
func DefaultOrderOptions() OrderOptions {
	return OrderOptions{
		MissingProduct:            SkipMissingReference,
		AutoLinkUnknownIngredient: true,
	}
}

// IngredientSelection is one ingredient customization on a line item.
type IngredientSelection struct {
	IngredientID uint             `json:"ingredient"`
	IsAdded      *bool            `json:"is_added"`
	Price        *decimal.Decimal `json:"price"`
}

// OrderItemInput is one line of a cart submission.
type OrderItemInput struct {
	ProductID   uint                  `json:"product_id"`
	Quantity    int                   `json:"quantity"`
	UnitPrice   *decimal.Decimal      `json:"unit_price"`
	Notes       string                `json:"notes"`
	Ingredients []IngredientSelection `json:"ingredients"`
	PromotionID *uint                 `json:"promotion_id"`
	ItemType    models.OrderItemType  `json:"item_type"`
}

// CustomerInfo is the contact block of an unauthenticated client order.
type CustomerInfo struct {
	Name    string `json:"customer_name"`
	Phone   string `json:"customer_phone"`
	Address string `json:"customer_address"`
	Notes   string `json:"notes"`
}

// OrderInput is a full cart submission.
type OrderInput struct {
	// Customer is set only on the unauthenticated client path and produces
	// the 1:1 ClientOrder record
	Customer      *CustomerInfo
	Items         []OrderItemInput
	TotalAmount   *decimal.Decimal
	PaymentMethod *string
	ChangeAmount  *decimal.Decimal
	Notes         string
}

// ItemValidationError reports which line item failed pre-write validation.
type ItemValidationError struct {
	Index   int
	Message string
}

func (e *ItemValidationError) Error() string {
	return fmt.Sprintf("item %d: %s", e.Index, e.Message)
}

// OrderService turns cart submissions into persisted orders and manages the
// staff order surface.
type OrderService interface {
	// CreateOrder validates the submission, persists the order header, the
	// line items and their ingredient customizations, and returns the
	// persisted order with generated identifiers
	CreateOrder(input OrderInput, opts OrderOptions) (models.Order, error)
	GetAllOrders() ([]models.Order, error)
	GetOrderByID(id uint) (models.Order, error)
	// UpdateOrder mutates only the status and notes of an existing order
	UpdateOrder(id uint, status models.OrderStatus, notes *string) (models.Order, error)
	DeleteOrder(id uint) error
}

type orderService struct {
	db *gorm.DB
}

// NewOrderService creates a new instance of OrderService
func NewOrderService(db *gorm.DB) OrderService {
	return &orderService{db: db}
}

func (s *orderService) CreateOrder(input OrderInput, opts OrderOptions) (models.Order, error) {
	// Fail fast before any write: every line item must carry a product
	// reference. Whether the reference resolves is checked later, per policy.
	if len(input.Items) == 0 {
		return models.Order{}, &ItemValidationError{Index: 0, Message: "order has no items"}
	}
	for i, item := range input.Items {
		if item.ProductID == 0 {
			return models.Order{}, &ItemValidationError{Index: i, Message: "missing product reference"}
		}
	}

	declaredTotal := decimal.Zero
	if input.TotalAmount != nil {
		declaredTotal = *input.TotalAmount
	}

	order := models.Order{
		Status:        models.StatusPending,
		TotalAmount:   declaredTotal,
		PaymentMethod: input.PaymentMethod,
		Notes:         input.Notes,
	}
	if input.ChangeAmount != nil {
		order.ChangeAmount = decimal.NewNullDecimal(*input.ChangeAmount)
	}
	if err := s.db.Create(&order).Error; err != nil {
		return models.Order{}, err
	}

	if input.Customer != nil {
		clientOrder := models.ClientOrder{
			OrderID:         order.ID,
			CustomerName:    input.Customer.Name,
			CustomerPhone:   input.Customer.Phone,
			CustomerAddress: input.Customer.Address,
			Notes:           input.Customer.Notes,
			TotalAmount:     declaredTotal,
			PaymentMethod:   input.PaymentMethod,
			ChangeAmount:    order.ChangeAmount,
		}
		if err := s.db.Create(&clientOrder).Error; err != nil {
			return models.Order{}, err
		}
	}

	computedTotal := decimal.Zero
	for i, itemInput := range input.Items {
		item, err := s.createOrderItem(order.ID, i, itemInput, opts)
		if err != nil {
			return models.Order{}, err
		}
		if item == nil {
			continue // skipped per policy
		}
		computedTotal = computedTotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	// Total policy: a client-declared total is trusted as-is; when absent the
	// total is recomputed from the persisted line items.
	if input.TotalAmount == nil {
		order.TotalAmount = computedTotal
		if err := s.db.Model(&order).Update("total_amount", computedTotal).Error; err != nil {
			return models.Order{}, err
		}
	}

	return s.GetOrderByID(order.ID)
}

// createOrderItem resolves a line item's references and persists the item and
// its ingredient customizations. Returns nil when the item was skipped.
func (s *orderService) createOrderItem(orderID uint, index int, input OrderItemInput, opts OrderOptions) (*models.OrderItem, error) {
	var product models.Product
	if err := s.db.First(&product, input.ProductID).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if opts.MissingProduct == RejectOnMissingReference {
			return nil, &ItemValidationError{Index: index, Message: fmt.Sprintf("product %d not found", input.ProductID)}
		}
		log.WithFields(log.Fields{
			"order_id":   orderID,
			"item_index": index,
			"product_id": input.ProductID,
		}).Warn("Skipping order item: product not found")
		return nil, nil
	}

	quantity := input.Quantity
	if quantity < 1 {
		quantity = 1
	}

	// The authoritative catalog price is the fallback when the client sends
	// no unit price.
	unitPrice := product.Price
	if input.UnitPrice != nil {
		unitPrice = *input.UnitPrice
	}

	itemType := input.ItemType
	if itemType == "" {
		itemType = models.ItemTypeRegular
	}

	item := models.OrderItem{
		OrderID:     orderID,
		ProductID:   &product.ID,
		ProductName: product.Name,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Notes:       input.Notes,
		ItemType:    itemType,
	}

	// A promotion reference that does not resolve is not an error, the item
	// is simply left unlinked.
	if input.PromotionID != nil {
		var promotion models.Promotion
		if err := s.db.First(&promotion, *input.PromotionID).Error; err == nil {
			item.PromotionID = &promotion.ID
		} else {
			log.WithFields(log.Fields{
				"order_id":     orderID,
				"promotion_id": *input.PromotionID,
			}).Debug("Promotion not found, leaving item unlinked")
		}
	}

	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}

	for _, sel := range input.Ingredients {
		s.createItemIngredient(&item, product.ID, sel, opts)
	}

	return &item, nil
}

// createItemIngredient persists one ingredient customization. An unresolvable
// ingredient is logged and skipped without failing the item.
func (s *orderService) createItemIngredient(item *models.OrderItem, productID uint, sel IngredientSelection, opts OrderOptions) {
	var ingredient models.Ingredient
	if err := s.db.First(&ingredient, sel.IngredientID).Error; err != nil {
		log.WithFields(log.Fields{
			"order_item_id": item.ID,
			"ingredient_id": sel.IngredientID,
		}).Warn("Skipping customization: ingredient not found")
		return
	}

	if opts.AutoLinkUnknownIngredient {
		var link models.ProductIngredient
		err := s.db.Where("product_id = ? AND ingredient_id = ?", productID, ingredient.ID).First(&link).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			link = models.ProductIngredient{
				ProductID:    productID,
				IngredientID: ingredient.ID,
				IsRequired:   false,
				MaxQuantity:  1,
				GroupName:    models.DefaultIngredientGroup,
			}
			if err := s.db.Create(&link).Error; err != nil {
				log.WithError(err).Warn("Failed to self-heal product ingredient link")
			}
		}
	}

	isAdded := true
	if sel.IsAdded != nil {
		isAdded = *sel.IsAdded
	}

	// Price resolution: client override, then catalog price, then zero.
	price := ingredient.Price
	if sel.Price != nil {
		price = *sel.Price
	}

	record := models.OrderItemIngredient{
		OrderItemID:  item.ID,
		IngredientID: ingredient.ID,
		IsAdded:      isAdded,
		Price:        price,
	}
	if err := s.db.Create(&record).Error; err != nil {
		log.WithError(err).WithField("order_item_id", item.ID).Warn("Failed to persist item ingredient")
	}
}

func (s *orderService) GetAllOrders() ([]models.Order, error) {
	var orders []models.Order
	err := s.db.
		Preload("Items.Ingredients.Ingredient").
		Preload("Items.Product").
		Preload("ClientOrder").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *orderService) GetOrderByID(id uint) (models.Order, error) {
	var order models.Order
	err := s.db.
		Preload("Items.Ingredients.Ingredient").
		Preload("Items.Product").
		Preload("ClientOrder").
		First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, ErrOrderNotFound
		}
		return models.Order{}, err
	}
	return order, nil
}

func (s *orderService) UpdateOrder(id uint, status models.OrderStatus, notes *string) (models.Order, error) {
	order, err := s.GetOrderByID(id)
	if err != nil {
		return models.Order{}, err
	}

	updates := map[string]interface{}{}
	if status != "" {
		if !models.ValidStatus(status) {
			return models.Order{}, fmt.Errorf("invalid order status: %s", status)
		}
		updates["status"] = status
	}
	if notes != nil {
		updates["notes"] = *notes
	}
	if len(updates) > 0 {
		if err := s.db.Model(&order).Updates(updates).Error; err != nil {
			return models.Order{}, err
		}
	}

	return s.GetOrderByID(id)
}

func (s *orderService) DeleteOrder(id uint) error {
	order, err := s.GetOrderByID(id)
	if err != nil {
		return err
	}
	for _, item := range order.Items {
		if err := s.db.Where("order_item_id = ?", item.ID).Delete(&models.OrderItemIngredient{}).Error; err != nil {
			return err
		}
	}
	if err := s.db.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
		return err
	}
	if err := s.db.Where("order_id = ?", id).Delete(&models.ClientOrder{}).Error; err != nil {
		return err
	}
	return s.db.Delete(&models.Order{}, id).Error
}
