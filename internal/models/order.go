package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusPreparing  OrderStatus = "preparing"
	StatusReady      OrderStatus = "ready"
	StatusDelivering OrderStatus = "delivering"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

// ValidStatus reports whether s is a known order status.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case StatusPending, StatusPreparing, StatusReady, StatusDelivering, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// OrderItemType tags how a line item entered the order.
type OrderItemType string

const (
	ItemTypeRegular   OrderItemType = "regular"
	ItemTypePromotion OrderItemType = "promotion"
	ItemTypeReward    OrderItemType = "reward"
)

type Order struct {
	ID            uint                `gorm:"primaryKey" json:"id"`
	Status        OrderStatus         `gorm:"not null;default:'pending'" json:"status"`
	TotalAmount   decimal.Decimal     `gorm:"type:decimal(10,2);default:0" json:"total_amount"`
	PaymentMethod *string             `json:"payment_method,omitempty"`
	ChangeAmount  decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"change_amount"`
	Notes         string              `json:"notes"`
	Items         []OrderItem         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	ClientOrder   *ClientOrder        `gorm:"foreignKey:OrderID" json:"client_order,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// OrderItem is one line of an order. The product name and unit price are
// snapshots: deleting the product later leaves the reference null but keeps
// the historical line readable.
type OrderItem struct {
	ID          uint                  `gorm:"primaryKey" json:"id"`
	OrderID     uint                  `gorm:"not null" json:"order_id"`
	ProductID   *uint                 `json:"product_id,omitempty"`
	Product     *Product              `gorm:"foreignKey:ProductID;constraint:OnDelete:SET NULL" json:"product,omitempty"`
	ProductName string                `gorm:"not null" json:"product_name"`
	Quantity    int                   `gorm:"default:1" json:"quantity"`
	UnitPrice   decimal.Decimal       `gorm:"type:decimal(10,2);default:0" json:"unit_price"`
	Notes       string                `json:"notes"`
	ItemType    OrderItemType         `gorm:"default:'regular'" json:"item_type"`
	PromotionID *uint                 `json:"promotion_id,omitempty"`
	Promotion   *Promotion            `gorm:"foreignKey:PromotionID;constraint:OnDelete:SET NULL" json:"promotion,omitempty"`
	Ingredients []OrderItemIngredient `gorm:"foreignKey:OrderItemID;constraint:OnDelete:CASCADE" json:"ingredients,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

// TotalPrice is the line total including customization prices.
func (i OrderItem) TotalPrice() decimal.Decimal {
	total := i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
	for _, ing := range i.Ingredients {
		total = total.Add(ing.Price)
	}
	return total
}

// MarshalJSON includes the computed line total in serialized items.
func (i OrderItem) MarshalJSON() ([]byte, error) {
	type alias OrderItem
	return json.Marshal(struct {
		alias
		TotalPrice decimal.Decimal `json:"total_price"`
	}{alias(i), i.TotalPrice()})
}

// OrderItemIngredient records one ingredient customization on a line item.
type OrderItemIngredient struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	OrderItemID  uint            `gorm:"not null" json:"order_item_id"`
	IngredientID uint            `gorm:"not null" json:"ingredient_id"`
	Ingredient   *Ingredient     `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`
	IsAdded      bool            `json:"is_added"`
	Price        decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"price"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ClientOrder holds the contact block for orders placed by unauthenticated
// customers. It mirrors the order's total and payment fields.
type ClientOrder struct {
	ID              uint                `gorm:"primaryKey" json:"id"`
	OrderID         uint                `gorm:"uniqueIndex;not null" json:"order_id"`
	CustomerName    string              `gorm:"not null" json:"customer_name"`
	CustomerPhone   string              `gorm:"not null" json:"customer_phone"`
	CustomerAddress string              `json:"customer_address"`
	Notes           string              `json:"notes"`
	TotalAmount     decimal.Decimal     `gorm:"type:decimal(10,2)" json:"total_amount"`
	PaymentMethod   *string             `json:"payment_method,omitempty"`
	ChangeAmount    decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"change_amount"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}
