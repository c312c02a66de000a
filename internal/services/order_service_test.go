package services

import (
	"testing"

	"github.com/comandago/gin-orders-api/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.IngredientCategory{},
		&models.Ingredient{},
		&models.ProductIngredient{},
		&models.Promotion{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderItemIngredient{},
		&models.ClientOrder{},
		&models.Settings{},
		&models.OpeningHour{},
	)
	require.NoError(t, err)

	return db
}

func createTestProduct(t *testing.T, db *gorm.DB, name string, price string) models.Product {
	category := models.Category{Name: "Mains", IsActive: true}
	require.NoError(t, db.Where("name = ?", category.Name).FirstOrCreate(&category).Error)

	product := models.Product{
		Name:       name,
		Price:      decimal.RequireFromString(price),
		CategoryID: category.ID,
		IsActive:   true,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func TestCreateOrderPersistsItemsAndCustomer(t *testing.T) {
	db := setupTestDB(t)
	service := NewOrderService(db)

	burger := createTestProduct(t, db, "Burger", "8.50")
	fries := createTestProduct(t, db, "Fries", "3.00")

	order, err := service.CreateOrder(OrderInput{
		Customer: &CustomerInfo{Name: "Alice", Phone: "555-0100", Address: "1 Main St"},
		Items: []OrderItemInput{
			{ProductID: burger.ID, Quantity: 2},
			{ProductID: fries.ID, Quantity: 1},
		},
	}, DefaultOrderOptions())
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, order.Status)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Burger", order.Items[0].ProductName)
	assert.Equal(t, 2, order.Items[0].Quantity)

	require.NotNil(t, order.ClientOrder)
	assert.Equal(t, "Alice", order.ClientOrder.CustomerName)

	// No declared total, so it is recomputed: 2*8.50 + 1*3.00
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("20.00")),
		"expected 20.00, got %s", order.TotalAmount)
}

func TestCreateOrderTrustsDeclaredTotal(t *testing.T) {
	db := setupTestDB(t)
	service := NewOrderService(db)

	product := createTestProduct(t, db, "Pizza", "10.00")
	declared := decimal.RequireFromString("99.99")

	order, err := service.CreateOrder(OrderInput{
		Items:       []OrderItemInput{{ProductID: product.ID, Quantity: 2}},
		TotalAmount: &declared,
	}, DefaultOrderOptions())
	require.NoError(t, err)

	assert.True(t, order.TotalAmount.Equal(declared))
}

func TestCreateOrderRecomputesTotalFromUnitPrice(t *testing.T) {
	db := setupTestDB(t)
	service := NewOrderService(db)

	product := createTestProduct(t, db, "Pizza", "10.00")

	order, err := service.CreateOrder(OrderInput{
		Items: []OrderItemInput{{ProductID: product.ID, Quantity: 2}},
	}, DefaultOrderOptions())
	require.NoError(t, err)

	require.Len(t, order.Items, 1)
	assert.True(t, order.Items[0].UnitPrice.Equal(decimal.RequireFromString("10.00")))
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("20.00")))
}

func TestCreateOrderFailsFastOnMissingProductReference(t *testing.T) {
	db := setupTestDB(t)
	service := NewOrderService(db)

	product := createTestProduct(t, db, "Burger", "8.50")

	_, err := service.CreateOrder(OrderInput{
		Items: []OrderItemInput{
			{ProductID: product.ID, Quantity: 1},
			{Quantity: 1}, // no product reference
		},
	}, DefaultOrderOptions())

	var itemErr *ItemValidationError
	require.ErrorAs(t, err, &itemErr)
	assert.Equal(t, 1, itemErr.Index)

	// Validation happens before any write
	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreateOrderRejectsEmptyItems(t *testing.T) {
	db := setupTestDB(t)
	service := NewOrderService(db)

	_, err := service.CreateOrder(OrderInput{}, DefaultOrderOptions())

	var itemErr *ItemValidationError
	require.ErrorAs(t, err, &itemErr)
}

func TestCreateOrderSkipsUnresolvedProduct(t *testing.T) {
	db := setupTestDB(t)
	service := NewOrderService(db)

	product := createTestProduct(t, db, "Burger", "8.50")

	order, err := service.CreateOrder(OrderInput{
		Items: []OrderItemInput{
			{ProductID: product.ID, Quantity: 1},
			{ProductID: 9999, Quantity: 1},
		},
	}, DefaultOrderOptions())
	require.NoError(t, err)

	// The unresolved reference is dropped, the rest of the order survives
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Burger", order.Items[0].ProductName)
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("8.50")))
}

func TestCreateOrderRejectsUnresolvedProductWhenConfigured(t *testing.T) {
	db := setupTestDB(t)
	service := NewOrderService(db)

	opts := DefaultOrderOptions()
	opts.MissingProduct = RejectOnMissingReference

	_, err := service.CreateOrder(OrderInput{
		Items: []OrderItemInput{{ProductID: 9999, Quantity: 1}},
	}, opts)

	var itemErr *ItemValidationError
	require.ErrorAs(t, err, &itemErr)
	assert.Equal(t, 0, itemErr.Index)
}

func TestIngredientPriceResolution(t *testing.T) {
	db := setupTestDB(t)
	service := NewOrderService(db)

	product := createTestProduct(t, db, "Burger", "8.50")
	cheese := models.Ingredient{Name: "Cheese", Price: decimal.RequireFromString("1.50"), IsActive: true}
	bacon := models.Ingredient{Name: "Bacon", Price: decimal.RequireFromString("2.00"), IsActive: true}
	require.NoError(t, db.Create(&cheese).Error)
	require.NoError(t, db.Create(&bacon).Error)

	override := decimal.RequireFromString("0.75")
	order, err := service.CreateOrder(OrderInput{
		Items: []OrderItemInput{{
			ProductID: product.ID,
			Quantity:  1,
			Ingredients: []IngredientSelection{
				{IngredientID: cheese.ID},
				{IngredientID: bacon.ID, Price: &override},
			},
		}},
	}, DefaultOrderOptions())
	require.NoError(t, err)

	require.Len(t, order.Items, 1)
	require.Len(t, order.Items[0].Ingredients, 2)

	byIngredient := map[uint]decimal.Decimal{}
	for _, ing := range order.Items[0].Ingredients {
		byIngredient[ing.IngredientID] = ing.Price
	}
	assert.True(t, byIngredient[cheese.ID].Equal(decimal.RequireFromString("1.50")), "catalog price")
	assert.True(t, byIngredient[bacon.ID].Equal(override), "client override")
}

func TestOrderPersistsRemovedIngredient(t *testing.T) {
	db := setupTestDB(t)
	service := NewOrderService(db)

	product := createTestProduct(t, db, "Burger", "8.50")
	onions := models.Ingredient{Name: "Onions", Price: decimal.Zero, IsActive: true}
	require.NoError(t, db.Create(&onions).Error)

	order, err := service.CreateOrder(OrderInput{
		Items: []OrderItemInput{{
			ProductID: product.ID,
			Quantity:  1,
			Ingredients: []IngredientSelection{
				{IngredientID: onions.ID, IsAdded: boolPtr(false)},
			},
		}},
	}, DefaultOrderOptions())
	require.NoError(t, err)
	require.Len(t, order.Items, 1)

	var stored models.OrderItemIngredient
	require.NoError(t, db.Where("order_item_id = ?", order.Items[0].ID).First(&stored).Error)
	assert.False(t, stored.IsAdded)
}

func TestOrderSkipsUnresolvedIngredient(t *testing.T) {
	db := setupTestDB(t)
	service := NewOrderService(db)

	product := createTestProduct(t, db, "Burger", "8.50")

	order, err := service.CreateOrder(OrderInput{
		Items: []OrderItemInput{{
			ProductID:   product.ID,
			Quantity:    1,
			Ingredients: []IngredientSelection{{IngredientID: 9999}},
		}},
	}, DefaultOrderOptions())
	require.NoError(t, err)

	require.Len(t, order.Items, 1)
	assert.Empty(t, order.Items[0].Ingredients)
}

func TestOrderAutoLinksUnknownIngredient(t *testing.T) {
	db := setupTestDB(t)
	service := NewOrderService(db)

	product := createTestProduct(t, db, "Burger", "8.50")
	pickles := models.Ingredient{Name: "Pickles", Price: decimal.Zero, IsActive: true}
	require.NoError(t, db.Create(&pickles).Error)

	_, err := service.CreateOrder(OrderInput{
		Items: []OrderItemInput{{
			ProductID:   product.ID,
			Quantity:    1,
			Ingredients: []IngredientSelection{{IngredientID: pickles.ID}},
		}},
	}, DefaultOrderOptions())
	require.NoError(t, err)

	var link models.ProductIngredient
	err = db.Where("product_id = ? AND ingredient_id = ?", product.ID, pickles.ID).First(&link).Error
	require.NoError(t, err)
	assert.Equal(t, models.DefaultIngredientGroup, link.GroupName)
	assert.False(t, link.IsRequired)
}

func TestUpdateOrderStatusAndNotes(t *testing.T) {
	db := setupTestDB(t)
	service := NewOrderService(db)

	product := createTestProduct(t, db, "Burger", "8.50")
	order, err := service.CreateOrder(OrderInput{
		Items: []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
	}, DefaultOrderOptions())
	require.NoError(t, err)

	notes := "no onions"
	updated, err := service.UpdateOrder(order.ID, models.StatusPreparing, &notes)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPreparing, updated.Status)
	assert.Equal(t, "no onions", updated.Notes)

	_, err = service.UpdateOrder(order.ID, "burnt", nil)
	assert.Error(t, err)
}

func TestUpdateOrderNotFound(t *testing.T) {
	db := setupTestDB(t)
	service := NewOrderService(db)

	_, err := service.UpdateOrder(42, models.StatusReady, nil)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestDeleteOrderRemovesItemsAndCustomer(t *testing.T) {
	db := setupTestDB(t)
	service := NewOrderService(db)

	product := createTestProduct(t, db, "Burger", "8.50")
	cheese := models.Ingredient{Name: "Cheese", Price: decimal.RequireFromString("1.50"), IsActive: true}
	require.NoError(t, db.Create(&cheese).Error)

	order, err := service.CreateOrder(OrderInput{
		Customer: &CustomerInfo{Name: "Bob", Phone: "555-0101"},
		Items: []OrderItemInput{{
			ProductID:   product.ID,
			Quantity:    1,
			Ingredients: []IngredientSelection{{IngredientID: cheese.ID}},
		}},
	}, DefaultOrderOptions())
	require.NoError(t, err)

	require.NoError(t, service.DeleteOrder(order.ID))

	var counts [3]int64
	db.Model(&models.OrderItem{}).Count(&counts[0])
	db.Model(&models.OrderItemIngredient{}).Count(&counts[1])
	db.Model(&models.ClientOrder{}).Count(&counts[2])
	assert.Equal(t, [3]int64{0, 0, 0}, counts)

	_, err = service.GetOrderByID(order.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
