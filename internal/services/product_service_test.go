package services

import (
	"testing"

	"github.com/comandago/gin-orders-api/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createTestCategory(t *testing.T, db *gorm.DB, name string) models.Category {
	category := models.Category{Name: name, IsActive: true}
	require.NoError(t, db.Create(&category).Error)
	return category
}

func TestCreateProductWithIngredientSpecs(t *testing.T) {
	db := setupTestDB(t)
	service := NewProductService(db)
	category := createTestCategory(t, db, "Burgers")

	product, err := service.CreateProduct(models.Product{
		Name:       "Cheeseburger",
		Price:      decimal.RequireFromString("9.00"),
		CategoryID: category.ID,
		IsActive:   true,
	}, []IngredientSpec{
		{Name: "Cheese", Category: "Dairy", IsRequired: true},
		{Name: "Lettuce", MaxQuantity: 3},
		{Name: ""}, // nameless specs are dropped
	})
	require.NoError(t, err)

	require.Len(t, product.Ingredients, 2)

	// Ingredients and their category are created on the fly
	var ingredient models.Ingredient
	require.NoError(t, db.Where("name = ?", "Cheese").First(&ingredient).Error)
	require.NotNil(t, ingredient.CategoryID)

	var ingredientCategory models.IngredientCategory
	require.NoError(t, db.First(&ingredientCategory, *ingredient.CategoryID).Error)
	assert.Equal(t, "Dairy", ingredientCategory.Name)

	byName := map[string]models.ProductIngredient{}
	for _, link := range product.Ingredients {
		require.NotNil(t, link.Ingredient)
		byName[link.Ingredient.Name] = link
	}
	assert.True(t, byName["Cheese"].IsRequired)
	assert.Equal(t, 1, byName["Cheese"].MaxQuantity, "quantity is clamped to at least one")
	assert.Equal(t, 3, byName["Lettuce"].MaxQuantity)
	assert.Equal(t, models.DefaultIngredientGroup, byName["Lettuce"].GroupName)
}

func TestUpdateProductReplacesIngredientSet(t *testing.T) {
	db := setupTestDB(t)
	service := NewProductService(db)
	category := createTestCategory(t, db, "Burgers")

	product, err := service.CreateProduct(models.Product{
		Name:       "Cheeseburger",
		Price:      decimal.RequireFromString("9.00"),
		CategoryID: category.ID,
		IsActive:   true,
	}, []IngredientSpec{
		{Name: "Cheese"},
		{Name: "Lettuce"},
	})
	require.NoError(t, err)
	require.Len(t, product.Ingredients, 2)

	product.Ingredients = nil
	updated, err := service.UpdateProduct(product, []IngredientSpec{
		{Name: "Bacon"},
	})
	require.NoError(t, err)

	// The submitted set fully replaces the previous links
	require.Len(t, updated.Ingredients, 1)
	assert.Equal(t, "Bacon", updated.Ingredients[0].Ingredient.Name)

	// The catalog ingredients themselves survive
	var count int64
	db.Model(&models.Ingredient{}).Count(&count)
	assert.Equal(t, int64(3), count)
}

func TestUpdateProductWithoutSpecsKeepsLinks(t *testing.T) {
	db := setupTestDB(t)
	service := NewProductService(db)
	category := createTestCategory(t, db, "Burgers")

	product, err := service.CreateProduct(models.Product{
		Name:       "Cheeseburger",
		Price:      decimal.RequireFromString("9.00"),
		CategoryID: category.ID,
		IsActive:   true,
	}, []IngredientSpec{{Name: "Cheese"}})
	require.NoError(t, err)

	product.Ingredients = nil
	product.Price = decimal.RequireFromString("9.50")
	updated, err := service.UpdateProduct(product, nil)
	require.NoError(t, err)

	assert.True(t, updated.Price.Equal(decimal.RequireFromString("9.50")))
	require.Len(t, updated.Ingredients, 1)
}

func TestAddAndRemoveIngredient(t *testing.T) {
	db := setupTestDB(t)
	service := NewProductService(db)
	category := createTestCategory(t, db, "Burgers")

	product, err := service.CreateProduct(models.Product{
		Name:       "Burger",
		Price:      decimal.RequireFromString("8.00"),
		CategoryID: category.ID,
		IsActive:   true,
	}, nil)
	require.NoError(t, err)

	onion := models.Ingredient{Name: "Onion", Price: decimal.Zero, IsActive: true}
	require.NoError(t, db.Create(&onion).Error)

	link, err := service.AddIngredient(product.ID, onion.ID, true, 2)
	require.NoError(t, err)
	assert.True(t, link.IsRequired)
	assert.Equal(t, 2, link.MaxQuantity)

	// Re-adding updates the existing link instead of duplicating it
	link, err = service.AddIngredient(product.ID, onion.ID, false, 1)
	require.NoError(t, err)
	assert.False(t, link.IsRequired)

	var count int64
	db.Model(&models.ProductIngredient{}).Count(&count)
	assert.Equal(t, int64(1), count)

	require.NoError(t, service.RemoveIngredient(product.ID, onion.ID))
	assert.ErrorIs(t, service.RemoveIngredient(product.ID, onion.ID), ErrLinkNotFound)
}

func TestAddIngredientUnknownReferences(t *testing.T) {
	db := setupTestDB(t)
	service := NewProductService(db)

	_, err := service.AddIngredient(1, 1, false, 1)
	assert.ErrorIs(t, err, ErrProductNotFound)

	category := createTestCategory(t, db, "Burgers")
	product, err := service.CreateProduct(models.Product{
		Name:       "Burger",
		Price:      decimal.RequireFromString("8.00"),
		CategoryID: category.ID,
		IsActive:   true,
	}, nil)
	require.NoError(t, err)

	_, err = service.AddIngredient(product.ID, 999, false, 1)
	assert.ErrorIs(t, err, ErrIngredientNotFound)
}

func TestDeleteProductCascadesLinks(t *testing.T) {
	db := setupTestDB(t)
	service := NewProductService(db)
	category := createTestCategory(t, db, "Burgers")

	product, err := service.CreateProduct(models.Product{
		Name:       "Burger",
		Price:      decimal.RequireFromString("8.00"),
		CategoryID: category.ID,
		IsActive:   true,
	}, []IngredientSpec{{Name: "Cheese"}})
	require.NoError(t, err)

	require.NoError(t, service.DeleteProduct(product.ID))

	var count int64
	db.Model(&models.ProductIngredient{}).Count(&count)
	assert.Equal(t, int64(0), count)

	_, err = service.GetProductByID(product.ID)
	assert.Error(t, err)
}
