package main

import (
	"fmt"
	"net/http"
	"time"

	_ "github.com/comandago/gin-orders-api/docs" // Import generated docs
	"github.com/comandago/gin-orders-api/internal/auth"
	"github.com/comandago/gin-orders-api/internal/config"
	"github.com/comandago/gin-orders-api/internal/controllers"
	"github.com/comandago/gin-orders-api/internal/database"
	"github.com/comandago/gin-orders-api/internal/middleware"
	"github.com/comandago/gin-orders-api/internal/models"
	"github.com/comandago/gin-orders-api/internal/services"
	"github.com/comandago/gin-orders-api/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/swaggo/files"
	"github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

type application struct {
	config *config.Config
	db     *gorm.DB
	images *storage.ImageStore

	authController        controllers.AuthController
	categoryController    controllers.CategoryController
	productController     controllers.ProductController
	ingredientController  controllers.IngredientController
	promotionController   controllers.PromotionController
	orderController       controllers.OrderController
	clientOrderController controllers.ClientOrderController
	settingsController    controllers.SettingsController
	menuController        controllers.MenuController
}

// @title Orders API
// @version 1.0
// @description Order management backend for a single-location food business
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load environment variables
	loadDotenvFile()

	// Load configuration
	configuration := loadConfig()

	// Initialize logger
	setUpLogger(configuration)

	// Set JWT secret from configuration
	middleware.SetJWTSecret(configuration.JWTSecret)

	// Initialize database connection
	db := setupDatabase(configuration)

	app, err := newApplication(configuration, db)
	checkPanicErr(err)

	// Initialize Gin router
	router := app.setupRouter()

	// Start the server
	log.Infof("Starting server on %s:%d", configuration.Host, configuration.Port)
	checkPanicErr(router.Run(fmt.Sprintf("%v:%d", configuration.Host, configuration.Port)))
}

// checkPanicErr checks if an error occurred and panics if it did
func checkPanicErr(err error) {
	if err != nil {
		panic(err)
	}
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger initializes the logger with a JSON formatter and the configured level
func setUpLogger(conf *config.Config) {
	log.SetFormatter(&log.JSONFormatter{})
	level, err := log.ParseLevel(conf.LogLevel)
	if err != nil {
		log.Warnf("Unknown log level %q, falling back to info", conf.LogLevel)
		level = log.InfoLevel
	}
	log.SetLevel(level)
}

// loadConfig loads the application configuration from environment variables
// It returns a Config struct or panics if there is an error
func loadConfig() *config.Config {
	log.Info("Loading configuration from environment variables")
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	log.Infof("Configuration loaded: %v", conf)
	return conf
}

// setupDatabase initializes the database connection, runs migrations and
// seeds the first admin account when enabled
func setupDatabase(conf *config.Config) *gorm.DB {
	db, err := database.InitDatabase(database.FromAppConfig(conf))
	checkPanicErr(err)
	checkPanicErr(database.Migrate(db))

	if conf.SeedOnStart {
		seedDatabase(db)
	}
	return db
}

// seedDatabase creates a default admin account and its business settings
// when the users table is empty
func seedDatabase(db *gorm.DB) {
	var count int64
	db.Model(&models.User{}).Count(&count)
	if count > 0 {
		log.Info("Database already seeded with initial data")
		return
	}

	log.Info("Database is empty, seeding initial admin account")
	userService := services.NewUserService(db)
	admin := models.User{
		Username: config.GetEnvWithDefault("ADMIN_USERNAME", "admin"),
		Email:    config.GetEnvWithDefault("ADMIN_EMAIL", "admin@example.com"),
		Role:     "admin",
		IsStaff:  true,
	}
	if err := userService.Register(&admin, config.GetEnvWithDefault("ADMIN_PASSWORD", "admin")); err != nil {
		log.WithError(err).Error("Failed to seed admin account")
		return
	}

	settingsService := services.NewSettingsService(db)
	if _, err := settingsService.GetOrCreateSettings(admin.ID); err != nil {
		log.WithError(err).Error("Failed to seed business settings")
		return
	}
	log.Info("Database seeded successfully")
}

// newApplication wires services and controllers over the shared database handle
func newApplication(conf *config.Config, db *gorm.DB) (*application, error) {
	images, err := storage.NewImageStore(conf.MediaDir)
	if err != nil {
		return nil, err
	}

	userService := services.NewUserService(db)
	tokenService := auth.NewTokenService(db, conf.JWTSecret)
	categoryService := services.NewCategoryService(db)
	productService := services.NewProductService(db)
	ingredientService := services.NewIngredientService(db)
	promotionService := services.NewPromotionService(db)
	orderService := services.NewOrderService(db)
	settingsService := services.NewSettingsService(db)
	menuService := services.NewMenuService(db, settingsService)

	return &application{
		config:                conf,
		db:                    db,
		images:                images,
		authController:        controllers.NewAuthController(userService, tokenService),
		categoryController:    controllers.NewCategoryController(categoryService),
		productController:     controllers.NewProductController(productService, images),
		ingredientController:  controllers.NewIngredientController(ingredientService),
		promotionController:   controllers.NewPromotionController(promotionService),
		orderController:       controllers.NewOrderController(orderService),
		clientOrderController: controllers.NewClientOrderController(orderService),
		settingsController:    controllers.NewSettingsController(settingsService, images),
		menuController:        controllers.NewMenuController(menuService, settingsService),
	}, nil
}

// setupRouter initializes the Gin router and sets up the routes
// It returns the configured router
func (app *application) setupRouter() *gin.Engine {
	// Initialize Gin router
	router := gin.Default()
	router.Use(corsMiddleware())

	// Uploaded product images and business photos
	router.Static("/media", app.images.Dir())

	// Define routes
	app.setupRoutes(router)

	return router
}

// corsMiddleware allows browser storefront clients on other origins to call
// the API
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// setupRoutes defines the routes for the Gin router
func (app *application) setupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", healthCheckHandler)

	v1 := router.Group("/api/v1")
	{
		// Public storefront surface, no authentication
		publicApi := v1.Group("/public")
		{
			publicApi.GET("/categories", app.categoryController.GetAllCategories)
			publicApi.GET("/categories/:id", app.categoryController.GetCategoryByID)
			publicApi.GET("/categories/:id/products", app.categoryController.GetCategoryProducts)
			publicApi.GET("/products", app.productController.GetAllProducts)
			publicApi.GET("/products/:id", app.productController.GetProductByID)
			publicApi.GET("/ingredients", app.ingredientController.GetAvailableIngredients)
			publicApi.GET("/menu", app.menuController.GetMenu)
			publicApi.GET("/menu/qrcode", app.menuController.GetMenuQRCode)
			publicApi.POST("/client-orders", app.clientOrderController.CreateClientOrder)
		}

		// Authentication routes
		authApi := v1.Group("/auth")
		{
			authApi.POST("/register", app.authController.Register)
			authApi.POST("/login", app.authController.Login)
			authApi.POST("/logout", app.authController.Logout)
			authApi.POST("/token", app.authController.Token)
			authApi.POST("/token/refresh", app.authController.TokenRefresh)
			authApi.GET("/token/verify", middleware.JWTAuth(), app.authController.TokenVerify)
			authApi.GET("/me", middleware.JWTAuth(), app.authController.Me)
		}

		// Protected routes (requires JWT authentication and a staff role)
		protectedApi := v1.Group("")
		protectedApi.Use(middleware.JWTAuth(), middleware.RequireRole("admin", "staff"))
		{
			protectedApi.POST("/categories", app.categoryController.CreateCategory)
			protectedApi.PUT("/categories/:id", app.categoryController.UpdateCategory)
			protectedApi.DELETE("/categories/:id", app.categoryController.DeleteCategory)

			protectedApi.POST("/products", app.productController.CreateProduct)
			protectedApi.PUT("/products/:id", app.productController.UpdateProduct)
			protectedApi.DELETE("/products/:id", app.productController.DeleteProduct)
			protectedApi.POST("/products/:id/ingredients", app.productController.AddIngredient)
			protectedApi.DELETE("/products/:id/ingredients/:ingredientId", app.productController.RemoveIngredient)

			protectedApi.GET("/ingredients", app.ingredientController.GetAllIngredients)
			protectedApi.GET("/ingredients/available", app.ingredientController.GetAvailableIngredients)
			protectedApi.GET("/ingredients/:id", app.ingredientController.GetIngredientByID)
			protectedApi.POST("/ingredients", app.ingredientController.CreateIngredient)
			protectedApi.PUT("/ingredients/:id", app.ingredientController.UpdateIngredient)
			protectedApi.DELETE("/ingredients/:id", app.ingredientController.DeleteIngredient)

			protectedApi.GET("/promotions", app.promotionController.GetAllPromotions)
			protectedApi.GET("/promotions/:id", app.promotionController.GetPromotionByID)
			protectedApi.POST("/promotions", app.promotionController.CreatePromotion)
			protectedApi.PUT("/promotions/:id", app.promotionController.UpdatePromotion)
			protectedApi.DELETE("/promotions/:id", app.promotionController.DeletePromotion)

			protectedApi.GET("/orders", app.orderController.GetAllOrders)
			protectedApi.GET("/orders/:id", app.orderController.GetOrderByID)
			protectedApi.POST("/orders", app.orderController.CreateOrder)
			protectedApi.PUT("/orders/:id", app.orderController.UpdateOrder)
			protectedApi.DELETE("/orders/:id", app.orderController.DeleteOrder)

			protectedApi.GET("/settings", app.settingsController.GetSettings)
			protectedApi.PUT("/settings", app.settingsController.UpdateSettings)
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// healthCheckHandler handles the health check endpoint
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "gin-orders-api",
	})
}
