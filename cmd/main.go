package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/swaggo/files"
	"github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "github.com/udex/lapizza-api/docs" // Import generated docs
	"github.com/udex/lapizza-api/internal/cache"
	"github.com/udex/lapizza-api/internal/config"
	"github.com/udex/lapizza-api/internal/controllers"
	"github.com/udex/lapizza-api/internal/database"
	"github.com/udex/lapizza-api/internal/middleware"
	"github.com/udex/lapizza-api/internal/models"
	"github.com/udex/lapizza-api/internal/payment"
	"github.com/udex/lapizza-api/internal/services"
)

var (
	db            *gorm.DB
	configuration *config.Config
	catalogCache  *cache.Catalog

	authController       *controllers.AuthController
	catalogController    controllers.CatalogController
	productController    controllers.ProductController
	categoryController   controllers.CategoryController
	ingredientController controllers.IngredientController
	userController       controllers.UserController
	cartController       controllers.CartController
	checkoutController   controllers.CheckoutController
	settingsController   controllers.SettingsController
)

// @title Lapizza API
// @version 1.0
// @description Pizza ordering storefront and admin back office
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load environment variables
	loadDotenvFile()

	// Initialize logger
	setUpLogger()

	// Load configuration
	configuration = loadConfig()

	// Initialize database connection
	setupDatabase(configuration)

	// Shared catalog cache for storefront responses
	catalogCache = cache.New(5 * time.Minute)

	// Initialize services and controllers
	setupControllers()

	// Initialize Gin router
	router := setupRouter()

	// Start the server
	log.Infof("Starting server on %s:%d", configuration.Host, configuration.Port)
	router.Run(fmt.Sprintf("%v:%d", configuration.Host, configuration.Port))
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

// setUpLogger initializes the logger with a JSON formatter and sets the log level based on the environment
func setUpLogger() {
	log.SetFormatter(&log.JSONFormatter{})
	environment := config.GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(log.DebugLevel)
	case "production":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

// loadConfig loads the application configuration from environment variables
func loadConfig() *config.Config {
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	return conf
}

// setupDatabase connects to the configured database, migrates the schema and
// seeds initial data when the catalog is empty
func setupDatabase(conf *config.Config) {
	var err error
	db, err = database.InitDatabase(database.DatabaseConfig{
		Driver:   conf.DBDriver,
		Host:     conf.DBHost,
		Port:     conf.DBPort,
		User:     conf.DBUser,
		Password: conf.DBPassword,
		Name:     conf.DBName,
		SSLMode:  conf.DBSSLMode,
		Path:     conf.DBPath,
	})
	checkPanicErr(err)
	checkPanicErr(database.Migrate(db))
	checkPanicErr(database.SeedIfEmpty(db))
}

// setupControllers wires services and controllers
func setupControllers() {
	paymentClient := payment.NewClient(payment.Config{
		APIURL:      configuration.PaymentAPIURL,
		SecretKey:   configuration.PaymentSecretKey,
		CallbackURL: configuration.PaymentCallbackURL,
	})

	userService := services.NewUserService(db)
	authService := services.NewAuthService(db, userService)
	productService := services.NewProductService(db)
	categoryService := services.NewCategoryService(db)
	ingredientService := services.NewIngredientService(db)
	catalogService := services.NewCatalogService(db)
	cartService := services.NewCartService(db)
	orderService := services.NewOrderService(db, paymentClient)

	authController = controllers.NewAuthController(authService, configuration.JWTSecret)
	catalogController = controllers.NewCatalogController(catalogService, catalogCache)
	productController = controllers.NewProductController(productService, catalogCache)
	categoryController = controllers.NewCategoryController(categoryService, catalogCache)
	ingredientController = controllers.NewIngredientController(ingredientService, catalogCache)
	userController = controllers.NewUserController(userService)
	cartController = controllers.NewCartController(cartService)
	checkoutController = controllers.NewCheckoutController(orderService)
	settingsController = controllers.NewSettingsController(db, catalogCache)
}

// setupRouter initializes the Gin router and sets up the routes
func setupRouter() *gin.Engine {
	router := gin.Default()
	router.Use(middleware.Metrics())

	setupRoutes(router)

	return router
}

// setupRoutes defines the routes for the Gin router
func setupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", healthCheckHandler)

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		publicApi := v1.Group("/public")
		{
			publicApi.GET("/categories", catalogController.GetCategories)
			publicApi.GET("/products/search", productController.SearchProducts)
			publicApi.GET("/products/:id", productController.GetProductByID)
			publicApi.GET("/ingredients", ingredientController.GetAllIngredients)
		}

		authApi := v1.Group("/auth")
		{
			authApi.POST("/register", authController.Register)
			authApi.POST("/verify", authController.Verify)
			authApi.POST("/login", authController.Login)
		}

		cartApi := v1.Group("/cart")
		{
			cartApi.GET("", cartController.GetCart)
			cartApi.POST("", cartController.AddItem)
			cartApi.PATCH("/items/:id", cartController.UpdateItemQuantity)
			cartApi.DELETE("/items/:id", cartController.RemoveItem)
		}

		checkoutApi := v1.Group("/checkout")
		{
			checkoutApi.POST("", checkoutController.Checkout)
			checkoutApi.POST("/callback", checkoutController.PaymentCallback)
		}

		// Admin back office (requires a valid token with the ADMIN role)
		adminApi := v1.Group("/admin")
		adminApi.Use(middleware.JWTAuth([]byte(configuration.JWTSecret)))
		adminApi.Use(middleware.RequireRole(models.RoleAdmin))
		{
			adminApi.GET("/products", productController.GetAllProducts)
			adminApi.GET("/products/:id", productController.GetProductByID)
			adminApi.POST("/products", productController.CreateProduct)
			adminApi.PUT("/products/:id", productController.UpdateProduct)
			adminApi.DELETE("/products/:id", productController.DeleteProduct)

			adminApi.GET("/categories", categoryController.GetAllCategories)
			adminApi.GET("/categories/:id", categoryController.GetCategoryByID)
			adminApi.POST("/categories", categoryController.CreateCategory)
			adminApi.PUT("/categories/:id", categoryController.UpdateCategory)
			adminApi.DELETE("/categories/:id", categoryController.DeleteCategory)

			adminApi.GET("/ingredients", ingredientController.GetAllIngredients)
			adminApi.GET("/ingredients/:id", ingredientController.GetIngredientByID)
			adminApi.POST("/ingredients", ingredientController.CreateIngredient)
			adminApi.PUT("/ingredients/:id", ingredientController.UpdateIngredient)
			adminApi.DELETE("/ingredients/:id", ingredientController.DeleteIngredient)

			adminApi.GET("/users", userController.GetAllUsers)
			adminApi.GET("/users/:id", userController.GetUserByID)
			adminApi.PUT("/users", userController.UpdateUser)
			adminApi.DELETE("/users", userController.DeleteUser)

			adminApi.POST("/settings/clear-cache", settingsController.ClearCache)
			adminApi.POST("/settings/reset-database", settingsController.ResetDatabase)
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
		"service":   "lapizza-api",
	})
}
