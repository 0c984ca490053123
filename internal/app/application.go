package app

import (
	"net/http"

	"github.com/ak/tcs/internal/app/middleware"
	"github.com/ak/tcs/internal/domain/catalog"
	"github.com/ak/tcs/internal/domain/services"
	"github.com/ak/tcs/internal/infrastructure/config"
	"github.com/ak/tcs/internal/infrastructure/database"
	"github.com/ak/tcs/internal/infrastructure/repositories"
	"github.com/ak/tcs/internal/pkg/logger"
	"github.com/gin-gonic/gin"
)

// Application holds all application dependencies and services
type Application struct {
	config          *config.Config
	logger          *logger.Logger
	mongodb         *database.MongoDB
	repos           *repositories.Provider
	catalog         *catalog.Catalog
	productService  services.ProductService
	techCardService services.TechCardService
	router          *gin.Engine
}

// New creates a new Application instance
func New(cfg *config.Config, log *logger.Logger, mongodb *database.MongoDB) (*Application, error) {
	repos := repositories.NewProvider(mongodb)

	// The process catalog is built once from the static definition table and
	// injected into everything that needs lookups.
	processCatalog := catalog.New()

	app := &Application{
		config:          cfg,
		logger:          log,
		mongodb:         mongodb,
		repos:           repos,
		catalog:         processCatalog,
		productService:  services.NewProductService(repos.Product),
		techCardService: services.NewTechCardService(repos.TechCard, repos.Product, processCatalog, cfg.Catalog.Currency),
	}

	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	app.router = gin.New()

	// Add middleware
	app.router.Use(middleware.RecoveryMiddleware(log.Logger))
	app.router.Use(middleware.LoggerMiddleware(log.Logger))
	app.router.Use(app.corsMiddleware())

	// Setup routes
	app.setupRoutes()

	return app, nil
}

// Router returns the HTTP handler
func (a *Application) Router() http.Handler {
	return a.router
}

// setupRoutes configures all application routes
func (a *Application) setupRoutes() {
	// Health check endpoints
	a.router.GET("/health", a.healthCheck)
	a.router.GET("/ready", a.readinessCheck)

	// API v1 routes
	v1 := a.router.Group("/api/v1")
	{
		// Public info endpoint
		v1.GET("/info", a.apiInfo)

		// Cooking process catalog (read-only)
		processes := v1.Group("/processes")
		{
			processes.GET("", a.listProcesses)
			processes.GET("/:id", a.getProcess)
		}

		// Product catalog
		products := v1.Group("/products")
		{
			products.GET("", a.listProducts)
			products.POST("", a.createProduct)
			products.GET("/:id", a.getProduct)
			products.PUT("/:id", a.updateProduct)
			products.DELETE("/:id", a.deleteProduct)
		}

		// Tech card management
		cards := v1.Group("/tech-cards")
		{
			cards.GET("", a.listTechCards)
			cards.POST("", a.createTechCard)
			cards.GET("/:id", a.getTechCard)
			cards.PUT("/:id", a.updateTechCard)
			cards.DELETE("/:id", a.deleteTechCard)

			// Ingredient line operations
			cards.POST("/:id/ingredients", a.addIngredient)
			cards.PUT("/:id/ingredients/:index", a.replaceIngredient)
			cards.DELETE("/:id/ingredients/:index", a.removeIngredient)
			cards.PUT("/:id/ingredients/:index/gross-weight", a.setIngredientGrossWeight)
			cards.PUT("/:id/ingredients/:index/net-weight", a.setIngredientNetWeight)
			cards.PUT("/:id/ingredients/:index/process", a.setIngredientProcess)

			// Derived reports (read-only, no mutation)
			cards.GET("/:id/cost-summary", a.getCostSummary)
			cards.POST("/:id/rescale-preview", a.rescalePreview)
			cards.GET("/:id/portions/:count", a.getPortionQuantities)
		}
	}
}

func (a *Application) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, Accept-Language")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
