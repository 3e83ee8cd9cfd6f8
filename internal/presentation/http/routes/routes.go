package routes

import (
	"time"

	"github.com/ardiansn/cetakflow-api/internal/config"
	"github.com/ardiansn/cetakflow-api/internal/presentation/http/handler"
	"github.com/ardiansn/cetakflow-api/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Order         *handler.OrderHandler
	Receivable    *handler.ReceivableHandler
	Production    *handler.ProductionHandler
	Customer      *handler.CustomerHandler
	Catalog       *handler.CatalogHandler
	PaymentMethod *handler.PaymentMethodHandler
	Settings      *handler.SettingsHandler
	Events        *handler.EventsHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg *config.Config
	Log *zap.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Log))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		v1.Use(rateLimiter.Middleware())

		registerRoutes(v1, h)
	}

	return router
}

func registerRoutes(v1 *gin.RouterGroup, h *Handlers) {
	// Change notification stream
	v1.GET("/events", h.Events.Stream)

	// Order routes
	orders := v1.Group("/orders")
	{
		orders.GET("", h.Order.List)
		orders.POST("", h.Order.Create)
		orders.GET("/unprocessed", h.Order.ListUnprocessed)
		orders.GET("/:id", h.Order.Get)
		orders.PUT("/:id", h.Order.Update)
		orders.DELETE("/:id", h.Order.Delete)
		orders.POST("/:id/pay", h.Receivable.PayOrder)
		orders.POST("/:id/process", h.Production.Process)
	}

	// Receivable routes
	receivables := v1.Group("/receivables")
	{
		receivables.GET("", h.Receivable.List)
		receivables.POST("/bulk-pay", h.Receivable.BulkPay)
		receivables.POST("/bulk-due-date", h.Receivable.BulkDueDate)
		receivables.GET("/:id", h.Receivable.Get)
		receivables.POST("/:id/payments", h.Receivable.AddPayment)
		receivables.PUT("/:id/due-date", h.Receivable.UpdateDueDate)
	}

	// Production routes
	production := v1.Group("/production")
	{
		production.GET("/board", h.Production.Board)
		production.POST("/:id/move", h.Production.Move)
		production.POST("/:id/deliver", h.Production.Deliver)
		production.DELETE("/:id/queue", h.Production.CancelQueue)
	}

	// Customer routes
	customers := v1.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}

	// Catalog routes
	categories := v1.Group("/categories")
	{
		categories.GET("", h.Catalog.ListCategories)
		categories.POST("", h.Catalog.CreateCategory)
		categories.PUT("/:id", h.Catalog.UpdateCategory)
		categories.DELETE("/:id", h.Catalog.DeleteCategory)
	}

	products := v1.Group("/products")
	{
		products.GET("", h.Catalog.ListProducts)
		products.POST("", h.Catalog.CreateProduct)
		products.GET("/:id", h.Catalog.GetProduct)
		products.PUT("/:id", h.Catalog.UpdateProduct)
		products.DELETE("/:id", h.Catalog.DeleteProduct)
	}

	finishings := v1.Group("/finishings")
	{
		finishings.GET("", h.Catalog.ListFinishings)
		finishings.POST("", h.Catalog.CreateFinishing)
		finishings.PUT("/:id", h.Catalog.UpdateFinishing)
		finishings.DELETE("/:id", h.Catalog.DeleteFinishing)
	}

	methods := v1.Group("/payment-methods")
	{
		methods.GET("", h.PaymentMethod.List)
		methods.POST("", h.PaymentMethod.Create)
		methods.PUT("/:id", h.PaymentMethod.Update)
		methods.DELETE("/:id", h.PaymentMethod.Delete)
	}

	// Settings routes
	settings := v1.Group("/settings")
	{
		settings.GET("/shop", h.Settings.GetShopConfig)
		settings.PUT("/shop", h.Settings.UpdateShopConfig)
		settings.GET("/sequence", h.Settings.GetSequence)
		settings.PUT("/sequence", h.Settings.UpdateSequence)
	}
}
