package main

import (
	"log"

	"github.com/ardiansn/cetakflow-api/internal/application/service"
	"github.com/ardiansn/cetakflow-api/internal/config"
	"github.com/ardiansn/cetakflow-api/internal/infrastructure/database"
	"github.com/ardiansn/cetakflow-api/internal/infrastructure/repository"
	"github.com/ardiansn/cetakflow-api/internal/notify"
	"github.com/ardiansn/cetakflow-api/internal/presentation/http/handler"
	"github.com/ardiansn/cetakflow-api/internal/presentation/http/routes"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	logger, err := zap.NewDevelopment()
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	// Seed default data
	if err := database.SeedDefaultData(db, logger); err != nil {
		logger.Warn("failed to seed default data", zap.Error(err))
	}

	// Change notification hub
	hub := notify.NewHub(logger)

	// Initialize repositories
	orderRepo := repository.NewOrderRepository(db)
	receivableRepo := repository.NewReceivableRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	finishingRepo := repository.NewFinishingRepository(db)
	methodRepo := repository.NewPaymentMethodRepository(db)
	sequenceRepo := repository.NewSequenceRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	// Initialize services
	settingsService := service.NewSettingsService(settingRepo, sequenceRepo, hub)
	orderService := service.NewOrderService(orderRepo, receivableRepo, customerRepo, productRepo, finishingRepo, sequenceRepo, settingsService, hub, logger)
	receivableService := service.NewReceivableService(receivableRepo, orderRepo, methodRepo, settingsService, hub, logger)
	productionService := service.NewProductionService(receivableRepo, orderRepo, settingsService, hub, logger)
	customerService := service.NewCustomerService(customerRepo, hub)
	catalogService := service.NewCatalogService(categoryRepo, productRepo, finishingRepo, hub)
	methodService := service.NewPaymentMethodService(methodRepo, hub)

	// Initialize handlers
	handlers := &routes.Handlers{
		Order:         handler.NewOrderHandler(orderService),
		Receivable:    handler.NewReceivableHandler(receivableService),
		Production:    handler.NewProductionHandler(productionService),
		Customer:      handler.NewCustomerHandler(customerService),
		Catalog:       handler.NewCatalogHandler(catalogService),
		PaymentMethod: handler.NewPaymentMethodHandler(methodService),
		Settings:      handler.NewSettingsHandler(settingsService),
		Events:        handler.NewEventsHandler(hub),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Cfg: cfg,
		Log: logger,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	logger.Info("starting server",
		zap.String("service", cfg.App.Name),
		zap.String("port", port),
		zap.String("env", cfg.App.Env),
	)

	if err := router.Run(":" + port); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
