package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/routerlabs/einvoice-bridge/internal/application/service"
	"github.com/routerlabs/einvoice-bridge/internal/config"
	"github.com/routerlabs/einvoice-bridge/internal/domain/enum"
	"github.com/routerlabs/einvoice-bridge/internal/infrastructure/database"
	"github.com/routerlabs/einvoice-bridge/internal/infrastructure/repository"
	"github.com/routerlabs/einvoice-bridge/internal/presentation/http/handler"
	"github.com/routerlabs/einvoice-bridge/internal/presentation/http/routes"
	"github.com/routerlabs/einvoice-bridge/pkg/b2brouter"
	"github.com/routerlabs/einvoice-bridge/pkg/utils"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logrus.SetFormatter(&logrus.JSONFormatter{})
	if cfg.App.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		logrus.WithError(err).Fatal("Failed to run migrations")
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Initialize repositories
	orderRepo := repository.NewOrderRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// The API key lives in mutable settings, so clients are built per use.
	gateway := service.GatewayFactory(func(apiKey string, env enum.Environment) service.InvoiceGateway {
		return b2brouter.NewClient(apiKey,
			b2brouter.WithBaseURL(service.BaseURLFor(env)),
			b2brouter.WithTimeout(cfg.B2Brouter.Timeout),
		)
	})

	// Initialize services
	authService := service.NewAuthService(cfg.Admin, jwtManager)
	settingsService := service.NewSettingsService(settingsRepo, gateway)
	orderService := service.NewOrderService(orderRepo)
	projector := service.NewInvoiceProjector(cfg.Invoice.DueDays, cfg.Invoice.TaxName, cfg.Invoice.TaxCategory)
	invoiceService := service.NewInvoiceService(orderRepo, settingsService, projector, gateway)

	// Automatic generation on order completion
	orderService.OnOrderCompleted(invoiceService.HandleOrderCompleted)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Settings:  handler.NewSettingsHandler(settingsService),
		Order:     handler.NewOrderHandler(orderService),
		Invoice:   handler.NewInvoiceHandler(invoiceService, orderService),
		Dashboard: handler.NewDashboardHandler(orderService, settingsService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	logrus.WithFields(logrus.Fields{
		"service": cfg.App.Name,
		"port":    port,
		"env":     cfg.App.Env,
	}).Info("Starting server")

	if err := router.Run(":" + port); err != nil {
		logrus.WithError(err).Fatal("Failed to start server")
		os.Exit(1)
	}
}
