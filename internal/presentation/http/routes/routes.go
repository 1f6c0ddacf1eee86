package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/routerlabs/einvoice-bridge/internal/config"
	domainRepo "github.com/routerlabs/einvoice-bridge/internal/domain/repository"
	"github.com/routerlabs/einvoice-bridge/internal/presentation/http/handler"
	"github.com/routerlabs/einvoice-bridge/internal/presentation/http/middleware"
	"github.com/routerlabs/einvoice-bridge/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Settings  *handler.SettingsHandler
	Order     *handler.OrderHandler
	Invoice   *handler.InvoiceHandler
	Dashboard *handler.DashboardHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
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
		// Public routes (no authentication required)
		v1.POST("/auth/login", h.Auth.Login)

		// Protected routes (admin only)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(middleware.RequireRole("admin"))

		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotent := middleware.IdempotencyRequired(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
	})

	// Settings
	settings := protected.Group("/settings")
	{
		settings.GET("", h.Settings.GetSettings)
		settings.PUT("", h.Settings.UpdateSettings)
		settings.POST("/validate-key", h.Settings.ValidateAPIKey)
		settings.POST("/welcome/dismiss", h.Settings.DismissWelcome)
	}

	// Order ingestion from the commerce platform
	protected.POST("/webhooks/orders", h.Order.IngestWebhook)

	// Orders and invoice generation
	orders := protected.Group("/orders")
	{
		orders.GET("", h.Order.List)
		orders.GET("/:number", h.Order.Get)
		orders.GET("/:number/invoice", h.Invoice.GetStatus)
		// Generation uses idempotency middleware to prevent duplicate submissions
		orders.POST("/:number/invoice", idempotent, h.Invoice.Generate)
	}

	// Bulk generation
	protected.POST("/invoices/bulk", idempotent, h.Invoice.BulkGenerate)

	// Dashboard
	protected.GET("/dashboard", h.Dashboard.GetStats)
}
