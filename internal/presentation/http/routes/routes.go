package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mkamau/dinepos-api/internal/config"
	domainRepo "github.com/mkamau/dinepos-api/internal/domain/repository"
	"github.com/mkamau/dinepos-api/internal/presentation/http/handler"
	"github.com/mkamau/dinepos-api/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Cart      *handler.CartHandler
	Payment   *handler.PaymentHandler
	Menu      *handler.MenuHandler
	QRSession *handler.QRSessionHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
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
		rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		v1.Use(rateLimiter.Middleware())

		registerCartRoutes(v1, h, deps)
		registerPaymentRoutes(v1, h, deps)
		registerMenuRoutes(v1, h)
		registerQRSessionRoutes(v1, h)
	}

	return router
}

func registerCartRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps) {
	carts := v1.Group("/carts")
	{
		carts.POST("", h.Cart.Create)
		carts.GET("", h.Cart.GetByTarget)
		carts.GET("/:id", h.Cart.Get)
		carts.POST("/:id/items", h.Cart.AddItem)
		carts.PUT("/:id/items/:itemId", h.Cart.UpdateLine)
		carts.DELETE("/:id/items/:itemId", h.Cart.RemoveItem)
		carts.DELETE("/:id/items", h.Cart.Clear)
		// Submission uses idempotency middleware so a double tap never
		// creates two upstream orders
		carts.POST("/:id/submit", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Cart.Submit)
	}
}

func registerPaymentRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps) {
	payments := v1.Group("/payments")
	{
		payments.POST("/preview", h.Payment.Preview)
		payments.POST("", middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Payment.Create)
		payments.GET("", h.Payment.List)
		payments.GET("/:id", h.Payment.Get)
		payments.GET("/:id/receipt", h.Payment.Receipt)
	}
}

func registerMenuRoutes(v1 *gin.RouterGroup, h *Handlers) {
	menu := v1.Group("/menu")
	{
		menu.GET("", h.Menu.List)
		menu.POST("", h.Menu.Create)
		menu.GET("/:id", h.Menu.Get)
		menu.PUT("/:id", h.Menu.Update)
		menu.DELETE("/:id", h.Menu.Delete)
	}
}

func registerQRSessionRoutes(v1 *gin.RouterGroup, h *Handlers) {
	v1.POST("/qr-sessions", h.QRSession.Create)
}
