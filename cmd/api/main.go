package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mkamau/dinepos-api/internal/application/service"
	"github.com/mkamau/dinepos-api/internal/config"
	"github.com/mkamau/dinepos-api/internal/infrastructure/database"
	"github.com/mkamau/dinepos-api/internal/infrastructure/orderapi"
	"github.com/mkamau/dinepos-api/internal/infrastructure/repository"
	"github.com/mkamau/dinepos-api/internal/presentation/http/handler"
	"github.com/mkamau/dinepos-api/internal/presentation/http/routes"
	"github.com/mkamau/dinepos-api/pkg/qrtoken"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	cartRepo := repository.NewCartRepository(db)
	menuRepo := repository.NewMenuItemRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize the upstream order API client and QR token manager
	orderClient := orderapi.NewClient(&cfg.OrderAPI)
	qrTokens := qrtoken.NewManager(cfg.QRSession.Secret, cfg.QRSession.TTL)

	// Initialize services
	cartService := service.NewCartService(cartRepo, menuRepo, orderClient, qrTokens, cfg.Pricing, cfg.Cart.TTL)
	paymentService := service.NewPaymentService(paymentRepo)
	menuService := service.NewMenuService(menuRepo)
	receiptService := service.NewReceiptService(paymentRepo, cartRepo, cfg.Store)

	// Background sweeps: expired carts and stale idempotency keys
	go func() {
		ticker := time.NewTicker(15 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if n, err := cartService.SweepExpired(ctx); err != nil {
				log.Printf("Warning: cart sweep failed: %v", err)
			} else if n > 0 {
				log.Printf("Discarded %d expired carts", n)
			}
			if err := idempotencyRepo.DeleteExpired(ctx); err != nil {
				log.Printf("Warning: idempotency key sweep failed: %v", err)
			}
			cancel()
		}
	}()

	// Initialize handlers
	handlers := &routes.Handlers{
		Cart:      handler.NewCartHandler(cartService),
		Payment:   handler.NewPaymentHandler(paymentService, receiptService),
		Menu:      handler.NewMenuHandler(menuService),
		QRSession: handler.NewQRSessionHandler(qrTokens),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
