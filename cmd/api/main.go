// cmd/api/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/domain/businessrule"
	"github.com/your-org/pos-backend/internal/domain/cart"
	"github.com/your-org/pos-backend/internal/domain/customer"
	"github.com/your-org/pos-backend/internal/domain/order"
	"github.com/your-org/pos-backend/internal/domain/payment"
	"github.com/your-org/pos-backend/internal/infrastructure/database/postgres"
	"github.com/your-org/pos-backend/internal/infrastructure/database/redis"
	"github.com/your-org/pos-backend/internal/interfaces/http"
	"github.com/your-org/pos-backend/internal/interfaces/http/routes"
	"github.com/your-org/pos-backend/internal/pendingqueue"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("🚀 Starting %s v%s in %s mode", cfg.App.Name, cfg.App.Version, cfg.App.Environment)

	logger := newLogger(cfg)

	// Connect to database
	db, err := postgres.NewConnection(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Connect to Redis
	redisClient, err := redis.NewConnection(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	// Run database migrations
	if err := postgres.AutoMigrate(db.GetDB()); err != nil {
		log.Fatalf("Database migration failed: %v", err)
	}

	// Open the durable pending-order queue
	queue, err := pendingqueue.Open(cfg.PendingQueue.Path)
	if err != nil {
		log.Fatalf("Failed to open pending order queue: %v", err)
	}
	if n := queue.Len(); n > 0 {
		log.Printf("📋 Recovered %d pending order(s) from disk", n)
	}

	// Wire the domain services
	registry := businessrule.NewRegistry()
	sessions := businessrule.NewSessionStore(redisClient.GetClient(), registry, businessrule.BusinessType(cfg.Org.BusinessType))
	cartService := cart.NewService(redisClient.GetClient())
	provider := payment.NewSimulatedProvider(cfg, logger)
	payments := payment.NewManager(cfg, provider, logger)
	customerService := customer.NewService(db.GetDB())
	orderService := order.NewService(db.GetDB(), queue, customerService, logger)
	finalizer := order.NewFinalizer(db.GetDB(), cfg, cartService, sessions, payments, queue, customerService, logger)

	log.Println("✅ All systems operational!")

	// Create and start HTTP server
	server := http.NewServer(cfg, &routes.Dependencies{
		Config:       cfg,
		DB:           db.GetDB(),
		RedisClient:  redisClient.GetClient(),
		Registry:     registry,
		Sessions:     sessions,
		CartService:  cartService,
		Payments:     payments,
		OrderService: orderService,
		Finalizer:    finalizer,
	})

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("👋 Shutting down gracefully...")

	// Give server 30 seconds to shutdown gracefully
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		log.Printf("Failed to shutdown HTTP server gracefully: %v", err)
	}

	log.Println("✅ Server shutdown completed")
}

// newLogger builds the application logger from configuration
func newLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()

	if cfg.Logging.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}
