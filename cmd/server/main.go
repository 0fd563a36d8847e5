package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ashwinbuilds/booking-engine/internal/adapter/repository"
	"github.com/ashwinbuilds/booking-engine/internal/config"
	domainRepo "github.com/ashwinbuilds/booking-engine/internal/domain/repository"
	"github.com/ashwinbuilds/booking-engine/internal/infrastructure/database"
	gatewayFactory "github.com/ashwinbuilds/booking-engine/internal/infrastructure/gateway"
	httpServer "github.com/ashwinbuilds/booking-engine/internal/infrastructure/http"
	"github.com/ashwinbuilds/booking-engine/internal/infrastructure/mail"
	appLogger "github.com/ashwinbuilds/booking-engine/internal/logger"
	"github.com/ashwinbuilds/booking-engine/internal/usecase"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := appLogger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.NewConnection(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db, logger); err != nil {
			logger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	if err := database.Migrate(db, logger); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	repos := database.NewRepositories(db, logger)
	attempts := newAttemptStore(cfg, logger)

	pricing, err := usecase.NewPricingService(&cfg.Pricing, logger)
	if err != nil {
		logger.Fatal("Invalid pricing configuration", zap.Error(err))
	}
	factory := gatewayFactory.NewFactory(cfg, logger)
	mailer := mail.NewSMTPMailer(cfg.Email, cfg.Service.Owner, logger)
	notifier := usecase.NewNotificationService(mailer, logger)
	invoices := usecase.NewInvoiceService(repos.Invoice, logger)
	checkout := usecase.NewCheckoutService(pricing, factory, attempts, repos.PaymentOrder, invoices, notifier, logger)

	httpSrv := httpServer.NewServer(cfg, logger, checkout, pricing)

	go func() {
		if err := httpSrv.Start(); err != nil {
			logger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown HTTP server", zap.Error(err))
	}

	logger.Info("Server shut down successfully")
}

// newAttemptStore picks the checkout attempt store. Redis when an address is
// configured, otherwise an in-process store good enough for a single
// instance.
func newAttemptStore(cfg *config.Config, logger *zap.Logger) domainRepo.AttemptRepository {
	if cfg.Redis.Addr == "" {
		logger.Warn("redis address not configured, using in-memory attempt store")
		return repository.NewMemoryAttemptRepository(cfg.Redis.AttemptTTL)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	return repository.NewAttemptRepository(client, cfg.Redis.AttemptTTL, logger)
}
