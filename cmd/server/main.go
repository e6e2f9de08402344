package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	httpapi "rentloop-payments-backend/internal/api/http"
	"rentloop-payments-backend/internal/config"
	"rentloop-payments-backend/internal/docstore"
	"rentloop-payments-backend/internal/gateway"
	"rentloop-payments-backend/internal/logger"
	"rentloop-payments-backend/internal/repository"
	docrepo "rentloop-payments-backend/internal/repository/docstore"
	"rentloop-payments-backend/internal/repository/postgres"
	"rentloop-payments-backend/internal/security"
	"rentloop-payments-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Rentloop Payments Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Gateway configuration", "status_url", cfg.Gateway.StatusURL,
		"max_poll_attempts", cfg.Gateway.MaxPollAttempts, "poll_interval_ms", cfg.Gateway.PollIntervalMS)

	ctx := context.Background()

	// Initialize the transaction store backend
	var txRepo repository.TransactionRepository
	var propertyRepo repository.PropertyRepository
	switch cfg.Storage.Type {
	case "postgres":
		logger.Info("Using Postgres storage", "host", cfg.Database.Host, "database", cfg.Database.Database)
		db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			log.Fatalf("Failed to ping database: %v", err)
		}
		store := postgres.NewStore(db)
		txRepo = store.TransactionRepository
		propertyRepo = store.PropertyRepository

	default:
		logger.Info("Using Firestore storage", "project_id", cfg.Firestore.ProjectID)
		fs, err := docstore.NewFirestoreStore(ctx, cfg.Firestore.ProjectID, cfg.Firestore.CredentialsFile)
		if err != nil {
			log.Fatalf("Failed to connect to Firestore: %v", err)
		}
		defer fs.Close()
		txRepo = docrepo.NewTransactionRepository(fs)
		propertyRepo = docrepo.NewPropertyRepository(fs)
	}

	// Initialize the payment gateway client and poller
	statusClient := gateway.NewHTTPStatusClient(cfg.Gateway.StatusURL, cfg.RequestTimeout())
	poller := gateway.NewPoller(statusClient)

	// Initialize Email Service
	var emailSvc service.EmailService
	if cfg.Email.SendGridAPIKey != "" {
		emailSvc = service.NewEmailService(cfg.Email.SendGridAPIKey, cfg.Email.FromEmail, cfg.Email.FromName)
	} else {
		logger.Warn("SendGrid API key not configured, receipt emails disabled")
	}

	// Initialize Services
	checkoutSvc := service.NewCheckoutService(
		txRepo,
		propertyRepo,
		poller,
		emailSvc,
		cfg.Gateway.MaxPollAttempts,
		cfg.PollInterval(),
	)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret)

	// Initialize Redis for idempotency, if configured
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn("Redis unreachable, idempotency cache disabled", "error", err)
			redisClient = nil
		}
	}

	// Initialize HTTP handlers
	paymentHandler := httpapi.NewPaymentHandler(checkoutSvc, statusClient)
	transactionHandler := httpapi.NewTransactionHandler(checkoutSvc)
	router := httpapi.NewRouter(paymentHandler, transactionHandler, tokenManager, redisClient)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("Failed to serve HTTP", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
