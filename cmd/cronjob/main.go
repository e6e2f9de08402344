package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"rentloop-payments-backend/internal/config"
	"rentloop-payments-backend/internal/docstore"
	"rentloop-payments-backend/internal/gateway"
	"rentloop-payments-backend/internal/jobs"
	"rentloop-payments-backend/internal/logger"
	"rentloop-payments-backend/internal/repository"
	docrepo "rentloop-payments-backend/internal/repository/docstore"
	"rentloop-payments-backend/internal/repository/postgres"
	"rentloop-payments-backend/internal/scheduler"
)

// Runs the settlement sweep on its cron schedule. Pass -once to run the
// sweep a single time and exit, for manual reconciliation.
func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	once := flag.Bool("once", false, "Run the settlement sweep once and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Rentloop Payments cron runner...")

	ctx := context.Background()

	var txRepo repository.TransactionRepository
	switch cfg.Storage.Type {
	case "postgres":
		db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			log.Fatalf("Failed to ping database: %v", err)
		}
		txRepo = postgres.NewStore(db).TransactionRepository

	default:
		fs, err := docstore.NewFirestoreStore(ctx, cfg.Firestore.ProjectID, cfg.Firestore.CredentialsFile)
		if err != nil {
			log.Fatalf("Failed to connect to Firestore: %v", err)
		}
		defer fs.Close()
		txRepo = docrepo.NewTransactionRepository(fs)
	}

	statusClient := gateway.NewHTTPStatusClient(cfg.Gateway.StatusURL, cfg.RequestTimeout())
	poller := gateway.NewPoller(statusClient)
	jobRunner := jobs.NewJobRunner(txRepo, poller, cfg)

	if *once {
		jobRunner.SettlePendingPayments()
		return
	}

	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()

	// Block until interrupted
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	sched.Stop()
	logger.Info("Cron runner stopped")
}
