package jobs

import (
	"rentloop-payments-backend/internal/config"
	"rentloop-payments-backend/internal/logger"
	"rentloop-payments-backend/internal/repository"
	"rentloop-payments-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	txRepo repository.TransactionRepository
	poller service.PaymentPoller
	config *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(txRepo repository.TransactionRepository, poller service.PaymentPoller, cfg *config.Config) *JobRunner {
	return &JobRunner{
		txRepo: txRepo,
		poller: poller,
		config: cfg,
	}
}

// Config returns the runner's configuration
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}
