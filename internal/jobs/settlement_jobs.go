package jobs

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"rentloop-payments-backend/internal/domain"
	"rentloop-payments-backend/internal/logger"
)

const pendingSweepBatchSize = 200

// SettlePendingPayments re-queries the gateway once for every transaction
// still marked pending. Ambiguous poll timeouts leave records behind that
// may have settled after the user gave up waiting; this sweep promotes them
// to completed or failed.
func (jr *JobRunner) SettlePendingPayments() {
	jr.runWithRecovery("SettlePendingPayments", jr.settlePendingPayments)
}

func (jr *JobRunner) settlePendingPayments() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pending, err := jr.txRepo.ListByStatus(ctx, domain.TransactionStatusPending, pendingSweepBatchSize)
	if err != nil {
		logger.Error("Failed to list pending transactions", "error", err)
		return
	}
	if len(pending) == 0 {
		logger.Debug("No pending transactions to settle")
		return
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jr.config.Scheduler.SweepConcurrency)

	var settled, failed atomic.Int64
	for _, tx := range pending {
		g.Go(func() error {
			if tx.StripeSessionID == "" {
				return nil
			}

			// Single attempt; the nightly cadence is the retry loop.
			resp, err := jr.poller.PollPaymentStatus(ctx, tx.StripeSessionID, 1, time.Second)
			if err != nil {
				logger.Warn("Settlement status query failed",
					"transaction_id", tx.ID, "session_id", tx.StripeSessionID, "error", err)
				return nil
			}

			switch resp.PaymentStatus {
			case domain.PaymentStatusSucceeded:
				if err := jr.txRepo.UpdateStatus(ctx, tx.ID, domain.TransactionStatusCompleted, nil); err != nil {
					logger.Error("Failed to settle transaction", "transaction_id", tx.ID, "error", err)
					return nil
				}
				settled.Add(1)
			case domain.PaymentStatusFailed:
				if err := jr.txRepo.UpdateStatus(ctx, tx.ID, domain.TransactionStatusFailed, nil); err != nil {
					logger.Error("Failed to fail transaction", "transaction_id", tx.ID, "error", err)
					return nil
				}
				failed.Add(1)
			}
			return nil
		})
	}

	_ = g.Wait()
	logger.Info("Pending settlement sweep finished",
		"checked", len(pending), "settled", settled.Load(), "failed", failed.Load())
}
