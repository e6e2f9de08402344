package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rentloop-payments-backend/internal/domain"
	"rentloop-payments-backend/internal/logger"
	"rentloop-payments-backend/internal/repository"
)

// User-facing failure messages. The decline and timeout texts must stay
// distinguishable: a decline means no charge happened, a timeout means money
// may still settle later.
const (
	msgInvalidSession = "Invalid session"
	msgDeclined       = "Your payment was declined or failed"
	msgTimeout        = "Payment verification is taking longer than expected. If you completed the payment it may still be processing, please check your bookings later"
	msgProcessing     = "Payment processing failed"
)

type checkoutService struct {
	txRepo       repository.TransactionRepository
	propertyRepo repository.PropertyRepository
	poller       PaymentPoller
	emailSvc     EmailService
	maxAttempts  int
	pollInterval time.Duration
}

func NewCheckoutService(
	txRepo repository.TransactionRepository,
	propertyRepo repository.PropertyRepository,
	poller PaymentPoller,
	emailSvc EmailService,
	maxAttempts int,
	pollInterval time.Duration,
) CheckoutService {
	return &checkoutService{
		txRepo:       txRepo,
		propertyRepo: propertyRepo,
		poller:       poller,
		emailSvc:     emailSvc,
		maxAttempts:  maxAttempts,
		pollInterval: pollInterval,
	}
}

func (s *checkoutService) ResolveOutcome(ctx context.Context, payload domain.OutcomePayload, renterEmail string) domain.Outcome {
	if payload.SessionID == "" {
		// Terminal failure before any network call.
		return failedOutcome(payload, domain.FailureInvalidSession, msgInvalidSession)
	}

	resp, err := s.poller.PollPaymentStatus(ctx, payload.SessionID, s.maxAttempts, s.pollInterval)
	if err != nil {
		message := msgProcessing
		if !errors.Is(err, context.Canceled) && err.Error() != "" {
			message = err.Error()
		}
		logger.Error("Payment status polling failed",
			"session_id", payload.SessionID, "error", err)
		return failedOutcome(payload.Merge(resp), domain.FailureProcessing, message)
	}

	merged := payload.Merge(resp)
	switch resp.PaymentStatus {
	case domain.PaymentStatusSucceeded:
		s.reconcileTransaction(ctx, merged, renterEmail)
		return domain.Outcome{Destination: domain.DestinationSuccess, Payload: merged}

	case domain.PaymentStatusFailed:
		s.notifyFailure(ctx, renterEmail, merged.PropertyTitle, msgDeclined)
		return failedOutcome(merged, domain.FailureDeclined, msgDeclined)

	default:
		// Attempt budget exhausted while still pending. The gateway may yet
		// settle, so the message points at the bookings screen instead of
		// claiming a decline.
		return failedOutcome(merged, domain.FailureTimeout, msgTimeout)
	}
}

// reconcileTransaction brings the local record in line with a confirmed
// success. Failures here never flip the user-facing outcome; the payment went
// through and the settlement sweep picks up whatever is left inconsistent.
func (s *checkoutService) reconcileTransaction(ctx context.Context, payload domain.OutcomePayload, renterEmail string) {
	existing, err := s.txRepo.GetByStripeSession(ctx, payload.SessionID)
	if err != nil {
		logger.Error("Transaction lookup failed during reconciliation",
			"session_id", payload.SessionID, "error", err)
		return
	}

	if existing != nil {
		if existing.Status != domain.TransactionStatusCompleted {
			if err := s.txRepo.UpdateStatus(ctx, existing.ID, domain.TransactionStatusCompleted, nil); err != nil {
				logger.Error("Failed to mark transaction completed",
					"transaction_id", existing.ID, "error", err)
				return
			}
		}
		s.notifyReceipt(ctx, renterEmail, payload)
		return
	}

	_, err = s.CreateRentalTransactionWithHostLookup(ctx, CreateTransactionParams{
		StripeSessionID: payload.SessionID,
		AmountCents:     payload.AmountCents,
		Currency:        payload.Currency,
		PropertyID:      payload.PropertyID,
		PropertyTitle:   payload.PropertyTitle,
		RenterID:        payload.RenterID,
		Description:     fmt.Sprintf("Rental payment for %s", payload.PropertyTitle),
	})
	if err != nil {
		logger.Error("Failed to record rental transaction",
			"session_id", payload.SessionID, "error", err)
		return
	}
	s.notifyReceipt(ctx, renterEmail, payload)
}

func (s *checkoutService) CreateRentalTransaction(ctx context.Context, params CreateTransactionParams) (string, error) {
	if params.HostID == "" {
		return "", errors.New("host id is required to create a rental transaction")
	}

	tx := &domain.RentalTransaction{
		StripeSessionID: params.StripeSessionID,
		AmountCents:     params.AmountCents,
		Currency:        params.Currency,
		PropertyID:      params.PropertyID,
		PropertyTitle:   params.PropertyTitle,
		HostID:          params.HostID,
		RenterID:        params.RenterID,
		Description:     params.Description,
		Status:          domain.TransactionStatusCompleted,
		Metadata:        params.Metadata,
	}
	if err := s.txRepo.Create(ctx, tx); err != nil {
		return "", err
	}
	logger.Info("Rental transaction recorded",
		"transaction_id", tx.ID, "session_id", tx.StripeSessionID, "amount_cents", tx.AmountCents)
	return tx.ID, nil
}

func (s *checkoutService) CreateRentalTransactionWithHostLookup(ctx context.Context, params CreateTransactionParams) (string, error) {
	hostID, err := s.propertyRepo.GetHostID(ctx, params.PropertyID)
	if err != nil {
		return "", fmt.Errorf("host lookup for property %s failed: %w", params.PropertyID, err)
	}
	if hostID == "" {
		// The one place an undiscoverable owner is a hard error.
		return "", fmt.Errorf("no host could be resolved for property %s", params.PropertyID)
	}

	params.HostID = hostID
	return s.CreateRentalTransaction(ctx, params)
}

func (s *checkoutService) GetTransactionByStripeSession(ctx context.Context, sessionID string) (*domain.RentalTransaction, error) {
	return s.txRepo.GetByStripeSession(ctx, sessionID)
}

func (s *checkoutService) UpdateTransactionStatus(ctx context.Context, id string, status domain.TransactionStatus, extra map[string]interface{}) error {
	return s.txRepo.UpdateStatus(ctx, id, status, extra)
}

func (s *checkoutService) ListRenterTransactions(ctx context.Context, renterID string, limit int) ([]domain.RentalTransaction, error) {
	return s.txRepo.ListByRenter(ctx, renterID, limit)
}

func (s *checkoutService) notifyReceipt(ctx context.Context, renterEmail string, payload domain.OutcomePayload) {
	if s.emailSvc == nil || renterEmail == "" {
		return
	}
	if err := s.emailSvc.SendPaymentReceipt(ctx, renterEmail, payload.PropertyTitle, payload.AmountCents, payload.Currency); err != nil {
		logger.Warn("Failed to send payment receipt", "error", err)
	}
}

func (s *checkoutService) notifyFailure(ctx context.Context, renterEmail, propertyTitle, reason string) {
	if s.emailSvc == nil || renterEmail == "" {
		return
	}
	if err := s.emailSvc.SendPaymentFailureNotice(ctx, renterEmail, propertyTitle, reason); err != nil {
		logger.Warn("Failed to send payment failure notice", "error", err)
	}
}

func failedOutcome(payload domain.OutcomePayload, kind domain.FailureKind, message string) domain.Outcome {
	payload.ErrorMessage = message
	return domain.Outcome{
		Destination: domain.DestinationFailed,
		Failure:     kind,
		Payload:     payload,
	}
}
