package service

import (
	"context"
	"time"

	"rentloop-payments-backend/internal/domain"
)

// CreateTransactionParams carries everything needed to record a rental
// payment. HostID may be left empty when the caller goes through the
// host-lookup composition.
type CreateTransactionParams struct {
	StripeSessionID string
	AmountCents     int64
	Currency        string
	PropertyID      string
	PropertyTitle   string
	HostID          string
	RenterID        string
	Description     string
	Metadata        map[string]string
}

type CheckoutService interface {
	// ResolveOutcome runs the post-checkout state machine for one session:
	// validate, poll, route, reconcile. It never returns an error; every
	// failure is folded into the failed destination.
	ResolveOutcome(ctx context.Context, payload domain.OutcomePayload, renterEmail string) domain.Outcome

	CreateRentalTransaction(ctx context.Context, params CreateTransactionParams) (string, error)
	CreateRentalTransactionWithHostLookup(ctx context.Context, params CreateTransactionParams) (string, error)
	GetTransactionByStripeSession(ctx context.Context, sessionID string) (*domain.RentalTransaction, error)
	UpdateTransactionStatus(ctx context.Context, id string, status domain.TransactionStatus, extra map[string]interface{}) error
	ListRenterTransactions(ctx context.Context, renterID string, limit int) ([]domain.RentalTransaction, error)
}

// PaymentPoller is the polling contract the resolver depends on; satisfied by
// gateway.Poller.
type PaymentPoller interface {
	PollPaymentStatus(ctx context.Context, sessionID string, maxAttempts int, interval time.Duration) (*domain.StatusResponse, error)
}

// BrowserLauncher opens the hosted checkout page in an external browser
// context and blocks until that context is dismissed, returning whatever URL
// it closed on. Closure is uninformative; callers must not infer outcome
// from it alone.
type BrowserLauncher interface {
	OpenCheckout(ctx context.Context, checkoutURL string) (closingURL string, err error)
}

type EmailService interface {
	SendPaymentReceipt(ctx context.Context, toEmail, propertyTitle string, amountCents int64, currency string) error
	SendPaymentFailureNotice(ctx context.Context, toEmail, propertyTitle, reason string) error
}
