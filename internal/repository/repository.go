package repository

import (
	"context"

	"rentloop-payments-backend/internal/domain"
)

// TransactionRepository persists rental-payment transactions. The session
// lookup returns (nil, nil) when no record matches; absence is how the
// reconciliation path decides whether to create a record, so it is not an
// error. No uniqueness constraint backs that check (lookup-before-create).
type TransactionRepository interface {
	Create(ctx context.Context, tx *domain.RentalTransaction) error
	GetByID(ctx context.Context, id string) (*domain.RentalTransaction, error)
	GetByStripeSession(ctx context.Context, sessionID string) (*domain.RentalTransaction, error)

	// UpdateStatus overwrites the status field unconditionally; extra fields
	// are merged into the record alongside it.
	UpdateStatus(ctx context.Context, id string, status domain.TransactionStatus, extra map[string]interface{}) error

	ListByStatus(ctx context.Context, status domain.TransactionStatus, limit int) ([]domain.RentalTransaction, error)
	ListByRenter(ctx context.Context, renterID string, limit int) ([]domain.RentalTransaction, error)
}

// PropertyRepository resolves property ownership. GetHostID returns "" with a
// nil error when the property exists but carries no discoverable owner; the
// caller decides whether that absence is fatal.
type PropertyRepository interface {
	GetHostID(ctx context.Context, propertyID string) (string, error)
}
