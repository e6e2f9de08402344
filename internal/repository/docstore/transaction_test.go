package docstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentloop-payments-backend/internal/docstore"
	"rentloop-payments-backend/internal/domain"
)

func newTestTransaction(sessionID string) *domain.RentalTransaction {
	return &domain.RentalTransaction{
		StripeSessionID: sessionID,
		AmountCents:     5000,
		Currency:        "usd",
		PropertyID:      "prop-1",
		PropertyTitle:   "Downtown loft",
		HostID:          "host-1",
		RenterID:        "renter-1",
		Description:     "Rental payment for Downtown loft",
		Status:          domain.TransactionStatusCompleted,
		Metadata:        map[string]string{"channel": "mobile"},
	}
}

func TestTransactionRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	repo := NewTransactionRepository(store)

	tx := newTestTransaction("sess_123")
	require.NoError(t, repo.Create(ctx, tx))
	require.NotEmpty(t, tx.ID)
	assert.False(t, tx.CreatedOn.IsZero())

	got, err := repo.GetByID(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, "sess_123", got.StripeSessionID)
	assert.Equal(t, int64(5000), got.AmountCents)
	assert.Equal(t, "usd", got.Currency)
	assert.Equal(t, "host-1", got.HostID)
	assert.Equal(t, domain.TransactionStatusCompleted, got.Status)
	assert.Equal(t, map[string]string{"channel": "mobile"}, got.Metadata)
}

func TestTransactionRepository_GetByID_NotFound(t *testing.T) {
	repo := NewTransactionRepository(docstore.NewMemoryStore())

	_, err := repo.GetByID(context.Background(), "tx-missing")

	assert.ErrorContains(t, err, "not found")
}

func TestTransactionRepository_GetByStripeSession(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	repo := NewTransactionRepository(store)

	t.Run("absent session yields no record and no error", func(t *testing.T) {
		got, err := repo.GetByStripeSession(ctx, "sess_unknown")

		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("finds record by session id", func(t *testing.T) {
		tx := newTestTransaction("sess_456")
		require.NoError(t, repo.Create(ctx, tx))

		got, err := repo.GetByStripeSession(ctx, "sess_456")

		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, tx.ID, got.ID)
	})
}

func TestTransactionRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	repo := NewTransactionRepository(store)

	tx := newTestTransaction("sess_789")
	tx.Status = domain.TransactionStatusPending
	require.NoError(t, repo.Create(ctx, tx))

	err := repo.UpdateStatus(ctx, tx.ID, domain.TransactionStatusCompleted, map[string]interface{}{
		"currency": "eur",
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionStatusCompleted, got.Status)
	assert.Equal(t, "eur", got.Currency)
	assert.True(t, got.UpdatedOn.After(got.CreatedOn) || got.UpdatedOn.Equal(got.CreatedOn))
}

func TestTransactionRepository_Listing(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	repo := NewTransactionRepository(store)

	pending := newTestTransaction("sess_a")
	pending.Status = domain.TransactionStatusPending
	require.NoError(t, repo.Create(ctx, pending))

	completed := newTestTransaction("sess_b")
	require.NoError(t, repo.Create(ctx, completed))

	other := newTestTransaction("sess_c")
	other.RenterID = "renter-2"
	require.NoError(t, repo.Create(ctx, other))

	byStatus, err := repo.ListByStatus(ctx, domain.TransactionStatusPending, 10)
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, "sess_a", byStatus[0].StripeSessionID)

	byRenter, err := repo.ListByRenter(ctx, "renter-1", 10)
	require.NoError(t, err)
	assert.Len(t, byRenter, 2)
}
