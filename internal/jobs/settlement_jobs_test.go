package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"rentloop-payments-backend/internal/config"
	"rentloop-payments-backend/internal/domain"
)

type mockTransactionRepo struct {
	mock.Mock
}

func (m *mockTransactionRepo) Create(ctx context.Context, tx *domain.RentalTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *mockTransactionRepo) GetByID(ctx context.Context, id string) (*domain.RentalTransaction, error) {
	args := m.Called(ctx, id)
	tx, _ := args.Get(0).(*domain.RentalTransaction)
	return tx, args.Error(1)
}

func (m *mockTransactionRepo) GetByStripeSession(ctx context.Context, sessionID string) (*domain.RentalTransaction, error) {
	args := m.Called(ctx, sessionID)
	tx, _ := args.Get(0).(*domain.RentalTransaction)
	return tx, args.Error(1)
}

func (m *mockTransactionRepo) UpdateStatus(ctx context.Context, id string, status domain.TransactionStatus, extra map[string]interface{}) error {
	args := m.Called(ctx, id, status, extra)
	return args.Error(0)
}

func (m *mockTransactionRepo) ListByStatus(ctx context.Context, status domain.TransactionStatus, limit int) ([]domain.RentalTransaction, error) {
	args := m.Called(ctx, status, limit)
	txs, _ := args.Get(0).([]domain.RentalTransaction)
	return txs, args.Error(1)
}

func (m *mockTransactionRepo) ListByRenter(ctx context.Context, renterID string, limit int) ([]domain.RentalTransaction, error) {
	args := m.Called(ctx, renterID, limit)
	txs, _ := args.Get(0).([]domain.RentalTransaction)
	return txs, args.Error(1)
}

type mockPoller struct {
	mock.Mock
}

func (m *mockPoller) PollPaymentStatus(ctx context.Context, sessionID string, maxAttempts int, interval time.Duration) (*domain.StatusResponse, error) {
	args := m.Called(ctx, sessionID, maxAttempts, interval)
	resp, _ := args.Get(0).(*domain.StatusResponse)
	return resp, args.Error(1)
}

func sweepConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Scheduler.SweepConcurrency = 2
	return cfg
}

func TestSettlePendingPayments(t *testing.T) {
	t.Run("promotes settled and failed transactions", func(t *testing.T) {
		repo := new(mockTransactionRepo)
		poller := new(mockPoller)
		runner := NewJobRunner(repo, poller, sweepConfig())

		pending := []domain.RentalTransaction{
			{ID: "tx-1", StripeSessionID: "sess_a", Status: domain.TransactionStatusPending},
			{ID: "tx-2", StripeSessionID: "sess_b", Status: domain.TransactionStatusPending},
			{ID: "tx-3", StripeSessionID: "sess_c", Status: domain.TransactionStatusPending},
		}
		repo.On("ListByStatus", mock.Anything, domain.TransactionStatusPending, pendingSweepBatchSize).
			Return(pending, nil)

		poller.On("PollPaymentStatus", mock.Anything, "sess_a", 1, time.Second).
			Return(&domain.StatusResponse{PaymentStatus: domain.PaymentStatusSucceeded, SessionID: "sess_a"}, nil)
		poller.On("PollPaymentStatus", mock.Anything, "sess_b", 1, time.Second).
			Return(&domain.StatusResponse{PaymentStatus: domain.PaymentStatusFailed, SessionID: "sess_b"}, nil)
		poller.On("PollPaymentStatus", mock.Anything, "sess_c", 1, time.Second).
			Return(&domain.StatusResponse{PaymentStatus: domain.PaymentStatusPending, SessionID: "sess_c"}, nil)

		repo.On("UpdateStatus", mock.Anything, "tx-1", domain.TransactionStatusCompleted,
			map[string]interface{}(nil)).Return(nil)
		repo.On("UpdateStatus", mock.Anything, "tx-2", domain.TransactionStatusFailed,
			map[string]interface{}(nil)).Return(nil)

		runner.SettlePendingPayments()

		repo.AssertExpectations(t)
		poller.AssertExpectations(t)
		// Still-pending transactions are left for the next sweep.
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, "tx-3", mock.Anything, mock.Anything)
	})

	t.Run("query failure leaves the record untouched", func(t *testing.T) {
		repo := new(mockTransactionRepo)
		poller := new(mockPoller)
		runner := NewJobRunner(repo, poller, sweepConfig())

		repo.On("ListByStatus", mock.Anything, domain.TransactionStatusPending, pendingSweepBatchSize).
			Return([]domain.RentalTransaction{
				{ID: "tx-1", StripeSessionID: "sess_a", Status: domain.TransactionStatusPending},
			}, nil)
		poller.On("PollPaymentStatus", mock.Anything, "sess_a", 1, time.Second).
			Return(nil, errors.New("gateway unreachable"))

		runner.SettlePendingPayments()

		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("records without a session id are skipped", func(t *testing.T) {
		repo := new(mockTransactionRepo)
		poller := new(mockPoller)
		runner := NewJobRunner(repo, poller, sweepConfig())

		repo.On("ListByStatus", mock.Anything, domain.TransactionStatusPending, pendingSweepBatchSize).
			Return([]domain.RentalTransaction{
				{ID: "tx-1", Status: domain.TransactionStatusPending},
			}, nil)

		runner.SettlePendingPayments()

		poller.AssertNotCalled(t, "PollPaymentStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
