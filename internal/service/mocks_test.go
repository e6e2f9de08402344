package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"rentloop-payments-backend/internal/domain"
)

type MockTransactionRepo struct {
	mock.Mock
}

func (m *MockTransactionRepo) Create(ctx context.Context, tx *domain.RentalTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepo) GetByID(ctx context.Context, id string) (*domain.RentalTransaction, error) {
	args := m.Called(ctx, id)
	tx, _ := args.Get(0).(*domain.RentalTransaction)
	return tx, args.Error(1)
}

func (m *MockTransactionRepo) GetByStripeSession(ctx context.Context, sessionID string) (*domain.RentalTransaction, error) {
	args := m.Called(ctx, sessionID)
	tx, _ := args.Get(0).(*domain.RentalTransaction)
	return tx, args.Error(1)
}

func (m *MockTransactionRepo) UpdateStatus(ctx context.Context, id string, status domain.TransactionStatus, extra map[string]interface{}) error {
	args := m.Called(ctx, id, status, extra)
	return args.Error(0)
}

func (m *MockTransactionRepo) ListByStatus(ctx context.Context, status domain.TransactionStatus, limit int) ([]domain.RentalTransaction, error) {
	args := m.Called(ctx, status, limit)
	txs, _ := args.Get(0).([]domain.RentalTransaction)
	return txs, args.Error(1)
}

func (m *MockTransactionRepo) ListByRenter(ctx context.Context, renterID string, limit int) ([]domain.RentalTransaction, error) {
	args := m.Called(ctx, renterID, limit)
	txs, _ := args.Get(0).([]domain.RentalTransaction)
	return txs, args.Error(1)
}

type MockPropertyRepo struct {
	mock.Mock
}

func (m *MockPropertyRepo) GetHostID(ctx context.Context, propertyID string) (string, error) {
	args := m.Called(ctx, propertyID)
	return args.String(0), args.Error(1)
}

type MockPoller struct {
	mock.Mock
}

func (m *MockPoller) PollPaymentStatus(ctx context.Context, sessionID string, maxAttempts int, interval time.Duration) (*domain.StatusResponse, error) {
	args := m.Called(ctx, sessionID, maxAttempts, interval)
	resp, _ := args.Get(0).(*domain.StatusResponse)
	return resp, args.Error(1)
}

type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendPaymentReceipt(ctx context.Context, toEmail, propertyTitle string, amountCents int64, currency string) error {
	args := m.Called(ctx, toEmail, propertyTitle, amountCents, currency)
	return args.Error(0)
}

func (m *MockEmailService) SendPaymentFailureNotice(ctx context.Context, toEmail, propertyTitle, reason string) error {
	args := m.Called(ctx, toEmail, propertyTitle, reason)
	return args.Error(0)
}

type MockLauncher struct {
	mock.Mock
}

func (m *MockLauncher) OpenCheckout(ctx context.Context, checkoutURL string) (string, error) {
	args := m.Called(ctx, checkoutURL)
	return args.String(0), args.Error(1)
}
