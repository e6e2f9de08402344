package gateway

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentloop-payments-backend/internal/domain"
)

// scriptedClient returns canned responses in order, then repeats the last one.
type scriptedClient struct {
	responses []*domain.StatusResponse
	errs      []error
	calls     int
}

func (c *scriptedClient) FetchStatus(ctx context.Context, sessionID string) (*domain.StatusResponse, error) {
	idx := c.calls
	if idx >= len(c.responses) {
		idx = len(c.responses) - 1
	}
	c.calls++
	if idx < len(c.errs) && c.errs[idx] != nil {
		return nil, c.errs[idx]
	}
	return c.responses[idx], nil
}

func pending(sessionID string) *domain.StatusResponse {
	return &domain.StatusResponse{PaymentStatus: domain.PaymentStatusPending, SessionID: sessionID}
}

func TestPoller_PollPaymentStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Succeeds on third attempt", func(t *testing.T) {
		client := &scriptedClient{responses: []*domain.StatusResponse{
			pending("sess_123"),
			pending("sess_123"),
			{
				PaymentStatus: domain.PaymentStatusSucceeded,
				SessionID:     "sess_123",
				AmountCents:   5000,
				Currency:      "usd",
			},
		}}
		poller := NewPoller(client)

		resp, err := poller.PollPaymentStatus(ctx, "sess_123", 3, time.Millisecond)
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusSucceeded, resp.PaymentStatus)
		assert.Equal(t, int64(5000), resp.AmountCents)
		assert.Equal(t, "usd", resp.Currency)
		assert.Equal(t, 3, client.calls)
	})

	t.Run("Stops immediately on failed", func(t *testing.T) {
		client := &scriptedClient{responses: []*domain.StatusResponse{
			{PaymentStatus: domain.PaymentStatusFailed, SessionID: "sess_123"},
		}}
		poller := NewPoller(client)

		resp, err := poller.PollPaymentStatus(ctx, "sess_123", 30, time.Millisecond)
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusFailed, resp.PaymentStatus)
		assert.Equal(t, 1, client.calls)
	})

	t.Run("Exhausts attempts while pending", func(t *testing.T) {
		client := &scriptedClient{responses: []*domain.StatusResponse{pending("sess_123")}}
		poller := NewPoller(client)

		resp, err := poller.PollPaymentStatus(ctx, "sess_123", 3, time.Millisecond)
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusPending, resp.PaymentStatus)
		assert.Equal(t, 3, client.calls)
	})

	t.Run("Query error propagates", func(t *testing.T) {
		queryErr := errors.New("gateway unreachable")
		client := &scriptedClient{
			responses: []*domain.StatusResponse{nil},
			errs:      []error{queryErr},
		}
		poller := NewPoller(client)

		_, err := poller.PollPaymentStatus(ctx, "sess_123", 3, time.Millisecond)
		assert.ErrorIs(t, err, queryErr)
		assert.Equal(t, 1, client.calls)
	})

	t.Run("Empty session id rejected without network call", func(t *testing.T) {
		client := &scriptedClient{responses: []*domain.StatusResponse{pending("")}}
		poller := NewPoller(client)

		_, err := poller.PollPaymentStatus(ctx, "", 3, time.Millisecond)
		assert.ErrorIs(t, err, ErrEmptySessionID)
		assert.Equal(t, 0, client.calls)
	})

	t.Run("Non-positive attempts rejected", func(t *testing.T) {
		poller := NewPoller(&scriptedClient{responses: []*domain.StatusResponse{pending("sess_123")}})

		_, err := poller.PollPaymentStatus(ctx, "sess_123", 0, time.Millisecond)
		assert.ErrorIs(t, err, ErrInvalidAttempts)
	})

	t.Run("Cancellation stops the wait between attempts", func(t *testing.T) {
		client := &scriptedClient{responses: []*domain.StatusResponse{pending("sess_123")}}
		poller := NewPoller(client)

		cancelCtx, cancel := context.WithCancel(ctx)
		cancel()

		resp, err := poller.PollPaymentStatus(cancelCtx, "sess_123", 5, time.Hour)
		assert.ErrorIs(t, err, context.Canceled)
		require.NotNil(t, resp)
		assert.Equal(t, domain.PaymentStatusPending, resp.PaymentStatus)
		assert.Equal(t, 1, client.calls)
	})
}
