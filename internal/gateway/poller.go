package gateway

import (
	"context"
	"errors"
	"time"

	"rentloop-payments-backend/internal/domain"
	"rentloop-payments-backend/internal/logger"
)

var (
	ErrEmptySessionID  = errors.New("gateway: session id must not be empty")
	ErrInvalidAttempts = errors.New("gateway: max attempts must be positive")
)

// Poller repeatedly queries the gateway status endpoint until a terminal
// state is observed or the attempt budget runs out.
type Poller struct {
	client StatusClient
}

func NewPoller(client StatusClient) *Poller {
	return &Poller{client: client}
}

// PollPaymentStatus issues one status query per interval. It stops as soon as
// the gateway reports succeeded or failed and returns that response. When the
// attempt budget is exhausted the last observed response is returned with a
// nil error even though its status is still pending; the caller treats that
// as an unresolved timeout, not a failure. A query error aborts the loop and
// propagates, since a transport error and a gateway decline must surface as
// different outcomes. Cancelling the context stops the wait between attempts.
func (p *Poller) PollPaymentStatus(ctx context.Context, sessionID string, maxAttempts int, interval time.Duration) (*domain.StatusResponse, error) {
	if sessionID == "" {
		return nil, ErrEmptySessionID
	}
	if maxAttempts <= 0 {
		return nil, ErrInvalidAttempts
	}

	var last *domain.StatusResponse
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		resp, err := p.client.FetchStatus(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		last = resp

		if resp.PaymentStatus.Terminal() {
			logger.Debug("Payment status resolved",
				"session_id", sessionID, "status", resp.PaymentStatus, "attempt", attempt)
			return resp, nil
		}
		if attempt == maxAttempts {
			break
		}

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return last, ctx.Err()
		case <-timer.C:
		}
	}

	logger.Warn("Payment status still pending after attempt budget",
		"session_id", sessionID, "attempts", maxAttempts)
	return last, nil
}
