package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"rentloop-payments-backend/internal/domain"
	"rentloop-payments-backend/internal/logger"
)

// StatusClient queries the hosted payment gateway for the outcome of one
// checkout session. The status is never cached; every call observes fresh.
type StatusClient interface {
	FetchStatus(ctx context.Context, sessionID string) (*domain.StatusResponse, error)
}

type httpStatusClient struct {
	statusURL  string
	httpClient *http.Client
}

// NewHTTPStatusClient creates a StatusClient against the gateway's
// payment-status endpoint.
func NewHTTPStatusClient(statusURL string, timeout time.Duration) StatusClient {
	return &httpStatusClient{
		statusURL:  statusURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// statusWire is the raw endpoint response. paymentStatus arrives as a free
// string and is normalized before anyone looks at it.
type statusWire struct {
	PaymentStatus string `json:"paymentStatus"`
	SessionID     string `json:"sessionId"`
	AmountCents   int64  `json:"amount"`
	Currency      string `json:"currency"`
	PropertyTitle string `json:"propertyTitle"`
	PropertyID    string `json:"propertyId"`
}

func (c *httpStatusClient) FetchStatus(ctx context.Context, sessionID string) (*domain.StatusResponse, error) {
	endpoint := fmt.Sprintf("%s?session_id=%s", c.statusURL, url.QueryEscape(sessionID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build status request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	logger.ExternalServiceCall("payment-gateway", "FetchStatus", "session_id", sessionID)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.ExternalServiceResult("payment-gateway", "FetchStatus", err, "session_id", sessionID)
		return nil, fmt.Errorf("payment status request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("payment status endpoint returned %d", resp.StatusCode)
		logger.ExternalServiceResult("payment-gateway", "FetchStatus", err, "session_id", sessionID)
		return nil, err
	}

	var wire statusWire
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		logger.ExternalServiceResult("payment-gateway", "FetchStatus", err, "session_id", sessionID)
		return nil, fmt.Errorf("failed to decode payment status response: %w", err)
	}
	logger.ExternalServiceResult("payment-gateway", "FetchStatus", nil,
		"session_id", sessionID, "payment_status", wire.PaymentStatus)

	return &domain.StatusResponse{
		PaymentStatus: domain.NormalizePaymentStatus(wire.PaymentStatus),
		SessionID:     wire.SessionID,
		AmountCents:   wire.AmountCents,
		Currency:      wire.Currency,
		PropertyTitle: wire.PropertyTitle,
		PropertyID:    wire.PropertyID,
	}, nil
}
