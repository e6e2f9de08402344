package service

import (
	"context"
	"strings"

	"rentloop-payments-backend/internal/domain"
	"rentloop-payments-backend/internal/logger"
)

// Literal markers the gateway appends to its return URLs. Best-effort only;
// most browser closures carry neither.
const (
	successURLMarker = "mobile-payment-success"
	failedURLMarker  = "mobile-payment-failed"
)

// CheckoutHandoff launches the hosted checkout page and, once the browser
// context closes, resolves the checkout outcome. How the browser closed is
// treated as uninformative: user cancel, redirect and back-button all look
// the same, so the poller supplies ground truth.
type CheckoutHandoff struct {
	launcher BrowserLauncher
	checkout CheckoutService
}

func NewCheckoutHandoff(launcher BrowserLauncher, checkout CheckoutService) *CheckoutHandoff {
	return &CheckoutHandoff{launcher: launcher, checkout: checkout}
}

// Complete opens checkoutURL, waits for the browser context to be dismissed
// and hands the original session id to the resolver. The closing URL is
// inspected for the literal outcome markers: a failure marker short-circuits
// polling, while a success marker (or no marker at all) still runs the
// resolver, because only the gateway confirms the charge and the transaction
// record must be reconciled either way.
func (h *CheckoutHandoff) Complete(ctx context.Context, checkoutURL string, payload domain.OutcomePayload, renterEmail string) domain.Outcome {
	closingURL, err := h.launcher.OpenCheckout(ctx, checkoutURL)
	if err != nil {
		logger.Warn("Checkout browser closed without a result URL",
			"session_id", payload.SessionID, "error", err)
	}

	if strings.Contains(closingURL, failedURLMarker) {
		logger.Info("Checkout return URL carries failure marker",
			"session_id", payload.SessionID)
		return domain.Outcome{
			Destination: domain.DestinationFailed,
			Failure:     domain.FailureDeclined,
			Payload:     withError(payload, msgDeclined),
		}
	}
	if strings.Contains(closingURL, successURLMarker) {
		logger.Debug("Checkout return URL carries success marker",
			"session_id", payload.SessionID)
	}

	return h.checkout.ResolveOutcome(ctx, payload, renterEmail)
}

func withError(payload domain.OutcomePayload, message string) domain.OutcomePayload {
	payload.ErrorMessage = message
	return payload
}
