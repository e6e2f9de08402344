package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"rentloop-payments-backend/internal/api/http/middleware"
	"rentloop-payments-backend/internal/domain"
	"rentloop-payments-backend/internal/gateway"
	"rentloop-payments-backend/internal/service"
)

// PaymentHandler exposes the checkout reconciliation flow to the mobile
// collaborators.
type PaymentHandler struct {
	checkout     service.CheckoutService
	statusClient gateway.StatusClient
}

func NewPaymentHandler(checkout service.CheckoutService, statusClient gateway.StatusClient) *PaymentHandler {
	return &PaymentHandler{checkout: checkout, statusClient: statusClient}
}

type reconcileRequest struct {
	PropertyTitle string `json:"propertyTitle"`
	AmountCents   int64  `json:"amount"`
	Currency      string `json:"currency"`
	PropertyID    string `json:"propertyId"`
	RenterEmail   string `json:"renterEmail"`
}

// Reconcile runs the outcome resolver for one checkout session. The caller
// supplies the payload it carried into checkout; those values act as
// fallbacks when the gateway does not echo them back.
func (h *PaymentHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionID"]

	var req reconcileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	payload := domain.OutcomePayload{
		SessionID:     sessionID,
		PropertyTitle: req.PropertyTitle,
		AmountCents:   req.AmountCents,
		Currency:      req.Currency,
		PropertyID:    req.PropertyID,
	}
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		payload.RenterID = claims.UserID
	}

	outcome := h.checkout.ResolveOutcome(r.Context(), payload, req.RenterEmail)
	writeJSON(w, http.StatusOK, outcome)
}

// Status performs a single status query without polling, for screens that
// want a fast peek at a session.
func (h *PaymentHandler) Status(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionID"]
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "session id is required")
		return
	}

	resp, err := h.statusClient.FetchStatus(r.Context(), sessionID)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
