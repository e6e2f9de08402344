package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"rentloop-payments-backend/internal/api/http/middleware"
	"rentloop-payments-backend/internal/domain"
	"rentloop-payments-backend/internal/service"
)

// TransactionHandler exposes the durable rental-transaction records to the
// bookings screens.
type TransactionHandler struct {
	checkout service.CheckoutService
}

func NewTransactionHandler(checkout service.CheckoutService) *TransactionHandler {
	return &TransactionHandler{checkout: checkout}
}

type createTransactionRequest struct {
	StripeSessionID string            `json:"stripeSessionId"`
	AmountCents     int64             `json:"amount"`
	Currency        string            `json:"currency"`
	PropertyID      string            `json:"propertyId"`
	PropertyTitle   string            `json:"propertyTitle"`
	Description     string            `json:"description"`
	Metadata        map[string]string `json:"metadata,omitempty"`
}

// Create records a rental transaction, resolving the property host first.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.PropertyID == "" {
		writeError(w, http.StatusBadRequest, "property id is required")
		return
	}

	params := service.CreateTransactionParams{
		StripeSessionID: req.StripeSessionID,
		AmountCents:     req.AmountCents,
		Currency:        req.Currency,
		PropertyID:      req.PropertyID,
		PropertyTitle:   req.PropertyTitle,
		Description:     req.Description,
		Metadata:        req.Metadata,
	}
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		params.RenterID = claims.UserID
	}

	id, err := h.checkout.CreateRentalTransactionWithHostLookup(r.Context(), params)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// GetBySession looks up the transaction recorded for a checkout session.
// A session with no record is a 404, not a server error.
func (h *TransactionHandler) GetBySession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionID"]

	tx, err := h.checkout.GetTransactionByStripeSession(r.Context(), sessionID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if tx == nil {
		writeError(w, http.StatusNotFound, "no transaction for session")
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

// ListMine returns the authenticated renter's transactions.
func (h *TransactionHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	txs, err := h.checkout.ListRenterTransactions(r.Context(), claims.UserID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if txs == nil {
		txs = []domain.RentalTransaction{}
	}
	writeJSON(w, http.StatusOK, txs)
}

type updateStatusRequest struct {
	Status string                 `json:"status"`
	Extra  map[string]interface{} `json:"extra,omitempty"`
}

// UpdateStatus overwrites a transaction's status field.
func (h *TransactionHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	status := domain.TransactionStatus(req.Status)
	switch status {
	case domain.TransactionStatusCompleted, domain.TransactionStatusPending,
		domain.TransactionStatusFailed, domain.TransactionStatusRefunded:
	default:
		writeError(w, http.StatusBadRequest, "unknown transaction status")
		return
	}

	if err := h.checkout.UpdateTransactionStatus(r.Context(), id, status, req.Extra); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
