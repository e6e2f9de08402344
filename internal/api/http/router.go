package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"

	"rentloop-payments-backend/internal/api/http/middleware"
	"rentloop-payments-backend/internal/security"
)

// NewRouter wires the payment and transaction endpoints. All /v1 routes
// require a bearer token; the reconcile endpoint additionally honors
// Idempotency-Key when a Redis client is supplied.
func NewRouter(
	payments *PaymentHandler,
	transactions *TransactionHandler,
	tokens security.TokenManager,
	redisClient *redis.Client,
) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := router.PathPrefix("/v1").Subrouter()
	api.Use(middleware.Auth(tokens))
	if redisClient != nil {
		api.Use(middleware.Idempotency(redisClient))
	}

	api.HandleFunc("/payments/{sessionID}/status", payments.Status).Methods(http.MethodGet)
	api.HandleFunc("/payments/{sessionID}/reconcile", payments.Reconcile).Methods(http.MethodPost)

	api.HandleFunc("/transactions", transactions.Create).Methods(http.MethodPost)
	api.HandleFunc("/transactions", transactions.ListMine).Methods(http.MethodGet)
	api.HandleFunc("/transactions/session/{sessionID}", transactions.GetBySession).Methods(http.MethodGet)
	api.HandleFunc("/transactions/{id}/status", transactions.UpdateStatus).Methods(http.MethodPatch)

	return router
}
