package docstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"rentloop-payments-backend/internal/docstore"
	"rentloop-payments-backend/internal/domain"
	"rentloop-payments-backend/internal/repository"
)

const transactionsCollection = "rental_transactions"

type transactionRepository struct {
	store docstore.Store
}

func NewTransactionRepository(store docstore.Store) repository.TransactionRepository {
	return &transactionRepository{store: store}
}

func (r *transactionRepository) Create(ctx context.Context, tx *domain.RentalTransaction) error {
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	tx.CreatedOn = now
	tx.UpdatedOn = now

	if err := r.store.Set(ctx, transactionsCollection, tx.ID, transactionToDoc(tx)); err != nil {
		return fmt.Errorf("failed to create rental transaction: %w", err)
	}
	return nil
}

func (r *transactionRepository) GetByID(ctx context.Context, id string) (*domain.RentalTransaction, error) {
	data, err := r.store.Get(ctx, transactionsCollection, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, fmt.Errorf("rental transaction %s not found", id)
		}
		return nil, err
	}
	return transactionFromDoc(id, data), nil
}

func (r *transactionRepository) GetByStripeSession(ctx context.Context, sessionID string) (*domain.RentalTransaction, error) {
	docs, err := r.store.QueryByField(ctx, transactionsCollection, "stripeSessionId", sessionID, 1)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return transactionFromDoc(docs[0].ID, docs[0].Data), nil
}

func (r *transactionRepository) UpdateStatus(ctx context.Context, id string, status domain.TransactionStatus, extra map[string]interface{}) error {
	fields := map[string]interface{}{
		"status":    string(status),
		"updatedAt": time.Now().UTC(),
	}
	for k, v := range extra {
		fields[k] = v
	}
	if err := r.store.Merge(ctx, transactionsCollection, id, fields); err != nil {
		return fmt.Errorf("failed to update transaction status: %w", err)
	}
	return nil
}

func (r *transactionRepository) ListByStatus(ctx context.Context, status domain.TransactionStatus, limit int) ([]domain.RentalTransaction, error) {
	docs, err := r.store.QueryByField(ctx, transactionsCollection, "status", string(status), limit)
	if err != nil {
		return nil, err
	}
	return transactionsFromDocs(docs), nil
}

func (r *transactionRepository) ListByRenter(ctx context.Context, renterID string, limit int) ([]domain.RentalTransaction, error) {
	docs, err := r.store.QueryByField(ctx, transactionsCollection, "renterId", renterID, limit)
	if err != nil {
		return nil, err
	}
	return transactionsFromDocs(docs), nil
}

func transactionsFromDocs(docs []docstore.Document) []domain.RentalTransaction {
	var txs []domain.RentalTransaction
	for _, doc := range docs {
		txs = append(txs, *transactionFromDoc(doc.ID, doc.Data))
	}
	return txs
}

func transactionToDoc(tx *domain.RentalTransaction) map[string]interface{} {
	metadata := make(map[string]interface{}, len(tx.Metadata))
	for k, v := range tx.Metadata {
		metadata[k] = v
	}
	return map[string]interface{}{
		"stripeSessionId": tx.StripeSessionID,
		"amount":          tx.AmountCents,
		"currency":        tx.Currency,
		"propertyId":      tx.PropertyID,
		"propertyTitle":   tx.PropertyTitle,
		"hostId":          tx.HostID,
		"renterId":        tx.RenterID,
		"description":     tx.Description,
		"status":          string(tx.Status),
		"metadata":        metadata,
		"createdAt":       tx.CreatedOn,
		"updatedAt":       tx.UpdatedOn,
	}
}

func transactionFromDoc(id string, data map[string]interface{}) *domain.RentalTransaction {
	tx := &domain.RentalTransaction{
		ID:              id,
		StripeSessionID: stringField(data, "stripeSessionId"),
		AmountCents:     intField(data, "amount"),
		Currency:        stringField(data, "currency"),
		PropertyID:      stringField(data, "propertyId"),
		PropertyTitle:   stringField(data, "propertyTitle"),
		HostID:          stringField(data, "hostId"),
		RenterID:        stringField(data, "renterId"),
		Description:     stringField(data, "description"),
		Status:          domain.TransactionStatus(stringField(data, "status")),
		CreatedOn:       timeField(data, "createdAt"),
		UpdatedOn:       timeField(data, "updatedAt"),
	}
	if raw, ok := data["metadata"].(map[string]interface{}); ok {
		tx.Metadata = make(map[string]string, len(raw))
		for k, v := range raw {
			if s, ok := v.(string); ok {
				tx.Metadata[k] = s
			}
		}
	}
	return tx
}

func stringField(data map[string]interface{}, key string) string {
	if s, ok := data[key].(string); ok {
		return s
	}
	return ""
}

// intField tolerates the numeric types different backends hand back.
func intField(data map[string]interface{}, key string) int64 {
	switch v := data[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	default:
		return 0
	}
}

func timeField(data map[string]interface{}, key string) time.Time {
	if t, ok := data[key].(time.Time); ok {
		return t
	}
	return time.Time{}
}
