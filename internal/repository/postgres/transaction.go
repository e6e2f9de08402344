package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"rentloop-payments-backend/internal/domain"
	"rentloop-payments-backend/internal/repository"
)

type transactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

const transactionColumns = `id, stripe_session_id, amount_cents, currency, property_id, property_title, host_id, renter_id, description, status, metadata, created_on, updated_on`

func (r *transactionRepository) Create(ctx context.Context, tx *domain.RentalTransaction) error {
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	tx.CreatedOn = now
	tx.UpdatedOn = now

	metadata, err := json.Marshal(tx.Metadata)
	if err != nil {
		return fmt.Errorf("failed to encode transaction metadata: %w", err)
	}

	query := `INSERT INTO rental_transactions (` + transactionColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err = r.db.ExecContext(ctx, query,
		tx.ID, tx.StripeSessionID, tx.AmountCents, tx.Currency, tx.PropertyID, tx.PropertyTitle,
		tx.HostID, tx.RenterID, tx.Description, tx.Status, metadata, tx.CreatedOn, tx.UpdatedOn)
	return err
}

func (r *transactionRepository) GetByID(ctx context.Context, id string) (*domain.RentalTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM rental_transactions WHERE id = $1`
	return scanTransaction(r.db.QueryRowContext(ctx, query, id))
}

func (r *transactionRepository) GetByStripeSession(ctx context.Context, sessionID string) (*domain.RentalTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM rental_transactions WHERE stripe_session_id = $1 LIMIT 1`
	tx, err := scanTransaction(r.db.QueryRowContext(ctx, query, sessionID))
	if err == sql.ErrNoRows {
		// Absence is the reconciliation path's create signal, not an error.
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return tx, nil
}

func (r *transactionRepository) UpdateStatus(ctx context.Context, id string, status domain.TransactionStatus, extra map[string]interface{}) error {
	if len(extra) > 0 {
		extraJSON, err := json.Marshal(extra)
		if err != nil {
			return fmt.Errorf("failed to encode extra fields: %w", err)
		}
		query := `UPDATE rental_transactions SET status=$1, metadata = COALESCE(metadata, '{}'::jsonb) || $2::jsonb, updated_on=$3 WHERE id=$4`
		_, err = r.db.ExecContext(ctx, query, status, extraJSON, time.Now().UTC(), id)
		return err
	}

	query := `UPDATE rental_transactions SET status=$1, updated_on=$2 WHERE id=$3`
	_, err := r.db.ExecContext(ctx, query, status, time.Now().UTC(), id)
	return err
}

func (r *transactionRepository) ListByStatus(ctx context.Context, status domain.TransactionStatus, limit int) ([]domain.RentalTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM rental_transactions WHERE status = $1 ORDER BY created_on ASC LIMIT $2`
	return r.list(ctx, query, status, limit)
}

func (r *transactionRepository) ListByRenter(ctx context.Context, renterID string, limit int) ([]domain.RentalTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM rental_transactions WHERE renter_id = $1 ORDER BY created_on DESC LIMIT $2`
	return r.list(ctx, query, renterID, limit)
}

func (r *transactionRepository) list(ctx context.Context, query string, args ...interface{}) ([]domain.RentalTransaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []domain.RentalTransaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, *tx)
	}
	return txs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTransaction(row rowScanner) (*domain.RentalTransaction, error) {
	tx := &domain.RentalTransaction{}
	var metadata []byte
	err := row.Scan(&tx.ID, &tx.StripeSessionID, &tx.AmountCents, &tx.Currency, &tx.PropertyID,
		&tx.PropertyTitle, &tx.HostID, &tx.RenterID, &tx.Description, &tx.Status, &metadata,
		&tx.CreatedOn, &tx.UpdatedOn)
	if err != nil {
		return nil, err
	}
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &tx.Metadata); err != nil {
			return nil, fmt.Errorf("failed to decode transaction metadata: %w", err)
		}
	}
	return tx, nil
}
