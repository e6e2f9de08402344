package postgres

import (
	"database/sql"

	"rentloop-payments-backend/internal/repository"
)

// Store bundles the Postgres-backed repositories.
type Store struct {
	TransactionRepository repository.TransactionRepository
	PropertyRepository    repository.PropertyRepository
}

// NewStore creates repositories sharing one database handle.
func NewStore(db *sql.DB) *Store {
	return &Store{
		TransactionRepository: NewTransactionRepository(db),
		PropertyRepository:    NewPropertyRepository(db),
	}
}
