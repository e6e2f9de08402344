package docstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("docstore: document not found")

// Document is one stored record with its collection-unique id.
type Document struct {
	ID   string
	Data map[string]interface{}
}

// Store is a keyed-document store with exact-match field queries. It covers
// the subset of the vendor database the payment flow depends on, so the
// repositories stay portable across backends.
type Store interface {
	// Get returns the document data, or ErrNotFound.
	Get(ctx context.Context, collection, id string) (map[string]interface{}, error)

	// Set writes the full document, overwriting any existing data.
	Set(ctx context.Context, collection, id string, data map[string]interface{}) error

	// Merge writes only the given fields, preserving the rest of the document.
	// Merging into a missing document creates it.
	Merge(ctx context.Context, collection, id string, fields map[string]interface{}) error

	// QueryByField returns up to limit documents whose field equals value.
	// A limit of 0 means no limit. Result order is backend-defined.
	QueryByField(ctx context.Context, collection, field string, value interface{}, limit int) ([]Document, error)

	// Close releases the underlying client.
	Close() error
}
