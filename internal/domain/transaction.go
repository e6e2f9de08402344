package domain

import "time"

type TransactionStatus string

const (
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusFailed    TransactionStatus = "failed"
	TransactionStatusRefunded  TransactionStatus = "refunded"
)

// RentalTransaction is the durable record of a completed or attempted rental
// purchase. The Stripe checkout session id is the correlation key back to the
// payment gateway; the record id is generated locally and is distinct from it.
type RentalTransaction struct {
	ID              string            `json:"id"`
	StripeSessionID string            `json:"stripe_session_id"`
	AmountCents     int64             `json:"amount_cents"`
	Currency        string            `json:"currency"`
	PropertyID      string            `json:"property_id"`
	PropertyTitle   string            `json:"property_title"`
	HostID          string            `json:"host_id"`
	RenterID        string            `json:"renter_id"`
	Description     string            `json:"description"`
	Status          TransactionStatus `json:"status"`
	Metadata        map[string]string `json:"metadata,omitempty"`
	CreatedOn       time.Time         `json:"created_on"`
	UpdatedOn       time.Time         `json:"updated_on"`
}
