package domain

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusSucceeded PaymentStatus = "succeeded"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// Terminal reports whether the status ends polling.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentStatusSucceeded || s == PaymentStatusFailed
}

// NormalizePaymentStatus maps a raw gateway status string onto the statuses the
// poller understands. Anything that is not an explicit terminal value keeps
// the poll loop running.
func NormalizePaymentStatus(raw string) PaymentStatus {
	switch raw {
	case string(PaymentStatusSucceeded):
		return PaymentStatusSucceeded
	case string(PaymentStatusFailed):
		return PaymentStatusFailed
	default:
		return PaymentStatusPending
	}
}

// StatusResponse is one observation from the gateway status endpoint. All
// fields other than PaymentStatus and SessionID are echo-only and may be
// zero-valued when the gateway does not return them.
type StatusResponse struct {
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	SessionID     string        `json:"sessionId"`
	AmountCents   int64         `json:"amount"`
	Currency      string        `json:"currency"`
	PropertyTitle string        `json:"propertyTitle"`
	PropertyID    string        `json:"propertyId"`
}

// Destination names one of the two terminal screens the mobile client routes to.
type Destination string

const (
	DestinationSuccess Destination = "success"
	DestinationFailed  Destination = "failed"
)

// FailureKind distinguishes why a checkout resolved as failed. A decline and
// an ambiguous timeout both land on the failed destination but must render
// different messages.
type FailureKind string

const (
	FailureNone           FailureKind = ""
	FailureInvalidSession FailureKind = "invalid_session"
	FailureDeclined       FailureKind = "declined"
	FailureTimeout        FailureKind = "timeout"
	FailureProcessing     FailureKind = "processing"
)

// OutcomePayload is threaded from checkout initiation through polling to the
// outcome screen, so the destination can render without re-querying. The
// caller-supplied values act as fallbacks when the gateway does not echo them.
type OutcomePayload struct {
	SessionID     string `json:"sessionId"`
	PropertyTitle string `json:"propertyTitle"`
	AmountCents   int64  `json:"amount"`
	Currency      string `json:"currency"`
	PropertyID    string `json:"propertyId"`
	RenterID      string `json:"renterId,omitempty"`
	ErrorMessage  string `json:"errorMessage,omitempty"`
}

// Merge overlays gateway-echoed fields over the caller-supplied payload.
// Zero-valued echo fields keep the fallback.
func (p OutcomePayload) Merge(resp *StatusResponse) OutcomePayload {
	merged := p
	if resp == nil {
		return merged
	}
	if resp.SessionID != "" {
		merged.SessionID = resp.SessionID
	}
	if resp.PropertyTitle != "" {
		merged.PropertyTitle = resp.PropertyTitle
	}
	if resp.AmountCents != 0 {
		merged.AmountCents = resp.AmountCents
	}
	if resp.Currency != "" {
		merged.Currency = resp.Currency
	}
	if resp.PropertyID != "" {
		merged.PropertyID = resp.PropertyID
	}
	return merged
}

// Outcome is the resolver's terminal result.
type Outcome struct {
	Destination Destination    `json:"destination"`
	Failure     FailureKind    `json:"failure,omitempty"`
	Payload     OutcomePayload `json:"payload"`
}
