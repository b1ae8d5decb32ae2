package entities

import "time"

type TransactionType string

const (
	TransactionTypeIncoming TransactionType = "incoming"
	TransactionTypeOutgoing TransactionType = "outgoing"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
)

// Transaction is an append-only ledger row. Rows are never mutated after
// creation; corrections are new rows. A pending outgoing row marks a payout
// that could not be dispatched and needs manual intervention.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (provider_id-index): provider_id
//
// ProviderID is empty on platform-revenue rows.

type Transaction struct {
	ID          string            `json:"id"`
	ProviderID  string            `json:"provider_id,omitempty"`
	BookingID   string            `json:"booking_id,omitempty"`
	Type        TransactionType   `json:"type"`
	Status      TransactionStatus `json:"status"`
	Amount      float64           `json:"amount"`
	Description string            `json:"description"`
	CreatedAt   time.Time         `json:"created_at"`
}
