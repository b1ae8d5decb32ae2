package entities

import "time"

type BookingStatus string

const (
	BookingStatusConfirmed     BookingStatus = "confirmed"
	BookingStatusInProgress    BookingStatus = "in_progress"
	BookingStatusWaitingClient BookingStatus = "waiting_client_confirmation"
	BookingStatusCompleted     BookingStatus = "completed"
	BookingStatusCanceled      BookingStatus = "canceled"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusApproved PaymentStatus = "approved"
)

// bookingTransitions encodes the lifecycle. Cancellation is allowed from
// every non-terminal state.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusConfirmed:     {BookingStatusInProgress, BookingStatusCanceled},
	BookingStatusInProgress:    {BookingStatusWaitingClient, BookingStatusCanceled},
	BookingStatusWaitingClient: {BookingStatusCompleted, BookingStatusCanceled},
}

func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCanceled
}

// IsActive reports whether the booking holds the provider's is_busy flag.
func (s BookingStatus) IsActive() bool {
	switch s {
	case BookingStatusConfirmed, BookingStatusInProgress, BookingStatusWaitingClient:
		return true
	}
	return false
}

// Booking is a hired, paid engagement between one client and one provider.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (provider_id-index): provider_id
//   - GSI2 (client_id-index): client_id
//
// At most one booking per provider may be in an active status at a time; the
// settlement path enforces this before creating a new row.

type Booking struct {
	ID             string        `json:"id"`
	ProviderID     string        `json:"provider_id"`
	ClientID       string        `json:"client_id"`
	QuoteID        string        `json:"quote_id,omitempty"`
	ConversationID string        `json:"conversation_id,omitempty"`
	ServiceName    string        `json:"service_name"`
	TotalAmount    float64       `json:"total_amount"`
	Status         BookingStatus `json:"status"`
	PaymentStatus  PaymentStatus `json:"payment_status"`
	StartedAt      *time.Time    `json:"started_at,omitempty"`
	CompletedAt    *time.Time    `json:"completed_at,omitempty"`
	Rating         int           `json:"rating,omitempty"`
	Review         string        `json:"review,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}
