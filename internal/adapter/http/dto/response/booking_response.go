package response

import (
	"time"

	"limpflix/internal/domain/entities"
)

type BookingResponse struct {
	ID             string     `json:"id"`
	ProviderID     string     `json:"provider_id"`
	ClientID       string     `json:"client_id"`
	QuoteID        string     `json:"quote_id,omitempty"`
	ConversationID string     `json:"conversation_id,omitempty"`
	ServiceName    string     `json:"service_name"`
	TotalAmount    float64    `json:"total_amount"`
	Status         string     `json:"status"`
	PaymentStatus  string     `json:"payment_status"`
	StartedAt      *time.Time `json:"started_at,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	Rating         int        `json:"rating,omitempty"`
	Review         string     `json:"review,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func FromBooking(b entities.Booking) BookingResponse {
	return BookingResponse{
		ID:             b.ID,
		ProviderID:     b.ProviderID,
		ClientID:       b.ClientID,
		QuoteID:        b.QuoteID,
		ConversationID: b.ConversationID,
		ServiceName:    b.ServiceName,
		TotalAmount:    b.TotalAmount,
		Status:         string(b.Status),
		PaymentStatus:  string(b.PaymentStatus),
		StartedAt:      b.StartedAt,
		CompletedAt:    b.CompletedAt,
		Rating:         b.Rating,
		Review:         b.Review,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

func FromBookings(bs []entities.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bs))
	for _, b := range bs {
		out = append(out, FromBooking(b))
	}
	return out
}
