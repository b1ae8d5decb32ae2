package entities

import "time"

type ConversationStatus string

const (
	ConversationStatusActive ConversationStatus = "active"
	ConversationStatusClosed ConversationStatus = "closed"
	ConversationStatusHired  ConversationStatus = "hired"
)

// Conversation links one client and one provider around a quote request.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (client_id-index): client_id
//   - GSI2 (provider_id-index): provider_id
//   - GSI3 (quote_request_id-index): quote_request_id
//
// LastMessage/LastMessageAt are denormalized so chat lists render without a
// message query. The per-party read stamps drive the unread badge.

type Conversation struct {
	ID                 string             `json:"id"`
	ClientID           string             `json:"client_id"`
	ProviderID         string             `json:"provider_id"`
	QuoteRequestID     string             `json:"quote_request_id"`
	Status             ConversationStatus `json:"status"`
	LastMessage        string             `json:"last_message,omitempty"`
	LastMessageAt      time.Time          `json:"last_message_at,omitempty"`
	ClientLastReadAt   time.Time          `json:"client_last_read_at,omitempty"`
	ProviderLastReadAt time.Time          `json:"provider_last_read_at,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// Message is immutable once created.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (conversation_id-index): conversation_id

type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}
