package entities

import "time"

type QuoteRequestStatus string

const (
	QuoteRequestStatusOpen   QuoteRequestStatus = "open"
	QuoteRequestStatusClosed QuoteRequestStatus = "closed"
)

// QuoteRequest captures what the client asked for before any price exists.
// The request location is used once, to pick the nearest providers.
//
// Storage model (DynamoDB):
//   - PK: id

type QuoteRequest struct {
	ID          string             `json:"id"`
	ClientID    string             `json:"client_id"`
	ServiceName string             `json:"service_name"`
	Description string             `json:"description"`
	MediaURLs   []string           `json:"media_urls,omitempty"`
	Latitude    *float64           `json:"latitude,omitempty"`
	Longitude   *float64           `json:"longitude,omitempty"`
	Address     string             `json:"address,omitempty"`
	Status      QuoteRequestStatus `json:"status"`
	CreatedAt   time.Time          `json:"created_at"`
}

// QuoteOffer is the priced proposal a provider sends inside a conversation.
// The chat also carries a formatted message so the offer reads inline; the
// offer row is what checkout references.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (conversation_id-index): conversation_id

type QuoteOffer struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	ProviderID     string    `json:"provider_id"`
	Amount         float64   `json:"amount"`
	Description    string    `json:"description,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
