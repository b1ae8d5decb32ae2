package response

import (
	"time"

	"limpflix/internal/domain/entities"
	"limpflix/internal/usecase"
)

type ConversationResponse struct {
	ID                 string     `json:"id"`
	ClientID           string     `json:"client_id"`
	ProviderID         string     `json:"provider_id"`
	QuoteRequestID     string     `json:"quote_request_id"`
	Status             string     `json:"status"`
	LastMessage        string     `json:"last_message,omitempty"`
	LastMessageAt      *time.Time `json:"last_message_at,omitempty"`
	UnreadCount        int        `json:"unread_count"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func FromConversation(c entities.Conversation) ConversationResponse {
	resp := ConversationResponse{
		ID:             c.ID,
		ClientID:       c.ClientID,
		ProviderID:     c.ProviderID,
		QuoteRequestID: c.QuoteRequestID,
		Status:         string(c.Status),
		LastMessage:    c.LastMessage,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
	if !c.LastMessageAt.IsZero() {
		at := c.LastMessageAt
		resp.LastMessageAt = &at
	}
	return resp
}

func FromConversationSummaries(summaries []usecase.ConversationSummary) []ConversationResponse {
	out := make([]ConversationResponse, 0, len(summaries))
	for _, s := range summaries {
		resp := FromConversation(s.Conversation)
		resp.UnreadCount = s.UnreadCount
		out = append(out, resp)
	}
	return out
}

type MessageResponse struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

func FromMessage(m entities.Message) MessageResponse {
	return MessageResponse{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Content:        m.Content,
		CreatedAt:      m.CreatedAt,
	}
}

func FromMessages(msgs []entities.Message) []MessageResponse {
	out := make([]MessageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, FromMessage(m))
	}
	return out
}

type QuoteRequestResponse struct {
	ID            string                 `json:"id"`
	ClientID      string                 `json:"client_id"`
	ServiceName   string                 `json:"service_name"`
	Description   string                 `json:"description"`
	MediaURLs     []string               `json:"media_urls,omitempty"`
	Latitude      *float64               `json:"latitude,omitempty"`
	Longitude     *float64               `json:"longitude,omitempty"`
	Address       string                 `json:"address,omitempty"`
	Status        string                 `json:"status"`
	Conversations []ConversationResponse `json:"conversations"`
	CreatedAt     time.Time              `json:"created_at"`
}

func FromQuoteRequest(q entities.QuoteRequest, conversations []entities.Conversation) QuoteRequestResponse {
	convs := make([]ConversationResponse, 0, len(conversations))
	for _, c := range conversations {
		convs = append(convs, FromConversation(c))
	}
	return QuoteRequestResponse{
		ID:            q.ID,
		ClientID:      q.ClientID,
		ServiceName:   q.ServiceName,
		Description:   q.Description,
		MediaURLs:     q.MediaURLs,
		Latitude:      q.Latitude,
		Longitude:     q.Longitude,
		Address:       q.Address,
		Status:        string(q.Status),
		Conversations: convs,
		CreatedAt:     q.CreatedAt,
	}
}

type QuoteOfferResponse struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	ProviderID     string    `json:"provider_id"`
	Amount         float64   `json:"amount"`
	Description    string    `json:"description,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func FromQuoteOffer(o entities.QuoteOffer) QuoteOfferResponse {
	return QuoteOfferResponse{
		ID:             o.ID,
		ConversationID: o.ConversationID,
		ProviderID:     o.ProviderID,
		Amount:         o.Amount,
		Description:    o.Description,
		CreatedAt:      o.CreatedAt,
	}
}
