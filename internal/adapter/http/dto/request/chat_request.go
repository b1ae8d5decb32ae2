package request

import (
	"strings"

	"limpflix/internal/usecase"
)

type CreateQuoteRequest struct {
	ClientID    string   `json:"client_id" binding:"required"`
	ServiceName string   `json:"service_name" binding:"required"`
	Description string   `json:"description" binding:"required"`
	MediaURLs   []string `json:"media_urls"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Address     string   `json:"address"`
}

func (r CreateQuoteRequest) ToCommand() usecase.CreateQuoteRequestCommand {
	return usecase.CreateQuoteRequestCommand{
		ClientID:    strings.TrimSpace(r.ClientID),
		ServiceName: strings.TrimSpace(r.ServiceName),
		Description: strings.TrimSpace(r.Description),
		MediaURLs:   r.MediaURLs,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		Address:     strings.TrimSpace(r.Address),
	}
}

type SendMessageRequest struct {
	SenderID string `json:"sender_id" binding:"required"`
	Content  string `json:"content" binding:"required"`
}

type SendQuoteOfferRequest struct {
	ProviderID  string  `json:"provider_id" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Description string  `json:"description"`
}

func (r SendQuoteOfferRequest) ToCommand(conversationID string) usecase.SendQuoteOfferCommand {
	return usecase.SendQuoteOfferCommand{
		ConversationID: conversationID,
		ProviderID:     strings.TrimSpace(r.ProviderID),
		Amount:         r.Amount,
		Description:    strings.TrimSpace(r.Description),
	}
}

type MarkReadRequest struct {
	ReaderID string `json:"reader_id" binding:"required"`
}
