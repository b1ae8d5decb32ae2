package interfaces

import (
	"context"
	"limpflix/internal/domain/entities"
)

// IQuoteRepository abstracts DynamoDB persistence for quote requests and
// the priced offers made inside conversations.

type IQuoteRepository interface {
	CreateRequest(ctx context.Context, q entities.QuoteRequest) (entities.QuoteRequest, error)
	GetRequestByID(ctx context.Context, id string) (entities.QuoteRequest, error)
	CreateOffer(ctx context.Context, o entities.QuoteOffer) (entities.QuoteOffer, error)
	GetOfferByID(ctx context.Context, id string) (entities.QuoteOffer, error)
	ListOffersByConversationID(ctx context.Context, conversationID string) ([]entities.QuoteOffer, error)
}
