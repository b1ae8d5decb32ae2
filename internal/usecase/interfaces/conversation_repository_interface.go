package interfaces

import (
	"context"
	"time"

	"limpflix/internal/domain/entities"
)

// IConversationRepository abstracts DynamoDB persistence for conversations
// and their messages. Messages are append-only.

type IConversationRepository interface {
	Create(ctx context.Context, c entities.Conversation) (entities.Conversation, error)
	GetByID(ctx context.Context, id string) (entities.Conversation, error)
	ListByClientID(ctx context.Context, clientID string) ([]entities.Conversation, error)
	ListByProviderID(ctx context.Context, providerID string) ([]entities.Conversation, error)
	ListByQuoteRequestID(ctx context.Context, quoteRequestID string) ([]entities.Conversation, error)
	SetStatus(ctx context.Context, id string, status entities.ConversationStatus) (entities.Conversation, error)
	SetLastMessage(ctx context.Context, id, lastMessage string, at time.Time) error
	MarkRead(ctx context.Context, id, readerID string, at time.Time) error

	CreateMessage(ctx context.Context, m entities.Message) (entities.Message, error)
	ListMessagesByConversationID(ctx context.Context, conversationID string) ([]entities.Message, error)
}
