package interfaces

import (
	"context"
	"limpflix/internal/domain/entities"
)

// ITransactionRepository abstracts the append-only financial ledger.
// There is deliberately no update operation.

type ITransactionRepository interface {
	Create(ctx context.Context, t entities.Transaction) (entities.Transaction, error)
	ListByProviderID(ctx context.Context, providerID string) ([]entities.Transaction, error)
}
