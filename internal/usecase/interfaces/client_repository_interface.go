package interfaces

import (
	"context"
	"limpflix/internal/domain/entities"
)

// IClientRepository abstracts DynamoDB persistence for ClientProfile.

type IClientRepository interface {
	Create(ctx context.Context, c entities.ClientProfile) (entities.ClientProfile, error)
	GetByID(ctx context.Context, id string) (entities.ClientProfile, error)
}
