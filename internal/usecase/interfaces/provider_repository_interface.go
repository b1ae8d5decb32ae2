package interfaces

import (
	"context"
	"limpflix/internal/domain/entities"
)

// IProviderRepository abstracts DynamoDB persistence for Provider.
//
// ApplyReview and UpdateWalletBalance are conditional writes: they only
// succeed when the stored aggregate still matches the expected values, so
// concurrent reviews or withdrawals cannot lose updates. On a failed
// condition they return a zero Provider and no error; callers re-read and
// retry.

type IProviderRepository interface {
	Create(ctx context.Context, p entities.Provider) (entities.Provider, error)
	GetByID(ctx context.Context, id string) (entities.Provider, error)
	GetByReferralCode(ctx context.Context, code string) (entities.Provider, error)
	ListByStatus(ctx context.Context, status entities.ProviderStatus) ([]entities.Provider, error)
	UpdateSettings(ctx context.Context, id string, s entities.ProviderSettings) (entities.Provider, error)
	SetBusy(ctx context.Context, id string, busy bool) (entities.Provider, error)
	IncrementReferrals(ctx context.Context, id string) error
	ApplyReview(ctx context.Context, id string, expectedRating float64, expectedReviews int, newRating float64) (entities.Provider, error)
	UpdateWalletBalance(ctx context.Context, id string, expected, newBalance float64) (entities.Provider, error)
	CreditPendingBalance(ctx context.Context, id string, amount float64) (entities.Provider, error)
}
