package interfaces

import (
	"context"
	"time"

	"limpflix/internal/domain/entities"
)

// IBookingRepository abstracts DynamoDB persistence for Booking.
//
// GetActiveByProviderAndClient is the settlement idempotency probe: it
// returns the booking holding the provider's is_busy flag for that client
// pair, or a zero Booking when none exists.

type IBookingRepository interface {
	Create(ctx context.Context, b entities.Booking) (entities.Booking, error)
	GetByID(ctx context.Context, id string) (entities.Booking, error)
	GetActiveByProviderAndClient(ctx context.Context, providerID, clientID string) (entities.Booking, error)
	ListByProviderID(ctx context.Context, providerID string) ([]entities.Booking, error)
	ListByClientID(ctx context.Context, clientID string) ([]entities.Booking, error)
	UpdateStatus(ctx context.Context, id string, status entities.BookingStatus, startedAt, completedAt *time.Time) (entities.Booking, error)
	SetReview(ctx context.Context, id string, rating int, review string) (entities.Booking, error)
}
