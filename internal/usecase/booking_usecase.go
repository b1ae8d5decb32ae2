package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"limpflix/internal/domain/entities"
	"limpflix/internal/usecase/interfaces"
)

var (
	ErrBookingNotFound          = errors.New("booking not found")
	ErrInvalidBookingID         = errors.New("invalid booking id")
	ErrInvalidBookingTransition = errors.New("invalid booking status transition")
	ErrBookingNotCompleted      = errors.New("booking not completed")
	ErrBookingAlreadyReviewed   = errors.New("booking already reviewed")
	ErrInvalidRating            = errors.New("rating must be between 1 and 5")
	ErrActorNotAllowed          = errors.New("actor not allowed for this transition")
)

type ReviewCommand struct {
	BookingID string
	ClientID  string
	Rating    int
	Review    string
}

// IBookingUseCase drives the booking lifecycle:
//
//	confirmed -> in_progress -> waiting_client_confirmation -> completed
//
// with cancellation allowed from any non-terminal state. Start and
// RequestCompletion are provider actions; ConfirmCompletion is the client's.

type IBookingUseCase interface {
	GetByID(ctx context.Context, id string) (entities.Booking, error)
	ListByProviderID(ctx context.Context, providerID string) ([]entities.Booking, error)
	ListByClientID(ctx context.Context, clientID string) ([]entities.Booking, error)
	Start(ctx context.Context, bookingID, providerID string) (entities.Booking, error)
	RequestCompletion(ctx context.Context, bookingID, providerID string) (entities.Booking, error)
	ConfirmCompletion(ctx context.Context, bookingID, clientID string) (entities.Booking, error)
	Cancel(ctx context.Context, bookingID, actorID string) (entities.Booking, error)
	Review(ctx context.Context, cmd ReviewCommand) (entities.Booking, error)
}

type BookingUseCase struct {
	repo         interfaces.IBookingRepository
	providerRepo interfaces.IProviderRepository
	events       interfaces.IEventPublisher
}

var _ IBookingUseCase = (*BookingUseCase)(nil)

func NewBookingUseCase(repo interfaces.IBookingRepository, providerRepo interfaces.IProviderRepository, events interfaces.IEventPublisher) *BookingUseCase {
	return &BookingUseCase{repo: repo, providerRepo: providerRepo, events: events}
}

func (u *BookingUseCase) GetByID(ctx context.Context, id string) (entities.Booking, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Booking{}, ErrInvalidBookingID
	}
	b, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Booking{}, err
	}
	if b.ID == "" {
		return entities.Booking{}, ErrBookingNotFound
	}
	return b, nil
}

func (u *BookingUseCase) ListByProviderID(ctx context.Context, providerID string) ([]entities.Booking, error) {
	providerID = strings.TrimSpace(providerID)
	if providerID == "" {
		return nil, ErrInvalidBookingID
	}
	return u.repo.ListByProviderID(ctx, providerID)
}

func (u *BookingUseCase) ListByClientID(ctx context.Context, clientID string) ([]entities.Booking, error) {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return nil, ErrInvalidBookingID
	}
	return u.repo.ListByClientID(ctx, clientID)
}

// Start moves a confirmed booking into execution and stamps started_at.
func (u *BookingUseCase) Start(ctx context.Context, bookingID, providerID string) (entities.Booking, error) {
	b, err := u.GetByID(ctx, bookingID)
	if err != nil {
		return entities.Booking{}, err
	}
	if b.ProviderID != providerID {
		return entities.Booking{}, ErrActorNotAllowed
	}
	if !b.Status.CanTransitionTo(entities.BookingStatusInProgress) {
		return entities.Booking{}, transitionError(b.Status, entities.BookingStatusInProgress)
	}

	now := time.Now().UTC()
	updated, err := u.repo.UpdateStatus(ctx, b.ID, entities.BookingStatusInProgress, &now, nil)
	if err != nil {
		return entities.Booking{}, err
	}
	u.publishStatus(updated)
	return updated, nil
}

// RequestCompletion is the provider declaring the work done; the booking
// waits for the client's confirmation and completed_at is stamped now.
func (u *BookingUseCase) RequestCompletion(ctx context.Context, bookingID, providerID string) (entities.Booking, error) {
	b, err := u.GetByID(ctx, bookingID)
	if err != nil {
		return entities.Booking{}, err
	}
	if b.ProviderID != providerID {
		return entities.Booking{}, ErrActorNotAllowed
	}
	if !b.Status.CanTransitionTo(entities.BookingStatusWaitingClient) {
		return entities.Booking{}, transitionError(b.Status, entities.BookingStatusWaitingClient)
	}

	now := time.Now().UTC()
	updated, err := u.repo.UpdateStatus(ctx, b.ID, entities.BookingStatusWaitingClient, nil, &now)
	if err != nil {
		return entities.Booking{}, err
	}
	u.publishStatus(updated)
	return updated, nil
}

// ConfirmCompletion finishes the booking and frees the provider. The
// completed_at stamp is idempotent: it keeps the value RequestCompletion
// already wrote.
func (u *BookingUseCase) ConfirmCompletion(ctx context.Context, bookingID, clientID string) (entities.Booking, error) {
	b, err := u.GetByID(ctx, bookingID)
	if err != nil {
		return entities.Booking{}, err
	}
	if b.ClientID != clientID {
		return entities.Booking{}, ErrActorNotAllowed
	}
	if !b.Status.CanTransitionTo(entities.BookingStatusCompleted) {
		return entities.Booking{}, transitionError(b.Status, entities.BookingStatusCompleted)
	}

	completedAt := b.CompletedAt
	if completedAt == nil {
		now := time.Now().UTC()
		completedAt = &now
	}
	updated, err := u.repo.UpdateStatus(ctx, b.ID, entities.BookingStatusCompleted, nil, completedAt)
	if err != nil {
		return entities.Booking{}, err
	}

	if _, err := u.providerRepo.SetBusy(ctx, b.ProviderID, false); err != nil {
		log.Printf("[booking][usecase] clear busy failed provider_id=%s err=%v", b.ProviderID, err)
	}
	log.Printf("[booking][usecase] completed booking_id=%s provider_id=%s", updated.ID, updated.ProviderID)
	u.publishStatus(updated)
	return updated, nil
}

// Cancel aborts any non-terminal booking and frees the provider.
func (u *BookingUseCase) Cancel(ctx context.Context, bookingID, actorID string) (entities.Booking, error) {
	b, err := u.GetByID(ctx, bookingID)
	if err != nil {
		return entities.Booking{}, err
	}
	if b.ProviderID != actorID && b.ClientID != actorID {
		return entities.Booking{}, ErrActorNotAllowed
	}
	if b.Status.IsTerminal() {
		return entities.Booking{}, transitionError(b.Status, entities.BookingStatusCanceled)
	}

	updated, err := u.repo.UpdateStatus(ctx, b.ID, entities.BookingStatusCanceled, nil, nil)
	if err != nil {
		return entities.Booking{}, err
	}

	if _, err := u.providerRepo.SetBusy(ctx, b.ProviderID, false); err != nil {
		log.Printf("[booking][usecase] clear busy failed provider_id=%s err=%v", b.ProviderID, err)
	}
	log.Printf("[booking][usecase] canceled booking_id=%s by=%s", updated.ID, actorID)
	u.publishStatus(updated)
	return updated, nil
}

// Review records the client's rating on a completed booking and folds it
// into the provider's running average. The aggregate update is a conditional
// write on the previous (rating, total_reviews) pair, retried on contention,
// so concurrent completions cannot lose reviews.
func (u *BookingUseCase) Review(ctx context.Context, cmd ReviewCommand) (entities.Booking, error) {
	if cmd.Rating < 1 || cmd.Rating > 5 {
		return entities.Booking{}, ErrInvalidRating
	}

	b, err := u.GetByID(ctx, cmd.BookingID)
	if err != nil {
		return entities.Booking{}, err
	}
	if b.ClientID != cmd.ClientID {
		return entities.Booking{}, ErrActorNotAllowed
	}
	if b.Status != entities.BookingStatusCompleted {
		return entities.Booking{}, ErrBookingNotCompleted
	}
	if b.Rating != 0 {
		return entities.Booking{}, ErrBookingAlreadyReviewed
	}

	updated, err := u.repo.SetReview(ctx, b.ID, cmd.Rating, strings.TrimSpace(cmd.Review))
	if err != nil {
		return entities.Booking{}, err
	}
	if updated.ID == "" {
		// Another request reviewed the booking between our read and write.
		return entities.Booking{}, ErrBookingAlreadyReviewed
	}

	const maxAttempts = 5
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		provider, err := u.providerRepo.GetByID(ctx, b.ProviderID)
		if err != nil {
			return entities.Booking{}, err
		}
		if provider.ID == "" {
			return entities.Booking{}, ErrProviderNotFound
		}

		newRating := (provider.Rating*float64(provider.TotalReviews) + float64(cmd.Rating)) / float64(provider.TotalReviews+1)
		applied, err := u.providerRepo.ApplyReview(ctx, provider.ID, provider.Rating, provider.TotalReviews, newRating)
		if err != nil {
			return entities.Booking{}, err
		}
		if applied.ID != "" {
			log.Printf("[booking][usecase] review applied booking_id=%s provider_id=%s rating=%d new_avg=%.4f", b.ID, provider.ID, cmd.Rating, newRating)
			return updated, nil
		}
		// Condition lost against a concurrent review; re-read and retry.
		log.Printf("[booking][usecase] review aggregate conflict provider_id=%s attempt=%d", provider.ID, attempt)
	}
	return entities.Booking{}, fmt.Errorf("provider rating update kept conflicting for booking %s", b.ID)
}

func (u *BookingUseCase) publishStatus(b entities.Booking) {
	u.events.Publish(b.ProviderID, interfaces.Event{Type: interfaces.EventTypeBookingStatus, Payload: b})
	u.events.Publish(b.ClientID, interfaces.Event{Type: interfaces.EventTypeBookingStatus, Payload: b})
}

func transitionError(from, to entities.BookingStatus) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidBookingTransition, from, to)
}
