package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"limpflix/internal/domain/entities"
	"limpflix/internal/usecase/interfaces"
)

var (
	ErrPaymentNotApproved       = errors.New("payment not approved")
	ErrInvalidConfirmationInput = errors.New("invalid payment confirmation input")
)

// Split percentages over gross proceeds. The platform share is whatever is
// left after the provider and referral transfers.
var (
	providerShareRate = decimal.NewFromFloat(0.94)
	referralShareRate = decimal.NewFromFloat(0.01)
)

// SettlementSplit is the 94/5/1 division of one payment.
type SettlementSplit struct {
	ProviderShare float64
	ReferralShare float64
	PlatformShare float64
}

// ComputeSplit divides totalAmount into provider (94%), referral (1%) and
// platform (5%, implicit remainder) shares, rounded to centavos.
func ComputeSplit(totalAmount float64) SettlementSplit {
	total := decimal.NewFromFloat(totalAmount)
	provider := total.Mul(providerShareRate).Round(2)
	referral := total.Mul(referralShareRate).Round(2)
	platform := total.Sub(provider).Sub(referral)

	providerF, _ := provider.Float64()
	referralF, _ := referral.Float64()
	platformF, _ := platform.Float64()
	return SettlementSplit{ProviderShare: providerF, ReferralShare: referralF, PlatformShare: platformF}
}

// PaymentConfirmation is the settlement context reconstructed from the
// success-redirect query string. Nothing else survives checkout.
type PaymentConfirmation struct {
	Status      string
	ProviderID  string
	ClientID    string
	QuoteID     string
	ServiceName string
	Amount      float64
}

type ISettlementUseCase interface {
	ConfirmPayment(ctx context.Context, conf PaymentConfirmation) (entities.Booking, error)
}

// SettlementUseCase turns an approved-payment redirect into a confirmed
// booking and dispatches the payout split. The triggering redirect can fire
// more than once (browser back/refresh), so the whole operation is guarded
// by the existing-active-booking probe and payout idempotency keys.

type SettlementUseCase struct {
	providerRepo interfaces.IProviderRepository
	clientRepo   interfaces.IClientRepository
	bookingRepo  interfaces.IBookingRepository
	convRepo     interfaces.IConversationRepository
	txRepo       interfaces.ITransactionRepository
	payouts      interfaces.IPayoutGateway
	events       interfaces.IEventPublisher

	payoutAttempts int
	payoutBackoff  time.Duration
}

var _ ISettlementUseCase = (*SettlementUseCase)(nil)

func NewSettlementUseCase(
	providerRepo interfaces.IProviderRepository,
	clientRepo interfaces.IClientRepository,
	bookingRepo interfaces.IBookingRepository,
	convRepo interfaces.IConversationRepository,
	txRepo interfaces.ITransactionRepository,
	payouts interfaces.IPayoutGateway,
	events interfaces.IEventPublisher,
) *SettlementUseCase {
	return &SettlementUseCase{
		providerRepo:   providerRepo,
		clientRepo:     clientRepo,
		bookingRepo:    bookingRepo,
		convRepo:       convRepo,
		txRepo:         txRepo,
		payouts:        payouts,
		events:         events,
		payoutAttempts: 3,
		payoutBackoff:  500 * time.Millisecond,
	}
}

func (u *SettlementUseCase) ConfirmPayment(ctx context.Context, conf PaymentConfirmation) (entities.Booking, error) {
	conf.ProviderID = strings.TrimSpace(conf.ProviderID)
	conf.ClientID = strings.TrimSpace(conf.ClientID)
	if conf.ProviderID == "" || conf.ClientID == "" || conf.Amount <= 0 {
		return entities.Booking{}, ErrInvalidConfirmationInput
	}
	if !strings.EqualFold(strings.TrimSpace(conf.Status), "approved") {
		return entities.Booking{}, ErrPaymentNotApproved
	}

	// Idempotency: a duplicate redirect for the same provider+client pair
	// finds the booking the first pass created and stops here.
	existing, err := u.bookingRepo.GetActiveByProviderAndClient(ctx, conf.ProviderID, conf.ClientID)
	if err != nil {
		return entities.Booking{}, err
	}
	if existing.ID != "" {
		log.Printf("[settlement][usecase] duplicate confirmation booking_id=%s provider_id=%s", existing.ID, conf.ProviderID)
		return existing, nil
	}

	provider, err := u.providerRepo.GetByID(ctx, conf.ProviderID)
	if err != nil {
		return entities.Booking{}, err
	}
	if provider.ID == "" {
		return entities.Booking{}, ErrProviderNotFound
	}

	serviceName := strings.TrimSpace(conf.ServiceName)
	if serviceName == "" {
		serviceName = "Limpeza/Servico especial"
	}

	now := time.Now().UTC()
	booking := entities.Booking{
		ID:            uuid.NewString(),
		ProviderID:    conf.ProviderID,
		ClientID:      conf.ClientID,
		QuoteID:       conf.QuoteID,
		ServiceName:   serviceName,
		TotalAmount:   conf.Amount,
		Status:        entities.BookingStatusConfirmed,
		PaymentStatus: entities.PaymentStatusApproved,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	booking, err = u.bookingRepo.Create(ctx, booking)
	if err != nil {
		return entities.Booking{}, err
	}
	log.Printf("[settlement][usecase] booking created booking_id=%s provider_id=%s client_id=%s amount=%.2f", booking.ID, booking.ProviderID, booking.ClientID, booking.TotalAmount)

	if _, err := u.providerRepo.SetBusy(ctx, provider.ID, true); err != nil {
		log.Printf("[settlement][usecase] set busy failed provider_id=%s err=%v", provider.ID, err)
	}

	u.recordTransaction(ctx, entities.Transaction{
		ProviderID:  provider.ID,
		BookingID:   booking.ID,
		Type:        entities.TransactionTypeIncoming,
		Status:      entities.TransactionStatusCompleted,
		Amount:      conf.Amount,
		Description: fmt.Sprintf("Pagamento aprovado - %s", serviceName),
	})

	u.markConversations(ctx, booking)
	u.dispatchSplit(ctx, booking, provider)

	u.events.Publish(booking.ProviderID, interfaces.Event{Type: interfaces.EventTypeBookingStatus, Payload: booking})
	u.events.Publish(booking.ClientID, interfaces.Event{Type: interfaces.EventTypeBookingStatus, Payload: booking})

	return booking, nil
}

// markConversations flags the winning conversation as hired and closes the
// sibling conversations opened for the same quote request.
func (u *SettlementUseCase) markConversations(ctx context.Context, booking entities.Booking) {
	if booking.QuoteID == "" {
		return
	}
	conversations, err := u.convRepo.ListByQuoteRequestID(ctx, booking.QuoteID)
	if err != nil {
		log.Printf("[settlement][usecase] listing conversations failed quote_id=%s err=%v", booking.QuoteID, err)
		return
	}
	for _, c := range conversations {
		status := entities.ConversationStatusClosed
		if c.ProviderID == booking.ProviderID {
			status = entities.ConversationStatusHired
		}
		if _, err := u.convRepo.SetStatus(ctx, c.ID, status); err != nil {
			log.Printf("[settlement][usecase] conversation status update failed conversation_id=%s err=%v", c.ID, err)
		}
	}
}

// dispatchSplit pays the provider and the resolved referrer independently.
// A failure on one leg never rolls back the other, and never unwinds the
// booking: funds stay visible as pending ledger rows for manual follow-up.
func (u *SettlementUseCase) dispatchSplit(ctx context.Context, booking entities.Booking, provider entities.Provider) {
	split := ComputeSplit(booking.TotalAmount)

	// The retained share is recorded explicitly so platform revenue is
	// auditable per settlement rather than implied.
	u.recordTransaction(ctx, entities.Transaction{
		BookingID:   booking.ID,
		Type:        entities.TransactionTypeIncoming,
		Status:      entities.TransactionStatusCompleted,
		Amount:      split.PlatformShare,
		Description: fmt.Sprintf("Receita da plataforma - reserva %s", booking.ID),
	})

	u.dispatchProviderShare(ctx, booking, provider, split.ProviderShare)

	referrer := u.resolveReferrer(ctx, booking, provider)
	if referrer.ID == "" {
		log.Printf("[settlement][usecase] no referral payout booking_id=%s", booking.ID)
		return
	}
	u.dispatchReferralShare(ctx, booking, referrer, split.ReferralShare)
}

func (u *SettlementUseCase) dispatchProviderShare(ctx context.Context, booking entities.Booking, provider entities.Provider, amount float64) {
	if provider.PixKey == "" {
		// Never drop funds silently: credit the pending balance and leave a
		// pending ledger row for the manual-intervention queue.
		log.Printf("[settlement][usecase] provider has no pix key, crediting pending balance provider_id=%s amount=%.2f", provider.ID, amount)
		if _, err := u.providerRepo.CreditPendingBalance(ctx, provider.ID, amount); err != nil {
			log.Printf("[settlement][usecase] pending balance credit failed provider_id=%s err=%v", provider.ID, err)
		}
		u.recordTransaction(ctx, entities.Transaction{
			ProviderID:  provider.ID,
			BookingID:   booking.ID,
			Type:        entities.TransactionTypeOutgoing,
			Status:      entities.TransactionStatusPending,
			Amount:      amount,
			Description: "Repasse retido - chave PIX nao cadastrada",
		})
		return
	}

	err := u.sendWithRetry(ctx, interfaces.PixPayout{
		ReceiverKey:    provider.PixKey,
		Amount:         amount,
		Description:    fmt.Sprintf("Repasse LimpFlix - reserva %s", booking.ID),
		IdempotencyKey: payoutIdempotencyKey(booking.ID, "provider"),
	})
	status := entities.TransactionStatusCompleted
	description := "Repasse do prestador via PIX"
	if err != nil {
		log.Printf("[settlement][usecase] provider payout failed booking_id=%s provider_id=%s err=%v", booking.ID, provider.ID, err)
		status = entities.TransactionStatusPending
		description = "Repasse do prestador pendente - falha no envio PIX"
		if _, cErr := u.providerRepo.CreditPendingBalance(ctx, provider.ID, amount); cErr != nil {
			log.Printf("[settlement][usecase] pending balance credit failed provider_id=%s err=%v", provider.ID, cErr)
		}
	}
	u.recordTransaction(ctx, entities.Transaction{
		ProviderID:  provider.ID,
		BookingID:   booking.ID,
		Type:        entities.TransactionTypeOutgoing,
		Status:      status,
		Amount:      amount,
		Description: description,
	})
}

func (u *SettlementUseCase) dispatchReferralShare(ctx context.Context, booking entities.Booking, referrer entities.Provider, amount float64) {
	if referrer.PixKey == "" {
		log.Printf("[settlement][usecase] referrer has no pix key, crediting pending balance referrer_id=%s amount=%.2f", referrer.ID, amount)
		if _, err := u.providerRepo.CreditPendingBalance(ctx, referrer.ID, amount); err != nil {
			log.Printf("[settlement][usecase] pending balance credit failed referrer_id=%s err=%v", referrer.ID, err)
		}
		u.recordTransaction(ctx, entities.Transaction{
			ProviderID:  referrer.ID,
			BookingID:   booking.ID,
			Type:        entities.TransactionTypeOutgoing,
			Status:      entities.TransactionStatusPending,
			Amount:      amount,
			Description: "Comissao de indicacao retida - chave PIX nao cadastrada",
		})
		return
	}

	err := u.sendWithRetry(ctx, interfaces.PixPayout{
		ReceiverKey:    referrer.PixKey,
		Amount:         amount,
		Description:    fmt.Sprintf("Comissao de indicacao LimpFlix - reserva %s", booking.ID),
		IdempotencyKey: payoutIdempotencyKey(booking.ID, "referral"),
	})
	status := entities.TransactionStatusCompleted
	description := "Comissao de indicacao via PIX"
	if err != nil {
		log.Printf("[settlement][usecase] referral payout failed booking_id=%s referrer_id=%s err=%v", booking.ID, referrer.ID, err)
		status = entities.TransactionStatusPending
		description = "Comissao de indicacao pendente - falha no envio PIX"
	}
	u.recordTransaction(ctx, entities.Transaction{
		ProviderID:  referrer.ID,
		BookingID:   booking.ID,
		Type:        entities.TransactionTypeOutgoing,
		Status:      status,
		Amount:      amount,
		Description: description,
	})
}

// resolveReferrer picks the referral recipient: the client's referrer wins
// over the provider's own, and a provider never earns commission on their
// own service.
func (u *SettlementUseCase) resolveReferrer(ctx context.Context, booking entities.Booking, provider entities.Provider) entities.Provider {
	referrerID := ""

	client, err := u.clientRepo.GetByID(ctx, booking.ClientID)
	if err != nil {
		log.Printf("[settlement][usecase] client lookup failed client_id=%s err=%v", booking.ClientID, err)
	} else if client.ReferredByProviderID != "" {
		referrerID = client.ReferredByProviderID
	}

	if referrerID == "" {
		referrerID = provider.ReferrerID
	}
	if referrerID == "" || referrerID == provider.ID {
		return entities.Provider{}
	}

	referrer, err := u.providerRepo.GetByID(ctx, referrerID)
	if err != nil {
		log.Printf("[settlement][usecase] referrer lookup failed referrer_id=%s err=%v", referrerID, err)
		return entities.Provider{}
	}
	return referrer
}

func (u *SettlementUseCase) sendWithRetry(ctx context.Context, p interfaces.PixPayout) error {
	var err error
	backoff := u.payoutBackoff
	for attempt := 1; attempt <= u.payoutAttempts; attempt++ {
		if err = u.payouts.SendPix(ctx, p); err == nil {
			return nil
		}
		log.Printf("[settlement][usecase] payout attempt failed attempt=%d idempotency_key=%s err=%v", attempt, p.IdempotencyKey, err)
		if attempt < u.payoutAttempts {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}
	}
	return err
}

func (u *SettlementUseCase) recordTransaction(ctx context.Context, t entities.Transaction) {
	t.ID = uuid.NewString()
	t.CreatedAt = time.Now().UTC()
	if _, err := u.txRepo.Create(ctx, t); err != nil {
		log.Printf("[settlement][usecase] ledger write failed type=%s amount=%.2f err=%v", t.Type, t.Amount, err)
	}
}

func payoutIdempotencyKey(bookingID, role string) string {
	return fmt.Sprintf("payout-%s-%s", bookingID, role)
}
