package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"limpflix/internal/domain/entities"
	"limpflix/internal/domain/geo"
	"limpflix/internal/usecase/interfaces"
)

var (
	ErrProviderNotFound       = errors.New("provider not found")
	ErrClientNotFound         = errors.New("client not found")
	ErrInvalidProviderInput   = errors.New("invalid provider input")
	ErrInvalidReferralCode    = errors.New("invalid referral code")
	ErrMissingPixKey          = errors.New("provider has no pix key registered")
	ErrBalanceBelowMinimum    = errors.New("wallet balance below withdrawal minimum")
	ErrWalletBalanceConflict  = errors.New("wallet balance changed concurrently")
	ErrPayoutDispatchRejected = errors.New("payout dispatch rejected")
)

// MinWithdrawalAmount is the smallest wallet balance a provider may cash
// out, in BRL.
const MinWithdrawalAmount = 20.00

type RegisterProviderCommand struct {
	UserID          string
	ResponsibleName string
	TradeName       string
	Email           string
	Phone           string
	City            string
	State           string
	Latitude        *float64
	Longitude       *float64
	ServicesOffered []string
	PixKey          string
	ReferralCode    string
}

type RegisterClientCommand struct {
	Name         string
	Email        string
	Phone        string
	ReferralCode string
}

type SearchProvidersQuery struct {
	ClientID  string
	OriginLat *float64
	OriginLon *float64
}

// IProviderUseCase exposes provider account operations: registration with
// referral attribution, discovery, settings, and wallet withdrawal.

type IProviderUseCase interface {
	Register(ctx context.Context, cmd RegisterProviderCommand) (entities.Provider, error)
	RegisterClient(ctx context.Context, cmd RegisterClientCommand) (entities.ClientProfile, error)
	GetByID(ctx context.Context, id string) (entities.Provider, error)
	Search(ctx context.Context, q SearchProvidersQuery) ([]geo.ProviderDistance, error)
	UpdateSettings(ctx context.Context, id string, s entities.ProviderSettings) (entities.Provider, error)
	Withdraw(ctx context.Context, providerID string) (entities.Transaction, error)
	ListTransactions(ctx context.Context, providerID string) ([]entities.Transaction, error)
}

type ProviderUseCase struct {
	repo       interfaces.IProviderRepository
	clientRepo interfaces.IClientRepository
	txRepo     interfaces.ITransactionRepository
	payouts    interfaces.IPayoutGateway
}

var _ IProviderUseCase = (*ProviderUseCase)(nil)

func NewProviderUseCase(
	repo interfaces.IProviderRepository,
	clientRepo interfaces.IClientRepository,
	txRepo interfaces.ITransactionRepository,
	payouts interfaces.IPayoutGateway,
) *ProviderUseCase {
	return &ProviderUseCase{repo: repo, clientRepo: clientRepo, txRepo: txRepo, payouts: payouts}
}

func (u *ProviderUseCase) Register(ctx context.Context, cmd RegisterProviderCommand) (entities.Provider, error) {
	cmd.ResponsibleName = strings.TrimSpace(cmd.ResponsibleName)
	cmd.Email = strings.TrimSpace(cmd.Email)
	if cmd.ResponsibleName == "" || cmd.Email == "" || strings.TrimSpace(cmd.City) == "" || strings.TrimSpace(cmd.State) == "" {
		return entities.Provider{}, ErrInvalidProviderInput
	}

	referrerID := ""
	if code := strings.ToUpper(strings.TrimSpace(cmd.ReferralCode)); code != "" {
		referrer, err := u.repo.GetByReferralCode(ctx, code)
		if err != nil {
			return entities.Provider{}, err
		}
		// An unknown code does not block registration; the referral is
		// simply not attributed.
		referrerID = referrer.ID
	}

	now := time.Now().UTC()
	p := entities.Provider{
		ID:              uuid.NewString(),
		UserID:          cmd.UserID,
		ResponsibleName: cmd.ResponsibleName,
		TradeName:       strings.TrimSpace(cmd.TradeName),
		Email:           cmd.Email,
		Phone:           strings.TrimSpace(cmd.Phone),
		City:            strings.TrimSpace(cmd.City),
		State:           strings.ToUpper(strings.TrimSpace(cmd.State)),
		Latitude:        cmd.Latitude,
		Longitude:       cmd.Longitude,
		ServicesOffered: cmd.ServicesOffered,
		Status:          entities.ProviderStatusApproved,
		PixKey:          strings.TrimSpace(cmd.PixKey),
		ReferralCode:    generateReferralCode(cmd.TradeName, cmd.ResponsibleName),
		ReferrerID:      referrerID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	created, err := u.repo.Create(ctx, p)
	if err != nil {
		return entities.Provider{}, err
	}

	if referrerID != "" {
		if err := u.repo.IncrementReferrals(ctx, referrerID); err != nil {
			log.Printf("[provider][usecase] increment referrals failed referrer_id=%s err=%v", referrerID, err)
		}
	}
	log.Printf("[provider][usecase] registered provider_id=%s referral_code=%s referrer_id=%s", created.ID, created.ReferralCode, referrerID)
	return created, nil
}

func (u *ProviderUseCase) RegisterClient(ctx context.Context, cmd RegisterClientCommand) (entities.ClientProfile, error) {
	cmd.Name = strings.TrimSpace(cmd.Name)
	cmd.Email = strings.TrimSpace(cmd.Email)
	if cmd.Name == "" || cmd.Email == "" {
		return entities.ClientProfile{}, ErrInvalidProviderInput
	}

	referredBy := ""
	if code := strings.ToUpper(strings.TrimSpace(cmd.ReferralCode)); code != "" {
		referrer, err := u.repo.GetByReferralCode(ctx, code)
		if err != nil {
			return entities.ClientProfile{}, err
		}
		referredBy = referrer.ID
	}

	c := entities.ClientProfile{
		ID:                   uuid.NewString(),
		Name:                 cmd.Name,
		Email:                cmd.Email,
		Phone:                strings.TrimSpace(cmd.Phone),
		ReferredByProviderID: referredBy,
		CreatedAt:            time.Now().UTC(),
	}
	return u.clientRepo.Create(ctx, c)
}

func (u *ProviderUseCase) GetByID(ctx context.Context, id string) (entities.Provider, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Provider{}, ErrInvalidProviderInput
	}
	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Provider{}, err
	}
	if p.ID == "" {
		return entities.Provider{}, ErrProviderNotFound
	}
	return p, nil
}

// Search lists approved providers, proximity-ranked when the caller shared a
// location. A client referred by a provider only ever sees that provider.
func (u *ProviderUseCase) Search(ctx context.Context, q SearchProvidersQuery) ([]geo.ProviderDistance, error) {
	if clientID := strings.TrimSpace(q.ClientID); clientID != "" {
		client, err := u.clientRepo.GetByID(ctx, clientID)
		if err != nil {
			return nil, err
		}
		if client.ID != "" && client.ReferredByProviderID != "" {
			referrer, err := u.repo.GetByID(ctx, client.ReferredByProviderID)
			if err != nil {
				return nil, err
			}
			if referrer.ID == "" || referrer.Status != entities.ProviderStatusApproved {
				return []geo.ProviderDistance{}, nil
			}
			return geo.SortByProximity([]entities.Provider{referrer}, q.OriginLat, q.OriginLon), nil
		}
	}

	providers, err := u.repo.ListByStatus(ctx, entities.ProviderStatusApproved)
	if err != nil {
		return nil, err
	}
	return geo.SortByProximity(providers, q.OriginLat, q.OriginLon), nil
}

func (u *ProviderUseCase) UpdateSettings(ctx context.Context, id string, s entities.ProviderSettings) (entities.Provider, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Provider{}, ErrInvalidProviderInput
	}
	updated, err := u.repo.UpdateSettings(ctx, id, s)
	if err != nil {
		return entities.Provider{}, err
	}
	if updated.ID == "" {
		return entities.Provider{}, ErrProviderNotFound
	}
	return updated, nil
}

// Withdraw cashes the full wallet balance out to the provider's pix key.
// The balance reset is a conditional write on the expected amount, so a
// concurrent settlement credit fails the withdrawal rather than vanishing.
func (u *ProviderUseCase) Withdraw(ctx context.Context, providerID string) (entities.Transaction, error) {
	p, err := u.GetByID(ctx, providerID)
	if err != nil {
		return entities.Transaction{}, err
	}
	if p.PixKey == "" {
		return entities.Transaction{}, ErrMissingPixKey
	}
	if p.WalletBalance < MinWithdrawalAmount {
		return entities.Transaction{}, ErrBalanceBelowMinimum
	}

	amount := p.WalletBalance
	txID := uuid.NewString()
	name := p.TradeName
	if name == "" {
		name = p.ResponsibleName
	}

	log.Printf("[provider][usecase] withdraw start provider_id=%s amount=%.2f", p.ID, amount)
	err = u.payouts.SendPix(ctx, interfaces.PixPayout{
		ReceiverKey:    p.PixKey,
		Amount:         amount,
		Description:    fmt.Sprintf("Saque LimpFlix - %s", name),
		IdempotencyKey: fmt.Sprintf("payout-withdraw-%s", txID),
	})
	if err != nil {
		log.Printf("[provider][usecase] withdraw dispatch failed provider_id=%s err=%v", p.ID, err)
		if _, recErr := u.txRepo.Create(ctx, entities.Transaction{
			ID:          txID,
			ProviderID:  p.ID,
			Type:        entities.TransactionTypeOutgoing,
			Status:      entities.TransactionStatusFailed,
			Amount:      amount,
			Description: "Saque via PIX recusado pelo processador",
			CreatedAt:   time.Now().UTC(),
		}); recErr != nil {
			log.Printf("[provider][usecase] failed recording rejected withdrawal provider_id=%s err=%v", p.ID, recErr)
		}
		return entities.Transaction{}, fmt.Errorf("%w: %v", ErrPayoutDispatchRejected, err)
	}

	updated, err := u.repo.UpdateWalletBalance(ctx, p.ID, amount, 0)
	if err != nil {
		return entities.Transaction{}, err
	}
	if updated.ID == "" {
		// The payout already went out; the conditional reset losing means a
		// settlement credited in between. Surface it for manual review.
		log.Printf("[provider][usecase] withdraw balance reset lost race provider_id=%s", p.ID)
		return entities.Transaction{}, ErrWalletBalanceConflict
	}

	tx, err := u.txRepo.Create(ctx, entities.Transaction{
		ID:          txID,
		ProviderID:  p.ID,
		Type:        entities.TransactionTypeOutgoing,
		Status:      entities.TransactionStatusCompleted,
		Amount:      amount,
		Description: "Saque realizado via PIX",
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return entities.Transaction{}, err
	}
	log.Printf("[provider][usecase] withdraw success provider_id=%s amount=%.2f tx_id=%s", p.ID, amount, tx.ID)
	return tx, nil
}

func (u *ProviderUseCase) ListTransactions(ctx context.Context, providerID string) ([]entities.Transaction, error) {
	providerID = strings.TrimSpace(providerID)
	if providerID == "" {
		return nil, ErrInvalidProviderInput
	}
	return u.txRepo.ListByProviderID(ctx, providerID)
}

const referralCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func generateReferralCode(tradeName, responsibleName string) string {
	prefix := strings.ToUpper(strings.ReplaceAll(tradeName, " ", ""))
	if prefix == "" {
		prefix = strings.ToUpper(strings.ReplaceAll(responsibleName, " ", ""))
	}
	if prefix == "" {
		prefix = "LP"
	}
	if len(prefix) > 4 {
		prefix = prefix[:4]
	}

	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		// Extremely unlikely; fall back to uuid material.
		return prefix + strings.ToUpper(uuid.NewString()[:4])
	}
	for i, b := range buf {
		buf[i] = referralCodeAlphabet[int(b)%len(referralCodeAlphabet)]
	}
	return prefix + string(buf)
}
