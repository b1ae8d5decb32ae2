package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"

	"limpflix/internal/usecase/interfaces"
)

var (
	ErrInvalidCheckoutInput = errors.New("invalid checkout input")
	ErrPaymentIntentFailed  = errors.New("payment intent creation failed")
)

// BuildCheckoutCommand carries everything the hosted checkout needs. The
// metadata fields travel in the success back-URL query string; there is no
// pending-booking row before the processor confirms, so that query string is
// the only durable memory of what the payment was for.
type BuildCheckoutCommand struct {
	PayerEmail  string
	ClientID    string
	ProviderID  string
	QuoteID     string
	ServiceName string
	Amount      float64
}

type ICheckoutUseCase interface {
	BuildCheckout(ctx context.Context, cmd BuildCheckoutCommand) (redirectURL string, err error)
}

// CheckoutUseCase builds the payment intent against the hosted-checkout
// gateway. It moves no money: the platform account receives 100% of gross
// proceeds and the settlement path splits them after confirmation.

type CheckoutUseCase struct {
	providerRepo  interfaces.IProviderRepository
	gateway       interfaces.ICheckoutGateway
	publicBaseURL string
}

var _ ICheckoutUseCase = (*CheckoutUseCase)(nil)

func NewCheckoutUseCase(providerRepo interfaces.IProviderRepository, gateway interfaces.ICheckoutGateway, publicBaseURL string) *CheckoutUseCase {
	return &CheckoutUseCase{
		providerRepo:  providerRepo,
		gateway:       gateway,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

func (u *CheckoutUseCase) BuildCheckout(ctx context.Context, cmd BuildCheckoutCommand) (string, error) {
	cmd.PayerEmail = strings.TrimSpace(cmd.PayerEmail)
	cmd.ProviderID = strings.TrimSpace(cmd.ProviderID)
	cmd.ClientID = strings.TrimSpace(cmd.ClientID)
	if cmd.PayerEmail == "" || cmd.ProviderID == "" || cmd.ClientID == "" {
		return "", ErrInvalidCheckoutInput
	}
	if cmd.Amount <= 0 {
		return "", ErrInvalidCheckoutInput
	}
	if u.gateway == nil {
		return "", errors.New("checkout gateway not configured")
	}

	provider, err := u.providerRepo.GetByID(ctx, cmd.ProviderID)
	if err != nil {
		return "", err
	}
	if provider.ID == "" {
		return "", ErrProviderNotFound
	}

	serviceName := strings.TrimSpace(cmd.ServiceName)
	if serviceName == "" {
		serviceName = "Limpeza/Servico especial"
	}
	name := provider.TradeName
	if name == "" {
		name = provider.ResponsibleName
	}

	// Metadata serialized verbatim into the success redirect target; the
	// confirm endpoint reconstructs the whole settlement context from it.
	meta := url.Values{}
	meta.Set("provider_id", cmd.ProviderID)
	meta.Set("client_id", cmd.ClientID)
	meta.Set("quote_id", cmd.QuoteID)
	meta.Set("amount", strconv.FormatFloat(cmd.Amount, 'f', 2, 64))
	meta.Set("service_name", serviceName)

	pref := interfaces.CheckoutPreference{
		PayerEmail: cmd.PayerEmail,
		Title:      fmt.Sprintf("Servico LimpFlix - %s", name),
		Amount:     cmd.Amount,
		SuccessURL: u.publicBaseURL + "/v1/payments/confirm?" + meta.Encode(),
		PendingURL: u.publicBaseURL + "/pagamento/pendente",
		FailureURL: u.publicBaseURL + "/pagamento/erro",
	}

	log.Printf("[checkout][usecase] build start provider_id=%s client_id=%s amount=%.2f", cmd.ProviderID, cmd.ClientID, cmd.Amount)
	initPoint, err := u.gateway.CreatePreference(ctx, pref)
	if err != nil {
		log.Printf("[checkout][usecase] preference creation failed provider_id=%s err=%v", cmd.ProviderID, err)
		return "", fmt.Errorf("%w: %v", ErrPaymentIntentFailed, err)
	}
	log.Printf("[checkout][usecase] build success provider_id=%s", cmd.ProviderID)
	return initPoint, nil
}
