package payments

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"limpflix/internal/usecase/interfaces"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrCheckoutGatewayNotConfigured = errors.New("mercado pago checkout gateway not configured")

const statementDescriptor = "LimpFlix Servicos"

// MercadoPagoCheckoutGateway creates Checkout Pro preferences through the
// official SDK. The platform account receives 100% of gross proceeds at
// checkout; the split happens later via the payout dispatcher.

type MercadoPagoCheckoutGateway struct {
	client   preference.Client
	mockMode bool
}

var _ interfaces.ICheckoutGateway = (*MercadoPagoCheckoutGateway)(nil)

func NewMercadoPagoCheckoutGateway(accessToken string) (*MercadoPagoCheckoutGateway, error) {
	if isPaymentGatewayMockEnabled() {
		log.Printf("[checkout][gateway] mock mode enabled")
		return &MercadoPagoCheckoutGateway{mockMode: true}, nil
	}

	if accessToken == "" {
		log.Printf("[checkout][gateway] missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		log.Printf("[checkout][gateway] failed creating sdk config err=%v", err)
		return nil, err
	}
	log.Printf("[checkout][gateway] Mercado Pago preference client initialized")

	return &MercadoPagoCheckoutGateway{client: preference.NewClient(cfg)}, nil
}

func (g *MercadoPagoCheckoutGateway) CreatePreference(ctx context.Context, pref interfaces.CheckoutPreference) (string, error) {
	if g != nil && g.mockMode {
		// Mock init_point echoes the success URL so redirect-driven flows
		// can be exercised end to end without a live account.
		log.Printf("[checkout][gateway] mock create title=%q amount=%.2f", pref.Title, pref.Amount)
		return pref.SuccessURL + "&status=approved", nil
	}

	if g == nil || g.client == nil {
		log.Printf("[checkout][gateway] gateway not configured")
		return "", ErrCheckoutGatewayNotConfigured
	}
	log.Printf("[checkout][gateway] create start title=%q amount=%.2f payer=%s", pref.Title, pref.Amount, pref.PayerEmail)

	req := preference.Request{
		Items: []preference.ItemRequest{
			{
				Title:      pref.Title,
				Quantity:   1,
				UnitPrice:  pref.Amount,
				CurrencyID: "BRL",
			},
		},
		Payer: &preference.PayerRequest{Email: pref.PayerEmail},
		BackURLs: &preference.BackURLsRequest{
			Success: pref.SuccessURL,
			Pending: pref.PendingURL,
			Failure: pref.FailureURL,
		},
		AutoReturn: "approved",
		PaymentMethods: &preference.PaymentMethodsRequest{
			// Boleto is excluded on purpose; pix and card only.
			ExcludedPaymentTypes: []preference.ExcludedPaymentTypeRequest{{ID: "ticket"}},
			Installments:         12,
		},
		StatementDescriptor: statementDescriptor,
	}

	resp, err := g.client.Create(ctx, req)
	if err != nil {
		log.Printf("[checkout][gateway] sdk create failed err=%v", err)
		return "", err
	}
	if resp == nil || resp.InitPoint == "" {
		log.Printf("[checkout][gateway] create returned no init_point")
		return "", fmt.Errorf("preference response missing init_point")
	}
	log.Printf("[checkout][gateway] create success preference_id=%s", resp.ID)

	return resp.InitPoint, nil
}

func isPaymentGatewayMockEnabled() bool {
	for _, key := range []string{"PAYMENT_GATEWAY_MOCK", "MERCADOPAGO_MOCK"} {
		v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
		switch v {
		case "1", "true", "yes", "on", "mock":
			return true
		}
	}
	return false
}
