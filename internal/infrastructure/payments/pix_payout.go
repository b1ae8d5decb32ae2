package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"limpflix/internal/usecase/interfaces"
)

const defaultPayoutsURL = "https://api.mercadopago.com/v1/payouts"

// PixPayoutGateway dispatches pix transfers against the Mercado Pago payouts
// endpoint. The Go SDK does not cover payouts, so this is a direct REST
// client. The caller-supplied idempotency key is forwarded verbatim in the
// X-Idempotency-Key header; the account needs mass-payments permission and
// available balance.

type PixPayoutGateway struct {
	accessToken string
	baseURL     string
	httpClient  *http.Client
	mockMode    bool
}

var _ interfaces.IPayoutGateway = (*PixPayoutGateway)(nil)

func NewPixPayoutGateway(accessToken string) *PixPayoutGateway {
	g := &PixPayoutGateway{
		accessToken: accessToken,
		baseURL:     defaultPayoutsURL,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
	}
	if isPaymentGatewayMockEnabled() {
		log.Printf("[payout][gateway] mock mode enabled")
		g.mockMode = true
	}
	return g
}

// WithBaseURL points the gateway at a different payouts endpoint. Used by
// tests with httptest servers.
func (g *PixPayoutGateway) WithBaseURL(url string) *PixPayoutGateway {
	g.baseURL = url
	return g
}

type payoutRequest struct {
	Amount          float64     `json:"amount"`
	Description     string      `json:"description"`
	PaymentMethodID string      `json:"payment_method_id"`
	Payer           payoutPayer `json:"payer"`
}

type payoutPayer struct {
	BankTransfer payoutBankTransfer `json:"bank_transfer"`
}

type payoutBankTransfer struct {
	Pix payoutPix `json:"pix"`
}

type payoutPix struct {
	ReceiverKey string `json:"receiver_key"`
}

func (g *PixPayoutGateway) SendPix(ctx context.Context, p interfaces.PixPayout) error {
	if g.mockMode {
		log.Printf("[payout][gateway] mock send amount=%.2f key=%s idempotency_key=%s", p.Amount, p.ReceiverKey, p.IdempotencyKey)
		return nil
	}

	description := p.Description
	if description == "" {
		description = "Repasse LimpFlix"
	}

	body, err := json.Marshal(payoutRequest{
		Amount:          p.Amount,
		Description:     description,
		PaymentMethodID: "pix",
		Payer: payoutPayer{
			BankTransfer: payoutBankTransfer{Pix: payoutPix{ReceiverKey: p.ReceiverKey}},
		},
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+g.accessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Idempotency-Key", p.IdempotencyKey)

	log.Printf("[payout][gateway] send start amount=%.2f idempotency_key=%s", p.Amount, p.IdempotencyKey)
	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Printf("[payout][gateway] send failed err=%v", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		log.Printf("[payout][gateway] send success status=%d idempotency_key=%s", resp.StatusCode, p.IdempotencyKey)
		return nil
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	msg := extractProviderMessage(raw)
	log.Printf("[payout][gateway] send rejected status=%d message=%q", resp.StatusCode, msg)
	if msg == "" {
		return fmt.Errorf("payout request failed with status %d", resp.StatusCode)
	}
	return fmt.Errorf("payout request failed with status %d: %s", resp.StatusCode, msg)
}

func extractProviderMessage(raw []byte) string {
	var parsed struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return ""
	}
	if parsed.Message != "" {
		return parsed.Message
	}
	return parsed.Error
}
