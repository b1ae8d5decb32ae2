package request

import (
	"strings"

	"limpflix/internal/usecase"
)

// CheckoutRequest carries everything the settlement path will need later:
// the fields are baked into the success-redirect URL, nothing is persisted
// until the processor approves.
type CheckoutRequest struct {
	PayerEmail  string  `json:"payer_email" binding:"required,email"`
	ClientID    string  `json:"client_id" binding:"required"`
	ProviderID  string  `json:"provider_id" binding:"required"`
	QuoteID     string  `json:"quote_id"`
	ServiceName string  `json:"service_name" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
}

func (r CheckoutRequest) ToCommand() usecase.BuildCheckoutCommand {
	return usecase.BuildCheckoutCommand{
		PayerEmail:  strings.TrimSpace(r.PayerEmail),
		ClientID:    strings.TrimSpace(r.ClientID),
		ProviderID:  strings.TrimSpace(r.ProviderID),
		QuoteID:     strings.TrimSpace(r.QuoteID),
		ServiceName: strings.TrimSpace(r.ServiceName),
		Amount:      r.Amount,
	}
}
