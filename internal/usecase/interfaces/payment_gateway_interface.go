package interfaces

import "context"

// CheckoutPreference is the request handed to the hosted-checkout provider.
// Metadata is already baked into SuccessURL by the caller; the success
// redirect query string is the only pre-confirmation memory of what the
// payment was for.
type CheckoutPreference struct {
	PayerEmail string
	Title      string
	Amount     float64
	SuccessURL string
	PendingURL string
	FailureURL string
}

// ICheckoutGateway abstracts hosted-checkout preference creation
// (Mercado Pago Checkout Pro). It returns the redirect target (init_point).
type ICheckoutGateway interface {
	CreatePreference(ctx context.Context, pref CheckoutPreference) (initPoint string, err error)
}

// PixPayout is one transfer to a pix key. IdempotencyKey must be derived
// from the logical transfer (booking id + recipient role, or ledger row id)
// so a retried call is provably the same payout.
type PixPayout struct {
	ReceiverKey    string
	Amount         float64
	Description    string
	IdempotencyKey string
}

// IPayoutGateway abstracts the pix transfer endpoint. It does not touch the
// ledger; callers record the outcome.
type IPayoutGateway interface {
	SendPix(ctx context.Context, p PixPayout) error
}
