package response

// CheckoutResponse carries the hosted-checkout redirect target. The frontend
// sends the payer there and the processor sends them back to the confirm
// endpoint.
type CheckoutResponse struct {
	CheckoutURL string `json:"checkout_url"`
}
