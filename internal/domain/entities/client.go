package entities

import "time"

// ClientProfile is the marketplace-side record for a client account.
//
// ReferredByProviderID carries the exclusivity rule: a client who arrived
// through a provider's referral link only sees that provider in search, and
// that provider wins the referral share of the client's settlements.

type ClientProfile struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	Email                string    `json:"email"`
	Phone                string    `json:"phone,omitempty"`
	ReferredByProviderID string    `json:"referred_by_provider_id,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
}
