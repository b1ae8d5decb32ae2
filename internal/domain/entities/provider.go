package entities

import "time"

// ProviderStatus governs visibility in search. Providers are never hard
// deleted; suspending them hides the profile and keeps history intact.

type ProviderStatus string

const (
	ProviderStatusPending   ProviderStatus = "pending"
	ProviderStatusApproved  ProviderStatus = "approved"
	ProviderStatusSuspended ProviderStatus = "suspended"
)

// Provider is a registered cleaning-service professional.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (referral_code-index): referral_code
//   - GSI2 (status-index): status
//
// Monetary fields are BRL with two-decimal precision. WalletBalance holds
// funds available for withdrawal; PendingBalance holds settlement shares that
// could not be paid out (no pix key registered or dispatch failure) and that
// require manual follow-up.

type Provider struct {
	ID              string         `json:"id"`
	UserID          string         `json:"user_id"`
	ResponsibleName string         `json:"responsible_name"`
	TradeName       string         `json:"trade_name"`
	Bio             string         `json:"bio,omitempty"`
	Phone           string         `json:"phone,omitempty"`
	Email           string         `json:"email"`
	City            string         `json:"city"`
	State           string         `json:"state"`
	Latitude        *float64       `json:"latitude,omitempty"`
	Longitude       *float64       `json:"longitude,omitempty"`
	ServicesOffered []string       `json:"services_offered,omitempty"`
	Status          ProviderStatus `json:"status"`
	IsBusy          bool           `json:"is_busy"`
	WalletBalance   float64        `json:"wallet_balance"`
	PendingBalance  float64        `json:"pending_balance"`
	Rating          float64        `json:"rating"`
	TotalReviews    int            `json:"total_reviews"`
	TotalServices   int            `json:"total_services"`
	TotalReferrals  int            `json:"total_referrals"`
	PixKey          string         `json:"pix_key,omitempty"`
	ReferralCode    string         `json:"referral_code"`
	ReferrerID      string         `json:"referrer_id,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// ProviderSettings is the mutable slice of the profile a provider may edit
// from the dashboard.
type ProviderSettings struct {
	TradeName       string   `json:"trade_name"`
	Bio             string   `json:"bio"`
	Phone           string   `json:"phone"`
	PixKey          string   `json:"pix_key"`
	City            string   `json:"city"`
	State           string   `json:"state"`
	ServicesOffered []string `json:"services_offered"`
}

func (p Provider) HasCoordinates() bool {
	return p.Latitude != nil && p.Longitude != nil
}
