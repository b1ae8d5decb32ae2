package response

import (
	"time"

	"limpflix/internal/domain/entities"
	"limpflix/internal/domain/geo"
)

type ProviderResponse struct {
	ID              string   `json:"id"`
	UserID          string   `json:"user_id,omitempty"`
	ResponsibleName string   `json:"responsible_name"`
	TradeName       string   `json:"trade_name,omitempty"`
	Bio             string   `json:"bio,omitempty"`
	Phone           string   `json:"phone,omitempty"`
	Email           string   `json:"email"`
	City            string   `json:"city"`
	State           string   `json:"state"`
	Latitude        *float64 `json:"latitude,omitempty"`
	Longitude       *float64 `json:"longitude,omitempty"`
	ServicesOffered []string `json:"services_offered"`
	Status          string   `json:"status"`
	IsBusy          bool     `json:"is_busy"`
	WalletBalance   float64  `json:"wallet_balance"`
	PendingBalance  float64  `json:"pending_balance"`
	Rating          float64  `json:"rating"`
	TotalReviews    int      `json:"total_reviews"`
	TotalServices   int      `json:"total_services"`
	TotalReferrals  int      `json:"total_referrals"`
	ReferralCode    string   `json:"referral_code"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromProvider(p entities.Provider) ProviderResponse {
	return ProviderResponse{
		ID:              p.ID,
		UserID:          p.UserID,
		ResponsibleName: p.ResponsibleName,
		TradeName:       p.TradeName,
		Bio:             p.Bio,
		Phone:           p.Phone,
		Email:           p.Email,
		City:            p.City,
		State:           p.State,
		Latitude:        p.Latitude,
		Longitude:       p.Longitude,
		ServicesOffered: p.ServicesOffered,
		Status:          string(p.Status),
		IsBusy:          p.IsBusy,
		WalletBalance:   p.WalletBalance,
		PendingBalance:  p.PendingBalance,
		Rating:          p.Rating,
		TotalReviews:    p.TotalReviews,
		TotalServices:   p.TotalServices,
		TotalReferrals:  p.TotalReferrals,
		ReferralCode:    p.ReferralCode,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// ProviderSearchResponse is a search result ordered by proximity.
// DistanceKm is nil when either side lacks coordinates.
type ProviderSearchResponse struct {
	ProviderResponse
	DistanceKm *float64 `json:"distance_km,omitempty"`
}

func FromProviderDistances(results []geo.ProviderDistance) []ProviderSearchResponse {
	out := make([]ProviderSearchResponse, 0, len(results))
	for _, r := range results {
		out = append(out, ProviderSearchResponse{
			ProviderResponse: FromProvider(r.Provider),
			DistanceKm:       r.DistanceKm,
		})
	}
	return out
}

type ClientResponse struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	Email                string    `json:"email"`
	Phone                string    `json:"phone,omitempty"`
	ReferredByProviderID string    `json:"referred_by_provider_id,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
}

func FromClient(c entities.ClientProfile) ClientResponse {
	return ClientResponse{
		ID:                   c.ID,
		Name:                 c.Name,
		Email:                c.Email,
		Phone:                c.Phone,
		ReferredByProviderID: c.ReferredByProviderID,
		CreatedAt:            c.CreatedAt,
	}
}

type TransactionResponse struct {
	ID          string    `json:"id"`
	ProviderID  string    `json:"provider_id,omitempty"`
	BookingID   string    `json:"booking_id,omitempty"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func FromTransaction(t entities.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		ProviderID:  t.ProviderID,
		BookingID:   t.BookingID,
		Type:        string(t.Type),
		Status:      string(t.Status),
		Amount:      t.Amount,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
	}
}

func FromTransactions(ts []entities.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(ts))
	for _, t := range ts {
		out = append(out, FromTransaction(t))
	}
	return out
}
