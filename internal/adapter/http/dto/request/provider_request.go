package request

import (
	"strings"

	"limpflix/internal/domain/entities"
	"limpflix/internal/usecase"
)

type RegisterProviderRequest struct {
	UserID          string   `json:"user_id"`
	ResponsibleName string   `json:"responsible_name" binding:"required"`
	TradeName       string   `json:"trade_name"`
	Email           string   `json:"email" binding:"required,email"`
	Phone           string   `json:"phone"`
	City            string   `json:"city" binding:"required"`
	State           string   `json:"state" binding:"required"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
	ServicesOffered []string `json:"services_offered" binding:"required,min=1"`
	PixKey          string   `json:"pix_key"`
	ReferralCode    string   `json:"referral_code"`
}

func (r RegisterProviderRequest) ToCommand() usecase.RegisterProviderCommand {
	return usecase.RegisterProviderCommand{
		UserID:          strings.TrimSpace(r.UserID),
		ResponsibleName: strings.TrimSpace(r.ResponsibleName),
		TradeName:       strings.TrimSpace(r.TradeName),
		Email:           strings.TrimSpace(r.Email),
		Phone:           strings.TrimSpace(r.Phone),
		City:            strings.TrimSpace(r.City),
		State:           strings.TrimSpace(r.State),
		Latitude:        r.Latitude,
		Longitude:       r.Longitude,
		ServicesOffered: r.ServicesOffered,
		PixKey:          strings.TrimSpace(r.PixKey),
		ReferralCode:    strings.ToUpper(strings.TrimSpace(r.ReferralCode)),
	}
}

type RegisterClientRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone"`
	ReferralCode string `json:"referral_code"`
}

func (r RegisterClientRequest) ToCommand() usecase.RegisterClientCommand {
	return usecase.RegisterClientCommand{
		Name:         strings.TrimSpace(r.Name),
		Email:        strings.TrimSpace(r.Email),
		Phone:        strings.TrimSpace(r.Phone),
		ReferralCode: strings.ToUpper(strings.TrimSpace(r.ReferralCode)),
	}
}

type ProviderSettingsRequest struct {
	TradeName       string   `json:"trade_name"`
	Bio             string   `json:"bio"`
	Phone           string   `json:"phone"`
	PixKey          string   `json:"pix_key"`
	City            string   `json:"city"`
	State           string   `json:"state"`
	ServicesOffered []string `json:"services_offered"`
}

func (r ProviderSettingsRequest) ToSettings() entities.ProviderSettings {
	return entities.ProviderSettings{
		TradeName:       strings.TrimSpace(r.TradeName),
		Bio:             strings.TrimSpace(r.Bio),
		Phone:           strings.TrimSpace(r.Phone),
		PixKey:          strings.TrimSpace(r.PixKey),
		City:            strings.TrimSpace(r.City),
		State:           strings.TrimSpace(r.State),
		ServicesOffered: r.ServicesOffered,
	}
}
