package usecase

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"limpflix/internal/domain/entities"
	"limpflix/internal/usecase/interfaces"
	mock_interfaces "limpflix/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestCheckoutUseCase_BuildCheckout(t *testing.T) {
	cmd := BuildCheckoutCommand{
		PayerEmail:  "cliente@example.com",
		ClientID:    "cli-1",
		ProviderID:  "prov-1",
		QuoteID:     "quote-1",
		ServiceName: "Limpeza Residencial",
		Amount:      149.90,
	}

	t.Run("invalid input", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		providerRepo := mock_interfaces.NewMockIProviderRepository(ctrl)
		gateway := mock_interfaces.NewMockICheckoutGateway(ctrl)
		uc := NewCheckoutUseCase(providerRepo, gateway, "https://app.limpflix.com")

		cases := []BuildCheckoutCommand{
			{ClientID: "cli-1", ProviderID: "prov-1", Amount: 10},
			{PayerEmail: "a@b.com", ProviderID: "prov-1", Amount: 10},
			{PayerEmail: "a@b.com", ClientID: "cli-1", Amount: 10},
			{PayerEmail: "a@b.com", ClientID: "cli-1", ProviderID: "prov-1", Amount: 0},
			{PayerEmail: "a@b.com", ClientID: "cli-1", ProviderID: "prov-1", Amount: -5},
		}
		for i, bad := range cases {
			if _, err := uc.BuildCheckout(context.Background(), bad); !errors.Is(err, ErrInvalidCheckoutInput) {
				t.Fatalf("case %d: expected ErrInvalidCheckoutInput, got %v", i, err)
			}
		}
	})

	t.Run("provider not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		providerRepo := mock_interfaces.NewMockIProviderRepository(ctrl)
		gateway := mock_interfaces.NewMockICheckoutGateway(ctrl)
		uc := NewCheckoutUseCase(providerRepo, gateway, "https://app.limpflix.com")

		providerRepo.EXPECT().GetByID(gomock.Any(), "prov-1").Return(entities.Provider{}, nil)
		if _, err := uc.BuildCheckout(context.Background(), cmd); !errors.Is(err, ErrProviderNotFound) {
			t.Fatalf("expected ErrProviderNotFound, got %v", err)
		}
	})

	t.Run("settlement context baked into success url", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		providerRepo := mock_interfaces.NewMockIProviderRepository(ctrl)
		gateway := mock_interfaces.NewMockICheckoutGateway(ctrl)
		uc := NewCheckoutUseCase(providerRepo, gateway, "https://app.limpflix.com/")

		providerRepo.EXPECT().GetByID(gomock.Any(), "prov-1").Return(entities.Provider{ID: "prov-1", TradeName: "Brilho Total"}, nil)
		gateway.EXPECT().CreatePreference(gomock.Any(), gomock.AssignableToTypeOf(interfaces.CheckoutPreference{})).DoAndReturn(
			func(_ context.Context, pref interfaces.CheckoutPreference) (string, error) {
				if pref.Title != "Servico LimpFlix - Brilho Total" {
					t.Fatalf("unexpected title: %q", pref.Title)
				}
				if pref.PayerEmail != "cliente@example.com" || pref.Amount != 149.90 {
					t.Fatalf("unexpected preference: %+v", pref)
				}
				if !strings.HasPrefix(pref.SuccessURL, "https://app.limpflix.com/v1/payments/confirm?") {
					t.Fatalf("unexpected success url: %q", pref.SuccessURL)
				}
				parsed, err := url.Parse(pref.SuccessURL)
				if err != nil {
					t.Fatalf("success url does not parse: %v", err)
				}
				q := parsed.Query()
				if q.Get("provider_id") != "prov-1" || q.Get("client_id") != "cli-1" || q.Get("quote_id") != "quote-1" {
					t.Fatalf("settlement ids missing from success url: %v", q)
				}
				if q.Get("amount") != "149.90" || q.Get("service_name") != "Limpeza Residencial" {
					t.Fatalf("settlement payload missing from success url: %v", q)
				}
				return "https://mercadopago.com/init/abc", nil
			},
		)

		redirect, err := uc.BuildCheckout(context.Background(), cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if redirect != "https://mercadopago.com/init/abc" {
			t.Fatalf("unexpected redirect: %q", redirect)
		}
	})

	t.Run("falls back to responsible name and default service", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		providerRepo := mock_interfaces.NewMockIProviderRepository(ctrl)
		gateway := mock_interfaces.NewMockICheckoutGateway(ctrl)
		uc := NewCheckoutUseCase(providerRepo, gateway, "https://app.limpflix.com")

		bare := cmd
		bare.ServiceName = ""
		providerRepo.EXPECT().GetByID(gomock.Any(), "prov-1").Return(entities.Provider{ID: "prov-1", ResponsibleName: "Maria Silva"}, nil)
		gateway.EXPECT().CreatePreference(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, pref interfaces.CheckoutPreference) (string, error) {
				if pref.Title != "Servico LimpFlix - Maria Silva" {
					t.Fatalf("unexpected title: %q", pref.Title)
				}
				parsed, _ := url.Parse(pref.SuccessURL)
				if parsed.Query().Get("service_name") != "Limpeza/Servico especial" {
					t.Fatalf("expected default service name, got %q", parsed.Query().Get("service_name"))
				}
				return "https://mercadopago.com/init/abc", nil
			},
		)

		if _, err := uc.BuildCheckout(context.Background(), bare); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("gateway failure wraps payment intent error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		providerRepo := mock_interfaces.NewMockIProviderRepository(ctrl)
		gateway := mock_interfaces.NewMockICheckoutGateway(ctrl)
		uc := NewCheckoutUseCase(providerRepo, gateway, "https://app.limpflix.com")

		providerRepo.EXPECT().GetByID(gomock.Any(), "prov-1").Return(entities.Provider{ID: "prov-1"}, nil)
		gateway.EXPECT().CreatePreference(gomock.Any(), gomock.Any()).Return("", errors.New("mp unavailable"))

		if _, err := uc.BuildCheckout(context.Background(), cmd); !errors.Is(err, ErrPaymentIntentFailed) {
			t.Fatalf("expected ErrPaymentIntentFailed, got %v", err)
		}
	})
}
