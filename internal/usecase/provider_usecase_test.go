package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"limpflix/internal/domain/entities"
	"limpflix/internal/usecase/interfaces"
	mock_interfaces "limpflix/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

type providerFixture struct {
	repo       *mock_interfaces.MockIProviderRepository
	clientRepo *mock_interfaces.MockIClientRepository
	txRepo     *mock_interfaces.MockITransactionRepository
	payouts    *mock_interfaces.MockIPayoutGateway
	uc         *ProviderUseCase
}

func newProviderFixture(t *testing.T) (*providerFixture, *gomock.Controller) {
	ctrl := gomock.NewController(t)
	f := &providerFixture{
		repo:       mock_interfaces.NewMockIProviderRepository(ctrl),
		clientRepo: mock_interfaces.NewMockIClientRepository(ctrl),
		txRepo:     mock_interfaces.NewMockITransactionRepository(ctrl),
		payouts:    mock_interfaces.NewMockIPayoutGateway(ctrl),
	}
	f.uc = NewProviderUseCase(f.repo, f.clientRepo, f.txRepo, f.payouts)
	return f, ctrl
}

func TestProviderUseCase_Register(t *testing.T) {
	cmd := RegisterProviderCommand{
		ResponsibleName: "Maria Silva",
		TradeName:       "Brilho Total",
		Email:           "maria@example.com",
		City:            "Sao Paulo",
		State:           "sp",
		PixKey:          "maria@pix",
	}

	t.Run("invalid input", func(t *testing.T) {
		f, ctrl := newProviderFixture(t)
		defer ctrl.Finish()

		bad := cmd
		bad.Email = "  "
		if _, err := f.uc.Register(context.Background(), bad); !errors.Is(err, ErrInvalidProviderInput) {
			t.Fatalf("expected ErrInvalidProviderInput, got %v", err)
		}
	})

	t.Run("registers approved with generated referral code", func(t *testing.T) {
		f, ctrl := newProviderFixture(t)
		defer ctrl.Finish()

		f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p entities.Provider) (entities.Provider, error) {
				if p.Status != entities.ProviderStatusApproved {
					t.Fatalf("expected approved status, got %s", p.Status)
				}
				if p.State != "SP" {
					t.Fatalf("expected normalized state, got %q", p.State)
				}
				if !strings.HasPrefix(p.ReferralCode, "BRIL") || len(p.ReferralCode) != 8 {
					t.Fatalf("unexpected referral code: %q", p.ReferralCode)
				}
				return p, nil
			},
		)

		p, err := f.uc.Register(context.Background(), cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ID == "" {
			t.Fatalf("expected persisted provider")
		}
	})

	t.Run("referral code attributes the referrer", func(t *testing.T) {
		f, ctrl := newProviderFixture(t)
		defer ctrl.Finish()

		withCode := cmd
		withCode.ReferralCode = "brilx9k2"
		f.repo.EXPECT().GetByReferralCode(gomock.Any(), "BRILX9K2").Return(entities.Provider{ID: "ref-1"}, nil)
		f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p entities.Provider) (entities.Provider, error) {
				if p.ReferrerID != "ref-1" {
					t.Fatalf("expected referrer attribution, got %q", p.ReferrerID)
				}
				return p, nil
			},
		)
		f.repo.EXPECT().IncrementReferrals(gomock.Any(), "ref-1").Return(nil)

		if _, err := f.uc.Register(context.Background(), withCode); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("unknown referral code does not block registration", func(t *testing.T) {
		f, ctrl := newProviderFixture(t)
		defer ctrl.Finish()

		withCode := cmd
		withCode.ReferralCode = "NOPE1234"
		f.repo.EXPECT().GetByReferralCode(gomock.Any(), "NOPE1234").Return(entities.Provider{}, nil)
		f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p entities.Provider) (entities.Provider, error) {
				if p.ReferrerID != "" {
					t.Fatalf("unknown code must not attribute, got %q", p.ReferrerID)
				}
				return p, nil
			},
		)

		if _, err := f.uc.Register(context.Background(), withCode); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestProviderUseCase_RegisterClient(t *testing.T) {
	f, ctrl := newProviderFixture(t)
	defer ctrl.Finish()

	f.repo.EXPECT().GetByReferralCode(gomock.Any(), "BRILX9K2").Return(entities.Provider{ID: "prov-1"}, nil)
	f.clientRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, c entities.ClientProfile) (entities.ClientProfile, error) {
			if c.ReferredByProviderID != "prov-1" {
				t.Fatalf("expected client bound to referrer, got %q", c.ReferredByProviderID)
			}
			return c, nil
		},
	)

	cmd := RegisterClientCommand{Name: "Joao", Email: "joao@example.com", ReferralCode: "brilx9k2"}
	if _, err := f.uc.RegisterClient(context.Background(), cmd); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestProviderUseCase_Search(t *testing.T) {
	lat, lon := coords(-23.5505, -46.6333)

	t.Run("referred client sees only the referrer", func(t *testing.T) {
		f, ctrl := newProviderFixture(t)
		defer ctrl.Finish()

		f.clientRepo.EXPECT().GetByID(gomock.Any(), "cli-1").Return(entities.ClientProfile{ID: "cli-1", ReferredByProviderID: "prov-1"}, nil)
		f.repo.EXPECT().GetByID(gomock.Any(), "prov-1").Return(approvedProvider("prov-1", -23.55, -46.63), nil)

		results, err := f.uc.Search(context.Background(), SearchProvidersQuery{ClientID: "cli-1", OriginLat: lat, OriginLon: lon})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != 1 || results[0].Provider.ID != "prov-1" {
			t.Fatalf("expected only the referrer, got %v", results)
		}
	})

	t.Run("suspended referrer hides the marketplace entirely", func(t *testing.T) {
		f, ctrl := newProviderFixture(t)
		defer ctrl.Finish()

		suspended := approvedProvider("prov-1", -23.55, -46.63)
		suspended.Status = entities.ProviderStatusSuspended
		f.clientRepo.EXPECT().GetByID(gomock.Any(), "cli-1").Return(entities.ClientProfile{ID: "cli-1", ReferredByProviderID: "prov-1"}, nil)
		f.repo.EXPECT().GetByID(gomock.Any(), "prov-1").Return(suspended, nil)

		results, err := f.uc.Search(context.Background(), SearchProvidersQuery{ClientID: "cli-1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != 0 {
			t.Fatalf("expected empty result, got %v", results)
		}
	})

	t.Run("open search ranks by distance", func(t *testing.T) {
		f, ctrl := newProviderFixture(t)
		defer ctrl.Finish()

		f.clientRepo.EXPECT().GetByID(gomock.Any(), "cli-2").Return(entities.ClientProfile{ID: "cli-2"}, nil)
		f.repo.EXPECT().ListByStatus(gomock.Any(), entities.ProviderStatusApproved).Return([]entities.Provider{
			approvedProvider("prov-far", -25.0, -48.0),
			approvedProvider("prov-near", -23.5510, -46.6340),
			{ID: "prov-nowhere", Status: entities.ProviderStatusApproved},
		}, nil)

		results, err := f.uc.Search(context.Background(), SearchProvidersQuery{ClientID: "cli-2", OriginLat: lat, OriginLon: lon})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != 3 {
			t.Fatalf("expected 3 results, got %d", len(results))
		}
		if results[0].Provider.ID != "prov-near" || results[1].Provider.ID != "prov-far" {
			t.Fatalf("expected nearest-first ranking, got %v", results)
		}
		if results[2].Provider.ID != "prov-nowhere" || results[2].DistanceKm != nil {
			t.Fatalf("providers without coordinates must rank last without a distance, got %v", results[2])
		}
	})
}

func TestProviderUseCase_Withdraw(t *testing.T) {
	funded := func() entities.Provider {
		return entities.Provider{ID: "prov-1", TradeName: "Brilho Total", PixKey: "maria@pix", WalletBalance: 350.75}
	}

	t.Run("missing pix key", func(t *testing.T) {
		f, ctrl := newProviderFixture(t)
		defer ctrl.Finish()

		p := funded()
		p.PixKey = ""
		f.repo.EXPECT().GetByID(gomock.Any(), "prov-1").Return(p, nil)
		if _, err := f.uc.Withdraw(context.Background(), "prov-1"); !errors.Is(err, ErrMissingPixKey) {
			t.Fatalf("expected ErrMissingPixKey, got %v", err)
		}
	})

	t.Run("balance below minimum", func(t *testing.T) {
		f, ctrl := newProviderFixture(t)
		defer ctrl.Finish()

		p := funded()
		p.WalletBalance = 19.99
		f.repo.EXPECT().GetByID(gomock.Any(), "prov-1").Return(p, nil)
		if _, err := f.uc.Withdraw(context.Background(), "prov-1"); !errors.Is(err, ErrBalanceBelowMinimum) {
			t.Fatalf("expected ErrBalanceBelowMinimum, got %v", err)
		}
	})

	t.Run("full balance cashed out", func(t *testing.T) {
		f, ctrl := newProviderFixture(t)
		defer ctrl.Finish()

		f.repo.EXPECT().GetByID(gomock.Any(), "prov-1").Return(funded(), nil)
		f.payouts.EXPECT().SendPix(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p interfaces.PixPayout) error {
				if p.ReceiverKey != "maria@pix" || !approx(p.Amount, 350.75) {
					t.Fatalf("unexpected payout: %+v", p)
				}
				if !strings.HasPrefix(p.IdempotencyKey, "payout-withdraw-") {
					t.Fatalf("unexpected idempotency key: %q", p.IdempotencyKey)
				}
				return nil
			},
		)
		f.repo.EXPECT().UpdateWalletBalance(gomock.Any(), "prov-1", 350.75, 0.0).Return(funded(), nil)
		f.txRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, tx entities.Transaction) (entities.Transaction, error) {
				if tx.Status != entities.TransactionStatusCompleted || !approx(tx.Amount, 350.75) {
					t.Fatalf("unexpected transaction: %+v", tx)
				}
				return tx, nil
			},
		)

		tx, err := f.uc.Withdraw(context.Background(), "prov-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tx.Type != entities.TransactionTypeOutgoing {
			t.Fatalf("unexpected transaction type: %s", tx.Type)
		}
	})

	t.Run("concurrent credit loses the balance reset", func(t *testing.T) {
		f, ctrl := newProviderFixture(t)
		defer ctrl.Finish()

		f.repo.EXPECT().GetByID(gomock.Any(), "prov-1").Return(funded(), nil)
		f.payouts.EXPECT().SendPix(gomock.Any(), gomock.Any()).Return(nil)
		f.repo.EXPECT().UpdateWalletBalance(gomock.Any(), "prov-1", 350.75, 0.0).Return(entities.Provider{}, nil)

		if _, err := f.uc.Withdraw(context.Background(), "prov-1"); !errors.Is(err, ErrWalletBalanceConflict) {
			t.Fatalf("expected ErrWalletBalanceConflict, got %v", err)
		}
	})

	t.Run("rejected dispatch records a failed row", func(t *testing.T) {
		f, ctrl := newProviderFixture(t)
		defer ctrl.Finish()

		f.repo.EXPECT().GetByID(gomock.Any(), "prov-1").Return(funded(), nil)
		f.payouts.EXPECT().SendPix(gomock.Any(), gomock.Any()).Return(errors.New("pix key rejected"))
		f.txRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, tx entities.Transaction) (entities.Transaction, error) {
				if tx.Status != entities.TransactionStatusFailed {
					t.Fatalf("expected failed row, got %+v", tx)
				}
				return tx, nil
			},
		)

		if _, err := f.uc.Withdraw(context.Background(), "prov-1"); !errors.Is(err, ErrPayoutDispatchRejected) {
			t.Fatalf("expected ErrPayoutDispatchRejected, got %v", err)
		}
	})
}

func TestGenerateReferralCode(t *testing.T) {
	code := generateReferralCode("Brilho Total", "Maria Silva")
	if !strings.HasPrefix(code, "BRIL") || len(code) != 8 {
		t.Fatalf("unexpected code: %q", code)
	}
	if fallback := generateReferralCode("", ""); !strings.HasPrefix(fallback, "LP") {
		t.Fatalf("unexpected fallback code: %q", fallback)
	}
}
