package usecase

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"limpflix/internal/domain/entities"
	"limpflix/internal/usecase/interfaces"
	mock_interfaces "limpflix/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

type settlementFixture struct {
	providerRepo *mock_interfaces.MockIProviderRepository
	clientRepo   *mock_interfaces.MockIClientRepository
	bookingRepo  *mock_interfaces.MockIBookingRepository
	convRepo     *mock_interfaces.MockIConversationRepository
	txRepo       *mock_interfaces.MockITransactionRepository
	payouts      *mock_interfaces.MockIPayoutGateway
	events       *mock_interfaces.MockIEventPublisher
	uc           *SettlementUseCase
}

func newSettlementFixture(t *testing.T) (*settlementFixture, *gomock.Controller) {
	ctrl := gomock.NewController(t)
	f := &settlementFixture{
		providerRepo: mock_interfaces.NewMockIProviderRepository(ctrl),
		clientRepo:   mock_interfaces.NewMockIClientRepository(ctrl),
		bookingRepo:  mock_interfaces.NewMockIBookingRepository(ctrl),
		convRepo:     mock_interfaces.NewMockIConversationRepository(ctrl),
		txRepo:       mock_interfaces.NewMockITransactionRepository(ctrl),
		payouts:      mock_interfaces.NewMockIPayoutGateway(ctrl),
		events:       mock_interfaces.NewMockIEventPublisher(ctrl),
	}
	f.uc = NewSettlementUseCase(f.providerRepo, f.clientRepo, f.bookingRepo, f.convRepo, f.txRepo, f.payouts, f.events)
	f.uc.payoutAttempts = 2
	f.uc.payoutBackoff = time.Millisecond
	return f, ctrl
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeSplit(t *testing.T) {
	cases := []struct {
		total    float64
		provider float64
		referral float64
		platform float64
	}{
		{200, 188, 2, 10},
		{100, 94, 1, 5},
		{149.90, 140.91, 1.50, 7.49},
		{0.10, 0.09, 0, 0.01},
	}
	for _, tc := range cases {
		split := ComputeSplit(tc.total)
		if !approx(split.ProviderShare, tc.provider) || !approx(split.ReferralShare, tc.referral) || !approx(split.PlatformShare, tc.platform) {
			t.Fatalf("split of %v: got %+v", tc.total, split)
		}
		if !approx(split.ProviderShare+split.ReferralShare+split.PlatformShare, tc.total) {
			t.Fatalf("split of %v does not sum back: %+v", tc.total, split)
		}
	}
}

func TestSettlementUseCase_ConfirmPayment(t *testing.T) {
	conf := PaymentConfirmation{
		Status:      "approved",
		ProviderID:  "prov-1",
		ClientID:    "cli-1",
		QuoteID:     "quote-1",
		ServiceName: "Limpeza Residencial",
		Amount:      200,
	}

	t.Run("invalid input", func(t *testing.T) {
		f, ctrl := newSettlementFixture(t)
		defer ctrl.Finish()

		_, err := f.uc.ConfirmPayment(context.Background(), PaymentConfirmation{Status: "approved", Amount: 200})
		if !errors.Is(err, ErrInvalidConfirmationInput) {
			t.Fatalf("expected ErrInvalidConfirmationInput, got %v", err)
		}
	})

	t.Run("not approved", func(t *testing.T) {
		f, ctrl := newSettlementFixture(t)
		defer ctrl.Finish()

		bad := conf
		bad.Status = "pending"
		_, err := f.uc.ConfirmPayment(context.Background(), bad)
		if !errors.Is(err, ErrPaymentNotApproved) {
			t.Fatalf("expected ErrPaymentNotApproved, got %v", err)
		}
	})

	t.Run("duplicate redirect returns existing booking", func(t *testing.T) {
		f, ctrl := newSettlementFixture(t)
		defer ctrl.Finish()

		existing := entities.Booking{ID: "bk-1", ProviderID: "prov-1", ClientID: "cli-1", Status: entities.BookingStatusConfirmed}
		f.bookingRepo.EXPECT().GetActiveByProviderAndClient(gomock.Any(), "prov-1", "cli-1").Return(existing, nil)

		got, err := f.uc.ConfirmPayment(context.Background(), conf)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.ID != "bk-1" {
			t.Fatalf("expected existing booking, got %+v", got)
		}
	})

	t.Run("full settlement with referrer", func(t *testing.T) {
		f, ctrl := newSettlementFixture(t)
		defer ctrl.Finish()

		provider := entities.Provider{ID: "prov-1", PixKey: "prov-pix", ReferrerID: "ref-1"}
		referrer := entities.Provider{ID: "ref-1", PixKey: "ref-pix"}

		f.bookingRepo.EXPECT().GetActiveByProviderAndClient(gomock.Any(), "prov-1", "cli-1").Return(entities.Booking{}, nil)
		f.providerRepo.EXPECT().GetByID(gomock.Any(), "prov-1").Return(provider, nil)

		var createdID string
		f.bookingRepo.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Booking{})).DoAndReturn(
			func(_ context.Context, b entities.Booking) (entities.Booking, error) {
				if b.Status != entities.BookingStatusConfirmed || b.PaymentStatus != entities.PaymentStatusApproved {
					t.Fatalf("unexpected booking: %+v", b)
				}
				if b.TotalAmount != 200 || b.QuoteID != "quote-1" {
					t.Fatalf("unexpected booking: %+v", b)
				}
				createdID = b.ID
				return b, nil
			},
		)
		f.providerRepo.EXPECT().SetBusy(gomock.Any(), "prov-1", true).Return(provider, nil)

		var ledger []entities.Transaction
		f.txRepo.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Transaction{})).DoAndReturn(
			func(_ context.Context, tx entities.Transaction) (entities.Transaction, error) {
				ledger = append(ledger, tx)
				return tx, nil
			},
		).Times(4)

		f.convRepo.EXPECT().ListByQuoteRequestID(gomock.Any(), "quote-1").Return([]entities.Conversation{
			{ID: "conv-win", ProviderID: "prov-1"},
			{ID: "conv-lose", ProviderID: "prov-2"},
		}, nil)
		f.convRepo.EXPECT().SetStatus(gomock.Any(), "conv-win", entities.ConversationStatusHired).Return(entities.Conversation{}, nil)
		f.convRepo.EXPECT().SetStatus(gomock.Any(), "conv-lose", entities.ConversationStatusClosed).Return(entities.Conversation{}, nil)

		f.clientRepo.EXPECT().GetByID(gomock.Any(), "cli-1").Return(entities.ClientProfile{ID: "cli-1"}, nil)
		f.providerRepo.EXPECT().GetByID(gomock.Any(), "ref-1").Return(referrer, nil)

		var sent []interfaces.PixPayout
		f.payouts.EXPECT().SendPix(gomock.Any(), gomock.AssignableToTypeOf(interfaces.PixPayout{})).DoAndReturn(
			func(_ context.Context, p interfaces.PixPayout) error {
				sent = append(sent, p)
				return nil
			},
		).Times(2)

		f.events.EXPECT().Publish("prov-1", gomock.Any())
		f.events.EXPECT().Publish("cli-1", gomock.Any())

		booking, err := f.uc.ConfirmPayment(context.Background(), conf)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if booking.ID != createdID {
			t.Fatalf("expected created booking, got %+v", booking)
		}

		if len(sent) != 2 {
			t.Fatalf("expected 2 payouts, got %d", len(sent))
		}
		if !approx(sent[0].Amount, 188) || sent[0].ReceiverKey != "prov-pix" {
			t.Fatalf("unexpected provider payout: %+v", sent[0])
		}
		if sent[0].IdempotencyKey != "payout-"+createdID+"-provider" {
			t.Fatalf("unexpected provider idempotency key: %q", sent[0].IdempotencyKey)
		}
		if !approx(sent[1].Amount, 2) || sent[1].ReceiverKey != "ref-pix" {
			t.Fatalf("unexpected referral payout: %+v", sent[1])
		}
		if sent[1].IdempotencyKey != "payout-"+createdID+"-referral" {
			t.Fatalf("unexpected referral idempotency key: %q", sent[1].IdempotencyKey)
		}

		// incoming, platform revenue, provider share, referral share
		if len(ledger) != 4 {
			t.Fatalf("expected 4 ledger rows, got %d", len(ledger))
		}
		if ledger[1].ProviderID != "" || !approx(ledger[1].Amount, 10) {
			t.Fatalf("expected platform revenue row, got %+v", ledger[1])
		}
		for _, row := range ledger {
			if row.ID == "" || row.CreatedAt.IsZero() {
				t.Fatalf("ledger row missing id or timestamp: %+v", row)
			}
		}
	})

	t.Run("no referrer skips referral leg", func(t *testing.T) {
		f, ctrl := newSettlementFixture(t)
		defer ctrl.Finish()

		provider := entities.Provider{ID: "prov-1", PixKey: "prov-pix"}

		f.bookingRepo.EXPECT().GetActiveByProviderAndClient(gomock.Any(), "prov-1", "cli-1").Return(entities.Booking{}, nil)
		f.providerRepo.EXPECT().GetByID(gomock.Any(), "prov-1").Return(provider, nil)
		f.bookingRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, b entities.Booking) (entities.Booking, error) { return b, nil },
		)
		f.providerRepo.EXPECT().SetBusy(gomock.Any(), "prov-1", true).Return(provider, nil)
		f.txRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, tx entities.Transaction) (entities.Transaction, error) { return tx, nil },
		).Times(3)
		f.convRepo.EXPECT().ListByQuoteRequestID(gomock.Any(), "quote-1").Return(nil, nil)
		f.clientRepo.EXPECT().GetByID(gomock.Any(), "cli-1").Return(entities.ClientProfile{ID: "cli-1"}, nil)
		f.payouts.EXPECT().SendPix(gomock.Any(), gomock.Any()).Return(nil)
		f.events.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(2)

		if _, err := f.uc.ConfirmPayment(context.Background(), conf); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("self referral pays no commission", func(t *testing.T) {
		f, ctrl := newSettlementFixture(t)
		defer ctrl.Finish()

		provider := entities.Provider{ID: "prov-1", PixKey: "prov-pix", ReferrerID: "prov-1"}

		f.bookingRepo.EXPECT().GetActiveByProviderAndClient(gomock.Any(), "prov-1", "cli-1").Return(entities.Booking{}, nil)
		f.providerRepo.EXPECT().GetByID(gomock.Any(), "prov-1").Return(provider, nil)
		f.bookingRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, b entities.Booking) (entities.Booking, error) { return b, nil },
		)
		f.providerRepo.EXPECT().SetBusy(gomock.Any(), "prov-1", true).Return(provider, nil)
		f.txRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, tx entities.Transaction) (entities.Transaction, error) { return tx, nil },
		).Times(3)
		f.convRepo.EXPECT().ListByQuoteRequestID(gomock.Any(), "quote-1").Return(nil, nil)
		f.clientRepo.EXPECT().GetByID(gomock.Any(), "cli-1").Return(entities.ClientProfile{ID: "cli-1", ReferredByProviderID: "prov-1"}, nil)
		f.payouts.EXPECT().SendPix(gomock.Any(), gomock.Any()).Return(nil)
		f.events.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(2)

		if _, err := f.uc.ConfirmPayment(context.Background(), conf); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("missing pix key credits pending balance", func(t *testing.T) {
		f, ctrl := newSettlementFixture(t)
		defer ctrl.Finish()

		provider := entities.Provider{ID: "prov-1"}

		f.bookingRepo.EXPECT().GetActiveByProviderAndClient(gomock.Any(), "prov-1", "cli-1").Return(entities.Booking{}, nil)
		f.providerRepo.EXPECT().GetByID(gomock.Any(), "prov-1").Return(provider, nil)
		f.bookingRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, b entities.Booking) (entities.Booking, error) { return b, nil },
		)
		f.providerRepo.EXPECT().SetBusy(gomock.Any(), "prov-1", true).Return(provider, nil)
		f.providerRepo.EXPECT().CreditPendingBalance(gomock.Any(), "prov-1", 188.0).Return(provider, nil)

		var ledger []entities.Transaction
		f.txRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, tx entities.Transaction) (entities.Transaction, error) {
				ledger = append(ledger, tx)
				return tx, nil
			},
		).Times(3)
		f.convRepo.EXPECT().ListByQuoteRequestID(gomock.Any(), "quote-1").Return(nil, nil)
		f.clientRepo.EXPECT().GetByID(gomock.Any(), "cli-1").Return(entities.ClientProfile{ID: "cli-1"}, nil)
		f.events.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(2)

		if _, err := f.uc.ConfirmPayment(context.Background(), conf); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// The retained share stays visible as a pending outgoing row.
		last := ledger[len(ledger)-1]
		if last.Status != entities.TransactionStatusPending || last.Type != entities.TransactionTypeOutgoing {
			t.Fatalf("expected pending outgoing row, got %+v", last)
		}
	})

	t.Run("payout failure retries then records pending row", func(t *testing.T) {
		f, ctrl := newSettlementFixture(t)
		defer ctrl.Finish()

		provider := entities.Provider{ID: "prov-1", PixKey: "prov-pix"}

		f.bookingRepo.EXPECT().GetActiveByProviderAndClient(gomock.Any(), "prov-1", "cli-1").Return(entities.Booking{}, nil)
		f.providerRepo.EXPECT().GetByID(gomock.Any(), "prov-1").Return(provider, nil)
		f.bookingRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, b entities.Booking) (entities.Booking, error) { return b, nil },
		)
		f.providerRepo.EXPECT().SetBusy(gomock.Any(), "prov-1", true).Return(provider, nil)

		// payoutAttempts is 2 in the fixture.
		f.payouts.EXPECT().SendPix(gomock.Any(), gomock.Any()).Return(errors.New("gateway down")).Times(2)
		f.providerRepo.EXPECT().CreditPendingBalance(gomock.Any(), "prov-1", 188.0).Return(provider, nil)

		var ledger []entities.Transaction
		f.txRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, tx entities.Transaction) (entities.Transaction, error) {
				ledger = append(ledger, tx)
				return tx, nil
			},
		).Times(3)
		f.convRepo.EXPECT().ListByQuoteRequestID(gomock.Any(), "quote-1").Return(nil, nil)
		f.clientRepo.EXPECT().GetByID(gomock.Any(), "cli-1").Return(entities.ClientProfile{ID: "cli-1"}, nil)
		f.events.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(2)

		booking, err := f.uc.ConfirmPayment(context.Background(), conf)
		if err != nil {
			t.Fatalf("booking must survive a failed payout leg, got %v", err)
		}
		if booking.Status != entities.BookingStatusConfirmed {
			t.Fatalf("unexpected booking: %+v", booking)
		}

		last := ledger[len(ledger)-1]
		if last.Status != entities.TransactionStatusPending {
			t.Fatalf("expected pending provider row, got %+v", last)
		}
	})
}
