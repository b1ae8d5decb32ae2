package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"limpflix/internal/domain/entities"
	mock_interfaces "limpflix/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

type chatFixture struct {
	convRepo     *mock_interfaces.MockIConversationRepository
	quoteRepo    *mock_interfaces.MockIQuoteRepository
	providerRepo *mock_interfaces.MockIProviderRepository
	events       *mock_interfaces.MockIEventPublisher
	uc           *ChatUseCase
}

func newChatFixture(t *testing.T) (*chatFixture, *gomock.Controller) {
	ctrl := gomock.NewController(t)
	f := &chatFixture{
		convRepo:     mock_interfaces.NewMockIConversationRepository(ctrl),
		quoteRepo:    mock_interfaces.NewMockIQuoteRepository(ctrl),
		providerRepo: mock_interfaces.NewMockIProviderRepository(ctrl),
		events:       mock_interfaces.NewMockIEventPublisher(ctrl),
	}
	f.uc = NewChatUseCase(f.convRepo, f.quoteRepo, f.providerRepo, f.events)
	return f, ctrl
}

func coords(lat, lon float64) (*float64, *float64) {
	return &lat, &lon
}

func approvedProvider(id string, lat, lon float64) entities.Provider {
	la, lo := coords(lat, lon)
	return entities.Provider{
		ID:              id,
		Status:          entities.ProviderStatusApproved,
		Latitude:        la,
		Longitude:       lo,
		ServicesOffered: []string{"Limpeza Residencial"},
	}
}

func TestChatUseCase_CreateQuoteRequest(t *testing.T) {
	lat, lon := coords(-23.5505, -46.6333)
	cmd := CreateQuoteRequestCommand{
		ClientID:    "cli-1",
		ServiceName: "Limpeza Residencial",
		Description: "Apartamento de 80m2, 2 quartos",
		MediaURLs:   []string{"https://cdn.limpflix.com/foto1.jpg"},
		Latitude:    lat,
		Longitude:   lon,
		Address:     "Av. Paulista, 1000",
	}

	t.Run("invalid input", func(t *testing.T) {
		f, ctrl := newChatFixture(t)
		defer ctrl.Finish()

		for i, bad := range []CreateQuoteRequestCommand{
			{ServiceName: "Limpeza", Description: "x"},
			{ClientID: "cli-1", Description: "x"},
			{ClientID: "cli-1", ServiceName: "Limpeza", Description: "   "},
		} {
			if _, _, err := f.uc.CreateQuoteRequest(context.Background(), bad); !errors.Is(err, ErrInvalidQuoteInput) {
				t.Fatalf("case %d: expected ErrInvalidQuoteInput, got %v", i, err)
			}
		}
	})

	t.Run("fans out to the three nearest eligible providers", func(t *testing.T) {
		f, ctrl := newChatFixture(t)
		defer ctrl.Finish()

		busy := approvedProvider("prov-busy", -23.5506, -46.6334)
		busy.IsBusy = true
		otherService := approvedProvider("prov-other", -23.5506, -46.6334)
		otherService.ServicesOffered = []string{"Limpeza de Piscina"}

		f.providerRepo.EXPECT().ListByStatus(gomock.Any(), entities.ProviderStatusApproved).Return([]entities.Provider{
			approvedProvider("prov-far", -25.0, -48.0),
			busy,
			otherService,
			approvedProvider("prov-near", -23.5510, -46.6340),
			approvedProvider("prov-mid", -23.60, -46.70),
			approvedProvider("prov-edge", -23.70, -46.80),
		}, nil)

		f.quoteRepo.EXPECT().CreateRequest(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, q entities.QuoteRequest) (entities.QuoteRequest, error) {
				if q.Status != entities.QuoteRequestStatusOpen || q.ClientID != "cli-1" {
					t.Fatalf("unexpected quote request: %+v", q)
				}
				return q, nil
			},
		)

		var openedFor []string
		f.convRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, c entities.Conversation) (entities.Conversation, error) {
				openedFor = append(openedFor, c.ProviderID)
				return c, nil
			},
		).Times(3)
		f.convRepo.EXPECT().CreateMessage(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, m entities.Message) (entities.Message, error) {
				if m.SenderID != "cli-1" {
					t.Fatalf("greeting must come from the client, got %q", m.SenderID)
				}
				if !strings.Contains(m.Content, "Apartamento de 80m2") || !strings.Contains(m.Content, "1 arquivo(s)") {
					t.Fatalf("unexpected greeting: %q", m.Content)
				}
				return m, nil
			},
		).Times(3)
		f.convRepo.EXPECT().SetLastMessage(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(3)
		f.events.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(3)

		quote, conversations, err := f.uc.CreateQuoteRequest(context.Background(), cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if quote.ID == "" {
			t.Fatalf("expected persisted quote, got %+v", quote)
		}
		if len(conversations) != 3 {
			t.Fatalf("expected 3 conversations, got %d", len(conversations))
		}
		if openedFor[0] != "prov-near" || openedFor[1] != "prov-mid" || openedFor[2] != "prov-edge" {
			t.Fatalf("expected nearest-first fan-out, got %v", openedFor)
		}
	})

	t.Run("no eligible providers", func(t *testing.T) {
		f, ctrl := newChatFixture(t)
		defer ctrl.Finish()

		busy := approvedProvider("prov-busy", -23.55, -46.63)
		busy.IsBusy = true
		f.providerRepo.EXPECT().ListByStatus(gomock.Any(), entities.ProviderStatusApproved).Return([]entities.Provider{busy}, nil)

		if _, _, err := f.uc.CreateQuoteRequest(context.Background(), cmd); !errors.Is(err, ErrNoProvidersAvailable) {
			t.Fatalf("expected ErrNoProvidersAvailable, got %v", err)
		}
	})
}

func TestChatUseCase_SendMessage(t *testing.T) {
	conv := entities.Conversation{ID: "conv-1", ClientID: "cli-1", ProviderID: "prov-1", Status: entities.ConversationStatusActive}

	t.Run("stranger rejected", func(t *testing.T) {
		f, ctrl := newChatFixture(t)
		defer ctrl.Finish()

		f.convRepo.EXPECT().GetByID(gomock.Any(), "conv-1").Return(conv, nil)
		if _, err := f.uc.SendMessage(context.Background(), "conv-1", "intruso", "oi"); !errors.Is(err, ErrSenderNotInConversation) {
			t.Fatalf("expected ErrSenderNotInConversation, got %v", err)
		}
	})

	t.Run("message delivered to the other party", func(t *testing.T) {
		f, ctrl := newChatFixture(t)
		defer ctrl.Finish()

		f.convRepo.EXPECT().GetByID(gomock.Any(), "conv-1").Return(conv, nil)
		f.convRepo.EXPECT().CreateMessage(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, m entities.Message) (entities.Message, error) {
				if m.ConversationID != "conv-1" || m.SenderID != "cli-1" || m.Content != "Pode vir amanha?" {
					t.Fatalf("unexpected message: %+v", m)
				}
				return m, nil
			},
		)
		f.convRepo.EXPECT().SetLastMessage(gomock.Any(), "conv-1", "Pode vir amanha?", gomock.Any()).Return(nil)
		f.events.EXPECT().Publish("prov-1", gomock.Any())

		msg, err := f.uc.SendMessage(context.Background(), "conv-1", "cli-1", "  Pode vir amanha?  ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if msg.Content != "Pode vir amanha?" {
			t.Fatalf("expected trimmed content, got %q", msg.Content)
		}
	})

	t.Run("missing conversation", func(t *testing.T) {
		f, ctrl := newChatFixture(t)
		defer ctrl.Finish()

		f.convRepo.EXPECT().GetByID(gomock.Any(), "nope").Return(entities.Conversation{}, nil)
		if _, err := f.uc.SendMessage(context.Background(), "nope", "cli-1", "oi"); !errors.Is(err, ErrConversationNotFound) {
			t.Fatalf("expected ErrConversationNotFound, got %v", err)
		}
	})
}

func TestChatUseCase_SendQuoteOffer(t *testing.T) {
	conv := entities.Conversation{ID: "conv-1", ClientID: "cli-1", ProviderID: "prov-1"}

	t.Run("non positive amount", func(t *testing.T) {
		f, ctrl := newChatFixture(t)
		defer ctrl.Finish()

		cmd := SendQuoteOfferCommand{ConversationID: "conv-1", ProviderID: "prov-1", Amount: 0}
		if _, err := f.uc.SendQuoteOffer(context.Background(), cmd); !errors.Is(err, ErrInvalidOfferAmount) {
			t.Fatalf("expected ErrInvalidOfferAmount, got %v", err)
		}
	})

	t.Run("only the conversation provider may offer", func(t *testing.T) {
		f, ctrl := newChatFixture(t)
		defer ctrl.Finish()

		f.convRepo.EXPECT().GetByID(gomock.Any(), "conv-1").Return(conv, nil)
		cmd := SendQuoteOfferCommand{ConversationID: "conv-1", ProviderID: "prov-2", Amount: 100}
		if _, err := f.uc.SendQuoteOffer(context.Background(), cmd); !errors.Is(err, ErrSenderNotInConversation) {
			t.Fatalf("expected ErrSenderNotInConversation, got %v", err)
		}
	})

	t.Run("offer recorded and mirrored into the chat", func(t *testing.T) {
		f, ctrl := newChatFixture(t)
		defer ctrl.Finish()

		f.convRepo.EXPECT().GetByID(gomock.Any(), "conv-1").Return(conv, nil)
		f.quoteRepo.EXPECT().CreateOffer(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, o entities.QuoteOffer) (entities.QuoteOffer, error) {
				if o.ConversationID != "conv-1" || o.ProviderID != "prov-1" || o.Amount != 149.9 {
					t.Fatalf("unexpected offer: %+v", o)
				}
				return o, nil
			},
		)
		f.convRepo.EXPECT().CreateMessage(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, m entities.Message) (entities.Message, error) {
				if !strings.HasPrefix(m.Content, "Proposta de orcamento: R$ 149.90") {
					t.Fatalf("unexpected offer message: %q", m.Content)
				}
				if !strings.Contains(m.Content, "Inclui produtos") {
					t.Fatalf("offer description missing: %q", m.Content)
				}
				return m, nil
			},
		)
		f.convRepo.EXPECT().SetLastMessage(gomock.Any(), "conv-1", gomock.Any(), gomock.Any()).Return(nil)
		f.events.EXPECT().Publish("cli-1", gomock.Any())

		cmd := SendQuoteOfferCommand{ConversationID: "conv-1", ProviderID: "prov-1", Amount: 149.9, Description: "Inclui produtos"}
		offer, err := f.uc.SendQuoteOffer(context.Background(), cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if offer.ID == "" {
			t.Fatalf("expected persisted offer, got %+v", offer)
		}
	})
}

func TestChatUseCase_MarkRead(t *testing.T) {
	conv := entities.Conversation{ID: "conv-1", ClientID: "cli-1", ProviderID: "prov-1"}

	t.Run("participant", func(t *testing.T) {
		f, ctrl := newChatFixture(t)
		defer ctrl.Finish()

		f.convRepo.EXPECT().GetByID(gomock.Any(), "conv-1").Return(conv, nil)
		f.convRepo.EXPECT().MarkRead(gomock.Any(), "conv-1", "prov-1", gomock.Any()).Return(nil)
		if err := f.uc.MarkRead(context.Background(), "conv-1", "prov-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("stranger", func(t *testing.T) {
		f, ctrl := newChatFixture(t)
		defer ctrl.Finish()

		f.convRepo.EXPECT().GetByID(gomock.Any(), "conv-1").Return(conv, nil)
		if err := f.uc.MarkRead(context.Background(), "conv-1", "intruso"); !errors.Is(err, ErrSenderNotInConversation) {
			t.Fatalf("expected ErrSenderNotInConversation, got %v", err)
		}
	})
}

func TestChatUseCase_ListConversations(t *testing.T) {
	f, ctrl := newChatFixture(t)
	defer ctrl.Finish()

	lastMsg := time.Now().UTC()
	read := entities.Conversation{ID: "conv-read", ClientID: "cli-1", ProviderID: "prov-1", LastMessageAt: lastMsg, ClientLastReadAt: lastMsg.Add(time.Second)}
	unread := entities.Conversation{ID: "conv-unread", ClientID: "cli-1", ProviderID: "prov-2", LastMessageAt: lastMsg}

	f.convRepo.EXPECT().ListByClientID(gomock.Any(), "cli-1").Return([]entities.Conversation{read, unread}, nil)
	f.convRepo.EXPECT().ListMessagesByConversationID(gomock.Any(), "conv-unread").Return([]entities.Message{
		{ID: "m1", SenderID: "prov-2", CreatedAt: lastMsg.Add(-time.Minute)},
		{ID: "m2", SenderID: "cli-1", CreatedAt: lastMsg.Add(-30 * time.Second)},
		{ID: "m3", SenderID: "prov-2", CreatedAt: lastMsg},
	}, nil)

	summaries, err := f.uc.ListConversations(context.Background(), "cli-1", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}
	if summaries[0].UnreadCount != 0 {
		t.Fatalf("read conversation must count 0, got %d", summaries[0].UnreadCount)
	}
	if summaries[1].UnreadCount != 2 {
		t.Fatalf("expected 2 unread provider messages, got %d", summaries[1].UnreadCount)
	}
}
