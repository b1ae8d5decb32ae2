package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"limpflix/internal/domain/entities"
	"limpflix/internal/domain/geo"
	"limpflix/internal/usecase/interfaces"
)

var (
	ErrConversationNotFound    = errors.New("conversation not found")
	ErrInvalidQuoteInput       = errors.New("invalid quote request input")
	ErrInvalidMessageInput     = errors.New("invalid message input")
	ErrNoProvidersAvailable    = errors.New("no providers available nearby for this service")
	ErrSenderNotInConversation = errors.New("sender does not belong to this conversation")
	ErrInvalidOfferAmount      = errors.New("invalid quote offer amount")
)

// quoteFanOut caps how many providers receive a fresh quote request.
const quoteFanOut = 3

type CreateQuoteRequestCommand struct {
	ClientID    string
	ServiceName string
	Description string
	MediaURLs   []string
	Latitude    *float64
	Longitude   *float64
	Address     string
}

type SendQuoteOfferCommand struct {
	ConversationID string
	ProviderID     string
	Amount         float64
	Description    string
}

// ConversationSummary is a chat-list entry with the viewer's unread count.
type ConversationSummary struct {
	Conversation entities.Conversation
	UnreadCount  int
}

type IChatUseCase interface {
	CreateQuoteRequest(ctx context.Context, cmd CreateQuoteRequestCommand) (entities.QuoteRequest, []entities.Conversation, error)
	ListConversations(ctx context.Context, userID string, asProvider bool) ([]ConversationSummary, error)
	ListMessages(ctx context.Context, conversationID string) ([]entities.Message, error)
	SendMessage(ctx context.Context, conversationID, senderID, content string) (entities.Message, error)
	SendQuoteOffer(ctx context.Context, cmd SendQuoteOfferCommand) (entities.QuoteOffer, error)
	MarkRead(ctx context.Context, conversationID, readerID string) error
}

// ChatUseCase owns the negotiation flow: a quote request fans out to the
// nearest available providers, each getting its own conversation, and the
// parties exchange messages until a quote offer is paid for.

type ChatUseCase struct {
	convRepo     interfaces.IConversationRepository
	quoteRepo    interfaces.IQuoteRepository
	providerRepo interfaces.IProviderRepository
	events       interfaces.IEventPublisher
}

var _ IChatUseCase = (*ChatUseCase)(nil)

func NewChatUseCase(
	convRepo interfaces.IConversationRepository,
	quoteRepo interfaces.IQuoteRepository,
	providerRepo interfaces.IProviderRepository,
	events interfaces.IEventPublisher,
) *ChatUseCase {
	return &ChatUseCase{convRepo: convRepo, quoteRepo: quoteRepo, providerRepo: providerRepo, events: events}
}

// CreateQuoteRequest persists the request and opens a conversation with up
// to three of the nearest approved, non-busy providers offering the service.
func (u *ChatUseCase) CreateQuoteRequest(ctx context.Context, cmd CreateQuoteRequestCommand) (entities.QuoteRequest, []entities.Conversation, error) {
	cmd.ClientID = strings.TrimSpace(cmd.ClientID)
	cmd.ServiceName = strings.TrimSpace(cmd.ServiceName)
	if cmd.ClientID == "" || cmd.ServiceName == "" || strings.TrimSpace(cmd.Description) == "" {
		return entities.QuoteRequest{}, nil, ErrInvalidQuoteInput
	}

	now := time.Now().UTC()
	quote := entities.QuoteRequest{
		ID:          uuid.NewString(),
		ClientID:    cmd.ClientID,
		ServiceName: cmd.ServiceName,
		Description: strings.TrimSpace(cmd.Description),
		MediaURLs:   cmd.MediaURLs,
		Latitude:    cmd.Latitude,
		Longitude:   cmd.Longitude,
		Address:     strings.TrimSpace(cmd.Address),
		Status:      entities.QuoteRequestStatusOpen,
		CreatedAt:   now,
	}

	providers, err := u.providerRepo.ListByStatus(ctx, entities.ProviderStatusApproved)
	if err != nil {
		return entities.QuoteRequest{}, nil, err
	}

	eligible := make([]entities.Provider, 0, len(providers))
	for _, p := range providers {
		if p.IsBusy {
			continue
		}
		if len(p.ServicesOffered) > 0 && !offersService(p, cmd.ServiceName) {
			continue
		}
		eligible = append(eligible, p)
	}

	ranked := geo.SortByProximity(eligible, cmd.Latitude, cmd.Longitude)
	if len(ranked) > quoteFanOut {
		ranked = ranked[:quoteFanOut]
	}
	if len(ranked) == 0 {
		return entities.QuoteRequest{}, nil, ErrNoProvidersAvailable
	}

	quote, err = u.quoteRepo.CreateRequest(ctx, quote)
	if err != nil {
		return entities.QuoteRequest{}, nil, err
	}

	greeting := fmt.Sprintf("Ola! Gostaria de um orcamento.\n\nDescricao: %s\n\nMidias: %d arquivo(s) anexado(s).", quote.Description, len(quote.MediaURLs))

	conversations := make([]entities.Conversation, 0, len(ranked))
	for _, pd := range ranked {
		conv := entities.Conversation{
			ID:             uuid.NewString(),
			ClientID:       cmd.ClientID,
			ProviderID:     pd.Provider.ID,
			QuoteRequestID: quote.ID,
			Status:         entities.ConversationStatusActive,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		conv, err := u.convRepo.Create(ctx, conv)
		if err != nil {
			log.Printf("[chat][usecase] conversation create failed quote_id=%s provider_id=%s err=%v", quote.ID, pd.Provider.ID, err)
			continue
		}
		if _, err := u.appendMessage(ctx, conv, cmd.ClientID, greeting); err != nil {
			log.Printf("[chat][usecase] greeting message failed conversation_id=%s err=%v", conv.ID, err)
		}
		u.events.Publish(pd.Provider.ID, interfaces.Event{Type: interfaces.EventTypeConversation, Payload: conv})
		conversations = append(conversations, conv)
	}
	if len(conversations) == 0 {
		return entities.QuoteRequest{}, nil, ErrNoProvidersAvailable
	}

	log.Printf("[chat][usecase] quote request fanned out quote_id=%s conversations=%d", quote.ID, len(conversations))
	return quote, conversations, nil
}

func (u *ChatUseCase) ListConversations(ctx context.Context, userID string, asProvider bool) ([]ConversationSummary, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidMessageInput
	}

	var (
		conversations []entities.Conversation
		err           error
	)
	if asProvider {
		conversations, err = u.convRepo.ListByProviderID(ctx, userID)
	} else {
		conversations, err = u.convRepo.ListByClientID(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	summaries := make([]ConversationSummary, 0, len(conversations))
	for _, c := range conversations {
		summaries = append(summaries, ConversationSummary{
			Conversation: c,
			UnreadCount:  u.unreadCount(ctx, c, userID),
		})
	}
	return summaries, nil
}

func (u *ChatUseCase) ListMessages(ctx context.Context, conversationID string) ([]entities.Message, error) {
	if _, err := u.getConversation(ctx, conversationID); err != nil {
		return nil, err
	}
	return u.convRepo.ListMessagesByConversationID(ctx, conversationID)
}

func (u *ChatUseCase) SendMessage(ctx context.Context, conversationID, senderID, content string) (entities.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return entities.Message{}, ErrInvalidMessageInput
	}

	conv, err := u.getConversation(ctx, conversationID)
	if err != nil {
		return entities.Message{}, err
	}
	if senderID != conv.ClientID && senderID != conv.ProviderID {
		return entities.Message{}, ErrSenderNotInConversation
	}

	msg, err := u.appendMessage(ctx, conv, senderID, content)
	if err != nil {
		return entities.Message{}, err
	}

	u.events.Publish(otherParty(conv, senderID), interfaces.Event{Type: interfaces.EventTypeMessage, Payload: msg})
	return msg, nil
}

// SendQuoteOffer records the priced proposal and drops a formatted message
// into the chat so the offer reads inline.
func (u *ChatUseCase) SendQuoteOffer(ctx context.Context, cmd SendQuoteOfferCommand) (entities.QuoteOffer, error) {
	if cmd.Amount <= 0 {
		return entities.QuoteOffer{}, ErrInvalidOfferAmount
	}

	conv, err := u.getConversation(ctx, cmd.ConversationID)
	if err != nil {
		return entities.QuoteOffer{}, err
	}
	if cmd.ProviderID != conv.ProviderID {
		return entities.QuoteOffer{}, ErrSenderNotInConversation
	}

	offer := entities.QuoteOffer{
		ID:             uuid.NewString(),
		ConversationID: conv.ID,
		ProviderID:     cmd.ProviderID,
		Amount:         cmd.Amount,
		Description:    strings.TrimSpace(cmd.Description),
		CreatedAt:      time.Now().UTC(),
	}
	offer, err = u.quoteRepo.CreateOffer(ctx, offer)
	if err != nil {
		return entities.QuoteOffer{}, err
	}

	content := fmt.Sprintf("Proposta de orcamento: R$ %.2f", offer.Amount)
	if offer.Description != "" {
		content += "\n" + offer.Description
	}
	msg, err := u.appendMessage(ctx, conv, cmd.ProviderID, content)
	if err != nil {
		log.Printf("[chat][usecase] offer message failed conversation_id=%s err=%v", conv.ID, err)
	} else {
		u.events.Publish(conv.ClientID, interfaces.Event{Type: interfaces.EventTypeMessage, Payload: msg})
	}

	log.Printf("[chat][usecase] quote offer sent conversation_id=%s offer_id=%s amount=%.2f", conv.ID, offer.ID, offer.Amount)
	return offer, nil
}

func (u *ChatUseCase) MarkRead(ctx context.Context, conversationID, readerID string) error {
	conv, err := u.getConversation(ctx, conversationID)
	if err != nil {
		return err
	}
	if readerID != conv.ClientID && readerID != conv.ProviderID {
		return ErrSenderNotInConversation
	}
	return u.convRepo.MarkRead(ctx, conv.ID, readerID, time.Now().UTC())
}

func (u *ChatUseCase) getConversation(ctx context.Context, id string) (entities.Conversation, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Conversation{}, ErrInvalidMessageInput
	}
	conv, err := u.convRepo.GetByID(ctx, id)
	if err != nil {
		return entities.Conversation{}, err
	}
	if conv.ID == "" {
		return entities.Conversation{}, ErrConversationNotFound
	}
	return conv, nil
}

func (u *ChatUseCase) appendMessage(ctx context.Context, conv entities.Conversation, senderID, content string) (entities.Message, error) {
	now := time.Now().UTC()
	msg := entities.Message{
		ID:             uuid.NewString(),
		ConversationID: conv.ID,
		SenderID:       senderID,
		Content:        content,
		CreatedAt:      now,
	}
	msg, err := u.convRepo.CreateMessage(ctx, msg)
	if err != nil {
		return entities.Message{}, err
	}
	if err := u.convRepo.SetLastMessage(ctx, conv.ID, content, now); err != nil {
		log.Printf("[chat][usecase] last message update failed conversation_id=%s err=%v", conv.ID, err)
	}
	return msg, nil
}

// unreadCount counts messages from the other party after the viewer's read
// stamp. Chat lists are short-lived negotiation threads, so counting from
// the message list is acceptable.
func (u *ChatUseCase) unreadCount(ctx context.Context, c entities.Conversation, viewerID string) int {
	lastRead := c.ClientLastReadAt
	if viewerID == c.ProviderID {
		lastRead = c.ProviderLastReadAt
	}
	if c.LastMessageAt.IsZero() || !c.LastMessageAt.After(lastRead) {
		return 0
	}

	msgs, err := u.convRepo.ListMessagesByConversationID(ctx, c.ID)
	if err != nil {
		log.Printf("[chat][usecase] unread count failed conversation_id=%s err=%v", c.ID, err)
		return 0
	}
	count := 0
	for _, m := range msgs {
		if m.SenderID != viewerID && m.CreatedAt.After(lastRead) {
			count++
		}
	}
	return count
}

func offersService(p entities.Provider, serviceName string) bool {
	for _, s := range p.ServicesOffered {
		if strings.EqualFold(s, serviceName) {
			return true
		}
	}
	return false
}

func otherParty(c entities.Conversation, senderID string) string {
	if senderID == c.ClientID {
		return c.ProviderID
	}
	return c.ClientID
}
