package handlers

import (
	"errors"
	"net/http"

	request "limpflix/internal/adapter/http/dto/request"
	response "limpflix/internal/adapter/http/dto/response"
	"limpflix/internal/usecase"
	"limpflix/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidQuotePayload   = pkg.NewDomainErrorSimple("INVALID_QUOTE_INPUT", "Invalid quote request payload", http.StatusBadRequest)
	errInvalidMessagePayload = pkg.NewDomainErrorSimple("INVALID_MESSAGE_INPUT", "Invalid message payload", http.StatusBadRequest)
	errMissingUserID         = pkg.NewDomainErrorSimple("MISSING_USER_ID", "user_id query parameter is required", http.StatusBadRequest)
)

// ChatHandler handles quote requests and the conversations they open.

type ChatHandler struct {
	usecase usecase.IChatUseCase
}

func NewChatHandler(uc usecase.IChatUseCase) *ChatHandler {
	return &ChatHandler{usecase: uc}
}

// CreateQuoteRequest opens a quote request and fans it out to the nearest
// available providers, one conversation each.
func (h *ChatHandler) CreateQuoteRequest(c *gin.Context) {
	var payload request.CreateQuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}

	quote, conversations, err := h.usecase.CreateQuoteRequest(c.Request.Context(), payload.ToCommand())
	if err != nil {
		appErr := mapChatError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromQuoteRequest(quote, conversations))
}

func (h *ChatHandler) ListConversations(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(errMissingUserID.HTTPStatus, errMissingUserID.ToHTTPError())
		return
	}
	asProvider := c.Query("as") == "provider"

	summaries, err := h.usecase.ListConversations(c.Request.Context(), userID, asProvider)
	if err != nil {
		appErr := mapChatError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromConversationSummaries(summaries))
}

func (h *ChatHandler) ListMessages(c *gin.Context) {
	messages, err := h.usecase.ListMessages(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapChatError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromMessages(messages))
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	var payload request.SendMessageRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidMessagePayload.HTTPStatus, errInvalidMessagePayload.ToHTTPError())
		return
	}

	message, err := h.usecase.SendMessage(c.Request.Context(), c.Param("id"), payload.SenderID, payload.Content)
	if err != nil {
		appErr := mapChatError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromMessage(message))
}

func (h *ChatHandler) SendQuoteOffer(c *gin.Context) {
	var payload request.SendQuoteOfferRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}

	offer, err := h.usecase.SendQuoteOffer(c.Request.Context(), payload.ToCommand(c.Param("id")))
	if err != nil {
		appErr := mapChatError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromQuoteOffer(offer))
}

func (h *ChatHandler) MarkRead(c *gin.Context) {
	var payload request.MarkReadRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidMessagePayload.HTTPStatus, errInvalidMessagePayload.ToHTTPError())
		return
	}

	if err := h.usecase.MarkRead(c.Request.Context(), c.Param("id"), payload.ReaderID); err != nil {
		appErr := mapChatError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.Status(http.StatusNoContent)
}

func mapChatError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidQuoteInput), errors.Is(err, usecase.ErrInvalidMessageInput), errors.Is(err, usecase.ErrInvalidOfferAmount):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrConversationNotFound):
		return pkg.NewDomainErrorSimple("CONVERSATION_NOT_FOUND", "Conversation not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrClientNotFound):
		return pkg.NewDomainErrorSimple("CLIENT_NOT_FOUND", "Client not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrNoProvidersAvailable):
		return pkg.NewDomainErrorSimple("NO_PROVIDERS_AVAILABLE", "No providers available for this service", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrSenderNotInConversation):
		return pkg.NewDomainErrorSimple("SENDER_NOT_IN_CONVERSATION", "Sender does not belong to this conversation", http.StatusForbidden)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
