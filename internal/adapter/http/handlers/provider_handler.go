package handlers

import (
	"errors"
	"net/http"
	"strconv"

	request "limpflix/internal/adapter/http/dto/request"
	response "limpflix/internal/adapter/http/dto/response"
	"limpflix/internal/usecase"
	"limpflix/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidProviderPayload = pkg.NewDomainErrorSimple("INVALID_PROVIDER_INPUT", "Invalid provider payload", http.StatusBadRequest)
	errInvalidClientPayload   = pkg.NewDomainErrorSimple("INVALID_CLIENT_INPUT", "Invalid client payload", http.StatusBadRequest)
)

// ProviderHandler handles provider accounts, discovery and the wallet.

type ProviderHandler struct {
	usecase usecase.IProviderUseCase
}

func NewProviderHandler(uc usecase.IProviderUseCase) *ProviderHandler {
	return &ProviderHandler{usecase: uc}
}

func (h *ProviderHandler) Register(c *gin.Context) {
	var payload request.RegisterProviderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidProviderPayload.HTTPStatus, errInvalidProviderPayload.ToHTTPError())
		return
	}

	provider, err := h.usecase.Register(c.Request.Context(), payload.ToCommand())
	if err != nil {
		appErr := mapProviderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromProvider(provider))
}

func (h *ProviderHandler) RegisterClient(c *gin.Context) {
	var payload request.RegisterClientRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidClientPayload.HTTPStatus, errInvalidClientPayload.ToHTTPError())
		return
	}

	client, err := h.usecase.RegisterClient(c.Request.Context(), payload.ToCommand())
	if err != nil {
		appErr := mapProviderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromClient(client))
}

func (h *ProviderHandler) GetProvider(c *gin.Context) {
	provider, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapProviderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromProvider(provider))
}

// SearchProviders lists approved providers ordered by distance from the
// optional lat/lon query parameters. Referred clients only see their
// referring provider.
func (h *ProviderHandler) SearchProviders(c *gin.Context) {
	query := usecase.SearchProvidersQuery{
		ClientID:  c.Query("client_id"),
		OriginLat: parseCoordinate(c.Query("lat")),
		OriginLon: parseCoordinate(c.Query("lon")),
	}

	results, err := h.usecase.Search(c.Request.Context(), query)
	if err != nil {
		appErr := mapProviderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromProviderDistances(results))
}

func (h *ProviderHandler) UpdateSettings(c *gin.Context) {
	var payload request.ProviderSettingsRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidProviderPayload.HTTPStatus, errInvalidProviderPayload.ToHTTPError())
		return
	}

	provider, err := h.usecase.UpdateSettings(c.Request.Context(), c.Param("id"), payload.ToSettings())
	if err != nil {
		appErr := mapProviderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromProvider(provider))
}

func (h *ProviderHandler) Withdraw(c *gin.Context) {
	tx, err := h.usecase.Withdraw(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapProviderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromTransaction(tx))
}

func (h *ProviderHandler) ListTransactions(c *gin.Context) {
	txs, err := h.usecase.ListTransactions(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapProviderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromTransactions(txs))
}

func parseCoordinate(raw string) *float64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

func mapProviderError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidProviderInput), errors.Is(err, usecase.ErrInvalidReferralCode):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrProviderNotFound):
		return pkg.NewDomainErrorSimple("PROVIDER_NOT_FOUND", "Provider not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrClientNotFound):
		return pkg.NewDomainErrorSimple("CLIENT_NOT_FOUND", "Client not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrMissingPixKey):
		return pkg.NewDomainErrorSimple("MISSING_PIX_KEY", "Provider has no pix key registered", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrBalanceBelowMinimum):
		return pkg.NewDomainErrorSimple("BALANCE_BELOW_MINIMUM", "Wallet balance below withdrawal minimum", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrWalletBalanceConflict):
		return pkg.NewDomainErrorSimple("WALLET_CONFLICT", "Wallet balance changed, try again", http.StatusConflict)
	case errors.Is(err, usecase.ErrPayoutDispatchRejected):
		return pkg.NewDomainErrorSimple("PAYOUT_REJECTED", "Payout dispatch rejected", http.StatusBadGateway)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
