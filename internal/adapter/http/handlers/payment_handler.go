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

var errInvalidCheckoutPayload = pkg.NewDomainErrorSimple("INVALID_CHECKOUT_INPUT", "Invalid checkout payload", http.StatusBadRequest)

// PaymentHandler handles hosted-checkout creation and the success-redirect
// confirmation that triggers settlement.

type PaymentHandler struct {
	checkout   usecase.ICheckoutUseCase
	settlement usecase.ISettlementUseCase
}

func NewPaymentHandler(checkout usecase.ICheckoutUseCase, settlement usecase.ISettlementUseCase) *PaymentHandler {
	return &PaymentHandler{checkout: checkout, settlement: settlement}
}

func (h *PaymentHandler) CreateCheckout(c *gin.Context) {
	var payload request.CheckoutRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidCheckoutPayload.HTTPStatus, errInvalidCheckoutPayload.ToHTTPError())
		return
	}

	checkoutURL, err := h.checkout.BuildCheckout(c.Request.Context(), payload.ToCommand())
	if err != nil {
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.CheckoutResponse{CheckoutURL: checkoutURL})
}

// ConfirmPayment is the success-redirect target. The query string carries the
// settlement metadata baked in at checkout time plus the processor's status
// parameter. Browsers can replay it; the settlement path is idempotent.
func (h *PaymentHandler) ConfirmPayment(c *gin.Context) {
	amount, err := strconv.ParseFloat(c.Query("amount"), 64)
	if err != nil {
		c.JSON(errInvalidCheckoutPayload.HTTPStatus, errInvalidCheckoutPayload.ToHTTPError())
		return
	}

	conf := usecase.PaymentConfirmation{
		Status:      c.Query("status"),
		ProviderID:  c.Query("provider_id"),
		ClientID:    c.Query("client_id"),
		QuoteID:     c.Query("quote_id"),
		ServiceName: c.Query("service_name"),
		Amount:      amount,
	}

	booking, err := h.settlement.ConfirmPayment(c.Request.Context(), conf)
	if err != nil {
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromBooking(booking))
}

func mapPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidCheckoutInput), errors.Is(err, usecase.ErrInvalidConfirmationInput):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentNotApproved):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_APPROVED", "Payment was not approved", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrProviderNotFound):
		return pkg.NewDomainErrorSimple("PROVIDER_NOT_FOUND", "Provider not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrClientNotFound):
		return pkg.NewDomainErrorSimple("CLIENT_NOT_FOUND", "Client not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrPaymentIntentFailed):
		return pkg.NewDomainError("PAYMENT_INTENT_FAILED", "Could not create the checkout preference", err, http.StatusBadGateway)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
