package handlers

import (
	"context"
	"errors"
	"net/http"

	"limpflix/internal/domain/entities"

	request "limpflix/internal/adapter/http/dto/request"
	response "limpflix/internal/adapter/http/dto/response"
	"limpflix/internal/usecase"
	"limpflix/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidBookingPayload = pkg.NewDomainErrorSimple("INVALID_BOOKING_INPUT", "Invalid booking payload", http.StatusBadRequest)

// BookingHandler exposes the booking lifecycle transitions plus listings.

type BookingHandler struct {
	usecase usecase.IBookingUseCase
}

func NewBookingHandler(uc usecase.IBookingUseCase) *BookingHandler {
	return &BookingHandler{usecase: uc}
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	booking, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapBookingError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromBooking(booking))
}

// ListBookings lists by provider_id or client_id, whichever is present.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	if providerID := c.Query("provider_id"); providerID != "" {
		list, err := h.usecase.ListByProviderID(c.Request.Context(), providerID)
		if err != nil {
			appErr := mapBookingError(err)
			c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
		c.JSON(http.StatusOK, response.FromBookings(list))
		return
	}

	clientID := c.Query("client_id")
	if clientID == "" {
		c.JSON(errInvalidBookingPayload.HTTPStatus, errInvalidBookingPayload.ToHTTPError())
		return
	}

	list, err := h.usecase.ListByClientID(c.Request.Context(), clientID)
	if err != nil {
		appErr := mapBookingError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromBookings(list))
}

func (h *BookingHandler) StartBooking(c *gin.Context) {
	h.transition(c, h.usecase.Start)
}

func (h *BookingHandler) RequestCompletion(c *gin.Context) {
	h.transition(c, h.usecase.RequestCompletion)
}

func (h *BookingHandler) ConfirmCompletion(c *gin.Context) {
	h.transition(c, h.usecase.ConfirmCompletion)
}

func (h *BookingHandler) CancelBooking(c *gin.Context) {
	h.transition(c, h.usecase.Cancel)
}

func (h *BookingHandler) ReviewBooking(c *gin.Context) {
	var payload request.ReviewRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidBookingPayload.HTTPStatus, errInvalidBookingPayload.ToHTTPError())
		return
	}

	booking, err := h.usecase.Review(c.Request.Context(), payload.ToCommand(c.Param("id")))
	if err != nil {
		appErr := mapBookingError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromBooking(booking))
}

func (h *BookingHandler) transition(
	c *gin.Context,
	apply func(ctx context.Context, bookingID, actorID string) (entities.Booking, error),
) {
	var payload request.BookingActionRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidBookingPayload.HTTPStatus, errInvalidBookingPayload.ToHTTPError())
		return
	}

	booking, err := apply(c.Request.Context(), c.Param("id"), payload.ActorID)
	if err != nil {
		appErr := mapBookingError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromBooking(booking))
}

func mapBookingError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidBookingID), errors.Is(err, usecase.ErrInvalidRating):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrBookingNotFound):
		return pkg.NewDomainErrorSimple("BOOKING_NOT_FOUND", "Booking not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrActorNotAllowed):
		return pkg.NewDomainErrorSimple("ACTOR_NOT_ALLOWED", "This party may not perform the transition", http.StatusForbidden)
	case errors.Is(err, usecase.ErrInvalidBookingTransition):
		return pkg.NewDomainErrorSimple("INVALID_TRANSITION", "Booking cannot move to the requested status", http.StatusConflict)
	case errors.Is(err, usecase.ErrBookingNotCompleted):
		return pkg.NewDomainErrorSimple("BOOKING_NOT_COMPLETED", "Booking is not completed yet", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrBookingAlreadyReviewed):
		return pkg.NewDomainErrorSimple("ALREADY_REVIEWED", "Booking already reviewed", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
