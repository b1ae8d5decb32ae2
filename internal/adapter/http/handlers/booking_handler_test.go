package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"limpflix/internal/adapter/http/handlers/mocks"
	"limpflix/internal/domain/entities"
	"limpflix/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestBookingHandler_ListBookings(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("neither filter", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBookingUseCase(ctrl)
		h := NewBookingHandler(uc)

		r := gin.New()
		r.GET("/v1/bookings", h.ListBookings)

		req := httptest.NewRequest(http.MethodGet, "/v1/bookings", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("by provider", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBookingUseCase(ctrl)
		h := NewBookingHandler(uc)

		r := gin.New()
		r.GET("/v1/bookings", h.ListBookings)

		uc.EXPECT().ListByProviderID(gomock.Any(), "prov-1").Return([]entities.Booking{{ID: "bk-1"}}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/bookings?provider_id=prov-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("by client", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBookingUseCase(ctrl)
		h := NewBookingHandler(uc)

		r := gin.New()
		r.GET("/v1/bookings", h.ListBookings)

		uc.EXPECT().ListByClientID(gomock.Any(), "cli-1").Return(nil, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/bookings?client_id=cli-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestBookingHandler_StartBooking(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("missing actor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBookingUseCase(ctrl)
		h := NewBookingHandler(uc)

		r := gin.New()
		r.PATCH("/v1/bookings/:id/start", h.StartBooking)

		req := httptest.NewRequest(http.MethodPatch, "/v1/bookings/bk-1/start", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("invalid transition maps to 409", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBookingUseCase(ctrl)
		h := NewBookingHandler(uc)

		r := gin.New()
		r.PATCH("/v1/bookings/:id/start", h.StartBooking)

		uc.EXPECT().Start(gomock.Any(), "bk-1", "prov-1").Return(entities.Booking{}, usecase.ErrInvalidBookingTransition)

		req := httptest.NewRequest(http.MethodPatch, "/v1/bookings/bk-1/start", bytes.NewBufferString(`{"actor_id":"prov-1"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("wrong actor maps to 403", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBookingUseCase(ctrl)
		h := NewBookingHandler(uc)

		r := gin.New()
		r.PATCH("/v1/bookings/:id/start", h.StartBooking)

		uc.EXPECT().Start(gomock.Any(), "bk-1", "cli-1").Return(entities.Booking{}, usecase.ErrActorNotAllowed)

		req := httptest.NewRequest(http.MethodPatch, "/v1/bookings/bk-1/start", bytes.NewBufferString(`{"actor_id":"cli-1"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBookingUseCase(ctrl)
		h := NewBookingHandler(uc)

		r := gin.New()
		r.PATCH("/v1/bookings/:id/start", h.StartBooking)

		uc.EXPECT().Start(gomock.Any(), "bk-1", "prov-1").Return(entities.Booking{ID: "bk-1", Status: entities.BookingStatusInProgress}, nil)

		req := httptest.NewRequest(http.MethodPatch, "/v1/bookings/bk-1/start", bytes.NewBufferString(`{"actor_id":"prov-1"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestBookingHandler_ReviewBooking(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("rating out of range fails binding", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBookingUseCase(ctrl)
		h := NewBookingHandler(uc)

		r := gin.New()
		r.POST("/v1/bookings/:id/review", h.ReviewBooking)

		req := httptest.NewRequest(http.MethodPost, "/v1/bookings/bk-1/review", bytes.NewBufferString(`{"client_id":"cli-1","rating":6}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("already reviewed maps to 409", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBookingUseCase(ctrl)
		h := NewBookingHandler(uc)

		r := gin.New()
		r.POST("/v1/bookings/:id/review", h.ReviewBooking)

		uc.EXPECT().Review(gomock.Any(), usecase.ReviewCommand{BookingID: "bk-1", ClientID: "cli-1", Rating: 5}).
			Return(entities.Booking{}, usecase.ErrBookingAlreadyReviewed)

		req := httptest.NewRequest(http.MethodPost, "/v1/bookings/bk-1/review", bytes.NewBufferString(`{"client_id":"cli-1","rating":5}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBookingUseCase(ctrl)
		h := NewBookingHandler(uc)

		r := gin.New()
		r.POST("/v1/bookings/:id/review", h.ReviewBooking)

		uc.EXPECT().Review(gomock.Any(), gomock.Any()).Return(entities.Booking{ID: "bk-1", Rating: 5, Review: "Otimo servico"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/bookings/bk-1/review", bytes.NewBufferString(`{"client_id":"cli-1","rating":5,"review":"Otimo servico"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}
