package routes

import (
	"limpflix/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathProviders     = "/providers"
	PathClients       = "/clients"
	PathQuotes        = "/quotes"
	PathConversations = "/conversations"
	PathPayments      = "/payments"
	PathBookings      = "/bookings"
)

func addMarketplaceRoutes(
	rg *gin.RouterGroup,
	providerHandler *handlers.ProviderHandler,
	chatHandler *handlers.ChatHandler,
	paymentHandler *handlers.PaymentHandler,
	bookingHandler *handlers.BookingHandler,
	wsHandler *handlers.WSHandler,
) {
	providers := rg.Group(PathProviders)
	{
		providers.POST("", providerHandler.Register)
		providers.GET("", providerHandler.SearchProviders)
		providers.GET("/:id", providerHandler.GetProvider)
		providers.PATCH("/:id/settings", providerHandler.UpdateSettings)
		providers.POST("/:id/withdraw", providerHandler.Withdraw)
		providers.GET("/:id/transactions", providerHandler.ListTransactions)
	}

	clients := rg.Group(PathClients)
	{
		clients.POST("", providerHandler.RegisterClient)
	}

	quotes := rg.Group(PathQuotes)
	{
		quotes.POST("", chatHandler.CreateQuoteRequest)
	}

	conversations := rg.Group(PathConversations)
	{
		conversations.GET("", chatHandler.ListConversations)
		conversations.GET("/:id/messages", chatHandler.ListMessages)
		conversations.POST("/:id/messages", chatHandler.SendMessage)
		conversations.POST("/:id/offers", chatHandler.SendQuoteOffer)
		conversations.POST("/:id/read", chatHandler.MarkRead)
	}

	payments := rg.Group(PathPayments)
	{
		payments.POST("/checkout", paymentHandler.CreateCheckout)
		// Success-redirect target; the processor sends the payer here.
		payments.GET("/confirm", paymentHandler.ConfirmPayment)
	}

	bookings := rg.Group(PathBookings)
	{
		bookings.GET("", bookingHandler.ListBookings)
		bookings.GET("/:id", bookingHandler.GetBooking)
		bookings.PATCH("/:id/start", bookingHandler.StartBooking)
		bookings.PATCH("/:id/request-completion", bookingHandler.RequestCompletion)
		bookings.PATCH("/:id/confirm-completion", bookingHandler.ConfirmCompletion)
		bookings.PATCH("/:id/cancel", bookingHandler.CancelBooking)
		bookings.POST("/:id/review", bookingHandler.ReviewBooking)
	}

	rg.GET("/ws", wsHandler.Connect)
}
