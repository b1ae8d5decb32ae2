package routes

import (
	"log"
	"os"
	"strconv"

	_ "limpflix/docs" // This will be auto-generated
	"limpflix/internal/adapter/http/handlers"
	repository2 "limpflix/internal/adapter/persistence/repository"
	"limpflix/internal/infrastructure/database"
	"limpflix/internal/infrastructure/payments"
	"limpflix/internal/infrastructure/realtime"
	"limpflix/internal/usecase"
	"limpflix/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	ddb := database.ConnectDynamoDB()

	providerRepo := repository2.NewProviderDynamoRepository(ddb)
	clientRepo := repository2.NewClientDynamoRepository(ddb)
	convRepo := repository2.NewConversationDynamoRepository(ddb)
	quoteRepo := repository2.NewQuoteDynamoRepository(ddb)
	bookingRepo := repository2.NewBookingDynamoRepository(ddb)
	txRepo := repository2.NewTransactionDynamoRepository(ddb)

	hub := realtime.NewHub()

	accessToken := os.Getenv("MERCADOPAGO_ACCESS_TOKEN")

	var checkoutGateway interfaces.ICheckoutGateway
	mpCheckout, err := payments.NewMercadoPagoCheckoutGateway(accessToken)
	if err != nil {
		log.Printf("Mercado Pago checkout gateway not configured: %v", err)
	} else {
		checkoutGateway = mpCheckout
	}
	payoutGateway := payments.NewPixPayoutGateway(accessToken)

	publicBaseURL := os.Getenv("PUBLIC_BASE_URL")
	if publicBaseURL == "" {
		publicBaseURL = "http://localhost:" + strconv.Itoa(PORT)
	}

	providerUseCase := usecase.NewProviderUseCase(providerRepo, clientRepo, txRepo, payoutGateway)
	chatUseCase := usecase.NewChatUseCase(convRepo, quoteRepo, providerRepo, hub)
	checkoutUseCase := usecase.NewCheckoutUseCase(providerRepo, checkoutGateway, publicBaseURL)
	settlementUseCase := usecase.NewSettlementUseCase(providerRepo, clientRepo, bookingRepo, convRepo, txRepo, payoutGateway, hub)
	bookingUseCase := usecase.NewBookingUseCase(bookingRepo, providerRepo, hub)

	providerHandler := handlers.NewProviderHandler(providerUseCase)
	chatHandler := handlers.NewChatHandler(chatUseCase)
	paymentHandler := handlers.NewPaymentHandler(checkoutUseCase, settlementUseCase)
	bookingHandler := handlers.NewBookingHandler(bookingUseCase)
	wsHandler := handlers.NewWSHandler(hub)

	// Rotas publicas
	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addMarketplaceRoutes(v1, providerHandler, chatHandler, paymentHandler, bookingHandler, wsHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
