package routes

import (
	"log"
	"os"
	"strconv"

	_ "aulaplus/docs" // generated swagger docs
	"aulaplus/internal/adapter/http/handlers"
	repository2 "aulaplus/internal/adapter/persistence/repository"
	"aulaplus/internal/infrastructure/database"
	"aulaplus/internal/infrastructure/payments"
	"aulaplus/internal/usecase"
	"aulaplus/internal/usecase/interfaces"

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

	paymentRepo := repository2.NewPaymentDynamoRepository(ddb)
	enrollmentRepo := repository2.NewEnrollmentDynamoRepository(ddb)

	var paymentGateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(os.Getenv("MERCADOPAGO_ACCESS_TOKEN"))
	if err != nil {
		log.Printf("Mercado Pago gateway not configured: %v", err)
	} else {
		paymentGateway = mpGateway
	}

	webhookUseCase := usecase.NewWebhookUseCase(paymentRepo, enrollmentRepo, paymentGateway)
	paymentUseCase := usecase.NewPaymentUseCase(paymentRepo, paymentGateway)
	enrollmentUseCase := usecase.NewEnrollmentUseCase(enrollmentRepo)

	webhookHandler := handlers.NewWebhookHandler(webhookUseCase)
	paymentHandler := handlers.NewPaymentHandler(paymentUseCase)
	enrollmentHandler := handlers.NewEnrollmentHandler(enrollmentUseCase)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addBillingRoutes(v1, webhookHandler, paymentHandler, enrollmentHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
