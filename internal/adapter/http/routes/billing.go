package routes

import (
	"aulaplus/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathPayments    = "/payments"
	PathUsers       = "/users"
	PathEnrollments = "/enrollments"
	PathWebhooks    = "/webhooks"
)

func addBillingRoutes(rg *gin.RouterGroup, webhookHandler *handlers.WebhookHandler, paymentHandler *handlers.PaymentHandler, enrollmentHandler *handlers.EnrollmentHandler) {
	webhooks := rg.Group(PathWebhooks)
	{
		// Mercado Pago notification endpoint; the GET answers the
		// provider's endpoint verification.
		webhooks.POST("/mercadopago", webhookHandler.HandleMercadoPago)
		webhooks.GET("/mercadopago", webhookHandler.AckMercadoPago)
	}

	payments := rg.Group(PathPayments)
	{
		payments.POST("/:user_id/:course_id", paymentHandler.CreateCheckout)
		payments.GET("/:payment_id", paymentHandler.GetPaymentByID)
	}

	users := rg.Group(PathUsers)
	{
		users.GET("/:user_id/payments", paymentHandler.ListPaymentsByUser)
	}

	enrollments := rg.Group(PathEnrollments)
	{
		enrollments.GET("/:user_id/:course_id", enrollmentHandler.GetEnrollment)
	}
}
