package handlers

import (
	"errors"
	"log"
	"net/http"

	"aulaplus/internal/adapter/http/dto/request"
	"aulaplus/internal/adapter/http/dto/response"
	"aulaplus/internal/domain/entities"
	"aulaplus/internal/usecase"
	"aulaplus/pkg"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WebhookHandler handles Mercado Pago payment notifications.
//
// Response policy: anything the provider should NOT redeliver (unusable
// payload, unknown payment, duplicate) is acknowledged with 200 so the
// provider stops retrying; transient failures (provider or store
// unavailability) answer 5xx so provider-side redelivery retries the
// delivery.

type WebhookHandler struct {
	usecase usecase.IWebhookUseCase
}

func NewWebhookHandler(uc usecase.IWebhookUseCase) *WebhookHandler {
	return &WebhookHandler{usecase: uc}
}

// HandleMercadoPago processes a POST notification delivery.
func (h *WebhookHandler) HandleMercadoPago(c *gin.Context) {
	deliveryID := uuid.NewString()

	var notification request.WebhookNotificationRequest
	if err := c.ShouldBindJSON(&notification); err != nil {
		log.Printf("[webhook][handler] unreadable envelope delivery_id=%s err=%v", deliveryID, err)
		c.JSON(http.StatusOK, response.WebhookAckResponse{Result: response.WebhookResultIgnored, Code: "INVALID_ENVELOPE"})
		return
	}

	event := notification.ResolveEvent()
	paymentID := notification.ResolvePaymentID()
	log.Printf("[webhook][handler] delivery start delivery_id=%s event=%q provider_payment_id=%q", deliveryID, event, paymentID)

	if !notification.IsPaymentEvent() {
		log.Printf("[webhook][handler] non-payment event ignored delivery_id=%s event=%q", deliveryID, event)
		c.JSON(http.StatusOK, response.WebhookAckResponse{Result: response.WebhookResultIgnored, Code: "NOT_A_PAYMENT_EVENT"})
		return
	}

	res, err := h.usecase.Reconcile(c.Request.Context(), paymentID)
	if err != nil {
		h.respondError(c, deliveryID, paymentID, err)
		return
	}

	if res.Duplicate {
		log.Printf("[webhook][handler] duplicate delivery acknowledged delivery_id=%s provider_payment_id=%s", deliveryID, res.Payment.ID)
		c.JSON(http.StatusOK, response.WebhookAckResponse{Result: response.WebhookResultDuplicate, PaymentID: res.Payment.ID})
		return
	}

	log.Printf("[webhook][handler] delivery processed delivery_id=%s provider_payment_id=%s status=%s enrolled=%t", deliveryID, res.Payment.ID, res.Payment.Status, res.Enrollment != nil)
	c.JSON(http.StatusOK, response.WebhookAckResponse{Result: response.WebhookResultProcessed, PaymentID: res.Payment.ID})
}

// AckMercadoPago answers the provider's bare GET health check.
func (h *WebhookHandler) AckMercadoPago(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func (h *WebhookHandler) respondError(c *gin.Context, deliveryID, paymentID string, err error) {
	log.Printf("[webhook][handler] delivery failed delivery_id=%s provider_payment_id=%q err=%v", deliveryID, paymentID, err)

	// Structurally unusable payloads are acknowledged so the provider does
	// not redeliver forever; operators replay manually from the stored id.
	switch {
	case errors.Is(err, usecase.ErrMissingPaymentID):
		c.JSON(http.StatusOK, response.WebhookAckResponse{Result: response.WebhookResultIgnored, Code: "MISSING_PAYMENT_ID"})
	case errors.Is(err, entities.ErrMissingCourseReference):
		c.JSON(http.StatusOK, response.WebhookAckResponse{Result: response.WebhookResultIgnored, Code: "MISSING_METADATA", PaymentID: paymentID})
	case errors.Is(err, entities.ErrMalformedCourseReference):
		c.JSON(http.StatusOK, response.WebhookAckResponse{Result: response.WebhookResultIgnored, Code: "MALFORMED_REFERENCE", PaymentID: paymentID})
	case errors.Is(err, usecase.ErrProviderPaymentNotFound):
		c.JSON(http.StatusOK, response.WebhookAckResponse{Result: response.WebhookResultIgnored, Code: "PROVIDER_PAYMENT_NOT_FOUND", PaymentID: paymentID})
	case errors.Is(err, usecase.ErrProviderUnavailable):
		appErr := pkg.NewDomainError("PROVIDER_UNAVAILABLE", "Payment provider unavailable", err, http.StatusBadGateway)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
	case errors.Is(err, usecase.ErrPaymentStoreWrite), errors.Is(err, usecase.ErrEnrollmentStoreWrite):
		appErr := pkg.NewDomainError("STORE_WRITE_FAILED", "Persistence temporarily unavailable", err, http.StatusInternalServerError)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
	default:
		appErr := pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
	}
}
