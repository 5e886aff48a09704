package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"aulaplus/internal/adapter/http/dto/request"
	"aulaplus/internal/adapter/http/dto/response"
	"aulaplus/internal/usecase"
	"aulaplus/pkg"

	"github.com/gin-gonic/gin"
)

// PaymentHandler handles checkout and payment lookups.

type PaymentHandler struct {
	usecase usecase.IPaymentUseCase
}

func NewPaymentHandler(uc usecase.IPaymentUseCase) *PaymentHandler {
	return &PaymentHandler{usecase: uc}
}

// CreateCheckout creates a provider payment for a (user, course) purchase.
func (h *PaymentHandler) CreateCheckout(c *gin.Context) {
	userID := c.Param("user_id")
	courseID := c.Param("course_id")
	log.Printf("[checkout][handler] create start user_id=%s course_id=%s", userID, courseID)

	req, err := readCheckoutRequest(c)
	if err != nil {
		log.Printf("[checkout][handler] invalid payload user_id=%s course_id=%s err=%v", userID, courseID, err)
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	created, err := h.usecase.CreateCheckout(c.Request.Context(), userID, courseID, req.Months, req.MPPayload)
	if err != nil {
		log.Printf("[checkout][handler] create failed user_id=%s course_id=%s err=%v", userID, courseID, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[checkout][handler] create success user_id=%s course_id=%s payment_id=%s status=%s", userID, courseID, created.ID, created.Status)

	c.JSON(http.StatusOK, response.FromPayment(created))
}

// GetPaymentByID returns a single payment record.
func (h *PaymentHandler) GetPaymentByID(c *gin.Context) {
	paymentID := c.Param("payment_id")

	p, err := h.usecase.GetByID(c.Request.Context(), paymentID)
	if err != nil {
		log.Printf("[payment][handler] get failed payment_id=%s err=%v", paymentID, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPayment(p))
}

// ListPaymentsByUser returns all payment records of one user.
func (h *PaymentHandler) ListPaymentsByUser(c *gin.Context) {
	userID := c.Param("user_id")

	payments, err := h.usecase.ListByUserID(c.Request.Context(), userID)
	if err != nil {
		log.Printf("[payment][handler] list failed user_id=%s err=%v", userID, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPayments(payments))
}

func readCheckoutRequest(c *gin.Context) (request.CheckoutRequest, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return request.CheckoutRequest{}, err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return request.CheckoutRequest{MPPayload: json.RawMessage("{}")}, nil
	}
	if !json.Valid(raw) {
		return request.CheckoutRequest{}, errors.New("request body is not valid json")
	}

	var req request.CheckoutRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return request.CheckoutRequest{}, err
	}

	// Callers may send the Mercado Pago payload directly instead of wrapping
	// it under mp_payload.
	if len(req.MPPayload) == 0 || strings.TrimSpace(string(req.MPPayload)) == "null" {
		req.MPPayload = raw
	}
	return req, nil
}

func mapPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidUserID), errors.Is(err, usecase.ErrInvalidCourseID), errors.Is(err, usecase.ErrInvalidMPPayload), errors.Is(err, usecase.ErrPaymentGatewayBadRequest):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayCustomerNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_CUSTOMER_NOT_FOUND", "Payer not found for this Mercado Pago test context", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayInvalidUsers):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_INVALID_USERS", "Invalid users involved between seller token and payer test user", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
