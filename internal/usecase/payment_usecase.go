package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"aulaplus/internal/domain/entities"
	"aulaplus/internal/usecase/interfaces"
)

var (
	ErrPaymentNotFound                = errors.New("payment not found")
	ErrInvalidUserID                  = errors.New("invalid user_id")
	ErrInvalidCourseID                = errors.New("invalid course_id")
	ErrInvalidMPPayload               = errors.New("invalid mercado pago payload")
	ErrPaymentGatewayBadRequest       = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized     = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayInvalidUsers     = errors.New("payment gateway invalid users involved")
	ErrPaymentGatewayCustomerNotFound = errors.New("payment gateway customer not found")
)

// IPaymentUseCase encapsulates checkout and payment lookups.
//
// CreateCheckout creates the provider payment for a (user, course, months)
// purchase and stamps the composite external_reference the webhook later
// parses to reconcile the notification.

type IPaymentUseCase interface {
	CreateCheckout(ctx context.Context, userID, courseID string, months int, mpPayload json.RawMessage) (entities.Payment, error)
	GetByID(ctx context.Context, id string) (entities.Payment, error)
	ListByUserID(ctx context.Context, userID string) ([]entities.Payment, error)
}

type PaymentUseCase struct {
	repo    interfaces.IPaymentRepository
	gateway interfaces.IPaymentGateway
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(repo interfaces.IPaymentRepository, gateway interfaces.IPaymentGateway) *PaymentUseCase {
	return &PaymentUseCase{repo: repo, gateway: gateway}
}

func (u *PaymentUseCase) CreateCheckout(ctx context.Context, userID, courseID string, months int, mpPayload json.RawMessage) (entities.Payment, error) {
	log.Printf("[checkout][usecase] start user_id=%q course_id=%q months=%d payload_len=%d", userID, courseID, months, len(mpPayload))
	mockMode := isPaymentGatewayMockEnabled()
	userID = strings.TrimSpace(userID)
	courseID = strings.TrimSpace(courseID)
	if userID == "" {
		log.Printf("[checkout][usecase] invalid user_id (empty)")
		return entities.Payment{}, ErrInvalidUserID
	}
	if courseID == "" {
		log.Printf("[checkout][usecase] invalid course_id (empty) user_id=%s", userID)
		return entities.Payment{}, ErrInvalidCourseID
	}
	if len(mpPayload) == 0 || !json.Valid(mpPayload) {
		if mockMode {
			mpPayload = json.RawMessage("{}")
		} else {
			log.Printf("[checkout][usecase] invalid payload user_id=%s course_id=%s", userID, courseID)
			return entities.Payment{}, ErrInvalidMPPayload
		}
	}
	if u.gateway == nil {
		log.Printf("[checkout][usecase] gateway not configured user_id=%s course_id=%s", userID, courseID)
		return entities.Payment{}, errors.New("payment gateway not configured")
	}

	ref := entities.NewCourseReference(userID, courseID, months)

	var reqMap map[string]any
	if err := json.Unmarshal(mpPayload, &reqMap); err == nil {
		if !mockMode && !hasNonEmptyString(reqMap, "payment_method_id") {
			log.Printf("[checkout][usecase] missing payment_method_id user_id=%s course_id=%s", userID, courseID)
			return entities.Payment{}, ErrInvalidMPPayload
		}
		if !mockMode {
			ensurePayerDefaults(reqMap)
			if !hasPayer(reqMap) {
				log.Printf("[checkout][usecase] missing/invalid payer user_id=%s course_id=%s", userID, courseID)
				return entities.Payment{}, ErrInvalidMPPayload
			}
		}

		// external_reference is how webhook notifications find their way back
		// to the (user, course) pair.
		reqMap["external_reference"] = ref.String()
		if _, ok := reqMap["description"]; !ok {
			reqMap["description"] = fmt.Sprintf("Course %s access (%d months)", courseID, ref.Months)
		}
		if b, err := json.Marshal(reqMap); err == nil {
			mpPayload = b
		}
	} else {
		log.Printf("[checkout][usecase] payload unmarshal failed user_id=%s course_id=%s err=%v", userID, courseID, err)
	}

	log.Printf("[checkout][usecase] calling payment gateway user_id=%s course_id=%s external_reference=%s", userID, courseID, ref.String())
	pp, err := u.gateway.CreatePayment(ctx, mpPayload)
	if err != nil {
		log.Printf("[checkout][usecase] payment gateway failed user_id=%s course_id=%s err=%v", userID, courseID, err)
		if isGatewayCustomerNotFound(err) {
			return entities.Payment{}, ErrPaymentGatewayCustomerNotFound
		}
		if isGatewayInvalidUsers(err) {
			return entities.Payment{}, ErrPaymentGatewayInvalidUsers
		}
		if isGatewayUnauthorized(err) {
			return entities.Payment{}, ErrPaymentGatewayUnauthorized
		}
		if isGatewayBadRequest(err) {
			return entities.Payment{}, ErrPaymentGatewayBadRequest
		}
		return entities.Payment{}, err
	}
	log.Printf("[checkout][usecase] payment gateway success user_id=%s course_id=%s provider_payment_id=%s provider_status=%s", userID, courseID, pp.ID, pp.Status)

	p := entities.Payment{
		ID:                 pp.ID,
		UserID:             userID,
		CourseID:           courseID,
		Amount:             pp.TransactionAmount,
		Currency:           pp.Currency,
		Status:             entities.MapProviderStatus(pp.Status),
		Method:             pp.PaymentMethod,
		Months:             ref.Months,
		CreatedAt:          timeNowUTC(),
		ProviderPayloadRaw: pp.Raw,
		ProviderPayload:    pp.Metadata,
	}
	applyExtraPackMetadata(&p, pp.Metadata)

	created, err := u.repo.Create(ctx, p)
	if err != nil {
		log.Printf("[checkout][usecase] payment repository create failed user_id=%s course_id=%s payment_id=%s err=%v", userID, courseID, p.ID, err)
		return entities.Payment{}, err
	}
	log.Printf("[checkout][usecase] success user_id=%s course_id=%s payment_id=%s status=%s", userID, courseID, created.ID, created.Status)
	return created, nil
}

func (u *PaymentUseCase) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Payment{}, errors.New("invalid payment id")
	}

	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Payment{}, err
	}
	if p.ID == "" {
		return entities.Payment{}, ErrPaymentNotFound
	}
	return p, nil
}

func (u *PaymentUseCase) ListByUserID(ctx context.Context, userID string) ([]entities.Payment, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	return u.repo.ListByUserID(ctx, userID)
}

func timeNowUTC() time.Time { return time.Now().UTC() }

func hasNonEmptyString(m map[string]any, key string) bool {
	v, ok := m[key]
	if !ok {
		return false
	}
	s, ok := v.(string)
	if !ok {
		return false
	}
	return strings.TrimSpace(s) != ""
}

func hasPayer(m map[string]any) bool {
	v, ok := m["payer"]
	if !ok {
		return false
	}
	payer, ok := v.(map[string]any)
	if !ok {
		return false
	}
	return hasNonEmptyString(payer, "email") || hasPayerID(payer)
}

func hasPayerID(payer map[string]any) bool {
	v, ok := payer["id"]
	if !ok || v == nil {
		return false
	}
	s := strings.TrimSpace(fmt.Sprintf("%v", v))
	return s != "" && s != "<nil>"
}

func ensurePayerDefaults(m map[string]any) {
	v, ok := m["payer"]
	if !ok || v == nil {
		v = map[string]any{}
		m["payer"] = v
	}
	payer, ok := v.(map[string]any)
	if !ok {
		return
	}

	if _, ok := payer["type"]; !ok {
		payer["type"] = "customer"
	}

	// In sandbox, either payer.id or payer.email may be used.
	// Fill email only when both are missing.
	if !hasPayerID(payer) && !hasNonEmptyString(payer, "email") {
		if email := strings.TrimSpace(os.Getenv("MERCADOPAGO_TEST_PAYER_EMAIL")); email != "" {
			payer["email"] = email
		} else if strings.HasPrefix(strings.TrimSpace(os.Getenv("MERCADOPAGO_ACCESS_TOKEN")), "TEST-") {
			// Sandbox-safe fallback recommended by Mercado Pago examples.
			payer["email"] = "test_user_cl@testuser.com"
		}
	}
}

func isPaymentGatewayMockEnabled() bool {
	for _, key := range []string{"PAYMENT_GATEWAY_MOCK", "MERCADOPAGO_MOCK"} {
		v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
		switch v {
		case "1", "true", "yes", "on", "mock":
			return true
		}
	}
	return false
}

func isGatewayBadRequest(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"bad_request\"") || strings.Contains(msg, "\"status\":400")
}

func isGatewayUnauthorized(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"unauthorized\"") || strings.Contains(msg, "\"status\":401")
}

func isGatewayInvalidUsers(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "invalid users involved") || strings.Contains(msg, "\"code\":2034")
}

func isGatewayCustomerNotFound(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "customer not found") || strings.Contains(msg, "\"code\":2002")
}
