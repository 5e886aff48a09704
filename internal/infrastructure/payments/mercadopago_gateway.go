package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"aulaplus/internal/domain/entities"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")
var ErrInvalidProviderPaymentID = errors.New("invalid provider payment id")

const defaultProviderTimeout = 10 * time.Second

type MercadoPagoGateway struct {
	client   payment.Client
	timeout  time.Duration
	mockMode bool
}

func NewMercadoPagoGateway(accessToken string) (*MercadoPagoGateway, error) {
	timeout := providerTimeoutFromEnv()

	if isPaymentGatewayMockEnabled() {
		log.Printf("[payment][gateway] mock mode enabled")
		return &MercadoPagoGateway{mockMode: true, timeout: timeout}, nil
	}

	if accessToken == "" {
		log.Printf("[payment][gateway] missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		log.Printf("[payment][gateway] failed creating sdk config err=%v", err)
		return nil, err
	}
	log.Printf("[payment][gateway] Mercado Pago client initialized timeout=%s", timeout)

	return &MercadoPagoGateway{client: payment.NewClient(cfg), timeout: timeout}, nil
}

// GetPaymentByID fetches the authoritative payment object for a webhook
// notification. The call is bounded by the configured timeout; on expiry the
// invocation fails and provider-side redelivery is the retry mechanism.
func (g *MercadoPagoGateway) GetPaymentByID(ctx context.Context, providerPaymentID string) (entities.ProviderPayment, error) {
	if g != nil && g.mockMode {
		return g.mockPayment(providerPaymentID), nil
	}

	if g == nil || g.client == nil {
		log.Printf("[payment][gateway] gateway not configured")
		return entities.ProviderPayment{}, ErrMercadoPagoGatewayNotConfigured
	}

	id, err := strconv.Atoi(strings.TrimSpace(providerPaymentID))
	if err != nil {
		log.Printf("[payment][gateway] non-numeric payment id provider_payment_id=%q", providerPaymentID)
		return entities.ProviderPayment{}, fmt.Errorf("%w: %q", ErrInvalidProviderPaymentID, providerPaymentID)
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	log.Printf("[payment][gateway] get start provider_payment_id=%d", id)
	resp, err := g.client.Get(ctx, id)
	if err != nil {
		log.Printf("[payment][gateway] sdk get failed provider_payment_id=%d err=%v", id, err)
		return entities.ProviderPayment{}, err
	}
	log.Printf("[payment][gateway] get success provider_payment_id=%d provider_status=%s", resp.ID, resp.Status)

	return toProviderPayment(resp)
}

func (g *MercadoPagoGateway) CreatePayment(ctx context.Context, requestPayload json.RawMessage) (entities.ProviderPayment, error) {
	if g != nil && g.mockMode {
		log.Printf("[payment][gateway] mock create start payload_len=%d", len(requestPayload))
		return g.mockCreatedPayment(requestPayload), nil
	}

	if g == nil || g.client == nil {
		log.Printf("[payment][gateway] gateway not configured")
		return entities.ProviderPayment{}, ErrMercadoPagoGatewayNotConfigured
	}
	log.Printf("[payment][gateway] create start payload_len=%d", len(requestPayload))

	var req payment.Request
	if err := json.Unmarshal(requestPayload, &req); err != nil {
		log.Printf("[payment][gateway] payload unmarshal failed err=%v", err)
		return entities.ProviderPayment{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.Create(ctx, req)
	if err != nil {
		log.Printf("[payment][gateway] sdk create failed err=%v", err)
		return entities.ProviderPayment{}, err
	}
	log.Printf("[payment][gateway] create success provider_payment_id=%d provider_status=%s", resp.ID, resp.Status)

	return toProviderPayment(resp)
}

func toProviderPayment(resp *payment.Response) (entities.ProviderPayment, error) {
	raw, err := json.Marshal(resp)
	if err != nil {
		log.Printf("[payment][gateway] response marshal failed err=%v", err)
		return entities.ProviderPayment{}, err
	}

	return entities.ProviderPayment{
		ID:                fmt.Sprintf("%d", resp.ID),
		Status:            resp.Status,
		TransactionAmount: resp.TransactionAmount,
		Currency:          resp.CurrencyID,
		PaymentMethod:     resp.PaymentMethodID,
		ExternalReference: resp.ExternalReference,
		Metadata:          resp.Metadata,
		Raw:               raw,
	}, nil
}

func (g *MercadoPagoGateway) mockPayment(providerPaymentID string) entities.ProviderPayment {
	ref := getenvDefault("MERCADOPAGO_MOCK_EXTERNAL_REFERENCE", "mock-user|mock-course|1")
	pp := entities.ProviderPayment{
		ID:                strings.TrimSpace(providerPaymentID),
		Status:            "approved",
		TransactionAmount: 10000,
		Currency:          "CLP",
		PaymentMethod:     "webpay",
		ExternalReference: ref,
	}
	if b, err := json.Marshal(map[string]any{
		"id":                 pp.ID,
		"status":             pp.Status,
		"status_detail":      "accredited",
		"external_reference": ref,
	}); err == nil {
		pp.Raw = b
	}
	log.Printf("[payment][gateway] mock get success provider_payment_id=%s provider_status=approved", pp.ID)
	return pp
}

func (g *MercadoPagoGateway) mockCreatedPayment(requestPayload json.RawMessage) entities.ProviderPayment {
	req := map[string]any{}
	if len(requestPayload) > 0 && json.Valid(requestPayload) {
		_ = json.Unmarshal(requestPayload, &req)
	}

	id := strconv.FormatInt(time.Now().UTC().UnixNano(), 10)
	now := time.Now().UTC().Format(time.RFC3339Nano)
	req["id"] = id
	req["status"] = "approved"
	req["status_detail"] = "accredited"
	if _, ok := req["date_created"]; !ok {
		req["date_created"] = now
	}
	if _, ok := req["date_approved"]; !ok {
		req["date_approved"] = now
	}

	pp := entities.ProviderPayment{
		ID:     id,
		Status: "approved",
	}
	if ref, ok := req["external_reference"].(string); ok {
		pp.ExternalReference = ref
	}
	if amount, ok := req["transaction_amount"].(float64); ok {
		pp.TransactionAmount = amount
	}
	if method, ok := req["payment_method_id"].(string); ok {
		pp.PaymentMethod = method
	}
	if currency, ok := req["currency_id"].(string); ok {
		pp.Currency = currency
	}
	if b, err := json.Marshal(req); err == nil {
		pp.Raw = b
	}

	log.Printf("[payment][gateway] mock create success provider_payment_id=%s provider_status=approved", id)
	return pp
}

func providerTimeoutFromEnv() time.Duration {
	if v := strings.TrimSpace(os.Getenv("PAYMENT_PROVIDER_TIMEOUT")); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
		log.Printf("[payment][gateway] invalid PAYMENT_PROVIDER_TIMEOUT=%q; using default", v)
	}
	return defaultProviderTimeout
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
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
