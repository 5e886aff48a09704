package interfaces

import (
	"context"
	"encoding/json"

	"aulaplus/internal/domain/entities"
)

// IPaymentGateway abstracts the external payment provider (Mercado Pago).
//
// GetPaymentByID is the webhook's authoritative fetch: notifications carry no
// domain data, only a provider payment id. CreatePayment is the checkout path
// and returns the provider payment object for traceability.
type IPaymentGateway interface {
	GetPaymentByID(ctx context.Context, providerPaymentID string) (entities.ProviderPayment, error)
	CreatePayment(ctx context.Context, requestPayload json.RawMessage) (entities.ProviderPayment, error)
}
