package entities

import (
	"encoding/json"
	"errors"
	"time"
)

// ErrPaymentAlreadyRecorded signals that a payment record with the same
// external payment id already exists. The webhook treats it as a redelivery.
var ErrPaymentAlreadyRecorded = errors.New("payment already recorded")

// PaymentStatus is the internal payment status.
//
// Provider statuses are normalized by MapProviderStatus; unknown provider
// statuses are carried verbatim so nothing is lost for manual inspection.

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// MapProviderStatus normalizes a Mercado Pago payment status into the
// internal PaymentStatus. Pure function, no side effects.
func MapProviderStatus(providerStatus string) PaymentStatus {
	switch providerStatus {
	case "approved":
		return PaymentStatusCompleted
	case "pending", "in_process":
		return PaymentStatusPending
	case "rejected", "cancelled":
		return PaymentStatusFailed
	default:
		return PaymentStatus(providerStatus)
	}
}

// Payment is the payment record persisted per provider transaction.
//
// Storage model (DynamoDB):
//   - PK: id (the provider's external payment id, also the dedup key)
//   - GSI1 (user_id-index): user_id
//
// Records are immutable once written; redeliveries of the same external
// payment id never overwrite them.

type Payment struct {
	ID        string        `json:"id"`
	UserID    string        `json:"user_id"`
	CourseID  string        `json:"course_id"`
	Amount    float64       `json:"amount"`
	Currency  string        `json:"currency"`
	Status    PaymentStatus `json:"status"`
	Method    string        `json:"method"`
	Months    int           `json:"months"`
	CreatedAt time.Time     `json:"created_at"`

	// Optional add-on purchased together with the course access.
	ExtraQuestionPack      bool    `json:"extra_question_pack,omitempty"`
	ExtraQuestionPackPrice float64 `json:"extra_question_pack_price,omitempty"`

	// ProviderPayloadRaw keeps the provider payment object (JSON) for
	// traceability/audit; ProviderPayload is the parsed representation.
	ProviderPayloadRaw json.RawMessage        `json:"provider_payload_raw,omitempty"`
	ProviderPayload    map[string]interface{} `json:"provider_payload,omitempty"`
}

// ProviderPayment is the authoritative payment object fetched from the
// provider, parsed into a typed representation before any business logic
// touches it.

type ProviderPayment struct {
	ID                string
	Status            string
	TransactionAmount float64
	Currency          string
	PaymentMethod     string
	ExternalReference string
	Metadata          map[string]interface{}
	Raw               json.RawMessage
}

// Approved reports whether the provider considers the payment accredited.
func (p ProviderPayment) Approved() bool {
	return p.Status == "approved"
}
