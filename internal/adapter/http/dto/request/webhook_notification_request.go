package request

import (
	"bytes"
	"encoding/json"
	"strings"
)

// WebhookNotificationRequest is the Mercado Pago notification envelope.
//
// The envelope carries no domain data, only an event kind and a reference to
// a provider-side payment id; depending on the notification version the id
// arrives as a JSON number or a JSON string, so it is resolved lazily.
type WebhookNotificationRequest struct {
	Type   string                  `json:"type"`
	Action string                  `json:"action"`
	Data   WebhookNotificationData `json:"data"`
}

type WebhookNotificationData struct {
	ID json.RawMessage `json:"id"`
}

// ResolveEvent returns the most specific event label present.
func (r WebhookNotificationRequest) ResolveEvent() string {
	if v := strings.TrimSpace(r.Action); v != "" {
		return v
	}
	return strings.TrimSpace(r.Type)
}

// IsPaymentEvent reports whether the notification refers to a payment.
func (r WebhookNotificationRequest) IsPaymentEvent() bool {
	if strings.TrimSpace(r.Type) == "payment" {
		return true
	}
	return strings.HasPrefix(strings.TrimSpace(r.Action), "payment.")
}

// ResolvePaymentID extracts the provider payment id, tolerating both the
// string and the numeric wire forms. Returns "" when absent.
func (r WebhookNotificationRequest) ResolvePaymentID() string {
	raw := bytes.TrimSpace(r.Data.ID)
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}
