package response

// WebhookAckResponse acknowledges a webhook delivery.
//
// `result` distinguishes a processed delivery from an acknowledged-but-ignored
// one (duplicate, unusable payload, non-payment event); the provider only
// cares about the HTTP status, the body is for operators reading logs and
// manual-replay tooling.

type WebhookAckResponse struct {
	Result    string `json:"result"`
	Code      string `json:"code,omitempty"`
	PaymentID string `json:"payment_id,omitempty"`
}

const (
	WebhookResultProcessed = "processed"
	WebhookResultDuplicate = "duplicate"
	WebhookResultIgnored   = "ignored"
)
