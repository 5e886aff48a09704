package request

import (
	"encoding/json"
	"testing"
)

func TestWebhookNotificationRequest_ResolvePaymentID(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"numeric id", `{"type":"payment","data":{"id":123456789}}`, "123456789"},
		{"string id", `{"type":"payment","data":{"id":"123456789"}}`, "123456789"},
		{"padded string id", `{"type":"payment","data":{"id":" 42 "}}`, "42"},
		{"missing data", `{"type":"payment"}`, ""},
		{"null id", `{"type":"payment","data":{"id":null}}`, ""},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var r WebhookNotificationRequest
			if err := json.Unmarshal([]byte(c.body), &r); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if got := r.ResolvePaymentID(); got != c.want {
				t.Fatalf("expected %q, got %q", c.want, got)
			}
		})
	}
}

func TestWebhookNotificationRequest_ResolveEvent(t *testing.T) {
	r := WebhookNotificationRequest{Type: "payment", Action: "payment.updated"}
	if got := r.ResolveEvent(); got != "payment.updated" {
		t.Fatalf("expected action to win, got %q", got)
	}

	r = WebhookNotificationRequest{Type: "payment"}
	if got := r.ResolveEvent(); got != "payment" {
		t.Fatalf("expected type fallback, got %q", got)
	}
}

func TestWebhookNotificationRequest_IsPaymentEvent(t *testing.T) {
	if !(WebhookNotificationRequest{Type: "payment"}).IsPaymentEvent() {
		t.Fatal("type=payment must be a payment event")
	}
	if !(WebhookNotificationRequest{Action: "payment.created"}).IsPaymentEvent() {
		t.Fatal("action=payment.created must be a payment event")
	}
	if (WebhookNotificationRequest{Type: "plan", Action: "plan.updated"}).IsPaymentEvent() {
		t.Fatal("plan events must not be payment events")
	}
}
