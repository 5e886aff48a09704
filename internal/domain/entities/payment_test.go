package entities

import "testing"

func TestMapProviderStatus(t *testing.T) {
	cases := []struct {
		provider string
		want     PaymentStatus
	}{
		{"approved", PaymentStatusCompleted},
		{"pending", PaymentStatusPending},
		{"in_process", PaymentStatusPending},
		{"rejected", PaymentStatusFailed},
		{"cancelled", PaymentStatusFailed},
		{"refunded", PaymentStatusRefunded},
		{"charged_back", PaymentStatus("charged_back")},
		{"", PaymentStatus("")},
	}

	for _, c := range cases {
		if got := MapProviderStatus(c.provider); got != c.want {
			t.Fatalf("MapProviderStatus(%q) = %q, want %q", c.provider, got, c.want)
		}
	}
}

func TestProviderPayment_Approved(t *testing.T) {
	if !(ProviderPayment{Status: "approved"}).Approved() {
		t.Fatal("expected approved")
	}
	if (ProviderPayment{Status: "pending"}).Approved() {
		t.Fatal("expected not approved")
	}
}
