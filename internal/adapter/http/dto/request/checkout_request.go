package request

import "encoding/json"

// CheckoutRequest is the payload for the "create course payment" route.
//
// `mp_payload` is forwarded as-is (raw JSON) to the payment gateway to
// support varying Mercado Pago schemas; `months` selects the access period
// (defaults to 1 when omitted).

type CheckoutRequest struct {
	Months    int             `json:"months"`
	MPPayload json.RawMessage `json:"mp_payload"`
}
