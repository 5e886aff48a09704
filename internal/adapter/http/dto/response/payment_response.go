package response

import (
	"time"

	"aulaplus/internal/domain/entities"
)

type PaymentResponse struct {
	PaymentID string    `json:"payment_id"`
	UserID    string    `json:"user_id"`
	CourseID  string    `json:"course_id"`
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
	Status    string    `json:"status"`
	Method    string    `json:"method"`
	Months    int       `json:"months"`
	CreatedAt time.Time `json:"created_at"`

	ExtraQuestionPack      bool    `json:"extra_question_pack,omitempty"`
	ExtraQuestionPackPrice float64 `json:"extra_question_pack_price,omitempty"`
}

func FromPayment(p entities.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:              p.ID,
		UserID:                 p.UserID,
		CourseID:               p.CourseID,
		Amount:                 p.Amount,
		Currency:               p.Currency,
		Status:                 string(p.Status),
		Method:                 p.Method,
		Months:                 p.Months,
		CreatedAt:              p.CreatedAt,
		ExtraQuestionPack:      p.ExtraQuestionPack,
		ExtraQuestionPackPrice: p.ExtraQuestionPackPrice,
	}
}

func FromPayments(ps []entities.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, FromPayment(p))
	}
	return out
}
