package response

import (
	"testing"
	"time"

	"aulaplus/internal/domain/entities"
)

func TestFromPayment(t *testing.T) {
	now := time.Now().UTC()
	p := entities.Payment{
		ID:        "mp-1",
		UserID:    "user-1",
		CourseID:  "course-1",
		Amount:    10000,
		Currency:  "CLP",
		Status:    entities.PaymentStatusCompleted,
		Method:    "webpay",
		Months:    3,
		CreatedAt: now,
	}

	r := FromPayment(p)
	if r.PaymentID != "mp-1" || r.UserID != "user-1" || r.CourseID != "course-1" {
		t.Fatalf("unexpected response: %+v", r)
	}
	if r.Status != "completed" || r.Months != 3 || !r.CreatedAt.Equal(now) {
		t.Fatalf("unexpected response: %+v", r)
	}
}

func TestFromPayments(t *testing.T) {
	ps := []entities.Payment{{ID: "a"}, {ID: "b"}}
	rs := FromPayments(ps)
	if len(rs) != 2 || rs[0].PaymentID != "a" || rs[1].PaymentID != "b" {
		t.Fatalf("unexpected responses: %+v", rs)
	}
}

func TestFromEnrollment(t *testing.T) {
	exp := time.Now().UTC().AddDate(0, 1, 0)
	e := entities.Enrollment{UserID: "user-1", CourseID: "course-1", Active: true, ExpiresAt: &exp, ProgressPercentage: 25}

	r := FromEnrollment(e)
	if r.UserID != "user-1" || !r.Active || r.ExpiresAt == nil || !r.ExpiresAt.Equal(exp) {
		t.Fatalf("unexpected response: %+v", r)
	}
	if r.ProgressPercentage != 25 {
		t.Fatalf("unexpected response: %+v", r)
	}
}
