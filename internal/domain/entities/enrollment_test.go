package entities

import (
	"testing"
	"time"
)

func TestEnrollment_ExtendedExpiry(t *testing.T) {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

	t.Run("future expiry extends from current expiry", func(t *testing.T) {
		current := now.AddDate(0, 0, 10)
		e := Enrollment{ExpiresAt: &current}
		got := e.ExtendedExpiry(now, 1)
		want := current.AddDate(0, 1, 0)
		if !got.Equal(want) {
			t.Fatalf("expected %v, got %v", want, got)
		}
		if !got.After(current) {
			t.Fatal("extension must move the expiry forward")
		}
	})

	t.Run("past expiry extends from now", func(t *testing.T) {
		stale := now.AddDate(0, -2, 0)
		e := Enrollment{ExpiresAt: &stale}
		got := e.ExtendedExpiry(now, 1)
		want := now.AddDate(0, 1, 0)
		if !got.Equal(want) {
			t.Fatalf("expected %v, got %v", want, got)
		}
	})

	t.Run("no expiry extends from now", func(t *testing.T) {
		e := Enrollment{}
		got := e.ExtendedExpiry(now, 2)
		want := now.AddDate(0, 2, 0)
		if !got.Equal(want) {
			t.Fatalf("expected %v, got %v", want, got)
		}
	})
}

func TestEnrollment_Unlimited(t *testing.T) {
	if !(Enrollment{}).Unlimited() {
		t.Fatal("nil expiry must be unlimited")
	}
	exp := time.Now()
	if (Enrollment{ExpiresAt: &exp}).Unlimited() {
		t.Fatal("set expiry must not be unlimited")
	}
}
