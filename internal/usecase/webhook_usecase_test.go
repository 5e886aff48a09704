package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"aulaplus/internal/domain/entities"
	mock_interfaces "aulaplus/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

func newWebhookUseCaseForTest(t *testing.T) (*WebhookUseCase, *mock_interfaces.MockIPaymentRepository, *mock_interfaces.MockIEnrollmentRepository, *mock_interfaces.MockIPaymentGateway) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	payments := mock_interfaces.NewMockIPaymentRepository(ctrl)
	enrollments := mock_interfaces.NewMockIEnrollmentRepository(ctrl)
	gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
	uc := NewWebhookUseCase(payments, enrollments, gateway)
	uc.now = func() time.Time { return fixedNow }
	return uc, payments, enrollments, gateway
}

func approvedProviderPayment(id, ref string) entities.ProviderPayment {
	return entities.ProviderPayment{
		ID:                id,
		Status:            "approved",
		TransactionAmount: 10000,
		Currency:          "CLP",
		PaymentMethod:     "webpay",
		ExternalReference: ref,
	}
}

func TestWebhookUseCase_Reconcile_Validations(t *testing.T) {
	t.Run("missing payment id", func(t *testing.T) {
		uc, _, _, _ := newWebhookUseCaseForTest(t)
		_, err := uc.Reconcile(context.Background(), "  ")
		if !errors.Is(err, ErrMissingPaymentID) {
			t.Fatalf("expected ErrMissingPaymentID, got %v", err)
		}
	})

	t.Run("gateway not configured", func(t *testing.T) {
		uc := NewWebhookUseCase(nil, nil, nil)
		_, err := uc.Reconcile(context.Background(), "mp-1")
		if !errors.Is(err, ErrProviderUnavailable) {
			t.Fatalf("expected ErrProviderUnavailable, got %v", err)
		}
	})
}

func TestWebhookUseCase_Reconcile_ProviderFetch(t *testing.T) {
	t.Run("provider unavailable", func(t *testing.T) {
		uc, _, _, gateway := newWebhookUseCaseForTest(t)
		gateway.EXPECT().GetPaymentByID(gomock.Any(), "mp-1").Return(entities.ProviderPayment{}, errors.New("connection refused"))

		_, err := uc.Reconcile(context.Background(), "mp-1")
		if !errors.Is(err, ErrProviderUnavailable) {
			t.Fatalf("expected ErrProviderUnavailable, got %v", err)
		}
	})

	t.Run("provider payment not found", func(t *testing.T) {
		uc, _, _, gateway := newWebhookUseCaseForTest(t)
		gateway.EXPECT().GetPaymentByID(gomock.Any(), "mp-1").Return(entities.ProviderPayment{}, errors.New(`{"message":"Payment not found","status":404}`))

		_, err := uc.Reconcile(context.Background(), "mp-1")
		if !errors.Is(err, ErrProviderPaymentNotFound) {
			t.Fatalf("expected ErrProviderPaymentNotFound, got %v", err)
		}
	})
}

func TestWebhookUseCase_Reconcile_Reference(t *testing.T) {
	t.Run("missing reference mutates nothing", func(t *testing.T) {
		uc, _, _, gateway := newWebhookUseCaseForTest(t)
		gateway.EXPECT().GetPaymentByID(gomock.Any(), "mp-1").Return(approvedProviderPayment("mp-1", ""), nil)

		_, err := uc.Reconcile(context.Background(), "mp-1")
		if !errors.Is(err, entities.ErrMissingCourseReference) {
			t.Fatalf("expected ErrMissingCourseReference, got %v", err)
		}
	})

	t.Run("malformed reference mutates nothing", func(t *testing.T) {
		uc, _, _, gateway := newWebhookUseCaseForTest(t)
		gateway.EXPECT().GetPaymentByID(gomock.Any(), "mp-1").Return(approvedProviderPayment("mp-1", "user-1|course-1"), nil)

		_, err := uc.Reconcile(context.Background(), "mp-1")
		if !errors.Is(err, entities.ErrMalformedCourseReference) {
			t.Fatalf("expected ErrMalformedCourseReference, got %v", err)
		}
	})
}

func TestWebhookUseCase_Reconcile_Dedup(t *testing.T) {
	t.Run("redelivery is a no-op", func(t *testing.T) {
		uc, payments, _, gateway := newWebhookUseCaseForTest(t)
		gateway.EXPECT().GetPaymentByID(gomock.Any(), "mp-1").Return(approvedProviderPayment("mp-1", "user-1|course-1|1"), nil)
		payments.EXPECT().GetByID(gomock.Any(), "mp-1").Return(entities.Payment{ID: "mp-1", Status: entities.PaymentStatusCompleted}, nil)

		res, err := uc.Reconcile(context.Background(), "mp-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.Duplicate {
			t.Fatal("expected duplicate result")
		}
		if res.Enrollment != nil {
			t.Fatal("redelivery must not touch enrollments")
		}
	})

	t.Run("concurrent delivery loses conditional insert", func(t *testing.T) {
		uc, payments, _, gateway := newWebhookUseCaseForTest(t)
		gateway.EXPECT().GetPaymentByID(gomock.Any(), "mp-1").Return(approvedProviderPayment("mp-1", "user-1|course-1|1"), nil)
		payments.EXPECT().GetByID(gomock.Any(), "mp-1").Return(entities.Payment{}, nil)
		payments.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Payment{}, entities.ErrPaymentAlreadyRecorded)

		res, err := uc.Reconcile(context.Background(), "mp-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.Duplicate {
			t.Fatal("expected duplicate result")
		}
	})

	t.Run("dedup lookup failure is retryable", func(t *testing.T) {
		uc, payments, _, gateway := newWebhookUseCaseForTest(t)
		gateway.EXPECT().GetPaymentByID(gomock.Any(), "mp-1").Return(approvedProviderPayment("mp-1", "user-1|course-1|1"), nil)
		payments.EXPECT().GetByID(gomock.Any(), "mp-1").Return(entities.Payment{}, errors.New("throttled"))

		_, err := uc.Reconcile(context.Background(), "mp-1")
		if !errors.Is(err, ErrPaymentStoreWrite) {
			t.Fatalf("expected ErrPaymentStoreWrite, got %v", err)
		}
	})
}

func TestWebhookUseCase_Reconcile_PaymentInsert(t *testing.T) {
	t.Run("insert failure aborts before enrollment", func(t *testing.T) {
		uc, payments, _, gateway := newWebhookUseCaseForTest(t)
		gateway.EXPECT().GetPaymentByID(gomock.Any(), "mp-1").Return(approvedProviderPayment("mp-1", "user-1|course-1|1"), nil)
		payments.EXPECT().GetByID(gomock.Any(), "mp-1").Return(entities.Payment{}, nil)
		payments.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Payment{}, errors.New("write capacity exceeded"))

		_, err := uc.Reconcile(context.Background(), "mp-1")
		if !errors.Is(err, ErrPaymentStoreWrite) {
			t.Fatalf("expected ErrPaymentStoreWrite, got %v", err)
		}
	})

	t.Run("record carries mapped status and reference fields", func(t *testing.T) {
		uc, payments, enrollments, gateway := newWebhookUseCaseForTest(t)
		gateway.EXPECT().GetPaymentByID(gomock.Any(), "mp-1").Return(approvedProviderPayment("mp-1", "user-1|course-1|3"), nil)
		payments.EXPECT().GetByID(gomock.Any(), "mp-1").Return(entities.Payment{}, nil)

		var inserted entities.Payment
		payments.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p entities.Payment) (entities.Payment, error) {
				inserted = p
				return p, nil
			})
		enrollments.EXPECT().GetByUserAndCourse(gomock.Any(), "user-1", "course-1").Return(entities.Enrollment{}, nil)
		enrollments.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e entities.Enrollment) (entities.Enrollment, error) { return e, nil })

		if _, err := uc.Reconcile(context.Background(), "mp-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if inserted.ID != "mp-1" || inserted.UserID != "user-1" || inserted.CourseID != "course-1" {
			t.Fatalf("unexpected payment record: %+v", inserted)
		}
		if inserted.Status != entities.PaymentStatusCompleted {
			t.Fatalf("expected completed status, got %s", inserted.Status)
		}
		if inserted.Amount != 10000 || inserted.Currency != "CLP" || inserted.Months != 3 {
			t.Fatalf("unexpected payment record: %+v", inserted)
		}
	})
}

func TestWebhookUseCase_Reconcile_Enrollment(t *testing.T) {
	t.Run("approved payment creates enrollment", func(t *testing.T) {
		uc, payments, enrollments, gateway := newWebhookUseCaseForTest(t)
		gateway.EXPECT().GetPaymentByID(gomock.Any(), "P1").Return(approvedProviderPayment("P1", "U1|C1|1"), nil)
		payments.EXPECT().GetByID(gomock.Any(), "P1").Return(entities.Payment{}, nil)
		payments.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p entities.Payment) (entities.Payment, error) { return p, nil })
		enrollments.EXPECT().GetByUserAndCourse(gomock.Any(), "U1", "C1").Return(entities.Enrollment{}, nil)

		var created entities.Enrollment
		enrollments.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e entities.Enrollment) (entities.Enrollment, error) {
				created = e
				return e, nil
			})

		res, err := uc.Reconcile(context.Background(), "P1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Enrollment == nil {
			t.Fatal("expected enrollment in result")
		}
		if !created.Active {
			t.Fatal("expected active enrollment")
		}
		if created.ProgressPercentage != 0 {
			t.Fatalf("expected zero progress, got %v", created.ProgressPercentage)
		}
		if !created.EnrolledAt.Equal(fixedNow) {
			t.Fatalf("expected enrolled_at=%v, got %v", fixedNow, created.EnrolledAt)
		}
		want := fixedNow.AddDate(0, 1, 0)
		if created.ExpiresAt == nil || !created.ExpiresAt.Equal(want) {
			t.Fatalf("expected expires_at=%v, got %v", want, created.ExpiresAt)
		}
	})

	t.Run("future expiry extends from current expiry", func(t *testing.T) {
		uc, payments, enrollments, gateway := newWebhookUseCaseForTest(t)
		gateway.EXPECT().GetPaymentByID(gomock.Any(), "P2").Return(approvedProviderPayment("P2", "U1|C1|1"), nil)
		payments.EXPECT().GetByID(gomock.Any(), "P2").Return(entities.Payment{}, nil)
		payments.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p entities.Payment) (entities.Payment, error) { return p, nil })

		current := fixedNow.AddDate(0, 0, 10)
		existing := entities.Enrollment{UserID: "U1", CourseID: "C1", Active: true, ExpiresAt: &current}
		enrollments.EXPECT().GetByUserAndCourse(gomock.Any(), "U1", "C1").Return(existing, nil)

		want := current.AddDate(0, 1, 0)
		enrollments.EXPECT().UpdateExpiry(gomock.Any(), "U1", "C1", want, &current).DoAndReturn(
			func(_ context.Context, userID, courseID string, newExp time.Time, _ *time.Time) (entities.Enrollment, error) {
				e := existing
				e.ExpiresAt = &newExp
				return e, nil
			})

		res, err := uc.Reconcile(context.Background(), "P2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Enrollment == nil || !res.Enrollment.ExpiresAt.Equal(want) {
			t.Fatalf("expected expires_at=%v, got %+v", want, res.Enrollment)
		}
		if !res.Enrollment.ExpiresAt.After(current) {
			t.Fatal("expiry must move forward")
		}
	})

	t.Run("past expiry extends from now", func(t *testing.T) {
		uc, payments, enrollments, gateway := newWebhookUseCaseForTest(t)
		gateway.EXPECT().GetPaymentByID(gomock.Any(), "P3").Return(approvedProviderPayment("P3", "U1|C1|2"), nil)
		payments.EXPECT().GetByID(gomock.Any(), "P3").Return(entities.Payment{}, nil)
		payments.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p entities.Payment) (entities.Payment, error) { return p, nil })

		stale := fixedNow.AddDate(0, -1, 0)
		existing := entities.Enrollment{UserID: "U1", CourseID: "C1", ExpiresAt: &stale}
		enrollments.EXPECT().GetByUserAndCourse(gomock.Any(), "U1", "C1").Return(existing, nil)

		want := fixedNow.AddDate(0, 2, 0)
		enrollments.EXPECT().UpdateExpiry(gomock.Any(), "U1", "C1", want, &stale).DoAndReturn(
			func(_ context.Context, userID, courseID string, newExp time.Time, _ *time.Time) (entities.Enrollment, error) {
				e := existing
				e.ExpiresAt = &newExp
				return e, nil
			})

		if _, err := uc.Reconcile(context.Background(), "P3"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("unlimited enrollment left untouched", func(t *testing.T) {
		uc, payments, enrollments, gateway := newWebhookUseCaseForTest(t)
		gateway.EXPECT().GetPaymentByID(gomock.Any(), "P4").Return(approvedProviderPayment("P4", "U1|C1|1"), nil)
		payments.EXPECT().GetByID(gomock.Any(), "P4").Return(entities.Payment{}, nil)
		payments.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p entities.Payment) (entities.Payment, error) { return p, nil })

		existing := entities.Enrollment{UserID: "U1", CourseID: "C1", Active: true}
		enrollments.EXPECT().GetByUserAndCourse(gomock.Any(), "U1", "C1").Return(existing, nil)

		res, err := uc.Reconcile(context.Background(), "P4")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Enrollment == nil || res.Enrollment.ExpiresAt != nil {
			t.Fatalf("unlimited enrollment must stay unlimited: %+v", res.Enrollment)
		}
	})

	t.Run("create race falls back to extend", func(t *testing.T) {
		uc, payments, enrollments, gateway := newWebhookUseCaseForTest(t)
		gateway.EXPECT().GetPaymentByID(gomock.Any(), "P5").Return(approvedProviderPayment("P5", "U1|C1|1"), nil)
		payments.EXPECT().GetByID(gomock.Any(), "P5").Return(entities.Payment{}, nil)
		payments.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p entities.Payment) (entities.Payment, error) { return p, nil })

		winner := fixedNow.AddDate(0, 1, 0)
		gomock.InOrder(
			enrollments.EXPECT().GetByUserAndCourse(gomock.Any(), "U1", "C1").Return(entities.Enrollment{}, nil),
			enrollments.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Enrollment{}, entities.ErrEnrollmentConflict),
			enrollments.EXPECT().GetByUserAndCourse(gomock.Any(), "U1", "C1").Return(entities.Enrollment{UserID: "U1", CourseID: "C1", Active: true, ExpiresAt: &winner}, nil),
			enrollments.EXPECT().UpdateExpiry(gomock.Any(), "U1", "C1", winner.AddDate(0, 1, 0), &winner).Return(entities.Enrollment{UserID: "U1", CourseID: "C1", Active: true}, nil),
		)

		if _, err := uc.Reconcile(context.Background(), "P5"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("enrollment store failure is retryable", func(t *testing.T) {
		uc, payments, enrollments, gateway := newWebhookUseCaseForTest(t)
		gateway.EXPECT().GetPaymentByID(gomock.Any(), "P6").Return(approvedProviderPayment("P6", "U1|C1|1"), nil)
		payments.EXPECT().GetByID(gomock.Any(), "P6").Return(entities.Payment{}, nil)
		payments.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p entities.Payment) (entities.Payment, error) { return p, nil })
		enrollments.EXPECT().GetByUserAndCourse(gomock.Any(), "U1", "C1").Return(entities.Enrollment{}, errors.New("throttled"))

		_, err := uc.Reconcile(context.Background(), "P6")
		if !errors.Is(err, ErrEnrollmentStoreWrite) {
			t.Fatalf("expected ErrEnrollmentStoreWrite, got %v", err)
		}
	})
}

func TestWebhookUseCase_Reconcile_NonApproved(t *testing.T) {
	cases := []struct {
		provider string
		want     entities.PaymentStatus
	}{
		{"pending", entities.PaymentStatusPending},
		{"in_process", entities.PaymentStatusPending},
		{"rejected", entities.PaymentStatusFailed},
		{"cancelled", entities.PaymentStatusFailed},
		{"refunded", entities.PaymentStatusRefunded},
	}

	for _, c := range cases {
		t.Run(c.provider, func(t *testing.T) {
			uc, payments, _, gateway := newWebhookUseCaseForTest(t)
			pp := approvedProviderPayment("mp-9", "user-1|course-1|1")
			pp.Status = c.provider
			gateway.EXPECT().GetPaymentByID(gomock.Any(), "mp-9").Return(pp, nil)
			payments.EXPECT().GetByID(gomock.Any(), "mp-9").Return(entities.Payment{}, nil)
			payments.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, p entities.Payment) (entities.Payment, error) { return p, nil })

			res, err := uc.Reconcile(context.Background(), "mp-9")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Payment.Status != c.want {
				t.Fatalf("expected status %s, got %s", c.want, res.Payment.Status)
			}
			if res.Enrollment != nil {
				t.Fatal("non-approved payment must not touch enrollments")
			}
		})
	}
}
