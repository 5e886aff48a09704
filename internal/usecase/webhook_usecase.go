package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"aulaplus/internal/domain/entities"
	"aulaplus/internal/usecase/interfaces"
)

var (
	ErrMissingPaymentID        = errors.New("missing provider payment id")
	ErrProviderPaymentNotFound = errors.New("provider payment not found")
	ErrProviderUnavailable     = errors.New("payment provider unavailable")
	ErrPaymentStoreWrite       = errors.New("payment store write failed")
	ErrEnrollmentStoreWrite    = errors.New("enrollment store write failed")
)

// Conditional enrollment writes are retried a bounded number of times when a
// concurrent delivery wins the race; each retry re-reads the stored expiry.
const maxEnrollmentWriteAttempts = 3

// ReconcileResult is the outcome of one webhook delivery.
//
// Duplicate means the external payment id was already recorded: the delivery
// is a provider redelivery and nothing was mutated.

type ReconcileResult struct {
	Payment    entities.Payment
	Enrollment *entities.Enrollment
	Duplicate  bool
}

// IWebhookUseCase turns a provider payment notification into consistent
// payment and enrollment records.
//
// Guarantees:
//   - at most one payment record per external payment id (store-level
//     conditional insert, not check-then-act)
//   - enrollment expiry only ever moves forward, never backward
//   - non-approved payments are recorded but never touch enrollments

type IWebhookUseCase interface {
	Reconcile(ctx context.Context, providerPaymentID string) (ReconcileResult, error)
}

type WebhookUseCase struct {
	payments    interfaces.IPaymentRepository
	enrollments interfaces.IEnrollmentRepository
	gateway     interfaces.IPaymentGateway

	now func() time.Time
}

var _ IWebhookUseCase = (*WebhookUseCase)(nil)

func NewWebhookUseCase(payments interfaces.IPaymentRepository, enrollments interfaces.IEnrollmentRepository, gateway interfaces.IPaymentGateway) *WebhookUseCase {
	return &WebhookUseCase{
		payments:    payments,
		enrollments: enrollments,
		gateway:     gateway,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (u *WebhookUseCase) Reconcile(ctx context.Context, providerPaymentID string) (ReconcileResult, error) {
	providerPaymentID = strings.TrimSpace(providerPaymentID)
	log.Printf("[webhook][usecase] reconcile start provider_payment_id=%q", providerPaymentID)
	if providerPaymentID == "" {
		log.Printf("[webhook][usecase] notification carries no payment id")
		return ReconcileResult{}, ErrMissingPaymentID
	}
	if u.gateway == nil {
		log.Printf("[webhook][usecase] gateway not configured provider_payment_id=%s", providerPaymentID)
		return ReconcileResult{}, fmt.Errorf("%w: gateway not configured", ErrProviderUnavailable)
	}

	pp, err := u.gateway.GetPaymentByID(ctx, providerPaymentID)
	if err != nil {
		if isProviderNotFound(err) {
			log.Printf("[webhook][usecase] provider payment not found provider_payment_id=%s err=%v", providerPaymentID, err)
			return ReconcileResult{}, fmt.Errorf("%w: %v", ErrProviderPaymentNotFound, err)
		}
		log.Printf("[webhook][usecase] provider fetch failed provider_payment_id=%s err=%v", providerPaymentID, err)
		return ReconcileResult{}, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	log.Printf("[webhook][usecase] provider payment fetched provider_payment_id=%s provider_status=%s amount=%.2f currency=%s", pp.ID, pp.Status, pp.TransactionAmount, pp.Currency)

	ref, err := entities.ParseCourseReference(pp.ExternalReference)
	if err != nil {
		log.Printf("[webhook][usecase] unusable course reference provider_payment_id=%s external_reference=%q err=%v", pp.ID, pp.ExternalReference, err)
		return ReconcileResult{}, err
	}

	// Dedup pre-check; redelivery is a successful no-op. The conditional
	// insert below still backstops the race between two deliveries that both
	// pass this read.
	existing, err := u.payments.GetByID(ctx, pp.ID)
	if err != nil {
		log.Printf("[webhook][usecase] dedup lookup failed provider_payment_id=%s user_id=%s course_id=%s err=%v", pp.ID, ref.UserID, ref.CourseID, err)
		return ReconcileResult{}, fmt.Errorf("%w: %v", ErrPaymentStoreWrite, err)
	}
	if existing.ID != "" {
		log.Printf("[webhook][usecase] duplicate notification provider_payment_id=%s user_id=%s course_id=%s", pp.ID, ref.UserID, ref.CourseID)
		return ReconcileResult{Payment: existing, Duplicate: true}, nil
	}

	status := entities.MapProviderStatus(pp.Status)
	p := entities.Payment{
		ID:                 pp.ID,
		UserID:             ref.UserID,
		CourseID:           ref.CourseID,
		Amount:             pp.TransactionAmount,
		Currency:           pp.Currency,
		Status:             status,
		Method:             pp.PaymentMethod,
		Months:             ref.Months,
		CreatedAt:          u.now(),
		ProviderPayloadRaw: pp.Raw,
		ProviderPayload:    pp.Metadata,
	}
	applyExtraPackMetadata(&p, pp.Metadata)

	created, err := u.payments.Create(ctx, p)
	if err != nil {
		if errors.Is(err, entities.ErrPaymentAlreadyRecorded) {
			log.Printf("[webhook][usecase] concurrent delivery already recorded payment provider_payment_id=%s", pp.ID)
			return ReconcileResult{Payment: p, Duplicate: true}, nil
		}
		// Abort before any enrollment mutation; redelivery retries the whole flow.
		log.Printf("[webhook][usecase] payment record insert failed provider_payment_id=%s user_id=%s course_id=%s err=%v", pp.ID, ref.UserID, ref.CourseID, err)
		return ReconcileResult{}, fmt.Errorf("%w: %v", ErrPaymentStoreWrite, err)
	}
	log.Printf("[webhook][usecase] payment recorded provider_payment_id=%s user_id=%s course_id=%s status=%s", created.ID, ref.UserID, ref.CourseID, created.Status)

	result := ReconcileResult{Payment: created}
	if !pp.Approved() {
		log.Printf("[webhook][usecase] payment not approved; enrollment untouched provider_payment_id=%s provider_status=%s", pp.ID, pp.Status)
		return result, nil
	}

	enrollment, err := u.createOrExtendEnrollment(ctx, ref)
	if err != nil {
		log.Printf("[webhook][usecase] enrollment mutation failed provider_payment_id=%s user_id=%s course_id=%s err=%v", pp.ID, ref.UserID, ref.CourseID, err)
		return result, err
	}
	log.Printf("[webhook][usecase] reconcile success provider_payment_id=%s user_id=%s course_id=%s expires_at=%v", pp.ID, ref.UserID, ref.CourseID, enrollment.ExpiresAt)

	result.Enrollment = &enrollment
	return result, nil
}

func (u *WebhookUseCase) createOrExtendEnrollment(ctx context.Context, ref entities.CourseReference) (entities.Enrollment, error) {
	for attempt := 0; attempt < maxEnrollmentWriteAttempts; attempt++ {
		existing, err := u.enrollments.GetByUserAndCourse(ctx, ref.UserID, ref.CourseID)
		if err != nil {
			return entities.Enrollment{}, fmt.Errorf("%w: %v", ErrEnrollmentStoreWrite, err)
		}

		if existing.UserID == "" {
			now := u.now()
			expiresAt := now.AddDate(0, ref.Months, 0)
			e := entities.Enrollment{
				UserID:             ref.UserID,
				CourseID:           ref.CourseID,
				Active:             true,
				PlanType:           accessPlanType(ref.Months),
				ExpiresAt:          &expiresAt,
				EnrolledAt:         now,
				ProgressPercentage: 0,
			}
			created, err := u.enrollments.Create(ctx, e)
			if errors.Is(err, entities.ErrEnrollmentConflict) {
				log.Printf("[webhook][usecase] enrollment create lost race user_id=%s course_id=%s attempt=%d", ref.UserID, ref.CourseID, attempt+1)
				continue
			}
			if err != nil {
				return entities.Enrollment{}, fmt.Errorf("%w: %v", ErrEnrollmentStoreWrite, err)
			}
			return created, nil
		}

		// Unlimited access: nothing to extend.
		if existing.Unlimited() {
			log.Printf("[webhook][usecase] enrollment is unlimited; expiry untouched user_id=%s course_id=%s", ref.UserID, ref.CourseID)
			return existing, nil
		}

		newExpiry := existing.ExtendedExpiry(u.now(), ref.Months)
		updated, err := u.enrollments.UpdateExpiry(ctx, ref.UserID, ref.CourseID, newExpiry, existing.ExpiresAt)
		if errors.Is(err, entities.ErrEnrollmentConflict) {
			log.Printf("[webhook][usecase] enrollment extend lost race user_id=%s course_id=%s attempt=%d", ref.UserID, ref.CourseID, attempt+1)
			continue
		}
		if err != nil {
			return entities.Enrollment{}, fmt.Errorf("%w: %v", ErrEnrollmentStoreWrite, err)
		}
		return updated, nil
	}
	return entities.Enrollment{}, fmt.Errorf("%w: retries exhausted for user_id=%s course_id=%s", ErrEnrollmentStoreWrite, ref.UserID, ref.CourseID)
}

func accessPlanType(months int) string {
	switch months {
	case 1:
		return "monthly"
	case 6:
		return "semester"
	case 12:
		return "yearly"
	default:
		return fmt.Sprintf("%d-months", months)
	}
}

// applyExtraPackMetadata copies the optional question-pack add-on flags from
// the provider metadata onto the payment record.
func applyExtraPackMetadata(p *entities.Payment, meta map[string]interface{}) {
	if meta == nil {
		return
	}
	if v, ok := meta["extra_question_pack"].(bool); ok {
		p.ExtraQuestionPack = v
	}
	if v, ok := meta["extra_question_pack_price"].(float64); ok {
		p.ExtraQuestionPackPrice = v
	}
}

func isProviderNotFound(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "payment not found") || strings.Contains(msg, "\"status\":404")
}
