package entities

import (
	"errors"
	"time"
)

// ErrEnrollmentConflict signals that a conditional enrollment write lost a
// race with a concurrent writer. Callers re-read and retry.
var ErrEnrollmentConflict = errors.New("enrollment write conflict")

// Enrollment grants one user time-bounded access to one course.
//
// Storage model (DynamoDB):
//   - PK: user_id (string)
//   - SK: course_id (string)
//
// ExpiresAt == nil means unlimited access; the webhook never touches an
// unlimited expiry.

type Enrollment struct {
	UserID             string     `json:"user_id"`
	CourseID           string     `json:"course_id"`
	Active             bool       `json:"active"`
	PlanType           string     `json:"plan_type"`
	ExpiresAt          *time.Time `json:"expires_at,omitempty"`
	EnrolledAt         time.Time  `json:"enrolled_at"`
	ProgressPercentage float64    `json:"progress_percentage"`
}

// Unlimited reports whether the enrollment has no expiry.
func (e Enrollment) Unlimited() bool {
	return e.ExpiresAt == nil
}

// ExtendedExpiry computes the new expiry after an approved payment for the
// given number of months. The base is the later of the current expiry and now,
// so an extension never shortens access and never builds on a stale date.
func (e Enrollment) ExtendedExpiry(now time.Time, months int) time.Time {
	base := now
	if e.ExpiresAt != nil && e.ExpiresAt.After(now) {
		base = *e.ExpiresAt
	}
	return base.AddDate(0, months, 0)
}
