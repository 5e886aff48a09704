package entities

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Checkout stamps the provider payment's external_reference with a composite
// "user|course|months" string; the webhook parses it back to reconcile the
// payment to an enrollment.

const (
	courseReferenceSeparator = "|"
	courseReferenceSegments  = 3
	defaultAccessMonths      = 1
)

var (
	ErrMissingCourseReference   = errors.New("missing course reference")
	ErrMalformedCourseReference = errors.New("malformed course reference")
)

// CourseReference identifies which (user, course) a provider payment belongs
// to and how many months of access it buys.

type CourseReference struct {
	UserID   string
	CourseID string
	Months   int
}

// NewCourseReference builds a reference, applying the default access period
// when months is not positive.
func NewCourseReference(userID, courseID string, months int) CourseReference {
	if months <= 0 {
		months = defaultAccessMonths
	}
	return CourseReference{UserID: userID, CourseID: courseID, Months: months}
}

// String renders the composite external_reference value.
func (r CourseReference) String() string {
	return strings.Join([]string{r.UserID, r.CourseID, strconv.Itoa(r.Months)}, courseReferenceSeparator)
}

// ParseCourseReference parses a composite external_reference.
//
// The reference is valid only when it splits into exactly three segments with
// non-empty user and course ids. An empty or non-numeric months segment falls
// back to the default access period; a wrong segment count is a structural
// error and must not lead to any state mutation.
func ParseCourseReference(ref string) (CourseReference, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return CourseReference{}, ErrMissingCourseReference
	}

	parts := strings.Split(ref, courseReferenceSeparator)
	if len(parts) != courseReferenceSegments {
		return CourseReference{}, fmt.Errorf("%w: expected %d segments, got %d", ErrMalformedCourseReference, courseReferenceSegments, len(parts))
	}

	userID := strings.TrimSpace(parts[0])
	courseID := strings.TrimSpace(parts[1])
	if userID == "" || courseID == "" {
		return CourseReference{}, fmt.Errorf("%w: empty user or course segment", ErrMalformedCourseReference)
	}

	months := defaultAccessMonths
	if raw := strings.TrimSpace(parts[2]); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			months = n
		}
	}

	return CourseReference{UserID: userID, CourseID: courseID, Months: months}, nil
}
