package response

import (
	"time"

	"aulaplus/internal/domain/entities"
)

type EnrollmentResponse struct {
	UserID             string     `json:"user_id"`
	CourseID           string     `json:"course_id"`
	Active             bool       `json:"active"`
	PlanType           string     `json:"plan_type,omitempty"`
	ExpiresAt          *time.Time `json:"expires_at,omitempty"`
	EnrolledAt         time.Time  `json:"enrolled_at"`
	ProgressPercentage float64    `json:"progress_percentage"`
}

func FromEnrollment(e entities.Enrollment) EnrollmentResponse {
	return EnrollmentResponse{
		UserID:             e.UserID,
		CourseID:           e.CourseID,
		Active:             e.Active,
		PlanType:           e.PlanType,
		ExpiresAt:          e.ExpiresAt,
		EnrolledAt:         e.EnrolledAt,
		ProgressPercentage: e.ProgressPercentage,
	}
}
