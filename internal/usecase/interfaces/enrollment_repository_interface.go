package interfaces

import (
	"context"
	"time"

	"aulaplus/internal/domain/entities"
)

// IEnrollmentRepository abstracts DynamoDB persistence for Enrollment.
//
// Writes are conditional so that concurrent webhook deliveries cannot lose an
// extension:
//   - Create fails with entities.ErrEnrollmentConflict when the (user, course)
//     pair already exists.
//   - UpdateExpiry fails with entities.ErrEnrollmentConflict when the stored
//     expiry no longer matches prevExpiresAt (optimistic concurrency).
//
// On conflict the caller re-reads and recomputes rather than overwriting.

type IEnrollmentRepository interface {
	GetByUserAndCourse(ctx context.Context, userID, courseID string) (entities.Enrollment, error)
	Create(ctx context.Context, e entities.Enrollment) (entities.Enrollment, error)
	UpdateExpiry(ctx context.Context, userID, courseID string, newExpiresAt time.Time, prevExpiresAt *time.Time) (entities.Enrollment, error)
}
