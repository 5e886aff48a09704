package usecase

import (
	"context"
	"errors"
	"strings"

	"aulaplus/internal/domain/entities"
	"aulaplus/internal/usecase/interfaces"
)

var ErrEnrollmentNotFound = errors.New("enrollment not found")

// IEnrollmentUseCase exposes enrollment lookups for the back-office.

type IEnrollmentUseCase interface {
	GetByUserAndCourse(ctx context.Context, userID, courseID string) (entities.Enrollment, error)
}

type EnrollmentUseCase struct {
	repo interfaces.IEnrollmentRepository
}

var _ IEnrollmentUseCase = (*EnrollmentUseCase)(nil)

func NewEnrollmentUseCase(repo interfaces.IEnrollmentRepository) *EnrollmentUseCase {
	return &EnrollmentUseCase{repo: repo}
}

func (u *EnrollmentUseCase) GetByUserAndCourse(ctx context.Context, userID, courseID string) (entities.Enrollment, error) {
	userID = strings.TrimSpace(userID)
	courseID = strings.TrimSpace(courseID)
	if userID == "" {
		return entities.Enrollment{}, ErrInvalidUserID
	}
	if courseID == "" {
		return entities.Enrollment{}, ErrInvalidCourseID
	}

	e, err := u.repo.GetByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		return entities.Enrollment{}, err
	}
	if e.UserID == "" {
		return entities.Enrollment{}, ErrEnrollmentNotFound
	}
	return e, nil
}
