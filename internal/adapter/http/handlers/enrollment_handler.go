package handlers

import (
	"errors"
	"log"
	"net/http"

	"aulaplus/internal/adapter/http/dto/response"
	"aulaplus/internal/usecase"
	"aulaplus/pkg"

	"github.com/gin-gonic/gin"
)

// EnrollmentHandler exposes enrollment lookups for the back-office.

type EnrollmentHandler struct {
	usecase usecase.IEnrollmentUseCase
}

func NewEnrollmentHandler(uc usecase.IEnrollmentUseCase) *EnrollmentHandler {
	return &EnrollmentHandler{usecase: uc}
}

// GetEnrollment returns the enrollment of one user in one course.
func (h *EnrollmentHandler) GetEnrollment(c *gin.Context) {
	userID := c.Param("user_id")
	courseID := c.Param("course_id")

	e, err := h.usecase.GetByUserAndCourse(c.Request.Context(), userID, courseID)
	if err != nil {
		log.Printf("[enrollment][handler] get failed user_id=%s course_id=%s err=%v", userID, courseID, err)
		appErr := mapEnrollmentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromEnrollment(e))
}

func mapEnrollmentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidUserID), errors.Is(err, usecase.ErrInvalidCourseID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrEnrollmentNotFound):
		return pkg.NewDomainErrorSimple("ENROLLMENT_NOT_FOUND", "Enrollment not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
