package dto

import (
	"time"

	"github.com/emrekb/coursedeck/internal/app/models"
)

// Enrollment status strings returned by the enroll endpoint. Enrolling is
// idempotent: a second attempt reports StatusAlreadyEnrolled.
const (
	StatusEnrolled        = "enrolled"
	StatusAlreadyEnrolled = "already enrolled"
)

// CreateEnrollmentRequest enrolls the authenticated user into a course. The
// student is never client-supplied.
type CreateEnrollmentRequest struct {
	CourseID int64 `json:"courseId" binding:"required,min=1"`
}

// EnrollStatusResponse is the outcome of an enroll attempt
type EnrollStatusResponse struct {
	Status string `json:"status" example:"enrolled"`
}

// EnrollmentStatusResponse answers "is this viewer enrolled in this course"
type EnrollmentStatusResponse struct {
	IsEnrolled bool  `json:"isEnrolled"`
	CourseID   int64 `json:"courseId"`
	StudentID  int64 `json:"studentId"`
}

// EnrollmentResponse nests the full course representation rather than a bare
// reference.
type EnrollmentResponse struct {
	ID             int64          `json:"id"`
	StudentID      int64          `json:"studentId"`
	Course         CourseResponse `json:"course"`
	EnrollmentDate time.Time      `json:"enrollmentDate"`
}

// NewEnrollmentResponse assembles an enrollment representation for the viewer
// that owns it. The nested course is viewed by the enrolled student, so
// isEnrolled is true by construction.
func NewEnrollmentResponse(enrollment *models.Enrollment) EnrollmentResponse {
	resp := EnrollmentResponse{
		ID:             enrollment.ID,
		StudentID:      enrollment.StudentID,
		EnrollmentDate: enrollment.EnrollmentDate,
	}
	if enrollment.Course != nil {
		resp.Course = NewCourseResponse(enrollment.Course, true)
	}
	return resp
}
