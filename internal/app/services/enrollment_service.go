package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/emrekb/coursedeck/internal/app/auth"
	"github.com/emrekb/coursedeck/internal/app/models"
	"github.com/emrekb/coursedeck/internal/app/models/dto"
)

// EnrollmentStore is the full enrollment persistence surface.
type EnrollmentStore interface {
	GetOrCreate(ctx context.Context, studentID, courseID int64) (*models.Enrollment, bool, error)
	GetByStudentID(ctx context.Context, studentID int64) ([]*models.Enrollment, error)
	Exists(ctx context.Context, studentID, courseID int64) (bool, error)
	DeleteByStudentAndCourse(ctx context.Context, studentID, courseID int64) error
	Delete(ctx context.Context, id, studentID int64) error
}

// CourseReader is the single course lookup the enrollment service needs.
type CourseReader interface {
	GetByID(ctx context.Context, id int64) (*models.Course, error)
}

// EnrollmentService handles a student's own enrollments. Any authenticated
// user can enroll, instructors included.
type EnrollmentService struct {
	enrollmentStore EnrollmentStore
	courseStore     CourseReader
	logger          zerolog.Logger
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(
	enrollmentStore EnrollmentStore,
	courseStore CourseReader,
	logger zerolog.Logger,
) *EnrollmentService {
	return &EnrollmentService{
		enrollmentStore: enrollmentStore,
		courseStore:     courseStore,
		logger:          logger,
	}
}

// Enroll enrolls the requester into a course. The operation is idempotent:
// a repeat attempt reports "already enrolled" and leaves the single existing
// record untouched.
func (s *EnrollmentService) Enroll(ctx context.Context, role auth.Role, courseID int64) (*dto.EnrollStatusResponse, error) {
	if _, err := s.courseStore.GetByID(ctx, courseID); err != nil {
		return nil, err
	}

	_, created, err := s.enrollmentStore.GetOrCreate(ctx, role.UserID, courseID)
	if err != nil {
		return nil, err
	}

	status := dto.StatusAlreadyEnrolled
	if created {
		status = dto.StatusEnrolled
		s.logger.Info().
			Int64("studentID", role.UserID).
			Int64("courseID", courseID).
			Msg("Student enrolled")
	}

	return &dto.EnrollStatusResponse{Status: status}, nil
}

// Unenroll removes the requester's enrollment in a course. Not being
// enrolled is a distinguished error, not a silent no-op.
func (s *EnrollmentService) Unenroll(ctx context.Context, role auth.Role, courseID int64) error {
	if _, err := s.courseStore.GetByID(ctx, courseID); err != nil {
		return err
	}

	if err := s.enrollmentStore.DeleteByStudentAndCourse(ctx, role.UserID, courseID); err != nil {
		return err
	}

	s.logger.Info().
		Int64("studentID", role.UserID).
		Int64("courseID", courseID).
		Msg("Student unenrolled")

	return nil
}

// Status reports whether the requester is enrolled in a course
func (s *EnrollmentService) Status(ctx context.Context, role auth.Role, courseID int64) (*dto.EnrollmentStatusResponse, error) {
	if _, err := s.courseStore.GetByID(ctx, courseID); err != nil {
		return nil, err
	}

	enrolled, err := s.enrollmentStore.Exists(ctx, role.UserID, courseID)
	if err != nil {
		return nil, fmt.Errorf("error checking enrollment: %w", err)
	}

	return &dto.EnrollmentStatusResponse{
		IsEnrolled: enrolled,
		CourseID:   courseID,
		StudentID:  role.UserID,
	}, nil
}

// ListMine returns the requester's enrollments with full course
// representations nested.
func (s *EnrollmentService) ListMine(ctx context.Context, role auth.Role) ([]dto.EnrollmentResponse, error) {
	enrollments, err := s.enrollmentStore.GetByStudentID(ctx, role.UserID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.EnrollmentResponse, 0, len(enrollments))
	for _, enrollment := range enrollments {
		course, err := s.courseStore.GetByID(ctx, enrollment.CourseID)
		if err != nil {
			return nil, fmt.Errorf("error resolving course %d: %w", enrollment.CourseID, err)
		}
		enrollment.Course = course
		responses = append(responses, dto.NewEnrollmentResponse(enrollment))
	}
	return responses, nil
}

// DeleteByID removes one of the requester's enrollments by enrollment ID.
// Enrollments of other students are unreachable through this path.
func (s *EnrollmentService) DeleteByID(ctx context.Context, role auth.Role, enrollmentID int64) error {
	return s.enrollmentStore.Delete(ctx, enrollmentID, role.UserID)
}
