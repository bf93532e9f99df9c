package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/emrekb/coursedeck/internal/app/auth"
	"github.com/emrekb/coursedeck/internal/app/models"
	"github.com/emrekb/coursedeck/internal/app/models/dto"
)

// GradeStore is the grade persistence surface.
type GradeStore interface {
	Create(ctx context.Context, grade *models.Grade) error
	GetByID(ctx context.Context, id int64) (*models.Grade, error)
	GetByInstructorID(ctx context.Context, instructorID int64) ([]*models.Grade, error)
	GetByStudentID(ctx context.Context, studentID int64) ([]*models.Grade, error)
	Update(ctx context.Context, grade *models.Grade) error
	Delete(ctx context.Context, id int64) error
}

// EnrollmentResolver loads an enrollment with its course attached, for
// ownership checks.
type EnrollmentResolver interface {
	GetByID(ctx context.Context, id int64) (*models.Enrollment, error)
}

// GradeService handles grading. Instructors grade enrollments in their own
// courses; students read their own grades.
type GradeService struct {
	gradeStore      GradeStore
	enrollmentStore EnrollmentResolver
	policy          *auth.Policy
	logger          zerolog.Logger
}

// NewGradeService creates a new GradeService
func NewGradeService(
	gradeStore GradeStore,
	enrollmentStore EnrollmentResolver,
	policy *auth.Policy,
	logger zerolog.Logger,
) *GradeService {
	return &GradeService{
		gradeStore:      gradeStore,
		enrollmentStore: enrollmentStore,
		policy:          policy,
		logger:          logger,
	}
}

// List returns the grades visible to the requester: an instructor sees all
// grades in their courses, a student their own grades.
func (s *GradeService) List(ctx context.Context, role auth.Role) ([]dto.GradeResponse, error) {
	var grades []*models.Grade
	var err error

	if role.IsInstructor() {
		grades, err = s.gradeStore.GetByInstructorID(ctx, role.InstructorID)
	} else {
		grades, err = s.gradeStore.GetByStudentID(ctx, role.UserID)
	}
	if err != nil {
		return nil, err
	}

	responses := make([]dto.GradeResponse, 0, len(grades))
	for _, grade := range grades {
		responses = append(responses, dto.NewGradeResponse(grade))
	}
	return responses, nil
}

// Get returns one grade if the requester may see it
func (s *GradeService) Get(ctx context.Context, role auth.Role, gradeID int64) (*dto.GradeResponse, error) {
	grade, err := s.visibleGrade(ctx, role, gradeID)
	if err != nil {
		return nil, err
	}

	resp := dto.NewGradeResponse(grade)
	return &resp, nil
}

// Create records a grade for an enrollment in one of the requester's courses
func (s *GradeService) Create(ctx context.Context, role auth.Role, req *dto.CreateGradeRequest) (*dto.GradeResponse, error) {
	enrollment, err := s.enrollmentStore.GetByID(ctx, req.EnrollmentID)
	if err != nil {
		return nil, err
	}

	if err := s.policy.CanGradeEnrollment(role, enrollment.Course); err != nil {
		return nil, err
	}

	grade := &models.Grade{
		EnrollmentID: req.EnrollmentID,
		Score:        *req.Score,
	}

	if err := s.gradeStore.Create(ctx, grade); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("gradeID", grade.ID).
		Int64("enrollmentID", req.EnrollmentID).
		Int64("instructorID", role.InstructorID).
		Msg("Grade recorded")

	resp := dto.NewGradeResponse(grade)
	return &resp, nil
}

// Update changes the score of a grade in one of the requester's courses
func (s *GradeService) Update(ctx context.Context, role auth.Role, gradeID int64, req *dto.UpdateGradeRequest) (*dto.GradeResponse, error) {
	grade, err := s.ownedGrade(ctx, role, gradeID)
	if err != nil {
		return nil, err
	}

	grade.Score = *req.Score
	if err := s.gradeStore.Update(ctx, grade); err != nil {
		return nil, err
	}

	resp := dto.NewGradeResponse(grade)
	return &resp, nil
}

// Delete removes a grade in one of the requester's courses
func (s *GradeService) Delete(ctx context.Context, role auth.Role, gradeID int64) error {
	if _, err := s.ownedGrade(ctx, role, gradeID); err != nil {
		return err
	}
	return s.gradeStore.Delete(ctx, gradeID)
}

// ownedGrade loads a grade and checks the requester owns the course it
// belongs to.
func (s *GradeService) ownedGrade(ctx context.Context, role auth.Role, gradeID int64) (*models.Grade, error) {
	grade, err := s.gradeStore.GetByID(ctx, gradeID)
	if err != nil {
		return nil, err
	}
	if grade.Enrollment == nil || grade.Enrollment.Course == nil {
		return nil, fmt.Errorf("grade %d loaded without its enrollment", grade.ID)
	}

	if err := s.policy.CanGradeEnrollment(role, grade.Enrollment.Course); err != nil {
		return nil, err
	}
	return grade, nil
}

// visibleGrade loads a grade and checks the requester may read it: the
// owning instructor or the graded student.
func (s *GradeService) visibleGrade(ctx context.Context, role auth.Role, gradeID int64) (*models.Grade, error) {
	grade, err := s.gradeStore.GetByID(ctx, gradeID)
	if err != nil {
		return nil, err
	}
	if grade.Enrollment == nil || grade.Enrollment.Course == nil {
		return nil, fmt.Errorf("grade %d loaded without its enrollment", grade.ID)
	}

	if grade.Enrollment.StudentID == role.UserID {
		return grade, nil
	}

	if err := s.policy.CanGradeEnrollment(role, grade.Enrollment.Course); err != nil {
		return nil, err
	}
	return grade, nil
}
