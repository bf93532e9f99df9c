package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/emrekb/coursedeck/internal/app/auth"
	"github.com/emrekb/coursedeck/internal/app/models"
	"github.com/emrekb/coursedeck/internal/app/models/dto"
)

// CourseStore is the course persistence surface the course service needs.
type CourseStore interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	GetAll(ctx context.Context) ([]*models.Course, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id int64) error
}

// LessonStore is the lesson persistence surface shared by the course and
// lesson services.
type LessonStore interface {
	Create(ctx context.Context, lesson *models.Lesson) error
	GetByID(ctx context.Context, id int64) (*models.Lesson, error)
	GetByCourseID(ctx context.Context, courseID int64) ([]*models.Lesson, error)
	Update(ctx context.Context, lesson *models.Lesson) error
	Delete(ctx context.Context, id int64) error
}

// EnrollmentReader is the read-only enrollment surface used to tailor
// course representations to the viewer.
type EnrollmentReader interface {
	Exists(ctx context.Context, studentID, courseID int64) (bool, error)
	GetEnrolledCourseIDs(ctx context.Context, studentID int64) (map[int64]bool, error)
	GetByCourseID(ctx context.Context, courseID int64) ([]*models.Enrollment, error)
}

// CourseService handles course CRUD and viewer-tailored reads
type CourseService struct {
	courseStore     CourseStore
	lessonStore     LessonStore
	enrollmentStore EnrollmentReader
	policy          *auth.Policy
	logger          zerolog.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(
	courseStore CourseStore,
	lessonStore LessonStore,
	enrollmentStore EnrollmentReader,
	policy *auth.Policy,
	logger zerolog.Logger,
) *CourseService {
	return &CourseService{
		courseStore:     courseStore,
		lessonStore:     lessonStore,
		enrollmentStore: enrollmentStore,
		policy:          policy,
		logger:          logger,
	}
}

// List returns all courses, each tailored to the viewer. Anonymous viewers
// see isEnrolled=false everywhere; the enrolled set is fetched once for the
// whole listing.
func (s *CourseService) List(ctx context.Context, role auth.Role) ([]dto.CourseResponse, error) {
	courses, err := s.courseStore.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	enrolled := map[int64]bool{}
	if role.UserID > 0 {
		enrolled, err = s.enrollmentStore.GetEnrolledCourseIDs(ctx, role.UserID)
		if err != nil {
			return nil, fmt.Errorf("error resolving enrolled courses: %w", err)
		}
	}

	responses := make([]dto.CourseResponse, 0, len(courses))
	for _, course := range courses {
		responses = append(responses, dto.NewCourseResponse(course, enrolled[course.ID]))
	}
	return responses, nil
}

// Get returns one course with its ordered lessons, tailored to the viewer
func (s *CourseService) Get(ctx context.Context, role auth.Role, courseID int64) (*dto.CourseResponse, error) {
	course, err := s.courseStore.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	lessons, err := s.lessonStore.GetByCourseID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	course.Lessons = lessons

	isEnrolled := false
	if role.UserID > 0 {
		isEnrolled, err = s.enrollmentStore.Exists(ctx, role.UserID, courseID)
		if err != nil {
			return nil, fmt.Errorf("error checking enrollment: %w", err)
		}
	}

	resp := dto.NewCourseResponse(course, isEnrolled)
	return &resp, nil
}

// Create creates a course owned by the requesting instructor. The owner is
// always the requester's own profile regardless of the payload.
func (s *CourseService) Create(ctx context.Context, role auth.Role, req *dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	if err := s.policy.CanCreateCourse(role); err != nil {
		return nil, err
	}

	instructorID := role.InstructorID
	course := &models.Course{
		Title:        req.Title,
		Description:  req.Description,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		InstructorID: &instructorID,
	}

	if err := s.courseStore.Create(ctx, course); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("courseID", course.ID).
		Int64("instructorID", instructorID).
		Msg("Course created")

	// Re-read to resolve the instructor relation for the response
	created, err := s.courseStore.GetByID(ctx, course.ID)
	if err != nil {
		return nil, err
	}

	resp := dto.NewCourseResponse(created, false)
	return &resp, nil
}

// Update modifies a course owned by the requesting instructor
func (s *CourseService) Update(ctx context.Context, role auth.Role, courseID int64, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error) {
	course, err := s.courseStore.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if err := s.policy.CanModifyCourse(role, course); err != nil {
		return nil, err
	}

	course.Title = req.Title
	course.Description = req.Description
	course.StartDate = req.StartDate
	course.EndDate = req.EndDate

	if err := s.courseStore.Update(ctx, course); err != nil {
		return nil, err
	}

	resp := dto.NewCourseResponse(course, false)
	return &resp, nil
}

// Delete removes a course owned by the requesting instructor. Lessons and
// enrollments go with it.
func (s *CourseService) Delete(ctx context.Context, role auth.Role, courseID int64) error {
	course, err := s.courseStore.GetByID(ctx, courseID)
	if err != nil {
		return err
	}

	if err := s.policy.CanModifyCourse(role, course); err != nil {
		return err
	}

	if err := s.courseStore.Delete(ctx, courseID); err != nil {
		return err
	}

	s.logger.Info().
		Int64("courseID", courseID).
		Int64("instructorID", role.InstructorID).
		Msg("Course deleted")

	return nil
}

// GetRoster returns a course together with its enrollments for the
// owning instructor
func (s *CourseService) GetRoster(ctx context.Context, role auth.Role, courseID int64) (*dto.CourseWithEnrollmentsResponse, error) {
	course, err := s.courseStore.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if err := s.policy.CanViewRoster(role, course); err != nil {
		return nil, err
	}

	enrollments, err := s.enrollmentStore.GetByCourseID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.EnrollmentResponse, 0, len(enrollments))
	for _, enrollment := range enrollments {
		enrollment.Course = course
		responses = append(responses, dto.NewEnrollmentResponse(enrollment))
	}
	return &dto.CourseWithEnrollmentsResponse{
		CourseResponse: dto.NewCourseResponse(course, false),
		Enrollments:    responses,
	}, nil
}
