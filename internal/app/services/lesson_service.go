package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/emrekb/coursedeck/internal/app/auth"
	"github.com/emrekb/coursedeck/internal/app/models"
	"github.com/emrekb/coursedeck/internal/app/models/dto"
	"github.com/emrekb/coursedeck/internal/pkg/apperrors"
)

// LessonService handles lesson CRUD within a course. Writes require
// ownership of the parent course; reads are open.
type LessonService struct {
	lessonStore LessonStore
	courseStore CourseStore
	policy      *auth.Policy
	logger      zerolog.Logger
}

// NewLessonService creates a new LessonService
func NewLessonService(
	lessonStore LessonStore,
	courseStore CourseStore,
	policy *auth.Policy,
	logger zerolog.Logger,
) *LessonService {
	return &LessonService{
		lessonStore: lessonStore,
		courseStore: courseStore,
		policy:      policy,
		logger:      logger,
	}
}

// List returns a course's lessons ordered by their position
func (s *LessonService) List(ctx context.Context, courseID int64) ([]dto.LessonResponse, error) {
	// Distinguish an empty course from a missing one
	if _, err := s.courseStore.GetByID(ctx, courseID); err != nil {
		return nil, err
	}

	lessons, err := s.lessonStore.GetByCourseID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.LessonResponse, 0, len(lessons))
	for _, lesson := range lessons {
		responses = append(responses, dto.NewLessonResponse(lesson))
	}
	return responses, nil
}

// Get returns one lesson, verifying it belongs to the addressed course
func (s *LessonService) Get(ctx context.Context, courseID, lessonID int64) (*dto.LessonResponse, error) {
	lesson, err := s.getInCourse(ctx, courseID, lessonID)
	if err != nil {
		return nil, err
	}

	resp := dto.NewLessonResponse(lesson)
	return &resp, nil
}

// Create adds a lesson to a course owned by the requesting instructor.
// A duplicate order within the course is a conflict.
func (s *LessonService) Create(ctx context.Context, role auth.Role, courseID int64, req *dto.CreateLessonRequest) (*dto.LessonResponse, error) {
	course, err := s.courseStore.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if err := s.policy.CanModifyLessons(role, course); err != nil {
		return nil, err
	}

	lesson := &models.Lesson{
		CourseID: courseID,
		Title:    req.Title,
		Content:  req.Content,
		Order:    req.Order,
	}

	if err := s.lessonStore.Create(ctx, lesson); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("lessonID", lesson.ID).
		Int64("courseID", courseID).
		Int("order", lesson.Order).
		Msg("Lesson created")

	resp := dto.NewLessonResponse(lesson)
	return &resp, nil
}

// Update modifies a lesson in a course owned by the requesting instructor
func (s *LessonService) Update(ctx context.Context, role auth.Role, courseID, lessonID int64, req *dto.UpdateLessonRequest) (*dto.LessonResponse, error) {
	course, err := s.courseStore.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if err := s.policy.CanModifyLessons(role, course); err != nil {
		return nil, err
	}

	lesson, err := s.getInCourse(ctx, courseID, lessonID)
	if err != nil {
		return nil, err
	}

	lesson.Title = req.Title
	lesson.Content = req.Content
	lesson.Order = req.Order

	if err := s.lessonStore.Update(ctx, lesson); err != nil {
		return nil, err
	}

	resp := dto.NewLessonResponse(lesson)
	return &resp, nil
}

// Delete removes a lesson from a course owned by the requesting instructor
func (s *LessonService) Delete(ctx context.Context, role auth.Role, courseID, lessonID int64) error {
	course, err := s.courseStore.GetByID(ctx, courseID)
	if err != nil {
		return err
	}

	if err := s.policy.CanModifyLessons(role, course); err != nil {
		return err
	}

	if _, err := s.getInCourse(ctx, courseID, lessonID); err != nil {
		return err
	}

	return s.lessonStore.Delete(ctx, lessonID)
}

// getInCourse loads a lesson and checks it belongs to the addressed course.
// A lesson reached through the wrong course is not found, not forbidden.
func (s *LessonService) getInCourse(ctx context.Context, courseID, lessonID int64) (*models.Lesson, error) {
	lesson, err := s.lessonStore.GetByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if lesson.CourseID != courseID {
		return nil, apperrors.ErrLessonNotFound
	}
	return lesson, nil
}
