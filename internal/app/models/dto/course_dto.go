package dto

import (
	"time"

	"github.com/emrekb/coursedeck/internal/app/models"
)

// CreateCourseRequest represents course creation data. The owning instructor
// is never client-supplied; it is forced to the requester's own profile.
type CreateCourseRequest struct {
	Title       string    `json:"title" binding:"required,max=200"`
	Description string    `json:"description" binding:"required"`
	StartDate   time.Time `json:"startDate" binding:"required"`
	EndDate     time.Time `json:"endDate" binding:"required"`
}

// UpdateCourseRequest represents course update data
type UpdateCourseRequest struct {
	Title       string    `json:"title" binding:"required,max=200"`
	Description string    `json:"description" binding:"required"`
	StartDate   time.Time `json:"startDate" binding:"required"`
	EndDate     time.Time `json:"endDate" binding:"required"`
}

// InstructorResponse represents an instructor in course representations
type InstructorResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Bio  string `json:"bio"`
}

// CourseResponse represents a course tailored to the current viewer.
// IsEnrolled is derived per request and is always false for anonymous
// viewers.
type CourseResponse struct {
	ID          int64               `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	StartDate   time.Time           `json:"startDate"`
	EndDate     time.Time           `json:"endDate"`
	Instructor  *InstructorResponse `json:"instructor"`
	IsEnrolled  bool                `json:"isEnrolled"`
	Lessons     []LessonResponse    `json:"lessons"`
}

// CourseWithEnrollmentsResponse nests the course roster
type CourseWithEnrollmentsResponse struct {
	CourseResponse
	Enrollments []EnrollmentResponse `json:"enrollments"`
}

// NewInstructorResponse builds an instructor representation, resolving the
// display name from the linked user when present.
func NewInstructorResponse(instructor *models.Instructor) *InstructorResponse {
	if instructor == nil {
		return nil
	}

	resp := &InstructorResponse{
		ID:  instructor.ID,
		Bio: instructor.Bio,
	}
	if instructor.User != nil {
		resp.Name = instructor.User.FullName()
	}
	return resp
}

// NewCourseResponse assembles a course representation for one viewer.
func NewCourseResponse(course *models.Course, isEnrolled bool) CourseResponse {
	resp := CourseResponse{
		ID:          course.ID,
		Title:       course.Title,
		Description: course.Description,
		StartDate:   course.StartDate,
		EndDate:     course.EndDate,
		Instructor:  NewInstructorResponse(course.Instructor),
		IsEnrolled:  isEnrolled,
		Lessons:     make([]LessonResponse, 0, len(course.Lessons)),
	}
	for _, lesson := range course.Lessons {
		resp.Lessons = append(resp.Lessons, NewLessonResponse(lesson))
	}
	return resp
}
