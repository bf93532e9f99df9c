package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/emrekb/coursedeck/internal/app/auth"
	"github.com/emrekb/coursedeck/internal/app/models"
	"github.com/emrekb/coursedeck/internal/app/models/dto"
	"github.com/emrekb/coursedeck/internal/pkg/helpers"
)

// Recent-activity slices on the reports are capped at this many rows.
const recentEnrollmentLimit = 5

// Enrollment trends cover the trailing week, current day included.
const trendWindowDays = 7

// ReportStore is the aggregation query surface behind the reports.
type ReportStore interface {
	CountCoursesByInstructor(ctx context.Context, instructorID int64) (int64, error)
	CountEnrollmentsByInstructor(ctx context.Context, instructorID int64) (int64, error)
	CountLessonsByInstructor(ctx context.Context, instructorID int64) (int64, error)
	CountEnrollmentsByCourse(ctx context.Context, courseID int64) (int64, error)
	CountLessonsByCourse(ctx context.Context, courseID int64) (int64, error)
	RecentEnrollmentsByInstructor(ctx context.Context, instructorID int64, limit int) ([]*models.RecentEnrollment, error)
	RecentEnrollmentsByCourse(ctx context.Context, courseID int64, limit int) ([]*models.RecentEnrollment, error)
	CourseSummariesByInstructor(ctx context.Context, instructorID int64) ([]*models.CourseSummary, error)
	EnrollmentTrendByInstructor(ctx context.Context, instructorID int64, since time.Time) ([]*models.TrendPoint, error)
	EnrolledStudentsByCourse(ctx context.Context, courseID int64) ([]*models.EnrolledStudent, error)
}

// CourseCounter extends the course lookup with the system-wide course count
// used by the enrollment rate.
type CourseCounter interface {
	CourseReader
	CountAll(ctx context.Context) (int64, error)
}

// ReportService builds the instructor-facing reports. All numbers are
// scoped to the requesting instructor's own courses.
type ReportService struct {
	reportStore ReportStore
	courseStore CourseCounter
	lessonStore LessonStore
	policy      *auth.Policy
	logger      zerolog.Logger
	now         func() time.Time
}

// NewReportService creates a new ReportService
func NewReportService(
	reportStore ReportStore,
	courseStore CourseCounter,
	lessonStore LessonStore,
	policy *auth.Policy,
	logger zerolog.Logger,
) *ReportService {
	return &ReportService{
		reportStore: reportStore,
		courseStore: courseStore,
		lessonStore: lessonStore,
		policy:      policy,
		logger:      logger,
		now:         time.Now,
	}
}

// Dashboard assembles the instructor dashboard: totals, recent activity,
// per-course summaries and the trailing-week enrollment trend.
func (s *ReportService) Dashboard(ctx context.Context, role auth.Role) (*dto.DashboardResponse, error) {
	if err := s.policy.CanViewReports(role); err != nil {
		return nil, err
	}
	instructorID := role.InstructorID

	totalCourses, err := s.reportStore.CountCoursesByInstructor(ctx, instructorID)
	if err != nil {
		return nil, err
	}
	totalStudents, err := s.reportStore.CountEnrollmentsByInstructor(ctx, instructorID)
	if err != nil {
		return nil, err
	}
	totalLessons, err := s.reportStore.CountLessonsByInstructor(ctx, instructorID)
	if err != nil {
		return nil, err
	}

	recent, err := s.reportStore.RecentEnrollmentsByInstructor(ctx, instructorID, recentEnrollmentLimit)
	if err != nil {
		return nil, err
	}

	summaries, err := s.reportStore.CourseSummariesByInstructor(ctx, instructorID)
	if err != nil {
		return nil, err
	}

	courses := make([]dto.DashboardCourseResponse, 0, len(summaries))
	for _, summary := range summaries {
		courseRecent, err := s.reportStore.RecentEnrollmentsByCourse(ctx, summary.CourseID, recentEnrollmentLimit)
		if err != nil {
			return nil, err
		}
		courses = append(courses, dto.DashboardCourseResponse{
			CourseID:          summary.CourseID,
			Title:             summary.CourseTitle,
			StudentCount:      summary.StudentCount,
			LessonCount:       summary.LessonCount,
			RecentEnrollments: dto.NewRecentEnrollmentResponses(courseRecent),
		})
	}

	trends, err := s.enrollmentTrends(ctx, instructorID)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardResponse{
		TotalCourses:      totalCourses,
		TotalStudents:     totalStudents,
		TotalLessons:      totalLessons,
		RecentEnrollments: dto.NewRecentEnrollmentResponses(recent),
		Courses:           courses,
		EnrollmentTrends:  trends,
	}, nil
}

// enrollmentTrends buckets the trailing week's enrollments by calendar
// date. The window starts at midnight six days ago so today is the seventh
// day; dates without enrollments are absent from the map.
func (s *ReportService) enrollmentTrends(ctx context.Context, instructorID int64) (map[string]int64, error) {
	since := helpers.StartOfDay(s.now()).AddDate(0, 0, -(trendWindowDays - 1))

	points, err := s.reportStore.EnrollmentTrendByInstructor(ctx, instructorID, since)
	if err != nil {
		return nil, err
	}

	trends := make(map[string]int64, len(points))
	for _, point := range points {
		trends[point.Date.Format("2006-01-02")] = point.Count
	}
	return trends, nil
}

// CourseDetails assembles the detailed report for one of the requester's
// courses: counts, the full roster and the ordered lesson list.
func (s *ReportService) CourseDetails(ctx context.Context, role auth.Role, courseID int64) (*dto.CourseDetailsResponse, error) {
	if err := s.policy.CanViewReports(role); err != nil {
		return nil, err
	}

	course, err := s.courseStore.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if err := s.policy.CanViewRoster(role, course); err != nil {
		return nil, err
	}

	totalStudents, err := s.reportStore.CountEnrollmentsByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	totalLessons, err := s.reportStore.CountLessonsByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	students, err := s.reportStore.EnrolledStudentsByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	lessons, err := s.lessonStore.GetByCourseID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	lessonResponses := make([]dto.LessonResponse, 0, len(lessons))
	for _, lesson := range lessons {
		lessonResponses = append(lessonResponses, dto.NewLessonResponse(lesson))
	}

	// TODO: confirm with product whether the rate should divide by the
	// number of registered students instead of the total course count.
	totalCourses, err := s.courseStore.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	var enrollmentRate float64
	if totalCourses > 0 {
		enrollmentRate = float64(totalStudents) / float64(totalCourses)
	}

	return &dto.CourseDetailsResponse{
		Course:           dto.NewCourseResponse(course, false),
		TotalStudents:    totalStudents,
		TotalLessons:     totalLessons,
		EnrolledStudents: dto.NewEnrolledStudentResponses(students),
		Lessons:          lessonResponses,
		EnrollmentRate:   enrollmentRate,
	}, nil
}
