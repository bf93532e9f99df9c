package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emrekb/coursedeck/internal/app/auth"
	"github.com/emrekb/coursedeck/internal/app/models"
	"github.com/emrekb/coursedeck/internal/pkg/apperrors"
)

func newReportService(reports *stubReportStore, courses *stubCourseStore, lessons *stubLessonStore) *ReportService {
	return NewReportService(reports, courses, lessons, auth.NewPolicy(), zerolog.Nop())
}

func TestReportService_Dashboard(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 15, 14, 30, 0, 0, time.UTC)

	reports := &stubReportStore{
		totalCourses:     2,
		totalEnrollments: 9,
		totalLessons:     12,
		recent: []*models.RecentEnrollment{
			{EnrollmentID: 4, StudentID: 7, StudentName: "Alice Johnson", CourseID: 1, CourseTitle: "Algorithms"},
			{EnrollmentID: 3, StudentID: 8, StudentName: "Bob Smith", CourseID: 2, CourseTitle: "Databases"},
		},
		recentByCourse: map[int64][]*models.RecentEnrollment{
			1: {{EnrollmentID: 4, StudentID: 7, StudentName: "Alice Johnson", CourseID: 1, CourseTitle: "Algorithms"}},
		},
		summaries: []*models.CourseSummary{
			{CourseID: 1, CourseTitle: "Algorithms", StudentCount: 5, LessonCount: 8},
			{CourseID: 2, CourseTitle: "Databases", StudentCount: 4, LessonCount: 4},
		},
		trend: []*models.TrendPoint{
			{Date: time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC), Count: 3},
			{Date: time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), Count: 2},
		},
	}
	service := newReportService(reports, newStubCourseStore(), newStubLessonStore())
	service.now = func() time.Time { return now }

	resp, err := service.Dashboard(ctx, owningInstructor)
	require.NoError(t, err)

	assert.Equal(t, int64(2), resp.TotalCourses)
	assert.Equal(t, int64(9), resp.TotalStudents)
	assert.Equal(t, int64(12), resp.TotalLessons)
	require.Len(t, resp.RecentEnrollments, 2)
	assert.Equal(t, "Alice Johnson", resp.RecentEnrollments[0].StudentName)

	require.Len(t, resp.Courses, 2)
	assert.Equal(t, "Algorithms", resp.Courses[0].Title)
	assert.Equal(t, int64(5), resp.Courses[0].StudentCount)
	assert.Len(t, resp.Courses[0].RecentEnrollments, 1)
	assert.Empty(t, resp.Courses[1].RecentEnrollments)

	// Trend keys are calendar dates; zero days are absent
	require.Len(t, resp.EnrollmentTrends, 2)
	assert.Equal(t, int64(3), resp.EnrollmentTrends["2025-03-12"])
	assert.Equal(t, int64(2), resp.EnrollmentTrends["2025-03-15"])

	// Window starts at midnight six days back, making today the seventh day
	assert.Equal(t, time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC), reports.trendSince)
}

func TestReportService_Dashboard_StudentForbidden(t *testing.T) {
	service := newReportService(&stubReportStore{}, newStubCourseStore(), newStubLessonStore())

	_, err := service.Dashboard(context.Background(), gradedStudent)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestReportService_Dashboard_RecentCappedAtLimit(t *testing.T) {
	recent := make([]*models.RecentEnrollment, 0, 8)
	for i := int64(1); i <= 8; i++ {
		recent = append(recent, &models.RecentEnrollment{EnrollmentID: i})
	}
	service := newReportService(&stubReportStore{recent: recent}, newStubCourseStore(), newStubLessonStore())

	resp, err := service.Dashboard(context.Background(), owningInstructor)
	require.NoError(t, err)
	assert.Len(t, resp.RecentEnrollments, recentEnrollmentLimit)
}

func TestReportService_CourseDetails(t *testing.T) {
	ctx := context.Background()
	courses := newStubCourseStore(
		&models.Course{ID: 1, Title: "Algorithms", InstructorID: int64Ptr(5)},
		&models.Course{ID: 2, Title: "Databases", InstructorID: int64Ptr(6)},
	)
	lessons := newStubLessonStore(
		&models.Lesson{ID: 1, CourseID: 1, Title: "Sorting", Order: 1},
		&models.Lesson{ID: 2, CourseID: 1, Title: "Graphs", Order: 2},
	)
	reports := &stubReportStore{
		courseEnrollments: map[int64]int64{1: 6},
		courseLessons:     map[int64]int64{1: 2},
		roster: map[int64][]*models.EnrolledStudent{
			1: {
				{StudentID: 7, Name: "Alice Johnson", Email: "alice@example.com"},
				{StudentID: 8, Name: "Bob Smith", Email: "bob@example.com"},
			},
		},
	}
	service := newReportService(reports, courses, lessons)

	resp, err := service.CourseDetails(ctx, owningInstructor, 1)
	require.NoError(t, err)

	assert.Equal(t, "Algorithms", resp.Course.Title)
	assert.Equal(t, int64(6), resp.TotalStudents)
	assert.Equal(t, int64(2), resp.TotalLessons)
	require.Len(t, resp.EnrolledStudents, 2)
	assert.Equal(t, "alice@example.com", resp.EnrolledStudents[0].Email)
	require.Len(t, resp.Lessons, 2)
	assert.Equal(t, "Sorting", resp.Lessons[0].Title)

	// 6 enrollments over 2 courses in the system, kept as a plain ratio
	assert.InDelta(t, 3.0, resp.EnrollmentRate, 0.001)
}

func TestReportService_CourseDetails_NotOwnedCourse(t *testing.T) {
	courses := newStubCourseStore(&models.Course{ID: 2, InstructorID: int64Ptr(6)})
	service := newReportService(&stubReportStore{}, courses, newStubLessonStore())

	_, err := service.CourseDetails(context.Background(), owningInstructor, 2)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestReportService_CourseDetails_NotFound(t *testing.T) {
	service := newReportService(&stubReportStore{}, newStubCourseStore(), newStubLessonStore())

	_, err := service.CourseDetails(context.Background(), owningInstructor, 42)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}
