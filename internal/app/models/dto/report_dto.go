package dto

import (
	"time"

	"github.com/emrekb/coursedeck/internal/app/models"
)

// RecentEnrollmentResponse is an enrollment with names resolved, used by the
// dashboard's "recent activity" slices.
type RecentEnrollmentResponse struct {
	EnrollmentID   int64     `json:"enrollmentId"`
	StudentID      int64     `json:"studentId"`
	StudentName    string    `json:"studentName"`
	CourseID       int64     `json:"courseId"`
	CourseTitle    string    `json:"courseTitle"`
	EnrollmentDate time.Time `json:"enrollmentDate"`
}

// DashboardCourseResponse is one per-course summary row on the dashboard
type DashboardCourseResponse struct {
	CourseID          int64                      `json:"courseId"`
	Title             string                     `json:"title"`
	StudentCount      int64                      `json:"studentCount"`
	LessonCount       int64                      `json:"lessonCount"`
	RecentEnrollments []RecentEnrollmentResponse `json:"recentEnrollments"`
}

// DashboardResponse is the instructor dashboard report. All numbers are
// scoped to the requesting instructor's own courses.
type DashboardResponse struct {
	TotalCourses      int64                      `json:"totalCourses"`
	TotalStudents     int64                      `json:"totalStudents"`
	TotalLessons      int64                      `json:"totalLessons"`
	RecentEnrollments []RecentEnrollmentResponse `json:"recentEnrollments"`
	Courses           []DashboardCourseResponse  `json:"courses"`
	// EnrollmentTrends maps calendar dates (YYYY-MM-DD) in the trailing
	// 7 days to enrollment counts; days with zero enrollments are omitted.
	EnrollmentTrends map[string]int64 `json:"enrollmentTrends"`
}

// EnrolledStudentResponse is one roster row in the course details report
type EnrolledStudentResponse struct {
	StudentID      int64     `json:"studentId"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	EnrollmentDate time.Time `json:"enrollmentDate"`
}

// CourseDetailsResponse is the instructor-facing report for one owned course
type CourseDetailsResponse struct {
	Course           CourseResponse            `json:"course"`
	TotalStudents    int64                     `json:"totalStudents"`
	TotalLessons     int64                     `json:"totalLessons"`
	EnrolledStudents []EnrolledStudentResponse `json:"enrolledStudents"`
	Lessons          []LessonResponse          `json:"lessons"`
	EnrollmentRate   float64                   `json:"enrollmentRate"`
}

// NewRecentEnrollmentResponse converts a query row
func NewRecentEnrollmentResponse(row *models.RecentEnrollment) RecentEnrollmentResponse {
	return RecentEnrollmentResponse{
		EnrollmentID:   row.EnrollmentID,
		StudentID:      row.StudentID,
		StudentName:    row.StudentName,
		CourseID:       row.CourseID,
		CourseTitle:    row.CourseTitle,
		EnrollmentDate: row.EnrollmentDate,
	}
}

// NewRecentEnrollmentResponses converts a slice of query rows
func NewRecentEnrollmentResponses(rows []*models.RecentEnrollment) []RecentEnrollmentResponse {
	out := make([]RecentEnrollmentResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, NewRecentEnrollmentResponse(row))
	}
	return out
}

// NewEnrolledStudentResponses converts roster query rows
func NewEnrolledStudentResponses(rows []*models.EnrolledStudent) []EnrolledStudentResponse {
	out := make([]EnrolledStudentResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, EnrolledStudentResponse{
			StudentID:      row.StudentID,
			Name:           row.Name,
			Email:          row.Email,
			EnrollmentDate: row.EnrollmentDate,
		})
	}
	return out
}
