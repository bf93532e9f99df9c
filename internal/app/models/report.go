package models

import "time"

// Query-shaped rows used by the reporting aggregator. These are read-time
// projections, never stored.

// RecentEnrollment is an enrollment with student and course names resolved.
type RecentEnrollment struct {
	EnrollmentID   int64     `json:"enrollmentId" db:"enrollment_id"`
	StudentID      int64     `json:"studentId" db:"student_id"`
	StudentName    string    `json:"studentName" db:"student_name"`
	CourseID       int64     `json:"courseId" db:"course_id"`
	CourseTitle    string    `json:"courseTitle" db:"course_title"`
	EnrollmentDate time.Time `json:"enrollmentDate" db:"enrollment_date"`
}

// CourseSummary carries per-course counts for the instructor dashboard.
type CourseSummary struct {
	CourseID     int64  `json:"courseId" db:"course_id"`
	CourseTitle  string `json:"courseTitle" db:"course_title"`
	StudentCount int64  `json:"studentCount" db:"student_count"`
	LessonCount  int64  `json:"lessonCount" db:"lesson_count"`
}

// TrendPoint is a day-bucketed enrollment count. Days without enrollments
// produce no point.
type TrendPoint struct {
	Date  time.Time `json:"date" db:"bucket_date"`
	Count int64     `json:"count" db:"enrollment_count"`
}

// EnrolledStudent is a roster row for one course.
type EnrolledStudent struct {
	StudentID      int64     `json:"studentId" db:"student_id"`
	Name           string    `json:"name" db:"name"`
	Email          string    `json:"email" db:"email"`
	EnrollmentDate time.Time `json:"enrollmentDate" db:"enrollment_date"`
}
