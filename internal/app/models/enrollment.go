package models

import "time"

// Enrollment is the join record granting a student visibility into a course.
// The (student_id, course_id) pair is unique.
type Enrollment struct {
	ID             int64     `json:"id" db:"id"`
	StudentID      int64     `json:"studentId" db:"student_id"`
	CourseID       int64     `json:"courseId" db:"course_id"`
	EnrollmentDate time.Time `json:"enrollmentDate" db:"enrollment_date"`

	// Relations (populated when needed)
	Student *User   `json:"student,omitempty"`
	Course  *Course `json:"course,omitempty"`
}
