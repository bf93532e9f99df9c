package models

import "time"

// Course represents a course owned by an instructor.
type Course struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	StartDate   time.Time `json:"startDate" db:"start_date"`
	EndDate     time.Time `json:"endDate" db:"end_date"`
	// InstructorID is nullable: deleting an instructor orphans the course
	// rather than deleting it.
	InstructorID *int64 `json:"instructorId,omitempty" db:"instructor_id"`

	// Relations (populated when needed)
	Instructor *Instructor `json:"instructor,omitempty"`
	Lessons    []*Lesson   `json:"lessons,omitempty"`
}

// IsOwnedBy reports whether the course belongs to the given instructor profile.
func (c *Course) IsOwnedBy(instructorID int64) bool {
	return c.InstructorID != nil && *c.InstructorID == instructorID
}
