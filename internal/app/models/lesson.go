package models

import "time"

// Lesson represents a lesson within a course. The (course_id, lesson_order)
// pair is unique; listings are ordered ascending by lesson_order.
type Lesson struct {
	ID        int64     `json:"id" db:"id"`
	CourseID  int64     `json:"courseId" db:"course_id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	Order     int       `json:"order" db:"lesson_order"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
