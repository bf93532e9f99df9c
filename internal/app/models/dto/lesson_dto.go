package dto

import (
	"time"

	"github.com/emrekb/coursedeck/internal/app/models"
)

// CreateLessonRequest represents lesson creation data
type CreateLessonRequest struct {
	Title   string `json:"title" binding:"required,max=200"`
	Content string `json:"content" binding:"required"`
	Order   int    `json:"order" binding:"required,min=1"`
}

// UpdateLessonRequest represents lesson update data
type UpdateLessonRequest struct {
	Title   string `json:"title" binding:"required,max=200"`
	Content string `json:"content" binding:"required"`
	Order   int    `json:"order" binding:"required,min=1"`
}

// LessonResponse represents a lesson
type LessonResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewLessonResponse builds a lesson representation
func NewLessonResponse(lesson *models.Lesson) LessonResponse {
	return LessonResponse{
		ID:        lesson.ID,
		Title:     lesson.Title,
		Content:   lesson.Content,
		Order:     lesson.Order,
		CreatedAt: lesson.CreatedAt,
		UpdatedAt: lesson.UpdatedAt,
	}
}
