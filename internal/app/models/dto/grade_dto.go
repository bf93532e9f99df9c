package dto

import (
	"time"

	"github.com/emrekb/coursedeck/internal/app/models"
)

// CreateGradeRequest represents grade creation data. No range constraint is
// applied to the score; it is a pointer so a zero score still satisfies the
// required binding.
type CreateGradeRequest struct {
	EnrollmentID int64    `json:"enrollmentId" binding:"required,min=1"`
	Score        *float64 `json:"score" binding:"required"`
}

// UpdateGradeRequest represents grade update data
type UpdateGradeRequest struct {
	Score *float64 `json:"score" binding:"required"`
}

// GradeResponse represents a grade
type GradeResponse struct {
	ID           int64     `json:"id"`
	EnrollmentID int64     `json:"enrollmentId"`
	Score        float64   `json:"score"`
	DateReceived time.Time `json:"dateReceived"`
}

// NewGradeResponse builds a grade representation
func NewGradeResponse(grade *models.Grade) GradeResponse {
	return GradeResponse{
		ID:           grade.ID,
		EnrollmentID: grade.EnrollmentID,
		Score:        grade.Score,
		DateReceived: grade.DateReceived,
	}
}
