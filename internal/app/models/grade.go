package models

import "time"

// Grade records a numeric score for an enrollment. No range constraint is
// applied to the score; bounds are a pending product decision.
type Grade struct {
	ID           int64     `json:"id" db:"id"`
	EnrollmentID int64     `json:"enrollmentId" db:"enrollment_id"`
	Score        float64   `json:"score" db:"score"`
	DateReceived time.Time `json:"dateReceived" db:"date_received"`

	// Relations (populated when needed)
	Enrollment *Enrollment `json:"enrollment,omitempty"`
}
