package models

// Instructor defines the instructor profile based on the 'instructors' table.
// At most one profile exists per user; its presence is what makes a user an
// instructor.
type Instructor struct {
	ID     int64  `json:"id" db:"id" example:"1"`          // Unique identifier for the instructor record
	UserID int64  `json:"userId" db:"user_id" example:"5"` // ID of the associated user account
	Bio    string `json:"bio" db:"bio"`                    // Free-text biography

	// Relations (populated when needed)
	User *User `json:"user,omitempty"` // Associated user information
}
