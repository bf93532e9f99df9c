package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emrekb/coursedeck/internal/app/models"
	"github.com/emrekb/coursedeck/internal/pkg/apperrors"
	"github.com/emrekb/coursedeck/internal/pkg/dberrors"
)

// InstructorRepository handles database operations for instructor profiles
type InstructorRepository struct {
	db *pgxpool.Pool
}

// NewInstructorRepository creates a new instructor repository
func NewInstructorRepository(db *pgxpool.Pool) *InstructorRepository {
	return &InstructorRepository{
		db: db,
	}
}

// Create inserts a new instructor profile. A user can hold at most one.
func (r *InstructorRepository) Create(ctx context.Context, instructor *models.Instructor) error {
	query := `
		INSERT INTO instructors (user_id, bio)
		VALUES ($1, $2)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, instructor.UserID, instructor.Bio).Scan(&instructor.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "instructors_user_id_key") {
			return apperrors.ErrResourceAlreadyExists
		}
		return fmt.Errorf("error creating instructor: %w", err)
	}

	return nil
}

// GetByID retrieves an instructor profile with its user
func (r *InstructorRepository) GetByID(ctx context.Context, id int64) (*models.Instructor, error) {
	query := `
		SELECT i.id, i.user_id, i.bio,
		       u.id, u.email, u.first_name, u.last_name
		FROM instructors i
		JOIN users u ON u.id = i.user_id
		WHERE i.id = $1
	`

	var instructor models.Instructor
	var user models.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&instructor.ID,
		&instructor.UserID,
		&instructor.Bio,
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInstructorNotFound
		}
		return nil, fmt.Errorf("error retrieving instructor: %w", err)
	}

	instructor.User = &user
	return &instructor, nil
}

// GetByUserID retrieves the instructor profile owned by a user, if any.
// The role resolver treats apperrors.ErrInstructorNotFound as "student".
func (r *InstructorRepository) GetByUserID(ctx context.Context, userID int64) (*models.Instructor, error) {
	query := `
		SELECT id, user_id, bio
		FROM instructors
		WHERE user_id = $1
	`

	var instructor models.Instructor
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&instructor.ID,
		&instructor.UserID,
		&instructor.Bio,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInstructorNotFound
		}
		return nil, fmt.Errorf("error retrieving instructor by user: %w", err)
	}

	return &instructor, nil
}
