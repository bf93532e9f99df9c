package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emrekb/coursedeck/internal/app/models"
	"github.com/emrekb/coursedeck/internal/pkg/apperrors"
	"github.com/emrekb/coursedeck/internal/pkg/dberrors"
)

// GradeRepository handles database operations for grades
type GradeRepository struct {
	db *pgxpool.Pool
}

// NewGradeRepository creates a new grade repository
func NewGradeRepository(db *pgxpool.Pool) *GradeRepository {
	return &GradeRepository{
		db: db,
	}
}

const gradeSelect = `
	SELECT g.id, g.enrollment_id, g.score, g.date_received,
	       e.id, e.student_id, e.course_id, e.enrollment_date,
	       c.id, c.title, c.description, c.start_date, c.end_date, c.instructor_id
	FROM grades g
	JOIN enrollments e ON e.id = g.enrollment_id
	JOIN courses c ON c.id = e.course_id
`

func scanGrade(row pgx.Row) (*models.Grade, error) {
	var grade models.Grade
	var enrollment models.Enrollment
	var course models.Course

	err := row.Scan(
		&grade.ID,
		&grade.EnrollmentID,
		&grade.Score,
		&grade.DateReceived,
		&enrollment.ID,
		&enrollment.StudentID,
		&enrollment.CourseID,
		&enrollment.EnrollmentDate,
		&course.ID,
		&course.Title,
		&course.Description,
		&course.StartDate,
		&course.EndDate,
		&course.InstructorID,
	)
	if err != nil {
		return nil, err
	}

	enrollment.Course = &course
	grade.Enrollment = &enrollment
	return &grade, nil
}

// Create inserts a new grade for an enrollment
func (r *GradeRepository) Create(ctx context.Context, grade *models.Grade) error {
	query := `
		INSERT INTO grades (enrollment_id, score, date_received)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	grade.DateReceived = time.Now()

	err := r.db.QueryRow(ctx, query,
		grade.EnrollmentID,
		grade.Score,
		grade.DateReceived,
	).Scan(&grade.ID)

	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrEnrollmentNotFound
		}
		return fmt.Errorf("error creating grade: %w", err)
	}

	return nil
}

// GetByID retrieves a grade with its enrollment and course resolved
func (r *GradeRepository) GetByID(ctx context.Context, id int64) (*models.Grade, error) {
	grade, err := scanGrade(r.db.QueryRow(ctx, gradeSelect+` WHERE g.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrGradeNotFound
		}
		return nil, fmt.Errorf("error retrieving grade: %w", err)
	}

	return grade, nil
}

// GetByInstructorID retrieves all grades in courses owned by an instructor
func (r *GradeRepository) GetByInstructorID(ctx context.Context, instructorID int64) ([]*models.Grade, error) {
	return r.list(ctx, gradeSelect+` WHERE c.instructor_id = $1 ORDER BY g.date_received DESC, g.id DESC`, instructorID)
}

// GetByStudentID retrieves a student's own grades
func (r *GradeRepository) GetByStudentID(ctx context.Context, studentID int64) ([]*models.Grade, error) {
	return r.list(ctx, gradeSelect+` WHERE e.student_id = $1 ORDER BY g.date_received DESC, g.id DESC`, studentID)
}

func (r *GradeRepository) list(ctx context.Context, query string, args ...any) ([]*models.Grade, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing grades: %w", err)
	}
	defer rows.Close()

	var grades []*models.Grade
	for rows.Next() {
		grade, err := scanGrade(rows)
		if err != nil {
			return nil, err
		}
		grades = append(grades, grade)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return grades, nil
}

// Update changes the score of an existing grade. The received date is kept
// from the original grading.
func (r *GradeRepository) Update(ctx context.Context, grade *models.Grade) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE grades SET score = $1 WHERE id = $2`,
		grade.Score, grade.ID)
	if err != nil {
		return fmt.Errorf("error updating grade: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrGradeNotFound
	}

	return nil
}

// Delete removes a grade by ID
func (r *GradeRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM grades WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting grade: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrGradeNotFound
	}

	return nil
}
