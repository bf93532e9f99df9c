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

// EnrollmentRepository handles database operations for enrollments
type EnrollmentRepository struct {
	db *pgxpool.Pool
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: db,
	}
}

// GetOrCreate enrolls a student into a course, or returns the existing
// enrollment. Concurrent duplicate attempts resolve on the
// (student_id, course_id) uniqueness constraint: at most one insert wins,
// the loser falls through to the select.
func (r *EnrollmentRepository) GetOrCreate(ctx context.Context, studentID, courseID int64) (*models.Enrollment, bool, error) {
	insert := `
		INSERT INTO enrollments (student_id, course_id, enrollment_date)
		VALUES ($1, $2, $3)
		ON CONFLICT (student_id, course_id) DO NOTHING
		RETURNING id, enrollment_date
	`

	enrollment := &models.Enrollment{
		StudentID: studentID,
		CourseID:  courseID,
	}

	err := r.db.QueryRow(ctx, insert, studentID, courseID, time.Now()).Scan(
		&enrollment.ID, &enrollment.EnrollmentDate)
	if err == nil {
		return enrollment, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		if dberrors.IsForeignKeyViolation(err) {
			return nil, false, apperrors.ErrCourseNotFound
		}
		return nil, false, fmt.Errorf("error creating enrollment: %w", err)
	}

	// Conflict path: the pair already exists
	existing, err := r.GetByStudentAndCourse(ctx, studentID, courseID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// GetByStudentAndCourse retrieves the enrollment for a (student, course) pair
func (r *EnrollmentRepository) GetByStudentAndCourse(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	query := `
		SELECT id, student_id, course_id, enrollment_date
		FROM enrollments
		WHERE student_id = $1 AND course_id = $2
	`

	var enrollment models.Enrollment
	err := r.db.QueryRow(ctx, query, studentID, courseID).Scan(
		&enrollment.ID,
		&enrollment.StudentID,
		&enrollment.CourseID,
		&enrollment.EnrollmentDate,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}

	return &enrollment, nil
}

// GetByID retrieves an enrollment with its course (and the course's owner)
// resolved, for ownership checks on grading.
func (r *EnrollmentRepository) GetByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	query := `
		SELECT e.id, e.student_id, e.course_id, e.enrollment_date,
		       c.id, c.title, c.description, c.start_date, c.end_date, c.instructor_id
		FROM enrollments e
		JOIN courses c ON c.id = e.course_id
		WHERE e.id = $1
	`

	var enrollment models.Enrollment
	var course models.Course
	err := r.db.QueryRow(ctx, query, id).Scan(
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
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}

	enrollment.Course = &course
	return &enrollment, nil
}

// GetByStudentID retrieves a student's own enrollments, newest first
func (r *EnrollmentRepository) GetByStudentID(ctx context.Context, studentID int64) ([]*models.Enrollment, error) {
	query := `
		SELECT id, student_id, course_id, enrollment_date
		FROM enrollments
		WHERE student_id = $1
		ORDER BY enrollment_date DESC, id DESC
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []*models.Enrollment
	for rows.Next() {
		var enrollment models.Enrollment
		if err := rows.Scan(
			&enrollment.ID,
			&enrollment.StudentID,
			&enrollment.CourseID,
			&enrollment.EnrollmentDate,
		); err != nil {
			return nil, err
		}
		enrollments = append(enrollments, &enrollment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return enrollments, nil
}

// GetByCourseID retrieves all enrollments of one course with students resolved
func (r *EnrollmentRepository) GetByCourseID(ctx context.Context, courseID int64) ([]*models.Enrollment, error) {
	query := `
		SELECT e.id, e.student_id, e.course_id, e.enrollment_date,
		       u.id, u.email, u.first_name, u.last_name
		FROM enrollments e
		JOIN users u ON u.id = e.student_id
		WHERE e.course_id = $1
		ORDER BY e.enrollment_date DESC, e.id DESC
	`

	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("error listing course enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []*models.Enrollment
	for rows.Next() {
		var enrollment models.Enrollment
		var student models.User
		if err := rows.Scan(
			&enrollment.ID,
			&enrollment.StudentID,
			&enrollment.CourseID,
			&enrollment.EnrollmentDate,
			&student.ID,
			&student.Email,
			&student.FirstName,
			&student.LastName,
		); err != nil {
			return nil, err
		}
		enrollment.Student = &student
		enrollments = append(enrollments, &enrollment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return enrollments, nil
}

// Exists checks whether a (student, course) enrollment exists
func (r *EnrollmentRepository) Exists(ctx context.Context, studentID, courseID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM enrollments WHERE student_id = $1 AND course_id = $2)`,
		studentID, courseID).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking enrollment existence: %w", err)
	}

	return exists, nil
}

// GetEnrolledCourseIDs returns the set of course IDs a student is enrolled in
func (r *EnrollmentRepository) GetEnrolledCourseIDs(ctx context.Context, studentID int64) (map[int64]bool, error) {
	rows, err := r.db.Query(ctx, `SELECT course_id FROM enrollments WHERE student_id = $1`, studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing enrolled course IDs: %w", err)
	}
	defer rows.Close()

	courseIDs := make(map[int64]bool)
	for rows.Next() {
		var courseID int64
		if err := rows.Scan(&courseID); err != nil {
			return nil, err
		}
		courseIDs[courseID] = true
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courseIDs, nil
}

// DeleteByStudentAndCourse removes a student's enrollment in a course.
// Absence is the distinguished not-enrolled outcome, not a generic
// not-found.
func (r *EnrollmentRepository) DeleteByStudentAndCourse(ctx context.Context, studentID, courseID int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM enrollments WHERE student_id = $1 AND course_id = $2`,
		studentID, courseID)
	if err != nil {
		return fmt.Errorf("error deleting enrollment: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotEnrolled
	}

	return nil
}

// Delete removes an enrollment by ID, scoped to its owning student
func (r *EnrollmentRepository) Delete(ctx context.Context, id, studentID int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM enrollments WHERE id = $1 AND student_id = $2`,
		id, studentID)
	if err != nil {
		return fmt.Errorf("error deleting enrollment: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}

	return nil
}
