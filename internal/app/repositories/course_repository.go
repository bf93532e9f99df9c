package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emrekb/coursedeck/internal/app/models"
	"github.com/emrekb/coursedeck/internal/pkg/apperrors"
)

// courseColumns is the select list shared by course queries. The instructor
// join is LEFT: a course may be orphaned when its instructor is deleted.
const courseSelect = `
	SELECT c.id, c.title, c.description, c.start_date, c.end_date, c.instructor_id,
	       i.id, i.user_id, i.bio,
	       u.id, u.email, u.first_name, u.last_name
	FROM courses c
	LEFT JOIN instructors i ON i.id = c.instructor_id
	LEFT JOIN users u ON u.id = i.user_id
`

// CourseRepository handles database operations for courses
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
	}
}

// Create inserts a new course
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (title, description, start_date, end_date, instructor_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		course.Title, course.Description, course.StartDate, course.EndDate, course.InstructorID,
	).Scan(&course.ID)
	if err != nil {
		return fmt.Errorf("error creating course: %w", err)
	}

	return nil
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	var course models.Course
	var instructorID, instructorUserID, userID *int64
	var bio, email, firstName, lastName *string

	err := row.Scan(
		&course.ID,
		&course.Title,
		&course.Description,
		&course.StartDate,
		&course.EndDate,
		&course.InstructorID,
		&instructorID,
		&instructorUserID,
		&bio,
		&userID,
		&email,
		&firstName,
		&lastName,
	)
	if err != nil {
		return nil, err
	}

	if instructorID != nil {
		instructor := &models.Instructor{
			ID:     *instructorID,
			UserID: *instructorUserID,
		}
		if bio != nil {
			instructor.Bio = *bio
		}
		if userID != nil {
			user := &models.User{ID: *userID}
			if email != nil {
				user.Email = *email
			}
			if firstName != nil {
				user.FirstName = *firstName
			}
			if lastName != nil {
				user.LastName = *lastName
			}
			instructor.User = user
		}
		course.Instructor = instructor
	}

	return &course, nil
}

// GetByID retrieves a course by ID with its instructor resolved
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	course, err := scanCourse(r.db.QueryRow(ctx, courseSelect+` WHERE c.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	return course, nil
}

// GetAll retrieves all courses with their instructors resolved
func (r *CourseRepository) GetAll(ctx context.Context) ([]*models.Course, error) {
	rows, err := r.db.Query(ctx, courseSelect+` ORDER BY c.id`)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}

// Update updates a course's mutable fields
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	query := `
		UPDATE courses
		SET title = $1, description = $2, start_date = $3, end_date = $4
		WHERE id = $5
	`

	cmdTag, err := r.db.Exec(ctx, query,
		course.Title, course.Description, course.StartDate, course.EndDate, course.ID)
	if err != nil {
		return fmt.Errorf("error updating course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// Delete deletes a course by ID. Lessons, enrollments and grades cascade.
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// CountAll counts every course in the system
func (r *CourseRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM courses`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting courses: %w", err)
	}
	return count, nil
}
