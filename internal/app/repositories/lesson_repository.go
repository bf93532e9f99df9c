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

// LessonRepository handles database operations for lessons
type LessonRepository struct {
	db *pgxpool.Pool
}

// NewLessonRepository creates a new lesson repository
func NewLessonRepository(db *pgxpool.Pool) *LessonRepository {
	return &LessonRepository{
		db: db,
	}
}

// Create inserts a new lesson. A duplicate (course, order) pair fails with
// apperrors.ErrLessonOrderConflict.
func (r *LessonRepository) Create(ctx context.Context, lesson *models.Lesson) error {
	query := `
		INSERT INTO lessons (course_id, title, content, lesson_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING id
	`

	now := time.Now()
	err := r.db.QueryRow(ctx, query,
		lesson.CourseID, lesson.Title, lesson.Content, lesson.Order, now,
	).Scan(&lesson.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "lessons_course_id_lesson_order_key") {
			return apperrors.ErrLessonOrderConflict
		}
		return fmt.Errorf("error creating lesson: %w", err)
	}

	lesson.CreatedAt = now
	lesson.UpdatedAt = now
	return nil
}

// GetByID retrieves a lesson by ID
func (r *LessonRepository) GetByID(ctx context.Context, id int64) (*models.Lesson, error) {
	query := `
		SELECT id, course_id, title, content, lesson_order, created_at, updated_at
		FROM lessons
		WHERE id = $1
	`

	var lesson models.Lesson
	err := r.db.QueryRow(ctx, query, id).Scan(
		&lesson.ID,
		&lesson.CourseID,
		&lesson.Title,
		&lesson.Content,
		&lesson.Order,
		&lesson.CreatedAt,
		&lesson.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLessonNotFound
		}
		return nil, fmt.Errorf("error retrieving lesson: %w", err)
	}

	return &lesson, nil
}

// GetByCourseID retrieves a course's lessons ordered ascending by order
func (r *LessonRepository) GetByCourseID(ctx context.Context, courseID int64) ([]*models.Lesson, error) {
	query := `
		SELECT id, course_id, title, content, lesson_order, created_at, updated_at
		FROM lessons
		WHERE course_id = $1
		ORDER BY lesson_order
	`

	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("error listing lessons: %w", err)
	}
	defer rows.Close()

	var lessons []*models.Lesson
	for rows.Next() {
		var lesson models.Lesson
		if err := rows.Scan(
			&lesson.ID,
			&lesson.CourseID,
			&lesson.Title,
			&lesson.Content,
			&lesson.Order,
			&lesson.CreatedAt,
			&lesson.UpdatedAt,
		); err != nil {
			return nil, err
		}
		lessons = append(lessons, &lesson)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return lessons, nil
}

// Update updates a lesson's mutable fields
func (r *LessonRepository) Update(ctx context.Context, lesson *models.Lesson) error {
	query := `
		UPDATE lessons
		SET title = $1, content = $2, lesson_order = $3, updated_at = $4
		WHERE id = $5
	`

	now := time.Now()
	cmdTag, err := r.db.Exec(ctx, query,
		lesson.Title, lesson.Content, lesson.Order, now, lesson.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "lessons_course_id_lesson_order_key") {
			return apperrors.ErrLessonOrderConflict
		}
		return fmt.Errorf("error updating lesson: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrLessonNotFound
	}

	lesson.UpdatedAt = now
	return nil
}

// Delete deletes a lesson by ID
func (r *LessonRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM lessons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting lesson: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrLessonNotFound
	}

	return nil
}
