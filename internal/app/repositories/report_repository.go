package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emrekb/coursedeck/internal/app/models"
)

// ReportRepository runs the read-only aggregation queries behind the
// instructor reporting endpoints.
type ReportRepository struct {
	db *pgxpool.Pool
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{
		db: db,
	}
}

// CountCoursesByInstructor counts courses owned by an instructor
func (r *ReportRepository) CountCoursesByInstructor(ctx context.Context, instructorID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM courses WHERE instructor_id = $1`,
		instructorID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting courses: %w", err)
	}
	return count, nil
}

// CountEnrollmentsByInstructor counts enrollments across an instructor's courses
func (r *ReportRepository) CountEnrollmentsByInstructor(ctx context.Context, instructorID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM enrollments e
		JOIN courses c ON c.id = e.course_id
		WHERE c.instructor_id = $1`,
		instructorID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting enrollments: %w", err)
	}
	return count, nil
}

// CountLessonsByInstructor counts lessons across an instructor's courses
func (r *ReportRepository) CountLessonsByInstructor(ctx context.Context, instructorID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM lessons l
		JOIN courses c ON c.id = l.course_id
		WHERE c.instructor_id = $1`,
		instructorID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting lessons: %w", err)
	}
	return count, nil
}

// CountEnrollmentsByCourse counts enrollments in one course
func (r *ReportRepository) CountEnrollmentsByCourse(ctx context.Context, courseID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM enrollments WHERE course_id = $1`,
		courseID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting course enrollments: %w", err)
	}
	return count, nil
}

// CountLessonsByCourse counts lessons in one course
func (r *ReportRepository) CountLessonsByCourse(ctx context.Context, courseID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM lessons WHERE course_id = $1`,
		courseID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting course lessons: %w", err)
	}
	return count, nil
}

const recentEnrollmentSelect = `
	SELECT e.id, e.student_id,
	       TRIM(CONCAT(u.first_name, ' ', u.last_name)),
	       c.id, c.title, e.enrollment_date
	FROM enrollments e
	JOIN users u ON u.id = e.student_id
	JOIN courses c ON c.id = e.course_id
`

// RecentEnrollmentsByInstructor returns the newest enrollments across an
// instructor's courses, limited.
func (r *ReportRepository) RecentEnrollmentsByInstructor(ctx context.Context, instructorID int64, limit int) ([]*models.RecentEnrollment, error) {
	query := recentEnrollmentSelect + `
		WHERE c.instructor_id = $1
		ORDER BY e.enrollment_date DESC, e.id DESC
		LIMIT $2
	`
	return r.listRecent(ctx, query, instructorID, limit)
}

// RecentEnrollmentsByCourse returns the newest enrollments in one course, limited
func (r *ReportRepository) RecentEnrollmentsByCourse(ctx context.Context, courseID int64, limit int) ([]*models.RecentEnrollment, error) {
	query := recentEnrollmentSelect + `
		WHERE c.id = $1
		ORDER BY e.enrollment_date DESC, e.id DESC
		LIMIT $2
	`
	return r.listRecent(ctx, query, courseID, limit)
}

func (r *ReportRepository) listRecent(ctx context.Context, query string, args ...any) ([]*models.RecentEnrollment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing recent enrollments: %w", err)
	}
	defer rows.Close()

	var recents []*models.RecentEnrollment
	for rows.Next() {
		var recent models.RecentEnrollment
		if err := rows.Scan(
			&recent.EnrollmentID,
			&recent.StudentID,
			&recent.StudentName,
			&recent.CourseID,
			&recent.CourseTitle,
			&recent.EnrollmentDate,
		); err != nil {
			return nil, err
		}
		recents = append(recents, &recent)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return recents, nil
}

// CourseSummariesByInstructor returns per-course student and lesson counts
// for all of an instructor's courses.
func (r *ReportRepository) CourseSummariesByInstructor(ctx context.Context, instructorID int64) ([]*models.CourseSummary, error) {
	query := `
		SELECT c.id, c.title,
		       (SELECT COUNT(*) FROM enrollments e WHERE e.course_id = c.id),
		       (SELECT COUNT(*) FROM lessons l WHERE l.course_id = c.id)
		FROM courses c
		WHERE c.instructor_id = $1
		ORDER BY c.id
	`

	rows, err := r.db.Query(ctx, query, instructorID)
	if err != nil {
		return nil, fmt.Errorf("error listing course summaries: %w", err)
	}
	defer rows.Close()

	var summaries []*models.CourseSummary
	for rows.Next() {
		var summary models.CourseSummary
		if err := rows.Scan(
			&summary.CourseID,
			&summary.CourseTitle,
			&summary.StudentCount,
			&summary.LessonCount,
		); err != nil {
			return nil, err
		}
		summaries = append(summaries, &summary)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}

// EnrollmentTrendByInstructor buckets enrollments in an instructor's courses
// by calendar date, from the given instant onward. Days with no enrollments
// yield no row.
func (r *ReportRepository) EnrollmentTrendByInstructor(ctx context.Context, instructorID int64, since time.Time) ([]*models.TrendPoint, error) {
	query := `
		SELECT DATE(e.enrollment_date), COUNT(*)
		FROM enrollments e
		JOIN courses c ON c.id = e.course_id
		WHERE c.instructor_id = $1 AND e.enrollment_date >= $2
		GROUP BY DATE(e.enrollment_date)
		ORDER BY DATE(e.enrollment_date)
	`

	rows, err := r.db.Query(ctx, query, instructorID, since)
	if err != nil {
		return nil, fmt.Errorf("error computing enrollment trend: %w", err)
	}
	defer rows.Close()

	var points []*models.TrendPoint
	for rows.Next() {
		var point models.TrendPoint
		if err := rows.Scan(&point.Date, &point.Count); err != nil {
			return nil, err
		}
		points = append(points, &point)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return points, nil
}

// EnrolledStudentsByCourse returns the full roster of one course
func (r *ReportRepository) EnrolledStudentsByCourse(ctx context.Context, courseID int64) ([]*models.EnrolledStudent, error) {
	query := `
		SELECT u.id, TRIM(CONCAT(u.first_name, ' ', u.last_name)), u.email, e.enrollment_date
		FROM enrollments e
		JOIN users u ON u.id = e.student_id
		WHERE e.course_id = $1
		ORDER BY e.enrollment_date DESC, e.id DESC
	`

	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("error listing enrolled students: %w", err)
	}
	defer rows.Close()

	var students []*models.EnrolledStudent
	for rows.Next() {
		var student models.EnrolledStudent
		if err := rows.Scan(
			&student.StudentID,
			&student.Name,
			&student.Email,
			&student.EnrollmentDate,
		); err != nil {
			return nil, err
		}
		students = append(students, &student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}
