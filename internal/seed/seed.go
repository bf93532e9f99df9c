// Package seed creates demo data for local development. It is only invoked
// when seeding is enabled in the configuration and is idempotent: existing
// records are left alone.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/emrekb/coursedeck/internal/app/models"
	appRepos "github.com/emrekb/coursedeck/internal/app/repositories"
	"github.com/emrekb/coursedeck/internal/pkg/apperrors"
	"github.com/emrekb/coursedeck/internal/pkg/auth"
)

const (
	demoInstructorEmail = "instructor@example.com"
	demoStudentEmail    = "student@example.com"
	demoPassword        = "changeme123"
)

// CreateDemoData seeds a demo instructor with two courses and an enrolled
// demo student.
func CreateDemoData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	repos := appRepos.NewRepositories(dbPool)

	lgr.Info().Msg("Checking/Creating demo data...")

	instructor, err := ensureInstructor(ctx, repos, lgr)
	if err != nil {
		return err
	}

	studentID, err := ensureUser(ctx, repos, demoStudentEmail, "Sam", "Student")
	if err != nil {
		return err
	}

	courseID, err := ensureCourse(ctx, repos, instructor.ID, lgr)
	if err != nil {
		return err
	}

	if courseID > 0 {
		if _, _, err := repos.EnrollmentRepository.GetOrCreate(ctx, studentID, courseID); err != nil {
			return fmt.Errorf("failed to enroll demo student: %w", err)
		}
	}

	lgr.Info().Msg("Demo data ready")
	return nil
}

func ensureInstructor(ctx context.Context, repos *appRepos.Repositories, lgr zerolog.Logger) (*appModels.Instructor, error) {
	userID, err := ensureUser(ctx, repos, demoInstructorEmail, "Ingrid", "Instructor")
	if err != nil {
		return nil, err
	}

	instructor, err := repos.InstructorRepository.GetByUserID(ctx, userID)
	if err == nil {
		return instructor, nil
	}
	if !errors.Is(err, apperrors.ErrInstructorNotFound) {
		return nil, err
	}

	instructor = &appModels.Instructor{
		UserID: userID,
		Bio:    "Teaches the demo courses.",
	}
	if err := repos.InstructorRepository.Create(ctx, instructor); err != nil {
		return nil, fmt.Errorf("failed to create demo instructor profile: %w", err)
	}
	lgr.Info().Int64("instructorID", instructor.ID).Msg("Demo instructor created")
	return instructor, nil
}

func ensureUser(ctx context.Context, repos *appRepos.Repositories, email, firstName, lastName string) (int64, error) {
	existing, err := repos.UserRepository.GetByEmail(ctx, email)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return 0, err
	}

	hashed, err := auth.HashPassword(demoPassword)
	if err != nil {
		return 0, err
	}

	user := &appModels.User{
		Email:     email,
		Password:  hashed,
		FirstName: firstName,
		LastName:  lastName,
	}
	id, err := repos.UserRepository.Create(ctx, user)
	if err != nil {
		return 0, fmt.Errorf("failed to create demo user %s: %w", email, err)
	}
	return id, nil
}

func ensureCourse(ctx context.Context, repos *appRepos.Repositories, instructorID int64, lgr zerolog.Logger) (int64, error) {
	courses, err := repos.CourseRepository.GetAll(ctx)
	if err != nil {
		return 0, err
	}
	for _, c := range courses {
		if c.IsOwnedBy(instructorID) {
			return c.ID, nil
		}
	}

	now := time.Now()
	course := &appModels.Course{
		Title:        "Introduction to Databases",
		Description:  "Relational modelling, SQL and transactions.",
		StartDate:    now,
		EndDate:      now.AddDate(0, 3, 0),
		InstructorID: &instructorID,
	}
	if err := repos.CourseRepository.Create(ctx, course); err != nil {
		return 0, fmt.Errorf("failed to create demo course: %w", err)
	}

	lessons := []string{"Relational model", "SQL basics", "Transactions"}
	for i, title := range lessons {
		lesson := &appModels.Lesson{
			CourseID: course.ID,
			Title:    title,
			Content:  "Lesson material for " + title + ".",
			Order:    i + 1,
		}
		if err := repos.LessonRepository.Create(ctx, lesson); err != nil {
			return 0, fmt.Errorf("failed to create demo lesson: %w", err)
		}
	}

	lgr.Info().Int64("courseID", course.ID).Msg("Demo course created")
	return course.ID, nil
}
