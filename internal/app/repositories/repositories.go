package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository       *UserRepository
	InstructorRepository *InstructorRepository
	CourseRepository     *CourseRepository
	LessonRepository     *LessonRepository
	EnrollmentRepository *EnrollmentRepository
	GradeRepository      *GradeRepository
	ReportRepository     *ReportRepository
	TokenRepository      *TokenRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(db),
		InstructorRepository: NewInstructorRepository(db),
		CourseRepository:     NewCourseRepository(db),
		LessonRepository:     NewLessonRepository(db),
		EnrollmentRepository: NewEnrollmentRepository(db),
		GradeRepository:      NewGradeRepository(db),
		ReportRepository:     NewReportRepository(db),
		TokenRepository:      NewTokenRepository(db),
	}
}
