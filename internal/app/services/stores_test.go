package services

// Hand-rolled in-memory stores backing the service tests. Each stub keeps
// just enough state to satisfy the store interfaces the services consume.

import (
	"context"
	"sort"
	"time"

	"github.com/emrekb/coursedeck/internal/app/models"
	"github.com/emrekb/coursedeck/internal/pkg/apperrors"
)

func int64Ptr(v int64) *int64 { return &v }

func float64Ptr(v float64) *float64 { return &v }

// stubCourseStore implements CourseStore, CourseReader and CourseCounter.
type stubCourseStore struct {
	courses map[int64]*models.Course
	nextID  int64
	deleted []int64
}

func newStubCourseStore(courses ...*models.Course) *stubCourseStore {
	s := &stubCourseStore{courses: make(map[int64]*models.Course)}
	for _, course := range courses {
		s.courses[course.ID] = course
		if course.ID > s.nextID {
			s.nextID = course.ID
		}
	}
	return s
}

func (s *stubCourseStore) Create(_ context.Context, course *models.Course) error {
	s.nextID++
	course.ID = s.nextID
	s.courses[course.ID] = course
	return nil
}

func (s *stubCourseStore) GetByID(_ context.Context, id int64) (*models.Course, error) {
	course, ok := s.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	return course, nil
}

func (s *stubCourseStore) GetAll(_ context.Context) ([]*models.Course, error) {
	out := make([]*models.Course, 0, len(s.courses))
	for _, course := range s.courses {
		out = append(out, course)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *stubCourseStore) Update(_ context.Context, course *models.Course) error {
	if _, ok := s.courses[course.ID]; !ok {
		return apperrors.ErrCourseNotFound
	}
	s.courses[course.ID] = course
	return nil
}

func (s *stubCourseStore) Delete(_ context.Context, id int64) error {
	if _, ok := s.courses[id]; !ok {
		return apperrors.ErrCourseNotFound
	}
	delete(s.courses, id)
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubCourseStore) CountAll(_ context.Context) (int64, error) {
	return int64(len(s.courses)), nil
}

// stubLessonStore implements LessonStore with the same order-uniqueness rule
// the real table enforces.
type stubLessonStore struct {
	lessons map[int64]*models.Lesson
	nextID  int64
}

func newStubLessonStore(lessons ...*models.Lesson) *stubLessonStore {
	s := &stubLessonStore{lessons: make(map[int64]*models.Lesson)}
	for _, lesson := range lessons {
		s.lessons[lesson.ID] = lesson
		if lesson.ID > s.nextID {
			s.nextID = lesson.ID
		}
	}
	return s
}

func (s *stubLessonStore) Create(_ context.Context, lesson *models.Lesson) error {
	for _, existing := range s.lessons {
		if existing.CourseID == lesson.CourseID && existing.Order == lesson.Order {
			return apperrors.ErrLessonOrderConflict
		}
	}
	s.nextID++
	lesson.ID = s.nextID
	s.lessons[lesson.ID] = lesson
	return nil
}

func (s *stubLessonStore) GetByID(_ context.Context, id int64) (*models.Lesson, error) {
	lesson, ok := s.lessons[id]
	if !ok {
		return nil, apperrors.ErrLessonNotFound
	}
	return lesson, nil
}

func (s *stubLessonStore) GetByCourseID(_ context.Context, courseID int64) ([]*models.Lesson, error) {
	out := make([]*models.Lesson, 0)
	for _, lesson := range s.lessons {
		if lesson.CourseID == courseID {
			out = append(out, lesson)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (s *stubLessonStore) Update(_ context.Context, lesson *models.Lesson) error {
	if _, ok := s.lessons[lesson.ID]; !ok {
		return apperrors.ErrLessonNotFound
	}
	for _, existing := range s.lessons {
		if existing.ID != lesson.ID && existing.CourseID == lesson.CourseID && existing.Order == lesson.Order {
			return apperrors.ErrLessonOrderConflict
		}
	}
	s.lessons[lesson.ID] = lesson
	return nil
}

func (s *stubLessonStore) Delete(_ context.Context, id int64) error {
	if _, ok := s.lessons[id]; !ok {
		return apperrors.ErrLessonNotFound
	}
	delete(s.lessons, id)
	return nil
}

// stubEnrollmentStore implements EnrollmentStore, EnrollmentReader and
// EnrollmentResolver.
type stubEnrollmentStore struct {
	enrollments map[int64]*models.Enrollment
	nextID      int64
}

func newStubEnrollmentStore(enrollments ...*models.Enrollment) *stubEnrollmentStore {
	s := &stubEnrollmentStore{enrollments: make(map[int64]*models.Enrollment)}
	for _, enrollment := range enrollments {
		s.enrollments[enrollment.ID] = enrollment
		if enrollment.ID > s.nextID {
			s.nextID = enrollment.ID
		}
	}
	return s
}

func (s *stubEnrollmentStore) find(studentID, courseID int64) *models.Enrollment {
	for _, enrollment := range s.enrollments {
		if enrollment.StudentID == studentID && enrollment.CourseID == courseID {
			return enrollment
		}
	}
	return nil
}

func (s *stubEnrollmentStore) GetOrCreate(_ context.Context, studentID, courseID int64) (*models.Enrollment, bool, error) {
	if existing := s.find(studentID, courseID); existing != nil {
		return existing, false, nil
	}
	s.nextID++
	enrollment := &models.Enrollment{
		ID:             s.nextID,
		StudentID:      studentID,
		CourseID:       courseID,
		EnrollmentDate: time.Now(),
	}
	s.enrollments[enrollment.ID] = enrollment
	return enrollment, true, nil
}

func (s *stubEnrollmentStore) GetByID(_ context.Context, id int64) (*models.Enrollment, error) {
	enrollment, ok := s.enrollments[id]
	if !ok {
		return nil, apperrors.ErrEnrollmentNotFound
	}
	return enrollment, nil
}

func (s *stubEnrollmentStore) GetByStudentID(_ context.Context, studentID int64) ([]*models.Enrollment, error) {
	out := make([]*models.Enrollment, 0)
	for _, enrollment := range s.enrollments {
		if enrollment.StudentID == studentID {
			out = append(out, enrollment)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *stubEnrollmentStore) GetByCourseID(_ context.Context, courseID int64) ([]*models.Enrollment, error) {
	out := make([]*models.Enrollment, 0)
	for _, enrollment := range s.enrollments {
		if enrollment.CourseID == courseID {
			out = append(out, enrollment)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *stubEnrollmentStore) Exists(_ context.Context, studentID, courseID int64) (bool, error) {
	return s.find(studentID, courseID) != nil, nil
}

func (s *stubEnrollmentStore) GetEnrolledCourseIDs(_ context.Context, studentID int64) (map[int64]bool, error) {
	out := make(map[int64]bool)
	for _, enrollment := range s.enrollments {
		if enrollment.StudentID == studentID {
			out[enrollment.CourseID] = true
		}
	}
	return out, nil
}

func (s *stubEnrollmentStore) DeleteByStudentAndCourse(_ context.Context, studentID, courseID int64) error {
	enrollment := s.find(studentID, courseID)
	if enrollment == nil {
		return apperrors.ErrNotEnrolled
	}
	delete(s.enrollments, enrollment.ID)
	return nil
}

func (s *stubEnrollmentStore) Delete(_ context.Context, id, studentID int64) error {
	enrollment, ok := s.enrollments[id]
	if !ok || enrollment.StudentID != studentID {
		return apperrors.ErrEnrollmentNotFound
	}
	delete(s.enrollments, id)
	return nil
}

// stubGradeStore implements GradeStore. Instructor scoping follows the
// Enrollment.Course relation attached to each seeded grade.
type stubGradeStore struct {
	grades map[int64]*models.Grade
	nextID int64
}

func newStubGradeStore(grades ...*models.Grade) *stubGradeStore {
	s := &stubGradeStore{grades: make(map[int64]*models.Grade)}
	for _, grade := range grades {
		s.grades[grade.ID] = grade
		if grade.ID > s.nextID {
			s.nextID = grade.ID
		}
	}
	return s
}

func (s *stubGradeStore) Create(_ context.Context, grade *models.Grade) error {
	s.nextID++
	grade.ID = s.nextID
	grade.DateReceived = time.Now()
	s.grades[grade.ID] = grade
	return nil
}

func (s *stubGradeStore) GetByID(_ context.Context, id int64) (*models.Grade, error) {
	grade, ok := s.grades[id]
	if !ok {
		return nil, apperrors.ErrGradeNotFound
	}
	return grade, nil
}

func (s *stubGradeStore) GetByInstructorID(_ context.Context, instructorID int64) ([]*models.Grade, error) {
	out := make([]*models.Grade, 0)
	for _, grade := range s.grades {
		if grade.Enrollment != nil && grade.Enrollment.Course != nil &&
			grade.Enrollment.Course.IsOwnedBy(instructorID) {
			out = append(out, grade)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *stubGradeStore) GetByStudentID(_ context.Context, studentID int64) ([]*models.Grade, error) {
	out := make([]*models.Grade, 0)
	for _, grade := range s.grades {
		if grade.Enrollment != nil && grade.Enrollment.StudentID == studentID {
			out = append(out, grade)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *stubGradeStore) Update(_ context.Context, grade *models.Grade) error {
	if _, ok := s.grades[grade.ID]; !ok {
		return apperrors.ErrGradeNotFound
	}
	s.grades[grade.ID] = grade
	return nil
}

func (s *stubGradeStore) Delete(_ context.Context, id int64) error {
	if _, ok := s.grades[id]; !ok {
		return apperrors.ErrGradeNotFound
	}
	delete(s.grades, id)
	return nil
}

// stubReportStore implements ReportStore with canned aggregates.
type stubReportStore struct {
	totalCourses      int64
	totalEnrollments  int64
	totalLessons      int64
	courseEnrollments map[int64]int64
	courseLessons     map[int64]int64
	recent            []*models.RecentEnrollment
	recentByCourse    map[int64][]*models.RecentEnrollment
	summaries         []*models.CourseSummary
	trend             []*models.TrendPoint
	roster            map[int64][]*models.EnrolledStudent

	trendSince time.Time
}

func (s *stubReportStore) CountCoursesByInstructor(_ context.Context, _ int64) (int64, error) {
	return s.totalCourses, nil
}

func (s *stubReportStore) CountEnrollmentsByInstructor(_ context.Context, _ int64) (int64, error) {
	return s.totalEnrollments, nil
}

func (s *stubReportStore) CountLessonsByInstructor(_ context.Context, _ int64) (int64, error) {
	return s.totalLessons, nil
}

func (s *stubReportStore) CountEnrollmentsByCourse(_ context.Context, courseID int64) (int64, error) {
	return s.courseEnrollments[courseID], nil
}

func (s *stubReportStore) CountLessonsByCourse(_ context.Context, courseID int64) (int64, error) {
	return s.courseLessons[courseID], nil
}

func (s *stubReportStore) RecentEnrollmentsByInstructor(_ context.Context, _ int64, limit int) ([]*models.RecentEnrollment, error) {
	if len(s.recent) > limit {
		return s.recent[:limit], nil
	}
	return s.recent, nil
}

func (s *stubReportStore) RecentEnrollmentsByCourse(_ context.Context, courseID int64, limit int) ([]*models.RecentEnrollment, error) {
	rows := s.recentByCourse[courseID]
	if len(rows) > limit {
		return rows[:limit], nil
	}
	return rows, nil
}

func (s *stubReportStore) CourseSummariesByInstructor(_ context.Context, _ int64) ([]*models.CourseSummary, error) {
	return s.summaries, nil
}

func (s *stubReportStore) EnrollmentTrendByInstructor(_ context.Context, _ int64, since time.Time) ([]*models.TrendPoint, error) {
	s.trendSince = since
	return s.trend, nil
}

func (s *stubReportStore) EnrolledStudentsByCourse(_ context.Context, courseID int64) ([]*models.EnrolledStudent, error) {
	return s.roster[courseID], nil
}

// stubUserStore implements UserStore.
type stubUserStore struct {
	users  map[int64]*models.User
	nextID int64
}

func newStubUserStore(users ...*models.User) *stubUserStore {
	s := &stubUserStore{users: make(map[int64]*models.User)}
	for _, user := range users {
		s.users[user.ID] = user
		if user.ID > s.nextID {
			s.nextID = user.ID
		}
	}
	return s
}

func (s *stubUserStore) Create(_ context.Context, user *models.User) (int64, error) {
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return 0, apperrors.ErrEmailAlreadyExists
		}
	}
	s.nextID++
	user.ID = s.nextID
	s.users[user.ID] = user
	return user.ID, nil
}

func (s *stubUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (s *stubUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *stubUserStore) EmailExists(_ context.Context, email string) (bool, error) {
	_, err := s.GetByEmail(context.Background(), email)
	return err == nil, nil
}

// stubInstructorStore implements InstructorStore.
type stubInstructorStore struct {
	instructors map[int64]*models.Instructor // keyed by user ID
	nextID      int64
}

func newStubInstructorStore(instructors ...*models.Instructor) *stubInstructorStore {
	s := &stubInstructorStore{instructors: make(map[int64]*models.Instructor)}
	for _, instructor := range instructors {
		s.instructors[instructor.UserID] = instructor
		if instructor.ID > s.nextID {
			s.nextID = instructor.ID
		}
	}
	return s
}

func (s *stubInstructorStore) Create(_ context.Context, instructor *models.Instructor) error {
	s.nextID++
	instructor.ID = s.nextID
	s.instructors[instructor.UserID] = instructor
	return nil
}

func (s *stubInstructorStore) GetByUserID(_ context.Context, userID int64) (*models.Instructor, error) {
	instructor, ok := s.instructors[userID]
	if !ok {
		return nil, apperrors.ErrInstructorNotFound
	}
	return instructor, nil
}

// stubTokenStore implements TokenStore.
type stubTokenStore struct {
	tokens map[string]*stubTokenRecord
}

type stubTokenRecord struct {
	userID     int64
	expiryDate time.Time
	revoked    bool
}

func newStubTokenStore() *stubTokenStore {
	return &stubTokenStore{tokens: make(map[string]*stubTokenRecord)}
}

func (s *stubTokenStore) CreateToken(_ context.Context, token string, userID int64, expiryDate time.Time) error {
	s.tokens[token] = &stubTokenRecord{userID: userID, expiryDate: expiryDate}
	return nil
}

func (s *stubTokenStore) GetTokenByValue(_ context.Context, token string) (int64, time.Time, error) {
	record, ok := s.tokens[token]
	if !ok {
		return 0, time.Time{}, apperrors.ErrTokenNotFound
	}
	if record.revoked {
		return 0, time.Time{}, apperrors.ErrTokenRevoked
	}
	if time.Now().After(record.expiryDate) {
		return 0, time.Time{}, apperrors.ErrTokenExpired
	}
	return record.userID, record.expiryDate, nil
}

func (s *stubTokenStore) RevokeToken(_ context.Context, token string) error {
	record, ok := s.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	record.revoked = true
	return nil
}

func (s *stubTokenStore) RevokeAllUserTokens(_ context.Context, userID int64) error {
	for _, record := range s.tokens {
		if record.userID == userID {
			record.revoked = true
		}
	}
	return nil
}
