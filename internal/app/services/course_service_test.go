package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emrekb/coursedeck/internal/app/auth"
	"github.com/emrekb/coursedeck/internal/app/models"
	"github.com/emrekb/coursedeck/internal/app/models/dto"
	"github.com/emrekb/coursedeck/internal/pkg/apperrors"
)

func newCourseService(courses *stubCourseStore, lessons *stubLessonStore, enrollments *stubEnrollmentStore) *CourseService {
	return NewCourseService(courses, lessons, enrollments, auth.NewPolicy(), zerolog.Nop())
}

func TestCourseService_List_TailoredToViewer(t *testing.T) {
	ctx := context.Background()
	courses := newStubCourseStore(
		&models.Course{ID: 1, Title: "Algorithms"},
		&models.Course{ID: 2, Title: "Databases"},
	)
	enrollments := newStubEnrollmentStore(
		&models.Enrollment{ID: 1, StudentID: 7, CourseID: 2},
	)
	service := newCourseService(courses, newStubLessonStore(), enrollments)

	listed, err := service.List(ctx, auth.Role{UserID: 7, Kind: auth.RoleStudent})
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.False(t, listed[0].IsEnrolled)
	assert.True(t, listed[1].IsEnrolled)

	anonymous, err := service.List(ctx, auth.Anonymous)
	require.NoError(t, err)
	require.Len(t, anonymous, 2)
	assert.False(t, anonymous[0].IsEnrolled)
	assert.False(t, anonymous[1].IsEnrolled)
}

func TestCourseService_Get_IncludesOrderedLessons(t *testing.T) {
	ctx := context.Background()
	courses := newStubCourseStore(&models.Course{ID: 1, Title: "Algorithms"})
	lessons := newStubLessonStore(
		&models.Lesson{ID: 1, CourseID: 1, Title: "Graphs", Order: 2},
		&models.Lesson{ID: 2, CourseID: 1, Title: "Sorting", Order: 1},
		&models.Lesson{ID: 3, CourseID: 2, Title: "Elsewhere", Order: 1},
	)
	service := newCourseService(courses, lessons, newStubEnrollmentStore())

	resp, err := service.Get(ctx, auth.Anonymous, 1)
	require.NoError(t, err)
	require.Len(t, resp.Lessons, 2)
	assert.Equal(t, "Sorting", resp.Lessons[0].Title)
	assert.Equal(t, "Graphs", resp.Lessons[1].Title)
	assert.False(t, resp.IsEnrolled)
}

func TestCourseService_Get_NotFound(t *testing.T) {
	service := newCourseService(newStubCourseStore(), newStubLessonStore(), newStubEnrollmentStore())

	_, err := service.Get(context.Background(), auth.Anonymous, 42)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestCourseService_Create_OwnerForcedToRequester(t *testing.T) {
	ctx := context.Background()
	courses := newStubCourseStore()
	service := newCourseService(courses, newStubLessonStore(), newStubEnrollmentStore())

	instructor := auth.Role{UserID: 2, Kind: auth.RoleInstructor, InstructorID: 5}
	resp, err := service.Create(ctx, instructor, &dto.CreateCourseRequest{
		Title:       "Operating Systems",
		Description: "Processes and memory",
		StartDate:   time.Now(),
		EndDate:     time.Now().AddDate(0, 3, 0),
	})
	require.NoError(t, err)

	stored, err := courses.GetByID(ctx, resp.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.InstructorID)
	assert.Equal(t, int64(5), *stored.InstructorID)
}

func TestCourseService_Create_StudentForbidden(t *testing.T) {
	service := newCourseService(newStubCourseStore(), newStubLessonStore(), newStubEnrollmentStore())

	_, err := service.Create(context.Background(), auth.Role{UserID: 7, Kind: auth.RoleStudent}, &dto.CreateCourseRequest{
		Title:       "Nope",
		Description: "Nope",
		StartDate:   time.Now(),
		EndDate:     time.Now(),
	})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestCourseService_Update_OnlyOwner(t *testing.T) {
	ctx := context.Background()
	courses := newStubCourseStore(&models.Course{ID: 1, Title: "Old", InstructorID: int64Ptr(5)})
	service := newCourseService(courses, newStubLessonStore(), newStubEnrollmentStore())

	req := &dto.UpdateCourseRequest{
		Title:       "New",
		Description: "Updated",
		StartDate:   time.Now(),
		EndDate:     time.Now().AddDate(0, 1, 0),
	}

	other := auth.Role{UserID: 3, Kind: auth.RoleInstructor, InstructorID: 6}
	_, err := service.Update(ctx, other, 1, req)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	owner := auth.Role{UserID: 2, Kind: auth.RoleInstructor, InstructorID: 5}
	resp, err := service.Update(ctx, owner, 1, req)
	require.NoError(t, err)
	assert.Equal(t, "New", resp.Title)
}

func TestCourseService_Delete_OnlyOwner(t *testing.T) {
	ctx := context.Background()
	courses := newStubCourseStore(&models.Course{ID: 1, InstructorID: int64Ptr(5)})
	service := newCourseService(courses, newStubLessonStore(), newStubEnrollmentStore())

	err := service.Delete(ctx, auth.Role{UserID: 3, Kind: auth.RoleInstructor, InstructorID: 6}, 1)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	require.NoError(t, service.Delete(ctx, auth.Role{UserID: 2, Kind: auth.RoleInstructor, InstructorID: 5}, 1))
	assert.Equal(t, []int64{1}, courses.deleted)
}

func TestCourseService_GetRoster(t *testing.T) {
	ctx := context.Background()
	courses := newStubCourseStore(&models.Course{ID: 1, Title: "Algorithms", InstructorID: int64Ptr(5)})
	enrollments := newStubEnrollmentStore(
		&models.Enrollment{ID: 1, StudentID: 7, CourseID: 1},
		&models.Enrollment{ID: 2, StudentID: 8, CourseID: 1},
	)
	service := newCourseService(courses, newStubLessonStore(), enrollments)

	owner := auth.Role{UserID: 2, Kind: auth.RoleInstructor, InstructorID: 5}
	roster, err := service.GetRoster(ctx, owner, 1)
	require.NoError(t, err)
	assert.Equal(t, "Algorithms", roster.Title)
	require.Len(t, roster.Enrollments, 2)
	assert.Equal(t, "Algorithms", roster.Enrollments[0].Course.Title)

	_, err = service.GetRoster(ctx, auth.Role{UserID: 7, Kind: auth.RoleStudent}, 1)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}
