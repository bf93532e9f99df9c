package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emrekb/coursedeck/internal/app/auth"
	"github.com/emrekb/coursedeck/internal/app/models"
	"github.com/emrekb/coursedeck/internal/app/models/dto"
	"github.com/emrekb/coursedeck/internal/pkg/apperrors"
)

func newLessonService(lessons *stubLessonStore, courses *stubCourseStore) *LessonService {
	return NewLessonService(lessons, courses, auth.NewPolicy(), zerolog.Nop())
}

func TestLessonService_List_MissingCourse(t *testing.T) {
	service := newLessonService(newStubLessonStore(), newStubCourseStore())

	_, err := service.List(context.Background(), 42)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestLessonService_List_Ordered(t *testing.T) {
	courses := newStubCourseStore(&models.Course{ID: 1})
	lessons := newStubLessonStore(
		&models.Lesson{ID: 1, CourseID: 1, Title: "Third", Order: 3},
		&models.Lesson{ID: 2, CourseID: 1, Title: "First", Order: 1},
		&models.Lesson{ID: 3, CourseID: 1, Title: "Second", Order: 2},
	)
	service := newLessonService(lessons, courses)

	listed, err := service.List(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, "First", listed[0].Title)
	assert.Equal(t, "Second", listed[1].Title)
	assert.Equal(t, "Third", listed[2].Title)
}

func TestLessonService_Get_WrongCourseIsNotFound(t *testing.T) {
	courses := newStubCourseStore(&models.Course{ID: 1}, &models.Course{ID: 2})
	lessons := newStubLessonStore(&models.Lesson{ID: 5, CourseID: 2, Title: "Elsewhere", Order: 1})
	service := newLessonService(lessons, courses)

	// The lesson exists but belongs to course 2
	_, err := service.Get(context.Background(), 1, 5)
	assert.ErrorIs(t, err, apperrors.ErrLessonNotFound)

	resp, err := service.Get(context.Background(), 2, 5)
	require.NoError(t, err)
	assert.Equal(t, "Elsewhere", resp.Title)
}

func TestLessonService_Create(t *testing.T) {
	ctx := context.Background()
	courses := newStubCourseStore(&models.Course{ID: 1, InstructorID: int64Ptr(5)})
	lessons := newStubLessonStore()
	service := newLessonService(lessons, courses)

	owner := auth.Role{UserID: 2, Kind: auth.RoleInstructor, InstructorID: 5}
	resp, err := service.Create(ctx, owner, 1, &dto.CreateLessonRequest{
		Title:   "Sorting",
		Content: "Merge sort and friends",
		Order:   1,
	})
	require.NoError(t, err)
	assert.Equal(t, "Sorting", resp.Title)
	assert.Equal(t, 1, resp.Order)
}

func TestLessonService_Create_OrderConflict(t *testing.T) {
	ctx := context.Background()
	courses := newStubCourseStore(&models.Course{ID: 1, InstructorID: int64Ptr(5)})
	lessons := newStubLessonStore(&models.Lesson{ID: 1, CourseID: 1, Order: 1})
	service := newLessonService(lessons, courses)

	owner := auth.Role{UserID: 2, Kind: auth.RoleInstructor, InstructorID: 5}
	_, err := service.Create(ctx, owner, 1, &dto.CreateLessonRequest{
		Title: "Duplicate", Content: "x", Order: 1,
	})
	assert.ErrorIs(t, err, apperrors.ErrLessonOrderConflict)
}

func TestLessonService_Create_NonOwnerForbidden(t *testing.T) {
	courses := newStubCourseStore(&models.Course{ID: 1, InstructorID: int64Ptr(5)})
	service := newLessonService(newStubLessonStore(), courses)

	req := &dto.CreateLessonRequest{Title: "Nope", Content: "x", Order: 1}

	other := auth.Role{UserID: 3, Kind: auth.RoleInstructor, InstructorID: 6}
	_, err := service.Create(context.Background(), other, 1, req)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	student := auth.Role{UserID: 7, Kind: auth.RoleStudent}
	_, err = service.Create(context.Background(), student, 1, req)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestLessonService_Update(t *testing.T) {
	ctx := context.Background()
	courses := newStubCourseStore(&models.Course{ID: 1, InstructorID: int64Ptr(5)})
	lessons := newStubLessonStore(&models.Lesson{ID: 1, CourseID: 1, Title: "Old", Order: 1})
	service := newLessonService(lessons, courses)

	owner := auth.Role{UserID: 2, Kind: auth.RoleInstructor, InstructorID: 5}
	resp, err := service.Update(ctx, owner, 1, 1, &dto.UpdateLessonRequest{
		Title: "New", Content: "updated", Order: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, "New", resp.Title)
	assert.Equal(t, 2, resp.Order)
}

func TestLessonService_Delete_WrongCourseIsNotFound(t *testing.T) {
	ctx := context.Background()
	courses := newStubCourseStore(
		&models.Course{ID: 1, InstructorID: int64Ptr(5)},
		&models.Course{ID: 2, InstructorID: int64Ptr(5)},
	)
	lessons := newStubLessonStore(&models.Lesson{ID: 1, CourseID: 2, Order: 1})
	service := newLessonService(lessons, courses)

	owner := auth.Role{UserID: 2, Kind: auth.RoleInstructor, InstructorID: 5}
	err := service.Delete(ctx, owner, 1, 1)
	assert.ErrorIs(t, err, apperrors.ErrLessonNotFound)

	require.NoError(t, service.Delete(ctx, owner, 2, 1))
}
