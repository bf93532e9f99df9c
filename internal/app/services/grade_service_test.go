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

// gradeFixture wires a course owned by instructor 5, an enrollment of
// student 7 in it, and one recorded grade.
func gradeFixture() (*stubGradeStore, *stubEnrollmentStore) {
	course := &models.Course{ID: 1, Title: "Algorithms", InstructorID: int64Ptr(5)}
	enrollment := &models.Enrollment{ID: 1, StudentID: 7, CourseID: 1, Course: course}
	grades := newStubGradeStore(&models.Grade{
		ID:           1,
		EnrollmentID: 1,
		Score:        88.5,
		DateReceived: time.Now(),
		Enrollment:   enrollment,
	})
	return grades, newStubEnrollmentStore(enrollment)
}

func newGradeService(grades *stubGradeStore, enrollments *stubEnrollmentStore) *GradeService {
	return NewGradeService(grades, enrollments, auth.NewPolicy(), zerolog.Nop())
}

var (
	owningInstructor = auth.Role{UserID: 2, Kind: auth.RoleInstructor, InstructorID: 5}
	otherInstructor  = auth.Role{UserID: 3, Kind: auth.RoleInstructor, InstructorID: 6}
	gradedStudent    = auth.Role{UserID: 7, Kind: auth.RoleStudent}
	otherStudent     = auth.Role{UserID: 8, Kind: auth.RoleStudent}
)

func TestGradeService_List(t *testing.T) {
	ctx := context.Background()
	service := newGradeService(gradeFixture())

	t.Run("instructor sees grades in own courses", func(t *testing.T) {
		listed, err := service.List(ctx, owningInstructor)
		require.NoError(t, err)
		require.Len(t, listed, 1)
		assert.Equal(t, 88.5, listed[0].Score)
	})

	t.Run("other instructor sees nothing", func(t *testing.T) {
		listed, err := service.List(ctx, otherInstructor)
		require.NoError(t, err)
		assert.Empty(t, listed)
	})

	t.Run("student sees own grades", func(t *testing.T) {
		listed, err := service.List(ctx, gradedStudent)
		require.NoError(t, err)
		require.Len(t, listed, 1)
	})

	t.Run("other student sees nothing", func(t *testing.T) {
		listed, err := service.List(ctx, otherStudent)
		require.NoError(t, err)
		assert.Empty(t, listed)
	})
}

func TestGradeService_Get_Visibility(t *testing.T) {
	ctx := context.Background()
	service := newGradeService(gradeFixture())

	tests := []struct {
		name    string
		role    auth.Role
		wantErr error
	}{
		{name: "owning instructor", role: owningInstructor},
		{name: "graded student", role: gradedStudent},
		{name: "other instructor", role: otherInstructor, wantErr: apperrors.ErrPermissionDenied},
		{name: "other student", role: otherStudent, wantErr: apperrors.ErrPermissionDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := service.Get(ctx, tt.role, 1)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 88.5, resp.Score)
		})
	}
}

func TestGradeService_Create(t *testing.T) {
	ctx := context.Background()
	course := &models.Course{ID: 1, InstructorID: int64Ptr(5)}
	enrollments := newStubEnrollmentStore(&models.Enrollment{ID: 1, StudentID: 7, CourseID: 1, Course: course})
	grades := newStubGradeStore()
	service := newGradeService(grades, enrollments)

	resp, err := service.Create(ctx, owningInstructor, &dto.CreateGradeRequest{EnrollmentID: 1, Score: float64Ptr(91)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.EnrollmentID)
	assert.Equal(t, float64(91), resp.Score)
	assert.False(t, resp.DateReceived.IsZero())
}

func TestGradeService_Create_ZeroScore(t *testing.T) {
	ctx := context.Background()
	course := &models.Course{ID: 1, InstructorID: int64Ptr(5)}
	enrollments := newStubEnrollmentStore(&models.Enrollment{ID: 1, StudentID: 7, CourseID: 1, Course: course})
	service := newGradeService(newStubGradeStore(), enrollments)

	// A score of zero is a valid grade, not an absent one
	resp, err := service.Create(ctx, owningInstructor, &dto.CreateGradeRequest{EnrollmentID: 1, Score: float64Ptr(0)})
	require.NoError(t, err)
	assert.Equal(t, float64(0), resp.Score)
}

func TestGradeService_Create_NonOwnerForbidden(t *testing.T) {
	ctx := context.Background()
	course := &models.Course{ID: 1, InstructorID: int64Ptr(5)}
	enrollments := newStubEnrollmentStore(&models.Enrollment{ID: 1, StudentID: 7, CourseID: 1, Course: course})
	service := newGradeService(newStubGradeStore(), enrollments)

	_, err := service.Create(ctx, otherInstructor, &dto.CreateGradeRequest{EnrollmentID: 1, Score: float64Ptr(91)})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = service.Create(ctx, gradedStudent, &dto.CreateGradeRequest{EnrollmentID: 1, Score: float64Ptr(91)})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestGradeService_Create_EnrollmentNotFound(t *testing.T) {
	service := newGradeService(newStubGradeStore(), newStubEnrollmentStore())

	_, err := service.Create(context.Background(), owningInstructor, &dto.CreateGradeRequest{EnrollmentID: 42, Score: float64Ptr(91)})
	assert.ErrorIs(t, err, apperrors.ErrEnrollmentNotFound)
}

func TestGradeService_Update(t *testing.T) {
	ctx := context.Background()
	service := newGradeService(gradeFixture())

	_, err := service.Update(ctx, otherInstructor, 1, &dto.UpdateGradeRequest{Score: float64Ptr(50)})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	resp, err := service.Update(ctx, owningInstructor, 1, &dto.UpdateGradeRequest{Score: float64Ptr(95)})
	require.NoError(t, err)
	assert.Equal(t, float64(95), resp.Score)
}

func TestGradeService_Delete(t *testing.T) {
	ctx := context.Background()
	grades, enrollments := gradeFixture()
	service := newGradeService(grades, enrollments)

	// Students never manage grades, their own included
	err := service.Delete(ctx, gradedStudent, 1)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	require.NoError(t, service.Delete(ctx, owningInstructor, 1))

	_, err = service.Get(ctx, owningInstructor, 1)
	assert.ErrorIs(t, err, apperrors.ErrGradeNotFound)
}
