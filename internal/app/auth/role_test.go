package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emrekb/coursedeck/internal/app/models"
	"github.com/emrekb/coursedeck/internal/pkg/apperrors"
)

type stubInstructorDirectory struct {
	instructors map[int64]*models.Instructor // keyed by user ID
	err         error
}

func (s *stubInstructorDirectory) GetByUserID(_ context.Context, userID int64) (*models.Instructor, error) {
	if s.err != nil {
		return nil, s.err
	}
	instructor, ok := s.instructors[userID]
	if !ok {
		return nil, apperrors.ErrInstructorNotFound
	}
	return instructor, nil
}

func TestResolver_Resolve_Instructor(t *testing.T) {
	resolver := NewResolver(&stubInstructorDirectory{
		instructors: map[int64]*models.Instructor{2: {ID: 5, UserID: 2}},
	})

	role, err := resolver.Resolve(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, RoleInstructor, role.Kind)
	assert.True(t, role.IsInstructor())
	assert.Equal(t, int64(2), role.UserID)
	assert.Equal(t, int64(5), role.InstructorID)
}

func TestResolver_Resolve_StudentWithoutProfile(t *testing.T) {
	resolver := NewResolver(&stubInstructorDirectory{})

	role, err := resolver.Resolve(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, RoleStudent, role.Kind)
	assert.False(t, role.IsInstructor())
	assert.Equal(t, int64(7), role.UserID)
	assert.Zero(t, role.InstructorID)
}

func TestResolver_Resolve_LookupFailure(t *testing.T) {
	lookupErr := errors.New("connection refused")
	resolver := NewResolver(&stubInstructorDirectory{err: lookupErr})

	_, err := resolver.Resolve(context.Background(), 7)
	assert.ErrorIs(t, err, lookupErr)
}

func TestAnonymousRole(t *testing.T) {
	assert.False(t, Anonymous.IsInstructor())
	assert.Zero(t, Anonymous.UserID)
}
