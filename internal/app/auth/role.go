// Package auth implements the role resolver and the authorization policy.
// A request's subject identity comes from the JWT middleware; whether the
// subject is an instructor and what it may touch is decided here.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/emrekb/coursedeck/internal/app/models"
	"github.com/emrekb/coursedeck/internal/pkg/apperrors"
)

// RoleKind tags the resolved role of a subject.
type RoleKind string

const (
	RoleStudent    RoleKind = "STUDENT"
	RoleInstructor RoleKind = "INSTRUCTOR"
)

// Role is the explicit, resolved role of a request subject. It is computed
// once per request and passed to every authorization check; handlers never
// look up an instructor profile ad hoc.
type Role struct {
	UserID       int64
	Kind         RoleKind
	InstructorID int64 // set only when Kind == RoleInstructor
}

// IsInstructor reports whether the subject owns an instructor profile.
func (r Role) IsInstructor() bool {
	return r.Kind == RoleInstructor
}

// Anonymous is the role of an unauthenticated viewer.
var Anonymous = Role{Kind: RoleStudent}

// InstructorDirectory is the single lookup the resolver needs: user identity
// to instructor profile, zero or one result.
type InstructorDirectory interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Instructor, error)
}

// Resolver classifies a subject as student or instructor. The classification
// is resolved fresh on every call: a profile can be created between requests
// (registration), so nothing is cached.
type Resolver struct {
	instructors InstructorDirectory
}

// NewResolver creates a new Resolver
func NewResolver(instructors InstructorDirectory) *Resolver {
	return &Resolver{instructors: instructors}
}

// Resolve computes the role for an authenticated subject. No instructor
// profile means the subject is a plain student.
func (r *Resolver) Resolve(ctx context.Context, userID int64) (Role, error) {
	instructor, err := r.instructors.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrInstructorNotFound) {
			return Role{UserID: userID, Kind: RoleStudent}, nil
		}
		return Role{}, fmt.Errorf("failed to resolve role for user %d: %w", userID, err)
	}

	return Role{
		UserID:       userID,
		Kind:         RoleInstructor,
		InstructorID: instructor.ID,
	}, nil
}
