package auth

import (
	"github.com/emrekb/coursedeck/internal/app/models"
	"github.com/emrekb/coursedeck/internal/pkg/apperrors"
)

// Policy holds the per-entity, per-operation authorization rules. Decisions
// take the resolved Role plus the ownership links of the target entity and
// return nil (allow) or a forbidden error with a human-readable reason.
//
// Reads of courses and lessons are open to everyone and therefore have no
// policy method; callers simply don't ask.
type Policy struct{}

// NewPolicy creates a new Policy
func NewPolicy() *Policy {
	return &Policy{}
}

// CanCreateCourse allows any instructor to create a course. The new course's
// owner is forced to the requester's own profile by the service layer.
func (p *Policy) CanCreateCourse(role Role) error {
	if !role.IsInstructor() {
		return apperrors.NewForbiddenError("only instructors can create courses")
	}
	return nil
}

// CanModifyCourse allows update/delete only by the owning instructor.
func (p *Policy) CanModifyCourse(role Role, course *models.Course) error {
	if !role.IsInstructor() {
		return apperrors.NewForbiddenError("only instructors can modify courses")
	}
	if !course.IsOwnedBy(role.InstructorID) {
		return apperrors.NewForbiddenError("you can only modify your own courses")
	}
	return nil
}

// CanModifyLessons allows lesson create/update/delete only by the instructor
// owning the parent course. A different instructor gets forbidden, not
// not-found.
func (p *Policy) CanModifyLessons(role Role, course *models.Course) error {
	if !role.IsInstructor() {
		return apperrors.NewForbiddenError("only instructors can manage lessons")
	}
	if !course.IsOwnedBy(role.InstructorID) {
		return apperrors.NewForbiddenError("you can only add lessons to your own courses")
	}
	return nil
}

// CanViewRoster allows reading a course's enrollment roster only by the
// owning instructor.
func (p *Policy) CanViewRoster(role Role, course *models.Course) error {
	if !role.IsInstructor() {
		return apperrors.NewForbiddenError("only instructors can view course enrollments")
	}
	if !course.IsOwnedBy(role.InstructorID) {
		return apperrors.NewForbiddenError("you can only view enrollments for your own courses")
	}
	return nil
}

// CanGradeEnrollment allows grade create/update/delete only by the
// instructor owning the course of the graded enrollment.
func (p *Policy) CanGradeEnrollment(role Role, course *models.Course) error {
	if !role.IsInstructor() {
		return apperrors.NewForbiddenError("only instructors can manage grades")
	}
	if !course.IsOwnedBy(role.InstructorID) {
		return apperrors.NewForbiddenError("you can only grade students in your courses")
	}
	return nil
}

// CanViewReports allows the instructor reports (dashboard, course details).
// Ownership of the individual course is checked by the report service
// against the requester's own profile.
func (p *Policy) CanViewReports(role Role) error {
	if !role.IsInstructor() {
		return apperrors.NewForbiddenError("only instructors can access reports")
	}
	return nil
}
