package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emrekb/coursedeck/internal/app/auth"
	"github.com/emrekb/coursedeck/internal/app/models/dto"
	"github.com/emrekb/coursedeck/internal/app/services"
	"github.com/emrekb/coursedeck/internal/middleware"
)

// EnrollmentController handles enrollment endpoints
type EnrollmentController struct {
	enrollmentService *services.EnrollmentService
	resolver          *auth.Resolver
}

// NewEnrollmentController creates a new enrollment controller
func NewEnrollmentController(enrollmentService *services.EnrollmentService, resolver *auth.Resolver) *EnrollmentController {
	return &EnrollmentController{
		enrollmentService: enrollmentService,
		resolver:          resolver,
	}
}

// Enroll enrolls the requester into a course
// @Summary Enroll in a course
// @Description Enroll the authenticated user into a course; repeating the call reports "already enrolled"
// @Tags enrollments
// @Produce json
// @Param id path int true "Course ID" Format(int64)
// @Success 200 {object} dto.APIResponse{data=dto.EnrollStatusResponse} "Enrollment status"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Security BearerAuth
// @Router /courses/{id}/enroll [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	role, err := resolveRole(ctx, c.resolver)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	status, err := c.enrollmentService.Enroll(ctx, role, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(status))
}

// Unenroll removes the requester's enrollment in a course
// @Summary Unenroll from a course
// @Description Remove the authenticated user's enrollment; not being enrolled is reported as an error
// @Tags enrollments
// @Produce json
// @Param id path int true "Course ID" Format(int64)
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Unenrolled"
// @Failure 404 {object} dto.ErrorResponse "Course not found or not enrolled"
// @Security BearerAuth
// @Router /courses/{id}/unenroll [post]
func (c *EnrollmentController) Unenroll(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	role, err := resolveRole(ctx, c.resolver)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.enrollmentService.Unenroll(ctx, role, courseID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Unenrolled successfully"}))
}

// Status reports the requester's enrollment state for a course
// @Summary Check enrollment status
// @Description Report whether the authenticated user is enrolled in a course
// @Tags enrollments
// @Produce json
// @Param id path int true "Course ID" Format(int64)
// @Success 200 {object} dto.APIResponse{data=dto.EnrollmentStatusResponse} "Enrollment status"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Security BearerAuth
// @Router /courses/{id}/enrollment-status [get]
func (c *EnrollmentController) Status(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	role, err := resolveRole(ctx, c.resolver)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	status, err := c.enrollmentService.Status(ctx, role, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(status))
}

// ListMine returns the requester's enrollments
// @Summary List my enrollments
// @Description List the authenticated user's enrollments with full course representations
// @Tags enrollments
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.EnrollmentResponse} "Enrollments"
// @Security BearerAuth
// @Router /enrollments [get]
func (c *EnrollmentController) ListMine(ctx *gin.Context) {
	role, err := resolveRole(ctx, c.resolver)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	enrollments, err := c.enrollmentService.ListMine(ctx, role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(enrollments))
}

// Create enrolls the requester via the collection endpoint
// @Summary Create an enrollment
// @Description Enroll the authenticated user into the course named in the body; idempotent like the course-scoped enroll
// @Tags enrollments
// @Accept json
// @Produce json
// @Param request body dto.CreateEnrollmentRequest true "Course to enroll in"
// @Success 200 {object} dto.APIResponse{data=dto.EnrollStatusResponse} "Enrollment status"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Security BearerAuth
// @Router /enrollments [post]
func (c *EnrollmentController) Create(ctx *gin.Context) {
	var req dto.CreateEnrollmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	role, err := resolveRole(ctx, c.resolver)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	status, err := c.enrollmentService.Enroll(ctx, role, req.CourseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(status))
}

// Delete removes one of the requester's enrollments by ID
// @Summary Delete an enrollment
// @Description Delete one of the authenticated user's enrollments by enrollment ID
// @Tags enrollments
// @Produce json
// @Param id path int true "Enrollment ID" Format(int64)
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Enrollment deleted"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Security BearerAuth
// @Router /enrollments/{id} [delete]
func (c *EnrollmentController) Delete(ctx *gin.Context) {
	enrollmentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	role, err := resolveRole(ctx, c.resolver)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.enrollmentService.DeleteByID(ctx, role, enrollmentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Enrollment deleted successfully"}))
}
