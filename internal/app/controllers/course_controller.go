package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emrekb/coursedeck/internal/app/auth"
	"github.com/emrekb/coursedeck/internal/app/models/dto"
	"github.com/emrekb/coursedeck/internal/app/services"
	"github.com/emrekb/coursedeck/internal/middleware"
)

// CourseController handles course endpoints
type CourseController struct {
	courseService *services.CourseService
	resolver      *auth.Resolver
}

// NewCourseController creates a new course controller
func NewCourseController(courseService *services.CourseService, resolver *auth.Resolver) *CourseController {
	return &CourseController{
		courseService: courseService,
		resolver:      resolver,
	}
}

// List returns all courses
// @Summary List courses
// @Description List all courses; isEnrolled reflects the authenticated viewer
// @Tags courses
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseResponse} "Courses"
// @Security BearerAuth
// @Router /courses [get]
func (c *CourseController) List(ctx *gin.Context) {
	role, err := resolveRole(ctx, c.resolver)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	courses, err := c.courseService.List(ctx, role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(courses))
}

// Get returns one course with its lessons
// @Summary Get a course
// @Description Get one course with its ordered lessons; isEnrolled reflects the authenticated viewer
// @Tags courses
// @Produce json
// @Param id path int true "Course ID" Format(int64)
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse} "Course"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Security BearerAuth
// @Router /courses/{id} [get]
func (c *CourseController) Get(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	role, err := resolveRole(ctx, c.resolver)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	course, err := c.courseService.Get(ctx, role, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(course))
}

// Create creates a course owned by the requesting instructor
// @Summary Create a course
// @Description Create a course; the owner is always the requester's own instructor profile (Requires instructor role)
// @Tags courses
// @Accept json
// @Produce json
// @Param request body dto.CreateCourseRequest true "Course data"
// @Success 201 {object} dto.APIResponse{data=dto.CourseResponse} "Course created"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 403 {object} dto.ErrorResponse "Not an instructor"
// @Security BearerAuth
// @Router /courses [post]
func (c *CourseController) Create(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	role, err := resolveRole(ctx, c.resolver)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	course, err := c.courseService.Create(ctx, role, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(course))
}

// Update modifies a course
// @Summary Update a course
// @Description Update one of your own courses (Requires instructor role)
// @Tags courses
// @Accept json
// @Produce json
// @Param id path int true "Course ID" Format(int64)
// @Param request body dto.UpdateCourseRequest true "Course data"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse} "Course updated"
// @Failure 403 {object} dto.ErrorResponse "Not the owning instructor"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Security BearerAuth
// @Router /courses/{id} [put]
func (c *CourseController) Update(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	role, err := resolveRole(ctx, c.resolver)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	course, err := c.courseService.Update(ctx, role, courseID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(course))
}

// Delete removes a course
// @Summary Delete a course
// @Description Delete one of your own courses; its lessons and enrollments go with it (Requires instructor role)
// @Tags courses
// @Produce json
// @Param id path int true "Course ID" Format(int64)
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Course deleted"
// @Failure 403 {object} dto.ErrorResponse "Not the owning instructor"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Security BearerAuth
// @Router /courses/{id} [delete]
func (c *CourseController) Delete(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	role, err := resolveRole(ctx, c.resolver)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.courseService.Delete(ctx, role, courseID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Course deleted successfully"}))
}

// GetRoster returns a course together with its enrollments
// @Summary List course enrollments
// @Description List all enrollments of one of your own courses (Requires instructor role)
// @Tags courses
// @Produce json
// @Param id path int true "Course ID" Format(int64)
// @Success 200 {object} dto.APIResponse{data=dto.CourseWithEnrollmentsResponse} "Course with enrollments"
// @Failure 403 {object} dto.ErrorResponse "Not the owning instructor"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Security BearerAuth
// @Router /courses/{id}/enrollments [get]
func (c *CourseController) GetRoster(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	role, err := resolveRole(ctx, c.resolver)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	roster, err := c.courseService.GetRoster(ctx, role, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(roster))
}
