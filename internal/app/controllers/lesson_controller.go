package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emrekb/coursedeck/internal/app/auth"
	"github.com/emrekb/coursedeck/internal/app/models/dto"
	"github.com/emrekb/coursedeck/internal/app/services"
	"github.com/emrekb/coursedeck/internal/middleware"
)

// LessonController handles lesson endpoints nested under a course
type LessonController struct {
	lessonService *services.LessonService
	resolver      *auth.Resolver
}

// NewLessonController creates a new lesson controller
func NewLessonController(lessonService *services.LessonService, resolver *auth.Resolver) *LessonController {
	return &LessonController{
		lessonService: lessonService,
		resolver:      resolver,
	}
}

// List returns a course's lessons
// @Summary List lessons
// @Description List a course's lessons ordered by position
// @Tags lessons
// @Produce json
// @Param id path int true "Course ID" Format(int64)
// @Success 200 {object} dto.APIResponse{data=[]dto.LessonResponse} "Lessons"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id}/lessons [get]
func (c *LessonController) List(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	lessons, err := c.lessonService.List(ctx, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(lessons))
}

// Get returns one lesson
// @Summary Get a lesson
// @Description Get one lesson of a course
// @Tags lessons
// @Produce json
// @Param id path int true "Course ID" Format(int64)
// @Param lessonId path int true "Lesson ID" Format(int64)
// @Success 200 {object} dto.APIResponse{data=dto.LessonResponse} "Lesson"
// @Failure 404 {object} dto.ErrorResponse "Lesson not found"
// @Router /courses/{id}/lessons/{lessonId} [get]
func (c *LessonController) Get(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	lessonID, ok := parseIDParam(ctx, "lessonId")
	if !ok {
		return
	}

	lesson, err := c.lessonService.Get(ctx, courseID, lessonID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(lesson))
}

// Create adds a lesson to a course
// @Summary Create a lesson
// @Description Add a lesson to one of your own courses; the order must be unique within the course (Requires instructor role)
// @Tags lessons
// @Accept json
// @Produce json
// @Param id path int true "Course ID" Format(int64)
// @Param request body dto.CreateLessonRequest true "Lesson data"
// @Success 201 {object} dto.APIResponse{data=dto.LessonResponse} "Lesson created"
// @Failure 403 {object} dto.ErrorResponse "Not the owning instructor"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Lesson order already taken"
// @Security BearerAuth
// @Router /courses/{id}/lessons [post]
func (c *LessonController) Create(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	role, err := resolveRole(ctx, c.resolver)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	lesson, err := c.lessonService.Create(ctx, role, courseID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(lesson))
}

// Update modifies a lesson
// @Summary Update a lesson
// @Description Update a lesson in one of your own courses (Requires instructor role)
// @Tags lessons
// @Accept json
// @Produce json
// @Param id path int true "Course ID" Format(int64)
// @Param lessonId path int true "Lesson ID" Format(int64)
// @Param request body dto.UpdateLessonRequest true "Lesson data"
// @Success 200 {object} dto.APIResponse{data=dto.LessonResponse} "Lesson updated"
// @Failure 403 {object} dto.ErrorResponse "Not the owning instructor"
// @Failure 404 {object} dto.ErrorResponse "Lesson not found"
// @Failure 409 {object} dto.ErrorResponse "Lesson order already taken"
// @Security BearerAuth
// @Router /courses/{id}/lessons/{lessonId} [put]
func (c *LessonController) Update(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	lessonID, ok := parseIDParam(ctx, "lessonId")
	if !ok {
		return
	}

	var req dto.UpdateLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	role, err := resolveRole(ctx, c.resolver)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	lesson, err := c.lessonService.Update(ctx, role, courseID, lessonID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(lesson))
}

// Delete removes a lesson
// @Summary Delete a lesson
// @Description Delete a lesson from one of your own courses (Requires instructor role)
// @Tags lessons
// @Produce json
// @Param id path int true "Course ID" Format(int64)
// @Param lessonId path int true "Lesson ID" Format(int64)
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Lesson deleted"
// @Failure 403 {object} dto.ErrorResponse "Not the owning instructor"
// @Failure 404 {object} dto.ErrorResponse "Lesson not found"
// @Security BearerAuth
// @Router /courses/{id}/lessons/{lessonId} [delete]
func (c *LessonController) Delete(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	lessonID, ok := parseIDParam(ctx, "lessonId")
	if !ok {
		return
	}

	role, err := resolveRole(ctx, c.resolver)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.lessonService.Delete(ctx, role, courseID, lessonID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Lesson deleted successfully"}))
}
