package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emrekb/coursedeck/internal/app/auth"
	"github.com/emrekb/coursedeck/internal/app/models/dto"
	"github.com/emrekb/coursedeck/internal/app/services"
	"github.com/emrekb/coursedeck/internal/middleware"
)

// GradeController handles grade endpoints
type GradeController struct {
	gradeService *services.GradeService
	resolver     *auth.Resolver
}

// NewGradeController creates a new grade controller
func NewGradeController(gradeService *services.GradeService, resolver *auth.Resolver) *GradeController {
	return &GradeController{
		gradeService: gradeService,
		resolver:     resolver,
	}
}

// List returns the grades visible to the requester
// @Summary List grades
// @Description Instructors see all grades in their courses; students see their own grades
// @Tags grades
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.GradeResponse} "Grades"
// @Security BearerAuth
// @Router /grades [get]
func (c *GradeController) List(ctx *gin.Context) {
	role, err := resolveRole(ctx, c.resolver)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	grades, err := c.gradeService.List(ctx, role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(grades))
}

// Get returns one grade
// @Summary Get a grade
// @Description Get one grade; visible to the graded student and the owning instructor
// @Tags grades
// @Produce json
// @Param id path int true "Grade ID" Format(int64)
// @Success 200 {object} dto.APIResponse{data=dto.GradeResponse} "Grade"
// @Failure 403 {object} dto.ErrorResponse "Not allowed to see this grade"
// @Failure 404 {object} dto.ErrorResponse "Grade not found"
// @Security BearerAuth
// @Router /grades/{id} [get]
func (c *GradeController) Get(ctx *gin.Context) {
	gradeID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	role, err := resolveRole(ctx, c.resolver)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	grade, err := c.gradeService.Get(ctx, role, gradeID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(grade))
}

// Create records a grade
// @Summary Create a grade
// @Description Record a grade for an enrollment in one of your own courses (Requires instructor role)
// @Tags grades
// @Accept json
// @Produce json
// @Param request body dto.CreateGradeRequest true "Grade data"
// @Success 201 {object} dto.APIResponse{data=dto.GradeResponse} "Grade created"
// @Failure 403 {object} dto.ErrorResponse "Not the owning instructor"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Security BearerAuth
// @Router /grades [post]
func (c *GradeController) Create(ctx *gin.Context) {
	var req dto.CreateGradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	role, err := resolveRole(ctx, c.resolver)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	grade, err := c.gradeService.Create(ctx, role, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(grade))
}

// Update changes a grade's score
// @Summary Update a grade
// @Description Change the score of a grade in one of your own courses (Requires instructor role)
// @Tags grades
// @Accept json
// @Produce json
// @Param id path int true "Grade ID" Format(int64)
// @Param request body dto.UpdateGradeRequest true "New score"
// @Success 200 {object} dto.APIResponse{data=dto.GradeResponse} "Grade updated"
// @Failure 403 {object} dto.ErrorResponse "Not the owning instructor"
// @Failure 404 {object} dto.ErrorResponse "Grade not found"
// @Security BearerAuth
// @Router /grades/{id} [put]
func (c *GradeController) Update(ctx *gin.Context) {
	gradeID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateGradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	role, err := resolveRole(ctx, c.resolver)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	grade, err := c.gradeService.Update(ctx, role, gradeID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(grade))
}

// Delete removes a grade
// @Summary Delete a grade
// @Description Delete a grade in one of your own courses (Requires instructor role)
// @Tags grades
// @Produce json
// @Param id path int true "Grade ID" Format(int64)
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Grade deleted"
// @Failure 403 {object} dto.ErrorResponse "Not the owning instructor"
// @Failure 404 {object} dto.ErrorResponse "Grade not found"
// @Security BearerAuth
// @Router /grades/{id} [delete]
func (c *GradeController) Delete(ctx *gin.Context) {
	gradeID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	role, err := resolveRole(ctx, c.resolver)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.gradeService.Delete(ctx, role, gradeID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Grade deleted successfully"}))
}
