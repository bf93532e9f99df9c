package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emrekb/coursedeck/internal/app/auth"
	"github.com/emrekb/coursedeck/internal/app/models/dto"
	"github.com/emrekb/coursedeck/internal/app/services"
	"github.com/emrekb/coursedeck/internal/middleware"
)

// ReportController handles the instructor reporting endpoints
type ReportController struct {
	reportService *services.ReportService
	resolver      *auth.Resolver
}

// NewReportController creates a new report controller
func NewReportController(reportService *services.ReportService, resolver *auth.Resolver) *ReportController {
	return &ReportController{
		reportService: reportService,
		resolver:      resolver,
	}
}

// Dashboard returns the instructor dashboard
// @Summary Instructor dashboard
// @Description Totals, recent enrollments, per-course summaries and the trailing-week enrollment trend for your own courses (Requires instructor role)
// @Tags reports
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.DashboardResponse} "Dashboard"
// @Failure 403 {object} dto.ErrorResponse "Not an instructor"
// @Security BearerAuth
// @Router /instructor/dashboard [get]
func (c *ReportController) Dashboard(ctx *gin.Context) {
	role, err := resolveRole(ctx, c.resolver)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	dashboard, err := c.reportService.Dashboard(ctx, role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dashboard))
}

// CourseDetails returns the detailed report for one owned course
// @Summary Course details report
// @Description Counts, full roster and ordered lessons for one of your own courses (Requires instructor role)
// @Tags reports
// @Produce json
// @Param id path int true "Course ID" Format(int64)
// @Success 200 {object} dto.APIResponse{data=dto.CourseDetailsResponse} "Course details"
// @Failure 403 {object} dto.ErrorResponse "Not the owning instructor"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Security BearerAuth
// @Router /instructor/courses/{id}/details [get]
func (c *ReportController) CourseDetails(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	role, err := resolveRole(ctx, c.resolver)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	details, err := c.reportService.CourseDetails(ctx, role, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(details))
}
