package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emrekb/coursedeck/internal/app/controllers"
	"github.com/emrekb/coursedeck/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	courseController *controllers.CourseController,
	lessonController *controllers.LessonController,
	enrollmentController *controllers.EnrollmentController,
	gradeController *controllers.GradeController,
	reportController *controllers.ReportController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
		// Logout still needs a valid access token; the refresh token to
		// revoke travels in the body
		auth.POST("/logout", authMiddleware.JWTAuth(), authController.Logout)
		auth.POST("/logout-all", authMiddleware.JWTAuth(), authController.LogoutAll)
	}

	// --- Course and lesson reads: public, tailored when a token is present ---
	coursesPublic := v1.Group("/courses")
	coursesPublic.Use(authMiddleware.OptionalJWTAuth())
	{
		coursesPublic.GET("", courseController.List)
		coursesPublic.GET("/:id", courseController.Get)
		coursesPublic.GET("/:id/lessons", lessonController.List)
		coursesPublic.GET("/:id/lessons/:lessonId", lessonController.Get)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		courses := authenticated.Group("/courses")
		{
			// Writes: ownership is enforced in the service layer, a
			// non-instructor or wrong instructor gets 403
			courses.POST("", courseController.Create)
			courses.PUT("/:id", courseController.Update)
			courses.DELETE("/:id", courseController.Delete)

			courses.POST("/:id/lessons", lessonController.Create)
			courses.PUT("/:id/lessons/:lessonId", lessonController.Update)
			courses.DELETE("/:id/lessons/:lessonId", lessonController.Delete)

			// Enrollment, from the course side
			courses.POST("/:id/enroll", enrollmentController.Enroll)
			courses.POST("/:id/unenroll", enrollmentController.Unenroll)
			courses.GET("/:id/enrollment-status", enrollmentController.Status)

			// Roster, owning instructor only
			courses.GET("/:id/enrollments", courseController.GetRoster)
		}

		enrollments := authenticated.Group("/enrollments")
		{
			enrollments.GET("", enrollmentController.ListMine)
			enrollments.POST("", enrollmentController.Create)
			enrollments.DELETE("/:id", enrollmentController.Delete)
		}

		grades := authenticated.Group("/grades")
		{
			grades.GET("", gradeController.List)
			grades.GET("/:id", gradeController.Get)
			grades.POST("", gradeController.Create)
			grades.PUT("/:id", gradeController.Update)
			grades.DELETE("/:id", gradeController.Delete)
		}

		instructor := authenticated.Group("/instructor")
		{
			instructor.GET("/dashboard", reportController.Dashboard)
			instructor.GET("/courses/:id/details", reportController.CourseDetails)
		}
	}
}
