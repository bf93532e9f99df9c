package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emrekb/coursedeck/internal/app/models/dto"
	"github.com/emrekb/coursedeck/internal/pkg/apperrors"
	"github.com/emrekb/coursedeck/internal/pkg/logger"
)

// HandleAPIError translates service-layer errors into HTTP responses. It is
// the single place where application errors meet status codes; controllers
// never pick statuses themselves.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	// 404 family. ErrNotEnrolled is reported on unenrolling from a course
	// the requester never joined.
	case errors.Is(err, apperrors.ErrNotEnrolled):
		respond(c, http.StatusNotFound, dto.ErrorCodeNotEnrolled, err.Error())
	case errors.Is(err, apperrors.ErrCourseNotFound),
		errors.Is(err, apperrors.ErrLessonNotFound),
		errors.Is(err, apperrors.ErrEnrollmentNotFound),
		errors.Is(err, apperrors.ErrGradeNotFound),
		errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrInstructorNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, err.Error())

	// 403: the message carries the human-readable reason from the policy
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respond(c, http.StatusForbidden, dto.ErrorCodeForbidden, err.Error())

	// 401
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials")
	case errors.Is(err, apperrors.ErrTokenExpired):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenNotFound):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeTokenNotFound, "Token not found")
	case errors.Is(err, apperrors.ErrTokenRevoked),
		errors.Is(err, apperrors.ErrTokenInvalid):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token")

	// 409
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already exists")
	case errors.Is(err, apperrors.ErrLessonOrderConflict):
		respond(c, http.StatusConflict, dto.ErrorCodeConflict, err.Error())
	case errors.Is(err, apperrors.ErrResourceAlreadyExists):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, err.Error())
	case errors.Is(err, apperrors.ErrConflict):
		respond(c, http.StatusConflict, dto.ErrorCodeConflict, err.Error())

	// 400
	case errors.Is(err, apperrors.ErrValidationFailed):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, err.Error())
	case errors.Is(err, apperrors.ErrBadRequest):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, err.Error())

	default:
		logger.Error().Err(err).
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Msg("Unhandled API error")
		respond(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
	}
}

func respond(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}
