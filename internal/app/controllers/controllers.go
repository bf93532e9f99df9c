// Package controllers wires HTTP requests to the service layer. Controllers
// bind and validate input, resolve the subject's role, call one service
// method and translate its result; all status code decisions live in the
// error middleware.
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/emrekb/coursedeck/internal/app/auth"
	"github.com/emrekb/coursedeck/internal/app/models/dto"
	"github.com/emrekb/coursedeck/internal/middleware"
)

// parseIDParam reads a positive int64 path parameter. On failure it writes
// the 400 response itself and reports ok=false.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name).
			WithField(name).
			WithDetails(name + " must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// currentUserID reads the authenticated subject from the request context.
// Zero means anonymous.
func currentUserID(ctx *gin.Context) int64 {
	if v, exists := ctx.Get(middleware.ContextUserIDKey); exists {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}

// resolveRole classifies the request subject. Anonymous requests get the
// anonymous role; authenticated ones are resolved against the instructor
// directory on every request.
func resolveRole(ctx *gin.Context, resolver *auth.Resolver) (auth.Role, error) {
	userID := currentUserID(ctx)
	if userID == 0 {
		return auth.Anonymous, nil
	}
	return resolver.Resolve(ctx, userID)
}
