package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emrekb/coursedeck/internal/app/models/dto"
	"github.com/emrekb/coursedeck/internal/pkg/auth"
)

// Context keys set by the auth middleware
const (
	ContextUserIDKey = "userID"
	ContextEmailKey  = "email"
)

// AuthMiddleware handles JWT authentication. It only establishes identity;
// role resolution and authorization live in the service layer.
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// JWTAuth requires a valid access token and puts the subject identity into
// the request context.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := m.validate(c)
		if err != nil {
			abortUnauthorized(c, err)
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextEmailKey, claims.Email)
		c.Next()
	}
}

// OptionalJWTAuth establishes identity when a token is present but lets
// anonymous requests through. Used on course and lesson reads, which are
// public yet tailored to the viewer.
func (m *AuthMiddleware) OptionalJWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}

		claims, err := m.validate(c)
		if err != nil {
			// A presented but broken token is an error, not anonymity
			abortUnauthorized(c, err)
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextEmailKey, claims.Email)
		c.Next()
	}
}

func (m *AuthMiddleware) validate(c *gin.Context) (*auth.Claims, error) {
	tokenString, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
	if err != nil {
		return nil, err
	}
	return m.jwtService.ValidateToken(tokenString)
}

func abortUnauthorized(c *gin.Context, err error) {
	code := dto.ErrorCodeInvalidToken
	message := "Authentication failed"
	details := "Invalid token"

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		code = dto.ErrorCodeExpiredToken
		details = "Token has expired"
	case errors.Is(err, auth.ErrInvalidFormat):
		code = dto.ErrorCodeUnauthorized
		message = "Authentication required"
		details = "Authorization header missing or malformed"
	}

	errorDetail := dto.NewErrorDetail(code, message).WithDetails(details)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
}
