package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emrekb/coursedeck/internal/app/models"
	"github.com/emrekb/coursedeck/internal/pkg/auth"
)

func newTestAuth(t *testing.T) (*AuthMiddleware, string) {
	t.Helper()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "coursedeck-test",
	})

	accessToken, _, _, _, err := jwtService.GenerateTokenPair(&models.User{ID: 42, Email: "alice@example.com"})
	require.NoError(t, err)

	return NewAuthMiddleware(jwtService), accessToken
}

func runAuthRequest(m gin.HandlerFunc, authHeader string) (*httptest.ResponseRecorder, int64) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	var seenUserID int64
	router.GET("/protected", m, func(c *gin.Context) {
		seenUserID = c.GetInt64(ContextUserIDKey)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder, seenUserID
}

func TestJWTAuth(t *testing.T) {
	middleware, accessToken := newTestAuth(t)

	t.Run("valid token", func(t *testing.T) {
		recorder, userID := runAuthRequest(middleware.JWTAuth(), "Bearer "+accessToken)
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, int64(42), userID)
	})

	t.Run("missing header", func(t *testing.T) {
		recorder, _ := runAuthRequest(middleware.JWTAuth(), "")
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		recorder, _ := runAuthRequest(middleware.JWTAuth(), "not-a-token")
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		recorder, _ := runAuthRequest(middleware.JWTAuth(), "Bearer a.b.c")
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestOptionalJWTAuth(t *testing.T) {
	middleware, accessToken := newTestAuth(t)

	t.Run("no header passes through anonymously", func(t *testing.T) {
		recorder, userID := runAuthRequest(middleware.OptionalJWTAuth(), "")
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Zero(t, userID)
	})

	t.Run("valid token establishes identity", func(t *testing.T) {
		recorder, userID := runAuthRequest(middleware.OptionalJWTAuth(), "Bearer "+accessToken)
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, int64(42), userID)
	})

	t.Run("broken token is rejected, not anonymous", func(t *testing.T) {
		recorder, _ := runAuthRequest(middleware.OptionalJWTAuth(), "Bearer a.b.c")
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}
