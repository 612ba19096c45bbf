package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edusync/edusync/internal/app/models"
	"github.com/edusync/edusync/internal/middleware"
	"github.com/edusync/edusync/internal/pkg/auth"
)

func newProtectedRouter(jwtService *auth.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	authMiddleware := middleware.NewAuthMiddleware(jwtService)

	router := gin.New()
	router.GET("/protected", authMiddleware.JWTAuth(), func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no user id"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"userID": userID})
	})
	return router
}

func issueToken(t *testing.T, jwtService *auth.JWTService) string {
	t.Helper()
	accessToken, _, _, _, err := jwtService.GenerateTokenPair(&models.User{ID: 7, Email: "ana@example.com"})
	require.NoError(t, err)
	return accessToken
}

func TestJWTAuth_AcceptsBearerHeader(t *testing.T) {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
	})
	router := newProtectedRouter(jwtService)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, jwtService))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userID":7`)
}

func TestJWTAuth_AcceptsQueryToken(t *testing.T) {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
	})
	router := newProtectedRouter(jwtService)

	// WebSocket clients cannot set headers and pass the token in the query
	req := httptest.NewRequest(http.MethodGet, "/protected?token="+issueToken(t, jwtService), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTAuth_RejectsMissingToken(t *testing.T) {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
	})
	router := newProtectedRouter(jwtService)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_RejectsExpiredToken(t *testing.T) {
	expiredIssuer := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: -time.Minute,
	})
	router := newProtectedRouter(expiredIssuer)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, expiredIssuer))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_005")
}

func TestJWTAuth_RejectsTamperedToken(t *testing.T) {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
	})
	router := newProtectedRouter(jwtService)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, jwtService)+"x")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
