package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubValidator struct {
	userID int
	err    error
}

func (s stubValidator) ValidateToken(string) (int, error) {
	return s.userID, s.err
}

type stubRoles struct {
	role string
	err  error
}

func (s stubRoles) GetRole(context.Context, int) (string, error) {
	return s.role, s.err
}

func newRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", mw, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": CurrentUserID(c)})
	})
	return router
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	router := newRouter(AuthMiddleware(stubValidator{userID: 7}, zap.NewNop()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	router := newRouter(AuthMiddleware(stubValidator{userID: 7}, zap.NewNop()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "token abc")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	router := newRouter(AuthMiddleware(stubValidator{err: errors.New("expired")}, zap.NewNop()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer abc")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	router := newRouter(AuthMiddleware(stubValidator{userID: 42}, zap.NewNop()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer abc")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id": 42}`, w.Body.String())
}

func TestOptionalAuthMiddleware_AnonymousPassesThrough(t *testing.T) {
	router := newRouter(OptionalAuthMiddleware(stubValidator{userID: 42}, zap.NewNop()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id": 0}`, w.Body.String())
}

func TestOptionalAuthMiddleware_InvalidTokenIgnored(t *testing.T) {
	router := newRouter(OptionalAuthMiddleware(stubValidator{err: errors.New("expired")}, zap.NewNop()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer bad")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id": 0}`, w.Body.String())
}

func TestOptionalAuthMiddleware_ValidTokenResolvesViewer(t *testing.T) {
	router := newRouter(OptionalAuthMiddleware(stubValidator{userID: 9}, zap.NewNop()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id": 9}`, w.Body.String())
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		role     string
		roleErr  error
		expected int
	}{
		{name: "matching role", role: "admin", expected: http.StatusOK},
		{name: "wrong role", role: "user", expected: http.StatusForbidden},
		{name: "lookup failure", roleErr: errors.New("db down"), expected: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/admin",
				AuthMiddleware(stubValidator{userID: 1}, zap.NewNop()),
				RequireRole(stubRoles{role: tt.role, err: tt.roleErr}, "admin"),
				func(c *gin.Context) { c.Status(http.StatusOK) },
			)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			req.Header.Set("Authorization", "Bearer abc")
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expected, w.Code)
		})
	}
}
