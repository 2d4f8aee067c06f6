package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TokenValidator validates an access token and returns the user ID it
// belongs to.
type TokenValidator interface {
	ValidateToken(tokenString string) (int, error)
}

// RoleChecker looks up a user's role.
type RoleChecker interface {
	GetRole(ctx context.Context, userID int) (string, error)
}

// AuthMiddleware creates middleware for JWT authentication
func AuthMiddleware(validator TokenValidator, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		headerParts := strings.Split(authHeader, " ")
		if len(headerParts) != 2 || headerParts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization format"})
			c.Abort()
			return
		}

		userID, err := validator.ValidateToken(headerParts[1])
		if err != nil {
			logger.Debug("token validation failed", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves the viewer from a Bearer token when one is
// present but lets anonymous requests through. Browse endpoints use it so
// ranking can degrade to unscored results instead of rejecting the call.
func OptionalAuthMiddleware(validator TokenValidator, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		headerParts := strings.Split(authHeader, " ")
		if len(headerParts) != 2 || headerParts[0] != "Bearer" {
			c.Next()
			return
		}

		if userID, err := validator.ValidateToken(headerParts[1]); err == nil {
			c.Set("userID", userID)
		} else {
			logger.Debug("ignoring invalid token on public route", zap.Error(err))
		}
		c.Next()
	}
}

// RequireRole middleware checks if the authenticated user has one of the
// required roles
func RequireRole(roles RoleChecker, requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		role, err := roles.GetRole(c.Request.Context(), userID.(int))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user data"})
			c.Abort()
			return
		}

		for _, required := range requiredRoles {
			if role == required {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		c.Abort()
	}
}

// CurrentUserID returns the authenticated user ID set by AuthMiddleware,
// or 0 when the request is anonymous.
func CurrentUserID(c *gin.Context) int {
	if v, exists := c.Get("userID"); exists {
		if id, ok := v.(int); ok {
			return id
		}
	}
	return 0
}
