//go:build unit

package api_test

import (
	"net/http"

	"telemed-booking/internal/domain/user"
	"telemed-booking/internal/handler/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// test callers pick their role with this header; a bearer token marks them authenticated
const testRoleHeader = "X-Test-Role"

// stubAuth stands in for RequireAuth so handler tests need no signed tokens.
func stubAuth(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		role := user.Role(c.GetHeader(testRoleHeader))
		if role == "" {
			role = user.RolePatient
		}
		middleware.SetIdentity(c, user.Identity{UserID: userID, Role: role})
		c.Next()
	}
}
