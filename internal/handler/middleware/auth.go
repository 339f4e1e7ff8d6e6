package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"telemed-booking/internal/domain/user"
	"telemed-booking/internal/handler/httperr"
	"telemed-booking/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	identities usecase.IdentityResolver
}

const (
	ctxUserIDKey   = "user_id"
	ctxUserRoleKey = "user_role"
)

var errUnauthorized = httperr.Sentinel("unauthorized")

func NewAuthMiddleware(identities usecase.IdentityResolver) *AuthMiddleware {
	return &AuthMiddleware{
		identities: identities,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthorized, "Access token required", nil)
			return
		}

		identity, err := m.identities.Resolve(token)
		if err != nil {
			slog.WarnContext(c.Request.Context(), "Token validation failed in auth middleware", "error", err.Error())
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid or expired token", nil)
			return
		}

		SetIdentity(c, identity)
		c.Next()
	}
}

// RequireRole must run after RequireAuth.
func (m *AuthMiddleware) RequireRole(roles ...user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthorized, "Unauthorized", nil)
			return
		}
		if !identity.HasAnyRole(roles...) {
			httperr.AbortWithError(c, http.StatusForbidden, errUnauthorized, "Insufficient permissions", nil)
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

// SetIdentity stores the caller on the context; tests use it to stub authentication.
func SetIdentity(c *gin.Context, identity user.Identity) {
	c.Set(ctxUserIDKey, identity.UserID)
	c.Set(ctxUserRoleKey, identity.Role)
	c.Set("jwt_claims", map[string]any{
		"user_id": identity.UserID.String(),
		"role":    string(identity.Role),
	})
}

func GetIdentity(c *gin.Context) (user.Identity, bool) {
	userID, ok := GetUserID(c)
	if !ok {
		return user.Identity{}, false
	}
	role, ok := GetUserRole(c)
	if !ok {
		return user.Identity{}, false
	}
	return user.Identity{UserID: userID, Role: role}, true
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(ctxUserIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := userID.(uuid.UUID)
	return id, ok
}

func GetUserRole(c *gin.Context) (user.Role, bool) {
	userRole, exists := c.Get(ctxUserRoleKey)
	if !exists {
		return "", false
	}

	role, ok := userRole.(user.Role)
	return role, ok
}
