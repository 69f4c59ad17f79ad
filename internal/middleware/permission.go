package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/rodmarapp/rodmar_backend/internal/core/ports/services"
)

// RequirePermission gates a route group on one permission key. The caller's
// role is resolved per request; users without a role, or whose role does not
// grant the key, are rejected. Must run after AuthMiddleware.
func RequirePermission(users portssvc.UserSvcFacade, roles portssvc.RoleSvcFacade, key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserIDFromCtx(c.Request.Context())
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		user, err := users.GetUserByID(c.Request.Context(), userID)
		if err != nil || user.RoleID == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		role, err := roles.GetRoleByID(c.Request.Context(), user.RoleID)
		if err != nil || !role.HasPermission(key) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		c.Next()
	}
}
