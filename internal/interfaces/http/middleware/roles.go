package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studioerp/backend/internal/domain/identity"
	"github.com/studioerp/backend/internal/interfaces/http/dto"
)

// RequireRoles rejects requests whose authenticated role is not in the
// allowed set. Must run after JWTAuth.
func RequireRoles(roles ...identity.Role) gin.HandlerFunc {
	allowed := make(map[identity.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		role := identity.Role(GetJWTRole(c))
		if _, ok := allowed[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "You do not have permission to perform this action"))
			return
		}
		c.Next()
	}
}

// RequireElevated allows only Super Admin and Admin
func RequireElevated() gin.HandlerFunc {
	return RequireRoles(identity.RoleSuperAdmin, identity.RoleAdmin)
}
