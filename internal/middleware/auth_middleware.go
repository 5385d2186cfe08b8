package middleware

import (
	"strings"

	"swiftaid/internal/models"
	"swiftaid/internal/repositories/interfaces"
	"swiftaid/internal/utils"
	"swiftaid/pkg/auth"

	"github.com/gin-gonic/gin"
)

// AuthRequired validates the bearer token with the configured verifier and
// puts the subject on the context as string keys "user_id" and "user_role".
// When the token carries no role claim the profile document is consulted.
func AuthRequired(verifier auth.TokenVerifier, userRepo interfaces.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		claims, err := verifier.Verify(c.Request.Context(), tokenString)
		if err != nil {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		role := claims.Role
		if role == "" {
			if user, err := userRepo.GetByID(c.Request.Context(), claims.UserID); err == nil {
				role = string(user.Role)
			}
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_role", role)
		c.Set("user_email", claims.Email)

		c.Next()
	}
}

// RoleRequired gates a route group to the given roles. Must be mounted behind
// AuthRequired.
func RoleRequired(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		current := c.GetString("user_role")
		for _, role := range roles {
			if current == string(role) {
				c.Next()
				return
			}
		}
		utils.ForbiddenResponse(c)
		c.Abort()
	}
}

// DriverRequired restricts a group to drivers.
func DriverRequired() gin.HandlerFunc {
	return RoleRequired(models.RoleDriver)
}

// AdminRequired restricts a group to admins.
func AdminRequired() gin.HandlerFunc {
	return RoleRequired(models.RoleAdmin)
}
