package routes

import (
	"swiftaid/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes mounts registration, login and the profile endpoints.
// protectedRegister puts the register endpoint behind the token middleware,
// which the Firebase provider needs so the profile is keyed by the verified
// uid; the local provider registers unauthenticated and mints its own IDs.
func SetupAuthRoutes(r *gin.RouterGroup, authHandler *handlers.AuthHandler, authMW gin.HandlerFunc, protectedRegister bool) {
	auth := r.Group("/auth")
	{
		if protectedRegister {
			auth.POST("/register", authMW, authHandler.Register)
		} else {
			auth.POST("/register", authHandler.Register)
		}
		auth.POST("/login", authHandler.Login)

		me := auth.Group("")
		me.Use(authMW)
		{
			me.GET("/me", authHandler.GetMe)
			me.PUT("/profile", authHandler.UpdateProfile)
		}
	}
}
