package routes

import (
	"swiftaid/internal/handlers"
	"swiftaid/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupAdminRoutes mounts the fleet-wide read views.
func SetupAdminRoutes(r *gin.RouterGroup, adminHandler *handlers.AdminHandler, authMW gin.HandlerFunc) {
	admin := r.Group("/admin")
	admin.Use(authMW, middleware.AdminRequired())
	{
		admin.GET("/drivers", adminHandler.GetDrivers)
		admin.GET("/patients", adminHandler.GetPatients)
		admin.GET("/emergencies", adminHandler.GetEmergencies)
		admin.GET("/locations", adminHandler.GetLiveLocations)
		admin.GET("/dashboard/metrics", adminHandler.GetDashboardMetrics)
	}
}
