package routes

import (
	"swiftaid/internal/handlers"
	"swiftaid/internal/middleware"
	"swiftaid/internal/models"

	"github.com/gin-gonic/gin"
)

// SetupDriverRoutes mounts the driver-facing dispatch endpoints. Patients are
// allowed through the role gate too; the mobile clients share screens that hit
// these reads, and the per-operation semantics stay safe either way.
func SetupDriverRoutes(r *gin.RouterGroup, driverHandler *handlers.DriverHandler, authMW gin.HandlerFunc) {
	driver := r.Group("/driver")
	driver.Use(authMW, middleware.RoleRequired(models.RoleDriver, models.RolePatient))
	{
		driver.POST("/duty/toggle", driverHandler.ToggleDuty)

		driver.POST("/location", driverHandler.UpdateLocation)
		driver.GET("/location/current", driverHandler.GetCurrentLocation)

		driver.GET("/requests/pending", driverHandler.GetPendingRequests)
		driver.GET("/requests/assigned", driverHandler.GetAssignedRequests)
		driver.POST("/requests/:emergencyId/accept", driverHandler.AcceptRequest)
		driver.POST("/requests/:emergencyId/reject", driverHandler.RejectRequest)
		driver.POST("/requests/:emergencyId/complete", driverHandler.CompleteRequest)

		driver.GET("/stats", driverHandler.GetStats)
		driver.POST("/stats", driverHandler.CreateStats)

		driver.GET("/profile", driverHandler.GetProfile)
		driver.PUT("/profile", driverHandler.UpdateProfile)
	}
}
