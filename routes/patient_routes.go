package routes

import (
	"swiftaid/internal/handlers"
	"swiftaid/internal/middleware"
	"swiftaid/internal/models"

	"github.com/gin-gonic/gin"
)

// SetupPatientRoutes mounts the patient-facing emergency endpoints. Profile
// reads and writes go through the same auth handlers as /auth/me.
func SetupPatientRoutes(r *gin.RouterGroup, patientHandler *handlers.PatientHandler, authHandler *handlers.AuthHandler, authMW gin.HandlerFunc) {
	patient := r.Group("/patient")
	patient.Use(authMW, middleware.RoleRequired(models.RolePatient))
	{
		patient.POST("/emergency", patientHandler.CreateEmergency)
		patient.GET("/emergency", patientHandler.GetActiveEmergency)
		patient.GET("/emergency/driver", patientHandler.GetAssignedDriver)
		patient.GET("/emergency/history", patientHandler.GetHistory)

		patient.GET("/profile", authHandler.GetMe)
		patient.PUT("/profile", authHandler.UpdateProfile)
	}
}
