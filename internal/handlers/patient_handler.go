package handlers

import (
	"swiftaid/internal/models"
	"swiftaid/internal/services"
	"swiftaid/internal/utils"
	"swiftaid/internal/validators"

	"github.com/gin-gonic/gin"
)

type PatientHandler struct {
	emergencyService services.EmergencyService
}

func NewPatientHandler(emergencyService services.EmergencyService) *PatientHandler {
	return &PatientHandler{emergencyService: emergencyService}
}

func (h *PatientHandler) CreateEmergency(c *gin.Context) {
	var request models.CreateEmergencyRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if errs := validators.ValidateCreateEmergency(&request); errs != nil {
		utils.ValidationErrorResponse(c, errs.Fields())
		return
	}

	emergency, err := h.emergencyService.CreateEmergency(c.Request.Context(), c.GetString("user_id"), &request)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.CreatedResponse(c, "Emergency request created", emergency)
}

// GetActiveEmergency returns the patient's in-flight request, or null when
// nothing is active. Not having one is a normal state, not an error.
func (h *PatientHandler) GetActiveEmergency(c *gin.Context) {
	emergency, err := h.emergencyService.GetActiveEmergency(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, "Active emergency retrieved", emergency)
}

func (h *PatientHandler) GetAssignedDriver(c *gin.Context) {
	driver, err := h.emergencyService.GetAssignedDriver(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, "Assigned driver retrieved", driver)
}

func (h *PatientHandler) GetHistory(c *gin.Context) {
	emergencies, err := h.emergencyService.GetPatientHistory(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, "Emergency history retrieved", emergencies)
}
