package handlers

import (
	"swiftaid/internal/models"
	"swiftaid/internal/services"
	"swiftaid/internal/utils"
	"swiftaid/internal/validators"

	"github.com/gin-gonic/gin"
)

type DriverHandler struct {
	dispatchService services.DispatchService
}

func NewDriverHandler(dispatchService services.DispatchService) *DriverHandler {
	return &DriverHandler{dispatchService: dispatchService}
}

func (h *DriverHandler) ToggleDuty(c *gin.Context) {
	user, err := h.dispatchService.ToggleDutyStatus(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, "Duty status updated", user)
}

func (h *DriverHandler) UpdateLocation(c *gin.Context) {
	var request models.LocationUpdateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if errs := validators.ValidateLocationUpdate(&request); errs != nil {
		utils.ValidationErrorResponse(c, errs.Fields())
		return
	}

	location, err := h.dispatchService.UpdateLocation(c.Request.Context(), c.GetString("user_id"), request.Latitude, request.Longitude)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, "Location updated", location)
}

func (h *DriverHandler) GetCurrentLocation(c *gin.Context) {
	location, err := h.dispatchService.GetCurrentLocation(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, "Current location retrieved", location)
}

func (h *DriverHandler) GetPendingRequests(c *gin.Context) {
	emergencies, err := h.dispatchService.GetPendingRequests(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, "Pending requests retrieved", emergencies)
}

func (h *DriverHandler) GetAssignedRequests(c *gin.Context) {
	emergencies, err := h.dispatchService.GetAssignedRequests(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, "Assigned requests retrieved", emergencies)
}

func (h *DriverHandler) AcceptRequest(c *gin.Context) {
	emergencyID, ok := emergencyIDParam(c)
	if !ok {
		return
	}

	emergency, err := h.dispatchService.AcceptRequest(c.Request.Context(), c.GetString("user_id"), emergencyID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, "Emergency accepted", emergency)
}

func (h *DriverHandler) RejectRequest(c *gin.Context) {
	emergencyID, ok := emergencyIDParam(c)
	if !ok {
		return
	}

	emergency, err := h.dispatchService.RejectRequest(c.Request.Context(), c.GetString("user_id"), emergencyID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, "Emergency rejected", emergency)
}

func (h *DriverHandler) CompleteRequest(c *gin.Context) {
	emergencyID, ok := emergencyIDParam(c)
	if !ok {
		return
	}

	emergency, err := h.dispatchService.CompleteRequest(c.Request.Context(), c.GetString("user_id"), emergencyID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, "Emergency completed", emergency)
}

func (h *DriverHandler) GetStats(c *gin.Context) {
	stats, err := h.dispatchService.GetStats(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, "Driver stats retrieved", stats)
}

// CreateStats initializes the counter document explicitly. Normally this
// happens at registration; the endpoint exists for migrated accounts.
func (h *DriverHandler) CreateStats(c *gin.Context) {
	stats := models.NewDriverStats(c.GetString("user_id"))
	created, err := h.dispatchService.CreateStats(c.Request.Context(), stats)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.CreatedResponse(c, "Driver stats created", created)
}

func (h *DriverHandler) GetProfile(c *gin.Context) {
	profile, err := h.dispatchService.GetDriverProfile(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, "Driver profile retrieved", profile)
}

func (h *DriverHandler) UpdateProfile(c *gin.Context) {
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	user, err := h.dispatchService.UpdateDriverProfile(c.Request.Context(), c.GetString("user_id"), updates)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, "Driver profile updated", user)
}
