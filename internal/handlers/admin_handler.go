package handlers

import (
	"swiftaid/internal/services"
	"swiftaid/internal/utils"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminService services.AdminService
}

func NewAdminHandler(adminService services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) GetDrivers(c *gin.Context) {
	drivers, err := h.adminService.GetAllDrivers(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, "Drivers retrieved", drivers)
}

func (h *AdminHandler) GetPatients(c *gin.Context) {
	patients, err := h.adminService.GetAllPatients(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, "Patients retrieved", patients)
}

func (h *AdminHandler) GetEmergencies(c *gin.Context) {
	emergencies, err := h.adminService.GetAllEmergencies(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, "Emergencies retrieved", emergencies)
}

func (h *AdminHandler) GetLiveLocations(c *gin.Context) {
	locations, err := h.adminService.GetLiveLocations(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, "Live locations retrieved", locations)
}

func (h *AdminHandler) GetDashboardMetrics(c *gin.Context) {
	metrics, err := h.adminService.GetDashboardMetrics(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, "Dashboard metrics retrieved", metrics)
}
