package handlers

import (
	"swiftaid/internal/models"
	"swiftaid/internal/services"
	"swiftaid/internal/utils"
	"swiftaid/internal/validators"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a profile for a new subject. When mounted behind
// AuthRequired (Firebase mode) the subject comes from the token; otherwise an
// ID is minted locally.
func (h *AuthHandler) Register(c *gin.Context) {
	var request models.RegisterRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if errs := validators.ValidateRegister(&request); errs != nil {
		utils.ValidationErrorResponse(c, errs.Fields())
		return
	}

	response, err := h.authService.Register(c.Request.Context(), c.GetString("user_id"), &request)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.CreatedResponse(c, "User registered successfully", response)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var request models.LoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if errs := validators.ValidateLogin(&request); errs != nil {
		utils.ValidationErrorResponse(c, errs.Fields())
		return
	}

	response, err := h.authService.Login(c.Request.Context(), &request)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, "Login successful", response)
}

// GetMe returns the profile for the authenticated subject.
func (h *AuthHandler) GetMe(c *gin.Context) {
	user, err := h.authService.GetCurrentUser(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, "User retrieved", user)
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), c.GetString("user_id"), updates)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, "Profile updated", user)
}
