package handlers

import (
	"errors"

	"swiftaid/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// respondServiceError maps the service-layer sentinels onto HTTP responses.
// Anything unrecognized is an internal or upstream failure and surfaces as a
// 500 without leaking detail.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, utils.ErrEmergencyNotFound):
		utils.NotFoundResponse(c, "Emergency")
	case errors.Is(err, utils.ErrUserNotFound):
		utils.NotFoundResponse(c, "User")
	case errors.Is(err, utils.ErrLocationNotFound):
		utils.NotFoundResponse(c, "Location")
	case errors.Is(err, utils.ErrStatsNotFound):
		utils.NotFoundResponse(c, "Driver stats")
	case errors.Is(err, utils.ErrAlreadyAssigned):
		utils.ConflictResponse(c, "Emergency has already been assigned to another driver")
	case errors.Is(err, utils.ErrEmailExists):
		utils.ConflictResponse(c, "Email is already registered")
	case errors.Is(err, utils.ErrStatsExist):
		utils.ConflictResponse(c, "Driver stats already exist")
	case errors.Is(err, utils.ErrUserInactive):
		utils.ForbiddenResponse(c)
	default:
		utils.InternalServerErrorResponse(c)
	}
}

// emergencyIDParam parses the :emergencyId path segment.
func emergencyIDParam(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("emergencyId"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid emergency ID")
		return primitive.NilObjectID, false
	}
	return id, true
}
