package utils

import "time"

// Application constants
const (
	AppName = "SwiftAid"

	// Response status values
	StatusSuccess = "success"
	StatusError   = "error"

	// Dispatch defaults
	DefaultAverageSpeedKMH   = 30.0
	DefaultRouteSteps        = 12
	DefaultSyntheticRadiusKM = 2.0
	DriverLocationStaleAfter = 5 * time.Minute
	PendingListCacheTTL      = 10 * time.Second
	LiveLocationCacheTTL     = 30 * time.Second

	// Common error messages
	ErrValidationFailed = "Validation failed"
	ErrInternalServer   = "Internal server error"
	ErrUnauthorized     = "Unauthorized access"
	ErrForbidden        = "Access forbidden"
)
