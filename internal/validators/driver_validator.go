package validators

import (
	"swiftaid/internal/models"
)

// ValidateLocationUpdate checks a driver position report. The range checks
// are explicit rather than required tags because (0, 0) is a legal position.
func ValidateLocationUpdate(request *models.LocationUpdateRequest) ValidationErrors {
	var errs ValidationErrors
	if request.Latitude < -90 || request.Latitude > 90 {
		errs = append(errs, ValidationError{Field: "latitude", Message: "must be between -90 and 90"})
	}
	if request.Longitude < -180 || request.Longitude > 180 {
		errs = append(errs, ValidationError{Field: "longitude", Message: "must be between -180 and 180"})
	}
	return errs
}

func ValidateRegister(request *models.RegisterRequest) ValidationErrors {
	return ValidateStruct(request)
}

func ValidateLogin(request *models.LoginRequest) ValidationErrors {
	return ValidateStruct(request)
}
