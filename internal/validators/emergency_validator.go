package validators

import (
	"swiftaid/internal/models"
)

// ValidateCreateEmergency checks the patient payload. Coordinates are
// optional, but half a coordinate pair is always a client bug.
func ValidateCreateEmergency(request *models.CreateEmergencyRequest) ValidationErrors {
	errs := ValidateStruct(request)

	loc := request.Location
	if (loc.Latitude == nil) != (loc.Longitude == nil) {
		errs = append(errs, ValidationError{
			Field:   "location",
			Message: "latitude and longitude must be provided together",
		})
	}
	if loc.Latitude != nil && (*loc.Latitude < -90 || *loc.Latitude > 90) {
		errs = append(errs, ValidationError{Field: "location.latitude", Message: "must be between -90 and 90"})
	}
	if loc.Longitude != nil && (*loc.Longitude < -180 || *loc.Longitude > 180) {
		errs = append(errs, ValidationError{Field: "location.longitude", Message: "must be between -180 and 180"})
	}

	return errs
}
