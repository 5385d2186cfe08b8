package validators

import (
	"testing"

	"swiftaid/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func coord(v float64) *float64 { return &v }

func TestValidateCreateEmergency_Valid(t *testing.T) {
	errs := ValidateCreateEmergency(&models.CreateEmergencyRequest{
		EmergencyType:  "Cardiac",
		Severity:       models.SeverityCritical,
		PatientContact: "+15550001111",
		Location: models.EmergencyLocation{
			Latitude:  coord(12.97),
			Longitude: coord(77.59),
			Address:   "MG Road",
		},
	})
	assert.Nil(t, errs)
}

func TestValidateCreateEmergency_NoCoordinatesIsFine(t *testing.T) {
	errs := ValidateCreateEmergency(&models.CreateEmergencyRequest{
		EmergencyType: "Trauma",
		Location:      models.EmergencyLocation{Address: "Somewhere"},
	})
	assert.Nil(t, errs)
}

func TestValidateCreateEmergency_MissingType(t *testing.T) {
	errs := ValidateCreateEmergency(&models.CreateEmergencyRequest{})
	require.NotEmpty(t, errs)
	assert.Contains(t, errs.Fields(), "emergencytype")
}

func TestValidateCreateEmergency_HalfCoordinatePair(t *testing.T) {
	errs := ValidateCreateEmergency(&models.CreateEmergencyRequest{
		EmergencyType: "Trauma",
		Location:      models.EmergencyLocation{Latitude: coord(12.97)},
	})
	require.NotEmpty(t, errs)
	assert.Contains(t, errs.Fields(), "location")
}

func TestValidateCreateEmergency_OutOfRangeCoordinates(t *testing.T) {
	errs := ValidateCreateEmergency(&models.CreateEmergencyRequest{
		EmergencyType: "Trauma",
		Location: models.EmergencyLocation{
			Latitude:  coord(95),
			Longitude: coord(200),
		},
	})
	fields := errs.Fields()
	assert.Contains(t, fields, "location.latitude")
	assert.Contains(t, fields, "location.longitude")
}

func TestValidateCreateEmergency_BadSeverity(t *testing.T) {
	errs := ValidateCreateEmergency(&models.CreateEmergencyRequest{
		EmergencyType: "Trauma",
		Severity:      "catastrophic",
	})
	require.NotEmpty(t, errs)
	assert.Contains(t, errs.Fields(), "severity")
}

func TestValidateLocationUpdate(t *testing.T) {
	assert.Nil(t, ValidateLocationUpdate(&models.LocationUpdateRequest{Latitude: 12.97, Longitude: 77.59}))
	assert.Nil(t, ValidateLocationUpdate(&models.LocationUpdateRequest{Latitude: 0, Longitude: 0}))

	errs := ValidateLocationUpdate(&models.LocationUpdateRequest{Latitude: -91, Longitude: 181})
	require.Len(t, errs, 2)
}

func TestValidateRegister_PhoneFormat(t *testing.T) {
	errs := ValidateRegister(&models.RegisterRequest{
		Email: "p1@swiftaid.dev",
		Phone: "not-a-phone",
	})
	require.NotEmpty(t, errs)
	assert.Contains(t, errs.Fields(), "phone")
}
