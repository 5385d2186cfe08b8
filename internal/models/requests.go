package models

// CreateEmergencyRequest is the patient-submitted payload. Coordinates are
// optional; requests without them get a synthetic destination at dispatch time.
type CreateEmergencyRequest struct {
	EmergencyType  string            `json:"emergencyType" validate:"required,min=2,max=50"`
	Severity       EmergencySeverity `json:"severity" validate:"omitempty,oneof=Critical Severe Moderate Low"`
	Priority       EmergencyPriority `json:"priority" validate:"omitempty,oneof=critical high moderate low"`
	Description    string            `json:"description" validate:"omitempty,max=1000"`
	PatientAge     int               `json:"patientAge" validate:"omitempty,min=0,max=130"`
	PatientContact string            `json:"patientContact" validate:"omitempty,phone_number"`
	Location       EmergencyLocation `json:"location"`
}

// LocationUpdateRequest is a driver's position report.
type LocationUpdateRequest struct {
	Latitude  float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"min=-180,max=180"`
}

// RegisterRequest creates a profile for a new auth subject. The ID comes from
// the verified token, not the body.
type RegisterRequest struct {
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"omitempty,min=6"`
	Name     string   `json:"name" validate:"omitempty,max=100"`
	Phone    string   `json:"phone" validate:"omitempty,phone_number"`
	Role     UserRole `json:"role" validate:"omitempty,oneof=patient driver admin"`
	License  string   `json:"license" validate:"omitempty,max=50"`
	Vehicle  string   `json:"vehicle" validate:"omitempty,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"omitempty"`
}

// AuthResponse is the token envelope returned by register and login.
type AuthResponse struct {
	Token string `json:"token,omitempty"`
	User  *User  `json:"user"`
}
