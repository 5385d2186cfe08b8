package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type EmergencyStatus string
type EmergencySeverity string
type EmergencyPriority string

const (
	EmergencyStatusPending    EmergencyStatus = "pending"
	EmergencyStatusAccepted   EmergencyStatus = "accepted"
	EmergencyStatusInProgress EmergencyStatus = "in_progress"
	EmergencyStatusCompleted  EmergencyStatus = "completed"
	EmergencyStatusRejected   EmergencyStatus = "rejected"

	SeverityCritical EmergencySeverity = "Critical"
	SeveritySevere   EmergencySeverity = "Severe"
	SeverityModerate EmergencySeverity = "Moderate"
	SeverityLow      EmergencySeverity = "Low"

	PriorityCritical EmergencyPriority = "critical"
	PriorityHigh     EmergencyPriority = "high"
	PriorityModerate EmergencyPriority = "moderate"
	PriorityLow      EmergencyPriority = "low"
)

// EmergencyLocation carries the patient-reported coordinates plus the free-form
// address fields the mobile clients display. Latitude/Longitude are pointers so
// a request without usable coordinates is distinguishable from one at (0,0).
type EmergencyLocation struct {
	Latitude  *float64 `json:"latitude" bson:"latitude"`
	Longitude *float64 `json:"longitude" bson:"longitude"`
	Address   string   `json:"address" bson:"address"`
	Landmark  string   `json:"landmark,omitempty" bson:"landmark,omitempty"`
}

// HasCoordinates reports whether both coordinates are present and plausible.
func (l EmergencyLocation) HasCoordinates() bool {
	return l.Latitude != nil && l.Longitude != nil &&
		*l.Latitude >= -90 && *l.Latitude <= 90 &&
		*l.Longitude >= -180 && *l.Longitude <= 180
}

// RoutePoint is one waypoint of the advisory driver-to-patient route.
type RoutePoint struct {
	Latitude  float64 `json:"latitude" bson:"latitude"`
	Longitude float64 `json:"longitude" bson:"longitude"`
}

type Emergency struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	PatientID      string             `json:"patientId" bson:"patient_id" validate:"required"`
	PatientName    string             `json:"patientName" bson:"patient_name"`
	PatientAge     int                `json:"patientAge,omitempty" bson:"patient_age,omitempty"`
	PatientContact string             `json:"patientContact,omitempty" bson:"patient_contact,omitempty"`
	EmergencyType  string             `json:"emergencyType" bson:"emergency_type" validate:"required"`
	Severity       EmergencySeverity  `json:"severity" bson:"severity"`
	Priority       EmergencyPriority  `json:"priority" bson:"priority"`
	Description    string             `json:"description" bson:"description"`
	Location       EmergencyLocation  `json:"location" bson:"location"`
	Status         EmergencyStatus    `json:"status" bson:"status"`
	DriverID       string             `json:"driverId,omitempty" bson:"driver_id,omitempty"`

	// Advisory fields, overwritten on every driver poll. Never authoritative.
	EstimatedDistance float64      `json:"estimatedDistance,omitempty" bson:"estimated_distance,omitempty"`
	EstimatedTime     int          `json:"estimatedTime,omitempty" bson:"estimated_time,omitempty"`
	Route             []RoutePoint `json:"route,omitempty" bson:"route,omitempty"`

	CreatedAt   time.Time  `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" bson:"updated_at"`
	AcceptedAt  *time.Time `json:"acceptedAt,omitempty" bson:"accepted_at,omitempty"`
	RejectedAt  *time.Time `json:"rejectedAt,omitempty" bson:"rejected_at,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty" bson:"completed_at,omitempty"`
}

// IsTerminal reports whether no further transitions are permitted.
func (s EmergencyStatus) IsTerminal() bool {
	return s == EmergencyStatusCompleted || s == EmergencyStatusRejected
}

// IsActive reports whether the emergency still needs attention. in_progress is
// reserved for a future hand-off state and counts as active for dashboards.
func (s EmergencyStatus) IsActive() bool {
	return s == EmergencyStatusPending || s == EmergencyStatusAccepted || s == EmergencyStatusInProgress
}

// IsValid reports whether the value belongs to the closed status set. The store
// boundary rejects documents carrying anything else.
func (s EmergencyStatus) IsValid() bool {
	switch s {
	case EmergencyStatusPending, EmergencyStatusAccepted, EmergencyStatusInProgress,
		EmergencyStatusCompleted, EmergencyStatusRejected:
		return true
	}
	return false
}
