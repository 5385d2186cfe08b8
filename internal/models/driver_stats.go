package models

import (
	"time"
)

// DriverStats is the per-driver counter document, created zeroed at driver
// registration and incremented when the driver completes an emergency.
type DriverStats struct {
	DriverID          string         `json:"driverId" bson:"_id"`
	TotalCompleted    int            `json:"totalCompleted" bson:"total_completed"`
	CompletedToday    int            `json:"completedToday" bson:"completed_today"`
	CompletedThisWeek int            `json:"completedThisWeek" bson:"completed_this_week"`
	AverageRating     float64        `json:"averageRating" bson:"average_rating"`
	TotalDistance     float64        `json:"totalDistance" bson:"total_distance"`
	TotalHours        float64        `json:"totalHours" bson:"total_hours"`
	EmergencyTypes    map[string]int `json:"emergencyTypes" bson:"emergency_types"`
	CreatedAt         time.Time      `json:"createdAt" bson:"created_at"`
	UpdatedAt         time.Time      `json:"updatedAt" bson:"updated_at"`
}

// NewDriverStats returns the zeroed counter document for a freshly registered
// driver.
func NewDriverStats(driverID string) *DriverStats {
	now := time.Now()
	return &DriverStats{
		DriverID:       driverID,
		EmergencyTypes: make(map[string]int),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
