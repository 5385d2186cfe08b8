package models

// DashboardMetrics is the fleet-wide snapshot served to admins. Recomputed on
// every request; nothing here is cached or incremental.
type DashboardMetrics struct {
	TotalDrivers         int `json:"totalDrivers"`
	OnDutyDrivers        int `json:"onDutyDrivers"`
	TotalPatients        int `json:"totalPatients"`
	TotalEmergencies     int `json:"totalEmergencies"`
	ActiveEmergencies    int `json:"activeEmergencies"`
	CompletedEmergencies int `json:"completedEmergencies"`
	LiveTracking         int `json:"liveTracking"`
}
