package config

import (
	"swiftaid/internal/utils"
)

// DispatchConfig holds the enrichment policy knobs.
type DispatchConfig struct {
	AverageSpeedKMH float64 `yaml:"average_speed_kmh"`
	RouteSteps      int     `yaml:"route_steps"`

	// MaxSyntheticRadiusKM bounds synthetic destinations around the driver.
	MaxSyntheticRadiusKM float64 `yaml:"max_synthetic_radius_km"`

	// ClampRealCoordinates regenerates even genuine patient coordinates that
	// lie beyond the radius. Demo-mode behavior; switch off when real GPS
	// data is trusted.
	ClampRealCoordinates bool `yaml:"clamp_real_coordinates"`
}

func loadDispatchConfig() *DispatchConfig {
	return &DispatchConfig{
		AverageSpeedKMH:      getEnvAsFloat64("DISPATCH_AVERAGE_SPEED_KMH", utils.DefaultAverageSpeedKMH),
		RouteSteps:           getEnvAsInt("DISPATCH_ROUTE_STEPS", utils.DefaultRouteSteps),
		MaxSyntheticRadiusKM: getEnvAsFloat64("DISPATCH_MAX_SYNTHETIC_RADIUS_KM", utils.DefaultSyntheticRadiusKM),
		ClampRealCoordinates: getEnvAsBool("DISPATCH_CLAMP_REAL_COORDINATES", true),
	}
}
