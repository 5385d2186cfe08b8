package interfaces

import (
	"context"

	"swiftaid/internal/models"
)

type DriverStatsRepository interface {
	// Create fails with ErrStatsExist when the driver already has a stats
	// document; stats are created exactly once, at registration.
	Create(ctx context.Context, stats *models.DriverStats) error

	Get(ctx context.Context, driverID string) (*models.DriverStats, error)

	// IncrementCompletion bumps the completion counters and the per-type count
	// in one write, alongside the completion transition.
	IncrementCompletion(ctx context.Context, driverID, emergencyType string, distanceKM float64) error
}
