package interfaces

import (
	"context"

	"swiftaid/internal/models"
)

// LocationRepository stores each driver's latest position, one document per
// driver, overwritten on every update.
type LocationRepository interface {
	Set(ctx context.Context, location *models.LiveLocation) error
	Get(ctx context.Context, driverID string) (*models.LiveLocation, error)
	GetAll(ctx context.Context) ([]*models.LiveLocation, error)
}
