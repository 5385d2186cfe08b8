package memory

import (
	"context"
	"sync"
	"time"

	"swiftaid/internal/models"
	"swiftaid/internal/repositories/interfaces"
	"swiftaid/internal/utils"
)

type locationRepository struct {
	mu        sync.RWMutex
	locations map[string]*models.LiveLocation
}

func NewLocationRepository() interfaces.LocationRepository {
	return &locationRepository{
		locations: make(map[string]*models.LiveLocation),
	}
}

func (r *locationRepository) Set(ctx context.Context, location *models.LiveLocation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if location.Timestamp.IsZero() {
		location.Timestamp = time.Now()
	}
	clone := *location
	r.locations[location.DriverID] = &clone
	return nil
}

func (r *locationRepository) Get(ctx context.Context, driverID string) (*models.LiveLocation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	location, ok := r.locations[driverID]
	if !ok {
		return nil, utils.ErrLocationNotFound
	}

	clone := *location
	return &clone, nil
}

func (r *locationRepository) GetAll(ctx context.Context) ([]*models.LiveLocation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*models.LiveLocation
	for _, location := range r.locations {
		clone := *location
		result = append(result, &clone)
	}
	return result, nil
}
