package memory

import (
	"context"
	"sync"
	"time"

	"swiftaid/internal/models"
	"swiftaid/internal/repositories/interfaces"
	"swiftaid/internal/utils"
)

type driverStatsRepository struct {
	mu    sync.RWMutex
	stats map[string]*models.DriverStats
}

func NewDriverStatsRepository() interfaces.DriverStatsRepository {
	return &driverStatsRepository{
		stats: make(map[string]*models.DriverStats),
	}
}

func (r *driverStatsRepository) Create(ctx context.Context, stats *models.DriverStats) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.stats[stats.DriverID]; exists {
		return utils.ErrStatsExist
	}

	stats.CreatedAt = time.Now()
	stats.UpdatedAt = stats.CreatedAt
	if stats.EmergencyTypes == nil {
		stats.EmergencyTypes = make(map[string]int)
	}

	clone := *stats
	clone.EmergencyTypes = copyCounts(stats.EmergencyTypes)
	r.stats[stats.DriverID] = &clone
	return nil
}

func (r *driverStatsRepository) Get(ctx context.Context, driverID string) (*models.DriverStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats, ok := r.stats[driverID]
	if !ok {
		return nil, utils.ErrStatsNotFound
	}

	clone := *stats
	clone.EmergencyTypes = copyCounts(stats.EmergencyTypes)
	return &clone, nil
}

func (r *driverStatsRepository) IncrementCompletion(ctx context.Context, driverID, emergencyType string, distanceKM float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[driverID]
	if !ok {
		// Mirrors the mongodb adapter: incrementing a missing document is a
		// no-op rather than an error, completion must not fail on stats.
		return nil
	}

	if emergencyType == "" {
		emergencyType = "Other"
	}

	stats.TotalCompleted++
	stats.CompletedToday++
	stats.CompletedThisWeek++
	stats.TotalDistance += distanceKM
	stats.EmergencyTypes[emergencyType]++
	stats.UpdatedAt = time.Now()
	return nil
}

func copyCounts(counts map[string]int) map[string]int {
	clone := make(map[string]int, len(counts))
	for k, v := range counts {
		clone[k] = v
	}
	return clone
}
