// Package memory holds in-memory implementations of the repository contracts.
// They back the test suites and credential-less development runs; the mongodb
// package is the production adapter. Selection happens in main via config,
// never through ambient globals.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"swiftaid/internal/models"
	"swiftaid/internal/repositories/interfaces"
	"swiftaid/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type emergencyRepository struct {
	mu          sync.RWMutex
	emergencies map[primitive.ObjectID]*models.Emergency
}

func NewEmergencyRepository() interfaces.EmergencyRepository {
	return &emergencyRepository{
		emergencies: make(map[primitive.ObjectID]*models.Emergency),
	}
}

func (r *emergencyRepository) Create(ctx context.Context, emergency *models.Emergency) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	emergency.ID = primitive.NewObjectID()
	emergency.Status = models.EmergencyStatusPending
	emergency.DriverID = ""
	emergency.CreatedAt = time.Now()
	emergency.UpdatedAt = emergency.CreatedAt

	clone := *emergency
	r.emergencies[emergency.ID] = &clone
	return nil
}

func (r *emergencyRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Emergency, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	emergency, ok := r.emergencies[id]
	if !ok {
		return nil, utils.ErrEmergencyNotFound
	}

	clone := *emergency
	return &clone, nil
}

func (r *emergencyRepository) GetByStatus(ctx context.Context, status models.EmergencyStatus) ([]*models.Emergency, error) {
	return r.filter(func(e *models.Emergency) bool { return e.Status == status }), nil
}

func (r *emergencyRepository) GetByDriverID(ctx context.Context, driverID string) ([]*models.Emergency, error) {
	return r.filter(func(e *models.Emergency) bool { return e.DriverID == driverID }), nil
}

func (r *emergencyRepository) GetByPatientID(ctx context.Context, patientID string) ([]*models.Emergency, error) {
	return r.filter(func(e *models.Emergency) bool { return e.PatientID == patientID }), nil
}

func (r *emergencyRepository) GetAll(ctx context.Context) ([]*models.Emergency, error) {
	return r.filter(func(*models.Emergency) bool { return true }), nil
}

func (r *emergencyRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.Emergency, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	emergency, ok := r.emergencies[id]
	if !ok {
		return nil, utils.ErrEmergencyNotFound
	}

	applyEmergencyUpdates(emergency, updates)
	emergency.UpdatedAt = time.Now()

	clone := *emergency
	return &clone, nil
}

func (r *emergencyRepository) AcceptPending(ctx context.Context, id primitive.ObjectID, driverID string, at time.Time) (*models.Emergency, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	emergency, ok := r.emergencies[id]
	if !ok {
		return nil, utils.ErrEmergencyNotFound
	}
	if emergency.Status != models.EmergencyStatusPending {
		return nil, utils.ErrAlreadyAssigned
	}

	emergency.Status = models.EmergencyStatusAccepted
	emergency.DriverID = driverID
	acceptedAt := at
	emergency.AcceptedAt = &acceptedAt
	emergency.UpdatedAt = at

	clone := *emergency
	return &clone, nil
}

func (r *emergencyRepository) filter(keep func(*models.Emergency) bool) []*models.Emergency {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*models.Emergency
	for _, emergency := range r.emergencies {
		if keep(emergency) {
			clone := *emergency
			result = append(result, &clone)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

// applyEmergencyUpdates mirrors the merge semantics of the mongodb adapter for
// the field names the services actually write.
func applyEmergencyUpdates(emergency *models.Emergency, updates map[string]interface{}) {
	for key, value := range updates {
		switch key {
		case "status":
			if status, ok := value.(models.EmergencyStatus); ok {
				emergency.Status = status
			}
		case "driver_id":
			if id, ok := value.(string); ok {
				emergency.DriverID = id
			}
		case "location":
			if location, ok := value.(models.EmergencyLocation); ok {
				emergency.Location = location
			}
		case "estimated_distance":
			if km, ok := value.(float64); ok {
				emergency.EstimatedDistance = km
			}
		case "estimated_time":
			if minutes, ok := value.(int); ok {
				emergency.EstimatedTime = minutes
			}
		case "route":
			if route, ok := value.([]models.RoutePoint); ok {
				emergency.Route = route
			}
		case "accepted_at":
			if t, ok := value.(time.Time); ok {
				emergency.AcceptedAt = &t
			}
		case "rejected_at":
			if t, ok := value.(time.Time); ok {
				emergency.RejectedAt = &t
			}
		case "completed_at":
			if t, ok := value.(time.Time); ok {
				emergency.CompletedAt = &t
			}
		}
	}
}
