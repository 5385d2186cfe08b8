package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"swiftaid/internal/config"
	"swiftaid/internal/models"
	"swiftaid/internal/repositories/interfaces"
	"swiftaid/internal/utils"
	"swiftaid/pkg/logger"
	"swiftaid/pkg/sms"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AssignmentNotifier pushes emergency lifecycle events to a connected patient.
// Optional, best-effort; the websocket handler implements it.
type AssignmentNotifier interface {
	NotifyAssignment(patientID, emergencyID, driverID, event string)
}

// DispatchService is the driver-facing side of the system: duty status, live
// position, the enriched emergency views, and the assignment state machine.
type DispatchService interface {
	// Duty & Location
	ToggleDutyStatus(ctx context.Context, driverID string) (*models.User, error)
	UpdateLocation(ctx context.Context, driverID string, latitude, longitude float64) (*models.LiveLocation, error)
	GetCurrentLocation(ctx context.Context, driverID string) (*models.LiveLocation, error)

	// Emergency Views
	GetPendingRequests(ctx context.Context, driverID string) ([]*models.Emergency, error)
	GetAssignedRequests(ctx context.Context, driverID string) ([]*models.Emergency, error)

	// Assignment State Machine
	AcceptRequest(ctx context.Context, driverID string, emergencyID primitive.ObjectID) (*models.Emergency, error)
	RejectRequest(ctx context.Context, driverID string, emergencyID primitive.ObjectID) (*models.Emergency, error)
	CompleteRequest(ctx context.Context, driverID string, emergencyID primitive.ObjectID) (*models.Emergency, error)

	// Stats & Profile
	GetStats(ctx context.Context, driverID string) (*models.DriverStats, error)
	CreateStats(ctx context.Context, stats *models.DriverStats) (*models.DriverStats, error)
	GetDriverProfile(ctx context.Context, driverID string) (*models.DriverProfile, error)
	UpdateDriverProfile(ctx context.Context, driverID string, updates map[string]interface{}) (*models.User, error)
}

type dispatchService struct {
	userRepo      interfaces.UserRepository
	emergencyRepo interfaces.EmergencyRepository
	locationRepo  interfaces.LocationRepository
	statsRepo     interfaces.DriverStatsRepository
	smsProvider   sms.Provider
	notifier      AssignmentNotifier
	policy        *config.DispatchConfig
	logger        *logger.Logger
}

func NewDispatchService(
	policy *config.DispatchConfig,
	userRepo interfaces.UserRepository,
	emergencyRepo interfaces.EmergencyRepository,
	locationRepo interfaces.LocationRepository,
	statsRepo interfaces.DriverStatsRepository,
	smsProvider sms.Provider,
	notifier AssignmentNotifier,
	log *logger.Logger,
) DispatchService {
	return &dispatchService{
		userRepo:      userRepo,
		emergencyRepo: emergencyRepo,
		locationRepo:  locationRepo,
		statsRepo:     statsRepo,
		smsProvider:   smsProvider,
		notifier:      notifier,
		policy:        policy,
		logger:        log,
	}
}

// ToggleDutyStatus flips the driver's duty flag and returns the fresh profile.
func (s *dispatchService) ToggleDutyStatus(ctx context.Context, driverID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, driverID)
	if err != nil {
		return nil, err
	}

	updated, err := s.userRepo.SetDutyStatus(ctx, driverID, !user.IsOnDuty)
	if err != nil {
		return nil, err
	}

	s.logger.WithDriverID(driverID).WithField("on_duty", updated.IsOnDuty).Info("Duty status toggled")
	return updated, nil
}

func (s *dispatchService) UpdateLocation(ctx context.Context, driverID string, latitude, longitude float64) (*models.LiveLocation, error) {
	if !utils.IsValidCoordinates(latitude, longitude) {
		return nil, fmt.Errorf("invalid coordinates: %f, %f", latitude, longitude)
	}

	location := &models.LiveLocation{
		DriverID:  driverID,
		Latitude:  latitude,
		Longitude: longitude,
		Timestamp: time.Now(),
	}
	if err := s.locationRepo.Set(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

func (s *dispatchService) GetCurrentLocation(ctx context.Context, driverID string) (*models.LiveLocation, error) {
	return s.locationRepo.Get(ctx, driverID)
}

// GetPendingRequests returns the open pool enriched against this driver's live
// position. Off-duty drivers see an empty pool; without a reported position
// the records come back unenriched.
func (s *dispatchService) GetPendingRequests(ctx context.Context, driverID string) ([]*models.Emergency, error) {
	driver, err := s.userRepo.GetByID(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if !driver.IsOnDuty {
		return []*models.Emergency{}, nil
	}

	pending, err := s.emergencyRepo.GetByStatus(ctx, models.EmergencyStatusPending)
	if err != nil {
		return nil, err
	}

	return s.enrichAll(ctx, driverID, pending)
}

// GetAssignedRequests returns every emergency bound to the driver, completed
// transfers included, enriched the same way as the pending pool.
func (s *dispatchService) GetAssignedRequests(ctx context.Context, driverID string) ([]*models.Emergency, error) {
	assigned, err := s.emergencyRepo.GetByDriverID(ctx, driverID)
	if err != nil {
		return nil, err
	}

	return s.enrichAll(ctx, driverID, assigned)
}

func (s *dispatchService) enrichAll(ctx context.Context, driverID string, emergencies []*models.Emergency) ([]*models.Emergency, error) {
	driverLoc, err := s.locationRepo.Get(ctx, driverID)
	if err != nil {
		if errors.Is(err, utils.ErrLocationNotFound) {
			// Driver has never reported a position; serve the raw records.
			return emergencies, nil
		}
		return nil, err
	}
	if time.Since(driverLoc.Timestamp) > utils.DriverLocationStaleAfter {
		// A stale position would produce misleading distances; serve the raw
		// records until the driver reports again.
		return emergencies, nil
	}

	enriched := make([]*models.Emergency, 0, len(emergencies))
	for _, e := range emergencies {
		out, err := s.enrichAndPersist(ctx, driverLoc, e)
		if err != nil {
			return nil, err
		}
		enriched = append(enriched, out)
	}
	return enriched, nil
}

// enrichAndPersist recomputes the advisory distance/ETA/route fields for one
// emergency relative to the polling driver and writes them back in a single
// update. The destination is the patient's coordinates when usable, otherwise
// a synthetic point near the driver; destinations beyond the policy radius are
// regenerated so demo distances stay plausible.
func (s *dispatchService) enrichAndPersist(ctx context.Context, driverLoc *models.LiveLocation, e *models.Emergency) (*models.Emergency, error) {
	origin := utils.GeoPoint{Latitude: driverLoc.Latitude, Longitude: driverLoc.Longitude}

	var dest utils.GeoPoint
	synthetic := false
	if e.Location.HasCoordinates() {
		dest = utils.GeoPoint{Latitude: *e.Location.Latitude, Longitude: *e.Location.Longitude}
	} else {
		dest = utils.OffsetNear(origin, s.policy.MaxSyntheticRadiusKM)
		synthetic = true
	}

	distance := utils.HaversineKM(origin, dest)
	if distance > s.policy.MaxSyntheticRadiusKM && (synthetic || s.policy.ClampRealCoordinates) {
		dest = utils.OffsetNear(origin, s.policy.MaxSyntheticRadiusKM)
		distance = utils.HaversineKM(origin, dest)
	}

	distance = utils.RoundKM(distance)
	eta := utils.EstimateETAMinutes(distance, s.policy.AverageSpeedKMH)
	route := utils.ComputeRoute(origin, dest, s.policy.RouteSteps)

	lat, lng := dest.Latitude, dest.Longitude
	location := models.EmergencyLocation{
		Latitude:  &lat,
		Longitude: &lng,
		Address:   e.Location.Address,
		Landmark:  e.Location.Landmark,
	}

	return s.emergencyRepo.Update(ctx, e.ID, map[string]interface{}{
		"location":           location,
		"estimated_distance": distance,
		"estimated_time":     eta,
		"route":              route,
	})
}

// AcceptRequest claims a pending emergency for the driver. The claim is a
// single conditional write at the store, so of two racing drivers exactly one
// wins and the other gets ErrAlreadyAssigned.
func (s *dispatchService) AcceptRequest(ctx context.Context, driverID string, emergencyID primitive.ObjectID) (*models.Emergency, error) {
	emergency, err := s.emergencyRepo.AcceptPending(ctx, emergencyID, driverID, time.Now())
	if err != nil {
		return nil, err
	}

	s.logger.LogDispatchEvent(emergencyID.Hex(), driverID, "accepted", map[string]interface{}{
		"emergency_type": emergency.EmergencyType,
	})
	if s.notifier != nil {
		s.notifier.NotifyAssignment(emergency.PatientID, emergencyID.Hex(), driverID, "accepted")
	}
	s.notifyPatient(ctx, emergency, driverID, "A driver has accepted your emergency request and is on the way.")

	return emergency, nil
}

// RejectRequest marks an emergency rejected. Deliberately unconditional: any
// driver can reject any emergency regardless of current status, matching the
// mobile clients' expectations.
func (s *dispatchService) RejectRequest(ctx context.Context, driverID string, emergencyID primitive.ObjectID) (*models.Emergency, error) {
	now := time.Now()
	emergency, err := s.emergencyRepo.Update(ctx, emergencyID, map[string]interface{}{
		"status":      models.EmergencyStatusRejected,
		"rejected_at": now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.LogDispatchEvent(emergencyID.Hex(), driverID, "rejected", nil)
	return emergency, nil
}

// CompleteRequest marks an emergency completed, stamps the timestamp and bumps
// the assigned driver's counters. Like reject, the transition itself is
// unconditional.
func (s *dispatchService) CompleteRequest(ctx context.Context, driverID string, emergencyID primitive.ObjectID) (*models.Emergency, error) {
	now := time.Now()
	emergency, err := s.emergencyRepo.Update(ctx, emergencyID, map[string]interface{}{
		"status":       models.EmergencyStatusCompleted,
		"completed_at": now,
	})
	if err != nil {
		return nil, err
	}

	// Counters belong to the driver bound to the record; fall back to the
	// caller when the record was never accepted.
	statsDriver := emergency.DriverID
	if statsDriver == "" {
		statsDriver = driverID
	}
	if err := s.statsRepo.IncrementCompletion(ctx, statsDriver, emergency.EmergencyType, emergency.EstimatedDistance); err != nil {
		// Counters are informational; the completion itself already stuck.
		s.logger.WithError(err).WithDriverID(statsDriver).Warn("Failed to increment completion stats")
	}

	s.logger.LogDispatchEvent(emergencyID.Hex(), driverID, "completed", map[string]interface{}{
		"emergency_type": emergency.EmergencyType,
		"distance_km":    emergency.EstimatedDistance,
	})
	if s.notifier != nil {
		s.notifier.NotifyAssignment(emergency.PatientID, emergencyID.Hex(), driverID, "completed")
	}
	s.notifyPatient(ctx, emergency, driverID, "Your emergency transfer has been completed. Take care.")

	return emergency, nil
}

// GetStats returns the driver's counters, or a zeroed document when none has
// been created yet so the client never sees a 404 on a fresh driver.
func (s *dispatchService) GetStats(ctx context.Context, driverID string) (*models.DriverStats, error) {
	stats, err := s.statsRepo.Get(ctx, driverID)
	if err != nil {
		if errors.Is(err, utils.ErrStatsNotFound) {
			return models.NewDriverStats(driverID), nil
		}
		return nil, err
	}
	return stats, nil
}

func (s *dispatchService) CreateStats(ctx context.Context, stats *models.DriverStats) (*models.DriverStats, error) {
	if stats.EmergencyTypes == nil {
		stats.EmergencyTypes = make(map[string]int)
	}
	if err := s.statsRepo.Create(ctx, stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *dispatchService) GetDriverProfile(ctx context.Context, driverID string) (*models.DriverProfile, error) {
	user, err := s.userRepo.GetByID(ctx, driverID)
	if err != nil {
		return nil, err
	}

	stats, err := s.GetStats(ctx, driverID)
	if err != nil {
		return nil, err
	}

	return &models.DriverProfile{User: user, Stats: stats}, nil
}

// UpdateDriverProfile merges the allowed profile fields. Identity and
// authorization fields are stripped so a driver cannot rewrite their own role
// or duty flag through this path.
func (s *dispatchService) UpdateDriverProfile(ctx context.Context, driverID string, updates map[string]interface{}) (*models.User, error) {
	for _, protected := range []string{"_id", "id", "email", "role", "is_on_duty", "is_active", "created_at"} {
		delete(updates, protected)
	}
	if len(updates) == 0 {
		return s.userRepo.GetByID(ctx, driverID)
	}
	return s.userRepo.Update(ctx, driverID, updates)
}

// notifyPatient sends a best-effort dispatch notice to the emergency's contact
// number. Failures are logged and swallowed; SMS never blocks a transition.
func (s *dispatchService) notifyPatient(ctx context.Context, emergency *models.Emergency, driverID, message string) {
	if s.smsProvider == nil || emergency.PatientContact == "" {
		return
	}

	resp, err := s.smsProvider.SendSMS(ctx, &sms.Request{
		To:      emergency.PatientContact,
		Message: message,
	})
	if err != nil {
		s.logger.WithError(err).WithEmergencyID(emergency.ID.Hex()).Warn("Failed to send dispatch notice")
		return
	}

	s.logger.WithFields(map[string]interface{}{
		"emergency_id": emergency.ID.Hex(),
		"driver_id":    driverID,
		"message_id":   resp.MessageID,
		"status":       resp.Status,
	}).Debug("Dispatch notice sent")
}
