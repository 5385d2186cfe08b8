package services

import (
	"context"

	"swiftaid/internal/models"
	"swiftaid/internal/repositories/interfaces"
	"swiftaid/pkg/logger"
)

// AdminService serves the fleet-wide read views and the dashboard snapshot.
type AdminService interface {
	GetAllDrivers(ctx context.Context) ([]*models.User, error)
	GetAllPatients(ctx context.Context) ([]*models.User, error)
	GetAllEmergencies(ctx context.Context) ([]*models.Emergency, error)
	GetLiveLocations(ctx context.Context) ([]*models.LiveLocation, error)
	GetDashboardMetrics(ctx context.Context) (*models.DashboardMetrics, error)
}

type adminService struct {
	userRepo      interfaces.UserRepository
	emergencyRepo interfaces.EmergencyRepository
	locationRepo  interfaces.LocationRepository
	logger        *logger.Logger
}

func NewAdminService(
	userRepo interfaces.UserRepository,
	emergencyRepo interfaces.EmergencyRepository,
	locationRepo interfaces.LocationRepository,
	log *logger.Logger,
) AdminService {
	return &adminService{
		userRepo:      userRepo,
		emergencyRepo: emergencyRepo,
		locationRepo:  locationRepo,
		logger:        log,
	}
}

func (s *adminService) GetAllDrivers(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.GetByRole(ctx, models.RoleDriver)
}

func (s *adminService) GetAllPatients(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.GetByRole(ctx, models.RolePatient)
}

func (s *adminService) GetAllEmergencies(ctx context.Context) ([]*models.Emergency, error) {
	return s.emergencyRepo.GetAll(ctx)
}

func (s *adminService) GetLiveLocations(ctx context.Context) ([]*models.LiveLocation, error) {
	return s.locationRepo.GetAll(ctx)
}

// GetDashboardMetrics recomputes the snapshot from the current collections on
// every request.
func (s *adminService) GetDashboardMetrics(ctx context.Context) (*models.DashboardMetrics, error) {
	drivers, err := s.userRepo.GetByRole(ctx, models.RoleDriver)
	if err != nil {
		return nil, err
	}
	patients, err := s.userRepo.GetByRole(ctx, models.RolePatient)
	if err != nil {
		return nil, err
	}
	emergencies, err := s.emergencyRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	locations, err := s.locationRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	return ComputeDashboardMetrics(drivers, patients, emergencies, locations), nil
}

// ComputeDashboardMetrics is the pure aggregation over the fetched collections.
func ComputeDashboardMetrics(drivers, patients []*models.User, emergencies []*models.Emergency, locations []*models.LiveLocation) *models.DashboardMetrics {
	metrics := &models.DashboardMetrics{
		TotalDrivers:     len(drivers),
		TotalPatients:    len(patients),
		TotalEmergencies: len(emergencies),
		LiveTracking:     len(locations),
	}

	for _, d := range drivers {
		if d.IsOnDuty {
			metrics.OnDutyDrivers++
		}
	}
	for _, e := range emergencies {
		switch {
		case e.Status.IsActive():
			metrics.ActiveEmergencies++
		case e.Status == models.EmergencyStatusCompleted:
			metrics.CompletedEmergencies++
		}
	}

	return metrics
}
