package services

import (
	"context"
	"testing"

	"swiftaid/internal/models"
	"swiftaid/internal/repositories/memory"
	"swiftaid/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeDashboardMetrics(t *testing.T) {
	drivers := []*models.User{
		{ID: "d1", Role: models.RoleDriver, IsOnDuty: true},
		{ID: "d2", Role: models.RoleDriver, IsOnDuty: true},
		{ID: "d3", Role: models.RoleDriver},
	}
	patients := []*models.User{
		{ID: "p1"}, {ID: "p2"}, {ID: "p3"}, {ID: "p4"}, {ID: "p5"},
	}
	emergencies := []*models.Emergency{
		{Status: models.EmergencyStatusPending},
		{Status: models.EmergencyStatusAccepted},
		{Status: models.EmergencyStatusInProgress},
		{Status: models.EmergencyStatusCompleted},
	}
	locations := []*models.LiveLocation{
		{DriverID: "d1"}, {DriverID: "d2"},
	}

	metrics := ComputeDashboardMetrics(drivers, patients, emergencies, locations)

	assert.Equal(t, 3, metrics.TotalDrivers)
	assert.Equal(t, 2, metrics.OnDutyDrivers)
	assert.Equal(t, 5, metrics.TotalPatients)
	assert.Equal(t, 4, metrics.TotalEmergencies)
	assert.Equal(t, 3, metrics.ActiveEmergencies)
	assert.Equal(t, 1, metrics.CompletedEmergencies)
	assert.Equal(t, 2, metrics.LiveTracking)
}

func TestComputeDashboardMetrics_RejectedCountsNeither(t *testing.T) {
	metrics := ComputeDashboardMetrics(nil, nil, []*models.Emergency{
		{Status: models.EmergencyStatusRejected},
	}, nil)

	assert.Equal(t, 1, metrics.TotalEmergencies)
	assert.Zero(t, metrics.ActiveEmergencies)
	assert.Zero(t, metrics.CompletedEmergencies)
}

func TestAdminService_GetDashboardMetrics(t *testing.T) {
	users := memory.NewUserRepository()
	emergencies := memory.NewEmergencyRepository()
	locations := memory.NewLocationRepository()
	service := NewAdminService(users, emergencies, locations, logger.Discard())
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &models.User{ID: "d1", Role: models.RoleDriver, IsOnDuty: true}))
	require.NoError(t, users.Create(ctx, &models.User{ID: "p1", Role: models.RolePatient}))
	require.NoError(t, users.Create(ctx, &models.User{ID: "a1", Role: models.RoleAdmin}))
	require.NoError(t, emergencies.Create(ctx, &models.Emergency{PatientID: "p1", EmergencyType: "Trauma"}))
	require.NoError(t, locations.Set(ctx, &models.LiveLocation{DriverID: "d1", Latitude: 1, Longitude: 2}))

	metrics, err := service.GetDashboardMetrics(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, metrics.TotalDrivers)
	assert.Equal(t, 1, metrics.OnDutyDrivers)
	assert.Equal(t, 1, metrics.TotalPatients)
	assert.Equal(t, 1, metrics.TotalEmergencies)
	assert.Equal(t, 1, metrics.ActiveEmergencies)
	assert.Equal(t, 1, metrics.LiveTracking)
}

func TestAdminService_GetAllDriversExcludesOtherRoles(t *testing.T) {
	users := memory.NewUserRepository()
	service := NewAdminService(users, memory.NewEmergencyRepository(), memory.NewLocationRepository(), logger.Discard())
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &models.User{ID: "d1", Role: models.RoleDriver}))
	require.NoError(t, users.Create(ctx, &models.User{ID: "p1", Role: models.RolePatient}))

	drivers, err := service.GetAllDrivers(ctx)
	require.NoError(t, err)
	require.Len(t, drivers, 1)
	assert.Equal(t, "d1", drivers[0].ID)
}
