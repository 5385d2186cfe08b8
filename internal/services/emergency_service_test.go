package services

import (
	"context"
	"testing"
	"time"

	"swiftaid/internal/models"
	"swiftaid/internal/repositories/interfaces"
	"swiftaid/internal/repositories/memory"
	"swiftaid/internal/utils"
	"swiftaid/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type emergencyFixture struct {
	service     EmergencyService
	users       interfaces.UserRepository
	emergencies interfaces.EmergencyRepository
}

func newEmergencyFixture(t *testing.T) *emergencyFixture {
	t.Helper()
	f := &emergencyFixture{
		users:       memory.NewUserRepository(),
		emergencies: memory.NewEmergencyRepository(),
	}
	f.service = NewEmergencyService(f.emergencies, f.users, logger.Discard())
	return f
}

func (f *emergencyFixture) addUser(t *testing.T, user *models.User) {
	t.Helper()
	require.NoError(t, f.users.Create(context.Background(), user))
}

func TestCreateEmergency_SnapshotsPatientIdentity(t *testing.T) {
	f := newEmergencyFixture(t)
	f.addUser(t, &models.User{ID: "p1", Email: "p1@swiftaid.dev", Name: "Asha Rao", Phone: "+15550001111", Role: models.RolePatient})

	emergency, err := f.service.CreateEmergency(context.Background(), "p1", &models.CreateEmergencyRequest{
		EmergencyType: "Cardiac",
		Severity:      models.SeverityCritical,
	})
	require.NoError(t, err)

	assert.False(t, emergency.ID.IsZero())
	assert.Equal(t, models.EmergencyStatusPending, emergency.Status)
	assert.Equal(t, "Asha Rao", emergency.PatientName)
	// Contact falls back to the profile phone when the request omits one.
	assert.Equal(t, "+15550001111", emergency.PatientContact)
}

func TestCreateEmergency_NameFallsBackToEmail(t *testing.T) {
	f := newEmergencyFixture(t)
	f.addUser(t, &models.User{ID: "p1", Email: "p1@swiftaid.dev", Role: models.RolePatient})

	emergency, err := f.service.CreateEmergency(context.Background(), "p1", &models.CreateEmergencyRequest{
		EmergencyType: "Trauma",
	})
	require.NoError(t, err)
	assert.Equal(t, "p1@swiftaid.dev", emergency.PatientName)
}

func TestCreateEmergency_UnknownPatient(t *testing.T) {
	f := newEmergencyFixture(t)

	_, err := f.service.CreateEmergency(context.Background(), "ghost", &models.CreateEmergencyRequest{
		EmergencyType: "Trauma",
	})
	assert.ErrorIs(t, err, utils.ErrUserNotFound)
}

func TestGetActiveEmergency(t *testing.T) {
	f := newEmergencyFixture(t)
	f.addUser(t, &models.User{ID: "p1", Email: "p1@swiftaid.dev", Role: models.RolePatient})
	ctx := context.Background()

	active, err := f.service.GetActiveEmergency(ctx, "p1")
	require.NoError(t, err)
	assert.Nil(t, active)

	older, err := f.service.CreateEmergency(ctx, "p1", &models.CreateEmergencyRequest{EmergencyType: "Trauma"})
	require.NoError(t, err)
	_, err = f.emergencies.Update(ctx, older.ID, map[string]interface{}{
		"status":       models.EmergencyStatusCompleted,
		"completed_at": time.Now(),
	})
	require.NoError(t, err)

	// Creation timestamps come from the clock; keep them distinct.
	time.Sleep(2 * time.Millisecond)
	current, err := f.service.CreateEmergency(ctx, "p1", &models.CreateEmergencyRequest{EmergencyType: "Cardiac"})
	require.NoError(t, err)

	active, err = f.service.GetActiveEmergency(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, current.ID, active.ID)
}

func TestGetAssignedDriver(t *testing.T) {
	f := newEmergencyFixture(t)
	f.addUser(t, &models.User{ID: "p1", Email: "p1@swiftaid.dev", Role: models.RolePatient})
	f.addUser(t, &models.User{ID: "d1", Email: "d1@swiftaid.dev", Name: "Driver One", Role: models.RoleDriver})
	ctx := context.Background()

	emergency, err := f.service.CreateEmergency(ctx, "p1", &models.CreateEmergencyRequest{EmergencyType: "Cardiac"})
	require.NoError(t, err)

	// Nothing assigned yet.
	_, err = f.service.GetAssignedDriver(ctx, "p1")
	assert.ErrorIs(t, err, utils.ErrEmergencyNotFound)

	_, err = f.emergencies.AcceptPending(ctx, emergency.ID, "d1", time.Now())
	require.NoError(t, err)

	driver, err := f.service.GetAssignedDriver(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Driver One", driver.Name)
}

func TestGetPatientHistory(t *testing.T) {
	f := newEmergencyFixture(t)
	f.addUser(t, &models.User{ID: "p1", Email: "p1@swiftaid.dev", Role: models.RolePatient})
	f.addUser(t, &models.User{ID: "p2", Email: "p2@swiftaid.dev", Role: models.RolePatient})
	ctx := context.Background()

	_, err := f.service.CreateEmergency(ctx, "p1", &models.CreateEmergencyRequest{EmergencyType: "Trauma"})
	require.NoError(t, err)
	_, err = f.service.CreateEmergency(ctx, "p2", &models.CreateEmergencyRequest{EmergencyType: "Burn"})
	require.NoError(t, err)

	history, err := f.service.GetPatientHistory(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "Trauma", history[0].EmergencyType)
}
