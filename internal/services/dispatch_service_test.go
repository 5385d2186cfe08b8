package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"swiftaid/internal/config"
	"swiftaid/internal/models"
	"swiftaid/internal/repositories/interfaces"
	"swiftaid/internal/repositories/memory"
	"swiftaid/internal/utils"
	"swiftaid/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type dispatchFixture struct {
	service     DispatchService
	users       interfaces.UserRepository
	emergencies interfaces.EmergencyRepository
	locations   interfaces.LocationRepository
	stats       interfaces.DriverStatsRepository
	policy      *config.DispatchConfig
}

func newDispatchFixture(t *testing.T) *dispatchFixture {
	t.Helper()

	f := &dispatchFixture{
		users:       memory.NewUserRepository(),
		emergencies: memory.NewEmergencyRepository(),
		locations:   memory.NewLocationRepository(),
		stats:       memory.NewDriverStatsRepository(),
		policy: &config.DispatchConfig{
			AverageSpeedKMH:      30,
			RouteSteps:           12,
			MaxSyntheticRadiusKM: 2,
			ClampRealCoordinates: true,
		},
	}
	f.service = NewDispatchService(f.policy, f.users, f.emergencies, f.locations, f.stats, nil, nil, logger.Discard())
	return f
}

// capturingNotifier records assignment events for assertions.
type capturingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *capturingNotifier) NotifyAssignment(patientID, emergencyID, driverID, event string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, patientID+":"+event)
}

func (f *dispatchFixture) addDriver(t *testing.T, id string, onDuty bool) {
	t.Helper()
	err := f.users.Create(context.Background(), &models.User{
		ID:       id,
		Email:    id + "@swiftaid.dev",
		Name:     "Driver " + id,
		Role:     models.RoleDriver,
		IsActive: true,
		IsOnDuty: onDuty,
	})
	require.NoError(t, err)
}

func (f *dispatchFixture) addEmergency(t *testing.T, patientID string, lat, lng *float64) *models.Emergency {
	t.Helper()
	emergency := &models.Emergency{
		PatientID:     patientID,
		PatientName:   "Test Patient",
		EmergencyType: "Cardiac",
		Location:      models.EmergencyLocation{Latitude: lat, Longitude: lng, Address: "Test Address"},
	}
	require.NoError(t, f.emergencies.Create(context.Background(), emergency))
	return emergency
}

func (f *dispatchFixture) reportLocation(t *testing.T, driverID string, lat, lng float64) {
	t.Helper()
	_, err := f.service.UpdateLocation(context.Background(), driverID, lat, lng)
	require.NoError(t, err)
}

func ptr(v float64) *float64 { return &v }

func TestToggleDutyStatus(t *testing.T) {
	f := newDispatchFixture(t)
	f.addDriver(t, "d1", false)
	ctx := context.Background()

	user, err := f.service.ToggleDutyStatus(ctx, "d1")
	require.NoError(t, err)
	assert.True(t, user.IsOnDuty)

	user, err = f.service.ToggleDutyStatus(ctx, "d1")
	require.NoError(t, err)
	assert.False(t, user.IsOnDuty)
}

func TestToggleDutyStatus_UnknownDriver(t *testing.T) {
	f := newDispatchFixture(t)
	_, err := f.service.ToggleDutyStatus(context.Background(), "ghost")
	assert.ErrorIs(t, err, utils.ErrUserNotFound)
}

func TestUpdateLocation_RejectsInvalidCoordinates(t *testing.T) {
	f := newDispatchFixture(t)
	f.addDriver(t, "d1", true)

	_, err := f.service.UpdateLocation(context.Background(), "d1", 91, 0)
	assert.Error(t, err)

	_, err = f.service.GetCurrentLocation(context.Background(), "d1")
	assert.ErrorIs(t, err, utils.ErrLocationNotFound)
}

func TestGetPendingRequests_OffDutyDriverSeesNothing(t *testing.T) {
	f := newDispatchFixture(t)
	f.addDriver(t, "d1", false)
	f.addEmergency(t, "p1", nil, nil)

	pending, err := f.service.GetPendingRequests(context.Background(), "d1")
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestGetPendingRequests_EnrichesWithoutPatientCoordinates(t *testing.T) {
	f := newDispatchFixture(t)
	f.addDriver(t, "d1", true)
	f.reportLocation(t, "d1", 12.9716, 77.5946)
	created := f.addEmergency(t, "p1", nil, nil)

	pending, err := f.service.GetPendingRequests(context.Background(), "d1")
	require.NoError(t, err)
	require.Len(t, pending, 1)

	e := pending[0]
	assert.Greater(t, e.EstimatedDistance, 0.0)
	assert.LessOrEqual(t, e.EstimatedDistance, f.policy.MaxSyntheticRadiusKM)
	assert.Len(t, e.Route, f.policy.RouteSteps+1)
	require.True(t, e.Location.HasCoordinates())

	// Route runs from the driver to the synthesized destination.
	assert.Equal(t, 12.9716, e.Route[0].Latitude)
	assert.Equal(t, *e.Location.Latitude, e.Route[len(e.Route)-1].Latitude)

	// Address survives the coordinate overwrite.
	assert.Equal(t, "Test Address", e.Location.Address)

	// The enrichment is persisted, not just returned.
	stored, err := f.emergencies.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, e.EstimatedDistance, stored.EstimatedDistance)
	assert.Equal(t, e.EstimatedTime, stored.EstimatedTime)
}

func TestGetPendingRequests_ClampsFarPatientCoordinates(t *testing.T) {
	f := newDispatchFixture(t)
	f.addDriver(t, "d1", true)
	f.reportLocation(t, "d1", 12.9716, 77.5946)
	// Chennai, ~290 km away.
	f.addEmergency(t, "p1", ptr(13.0827), ptr(80.2707))

	pending, err := f.service.GetPendingRequests(context.Background(), "d1")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.LessOrEqual(t, pending[0].EstimatedDistance, f.policy.MaxSyntheticRadiusKM)
}

func TestGetPendingRequests_TrustedCoordinatesKeptWhenClampOff(t *testing.T) {
	f := newDispatchFixture(t)
	f.policy.ClampRealCoordinates = false
	f.addDriver(t, "d1", true)
	f.reportLocation(t, "d1", 12.9716, 77.5946)
	f.addEmergency(t, "p1", ptr(13.0827), ptr(80.2707))

	pending, err := f.service.GetPendingRequests(context.Background(), "d1")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.InDelta(t, 290, pending[0].EstimatedDistance, 15)
}

func TestGetPendingRequests_NoDriverLocationMeansNoEnrichment(t *testing.T) {
	f := newDispatchFixture(t)
	f.addDriver(t, "d1", true)
	f.addEmergency(t, "p1", nil, nil)

	pending, err := f.service.GetPendingRequests(context.Background(), "d1")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Zero(t, pending[0].EstimatedDistance)
	assert.Empty(t, pending[0].Route)
}

func TestGetAssignedRequests_IncludesCompleted(t *testing.T) {
	f := newDispatchFixture(t)
	f.addDriver(t, "d1", true)
	ctx := context.Background()

	created := f.addEmergency(t, "p1", nil, nil)
	_, err := f.service.AcceptRequest(ctx, "d1", created.ID)
	require.NoError(t, err)
	_, err = f.service.CompleteRequest(ctx, "d1", created.ID)
	require.NoError(t, err)

	// Completed transfers stay in the driver's assigned view.
	assigned, err := f.service.GetAssignedRequests(ctx, "d1")
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	assert.Equal(t, models.EmergencyStatusCompleted, assigned[0].Status)

	// A second, still-open assignment shows up alongside it.
	second := f.addEmergency(t, "p2", nil, nil)
	_, err = f.service.AcceptRequest(ctx, "d1", second.ID)
	require.NoError(t, err)

	assigned, err = f.service.GetAssignedRequests(ctx, "d1")
	require.NoError(t, err)
	assert.Len(t, assigned, 2)
}

func TestGetPendingRequests_StaleLocationSkipsEnrichment(t *testing.T) {
	f := newDispatchFixture(t)
	f.addDriver(t, "d1", true)
	f.addEmergency(t, "p1", nil, nil)

	// Seed a position older than the staleness window straight into the store.
	err := f.locations.Set(context.Background(), &models.LiveLocation{
		DriverID:  "d1",
		Latitude:  12.9716,
		Longitude: 77.5946,
		Timestamp: time.Now().Add(-utils.DriverLocationStaleAfter - time.Minute),
	})
	require.NoError(t, err)

	pending, err := f.service.GetPendingRequests(context.Background(), "d1")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Zero(t, pending[0].EstimatedDistance)
	assert.Empty(t, pending[0].Route)

	// A fresh report re-enables enrichment.
	f.reportLocation(t, "d1", 12.9716, 77.5946)
	pending, err = f.service.GetPendingRequests(context.Background(), "d1")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Greater(t, pending[0].EstimatedDistance, 0.0)
}

func TestAcceptAndComplete_NotifyPatient(t *testing.T) {
	f := newDispatchFixture(t)
	notifier := &capturingNotifier{}
	f.service = NewDispatchService(f.policy, f.users, f.emergencies, f.locations, f.stats, nil, notifier, logger.Discard())
	f.addDriver(t, "d1", true)
	ctx := context.Background()

	created := f.addEmergency(t, "p1", nil, nil)
	_, err := f.service.AcceptRequest(ctx, "d1", created.ID)
	require.NoError(t, err)
	_, err = f.service.CompleteRequest(ctx, "d1", created.ID)
	require.NoError(t, err)

	assert.Equal(t, []string{"p1:accepted", "p1:completed"}, notifier.events)
}

func TestAcceptRequest(t *testing.T) {
	f := newDispatchFixture(t)
	f.addDriver(t, "d1", true)
	created := f.addEmergency(t, "p1", nil, nil)

	accepted, err := f.service.AcceptRequest(context.Background(), "d1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EmergencyStatusAccepted, accepted.Status)
	assert.Equal(t, "d1", accepted.DriverID)
	require.NotNil(t, accepted.AcceptedAt)
}

func TestAcceptRequest_AlreadyAssigned(t *testing.T) {
	f := newDispatchFixture(t)
	f.addDriver(t, "d1", true)
	f.addDriver(t, "d2", true)
	created := f.addEmergency(t, "p1", nil, nil)

	_, err := f.service.AcceptRequest(context.Background(), "d1", created.ID)
	require.NoError(t, err)

	_, err = f.service.AcceptRequest(context.Background(), "d2", created.ID)
	assert.ErrorIs(t, err, utils.ErrAlreadyAssigned)
}

func TestAcceptRequest_UnknownEmergency(t *testing.T) {
	f := newDispatchFixture(t)
	f.addDriver(t, "d1", true)

	_, err := f.service.AcceptRequest(context.Background(), "d1", primitive.NewObjectID())
	assert.ErrorIs(t, err, utils.ErrEmergencyNotFound)
}

func TestAcceptRequest_ConcurrentDriversExactlyOneWins(t *testing.T) {
	f := newDispatchFixture(t)
	created := f.addEmergency(t, "p1", nil, nil)

	const drivers = 16
	var wg sync.WaitGroup
	results := make(chan error, drivers)

	for i := 0; i < drivers; i++ {
		driverID := "racer-" + string(rune('a'+i))
		f.addDriver(t, driverID, true)
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := f.service.AcceptRequest(context.Background(), id, created.ID)
			results <- err
		}(driverID)
	}
	wg.Wait()
	close(results)

	var wins, conflicts int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case err == utils.ErrAlreadyAssigned:
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, drivers-1, conflicts)

	stored, err := f.emergencies.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EmergencyStatusAccepted, stored.Status)
	assert.NotEmpty(t, stored.DriverID)
}

func TestRejectRequest(t *testing.T) {
	f := newDispatchFixture(t)
	f.addDriver(t, "d1", true)
	created := f.addEmergency(t, "p1", nil, nil)

	rejected, err := f.service.RejectRequest(context.Background(), "d1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EmergencyStatusRejected, rejected.Status)
	require.NotNil(t, rejected.RejectedAt)
	assert.WithinDuration(t, time.Now(), *rejected.RejectedAt, time.Second)
}

func TestCompleteRequest_IncrementsStats(t *testing.T) {
	f := newDispatchFixture(t)
	f.addDriver(t, "d1", true)
	f.reportLocation(t, "d1", 12.9716, 77.5946)
	_, err := f.service.CreateStats(context.Background(), models.NewDriverStats("d1"))
	require.NoError(t, err)

	created := f.addEmergency(t, "p1", nil, nil)
	_, err = f.service.AcceptRequest(context.Background(), "d1", created.ID)
	require.NoError(t, err)

	// Poll once so the record carries a distance before completion.
	_, err = f.service.GetAssignedRequests(context.Background(), "d1")
	require.NoError(t, err)

	completed, err := f.service.CompleteRequest(context.Background(), "d1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EmergencyStatusCompleted, completed.Status)
	require.NotNil(t, completed.CompletedAt)

	stats, err := f.service.GetStats(context.Background(), "d1")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalCompleted)
	assert.Equal(t, 1, stats.EmergencyTypes["Cardiac"])
	assert.Equal(t, completed.EstimatedDistance, stats.TotalDistance)
}

func TestCompleteRequest_MissingStatsDoesNotFail(t *testing.T) {
	f := newDispatchFixture(t)
	f.addDriver(t, "d1", true)
	created := f.addEmergency(t, "p1", nil, nil)

	_, err := f.service.CompleteRequest(context.Background(), "d1", created.ID)
	assert.NoError(t, err)
}

func TestGetStats_FallsBackToZeroedDocument(t *testing.T) {
	f := newDispatchFixture(t)

	stats, err := f.service.GetStats(context.Background(), "fresh")
	require.NoError(t, err)
	assert.Equal(t, "fresh", stats.DriverID)
	assert.Zero(t, stats.TotalCompleted)
	assert.NotNil(t, stats.EmergencyTypes)
}

func TestCreateStats_Duplicate(t *testing.T) {
	f := newDispatchFixture(t)

	_, err := f.service.CreateStats(context.Background(), models.NewDriverStats("d1"))
	require.NoError(t, err)

	_, err = f.service.CreateStats(context.Background(), models.NewDriverStats("d1"))
	assert.ErrorIs(t, err, utils.ErrStatsExist)
}

func TestUpdateDriverProfile_StripsProtectedFields(t *testing.T) {
	f := newDispatchFixture(t)
	f.addDriver(t, "d1", false)

	user, err := f.service.UpdateDriverProfile(context.Background(), "d1", map[string]interface{}{
		"name":       "New Name",
		"vehicle":    "Ambulance 7",
		"role":       "admin",
		"is_on_duty": true,
		"email":      "evil@swiftaid.dev",
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", user.Name)
	assert.Equal(t, "Ambulance 7", user.Vehicle)
	assert.Equal(t, models.RoleDriver, user.Role)
	assert.False(t, user.IsOnDuty)
	assert.Equal(t, "d1@swiftaid.dev", user.Email)
}

func TestGetDriverProfile(t *testing.T) {
	f := newDispatchFixture(t)
	f.addDriver(t, "d1", true)

	profile, err := f.service.GetDriverProfile(context.Background(), "d1")
	require.NoError(t, err)
	assert.Equal(t, "d1", profile.User.ID)
	require.NotNil(t, profile.Stats)
	assert.Equal(t, "d1", profile.Stats.DriverID)
}
