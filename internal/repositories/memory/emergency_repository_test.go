package memory

import (
	"context"
	"testing"
	"time"

	"swiftaid/internal/models"
	"swiftaid/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreate_ForcesPendingState(t *testing.T) {
	repo := NewEmergencyRepository()
	ctx := context.Background()

	emergency := &models.Emergency{
		PatientID:     "p1",
		EmergencyType: "Cardiac",
		Status:        models.EmergencyStatusCompleted,
		DriverID:      "smuggled",
	}
	require.NoError(t, repo.Create(ctx, emergency))

	stored, err := repo.GetByID(ctx, emergency.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EmergencyStatusPending, stored.Status)
	assert.Empty(t, stored.DriverID)
	assert.False(t, stored.CreatedAt.IsZero())
}

func TestUpdate_MergesFields(t *testing.T) {
	repo := NewEmergencyRepository()
	ctx := context.Background()

	emergency := &models.Emergency{PatientID: "p1", EmergencyType: "Cardiac", Description: "keep me"}
	require.NoError(t, repo.Create(ctx, emergency))

	updated, err := repo.Update(ctx, emergency.ID, map[string]interface{}{
		"status":             models.EmergencyStatusRejected,
		"rejected_at":        time.Now(),
		"estimated_distance": 1.5,
	})
	require.NoError(t, err)

	assert.Equal(t, models.EmergencyStatusRejected, updated.Status)
	assert.NotNil(t, updated.RejectedAt)
	assert.Equal(t, 1.5, updated.EstimatedDistance)
	// Untouched fields survive.
	assert.Equal(t, "keep me", updated.Description)
}

func TestUpdate_UnknownID(t *testing.T) {
	repo := NewEmergencyRepository()

	_, err := repo.Update(context.Background(), primitive.NewObjectID(), map[string]interface{}{
		"status": models.EmergencyStatusRejected,
	})
	assert.ErrorIs(t, err, utils.ErrEmergencyNotFound)
}

func TestAcceptPending_Transitions(t *testing.T) {
	repo := NewEmergencyRepository()
	ctx := context.Background()

	emergency := &models.Emergency{PatientID: "p1", EmergencyType: "Cardiac"}
	require.NoError(t, repo.Create(ctx, emergency))

	at := time.Now()
	accepted, err := repo.AcceptPending(ctx, emergency.ID, "d1", at)
	require.NoError(t, err)
	assert.Equal(t, models.EmergencyStatusAccepted, accepted.Status)
	assert.Equal(t, "d1", accepted.DriverID)
	require.NotNil(t, accepted.AcceptedAt)
	assert.True(t, accepted.AcceptedAt.Equal(at))

	// Second claim loses.
	_, err = repo.AcceptPending(ctx, emergency.ID, "d2", time.Now())
	assert.ErrorIs(t, err, utils.ErrAlreadyAssigned)
}

func TestGetByStatus_NewestFirst(t *testing.T) {
	repo := NewEmergencyRepository()
	ctx := context.Background()

	first := &models.Emergency{PatientID: "p1", EmergencyType: "Trauma"}
	require.NoError(t, repo.Create(ctx, first))
	time.Sleep(2 * time.Millisecond)
	second := &models.Emergency{PatientID: "p2", EmergencyType: "Burn"}
	require.NoError(t, repo.Create(ctx, second))

	pending, err := repo.GetByStatus(ctx, models.EmergencyStatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, second.ID, pending[0].ID)
	assert.Equal(t, first.ID, pending[1].ID)
}

func TestGetByID_ReturnsClone(t *testing.T) {
	repo := NewEmergencyRepository()
	ctx := context.Background()

	emergency := &models.Emergency{PatientID: "p1", EmergencyType: "Cardiac"}
	require.NoError(t, repo.Create(ctx, emergency))

	got, err := repo.GetByID(ctx, emergency.ID)
	require.NoError(t, err)
	got.Status = models.EmergencyStatusCompleted

	again, err := repo.GetByID(ctx, emergency.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EmergencyStatusPending, again.Status)
}
