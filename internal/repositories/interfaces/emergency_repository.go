package interfaces

import (
	"context"
	"time"

	"swiftaid/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EmergencyRepository is the persistence contract for emergency documents.
// All mutations stamp updated_at and return the fresh post-mutation record.
type EmergencyRepository interface {
	// Create persists a new emergency. Status is forced to pending and
	// created_at/updated_at are stamped regardless of what the caller set.
	Create(ctx context.Context, emergency *models.Emergency) error

	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Emergency, error)
	GetByStatus(ctx context.Context, status models.EmergencyStatus) ([]*models.Emergency, error)
	GetByDriverID(ctx context.Context, driverID string) ([]*models.Emergency, error)
	GetByPatientID(ctx context.Context, patientID string) ([]*models.Emergency, error)
	GetAll(ctx context.Context) ([]*models.Emergency, error)

	// Update merges the given fields into the document as a single write.
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.Emergency, error)

	// AcceptPending is the one contended operation: a single conditional
	// update that binds the driver and flips pending to accepted only if the
	// record is still pending. Returns ErrEmergencyNotFound when the id does
	// not exist and ErrAlreadyAssigned when the record left pending first, so
	// two racing drivers can never both win.
	AcceptPending(ctx context.Context, id primitive.ObjectID, driverID string, at time.Time) (*models.Emergency, error)
}
