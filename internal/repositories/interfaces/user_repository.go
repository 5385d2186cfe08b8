package interfaces

import (
	"context"

	"swiftaid/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByRole(ctx context.Context, role models.UserRole) ([]*models.User, error)

	// Update merges the given fields into the profile document.
	Update(ctx context.Context, id string, updates map[string]interface{}) (*models.User, error)

	// SetDutyStatus flips the flag that gates a driver's visibility into the
	// pending pool.
	SetDutyStatus(ctx context.Context, id string, onDuty bool) (*models.User, error)
}
