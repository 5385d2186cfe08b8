package memory

import (
	"context"
	"sync"
	"time"

	"swiftaid/internal/models"
	"swiftaid/internal/repositories/interfaces"
	"swiftaid/internal/utils"
)

type userRepository struct {
	mu    sync.RWMutex
	users map[string]*models.User
}

func NewUserRepository() interfaces.UserRepository {
	return &userRepository{
		users: make(map[string]*models.User),
	}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, utils.ErrUserNotFound
	}

	clone := *user
	return &clone, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, utils.ErrUserNotFound
}

func (r *userRepository) GetByRole(ctx context.Context, role models.UserRole) ([]*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*models.User
	for _, user := range r.users {
		if user.Role == role {
			clone := *user
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (r *userRepository) Update(ctx context.Context, id string, updates map[string]interface{}) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, utils.ErrUserNotFound
	}

	for key, value := range updates {
		switch key {
		case "name":
			if v, ok := value.(string); ok {
				user.Name = v
			}
		case "phone":
			if v, ok := value.(string); ok {
				user.Phone = v
			}
		case "license":
			if v, ok := value.(string); ok {
				user.License = v
			}
		case "vehicle":
			if v, ok := value.(string); ok {
				user.Vehicle = v
			}
		case "is_on_duty":
			if v, ok := value.(bool); ok {
				user.IsOnDuty = v
			}
		case "is_active":
			if v, ok := value.(bool); ok {
				user.IsActive = v
			}
		}
	}
	user.UpdatedAt = time.Now()

	clone := *user
	return &clone, nil
}

func (r *userRepository) SetDutyStatus(ctx context.Context, id string, onDuty bool) (*models.User, error) {
	return r.Update(ctx, id, map[string]interface{}{"is_on_duty": onDuty})
}
