package services

import (
	"context"
	"testing"
	"time"

	"swiftaid/internal/models"
	"swiftaid/internal/repositories/interfaces"
	"swiftaid/internal/repositories/memory"
	"swiftaid/internal/utils"
	"swiftaid/pkg/auth"
	"swiftaid/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authFixture struct {
	service AuthService
	users   interfaces.UserRepository
	stats   interfaces.DriverStatsRepository
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	f := &authFixture{
		users: memory.NewUserRepository(),
		stats: memory.NewDriverStatsRepository(),
	}
	issuer := auth.NewJWTProvider("test-secret", time.Hour)
	f.service = NewAuthService(f.users, f.stats, issuer, nil, logger.Discard())
	return f
}

func TestRegister_Patient(t *testing.T) {
	f := newAuthFixture(t)

	response, err := f.service.Register(context.Background(), "", &models.RegisterRequest{
		Email: "p1@swiftaid.dev",
		Name:  "Asha Rao",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, response.Token)
	assert.NotEmpty(t, response.User.ID)
	assert.Equal(t, models.RolePatient, response.User.Role)
	assert.True(t, response.User.IsActive)

	// Patients get no counter document.
	_, err = f.stats.Get(context.Background(), response.User.ID)
	assert.ErrorIs(t, err, utils.ErrStatsNotFound)
}

func TestRegister_DriverGetsZeroedStats(t *testing.T) {
	f := newAuthFixture(t)

	response, err := f.service.Register(context.Background(), "driver-uid", &models.RegisterRequest{
		Email: "d1@swiftaid.dev",
		Role:  models.RoleDriver,
	})
	require.NoError(t, err)
	assert.Equal(t, "driver-uid", response.User.ID)

	stats, err := f.stats.Get(context.Background(), "driver-uid")
	require.NoError(t, err)
	assert.Zero(t, stats.TotalCompleted)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.service.Register(ctx, "", &models.RegisterRequest{Email: "dup@swiftaid.dev"})
	require.NoError(t, err)

	_, err = f.service.Register(ctx, "", &models.RegisterRequest{Email: "dup@swiftaid.dev"})
	assert.ErrorIs(t, err, utils.ErrEmailExists)
}

func TestLogin(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	registered, err := f.service.Register(ctx, "", &models.RegisterRequest{Email: "p1@swiftaid.dev"})
	require.NoError(t, err)

	response, err := f.service.Login(ctx, &models.LoginRequest{Email: "p1@swiftaid.dev"})
	require.NoError(t, err)
	assert.NotEmpty(t, response.Token)
	assert.Equal(t, registered.User.ID, response.User.ID)
}

func TestLogin_UnknownEmail(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.service.Login(context.Background(), &models.LoginRequest{Email: "ghost@swiftaid.dev"})
	assert.ErrorIs(t, err, utils.ErrUserNotFound)
}

func TestLogin_InactiveAccount(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	registered, err := f.service.Register(ctx, "", &models.RegisterRequest{Email: "p1@swiftaid.dev"})
	require.NoError(t, err)

	_, err = f.users.Update(ctx, registered.User.ID, map[string]interface{}{"is_active": false})
	require.NoError(t, err)

	_, err = f.service.Login(ctx, &models.LoginRequest{Email: "p1@swiftaid.dev"})
	assert.ErrorIs(t, err, utils.ErrUserInactive)
}

func TestUpdateProfile_StripsProtectedFields(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	registered, err := f.service.Register(ctx, "", &models.RegisterRequest{Email: "p1@swiftaid.dev"})
	require.NoError(t, err)

	user, err := f.service.UpdateProfile(ctx, registered.User.ID, map[string]interface{}{
		"name": "Renamed",
		"role": "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", user.Name)
	assert.Equal(t, models.RolePatient, user.Role)
}
