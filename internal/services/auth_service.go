package services

import (
	"context"
	"errors"
	"time"

	"swiftaid/internal/models"
	"swiftaid/internal/repositories/interfaces"
	"swiftaid/internal/utils"
	"swiftaid/pkg/auth"
	"swiftaid/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RoleSetter mirrors the role claim into the auth provider, when the provider
// supports custom claims.
type RoleSetter interface {
	SetRole(ctx context.Context, uid, role string) error
}

// AuthService handles registration, login and profile reads for the current
// subject. Token verification itself lives in the middleware.
type AuthService interface {
	// Register creates a profile for the subject. subjectID may be empty for
	// the local provider, in which case an ID is minted.
	Register(ctx context.Context, subjectID string, request *models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, request *models.LoginRequest) (*models.AuthResponse, error)
	GetCurrentUser(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, updates map[string]interface{}) (*models.User, error)
}

type authService struct {
	userRepo   interfaces.UserRepository
	statsRepo  interfaces.DriverStatsRepository
	issuer     auth.TokenIssuer
	roleSetter RoleSetter
	logger     *logger.Logger
}

// NewAuthService wires the auth flows. issuer and roleSetter are both
// optional; a Firebase deployment has a roleSetter and no issuer, a local
// deployment the reverse.
func NewAuthService(
	userRepo interfaces.UserRepository,
	statsRepo interfaces.DriverStatsRepository,
	issuer auth.TokenIssuer,
	roleSetter RoleSetter,
	log *logger.Logger,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		statsRepo:  statsRepo,
		issuer:     issuer,
		roleSetter: roleSetter,
		logger:     log,
	}
}

func (s *authService) Register(ctx context.Context, subjectID string, request *models.RegisterRequest) (*models.AuthResponse, error) {
	if existing, err := s.userRepo.GetByEmail(ctx, request.Email); err == nil && existing != nil {
		return nil, utils.ErrEmailExists
	} else if err != nil && !errors.Is(err, utils.ErrUserNotFound) {
		return nil, err
	}

	role := request.Role
	if role == "" {
		role = models.RolePatient
	}

	id := subjectID
	if id == "" {
		id = primitive.NewObjectID().Hex()
	}

	now := time.Now()
	user := &models.User{
		ID:        id,
		Email:     request.Email,
		Name:      request.Name,
		Phone:     request.Phone,
		Role:      role,
		IsActive:  true,
		License:   request.License,
		Vehicle:   request.Vehicle,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	// Drivers get their counter document up front so completions only ever
	// increment.
	if role == models.RoleDriver {
		if err := s.statsRepo.Create(ctx, models.NewDriverStats(id)); err != nil && !errors.Is(err, utils.ErrStatsExist) {
			s.logger.WithError(err).WithDriverID(id).Warn("Failed to create driver stats")
		}
	}

	if s.roleSetter != nil {
		if err := s.roleSetter.SetRole(ctx, id, string(role)); err != nil {
			s.logger.WithError(err).WithField("user_id", id).Warn("Failed to set auth role claim")
		}
	}

	response := &models.AuthResponse{User: user}
	if s.issuer != nil {
		token, err := s.issuer.Issue(ctx, &auth.Claims{UserID: id, Email: user.Email, Role: string(role)})
		if err != nil {
			return nil, err
		}
		response.Token = token
	}

	s.logger.WithFields(map[string]interface{}{"user_id": id, "role": role}).Info("User registered")
	return response, nil
}

func (s *authService) Login(ctx context.Context, request *models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, request.Email)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, utils.ErrUserInactive
	}

	response := &models.AuthResponse{User: user}
	if s.issuer != nil {
		token, err := s.issuer.Issue(ctx, &auth.Claims{UserID: user.ID, Email: user.Email, Role: string(user.Role)})
		if err != nil {
			return nil, err
		}
		response.Token = token
	}
	return response, nil
}

func (s *authService) GetCurrentUser(ctx context.Context, userID string) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UpdateProfile merges the allowed fields into the subject's own profile.
func (s *authService) UpdateProfile(ctx context.Context, userID string, updates map[string]interface{}) (*models.User, error) {
	for _, protected := range []string{"_id", "id", "email", "role", "is_active", "created_at"} {
		delete(updates, protected)
	}
	if len(updates) == 0 {
		return s.userRepo.GetByID(ctx, userID)
	}
	return s.userRepo.Update(ctx, userID, updates)
}
