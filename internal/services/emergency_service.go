package services

import (
	"context"
	"time"

	"swiftaid/internal/models"
	"swiftaid/internal/repositories/interfaces"
	"swiftaid/internal/utils"
	"swiftaid/pkg/logger"
)

// EmergencyService is the patient-facing side: submitting a request and
// watching its progress.
type EmergencyService interface {
	CreateEmergency(ctx context.Context, patientID string, request *models.CreateEmergencyRequest) (*models.Emergency, error)

	// GetActiveEmergency returns the patient's most recent non-terminal
	// emergency, or nil when they have none in flight.
	GetActiveEmergency(ctx context.Context, patientID string) (*models.Emergency, error)

	// GetAssignedDriver resolves the driver bound to the patient's active
	// emergency.
	GetAssignedDriver(ctx context.Context, patientID string) (*models.User, error)

	GetPatientHistory(ctx context.Context, patientID string) ([]*models.Emergency, error)
}

type emergencyService struct {
	emergencyRepo interfaces.EmergencyRepository
	userRepo      interfaces.UserRepository
	logger        *logger.Logger
}

func NewEmergencyService(
	emergencyRepo interfaces.EmergencyRepository,
	userRepo interfaces.UserRepository,
	log *logger.Logger,
) EmergencyService {
	return &emergencyService{
		emergencyRepo: emergencyRepo,
		userRepo:      userRepo,
		logger:        log,
	}
}

// CreateEmergency persists a new pending emergency. The patient's display name
// is snapshotted onto the record so driver views never need a join.
func (s *emergencyService) CreateEmergency(ctx context.Context, patientID string, request *models.CreateEmergencyRequest) (*models.Emergency, error) {
	patient, err := s.userRepo.GetByID(ctx, patientID)
	if err != nil {
		return nil, err
	}

	contact := request.PatientContact
	if contact == "" {
		contact = patient.Phone
	}

	emergency := &models.Emergency{
		PatientID:      patientID,
		PatientName:    patient.DisplayName(),
		PatientAge:     request.PatientAge,
		PatientContact: contact,
		EmergencyType:  request.EmergencyType,
		Severity:       request.Severity,
		Priority:       request.Priority,
		Description:    request.Description,
		Location:       request.Location,
		Status:         models.EmergencyStatusPending,
		CreatedAt:      time.Now(),
	}

	if err := s.emergencyRepo.Create(ctx, emergency); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"emergency_id":   emergency.ID.Hex(),
		"patient_id":     patientID,
		"emergency_type": emergency.EmergencyType,
	}).Info("Emergency created")

	return emergency, nil
}

func (s *emergencyService) GetActiveEmergency(ctx context.Context, patientID string) (*models.Emergency, error) {
	emergencies, err := s.emergencyRepo.GetByPatientID(ctx, patientID)
	if err != nil {
		return nil, err
	}

	// Records come back newest first; the first active one is the current
	// request.
	for _, e := range emergencies {
		if e.Status.IsActive() {
			return e, nil
		}
	}
	return nil, nil
}

func (s *emergencyService) GetAssignedDriver(ctx context.Context, patientID string) (*models.User, error) {
	active, err := s.GetActiveEmergency(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if active == nil || active.DriverID == "" {
		return nil, utils.ErrEmergencyNotFound
	}

	return s.userRepo.GetByID(ctx, active.DriverID)
}

func (s *emergencyService) GetPatientHistory(ctx context.Context, patientID string) ([]*models.Emergency, error) {
	return s.emergencyRepo.GetByPatientID(ctx, patientID)
}
