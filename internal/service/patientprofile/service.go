package patientprofile

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/globalhospital/portal-api/internal/model"
	"github.com/globalhospital/portal-api/internal/repository"
	"github.com/globalhospital/portal-api/pkg/metrics"
	"github.com/globalhospital/portal-api/pkg/report"
)

// ErrNoProfile marks the empty state: the signed-in user has not filled
// in a patient profile yet.
var ErrNoProfile = errors.New("no patient profile for user")

type Service struct {
	repo             repository.PatientProfileRepository
	prescriptionRepo repository.PrescriptionRepository
	metrics          *metrics.Metrics
}

func NewService(repo repository.PatientProfileRepository,
	prescriptionRepo repository.PrescriptionRepository, m *metrics.Metrics) *Service {
	return &Service{
		repo:             repo,
		prescriptionRepo: prescriptionRepo,
		metrics:          m,
	}
}

func (s *Service) Get(ctx context.Context, userID uuid.UUID) (*model.PatientProfile, error) {
	profile, err := s.repo.GetByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNoProfile
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get patient profile: %w", err)
	}
	return profile, nil
}

// Save upserts the caller's profile in one statement keyed on user_id.
// First save inserts; every later save updates the same row id.
func (s *Service) Save(ctx context.Context, userID uuid.UUID, req *model.SavePatientProfileRequest) (*model.PatientProfile, error) {
	profile := &model.PatientProfile{
		Base: model.Base{
			ID: uuid.New(),
		},
		PatientID:        req.PatientID,
		Name:             req.Name,
		Age:              req.Age,
		Gender:           req.Gender,
		BloodGroup:       req.BloodGroup,
		FamilyContact:    req.FamilyContact,
		Address:          req.Address,
		OngoingTreatment: req.OngoingTreatment,
		UserID:           userID,
	}

	if err := s.repo.Upsert(ctx, profile); err != nil {
		s.metrics.ProfileSaves.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to save patient profile: %w", err)
	}

	s.metrics.ProfileSaves.WithLabelValues("ok").Inc()
	return profile, nil
}

// Prescriptions lists the caller's prescriptions, newest first. A user
// without a profile has none.
func (s *Service) Prescriptions(ctx context.Context, userID uuid.UUID) ([]*model.Prescription, error) {
	profile, err := s.Get(ctx, userID)
	if errors.Is(err, ErrNoProfile) {
		return []*model.Prescription{}, nil
	}
	if err != nil {
		return nil, err
	}

	prescriptions, err := s.prescriptionRepo.ListByPatient(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list prescriptions: %w", err)
	}
	if prescriptions == nil {
		prescriptions = []*model.Prescription{}
	}
	return prescriptions, nil
}

// ReportData gathers everything the treatment report renders.
func (s *Service) ReportData(ctx context.Context, userID uuid.UUID) (*report.PatientReportData, error) {
	profile, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	prescriptions, err := s.prescriptionRepo.ListByPatient(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list prescriptions: %w", err)
	}

	return &report.PatientReportData{
		Profile:       profile,
		Prescriptions: prescriptions,
	}, nil
}
