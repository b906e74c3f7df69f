package doctor

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/globalhospital/portal-api/internal/model"
	"github.com/globalhospital/portal-api/internal/repository"
)

type Service struct {
	repo           repository.DoctorRepository
	maxListResults int
}

func NewService(repo repository.DoctorRepository, maxListResults int) *Service {
	return &Service{repo: repo, maxListResults: maxListResults}
}

// ListBySpecialty returns the doctors of one specialty. An unknown
// specialty id yields an empty slice, never an error: the caller
// renders it as an empty state.
func (s *Service) ListBySpecialty(ctx context.Context, specialtyID uuid.UUID) ([]*model.Doctor, error) {
	doctors, err := s.repo.List(ctx, &model.DoctorFilters{
		SpecialtyID: &specialtyID,
		Limit:       s.maxListResults,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	if doctors == nil {
		doctors = []*model.Doctor{}
	}
	return doctors, nil
}

// Preview returns the capped doctor list shown on the home page.
func (s *Service) Preview(ctx context.Context, limit int) ([]*model.Doctor, error) {
	if limit <= 0 || limit > s.maxListResults {
		limit = s.maxListResults
	}
	doctors, err := s.repo.List(ctx, &model.DoctorFilters{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	if doctors == nil {
		doctors = []*model.Doctor{}
	}
	return doctors, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	doctor, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return doctor, nil
}
