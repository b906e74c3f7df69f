package specialty

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/globalhospital/portal-api/internal/model"
	"github.com/globalhospital/portal-api/internal/repository"
)

const listCacheKey = "specialties"

// Service serves the specialty catalog. Specialties are static
// reference data, so list results are cached with a TTL.
type Service struct {
	repo  repository.SpecialtyRepository
	cache *gocache.Cache
}

func NewService(repo repository.SpecialtyRepository, cacheTTL time.Duration) *Service {
	return &Service{
		repo:  repo,
		cache: gocache.New(cacheTTL, 2*cacheTTL),
	}
}

func (s *Service) List(ctx context.Context) ([]*model.Specialty, error) {
	if cached, ok := s.cache.Get(listCacheKey); ok {
		return cached.([]*model.Specialty), nil
	}

	specialties, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list specialties: %w", err)
	}

	s.cache.SetDefault(listCacheKey, specialties)
	return specialties, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Specialty, error) {
	specialty, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get specialty: %w", err)
	}
	return specialty, nil
}
