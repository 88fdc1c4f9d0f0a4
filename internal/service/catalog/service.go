package catalog

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/salusclinic/booking-api/internal/model"
	"github.com/salusclinic/booking-api/internal/repository"
	apperrors "github.com/salusclinic/booking-api/pkg/errors"
)

const (
	cacheTTL     = 5 * time.Minute
	cacheCleanup = 10 * time.Minute

	keySpecialists = "specialists"
	keyServices    = "services"
)

// Service serves the public catalog. The lists change rarely and back
// two of the busiest pages, so reads go through an in-process cache.
type Service struct {
	repo  repository.CatalogRepository
	cache *gocache.Cache
}

func NewService(repo repository.CatalogRepository) *Service {
	return &Service{
		repo:  repo,
		cache: gocache.New(cacheTTL, cacheCleanup),
	}
}

func (s *Service) ListSpecialists(ctx context.Context) ([]*model.Specialist, error) {
	if cached, ok := s.cache.Get(keySpecialists); ok {
		return cached.([]*model.Specialist), nil
	}

	specialists, err := s.repo.ListSpecialists(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	s.cache.Set(keySpecialists, specialists, gocache.DefaultExpiration)
	return specialists, nil
}

func (s *Service) GetSpecialist(ctx context.Context, id string) (*model.Specialist, error) {
	specialist, err := s.repo.GetSpecialist(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("specialista", err)
	}
	return specialist, nil
}

func (s *Service) ListServices(ctx context.Context) ([]*model.Service, error) {
	if cached, ok := s.cache.Get(keyServices); ok {
		return cached.([]*model.Service), nil
	}

	services, err := s.repo.ListServices(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	s.cache.Set(keyServices, services, gocache.DefaultExpiration)
	return services, nil
}

func (s *Service) GetService(ctx context.Context, id string) (*model.Service, error) {
	service, err := s.repo.GetService(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("servizio", err)
	}
	return service, nil
}
