package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salusclinic/booking-api/internal/model"
)

type fakeCatalogRepo struct {
	specialists  []*model.Specialist
	services     []*model.Service
	listCalls    int
	serviceCalls int
}

func (r *fakeCatalogRepo) ListSpecialists(_ context.Context) ([]*model.Specialist, error) {
	r.listCalls++
	return r.specialists, nil
}

func (r *fakeCatalogRepo) GetSpecialist(_ context.Context, id string) (*model.Specialist, error) {
	for _, s := range r.specialists {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, fmt.Errorf("not found")
}

func (r *fakeCatalogRepo) ListServices(_ context.Context) ([]*model.Service, error) {
	r.serviceCalls++
	return r.services, nil
}

func (r *fakeCatalogRepo) GetService(_ context.Context, id string) (*model.Service, error) {
	for _, s := range r.services {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, fmt.Errorf("not found")
}

func newFakeRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{
		specialists: []*model.Specialist{
			{ID: "d1", FirstName: "Mario", LastName: "Rossi", Specialization: "Cardiologia"},
			{ID: "d2", FirstName: "Laura", LastName: "Verdi", Specialization: "Dermatologia"},
		},
		services: []*model.Service{
			{ID: "s1", Title: "Visita di controllo", Duration: "30 min", Price: "€ 80"},
		},
	}
}

func TestListSpecialistsCached(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	first, err := svc.ListSpecialists(context.Background())
	require.NoError(t, err)
	assert.Len(t, first, 2)

	second, err := svc.ListSpecialists(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// Second read must come from the cache.
	assert.Equal(t, 1, repo.listCalls)
}

func TestListServicesCached(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	_, err := svc.ListServices(context.Background())
	require.NoError(t, err)
	_, err = svc.ListServices(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, repo.serviceCalls)
}

func TestGetSpecialist(t *testing.T) {
	svc := NewService(newFakeRepo())

	specialist, err := svc.GetSpecialist(context.Background(), "d1")
	require.NoError(t, err)
	assert.Equal(t, "Mario", specialist.FirstName)

	_, err = svc.GetSpecialist(context.Background(), "missing")
	require.Error(t, err)
}

func TestGetService(t *testing.T) {
	svc := NewService(newFakeRepo())

	service, err := svc.GetService(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "Visita di controllo", service.Title)

	_, err = svc.GetService(context.Background(), "missing")
	require.Error(t, err)
}
