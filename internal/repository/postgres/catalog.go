package postgres

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	"github.com/salusclinic/booking-api/internal/model"
	"github.com/salusclinic/booking-api/internal/repository"
)

type catalogRepository struct {
	BaseRepository
}

func NewCatalogRepository(base BaseRepository) repository.CatalogRepository {
	return &catalogRepository{base}
}

func (r *catalogRepository) ListSpecialists(ctx context.Context) ([]*model.Specialist, error) {
	query := `
		SELECT id, first_name, last_name, specialization, bio
		FROM specialists
		ORDER BY last_name, first_name
	`

	var specialists []*model.Specialist
	if err := r.db.SelectContext(ctx, &specialists, query); err != nil {
		return nil, fmt.Errorf("failed to list specialists: %w", err)
	}

	return specialists, nil
}

func (r *catalogRepository) GetSpecialist(ctx context.Context, id string) (*model.Specialist, error) {
	query := `
		SELECT id, first_name, last_name, specialization, bio
		FROM specialists
		WHERE id = $1
	`

	var specialist model.Specialist
	if err := r.db.GetContext(ctx, &specialist, query, id); err != nil {
		return nil, fmt.Errorf("failed to get specialist: %w", err)
	}

	return &specialist, nil
}

func (r *catalogRepository) ListServices(ctx context.Context) ([]*model.Service, error) {
	query := `
		SELECT id, title, description, long_description, includes, duration, price
		FROM services
		ORDER BY title
	`

	rows, err := r.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer rows.Close()

	var services []*model.Service
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		services = append(services, svc)
	}

	return services, rows.Err()
}

func (r *catalogRepository) GetService(ctx context.Context, id string) (*model.Service, error) {
	query := `
		SELECT id, title, description, long_description, includes, duration, price
		FROM services
		WHERE id = $1
	`

	rows, err := r.db.QueryxContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, fmt.Errorf("service not found")
	}

	return scanService(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// includes is a text[] column, scanned through pq.Array.
func scanService(row rowScanner) (*model.Service, error) {
	var svc model.Service
	err := row.Scan(
		&svc.ID,
		&svc.Title,
		&svc.Description,
		&svc.LongDescription,
		pq.Array(&svc.Includes),
		&svc.Duration,
		&svc.Price,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan service: %w", err)
	}
	return &svc, nil
}
