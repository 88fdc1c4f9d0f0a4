package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/salusclinic/booking-api/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
	UpdateEmailVerified(ctx context.Context, id uuid.UUID, verified bool) error
}

type AppointmentRepository interface {
	Create(ctx context.Context, appt *model.Appointment) error
	Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Appointment, error)
}

type TokenRepository interface {
	StoreVerificationToken(ctx context.Context, userID uuid.UUID, token string, expiry time.Time) error
	ValidateVerificationToken(ctx context.Context, token string) (uuid.UUID, error)
	InvalidateVerificationToken(ctx context.Context, token string) error
	StoreResetToken(ctx context.Context, userID uuid.UUID, token string, expiry time.Time) error
	ValidateResetToken(ctx context.Context, token string) (uuid.UUID, error)
	InvalidateResetToken(ctx context.Context, token string) error
}

type CatalogRepository interface {
	ListSpecialists(ctx context.Context) ([]*model.Specialist, error)
	GetSpecialist(ctx context.Context, id string) (*model.Specialist, error)
	ListServices(ctx context.Context) ([]*model.Service, error)
	GetService(ctx context.Context, id string) (*model.Service, error)
}

// SessionStore tracks revoked session tokens until they expire.
type SessionStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
