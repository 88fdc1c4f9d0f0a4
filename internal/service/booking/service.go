package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/salusclinic/booking-api/internal/model"
	"github.com/salusclinic/booking-api/internal/repository"
	apperrors "github.com/salusclinic/booking-api/pkg/errors"
)

const dateLayout = "2006-01-02"

type Service struct {
	repo     repository.AppointmentRepository
	validate *validator.Validate
	now      func() time.Time
}

func NewService(repo repository.AppointmentRepository) *Service {
	return &Service{
		repo:     repo,
		validate: validator.New(),
		now:      time.Now,
	}
}

// Book validates the submission and persists exactly one appointment
// for the authenticated patient. The record is built from whichever of
// specialist or service was carried into the form; the caller
// guarantees the patient is authenticated.
func (s *Service) Book(ctx context.Context, patientID uuid.UUID, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.BadRequest("dati della prenotazione non validi", err)
	}

	if req.Specialist == nil && req.Service == nil {
		return nil, apperrors.BadRequest("seleziona un servizio o uno specialista", nil)
	}

	if err := s.checkDate(req.Date); err != nil {
		return nil, err
	}

	appt := &model.Appointment{
		PatientID: patientID,
		Date:      req.Date,
		Time:      req.Time,
		Notes:     req.Notes,
		Status:    model.AppointmentStatusScheduled,
		Location:  model.DefaultLocation,
	}

	if req.Specialist != nil {
		appt.DoctorID = req.Specialist.ID
		appt.DoctorName = fmt.Sprintf("%s %s", req.Specialist.FirstName, req.Specialist.LastName)
		appt.Specialization = req.Specialist.Specialization
	} else {
		appt.Specialization = req.Service.Title
	}

	if err := s.repo.Create(ctx, appt); err != nil {
		return nil, apperrors.BookingPersistence(err)
	}

	return appt, nil
}

// ListForPatient returns the patient's appointments for the profile page.
func (s *Service) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Appointment, error) {
	appts, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return appts, nil
}

// checkDate is the server-side form of the date-picker minimum: the
// visit date cannot be in the past.
func (s *Service) checkDate(date string) error {
	parsed, err := time.Parse(dateLayout, date)
	if err != nil {
		return apperrors.BadRequest("data non valida", err)
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if parsed.Before(today) {
		return apperrors.BadRequest("la data non può essere nel passato", nil)
	}

	return nil
}
