package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

// DefaultLocation is where every visit currently takes place.
const DefaultLocation = "Studio 1"

// TimeSlots is the fixed set of bookable half-day slots.
var TimeSlots = []string{
	"09:00", "10:00", "11:00", "12:00",
	"14:00", "15:00", "16:00", "17:00",
}

// Appointment is the booking record persisted per submission. JSON keys
// are camelCase to stay compatible with the documents already stored by
// the previous client (see the booking record contract in DESIGN.md).
type Appointment struct {
	ID             uuid.UUID         `json:"id" db:"id"`
	PatientID      uuid.UUID         `json:"patientId" db:"patient_id"`
	DoctorID       string            `json:"doctorId" db:"doctor_id"`
	DoctorName     string            `json:"doctorName" db:"doctor_name"`
	Specialization string            `json:"specialization" db:"specialization"`
	Date           string            `json:"date" db:"visit_date"`
	Time           string            `json:"time" db:"visit_time"`
	Notes          string            `json:"notes" db:"notes"`
	Status         AppointmentStatus `json:"status" db:"status"`
	Location       string            `json:"location" db:"location"`
	CreatedAt      time.Time         `json:"createdAt" db:"created_at"`
}

// BookingSelection identifies what the patient picked before booking:
// exactly one of Specialist or Service must be set.
type BookingSelection struct {
	Specialist *Specialist `json:"specialist,omitempty"`
	Service    *Service    `json:"service,omitempty"`
}

// CreateAppointmentRequest is the booking form payload.
type CreateAppointmentRequest struct {
	BookingSelection
	Date  string `json:"date" validate:"required"`
	Time  string `json:"time" validate:"required,oneof=09:00 10:00 11:00 12:00 14:00 15:00 16:00 17:00"`
	Notes string `json:"notes" validate:"max=1000"`
}
