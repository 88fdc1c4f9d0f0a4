package model

import (
	"time"

	"github.com/google/uuid"
)

// User role constants
const (
	RolePatient = "patient"
	RoleOther   = "other"
)

// User represents a registered patient profile together with the
// credential fields this service manages for it. Profile fields are
// written once at registration and never mutated afterwards; only the
// credential columns (password_hash, email_verified) change.
type User struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Email         string    `json:"email" db:"email"`
	PasswordHash  string    `json:"-" db:"password_hash"`
	FirstName     string    `json:"firstName" db:"first_name"`
	LastName      string    `json:"lastName" db:"last_name"`
	FiscalCode    string    `json:"fiscalCode" db:"fiscal_code"`
	PhoneNumber   string    `json:"phoneNumber" db:"phone_number"`
	BirthDate     string    `json:"birthDate" db:"birth_date"`
	Role          string    `json:"role" db:"role"`
	EmailVerified bool      `json:"emailVerified" db:"email_verified"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"-" db:"updated_at"`
}

// RegisterRequest carries the registration form payload.
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	FiscalCode  string `json:"fiscalCode" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	BirthDate   string `json:"birthDate" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
