package model

// Specialist is a doctor listed on the public catalog page.
type Specialist struct {
	ID             string `json:"id" db:"id"`
	FirstName      string `json:"firstName" db:"first_name"`
	LastName       string `json:"lastName" db:"last_name"`
	Specialization string `json:"specialization" db:"specialization"`
	Bio            string `json:"bio,omitempty" db:"bio"`
}

// Service is a bookable service type (e.g. a check-up package).
type Service struct {
	ID              string   `json:"id" db:"id"`
	Title           string   `json:"title" db:"title"`
	Description     string   `json:"description" db:"description"`
	LongDescription string   `json:"longDescription,omitempty" db:"long_description"`
	Includes        []string `json:"includes,omitempty" db:"-"`
	Duration        string   `json:"duration" db:"duration"`
	Price           string   `json:"price" db:"price"`
}

// ClinicInfo is the static contact payload for the contacts page.
type ClinicInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Hours   string `json:"hours"`
}
