package entity

type PatientRole string

const (
	RolePatient PatientRole = "patient"
	RoleAdmin   PatientRole = "admin"
)

type Patient struct {
	Base
	FirstName    string      `db:"first_name"`
	LastName     string      `db:"last_name"`
	Email        string      `db:"email"`
	PasswordHash *string     `db:"password"` // nil for wizard-created records with no portal account
	Phone        *string     `db:"phone"`
	DateOfBirth  *string     `db:"date_of_birth"`
	Role         PatientRole `db:"role"`
	IsActive     bool        `db:"is_active"`
}
