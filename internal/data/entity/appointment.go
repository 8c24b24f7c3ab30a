package entity

import (
	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// IsTerminal reports whether status changes are no longer allowed.
// Terminal rows stay writable only for admin notes and audit metadata.
func (s AppointmentStatus) IsTerminal() bool {
	return s == AppointmentStatusCompleted || s == AppointmentStatusCancelled
}

type AppointmentMode string

const (
	AppointmentModeTelehealth AppointmentMode = "telehealth"
	AppointmentModeInPerson   AppointmentMode = "in-person"
)

// Appointment is the wide intake record produced by one wizard submission.
// appointment_date/appointment_time are the canonical slot once confirmed;
// preferred_date/preferred_time keep the original patient request for audit.
type Appointment struct {
	Base
	ReferenceCode string          `db:"reference_code"`
	PatientID     *uuid.UUID      `db:"patient_id"`
	ServiceCode   string          `db:"service_code"`
	Mode          AppointmentMode `db:"appointment_type"`

	PreferredDate   string  `db:"preferred_date"` // YYYY-MM-DD
	PreferredTime   string  `db:"preferred_time"` // HH:MM
	AlternateDate   *string `db:"alternate_date"`
	AlternateTime   *string `db:"alternate_time"`
	AppointmentDate string  `db:"appointment_date"`
	AppointmentTime string  `db:"appointment_time"`

	Status AppointmentStatus `db:"status"`

	// Identity intake
	FirstName   string `db:"first_name"`
	LastName    string `db:"last_name"`
	Email       string `db:"email"`
	Phone       string `db:"phone"`
	DateOfBirth string `db:"date_of_birth"` // YYYY-MM-DD
	Gender      string `db:"gender"`
	Address     string `db:"address"`
	City        string `db:"city"`
	State       string `db:"state"`
	ZipCode     string `db:"zip_code"`

	// Medical intake
	ReasonForVisit     string `db:"reason_for_visit"`
	Symptoms           string `db:"symptoms"`
	CurrentMedications string `db:"current_medications"`
	Allergies          string `db:"allergies"`

	// Insurance
	HasInsurance          bool   `db:"has_insurance"`
	InsuranceProvider     string `db:"insurance_provider"`
	InsurancePolicyNumber string `db:"insurance_policy_number"`
	SubscriberName        string `db:"subscriber_name"`

	// Emergency contact
	EmergencyContactName  string `db:"emergency_contact_name"`
	EmergencyContactPhone string `db:"emergency_contact_phone"`

	// Consents
	TermsAccepted      bool `db:"terms_accepted"`
	HipaaConsent       bool `db:"hipaa_consent"`
	ConsentToTreatment bool `db:"consent_to_treatment"`
	PrivacyPolicy      bool `db:"privacy_policy"`

	AdminNotes *string `db:"admin_notes"`
}
