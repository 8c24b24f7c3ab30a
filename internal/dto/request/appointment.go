package request

// CreateAppointmentRequest is the complete wizard submission. Struct tags
// cover the unconditional shape; the conditional intake rules (returning
// client, insurance) are re-checked in the service with the wizard validators
// since the client is not trusted.
type CreateAppointmentRequest struct {
	Service         string `json:"service" validate:"required"`
	AppointmentType string `json:"appointmentType" validate:"omitempty,oneof=telehealth in-person"`
	PreferredDate   string `json:"preferredDate" validate:"required,datetime=2006-01-02"`
	PreferredTime   string `json:"preferredTime" validate:"required,datetime=15:04"`
	AlternateDate   string `json:"alternateDate" validate:"omitempty,datetime=2006-01-02"`
	AlternateTime   string `json:"alternateTime" validate:"omitempty,datetime=15:04"`

	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
	Gender      string `json:"gender"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	ZipCode     string `json:"zipCode"`

	HasInsurance          bool   `json:"hasInsurance"`
	InsuranceProvider     string `json:"insuranceProvider"`
	InsurancePolicyNumber string `json:"insurancePolicyNumber"`
	SubscriberName        string `json:"subscriberName"`

	ReasonForVisit     string `json:"reasonForVisit" validate:"required"`
	Symptoms           string `json:"symptoms"`
	CurrentMedications string `json:"currentMedications"`
	Allergies          string `json:"allergies"`

	EmergencyContactName  string `json:"emergencyContactName"`
	EmergencyContactPhone string `json:"emergencyContactPhone"`

	ReturningClient    bool `json:"returningClient"`
	Terms              bool `json:"terms"`
	HipaaConsent       bool `json:"hipaaConsent"`
	ConsentToTreatment bool `json:"consentToTreatment"`
	PrivacyPolicy      bool `json:"privacyPolicy"`
}

type TransitionRequest struct {
	Notes *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

type RescheduleRequest struct {
	NewDate string  `json:"newDate" validate:"required,datetime=2006-01-02"`
	NewTime string  `json:"newTime" validate:"required,datetime=15:04"`
	Notes   *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

type CheckReturningClientRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ListAppointmentsRequest struct {
	PaginatedRequest
	Status   string `json:"status" validate:"omitempty,oneof=pending confirmed completed cancelled"`
	DateFrom string `json:"date_from" validate:"omitempty,datetime=2006-01-02"`
	DateTo   string `json:"date_to" validate:"omitempty,datetime=2006-01-02"`
	Search   string `json:"search" validate:"omitempty,max=100"`
}
