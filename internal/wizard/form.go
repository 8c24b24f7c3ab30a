package wizard

import "fmt"

// Field names shared by the reducer, the validators and the draft payload.
const (
	FieldService         = "service"
	FieldAppointmentType = "appointmentType"
	FieldPreferredDate   = "preferredDate"
	FieldPreferredTime   = "preferredTime"
	FieldAlternateDate   = "alternateDate"
	FieldAlternateTime   = "alternateTime"

	FieldFirstName   = "firstName"
	FieldLastName    = "lastName"
	FieldEmail       = "email"
	FieldPhone       = "phone"
	FieldDateOfBirth = "dateOfBirth"
	FieldGender      = "gender"
	FieldAddress     = "address"
	FieldCity        = "city"
	FieldState       = "state"
	FieldZipCode     = "zipCode"

	FieldHasInsurance          = "hasInsurance"
	FieldInsuranceProvider     = "insuranceProvider"
	FieldInsurancePolicyNumber = "insurancePolicyNumber"
	FieldSubscriberName        = "subscriberName"

	FieldReasonForVisit     = "reasonForVisit"
	FieldSymptoms           = "symptoms"
	FieldCurrentMedications = "currentMedications"
	FieldAllergies          = "allergies"

	FieldEmergencyContactName  = "emergencyContactName"
	FieldEmergencyContactPhone = "emergencyContactPhone"

	FieldReturningClient    = "returningClient"
	FieldTerms              = "terms"
	FieldHipaaConsent       = "hipaaConsent"
	FieldConsentToTreatment = "consentToTreatment"
	FieldPrivacyPolicy      = "privacyPolicy"
)

// Form is the full in-progress answer set. It is a value type: the reducer
// returns a new copy instead of mutating, so a forgotten setter cannot skip
// validation.
type Form struct {
	Service         string `json:"service"`
	AppointmentType string `json:"appointmentType"`
	PreferredDate   string `json:"preferredDate"`
	PreferredTime   string `json:"preferredTime"`
	AlternateDate   string `json:"alternateDate"`
	AlternateTime   string `json:"alternateTime"`

	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"dateOfBirth"`
	Gender      string `json:"gender"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	ZipCode     string `json:"zipCode"`

	HasInsurance          bool   `json:"hasInsurance"`
	InsuranceProvider     string `json:"insuranceProvider"`
	InsurancePolicyNumber string `json:"insurancePolicyNumber"`
	SubscriberName        string `json:"subscriberName"`

	ReasonForVisit     string `json:"reasonForVisit"`
	Symptoms           string `json:"symptoms"`
	CurrentMedications string `json:"currentMedications"`
	Allergies          string `json:"allergies"`

	EmergencyContactName  string `json:"emergencyContactName"`
	EmergencyContactPhone string `json:"emergencyContactPhone"`

	// ReturningClient is set when an email lookup matched an existing patient.
	ReturningClient    bool `json:"returningClient"`
	Terms              bool `json:"terms"`
	HipaaConsent       bool `json:"hipaaConsent"`
	ConsentToTreatment bool `json:"consentToTreatment"`
	PrivacyPolicy      bool `json:"privacyPolicy"`
}

// IsZero reports whether the form is still at its all-default state.
// Drafts of zero forms are never persisted.
func (f Form) IsZero() bool {
	return f == Form{}
}

// Apply is the pure reducer: it returns a copy of f with one field changed.
// String fields take string values, boolean fields take bool values; a type or
// name mismatch is an error rather than a silent no-op.
func Apply(f Form, field string, value any) (Form, error) {
	switch field {
	case FieldHasInsurance, FieldReturningClient, FieldTerms,
		FieldHipaaConsent, FieldConsentToTreatment, FieldPrivacyPolicy:
		b, ok := value.(bool)
		if !ok {
			return f, fmt.Errorf("field %s expects a boolean, got %T", field, value)
		}
		switch field {
		case FieldHasInsurance:
			f.HasInsurance = b
		case FieldReturningClient:
			f.ReturningClient = b
		case FieldTerms:
			f.Terms = b
		case FieldHipaaConsent:
			f.HipaaConsent = b
		case FieldConsentToTreatment:
			f.ConsentToTreatment = b
		case FieldPrivacyPolicy:
			f.PrivacyPolicy = b
		}
		return f, nil
	}

	s, ok := value.(string)
	if !ok {
		return f, fmt.Errorf("field %s expects a string, got %T", field, value)
	}

	switch field {
	case FieldService:
		f.Service = s
	case FieldAppointmentType:
		f.AppointmentType = s
	case FieldPreferredDate:
		f.PreferredDate = s
	case FieldPreferredTime:
		f.PreferredTime = s
	case FieldAlternateDate:
		f.AlternateDate = s
	case FieldAlternateTime:
		f.AlternateTime = s
	case FieldFirstName:
		f.FirstName = s
	case FieldLastName:
		f.LastName = s
	case FieldEmail:
		f.Email = s
	case FieldPhone:
		f.Phone = s
	case FieldDateOfBirth:
		f.DateOfBirth = s
	case FieldGender:
		f.Gender = s
	case FieldAddress:
		f.Address = s
	case FieldCity:
		f.City = s
	case FieldState:
		f.State = s
	case FieldZipCode:
		f.ZipCode = s
	case FieldInsuranceProvider:
		f.InsuranceProvider = s
	case FieldInsurancePolicyNumber:
		f.InsurancePolicyNumber = s
	case FieldSubscriberName:
		f.SubscriberName = s
	case FieldReasonForVisit:
		f.ReasonForVisit = s
	case FieldSymptoms:
		f.Symptoms = s
	case FieldCurrentMedications:
		f.CurrentMedications = s
	case FieldAllergies:
		f.Allergies = s
	case FieldEmergencyContactName:
		f.EmergencyContactName = s
	case FieldEmergencyContactPhone:
		f.EmergencyContactPhone = s
	default:
		return f, fmt.Errorf("unknown field %q", field)
	}

	return f, nil
}

// Prefill copies the identity fields from a matched returning client into the
// form and marks it as returning. Later edits overwrite prefilled values freely.
func Prefill(f Form, firstName, lastName, email, phone, dateOfBirth string) Form {
	f.FirstName = firstName
	f.LastName = lastName
	f.Email = email
	f.Phone = phone
	f.DateOfBirth = dateOfBirth
	f.ReturningClient = true
	return f
}
