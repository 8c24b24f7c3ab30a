package wizard

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// FieldErrors maps a field name to its validation message.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	var msgs []string
	for field, msg := range e {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	return strings.Join(msgs, "; ")
}

const (
	MinPatientAge = 18
	MaxPatientAge = 120
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[0-9+()\- ]{7,20}$`)
	zipPattern   = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
)

// ValidateEmail requires a non-empty local@domain.tld shape.
func ValidateEmail(value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("email is required")
	}
	if !emailPattern.MatchString(value) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// ValidatePhone requires 7-20 characters of digits, +, (), - or space.
func ValidatePhone(value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("phone is required")
	}
	if !phonePattern.MatchString(value) {
		return fmt.Errorf("invalid phone number")
	}
	return nil
}

// ValidateDateOfBirth requires a YYYY-MM-DD date whose calendar-year age is
// between MinPatientAge and MaxPatientAge. The age is today's year minus the
// birth year, with no month/day adjustment.
func ValidateDateOfBirth(value string, now time.Time) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("date of birth is required")
	}
	dob, err := time.Parse("2006-01-02", value)
	if err != nil {
		return fmt.Errorf("invalid date of birth")
	}
	age := now.Year() - dob.Year()
	if age < MinPatientAge {
		return fmt.Errorf("you must be at least %d years old", MinPatientAge)
	}
	if age > MaxPatientAge {
		return fmt.Errorf("invalid date of birth")
	}
	return nil
}

// ValidateZipCode requires 5 digits, optionally followed by -NNNN.
func ValidateZipCode(value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("zip code is required")
	}
	if !zipPattern.MatchString(value) {
		return fmt.Errorf("invalid zip code")
	}
	return nil
}

// ValidateConsent requires the flag to be exactly true.
func ValidateConsent(value bool) error {
	if !value {
		return fmt.Errorf("this consent is required")
	}
	return nil
}

// ValidateRequired requires a non-empty value after trimming.
func ValidateRequired(value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("this field is required")
	}
	return nil
}

// validateField runs the validator for one named field against the form.
func validateField(f Form, field string, now time.Time) error {
	switch field {
	case FieldEmail:
		return ValidateEmail(f.Email)
	case FieldPhone:
		return ValidatePhone(f.Phone)
	case FieldDateOfBirth:
		return ValidateDateOfBirth(f.DateOfBirth, now)
	case FieldZipCode:
		return ValidateZipCode(f.ZipCode)
	case FieldTerms:
		return ValidateConsent(f.Terms)
	case FieldHipaaConsent:
		return ValidateConsent(f.HipaaConsent)
	case FieldConsentToTreatment:
		return ValidateConsent(f.ConsentToTreatment)
	case FieldPrivacyPolicy:
		return ValidateConsent(f.PrivacyPolicy)
	case FieldService:
		return ValidateRequired(f.Service)
	case FieldPreferredDate:
		return ValidateRequired(f.PreferredDate)
	case FieldPreferredTime:
		return ValidateRequired(f.PreferredTime)
	case FieldFirstName:
		return ValidateRequired(f.FirstName)
	case FieldLastName:
		return ValidateRequired(f.LastName)
	case FieldGender:
		return ValidateRequired(f.Gender)
	case FieldAddress:
		return ValidateRequired(f.Address)
	case FieldCity:
		return ValidateRequired(f.City)
	case FieldState:
		return ValidateRequired(f.State)
	case FieldInsuranceProvider:
		return ValidateRequired(f.InsuranceProvider)
	case FieldInsurancePolicyNumber:
		return ValidateRequired(f.InsurancePolicyNumber)
	case FieldSubscriberName:
		return ValidateRequired(f.SubscriberName)
	case FieldReasonForVisit:
		return ValidateRequired(f.ReasonForVisit)
	default:
		return nil
	}
}

// ValidateFields checks the named fields and returns the failures keyed by
// field name. A nil result means all fields passed.
func ValidateFields(f Form, fields []string, now time.Time) FieldErrors {
	var errs FieldErrors
	for _, field := range fields {
		if err := validateField(f, field, now); err != nil {
			if errs == nil {
				errs = make(FieldErrors)
			}
			errs[field] = err.Error()
		}
	}
	return errs
}
