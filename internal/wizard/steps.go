package wizard

// Step is one screen of the intake wizard. Navigation is strictly linear;
// there is no skipping.
type Step int

const (
	StepService Step = iota
	StepDateTime
	StepPersonalInfo
	StepInsurance
	StepMedicalHistory
	StepReviewConfirm
)

const stepCount = 6

func (s Step) String() string {
	switch s {
	case StepService:
		return "service"
	case StepDateTime:
		return "date_time"
	case StepPersonalInfo:
		return "personal_info"
	case StepInsurance:
		return "insurance"
	case StepMedicalHistory:
		return "medical_history"
	case StepReviewConfirm:
		return "review_confirm"
	default:
		return "unknown"
	}
}

// IsLast reports whether s is the review/confirm step.
func (s Step) IsLast() bool {
	return s == StepReviewConfirm
}

// RequiredFields returns the required-field set for a step. The set depends on
// the form: a matched returning client reduces personal info to just email, and
// insurance details are only required when the patient reports having insurance.
func RequiredFields(step Step, f Form) []string {
	switch step {
	case StepService:
		return []string{FieldService}
	case StepDateTime:
		return []string{FieldPreferredDate, FieldPreferredTime}
	case StepPersonalInfo:
		if f.ReturningClient {
			return []string{FieldEmail}
		}
		return []string{
			FieldFirstName, FieldLastName, FieldEmail, FieldPhone,
			FieldDateOfBirth, FieldGender, FieldAddress, FieldCity,
			FieldState, FieldZipCode,
		}
	case StepInsurance:
		if !f.HasInsurance {
			return nil
		}
		return []string{FieldInsuranceProvider, FieldInsurancePolicyNumber, FieldSubscriberName}
	case StepMedicalHistory:
		return []string{FieldReasonForVisit}
	case StepReviewConfirm:
		return []string{FieldTerms, FieldHipaaConsent, FieldConsentToTreatment, FieldPrivacyPolicy}
	default:
		return nil
	}
}

// AllRequiredFields returns the union of every step's required-field set, in
// step order. Submit validates this union as a safety net against fields never
// visited through normal navigation.
func AllRequiredFields(f Form) []string {
	var fields []string
	for s := StepService; s <= StepReviewConfirm; s++ {
		fields = append(fields, RequiredFields(s, f)...)
	}
	return fields
}
