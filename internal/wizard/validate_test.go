package wizard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"valid", "jane.doe@example.com", false},
		{"valid with plus", "jane+intake@example.com", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"missing at", "jane.example.com", true},
		{"missing domain dot", "jane@example", true},
		{"contains space", "jane doe@example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"digits", "5551234567", false},
		{"formatted", "+1 (555) 123-4567", false},
		{"too short", "123456", true},
		{"letters", "call me maybe", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePhone(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateDateOfBirth(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		// Age is calendar-year only: anyone born in 2008 counts as 18
		// throughout 2026, whatever the month.
		{"exactly 18 by year", "2008-12-31", false},
		{"17 by year", "2009-01-01", true},
		{"normal adult", "1985-03-20", false},
		{"120 by year", "1906-06-15", false},
		{"121 by year", "1905-12-31", true},
		{"empty", "", true},
		{"garbage", "not-a-date", true},
		{"wrong format", "20/03/1985", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDateOfBirth(tt.value, testNow)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateZipCode(t *testing.T) {
	assert.NoError(t, ValidateZipCode("12345"))
	assert.NoError(t, ValidateZipCode("12345-6789"))
	assert.Error(t, ValidateZipCode("1234"))
	assert.Error(t, ValidateZipCode("123456"))
	assert.Error(t, ValidateZipCode("12345-67"))
	assert.Error(t, ValidateZipCode(""))
}

func TestValidateConsent(t *testing.T) {
	assert.NoError(t, ValidateConsent(true))
	assert.Error(t, ValidateConsent(false))
}

func validForm() Form {
	return Form{
		Service:       "initial-eval",
		PreferredDate: "2026-07-01",
		PreferredTime: "10:00",

		FirstName:   "Jane",
		LastName:    "Doe",
		Email:       "jane.doe@example.com",
		Phone:       "5551234567",
		DateOfBirth: "1985-03-20",
		Gender:      "female",
		Address:     "123 Main St",
		City:        "Springfield",
		State:       "IL",
		ZipCode:     "62704",

		ReasonForVisit: "anxiety",

		Terms:              true,
		HipaaConsent:       true,
		ConsentToTreatment: true,
		PrivacyPolicy:      true,
	}
}

func TestValidateFieldsAllValid(t *testing.T) {
	f := validForm()
	errs := ValidateFields(f, AllRequiredFields(f), testNow)
	assert.Nil(t, errs)
}

func TestValidateFieldsSingleMissingFieldPerStep(t *testing.T) {
	// Blanking any one required field must fail validation for its step.
	clear := map[string]func(*Form){
		FieldService:            func(f *Form) { f.Service = "" },
		FieldPreferredDate:      func(f *Form) { f.PreferredDate = "" },
		FieldPreferredTime:      func(f *Form) { f.PreferredTime = "" },
		FieldFirstName:          func(f *Form) { f.FirstName = "" },
		FieldLastName:           func(f *Form) { f.LastName = "" },
		FieldEmail:              func(f *Form) { f.Email = "" },
		FieldPhone:              func(f *Form) { f.Phone = "" },
		FieldDateOfBirth:        func(f *Form) { f.DateOfBirth = "" },
		FieldGender:             func(f *Form) { f.Gender = "" },
		FieldAddress:            func(f *Form) { f.Address = "" },
		FieldCity:               func(f *Form) { f.City = "" },
		FieldState:              func(f *Form) { f.State = "" },
		FieldZipCode:            func(f *Form) { f.ZipCode = "" },
		FieldReasonForVisit:     func(f *Form) { f.ReasonForVisit = "" },
		FieldTerms:              func(f *Form) { f.Terms = false },
		FieldHipaaConsent:       func(f *Form) { f.HipaaConsent = false },
		FieldConsentToTreatment: func(f *Form) { f.ConsentToTreatment = false },
		FieldPrivacyPolicy:      func(f *Form) { f.PrivacyPolicy = false },
	}

	for field, blank := range clear {
		t.Run(field, func(t *testing.T) {
			f := validForm()
			blank(&f)

			errs := ValidateFields(f, AllRequiredFields(f), testNow)
			require.NotNil(t, errs)
			assert.Contains(t, errs, field)
			assert.Len(t, errs, 1)
		})
	}
}

func TestRequiredFieldsReturningClient(t *testing.T) {
	f := validForm()
	f.ReturningClient = true

	fields := RequiredFields(StepPersonalInfo, f)
	assert.Equal(t, []string{FieldEmail}, fields)

	// A returning client with only an email still passes personal info.
	f.FirstName = ""
	f.Phone = ""
	f.DateOfBirth = ""
	errs := ValidateFields(f, fields, testNow)
	assert.Nil(t, errs)
}

func TestRequiredFieldsInsuranceConditional(t *testing.T) {
	f := validForm()

	assert.Empty(t, RequiredFields(StepInsurance, f))

	f.HasInsurance = true
	fields := RequiredFields(StepInsurance, f)
	assert.Equal(t, []string{FieldInsuranceProvider, FieldInsurancePolicyNumber, FieldSubscriberName}, fields)

	errs := ValidateFields(f, fields, testNow)
	require.NotNil(t, errs)
	assert.Len(t, errs, 3)

	f.InsuranceProvider = "BlueCross"
	f.InsurancePolicyNumber = "BC-100200"
	f.SubscriberName = "Jane Doe"
	assert.Nil(t, ValidateFields(f, fields, testNow))
}

func TestFieldErrorsError(t *testing.T) {
	errs := FieldErrors{"email": "invalid email format"}
	assert.Contains(t, errs.Error(), "email")
	assert.Contains(t, errs.Error(), "invalid email format")
}
