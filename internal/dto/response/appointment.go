package response

import (
	"encoding/json"
	"time"

	"github.com/pellyjosh/psychiatrist-sub000/internal/data/entity"
)

type AppointmentResponse struct {
	ID            string `json:"id"`
	ReferenceCode string `json:"reference_code"`
	PatientID     string `json:"patient_id,omitempty"`
	ServiceCode   string `json:"service_code"`
	ServiceName   string `json:"service_name,omitempty"`
	Mode          string `json:"appointment_type"`

	PreferredDate   string  `json:"preferred_date"`
	PreferredTime   string  `json:"preferred_time"`
	AlternateDate   *string `json:"alternate_date,omitempty"`
	AlternateTime   *string `json:"alternate_time,omitempty"`
	AppointmentDate string  `json:"appointment_date"`
	AppointmentTime string  `json:"appointment_time"`

	Status entity.AppointmentStatus `json:"status"`

	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"date_of_birth"`
	Gender      string `json:"gender"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	ZipCode     string `json:"zip_code"`

	ReasonForVisit     string `json:"reason_for_visit"`
	Symptoms           string `json:"symptoms,omitempty"`
	CurrentMedications string `json:"current_medications,omitempty"`
	Allergies          string `json:"allergies,omitempty"`

	HasInsurance          bool   `json:"has_insurance"`
	InsuranceProvider     string `json:"insurance_provider,omitempty"`
	InsurancePolicyNumber string `json:"insurance_policy_number,omitempty"`
	SubscriberName        string `json:"subscriber_name,omitempty"`

	EmergencyContactName  string `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone string `json:"emergency_contact_phone,omitempty"`

	AdminNotes *string   `json:"admin_notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type ActivityResponse struct {
	ID            string          `json:"id"`
	AppointmentID string          `json:"appointment_id"`
	ActorID       *string         `json:"actor_id,omitempty"`
	Action        string          `json:"action"`
	FromStatus    string          `json:"from_status"`
	ToStatus      string          `json:"to_status"`
	Metadata      json.RawMessage `json:"metadata,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

type StatusCountsResponse struct {
	Pending   int64 `json:"pending"`
	Confirmed int64 `json:"confirmed"`
	Completed int64 `json:"completed"`
	Cancelled int64 `json:"cancelled"`
}

// PrefillPayload carries identity fields only, never medical history.
type PrefillPayload struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"date_of_birth"`
}

type CheckReturningClientResponse struct {
	Match   bool            `json:"match"`
	Prefill *PrefillPayload `json:"prefill,omitempty"`
}

// Helper converters

func AppointmentToResponse(appt *entity.Appointment) AppointmentResponse {
	resp := AppointmentResponse{
		ID:                    appt.ID.String(),
		ReferenceCode:         appt.ReferenceCode,
		ServiceCode:           appt.ServiceCode,
		Mode:                  string(appt.Mode),
		PreferredDate:         appt.PreferredDate,
		PreferredTime:         appt.PreferredTime,
		AlternateDate:         appt.AlternateDate,
		AlternateTime:         appt.AlternateTime,
		AppointmentDate:       appt.AppointmentDate,
		AppointmentTime:       appt.AppointmentTime,
		Status:                appt.Status,
		FirstName:             appt.FirstName,
		LastName:              appt.LastName,
		Email:                 appt.Email,
		Phone:                 appt.Phone,
		DateOfBirth:           appt.DateOfBirth,
		Gender:                appt.Gender,
		Address:               appt.Address,
		City:                  appt.City,
		State:                 appt.State,
		ZipCode:               appt.ZipCode,
		ReasonForVisit:        appt.ReasonForVisit,
		Symptoms:              appt.Symptoms,
		CurrentMedications:    appt.CurrentMedications,
		Allergies:             appt.Allergies,
		HasInsurance:          appt.HasInsurance,
		InsuranceProvider:     appt.InsuranceProvider,
		InsurancePolicyNumber: appt.InsurancePolicyNumber,
		SubscriberName:        appt.SubscriberName,
		EmergencyContactName:  appt.EmergencyContactName,
		EmergencyContactPhone: appt.EmergencyContactPhone,
		AdminNotes:            appt.AdminNotes,
		CreatedAt:             appt.CreatedAt,
		UpdatedAt:             appt.UpdatedAt,
	}

	if appt.PatientID != nil {
		resp.PatientID = appt.PatientID.String()
	}

	return resp
}

func ActivityToResponse(activity *entity.AppointmentActivity) ActivityResponse {
	resp := ActivityResponse{
		ID:            activity.ID.String(),
		AppointmentID: activity.AppointmentID.String(),
		Action:        string(activity.Action),
		FromStatus:    string(activity.FromStatus),
		ToStatus:      string(activity.ToStatus),
		Metadata:      activity.Metadata,
		CreatedAt:     activity.CreatedAt,
	}

	if activity.ActorID != nil {
		actorID := activity.ActorID.String()
		resp.ActorID = &actorID
	}

	return resp
}
