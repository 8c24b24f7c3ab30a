package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/pellyjosh/psychiatrist-sub000/internal/data/entity"
	"github.com/pellyjosh/psychiatrist-sub000/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// AppointmentFilter narrows List/Count queries for the admin and patient views.
type AppointmentFilter struct {
	Status    entity.AppointmentStatus
	PatientID *uuid.UUID
	DateFrom  string // YYYY-MM-DD, inclusive, applied to appointment_date
	DateTo    string
	Search    string // free text over patient name / email / reason
	Limit     int
	Offset    int
}

type AppointmentRepository interface {
	Create(ctx context.Context, appt *entity.Appointment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error)
	FindPendingDuplicate(ctx context.Context, email, serviceCode, date, timeOfDay string) (*entity.Appointment, error)
	List(ctx context.Context, filter AppointmentFilter) ([]*entity.Appointment, error)
	Count(ctx context.Context, filter AppointmentFilter) (int64, error)
	CountByStatusForPatient(ctx context.Context, patientID uuid.UUID) (map[entity.AppointmentStatus]int64, error)

	// UpdateStatusIf performs the conditional transition write. It returns
	// applied=false when the row exists but is no longer in the expected
	// status, which is how racing transitions lose.
	UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to entity.AppointmentStatus) (bool, error)

	// RescheduleIf overwrites the canonical slot and resets status, guarded by
	// the expected current status. preferred_date/preferred_time are untouched.
	RescheduleIf(ctx context.Context, id uuid.UUID, newDate, newTime string, from, to entity.AppointmentStatus) (bool, error)

	UpdateAdminNotes(ctx context.Context, id uuid.UUID, notes string) error
	DeleteByPatient(ctx context.Context, patientID uuid.UUID) error
}

type appointmentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAppointmentRepository(db database.PgxIface, log *zap.Logger) AppointmentRepository {
	return &appointmentRepository{
		db:  db,
		log: log.With(zap.String("repository", "appointment")),
	}
}

const appointmentColumns = `id, reference_code, patient_id, service_code, appointment_type,
	preferred_date, preferred_time, alternate_date, alternate_time,
	appointment_date, appointment_time, status,
	first_name, last_name, email, phone, date_of_birth, gender,
	address, city, state, zip_code,
	reason_for_visit, symptoms, current_medications, allergies,
	has_insurance, insurance_provider, insurance_policy_number, subscriber_name,
	emergency_contact_name, emergency_contact_phone,
	terms_accepted, hipaa_consent, consent_to_treatment, privacy_policy,
	admin_notes, created_at, updated_at`

func scanAppointment(row pgx.Row) (*entity.Appointment, error) {
	var a entity.Appointment
	err := row.Scan(
		&a.ID, &a.ReferenceCode, &a.PatientID, &a.ServiceCode, &a.Mode,
		&a.PreferredDate, &a.PreferredTime, &a.AlternateDate, &a.AlternateTime,
		&a.AppointmentDate, &a.AppointmentTime, &a.Status,
		&a.FirstName, &a.LastName, &a.Email, &a.Phone, &a.DateOfBirth, &a.Gender,
		&a.Address, &a.City, &a.State, &a.ZipCode,
		&a.ReasonForVisit, &a.Symptoms, &a.CurrentMedications, &a.Allergies,
		&a.HasInsurance, &a.InsuranceProvider, &a.InsurancePolicyNumber, &a.SubscriberName,
		&a.EmergencyContactName, &a.EmergencyContactPhone,
		&a.TermsAccepted, &a.HipaaConsent, &a.ConsentToTreatment, &a.PrivacyPolicy,
		&a.AdminNotes, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *appointmentRepository) Create(ctx context.Context, appt *entity.Appointment) error {
	query := `
		INSERT INTO appointments (` + appointmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		        $11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
		        $21, $22, $23, $24, $25, $26, $27, $28, $29, $30,
		        $31, $32, $33, $34, $35, $36, $37, $38, $39)
	`

	_, err := r.db.Exec(ctx, query,
		appt.ID, appt.ReferenceCode, appt.PatientID, appt.ServiceCode, appt.Mode,
		appt.PreferredDate, appt.PreferredTime, appt.AlternateDate, appt.AlternateTime,
		appt.AppointmentDate, appt.AppointmentTime, appt.Status,
		appt.FirstName, appt.LastName, appt.Email, appt.Phone, appt.DateOfBirth, appt.Gender,
		appt.Address, appt.City, appt.State, appt.ZipCode,
		appt.ReasonForVisit, appt.Symptoms, appt.CurrentMedications, appt.Allergies,
		appt.HasInsurance, appt.InsuranceProvider, appt.InsurancePolicyNumber, appt.SubscriberName,
		appt.EmergencyContactName, appt.EmergencyContactPhone,
		appt.TermsAccepted, appt.HipaaConsent, appt.ConsentToTreatment, appt.PrivacyPolicy,
		appt.AdminNotes, appt.CreatedAt, appt.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create appointment",
			zap.Error(err),
			zap.String("reference_code", appt.ReferenceCode),
			zap.String("email", appt.Email),
		)
		return fmt.Errorf("create appointment %s: %w", appt.ReferenceCode, err)
	}

	return nil
}

func (r *appointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`

	appt, err := scanAppointment(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find appointment by ID",
			zap.Error(err),
			zap.String("appointment_id", id.String()),
		)
		return nil, fmt.Errorf("find appointment by ID %s: %w", id.String(), err)
	}

	return appt, nil
}

func (r *appointmentRepository) FindPendingDuplicate(ctx context.Context, email, serviceCode, date, timeOfDay string) (*entity.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE email = $1 AND service_code = $2
		  AND preferred_date = $3 AND preferred_time = $4
		  AND status = 'pending'
		ORDER BY created_at DESC
		LIMIT 1
	`

	appt, err := scanAppointment(r.db.QueryRow(ctx, query, email, serviceCode, date, timeOfDay))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to check duplicate submission",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("check duplicate submission for %s: %w", email, err)
	}

	return appt, nil
}

func buildAppointmentWhere(filter AppointmentFilter) (string, []any) {
	var conds []string
	var args []any

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.Status != "" {
		add("status = $%d", filter.Status)
	}
	if filter.PatientID != nil {
		add("patient_id = $%d", *filter.PatientID)
	}
	if filter.DateFrom != "" {
		add("appointment_date >= $%d", filter.DateFrom)
	}
	if filter.DateTo != "" {
		add("appointment_date <= $%d", filter.DateTo)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern)
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(first_name ILIKE $%d OR last_name ILIKE $%d OR email ILIKE $%d OR reason_for_visit ILIKE $%d)",
			n, n, n, n))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *appointmentRepository) List(ctx context.Context, filter AppointmentFilter) ([]*entity.Appointment, error) {
	where, args := buildAppointmentWhere(filter)

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	args = append(args, limit, filter.Offset)

	query := `SELECT ` + appointmentColumns + ` FROM appointments` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list appointments",
			zap.Error(err),
			zap.String("status", string(filter.Status)),
			zap.String("search", filter.Search),
		)
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()

	var appts []*entity.Appointment
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			r.log.Error("Failed to scan appointment row", zap.Error(err))
			return nil, fmt.Errorf("scan appointment row: %w", err)
		}
		appts = append(appts, appt)
	}

	return appts, nil
}

func (r *appointmentRepository) Count(ctx context.Context, filter AppointmentFilter) (int64, error) {
	where, args := buildAppointmentWhere(filter)
	query := `SELECT COUNT(*) FROM appointments` + where

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count appointments", zap.Error(err))
		return 0, fmt.Errorf("count appointments: %w", err)
	}

	return count, nil
}

func (r *appointmentRepository) CountByStatusForPatient(ctx context.Context, patientID uuid.UUID) (map[entity.AppointmentStatus]int64, error) {
	query := `
		SELECT status, COUNT(*)
		FROM appointments
		WHERE patient_id = $1
		GROUP BY status
	`

	rows, err := r.db.Query(ctx, query, patientID)
	if err != nil {
		r.log.Error("Failed to count appointments by status",
			zap.Error(err),
			zap.String("patient_id", patientID.String()),
		)
		return nil, fmt.Errorf("count appointments by status for patient %s: %w", patientID.String(), err)
	}
	defer rows.Close()

	counts := make(map[entity.AppointmentStatus]int64)
	for rows.Next() {
		var status entity.AppointmentStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			r.log.Error("Failed to scan status count row", zap.Error(err))
			return nil, fmt.Errorf("scan status count row: %w", err)
		}
		counts[status] = count
	}

	return counts, nil
}

func (r *appointmentRepository) UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to entity.AppointmentStatus) (bool, error) {
	query := `
		UPDATE appointments
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2
	`

	result, err := r.db.Exec(ctx, query, id, from, to)
	if err != nil {
		r.log.Error("Failed to update appointment status",
			zap.Error(err),
			zap.String("appointment_id", id.String()),
			zap.String("from", string(from)),
			zap.String("to", string(to)),
		)
		return false, fmt.Errorf("update appointment %s status %s -> %s: %w",
			id.String(), string(from), string(to), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *appointmentRepository) RescheduleIf(ctx context.Context, id uuid.UUID, newDate, newTime string, from, to entity.AppointmentStatus) (bool, error) {
	query := `
		UPDATE appointments
		SET appointment_date = $4, appointment_time = $5, status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2
	`

	result, err := r.db.Exec(ctx, query, id, from, to, newDate, newTime)
	if err != nil {
		r.log.Error("Failed to reschedule appointment",
			zap.Error(err),
			zap.String("appointment_id", id.String()),
			zap.String("new_date", newDate),
			zap.String("new_time", newTime),
		)
		return false, fmt.Errorf("reschedule appointment %s: %w", id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *appointmentRepository) UpdateAdminNotes(ctx context.Context, id uuid.UUID, notes string) error {
	query := `UPDATE appointments SET admin_notes = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, notes)
	if err != nil {
		r.log.Error("Failed to update admin notes",
			zap.Error(err),
			zap.String("appointment_id", id.String()),
		)
		return fmt.Errorf("update admin notes for %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("appointment %s not found", id.String())
	}

	return nil
}

func (r *appointmentRepository) DeleteByPatient(ctx context.Context, patientID uuid.UUID) error {
	query := `DELETE FROM appointments WHERE patient_id = $1`

	_, err := r.db.Exec(ctx, query, patientID)
	if err != nil {
		r.log.Error("Failed to delete appointments for patient",
			zap.Error(err),
			zap.String("patient_id", patientID.String()),
		)
		return fmt.Errorf("delete appointments for patient %s: %w", patientID.String(), err)
	}

	return nil
}
