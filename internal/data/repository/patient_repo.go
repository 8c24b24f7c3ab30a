package repository

import (
	"context"
	"fmt"

	"github.com/pellyjosh/psychiatrist-sub000/internal/data/entity"
	"github.com/pellyjosh/psychiatrist-sub000/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PatientRepository interface {
	Create(ctx context.Context, patient *entity.Patient) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Patient, error)
	FindByEmail(ctx context.Context, email string) (*entity.Patient, error)
	Update(ctx context.Context, patient *entity.Patient) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type patientRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPatientRepository(db database.PgxIface, log *zap.Logger) PatientRepository {
	return &patientRepository{
		db:  db,
		log: log.With(zap.String("repository", "patient")),
	}
}

const patientColumns = `id, first_name, last_name, email, password, phone,
	date_of_birth, role, is_active, created_at, updated_at`

func scanPatient(row pgx.Row) (*entity.Patient, error) {
	var p entity.Patient
	err := row.Scan(
		&p.ID, &p.FirstName, &p.LastName, &p.Email, &p.PasswordHash, &p.Phone,
		&p.DateOfBirth, &p.Role, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *patientRepository) Create(ctx context.Context, patient *entity.Patient) error {
	query := `
		INSERT INTO patients (` + patientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		patient.ID, patient.FirstName, patient.LastName, patient.Email,
		patient.PasswordHash, patient.Phone, patient.DateOfBirth,
		patient.Role, patient.IsActive, patient.CreatedAt, patient.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create patient",
			zap.Error(err),
			zap.String("email", patient.Email),
		)
		return fmt.Errorf("create patient %s: %w", patient.Email, err)
	}

	return nil
}

func (r *patientRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM patients WHERE id = $1 AND deleted_at IS NULL`

	patient, err := scanPatient(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find patient by ID",
			zap.Error(err),
			zap.String("patient_id", id.String()),
		)
		return nil, fmt.Errorf("find patient by ID %s: %w", id.String(), err)
	}

	return patient, nil
}

func (r *patientRepository) FindByEmail(ctx context.Context, email string) (*entity.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM patients WHERE LOWER(email) = LOWER($1) AND deleted_at IS NULL`

	patient, err := scanPatient(r.db.QueryRow(ctx, query, email))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find patient by email",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find patient by email %s: %w", email, err)
	}

	return patient, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *entity.Patient) error {
	query := `
		UPDATE patients
		SET first_name = $2, last_name = $3, email = $4, password = $5,
		    phone = $6, date_of_birth = $7, role = $8, is_active = $9, updated_at = $10
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		patient.ID, patient.FirstName, patient.LastName, patient.Email,
		patient.PasswordHash, patient.Phone, patient.DateOfBirth,
		patient.Role, patient.IsActive, patient.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update patient",
			zap.Error(err),
			zap.String("patient_id", patient.ID.String()),
		)
		return fmt.Errorf("update patient %s: %w", patient.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("patient %s not found", patient.ID.String())
	}

	return nil
}

func (r *patientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM patients WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete patient",
			zap.Error(err),
			zap.String("patient_id", id.String()),
		)
		return fmt.Errorf("delete patient %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("patient %s not found", id.String())
	}

	r.log.Info("Patient deleted", zap.String("patient_id", id.String()))
	return nil
}
