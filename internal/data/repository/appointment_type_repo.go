package repository

import (
	"context"
	"fmt"

	"github.com/pellyjosh/psychiatrist-sub000/internal/data/entity"
	"github.com/pellyjosh/psychiatrist-sub000/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type AppointmentTypeRepository interface {
	Create(ctx context.Context, at *entity.AppointmentType) error
	Update(ctx context.Context, at *entity.AppointmentType) error
	FindByCode(ctx context.Context, code string) (*entity.AppointmentType, error)
	FindAllActive(ctx context.Context) ([]*entity.AppointmentType, error)
}

type appointmentTypeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAppointmentTypeRepository(db database.PgxIface, log *zap.Logger) AppointmentTypeRepository {
	return &appointmentTypeRepository{
		db:  db,
		log: log.With(zap.String("repository", "appointment_type")),
	}
}

const appointmentTypeColumns = `id, code, name, description, is_active, sort_order, created_at, updated_at`

func scanAppointmentType(row pgx.Row) (*entity.AppointmentType, error) {
	var at entity.AppointmentType
	err := row.Scan(
		&at.ID, &at.Code, &at.Name, &at.Description,
		&at.IsActive, &at.SortOrder, &at.CreatedAt, &at.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &at, nil
}

func (r *appointmentTypeRepository) Create(ctx context.Context, at *entity.AppointmentType) error {
	query := `
		INSERT INTO appointment_types (` + appointmentTypeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		at.ID, at.Code, at.Name, at.Description,
		at.IsActive, at.SortOrder, at.CreatedAt, at.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create appointment type",
			zap.Error(err),
			zap.String("code", at.Code),
		)
		return fmt.Errorf("create appointment type %s: %w", at.Code, err)
	}

	return nil
}

func (r *appointmentTypeRepository) Update(ctx context.Context, at *entity.AppointmentType) error {
	query := `
		UPDATE appointment_types
		SET name = $2, description = $3, is_active = $4, sort_order = $5, updated_at = $6
		WHERE code = $1
	`

	result, err := r.db.Exec(ctx, query,
		at.Code, at.Name, at.Description, at.IsActive, at.SortOrder, at.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update appointment type",
			zap.Error(err),
			zap.String("code", at.Code),
		)
		return fmt.Errorf("update appointment type %s: %w", at.Code, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("appointment type %s not found", at.Code)
	}

	return nil
}

func (r *appointmentTypeRepository) FindByCode(ctx context.Context, code string) (*entity.AppointmentType, error) {
	query := `SELECT ` + appointmentTypeColumns + ` FROM appointment_types WHERE code = $1`

	at, err := scanAppointmentType(r.db.QueryRow(ctx, query, code))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find appointment type by code",
			zap.Error(err),
			zap.String("code", code),
		)
		return nil, fmt.Errorf("find appointment type by code %s: %w", code, err)
	}

	return at, nil
}

func (r *appointmentTypeRepository) FindAllActive(ctx context.Context) ([]*entity.AppointmentType, error) {
	query := `SELECT ` + appointmentTypeColumns + ` FROM appointment_types WHERE is_active = true ORDER BY sort_order, name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list appointment types", zap.Error(err))
		return nil, fmt.Errorf("list appointment types: %w", err)
	}
	defer rows.Close()

	var types []*entity.AppointmentType
	for rows.Next() {
		at, err := scanAppointmentType(rows)
		if err != nil {
			r.log.Error("Failed to scan appointment type row", zap.Error(err))
			return nil, fmt.Errorf("scan appointment type row: %w", err)
		}
		types = append(types, at)
	}

	return types, nil
}
