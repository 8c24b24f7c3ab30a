package repository

import (
	"context"
	"fmt"

	"github.com/pellyjosh/psychiatrist-sub000/internal/data/entity"
	"github.com/pellyjosh/psychiatrist-sub000/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ServiceRepository interface {
	Create(ctx context.Context, svc *entity.Service) error
	Update(ctx context.Context, svc *entity.Service) error
	FindByCode(ctx context.Context, code string) (*entity.Service, error)
	FindAllActive(ctx context.Context) ([]*entity.Service, error)
	FindAll(ctx context.Context) ([]*entity.Service, error)
}

type serviceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewServiceRepository(db database.PgxIface, log *zap.Logger) ServiceRepository {
	return &serviceRepository{
		db:  db,
		log: log.With(zap.String("repository", "service")),
	}
}

const serviceColumns = `id, code, name, description, duration_minutes, price,
	is_active, sort_order, user_bookable, created_at, updated_at`

func scanService(row pgx.Row) (*entity.Service, error) {
	var s entity.Service
	err := row.Scan(
		&s.ID, &s.Code, &s.Name, &s.Description, &s.DurationMinutes, &s.Price,
		&s.IsActive, &s.SortOrder, &s.UserBookable, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *serviceRepository) Create(ctx context.Context, svc *entity.Service) error {
	query := `
		INSERT INTO services (` + serviceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		svc.ID, svc.Code, svc.Name, svc.Description, svc.DurationMinutes, svc.Price,
		svc.IsActive, svc.SortOrder, svc.UserBookable, svc.CreatedAt, svc.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create service",
			zap.Error(err),
			zap.String("code", svc.Code),
		)
		return fmt.Errorf("create service %s: %w", svc.Code, err)
	}

	return nil
}

func (r *serviceRepository) Update(ctx context.Context, svc *entity.Service) error {
	query := `
		UPDATE services
		SET name = $2, description = $3, duration_minutes = $4, price = $5,
		    is_active = $6, sort_order = $7, user_bookable = $8, updated_at = $9
		WHERE code = $1
	`

	result, err := r.db.Exec(ctx, query,
		svc.Code, svc.Name, svc.Description, svc.DurationMinutes, svc.Price,
		svc.IsActive, svc.SortOrder, svc.UserBookable, svc.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update service",
			zap.Error(err),
			zap.String("code", svc.Code),
		)
		return fmt.Errorf("update service %s: %w", svc.Code, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("service %s not found", svc.Code)
	}

	return nil
}

func (r *serviceRepository) FindByCode(ctx context.Context, code string) (*entity.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE code = $1`

	svc, err := scanService(r.db.QueryRow(ctx, query, code))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find service by code",
			zap.Error(err),
			zap.String("code", code),
		)
		return nil, fmt.Errorf("find service by code %s: %w", code, err)
	}

	return svc, nil
}

func (r *serviceRepository) FindAllActive(ctx context.Context) ([]*entity.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE is_active = true ORDER BY sort_order, name`

	return r.queryServices(ctx, query)
}

func (r *serviceRepository) FindAll(ctx context.Context) ([]*entity.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services ORDER BY sort_order, name`

	return r.queryServices(ctx, query)
}

func (r *serviceRepository) queryServices(ctx context.Context, query string) ([]*entity.Service, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list services", zap.Error(err))
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	var services []*entity.Service
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			r.log.Error("Failed to scan service row", zap.Error(err))
			return nil, fmt.Errorf("scan service row: %w", err)
		}
		services = append(services, svc)
	}

	return services, nil
}
