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

type ResourceFilter struct {
	Category string
	Tag      string
	Type     entity.ResourceType
	Limit    int
	Offset   int
}

type ResourceRepository interface {
	Create(ctx context.Context, res *entity.Resource) error
	Update(ctx context.Context, res *entity.Resource) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Resource, error)
	ListPublished(ctx context.Context, filter ResourceFilter) ([]*entity.Resource, error)
	CountPublished(ctx context.Context, filter ResourceFilter) (int64, error)
	SetPublished(ctx context.Context, id uuid.UUID, published bool) error
	IncrementViews(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type resourceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewResourceRepository(db database.PgxIface, log *zap.Logger) ResourceRepository {
	return &resourceRepository{
		db:  db,
		log: log.With(zap.String("repository", "resource")),
	}
}

const resourceColumns = `id, type, title, category, content, url, tags,
	is_published, view_count, created_by, created_at, updated_at`

func scanResource(row pgx.Row) (*entity.Resource, error) {
	var res entity.Resource
	err := row.Scan(
		&res.ID, &res.Type, &res.Title, &res.Category, &res.Content, &res.URL,
		&res.Tags, &res.IsPublished, &res.ViewCount, &res.CreatedBy,
		&res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *resourceRepository) Create(ctx context.Context, res *entity.Resource) error {
	query := `
		INSERT INTO resources (` + resourceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.Exec(ctx, query,
		res.ID, res.Type, res.Title, res.Category, res.Content, res.URL,
		res.Tags, res.IsPublished, res.ViewCount, res.CreatedBy,
		res.CreatedAt, res.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create resource",
			zap.Error(err),
			zap.String("title", res.Title),
		)
		return fmt.Errorf("create resource %s: %w", res.Title, err)
	}

	return nil
}

func (r *resourceRepository) Update(ctx context.Context, res *entity.Resource) error {
	query := `
		UPDATE resources
		SET type = $2, title = $3, category = $4, content = $5, url = $6,
		    tags = $7, is_published = $8, updated_at = $9
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		res.ID, res.Type, res.Title, res.Category, res.Content, res.URL,
		res.Tags, res.IsPublished, res.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update resource",
			zap.Error(err),
			zap.String("resource_id", res.ID.String()),
		)
		return fmt.Errorf("update resource %s: %w", res.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("resource %s not found", res.ID.String())
	}

	return nil
}

func (r *resourceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources WHERE id = $1`

	res, err := scanResource(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find resource by ID",
			zap.Error(err),
			zap.String("resource_id", id.String()),
		)
		return nil, fmt.Errorf("find resource by ID %s: %w", id.String(), err)
	}

	return res, nil
}

func buildResourceWhere(filter ResourceFilter) (string, []any) {
	conds := []string{"is_published = true"}
	var args []any

	if filter.Category != "" {
		args = append(args, filter.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Tag != "" {
		args = append(args, filter.Tag)
		conds = append(conds, fmt.Sprintf("$%d = ANY(tags)", len(args)))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		conds = append(conds, fmt.Sprintf("type = $%d", len(args)))
	}

	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *resourceRepository) ListPublished(ctx context.Context, filter ResourceFilter) ([]*entity.Resource, error) {
	where, args := buildResourceWhere(filter)

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	args = append(args, limit, filter.Offset)

	query := `SELECT ` + resourceColumns + ` FROM resources` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list published resources",
			zap.Error(err),
			zap.String("category", filter.Category),
			zap.String("tag", filter.Tag),
		)
		return nil, fmt.Errorf("list published resources: %w", err)
	}
	defer rows.Close()

	var resources []*entity.Resource
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			r.log.Error("Failed to scan resource row", zap.Error(err))
			return nil, fmt.Errorf("scan resource row: %w", err)
		}
		resources = append(resources, res)
	}

	return resources, nil
}

func (r *resourceRepository) CountPublished(ctx context.Context, filter ResourceFilter) (int64, error) {
	where, args := buildResourceWhere(filter)
	query := `SELECT COUNT(*) FROM resources` + where

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count published resources", zap.Error(err))
		return 0, fmt.Errorf("count published resources: %w", err)
	}

	return count, nil
}

func (r *resourceRepository) SetPublished(ctx context.Context, id uuid.UUID, published bool) error {
	query := `UPDATE resources SET is_published = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, published)
	if err != nil {
		r.log.Error("Failed to set resource publish flag",
			zap.Error(err),
			zap.String("resource_id", id.String()),
		)
		return fmt.Errorf("set publish flag for resource %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("resource %s not found", id.String())
	}

	return nil
}

func (r *resourceRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE resources SET view_count = view_count + 1 WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to increment resource views",
			zap.Error(err),
			zap.String("resource_id", id.String()),
		)
		return fmt.Errorf("increment views for resource %s: %w", id.String(), err)
	}

	return nil
}

func (r *resourceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM resources WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete resource",
			zap.Error(err),
			zap.String("resource_id", id.String()),
		)
		return fmt.Errorf("delete resource %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("resource %s not found", id.String())
	}

	return nil
}
