package repository

import (
	"context"
	"fmt"

	"github.com/pellyjosh/psychiatrist-sub000/internal/data/entity"
	"github.com/pellyjosh/psychiatrist-sub000/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ActivityRepository deliberately has no update or delete methods;
// the audit trail is append-only.
type ActivityRepository interface {
	Create(ctx context.Context, activity *entity.AppointmentActivity) error
	FindByAppointmentID(ctx context.Context, appointmentID uuid.UUID) ([]*entity.AppointmentActivity, error)
}

type activityRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewActivityRepository(db database.PgxIface, log *zap.Logger) ActivityRepository {
	return &activityRepository{
		db:  db,
		log: log.With(zap.String("repository", "activity")),
	}
}

func (r *activityRepository) Create(ctx context.Context, activity *entity.AppointmentActivity) error {
	query := `
		INSERT INTO appointment_activities (id, appointment_id, actor_id, action,
		                                    from_status, to_status, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		activity.ID,
		activity.AppointmentID,
		activity.ActorID,
		activity.Action,
		activity.FromStatus,
		activity.ToStatus,
		activity.Metadata,
		activity.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create activity",
			zap.Error(err),
			zap.String("appointment_id", activity.AppointmentID.String()),
			zap.String("action", string(activity.Action)),
		)
		return fmt.Errorf("create activity %s for appointment %s: %w",
			string(activity.Action), activity.AppointmentID.String(), err)
	}

	return nil
}

func (r *activityRepository) FindByAppointmentID(ctx context.Context, appointmentID uuid.UUID) ([]*entity.AppointmentActivity, error) {
	query := `
		SELECT id, appointment_id, actor_id, action, from_status, to_status, metadata, created_at
		FROM appointment_activities
		WHERE appointment_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, appointmentID)
	if err != nil {
		r.log.Error("Failed to find activities by appointment ID",
			zap.Error(err),
			zap.String("appointment_id", appointmentID.String()),
		)
		return nil, fmt.Errorf("find activities for appointment %s: %w", appointmentID.String(), err)
	}
	defer rows.Close()

	var activities []*entity.AppointmentActivity
	for rows.Next() {
		var activity entity.AppointmentActivity
		err := rows.Scan(
			&activity.ID,
			&activity.AppointmentID,
			&activity.ActorID,
			&activity.Action,
			&activity.FromStatus,
			&activity.ToStatus,
			&activity.Metadata,
			&activity.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan activity row", zap.Error(err))
			return nil, fmt.Errorf("scan activity row: %w", err)
		}
		activities = append(activities, &activity)
	}

	return activities, nil
}
