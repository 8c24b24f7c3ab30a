package entity

import (
	"encoding/json"

	"github.com/google/uuid"
)

type ActivityAction string

const (
	ActivityActionApprove    ActivityAction = "approve"
	ActivityActionDecline    ActivityAction = "decline"
	ActivityActionReschedule ActivityAction = "reschedule"
	ActivityActionCancel     ActivityAction = "cancel"
	ActivityActionComplete   ActivityAction = "complete"
)

// AppointmentActivity is one append-only audit row per status transition.
// Rows are never updated or deleted after creation.
type AppointmentActivity struct {
	BaseSimple
	AppointmentID uuid.UUID         `db:"appointment_id"`
	ActorID       *uuid.UUID        `db:"actor_id"` // nil when system-initiated or actor deleted
	Action        ActivityAction    `db:"action"`
	FromStatus    AppointmentStatus `db:"from_status"`
	ToStatus      AppointmentStatus `db:"to_status"`
	Metadata      json.RawMessage   `db:"metadata"`
}
