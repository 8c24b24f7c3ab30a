package usecase

import (
	"fmt"

	"github.com/pellyjosh/psychiatrist-sub000/internal/data/entity"
	"github.com/pellyjosh/psychiatrist-sub000/internal/wizard"
)

// InvalidTransitionError rejects an action against an appointment whose
// current status is not a compatible source state. The current status is
// included so the caller can resynchronize its view.
type InvalidTransitionError struct {
	Action  entity.ActivityAction
	Current entity.AppointmentStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s appointment in status %s", e.Action, e.Current)
}

// ConflictError reports that a concurrent transition won the race. The caller
// should refetch and retry deliberately; nothing is retried automatically.
type ConflictError struct {
	Action  entity.ActivityAction
	Current entity.AppointmentStatus
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("appointment changed concurrently during %s, current status is %s", e.Action, e.Current)
}

// FieldValidationError carries per-field intake failures so the wizard can
// surface them next to each input.
type FieldValidationError struct {
	Fields wizard.FieldErrors
}

func (e *FieldValidationError) Error() string {
	return "validation failed: " + e.Fields.Error()
}
