package adaptor

import (
	"errors"
	"net/http"
	"strings"

	"github.com/pellyjosh/psychiatrist-sub000/internal/usecase"
	"github.com/pellyjosh/psychiatrist-sub000/pkg/utils"

	"go.uber.org/zap"
)

// writeServiceError maps use case errors to HTTP responses. Typed errors get
// their dedicated status; the rest falls back to message matching the same way
// across handlers.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var (
		conflictErr   *usecase.ConflictError
		invalidErr    *usecase.InvalidTransitionError
		validationErr *usecase.FieldValidationError
	)

	switch {
	case errors.As(err, &conflictErr):
		log.Warn(operation+" failed - state conflict",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, err.Error(), map[string]string{
			"current_status": string(conflictErr.Current),
		})
		return

	case errors.As(err, &invalidErr):
		log.Warn(operation+" failed - invalid transition",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, err.Error(), map[string]string{
			"current_status": string(invalidErr.Current),
		})
		return

	case errors.As(err, &validationErr):
		log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseUnprocessable(w, "Validation failed", validationErr.Fields)
		return
	}

	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "unauthorized"):
		log.Warn(operation+" failed - unauthorized",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseForbidden(w, errMsg)

	case strings.Contains(errMsg, "invalid"),
		strings.Contains(errMsg, "already registered"),
		strings.Contains(errMsg, "cannot"):
		log.Warn("Invalid input for "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
