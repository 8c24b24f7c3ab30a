package middleware

import (
	"net/http"
	"strings"

	"github.com/pellyjosh/psychiatrist-sub000/internal/data/entity"
	"github.com/pellyjosh/psychiatrist-sub000/internal/data/repository"
	"github.com/pellyjosh/psychiatrist-sub000/pkg/utils"

	"go.uber.org/zap"
)

// AuthSession validates the bearer token against stored sessions and puts the
// patient identity on the request context.
func AuthSession(sessions repository.SessionRepository, patients repository.PatientRepository, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				utils.ResponseUnauthorized(w, "Missing authorization header")
				return
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				utils.ResponseUnauthorized(w, "Invalid authorization header")
				return
			}
			token := strings.TrimSpace(parts[1])

			session, err := sessions.FindValidSession(r.Context(), token)
			if err != nil {
				log.Error("Failed to validate session", zap.Error(err))
				utils.ResponseInternalError(w, "Failed to validate session")
				return
			}
			if session == nil {
				utils.ResponseUnauthorized(w, "Invalid or expired session")
				return
			}

			patient, err := patients.FindByID(r.Context(), session.PatientID)
			if err != nil {
				log.Error("Failed to load session patient", zap.Error(err))
				utils.ResponseInternalError(w, "Failed to validate session")
				return
			}
			if patient == nil {
				utils.ResponseUnauthorized(w, "Invalid or expired session")
				return
			}

			ctx := utils.SetUserContext(r.Context(), patient.ID, string(patient.Role))
			ctx = utils.SetTokenContext(ctx, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Admin requires an authenticated admin. Must run after AuthSession.
func Admin(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := utils.GetRoleFromContext(r.Context())
			if !ok || role != string(entity.RoleAdmin) {
				userID, _ := utils.GetUserIDFromContext(r.Context())
				log.Warn("Admin access denied",
					zap.String("user_id", userID.String()),
					zap.String("path", r.URL.Path),
				)
				utils.ResponseForbidden(w, "Admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
