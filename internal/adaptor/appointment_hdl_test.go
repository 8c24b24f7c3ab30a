package adaptor

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pellyjosh/psychiatrist-sub000/internal/data/entity"
	"github.com/pellyjosh/psychiatrist-sub000/internal/dto/request"
	"github.com/pellyjosh/psychiatrist-sub000/internal/dto/response"
	"github.com/pellyjosh/psychiatrist-sub000/internal/usecase"
	"github.com/pellyjosh/psychiatrist-sub000/internal/wizard"
	"github.com/pellyjosh/psychiatrist-sub000/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubAppointmentService struct {
	usecase.AppointmentService

	createFn  func(ctx context.Context, req *request.CreateAppointmentRequest) (*response.AppointmentResponse, error)
	approveFn func(ctx context.Context, actor usecase.Actor, id string, req *request.TransitionRequest) (*response.AppointmentResponse, error)
}

func (s *stubAppointmentService) Create(ctx context.Context, req *request.CreateAppointmentRequest) (*response.AppointmentResponse, error) {
	return s.createFn(ctx, req)
}

func (s *stubAppointmentService) Approve(ctx context.Context, actor usecase.Actor, id string, req *request.TransitionRequest) (*response.AppointmentResponse, error) {
	return s.approveFn(ctx, actor, id, req)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) utils.Response {
	t.Helper()
	var resp utils.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestCreateHandlerReturns201(t *testing.T) {
	svc := &stubAppointmentService{
		createFn: func(ctx context.Context, req *request.CreateAppointmentRequest) (*response.AppointmentResponse, error) {
			return &response.AppointmentResponse{
				ID:     uuid.NewString(),
				Status: entity.AppointmentStatusPending,
			}, nil
		},
	}
	h := NewAppointmentHandler(svc, zap.NewNop())

	body, _ := json.Marshal(map[string]any{"service": "initial-eval"})
	req := httptest.NewRequest(http.MethodPost, "/api/appointments", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.True(t, resp.Status)
}

func TestCreateHandlerRejectsMalformedJSON(t *testing.T) {
	h := NewAppointmentHandler(&stubAppointmentService{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/appointments", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateHandlerValidationErrorIs422(t *testing.T) {
	svc := &stubAppointmentService{
		createFn: func(ctx context.Context, req *request.CreateAppointmentRequest) (*response.AppointmentResponse, error) {
			return nil, &usecase.FieldValidationError{
				Fields: wizard.FieldErrors{"email": "invalid email format"},
			}
		},
	}
	h := NewAppointmentHandler(svc, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/appointments", bytes.NewReader([]byte("{}")))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.False(t, resp.Status)
	assert.NotNil(t, resp.Errors)
}

func approveRequest(id string) *http.Request {
	req := httptest.NewRequest(http.MethodPatch, "/api/admin/appointments/"+id+"/approve", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestApproveHandlerConflictIs409WithCurrentStatus(t *testing.T) {
	svc := &stubAppointmentService{
		approveFn: func(ctx context.Context, actor usecase.Actor, id string, req *request.TransitionRequest) (*response.AppointmentResponse, error) {
			return nil, &usecase.ConflictError{
				Action:  entity.ActivityActionApprove,
				Current: entity.AppointmentStatusCancelled,
			}
		},
	}
	h := NewAppointmentHandler(svc, zap.NewNop())

	rec := httptest.NewRecorder()
	h.Approve(rec, approveRequest(uuid.NewString()))

	assert.Equal(t, http.StatusConflict, rec.Code)

	resp := decodeEnvelope(t, rec)
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "cancelled", data["current_status"], "conflict carries the fresh status")
}

func TestApproveHandlerInvalidTransitionIs409(t *testing.T) {
	svc := &stubAppointmentService{
		approveFn: func(ctx context.Context, actor usecase.Actor, id string, req *request.TransitionRequest) (*response.AppointmentResponse, error) {
			return nil, &usecase.InvalidTransitionError{
				Action:  entity.ActivityActionApprove,
				Current: entity.AppointmentStatusCompleted,
			}
		},
	}
	h := NewAppointmentHandler(svc, zap.NewNop())

	rec := httptest.NewRecorder()
	h.Approve(rec, approveRequest(uuid.NewString()))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestApproveHandlerNotFoundIs404(t *testing.T) {
	svc := &stubAppointmentService{
		approveFn: func(ctx context.Context, actor usecase.Actor, id string, req *request.TransitionRequest) (*response.AppointmentResponse, error) {
			return nil, assertNotFoundErr{}
		},
	}
	h := NewAppointmentHandler(svc, zap.NewNop())

	rec := httptest.NewRecorder()
	h.Approve(rec, approveRequest(uuid.NewString()))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

type assertNotFoundErr struct{}

func (assertNotFoundErr) Error() string { return "appointment abc not found" }
