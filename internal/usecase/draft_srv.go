package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/pellyjosh/psychiatrist-sub000/internal/dto/request"
	"github.com/pellyjosh/psychiatrist-sub000/internal/dto/response"
	"github.com/pellyjosh/psychiatrist-sub000/internal/wizard"
	"github.com/pellyjosh/psychiatrist-sub000/internal/wizard/draft"
	"github.com/pellyjosh/psychiatrist-sub000/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DraftService syncs in-progress wizard forms for signed-in patients so a
// half-filled intake survives across devices. Anonymous visitors keep their
// draft client-side only.
type DraftService interface {
	Save(ctx context.Context, patientID uuid.UUID, req *request.SaveDraftRequest) (*response.DraftResponse, error)
	Load(ctx context.Context, patientID uuid.UUID) (*response.DraftResponse, error)
	Discard(ctx context.Context, patientID uuid.UUID) error
}

type draftService struct {
	store draft.Store
	log   *zap.Logger
	now   func() time.Time
}

func NewDraftService(store draft.Store, log *zap.Logger) DraftService {
	return &draftService{
		store: store,
		log:   log.With(zap.String("service", "draft")),
		now:   time.Now,
	}
}

func draftKey(patientID uuid.UUID) string {
	return "patient:" + patientID.String()
}

func (s *draftService) Save(ctx context.Context, patientID uuid.UUID, req *request.SaveDraftRequest) (*response.DraftResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &FieldValidationError{Fields: wizard.FieldErrors(errs)}
	}
	if req.Form.IsZero() {
		return nil, fmt.Errorf("invalid draft: form is empty")
	}

	d := draft.Draft{
		Form:    req.Form,
		Step:    wizard.Step(req.Step),
		SavedAt: s.now(),
	}

	if err := s.store.Save(ctx, draftKey(patientID), d); err != nil {
		s.log.Error("Failed to save draft", zap.Error(err), zap.String("patient_id", patientID.String()))
		return nil, fmt.Errorf("save draft: %w", err)
	}

	return &response.DraftResponse{
		Form:    d.Form,
		Step:    int(d.Step),
		SavedAt: d.SavedAt,
	}, nil
}

func (s *draftService) Load(ctx context.Context, patientID uuid.UUID) (*response.DraftResponse, error) {
	d, err := s.store.Load(ctx, draftKey(patientID))
	if err != nil {
		s.log.Error("Failed to load draft", zap.Error(err), zap.String("patient_id", patientID.String()))
		return nil, fmt.Errorf("load draft: %w", err)
	}
	if d == nil {
		return nil, fmt.Errorf("draft not found")
	}

	return &response.DraftResponse{
		Form:    d.Form,
		Step:    int(d.Step),
		SavedAt: d.SavedAt,
	}, nil
}

func (s *draftService) Discard(ctx context.Context, patientID uuid.UUID) error {
	if err := s.store.Clear(ctx, draftKey(patientID)); err != nil {
		s.log.Error("Failed to discard draft", zap.Error(err), zap.String("patient_id", patientID.String()))
		return fmt.Errorf("discard draft: %w", err)
	}
	return nil
}
