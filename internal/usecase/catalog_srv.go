package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/pellyjosh/psychiatrist-sub000/internal/data/entity"
	"github.com/pellyjosh/psychiatrist-sub000/internal/data/repository"
	"github.com/pellyjosh/psychiatrist-sub000/internal/dto/request"
	"github.com/pellyjosh/psychiatrist-sub000/internal/dto/response"
	"github.com/pellyjosh/psychiatrist-sub000/internal/wizard"
	"github.com/pellyjosh/psychiatrist-sub000/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CatalogService serves the bookable service list and appointment modes that
// drive the first wizard step.
type CatalogService interface {
	ListServices(ctx context.Context, includeInactive bool) ([]response.ServiceResponse, error)
	ListAppointmentTypes(ctx context.Context) ([]response.AppointmentTypeResponse, error)
	UpsertService(ctx context.Context, req *request.UpsertServiceRequest) (*response.ServiceResponse, error)
	UpsertAppointmentType(ctx context.Context, req *request.UpsertAppointmentTypeRequest) (*response.AppointmentTypeResponse, error)
}

type catalogService struct {
	repo *repository.Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewCatalogService(repo *repository.Repository, log *zap.Logger) CatalogService {
	return &catalogService{
		repo: repo,
		log:  log.With(zap.String("service", "catalog")),
		now:  time.Now,
	}
}

func (s *catalogService) ListServices(ctx context.Context, includeInactive bool) ([]response.ServiceResponse, error) {
	var (
		services []*entity.Service
		err      error
	)
	if includeInactive {
		services, err = s.repo.Service.FindAll(ctx)
	} else {
		services, err = s.repo.Service.FindAllActive(ctx)
	}
	if err != nil {
		s.log.Error("Failed to list services", zap.Error(err))
		return nil, fmt.Errorf("list services: %w", err)
	}

	responses := make([]response.ServiceResponse, len(services))
	for i, svc := range services {
		responses[i] = response.ServiceToResponse(svc)
	}
	return responses, nil
}

func (s *catalogService) ListAppointmentTypes(ctx context.Context) ([]response.AppointmentTypeResponse, error) {
	types, err := s.repo.AppointmentType.FindAllActive(ctx)
	if err != nil {
		s.log.Error("Failed to list appointment types", zap.Error(err))
		return nil, fmt.Errorf("list appointment types: %w", err)
	}

	responses := make([]response.AppointmentTypeResponse, len(types))
	for i, at := range types {
		responses[i] = response.AppointmentTypeToResponse(at)
	}
	return responses, nil
}

func (s *catalogService) UpsertService(ctx context.Context, req *request.UpsertServiceRequest) (*response.ServiceResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &FieldValidationError{Fields: wizard.FieldErrors(errs)}
	}

	existing, err := s.repo.Service.FindByCode(ctx, req.Code)
	if err != nil {
		return nil, fmt.Errorf("look up service %s: %w", req.Code, err)
	}

	now := s.now()
	if existing != nil {
		existing.Name = req.Name
		existing.Description = req.Description
		existing.DurationMinutes = req.DurationMinutes
		existing.Price = req.Price
		existing.IsActive = req.IsActive
		existing.SortOrder = req.SortOrder
		existing.UserBookable = req.UserBookable
		existing.UpdatedAt = now

		if err := s.repo.Service.Update(ctx, existing); err != nil {
			s.log.Error("Failed to update service", zap.Error(err), zap.String("code", req.Code))
			return nil, fmt.Errorf("update service %s: %w", req.Code, err)
		}

		resp := response.ServiceToResponse(existing)
		return &resp, nil
	}

	svc := &entity.Service{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Code:            req.Code,
		Name:            req.Name,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		IsActive:        req.IsActive,
		SortOrder:       req.SortOrder,
		UserBookable:    req.UserBookable,
	}

	if err := s.repo.Service.Create(ctx, svc); err != nil {
		s.log.Error("Failed to create service", zap.Error(err), zap.String("code", req.Code))
		return nil, fmt.Errorf("create service %s: %w", req.Code, err)
	}

	s.log.Info("Service created", zap.String("code", svc.Code), zap.String("name", svc.Name))

	resp := response.ServiceToResponse(svc)
	return &resp, nil
}

func (s *catalogService) UpsertAppointmentType(ctx context.Context, req *request.UpsertAppointmentTypeRequest) (*response.AppointmentTypeResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &FieldValidationError{Fields: wizard.FieldErrors(errs)}
	}

	existing, err := s.repo.AppointmentType.FindByCode(ctx, req.Code)
	if err != nil {
		return nil, fmt.Errorf("look up appointment type %s: %w", req.Code, err)
	}

	now := s.now()
	if existing != nil {
		existing.Name = req.Name
		existing.Description = req.Description
		existing.IsActive = req.IsActive
		existing.SortOrder = req.SortOrder
		existing.UpdatedAt = now

		if err := s.repo.AppointmentType.Update(ctx, existing); err != nil {
			s.log.Error("Failed to update appointment type", zap.Error(err), zap.String("code", req.Code))
			return nil, fmt.Errorf("update appointment type %s: %w", req.Code, err)
		}

		resp := response.AppointmentTypeToResponse(existing)
		return &resp, nil
	}

	at := &entity.AppointmentType{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
		SortOrder:   req.SortOrder,
	}

	if err := s.repo.AppointmentType.Create(ctx, at); err != nil {
		s.log.Error("Failed to create appointment type", zap.Error(err), zap.String("code", req.Code))
		return nil, fmt.Errorf("create appointment type %s: %w", req.Code, err)
	}

	resp := response.AppointmentTypeToResponse(at)
	return &resp, nil
}
