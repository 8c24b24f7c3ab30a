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

type ResourceService interface {
	List(ctx context.Context, filter repository.ResourceFilter, page, perPage int) (*response.PaginatedResponse[response.ResourceResponse], error)
	Get(ctx context.Context, resourceID string) (*response.ResourceResponse, error)
	Create(ctx context.Context, actor Actor, req *request.CreateResourceRequest) (*response.ResourceResponse, error)
	Update(ctx context.Context, actor Actor, resourceID string, req *request.UpdateResourceRequest) (*response.ResourceResponse, error)
	Delete(ctx context.Context, actor Actor, resourceID string) error
}

type resourceService struct {
	repo *repository.Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewResourceService(repo *repository.Repository, log *zap.Logger) ResourceService {
	return &resourceService{
		repo: repo,
		log:  log.With(zap.String("service", "resource")),
		now:  time.Now,
	}
}

func (s *resourceService) List(ctx context.Context, filter repository.ResourceFilter, page, perPage int) (*response.PaginatedResponse[response.ResourceResponse], error) {
	resources, err := s.repo.Resource.ListPublished(ctx, filter)
	if err != nil {
		s.log.Error("Failed to list resources", zap.Error(err))
		return nil, fmt.Errorf("list resources: %w", err)
	}

	total, err := s.repo.Resource.CountPublished(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count resources", zap.Error(err))
		return nil, fmt.Errorf("count resources: %w", err)
	}

	responses := make([]response.ResourceResponse, len(resources))
	for i, res := range resources {
		responses[i] = response.ResourceToResponse(res)
	}

	return response.NewPaginatedResponse(responses, page, perPage, total), nil
}

// Get returns a published resource and counts the view. The counter update is
// fire-and-forget.
func (s *resourceService) Get(ctx context.Context, resourceID string) (*response.ResourceResponse, error) {
	id, err := uuid.Parse(resourceID)
	if err != nil {
		return nil, fmt.Errorf("invalid resource ID format %s: %w", resourceID, err)
	}

	res, err := s.repo.Resource.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load resource %s: %w", resourceID, err)
	}
	if res == nil || !res.IsPublished {
		return nil, fmt.Errorf("resource %s not found", resourceID)
	}

	if err := s.repo.Resource.IncrementViews(ctx, id); err != nil {
		s.log.Warn("Failed to increment resource views", zap.Error(err), zap.String("resource_id", resourceID))
	} else {
		res.ViewCount++
	}

	resp := response.ResourceToResponse(res)
	return &resp, nil
}

func (s *resourceService) Create(ctx context.Context, actor Actor, req *request.CreateResourceRequest) (*response.ResourceResponse, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("unauthorized to manage resources")
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &FieldValidationError{Fields: wizard.FieldErrors(errs)}
	}
	if entity.ResourceType(req.Type) == entity.ResourceTypeLink && req.URL == nil {
		return nil, fmt.Errorf("invalid resource: link resources need a url")
	}

	now := s.now()
	res := &entity.Resource{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Type:        entity.ResourceType(req.Type),
		Title:       req.Title,
		Category:    req.Category,
		Content:     req.Content,
		URL:         req.URL,
		Tags:        req.Tags,
		IsPublished: req.Publish,
		CreatedBy:   actor.ID,
	}

	if err := s.repo.Resource.Create(ctx, res); err != nil {
		s.log.Error("Failed to create resource", zap.Error(err), zap.String("title", req.Title))
		return nil, fmt.Errorf("create resource: %w", err)
	}

	s.log.Info("Resource created",
		zap.String("resource_id", res.ID.String()),
		zap.String("type", string(res.Type)),
		zap.String("title", res.Title),
	)

	resp := response.ResourceToResponse(res)
	return &resp, nil
}

func (s *resourceService) Update(ctx context.Context, actor Actor, resourceID string, req *request.UpdateResourceRequest) (*response.ResourceResponse, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("unauthorized to manage resources")
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &FieldValidationError{Fields: wizard.FieldErrors(errs)}
	}

	id, err := uuid.Parse(resourceID)
	if err != nil {
		return nil, fmt.Errorf("invalid resource ID format %s: %w", resourceID, err)
	}

	res, err := s.repo.Resource.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load resource %s: %w", resourceID, err)
	}
	if res == nil {
		return nil, fmt.Errorf("resource %s not found", resourceID)
	}

	res.Type = entity.ResourceType(req.Type)
	res.Title = req.Title
	res.Category = req.Category
	res.Content = req.Content
	res.URL = req.URL
	res.Tags = req.Tags
	res.IsPublished = req.Publish
	res.UpdatedAt = s.now()

	if err := s.repo.Resource.Update(ctx, res); err != nil {
		s.log.Error("Failed to update resource", zap.Error(err), zap.String("resource_id", resourceID))
		return nil, fmt.Errorf("update resource %s: %w", resourceID, err)
	}

	resp := response.ResourceToResponse(res)
	return &resp, nil
}

func (s *resourceService) Delete(ctx context.Context, actor Actor, resourceID string) error {
	if !actor.IsAdmin() {
		return fmt.Errorf("unauthorized to manage resources")
	}

	id, err := uuid.Parse(resourceID)
	if err != nil {
		return fmt.Errorf("invalid resource ID format %s: %w", resourceID, err)
	}

	if err := s.repo.Resource.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete resource", zap.Error(err), zap.String("resource_id", resourceID))
		return fmt.Errorf("delete resource %s: %w", resourceID, err)
	}

	s.log.Info("Resource deleted", zap.String("resource_id", resourceID))
	return nil
}
