package service

import (
	"context"
	"encoding/json"
	"time"

	"saas-manager-be/internal/dto"
	"saas-manager-be/internal/pkg/logger"
	"saas-manager-be/internal/repository/contract"
	"saas-manager-be/internal/repository/unitofwork"
	adminEvents "saas-manager-be/pkg/admin/events"
	"saas-manager-be/pkg/admin/feature"
	"saas-manager-be/pkg/admin/mapper"

	"github.com/google/uuid"
)

type IFeatureService interface {
	ListFeatures(ctx context.Context, filter dto.FeatureFilter) ([]*dto.FeatureResponse, error)
	GetFeature(ctx context.Context, id uuid.UUID) (*dto.FeatureResponse, error)
	CreateFeature(ctx context.Context, req dto.CreateFeatureRequest) (*dto.FeatureResponse, error)
	UpdateFeature(ctx context.Context, id uuid.UUID, req dto.UpdateFeatureRequest) (*dto.FeatureResponse, error)
	DeleteFeature(ctx context.Context, id uuid.UUID) error
	ActivateFeature(ctx context.Context, id uuid.UUID) (*dto.FeatureResponse, error)
	DeactivateFeature(ctx context.Context, id uuid.UUID) (*dto.FeatureResponse, error)

	AddCustomField(ctx context.Context, featureId uuid.UUID, req dto.CreateCustomFieldRequest) (*dto.CustomFieldResponse, error)
	UpdateCustomField(ctx context.Context, featureId, fieldId uuid.UUID, req dto.UpdateCustomFieldRequest) (*dto.CustomFieldResponse, error)
	DeleteCustomField(ctx context.Context, featureId, fieldId uuid.UUID) error
}

type featureService struct {
	uowFactory       unitofwork.RepositoryFactory
	logger           logger.ILogger
	featureManager   *feature.Manager
	cache            *planCache
	publisherService IPublisherService
	eventPublisher   adminEvents.Publisher
}

func NewFeatureService(
	uowFactory unitofwork.RepositoryFactory,
	logger logger.ILogger,
	featureManager *feature.Manager,
	cache contract.PlanFeatureCache,
	publisherService IPublisherService,
	eventPublisher adminEvents.Publisher,
) IFeatureService {
	return &featureService{
		uowFactory:       uowFactory,
		logger:           logger,
		featureManager:   featureManager,
		cache:            newPlanCache(cache, 0, logger, "FEATURE"),
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
	}
}

func (s *featureService) ListFeatures(ctx context.Context, filter dto.FeatureFilter) ([]*dto.FeatureResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	features, err := s.featureManager.List(ctx, uow, filter)
	if err != nil {
		return nil, err
	}
	return mapper.FeaturesToResponse(features), nil
}

func (s *featureService) GetFeature(ctx context.Context, id uuid.UUID) (*dto.FeatureResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	f, err := s.featureManager.Get(ctx, uow, id)
	if err != nil {
		return nil, err
	}
	return mapper.FeatureToResponse(f), nil
}

func (s *featureService) CreateFeature(ctx context.Context, req dto.CreateFeatureRequest) (*dto.FeatureResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	f, err := s.featureManager.Create(ctx, uow, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("FEATURE", "Feature created", map[string]interface{}{
		"feature_id":    f.Id.String(),
		"key":           f.Key,
		"is_global":     f.IsGlobal,
		"custom_fields": len(f.CustomFields),
	})
	s.catalogChanged(ctx, f.Id, dto.CatalogActionCreated)
	s.eventPublisher.PublishFeatureCreated(ctx, f.Id, f.Key, f.ApplicationId)

	return mapper.FeatureToResponse(f), nil
}

func (s *featureService) UpdateFeature(ctx context.Context, id uuid.UUID, req dto.UpdateFeatureRequest) (*dto.FeatureResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	f, err := s.featureManager.Update(ctx, uow, id, req)
	if err != nil {
		return nil, err
	}

	s.catalogChanged(ctx, f.Id, dto.CatalogActionUpdated)
	s.eventPublisher.PublishFeatureUpdated(ctx, f.Id, f.Key, changedFields(req))

	return mapper.FeatureToResponse(f), nil
}

func (s *featureService) DeleteFeature(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	f, err := s.featureManager.Get(ctx, uow, id)
	if err != nil {
		return err
	}

	result, err := s.featureManager.Delete(ctx, uow, id)
	if err != nil {
		return err
	}

	s.logger.Info("FEATURE", "Feature deleted", map[string]interface{}{
		"feature_id":             id.String(),
		"key":                    f.Key,
		"deleted_configurations": result.Configurations,
		"deleted_values":         result.Values,
	})
	s.catalogChanged(ctx, id, dto.CatalogActionDeleted)
	s.eventPublisher.PublishFeatureDeleted(ctx, id, f.Key, result.Configurations, result.Values)
	return nil
}

func (s *featureService) ActivateFeature(ctx context.Context, id uuid.UUID) (*dto.FeatureResponse, error) {
	return s.setActive(ctx, id, true)
}

func (s *featureService) DeactivateFeature(ctx context.Context, id uuid.UUID) (*dto.FeatureResponse, error) {
	return s.setActive(ctx, id, false)
}

func (s *featureService) setActive(ctx context.Context, id uuid.UUID, active bool) (*dto.FeatureResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	f, err := s.featureManager.SetActive(ctx, uow, id, active)
	if err != nil {
		return nil, err
	}

	s.catalogChanged(ctx, f.Id, dto.CatalogActionUpdated)
	s.eventPublisher.PublishFeatureUpdated(ctx, f.Id, f.Key, []string{"is_active"})
	return mapper.FeatureToResponse(f), nil
}

func (s *featureService) AddCustomField(ctx context.Context, featureId uuid.UUID, req dto.CreateCustomFieldRequest) (*dto.CustomFieldResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	field, err := s.featureManager.AddCustomField(ctx, uow, featureId, req)
	if err != nil {
		return nil, err
	}
	s.catalogChanged(ctx, featureId, dto.CatalogActionFieldChange)
	return mapper.CustomFieldToResponse(field), nil
}

func (s *featureService) UpdateCustomField(ctx context.Context, featureId, fieldId uuid.UUID, req dto.UpdateCustomFieldRequest) (*dto.CustomFieldResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	field, err := s.featureManager.UpdateCustomField(ctx, uow, featureId, fieldId, req)
	if err != nil {
		return nil, err
	}
	s.catalogChanged(ctx, featureId, dto.CatalogActionFieldChange)
	return mapper.CustomFieldToResponse(field), nil
}

func (s *featureService) DeleteCustomField(ctx context.Context, featureId, fieldId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := s.featureManager.DeleteCustomField(ctx, uow, featureId, fieldId); err != nil {
		return err
	}
	s.logger.Info("FEATURE", "Custom field deleted", map[string]interface{}{
		"feature_id": featureId.String(),
		"field_id":   fieldId.String(),
	})
	s.catalogChanged(ctx, featureId, dto.CatalogActionFieldChange)
	return nil
}

// catalogChanged drops every cached plan view before the write returns,
// then tells bus consumers so other caches follow.
func (s *featureService) catalogChanged(ctx context.Context, featureId uuid.UUID, action string) {
	s.cache.invalidateAll(ctx)

	msgJson, err := json.Marshal(dto.CatalogChangedMessage{
		FeatureId:  featureId,
		Action:     action,
		OccurredAt: time.Now(),
	})
	if err != nil {
		return
	}
	if err := s.publisherService.Publish(ctx, msgJson); err != nil {
		s.logger.Error("FEATURE", "Failed to publish catalog change", map[string]interface{}{
			"feature_id": featureId.String(),
			"error":      err.Error(),
		})
	}
}

func changedFields(req dto.UpdateFeatureRequest) []string {
	var changes []string
	if req.Key != nil {
		changes = append(changes, "key")
	}
	if req.Name != nil {
		changes = append(changes, "name")
	}
	if req.Description != nil {
		changes = append(changes, "description")
	}
	if req.Category != nil {
		changes = append(changes, "category")
	}
	if req.Unit != nil {
		changes = append(changes, "unit")
	}
	if req.IsActive != nil {
		changes = append(changes, "is_active")
	}
	if req.SortOrder != nil {
		changes = append(changes, "sort_order")
	}
	return changes
}
