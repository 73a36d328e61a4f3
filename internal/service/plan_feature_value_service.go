package service

import (
	"context"
	"time"

	"saas-manager-be/internal/dto"
	"saas-manager-be/internal/pkg/logger"
	"saas-manager-be/internal/repository/contract"
	"saas-manager-be/internal/repository/unitofwork"
	adminEvents "saas-manager-be/pkg/admin/events"
	"saas-manager-be/pkg/admin/featurevalue"
	"saas-manager-be/pkg/admin/mapper"

	"github.com/google/uuid"
)

const valuesCacheKey = "values"

type IPlanFeatureValueService interface {
	Create(ctx context.Context, req dto.CreatePlanFeatureValueRequest) (*dto.PlanFeatureValueResponse, error)
	FindAll(ctx context.Context, page dto.PageQuery) ([]*dto.PlanFeatureValueResponse, error)
	FindOne(ctx context.Context, id uuid.UUID) (*dto.PlanFeatureValueResponse, error)
	FindByPlanId(ctx context.Context, planId uuid.UUID) ([]*dto.PlanFeatureValueResponse, error)
	FindByPlanAndFeature(ctx context.Context, planId, featureId uuid.UUID) (*dto.PlanFeatureValueResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdatePlanFeatureValueRequest) (*dto.PlanFeatureValueResponse, error)
	Remove(ctx context.Context, id uuid.UUID) (*dto.PlanFeatureValueResponse, error)
	RemoveByPlan(ctx context.Context, planId uuid.UUID) (*dto.DeletedCountResponse, error)
	RemoveByFeature(ctx context.Context, featureId uuid.UUID) (*dto.DeletedCountResponse, error)
	BulkCreateOrUpdate(ctx context.Context, planId uuid.UUID, req dto.BulkUpsertPlanFeatureValuesRequest) *dto.BulkUpsertResultResponse
	BulkUpdateForPlan(ctx context.Context, req dto.BulkReplacePlanFeatureValuesRequest) ([]*dto.PlanFeatureValueResponse, error)
}

type planFeatureValueService struct {
	uowFactory     unitofwork.RepositoryFactory
	logger         logger.ILogger
	valueManager   *featurevalue.Manager
	cache          *planCache
	eventPublisher adminEvents.Publisher
}

func NewPlanFeatureValueService(
	uowFactory unitofwork.RepositoryFactory,
	logger logger.ILogger,
	valueManager *featurevalue.Manager,
	cache contract.PlanFeatureCache,
	cacheTTL time.Duration,
	eventPublisher adminEvents.Publisher,
) IPlanFeatureValueService {
	return &planFeatureValueService{
		uowFactory:     uowFactory,
		logger:         logger,
		valueManager:   valueManager,
		cache:          newPlanCache(cache, cacheTTL, logger, "PLAN_FEATURE_VALUE"),
		eventPublisher: eventPublisher,
	}
}

func (s *planFeatureValueService) Create(ctx context.Context, req dto.CreatePlanFeatureValueRequest) (*dto.PlanFeatureValueResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	value, err := s.valueManager.Create(ctx, uow, req)
	if err != nil {
		return nil, err
	}
	s.cache.invalidatePlan(ctx, value.PlanId)
	return mapper.PlanFeatureValueToResponse(value), nil
}

func (s *planFeatureValueService) FindAll(ctx context.Context, page dto.PageQuery) ([]*dto.PlanFeatureValueResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	values, err := s.valueManager.FindAll(ctx, uow, page)
	if err != nil {
		return nil, err
	}
	return mapper.PlanFeatureValuesToResponse(values), nil
}

func (s *planFeatureValueService) FindOne(ctx context.Context, id uuid.UUID) (*dto.PlanFeatureValueResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	value, err := s.valueManager.FindOne(ctx, uow, id)
	if err != nil {
		return nil, err
	}
	return mapper.PlanFeatureValueToResponse(value), nil
}

func (s *planFeatureValueService) FindByPlanId(ctx context.Context, planId uuid.UUID) ([]*dto.PlanFeatureValueResponse, error) {
	var cached []*dto.PlanFeatureValueResponse
	if s.cache.get(ctx, planId, valuesCacheKey, &cached) {
		return cached, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	values, orphans, err := s.valueManager.FindByPlanId(ctx, uow, planId)
	if err != nil {
		return nil, err
	}
	for _, featureId := range orphans {
		s.logger.Warn("PLAN_FEATURE_VALUE", "Value references a missing feature, skipped", map[string]interface{}{
			"plan_id":    planId.String(),
			"feature_id": featureId.String(),
		})
	}

	res := mapper.PlanFeatureValuesToResponse(values)
	s.cache.set(ctx, planId, valuesCacheKey, res)
	return res, nil
}

func (s *planFeatureValueService) FindByPlanAndFeature(ctx context.Context, planId, featureId uuid.UUID) (*dto.PlanFeatureValueResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	value, err := s.valueManager.FindByPlanAndFeature(ctx, uow, planId, featureId)
	if err != nil {
		return nil, err
	}
	return mapper.PlanFeatureValueToResponse(value), nil
}

func (s *planFeatureValueService) Update(ctx context.Context, id uuid.UUID, req dto.UpdatePlanFeatureValueRequest) (*dto.PlanFeatureValueResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	value, err := s.valueManager.Update(ctx, uow, id, req)
	if err != nil {
		return nil, err
	}
	s.cache.invalidatePlan(ctx, value.PlanId)
	return mapper.PlanFeatureValueToResponse(value), nil
}

func (s *planFeatureValueService) Remove(ctx context.Context, id uuid.UUID) (*dto.PlanFeatureValueResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	value, err := s.valueManager.Remove(ctx, uow, id)
	if err != nil {
		return nil, err
	}
	s.cache.invalidatePlan(ctx, value.PlanId)
	return mapper.PlanFeatureValueToResponse(value), nil
}

func (s *planFeatureValueService) RemoveByPlan(ctx context.Context, planId uuid.UUID) (*dto.DeletedCountResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	deleted, err := s.valueManager.RemoveByPlan(ctx, uow, planId)
	if err != nil {
		return nil, err
	}
	s.cache.invalidatePlan(ctx, planId)
	s.logger.Info("PLAN_FEATURE_VALUE", "Plan values removed", map[string]interface{}{
		"plan_id": planId.String(),
		"deleted": deleted,
	})
	return &dto.DeletedCountResponse{Deleted: deleted}, nil
}

func (s *planFeatureValueService) RemoveByFeature(ctx context.Context, featureId uuid.UUID) (*dto.DeletedCountResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	deleted, err := s.valueManager.RemoveByFeature(ctx, uow, featureId)
	if err != nil {
		return nil, err
	}
	// values of any plan may be gone
	s.cache.invalidateAll(ctx)
	s.logger.Info("PLAN_FEATURE_VALUE", "Feature values removed", map[string]interface{}{
		"feature_id": featureId.String(),
		"deleted":    deleted,
	})
	return &dto.DeletedCountResponse{Deleted: deleted}, nil
}

func (s *planFeatureValueService) BulkCreateOrUpdate(ctx context.Context, planId uuid.UUID, req dto.BulkUpsertPlanFeatureValuesRequest) *dto.BulkUpsertResultResponse {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	result := s.valueManager.BulkCreateOrUpdate(ctx, uow, planId, req.ApplicationId, req.FeatureValues)

	if len(result.Processed) > 0 {
		s.cache.invalidatePlan(ctx, planId)
	}
	for _, f := range result.Failed {
		s.logger.Warn("PLAN_FEATURE_VALUE", "Bulk entry rejected", map[string]interface{}{
			"plan_id":    planId.String(),
			"feature_id": f.FeatureId.String(),
			"error":      f.Err.Error(),
		})
	}
	return mapper.BulkResultToResponse(result)
}

func (s *planFeatureValueService) BulkUpdateForPlan(ctx context.Context, req dto.BulkReplacePlanFeatureValuesRequest) ([]*dto.PlanFeatureValueResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	values, err := s.valueManager.BulkReplace(ctx, uow, req)
	if err != nil {
		return nil, err
	}
	s.cache.invalidatePlan(ctx, req.PlanId)
	s.eventPublisher.PublishPlanFeatureValuesReplaced(ctx, req.PlanId, len(values))
	return mapper.PlanFeatureValuesToResponse(values), nil
}
