package service

import (
	"context"
	"time"

	"saas-manager-be/internal/dto"
	"saas-manager-be/internal/pkg/logger"
	"saas-manager-be/internal/repository/contract"
	"saas-manager-be/internal/repository/unitofwork"
	adminEvents "saas-manager-be/pkg/admin/events"
	"saas-manager-be/pkg/admin/mapper"
	"saas-manager-be/pkg/admin/plan"

	"github.com/google/uuid"
)

type IPlanFeatureService interface {
	ConfigurePlanFeatures(ctx context.Context, planId uuid.UUID, req dto.ConfigurePlanFeaturesRequest) ([]*dto.PlanFeatureResponse, error)
	GetPlanFeatures(ctx context.Context, planId, applicationId uuid.UUID) ([]*dto.PlanFeatureResponse, error)
	AddFeatureToPlan(ctx context.Context, planId uuid.UUID, req dto.AddPlanFeatureRequest) (*dto.PlanFeatureResponse, error)
	UpdateFeatureConfiguration(ctx context.Context, planId, featureId, applicationId uuid.UUID, req dto.UpdatePlanFeatureRequest) (*dto.PlanFeatureResponse, error)
	RemoveFeatureFromPlan(ctx context.Context, planId, featureId, applicationId uuid.UUID) error
	UpdateFeatureOrder(ctx context.Context, planId, applicationId uuid.UUID, req dto.UpdateFeatureOrderRequest) ([]*dto.PlanFeatureResponse, error)
}

type planFeatureService struct {
	uowFactory     unitofwork.RepositoryFactory
	logger         logger.ILogger
	planManager    *plan.Manager
	cache          *planCache
	eventPublisher adminEvents.Publisher
}

func NewPlanFeatureService(
	uowFactory unitofwork.RepositoryFactory,
	logger logger.ILogger,
	planManager *plan.Manager,
	cache contract.PlanFeatureCache,
	cacheTTL time.Duration,
	eventPublisher adminEvents.Publisher,
) IPlanFeatureService {
	return &planFeatureService{
		uowFactory:     uowFactory,
		logger:         logger,
		planManager:    planManager,
		cache:          newPlanCache(cache, cacheTTL, logger, "PLAN_FEATURE"),
		eventPublisher: eventPublisher,
	}
}

func featuresCacheKey(applicationId uuid.UUID) string {
	return "features:" + applicationId.String()
}

func (s *planFeatureService) ConfigurePlanFeatures(ctx context.Context, planId uuid.UUID, req dto.ConfigurePlanFeaturesRequest) ([]*dto.PlanFeatureResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := s.planManager.Configure(ctx, uow, planId, req); err != nil {
		return nil, err
	}
	s.cache.invalidatePlan(ctx, planId)

	featureIds := make([]uuid.UUID, 0, len(req.Features))
	for _, f := range req.Features {
		featureIds = append(featureIds, f.FeatureId)
	}
	s.logger.Info("PLAN_FEATURE", "Plan features configured", map[string]interface{}{
		"plan_id":        planId.String(),
		"application_id": req.ApplicationId.String(),
		"features":       len(featureIds),
	})
	s.eventPublisher.PublishPlanFeaturesConfigured(ctx, planId, req.ApplicationId, featureIds)

	return s.GetPlanFeatures(ctx, planId, req.ApplicationId)
}

func (s *planFeatureService) GetPlanFeatures(ctx context.Context, planId, applicationId uuid.UUID) ([]*dto.PlanFeatureResponse, error) {
	key := featuresCacheKey(applicationId)

	var cached []*dto.PlanFeatureResponse
	if s.cache.get(ctx, planId, key, &cached) {
		return cached, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	configs, orphans, err := s.planManager.GetFeatures(ctx, uow, planId, applicationId)
	if err != nil {
		return nil, err
	}
	for _, featureId := range orphans {
		s.logger.Warn("PLAN_FEATURE", "Configuration references a missing feature, skipped", map[string]interface{}{
			"plan_id":    planId.String(),
			"feature_id": featureId.String(),
		})
	}

	res := mapper.PlanFeaturesToResponse(configs)
	s.cache.set(ctx, planId, key, res)
	return res, nil
}

func (s *planFeatureService) AddFeatureToPlan(ctx context.Context, planId uuid.UUID, req dto.AddPlanFeatureRequest) (*dto.PlanFeatureResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	cfg, err := s.planManager.AddFeature(ctx, uow, planId, req)
	if err != nil {
		return nil, err
	}
	s.cache.invalidatePlan(ctx, planId)
	return mapper.PlanFeatureToResponse(cfg), nil
}

func (s *planFeatureService) UpdateFeatureConfiguration(ctx context.Context, planId, featureId, applicationId uuid.UUID, req dto.UpdatePlanFeatureRequest) (*dto.PlanFeatureResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	cfg, err := s.planManager.UpdateFeature(ctx, uow, planId, featureId, applicationId, req)
	if err != nil {
		return nil, err
	}
	s.cache.invalidatePlan(ctx, planId)
	return mapper.PlanFeatureToResponse(cfg), nil
}

func (s *planFeatureService) RemoveFeatureFromPlan(ctx context.Context, planId, featureId, applicationId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := s.planManager.RemoveFeature(ctx, uow, planId, featureId, applicationId); err != nil {
		return err
	}
	s.cache.invalidatePlan(ctx, planId)
	return nil
}

func (s *planFeatureService) UpdateFeatureOrder(ctx context.Context, planId, applicationId uuid.UUID, req dto.UpdateFeatureOrderRequest) ([]*dto.PlanFeatureResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := s.planManager.UpdateOrder(ctx, uow, planId, applicationId, req.Orders); err != nil {
		return nil, err
	}
	s.cache.invalidatePlan(ctx, planId)
	return s.GetPlanFeatures(ctx, planId, applicationId)
}
