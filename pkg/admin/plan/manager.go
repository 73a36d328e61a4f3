package plan

import (
	"context"

	"saas-manager-be/internal/dto"
	"saas-manager-be/internal/entity"
	"saas-manager-be/internal/pkg/serverutils"
	"saas-manager-be/internal/repository/specification"
	"saas-manager-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// Manager handles the feature configurations of subscription plans
type Manager struct{}

// NewManager creates a new plan manager
func NewManager() *Manager {
	return &Manager{}
}

// Configure upserts a set of feature configurations for a plan in one
// transaction. Configurations not listed are left as they are.
func (m *Manager) Configure(ctx context.Context, uow unitofwork.UnitOfWork, planId uuid.UUID, req dto.ConfigurePlanFeaturesRequest) error {
	ids := make([]uuid.UUID, 0, len(req.Features))
	seen := make(map[uuid.UUID]bool, len(req.Features))
	for _, in := range req.Features {
		if seen[in.FeatureId] {
			return serverutils.BadRequest("Feature %s is listed more than once", in.FeatureId)
		}
		seen[in.FeatureId] = true
		ids = append(ids, in.FeatureId)
	}

	features, err := m.loadFeatures(ctx, uow, req.ApplicationId, ids)
	if err != nil {
		return err
	}

	// Resolve everything before opening the transaction
	configs := make([]*entity.PlanFeatureConfiguration, 0, len(req.Features))
	for _, in := range req.Features {
		cfg, err := buildConfiguration(planId, req.ApplicationId, features[in.FeatureId], in)
		if err != nil {
			return err
		}
		configs = append(configs, cfg)
	}

	return unitofwork.RunInTransaction(ctx, uow, func() error {
		repo := uow.PlanFeatureConfigurationRepository()
		for _, cfg := range configs {
			existing, err := repo.FindOne(ctx, specification.ByPlan{PlanId: planId}, specification.ByFeature{FeatureId: cfg.FeatureId})
			if err != nil {
				return err
			}
			if existing == nil {
				if err := repo.Create(ctx, cfg); err != nil {
					return err
				}
				continue
			}

			cfg.Id = existing.Id
			cfg.CreatedAt = existing.CreatedAt
			if err := repo.Update(ctx, cfg); err != nil {
				return err
			}
			if err := repo.ReplaceFieldValues(ctx, cfg.Id, cfg.FieldValues); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetFeatures returns the plan's configurations with their catalog feature
// attached, ordered by sort order. Configurations whose feature no longer
// exists are left out and their feature ids returned as orphans.
func (m *Manager) GetFeatures(ctx context.Context, uow unitofwork.UnitOfWork, planId, applicationId uuid.UUID) ([]*entity.PlanFeatureConfiguration, []uuid.UUID, error) {
	configs, err := uow.PlanFeatureConfigurationRepository().FindAll(ctx,
		specification.ByPlan{PlanId: planId},
		specification.ByApplication{ApplicationId: applicationId},
	)
	if err != nil {
		return nil, nil, err
	}
	if len(configs) == 0 {
		return []*entity.PlanFeatureConfiguration{}, nil, nil
	}

	ids := make([]uuid.UUID, 0, len(configs))
	for _, cfg := range configs {
		ids = append(ids, cfg.FeatureId)
	}
	features, err := uow.FeatureRepository().FindAll(ctx, specification.ByIDs{IDs: ids})
	if err != nil {
		return nil, nil, err
	}
	byId := make(map[uuid.UUID]*entity.Feature, len(features))
	for _, f := range features {
		byId[f.Id] = f
	}

	result := make([]*entity.PlanFeatureConfiguration, 0, len(configs))
	var orphans []uuid.UUID
	for _, cfg := range configs {
		feature, ok := byId[cfg.FeatureId]
		if !ok {
			orphans = append(orphans, cfg.FeatureId)
			continue
		}
		cfg.Feature = feature
		result = append(result, cfg)
	}
	return result, orphans, nil
}

// AddFeature attaches one catalog feature to a plan
func (m *Manager) AddFeature(ctx context.Context, uow unitofwork.UnitOfWork, planId uuid.UUID, req dto.AddPlanFeatureRequest) (*entity.PlanFeatureConfiguration, error) {
	existing, err := m.find(ctx, uow, planId, req.FeatureId, req.ApplicationId)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, serverutils.Conflict("Feature is already configured for this plan")
	}

	features, err := m.loadFeatures(ctx, uow, req.ApplicationId, []uuid.UUID{req.FeatureId})
	if err != nil {
		return nil, err
	}
	feature := features[req.FeatureId]

	cfg, err := buildConfiguration(planId, req.ApplicationId, feature, req.PlanFeatureInput)
	if err != nil {
		return nil, err
	}

	err = unitofwork.RunInTransaction(ctx, uow, func() error {
		return uow.PlanFeatureConfigurationRepository().Create(ctx, cfg)
	})
	if err != nil {
		return nil, err
	}
	cfg.Feature = feature
	return cfg, nil
}

// UpdateFeature applies a partial update to one plan configuration
func (m *Manager) UpdateFeature(ctx context.Context, uow unitofwork.UnitOfWork, planId, featureId, applicationId uuid.UUID, req dto.UpdatePlanFeatureRequest) (*entity.PlanFeatureConfiguration, error) {
	cfg, err := m.mustFind(ctx, uow, planId, featureId, applicationId)
	if err != nil {
		return nil, err
	}
	features, err := m.loadFeatures(ctx, uow, applicationId, []uuid.UUID{featureId})
	if err != nil {
		return nil, err
	}
	feature := features[featureId]

	if req.Status != nil {
		cfg.Status = entity.FeatureStatus(*req.Status)
	}
	if req.CustomName != nil {
		cfg.CustomName = *req.CustomName
	}
	if req.CustomDescription != nil {
		cfg.CustomDescription = *req.CustomDescription
	}
	if req.IsHighlighted != nil {
		cfg.IsHighlighted = *req.IsHighlighted
	}
	if req.HighlightText != nil {
		cfg.HighlightText = *req.HighlightText
	}
	if req.SortOrder != nil {
		cfg.SortOrder = *req.SortOrder
	}

	replaceValues := req.FieldValues != nil
	if replaceValues {
		values, err := ResolveFieldValues(feature, cfg.Status, req.FieldValues)
		if err != nil {
			return nil, err
		}
		cfg.FieldValues = values
	} else if err := checkRequired(feature, cfg.Status, cfg.FieldValues); err != nil {
		return nil, err
	}

	err = unitofwork.RunInTransaction(ctx, uow, func() error {
		repo := uow.PlanFeatureConfigurationRepository()
		if err := repo.Update(ctx, cfg); err != nil {
			return err
		}
		if replaceValues {
			return repo.ReplaceFieldValues(ctx, cfg.Id, cfg.FieldValues)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	cfg.Feature = feature
	return cfg, nil
}

// RemoveFeature detaches a feature from a plan
func (m *Manager) RemoveFeature(ctx context.Context, uow unitofwork.UnitOfWork, planId, featureId, applicationId uuid.UUID) error {
	cfg, err := m.mustFind(ctx, uow, planId, featureId, applicationId)
	if err != nil {
		return err
	}
	return unitofwork.RunInTransaction(ctx, uow, func() error {
		return uow.PlanFeatureConfigurationRepository().Delete(ctx, cfg.Id)
	})
}

// UpdateOrder patches the sort order of several configurations at once.
// An unknown feature rolls the whole batch back.
func (m *Manager) UpdateOrder(ctx context.Context, uow unitofwork.UnitOfWork, planId, applicationId uuid.UUID, orders []dto.FeatureOrderInput) error {
	return unitofwork.RunInTransaction(ctx, uow, func() error {
		repo := uow.PlanFeatureConfigurationRepository()
		for _, o := range orders {
			affected, err := repo.UpdateSortOrder(ctx, planId, applicationId, o.FeatureId, o.SortOrder)
			if err != nil {
				return err
			}
			if affected == 0 {
				return serverutils.NotFound("Feature %s is not configured for this plan", o.FeatureId)
			}
		}
		return nil
	})
}

func (m *Manager) find(ctx context.Context, uow unitofwork.UnitOfWork, planId, featureId, applicationId uuid.UUID) (*entity.PlanFeatureConfiguration, error) {
	return uow.PlanFeatureConfigurationRepository().FindOne(ctx,
		specification.ByPlan{PlanId: planId},
		specification.ByFeature{FeatureId: featureId},
		specification.ByApplication{ApplicationId: applicationId},
	)
}

func (m *Manager) mustFind(ctx context.Context, uow unitofwork.UnitOfWork, planId, featureId, applicationId uuid.UUID) (*entity.PlanFeatureConfiguration, error) {
	cfg, err := m.find(ctx, uow, planId, featureId, applicationId)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, serverutils.NotFound("Plan feature configuration not found")
	}
	return cfg, nil
}

// loadFeatures fetches catalog features by id and checks they are usable
// by the application: either global or owned by it.
func (m *Manager) loadFeatures(ctx context.Context, uow unitofwork.UnitOfWork, applicationId uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]*entity.Feature, error) {
	result := make(map[uuid.UUID]*entity.Feature, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	features, err := uow.FeatureRepository().FindAll(ctx, specification.ByIDs{IDs: ids})
	if err != nil {
		return nil, err
	}
	for _, f := range features {
		result[f.Id] = f
	}

	for _, id := range ids {
		f, ok := result[id]
		if !ok {
			return nil, serverutils.NotFound("Feature %s not found", id)
		}
		if !f.IsGlobal && (f.ApplicationId == nil || *f.ApplicationId != applicationId) {
			return nil, serverutils.BadRequest("Feature '%s' does not belong to this application", f.Key)
		}
	}
	return result, nil
}

func buildConfiguration(planId, applicationId uuid.UUID, feature *entity.Feature, in dto.PlanFeatureInput) (*entity.PlanFeatureConfiguration, error) {
	status := entity.FeatureStatus(in.Status)
	values, err := ResolveFieldValues(feature, status, in.FieldValues)
	if err != nil {
		return nil, err
	}

	sortOrder := feature.SortOrder
	if in.SortOrder != nil {
		sortOrder = *in.SortOrder
	}

	return &entity.PlanFeatureConfiguration{
		PlanId:            planId,
		FeatureId:         feature.Id,
		ApplicationId:     applicationId,
		Status:            status,
		CustomName:        in.CustomName,
		CustomDescription: in.CustomDescription,
		IsHighlighted:     in.IsHighlighted,
		HighlightText:     in.HighlightText,
		SortOrder:         sortOrder,
		FieldValues:       values,
	}, nil
}
