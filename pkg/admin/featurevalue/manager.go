package featurevalue

import (
	"context"
	"errors"

	"saas-manager-be/internal/dto"
	"saas-manager-be/internal/entity"
	"saas-manager-be/internal/pkg/serverutils"
	"saas-manager-be/internal/repository/specification"
	"saas-manager-be/internal/repository/unitofwork"
	"saas-manager-be/pkg/admin/valuefmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const duplicateValueMessage = "A value already exists for this plan and feature"

// Manager handles flat plan feature values
type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

// BulkFailure is an entry BulkCreateOrUpdate could not write
type BulkFailure struct {
	FeatureId uuid.UUID
	Err       error
}

type BulkResult struct {
	Processed []*entity.PlanFeatureValue
	Failed    []BulkFailure
}

func (m *Manager) Create(ctx context.Context, uow unitofwork.UnitOfWork, req dto.CreatePlanFeatureValueRequest) (*entity.PlanFeatureValue, error) {
	feature, err := uow.FeatureRepository().FindOne(ctx, specification.ByID{ID: req.FeatureId})
	if err != nil {
		return nil, err
	}
	if feature == nil {
		return nil, serverutils.NotFound("Feature not found")
	}

	existing, err := m.findByPlanAndFeature(ctx, uow, req.PlanId, req.FeatureId)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, serverutils.BadRequest(duplicateValueMessage)
	}

	value := &entity.PlanFeatureValue{
		PlanId:        req.PlanId,
		FeatureId:     req.FeatureId,
		ApplicationId: req.ApplicationId,
		Value:         *req.Value,
		IsActive:      true,
	}
	apply(value, req.IsUnlimited, feature.Unit)

	if err := uow.PlanFeatureValueRepository().Create(ctx, value); err != nil {
		// a concurrent create got past the check above
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, serverutils.BadRequest(duplicateValueMessage)
		}
		return nil, err
	}
	value.Feature = feature
	return value, nil
}

// FindAll lists active values, oldest first
func (m *Manager) FindAll(ctx context.Context, uow unitofwork.UnitOfWork, page dto.PageQuery) ([]*entity.PlanFeatureValue, error) {
	return uow.PlanFeatureValueRepository().FindAll(ctx,
		specification.ActiveOnly{},
		specification.Pagination{Limit: page.Limit, Offset: page.Offset},
	)
}

// FindOne returns a value by id, including soft-deleted ones
func (m *Manager) FindOne(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID) (*entity.PlanFeatureValue, error) {
	value, err := uow.PlanFeatureValueRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, serverutils.NotFound("Plan feature value not found")
	}
	return value, nil
}

// FindByPlanId returns the plan's active values joined with their feature.
// Values whose feature is gone are skipped and their feature ids returned.
func (m *Manager) FindByPlanId(ctx context.Context, uow unitofwork.UnitOfWork, planId uuid.UUID) ([]*entity.PlanFeatureValue, []uuid.UUID, error) {
	values, err := uow.PlanFeatureValueRepository().FindAll(ctx,
		specification.ByPlan{PlanId: planId},
		specification.ActiveOnly{},
	)
	if err != nil {
		return nil, nil, err
	}

	result := make([]*entity.PlanFeatureValue, 0, len(values))
	if len(values) == 0 {
		return result, nil, nil
	}

	ids := make([]uuid.UUID, 0, len(values))
	for _, v := range values {
		ids = append(ids, v.FeatureId)
	}
	features, err := uow.FeatureRepository().FindAll(ctx, specification.ByIDs{IDs: ids})
	if err != nil {
		return nil, nil, err
	}
	byId := make(map[uuid.UUID]*entity.Feature, len(features))
	for _, f := range features {
		byId[f.Id] = f
	}

	var orphans []uuid.UUID
	for _, v := range values {
		feature, ok := byId[v.FeatureId]
		if !ok {
			orphans = append(orphans, v.FeatureId)
			continue
		}
		v.Feature = feature
		result = append(result, v)
	}
	return result, orphans, nil
}

func (m *Manager) FindByPlanAndFeature(ctx context.Context, uow unitofwork.UnitOfWork, planId, featureId uuid.UUID) (*entity.PlanFeatureValue, error) {
	value, err := m.findByPlanAndFeature(ctx, uow, planId, featureId)
	if err != nil {
		return nil, err
	}
	if value == nil || !value.IsActive {
		return nil, serverutils.NotFound("Plan feature value not found")
	}
	value.Feature, err = uow.FeatureRepository().FindOne(ctx, specification.ByID{ID: featureId})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Update merges the patch and recomputes the unlimited flag and display value.
// Setting a value without is_unlimited clears a previous unlimited flag.
func (m *Manager) Update(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID, req dto.UpdatePlanFeatureValueRequest) (*entity.PlanFeatureValue, error) {
	value, err := m.FindOne(ctx, uow, id)
	if err != nil {
		return nil, err
	}

	flag := value.IsUnlimited
	switch {
	case req.IsUnlimited != nil:
		flag = *req.IsUnlimited
	case req.Value != nil:
		flag = false
	}
	if req.Value != nil {
		value.Value = *req.Value
	}
	if req.IsActive != nil {
		value.IsActive = *req.IsActive
	}

	feature, err := uow.FeatureRepository().FindOne(ctx, specification.ByID{ID: value.FeatureId})
	if err != nil {
		return nil, err
	}
	unit := ""
	if feature != nil {
		unit = feature.Unit
	}
	apply(value, flag, unit)

	if err := uow.PlanFeatureValueRepository().Update(ctx, value); err != nil {
		return nil, err
	}
	value.Feature = feature
	return value, nil
}

// Remove soft-deletes a value by clearing its active flag
func (m *Manager) Remove(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID) (*entity.PlanFeatureValue, error) {
	value, err := m.FindOne(ctx, uow, id)
	if err != nil {
		return nil, err
	}
	value.IsActive = false
	if err := uow.PlanFeatureValueRepository().Update(ctx, value); err != nil {
		return nil, err
	}
	return value, nil
}

func (m *Manager) RemoveByPlan(ctx context.Context, uow unitofwork.UnitOfWork, planId uuid.UUID) (int64, error) {
	return uow.PlanFeatureValueRepository().DeleteByPlan(ctx, planId)
}

func (m *Manager) RemoveByFeature(ctx context.Context, uow unitofwork.UnitOfWork, featureId uuid.UUID) (int64, error) {
	return uow.PlanFeatureValueRepository().DeleteByFeature(ctx, featureId)
}

// BulkCreateOrUpdate upserts entries by (plan, feature). An entry that fails
// is reported in Failed and does not stop the others.
func (m *Manager) BulkCreateOrUpdate(ctx context.Context, uow unitofwork.UnitOfWork, planId uuid.UUID, applicationId *uuid.UUID, entries []dto.PlanFeatureValueEntry) *BulkResult {
	result := &BulkResult{
		Processed: make([]*entity.PlanFeatureValue, 0, len(entries)),
		Failed:    []BulkFailure{},
	}
	for _, e := range entries {
		value, err := m.upsert(ctx, uow, planId, applicationId, e)
		if err != nil {
			result.Failed = append(result.Failed, BulkFailure{FeatureId: e.FeatureId, Err: err})
			continue
		}
		result.Processed = append(result.Processed, value)
	}
	return result
}

func (m *Manager) upsert(ctx context.Context, uow unitofwork.UnitOfWork, planId uuid.UUID, applicationId *uuid.UUID, e dto.PlanFeatureValueEntry) (*entity.PlanFeatureValue, error) {
	feature, err := uow.FeatureRepository().FindOne(ctx, specification.ByID{ID: e.FeatureId})
	if err != nil {
		return nil, err
	}
	if feature == nil {
		return nil, serverutils.NotFound("Feature %s not found", e.FeatureId)
	}

	existing, err := m.findByPlanAndFeature(ctx, uow, planId, e.FeatureId)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		value := &entity.PlanFeatureValue{
			PlanId:        planId,
			FeatureId:     e.FeatureId,
			ApplicationId: applicationId,
			Value:         *e.Value,
			IsActive:      true,
		}
		apply(value, e.IsUnlimited, feature.Unit)
		if err := uow.PlanFeatureValueRepository().Create(ctx, value); err != nil {
			return nil, err
		}
		value.Feature = feature
		return value, nil
	}

	existing.Value = *e.Value
	existing.IsActive = true
	if applicationId != nil {
		existing.ApplicationId = applicationId
	}
	apply(existing, e.IsUnlimited, feature.Unit)
	if err := uow.PlanFeatureValueRepository().Update(ctx, existing); err != nil {
		return nil, err
	}
	existing.Feature = feature
	return existing, nil
}

// BulkReplace makes the plan's value set equal to entries in one
// transaction. On any error the previous set is kept.
func (m *Manager) BulkReplace(ctx context.Context, uow unitofwork.UnitOfWork, req dto.BulkReplacePlanFeatureValuesRequest) ([]*entity.PlanFeatureValue, error) {
	ids := make([]uuid.UUID, 0, len(req.FeatureValues))
	seen := make(map[uuid.UUID]bool, len(req.FeatureValues))
	for _, e := range req.FeatureValues {
		if seen[e.FeatureId] {
			return nil, serverutils.BadRequest("Feature %s is listed more than once", e.FeatureId)
		}
		seen[e.FeatureId] = true
		ids = append(ids, e.FeatureId)
	}

	units := make(map[uuid.UUID]string, len(ids))
	if len(ids) > 0 {
		features, err := uow.FeatureRepository().FindAll(ctx, specification.ByIDs{IDs: ids})
		if err != nil {
			return nil, err
		}
		for _, f := range features {
			units[f.Id] = f.Unit
		}
		for _, id := range ids {
			if _, ok := units[id]; !ok {
				return nil, serverutils.NotFound("Feature %s not found", id)
			}
		}
	}

	err := unitofwork.RunInTransaction(ctx, uow, func() error {
		repo := uow.PlanFeatureValueRepository()
		if _, err := repo.DeleteByPlan(ctx, req.PlanId); err != nil {
			return err
		}
		for _, e := range req.FeatureValues {
			value := &entity.PlanFeatureValue{
				PlanId:        req.PlanId,
				FeatureId:     e.FeatureId,
				ApplicationId: req.ApplicationId,
				Value:         *e.Value,
				IsActive:      true,
			}
			apply(value, e.IsUnlimited, units[e.FeatureId])
			if err := repo.Create(ctx, value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	values, _, err := m.FindByPlanId(ctx, uow, req.PlanId)
	return values, err
}

func (m *Manager) findByPlanAndFeature(ctx context.Context, uow unitofwork.UnitOfWork, planId, featureId uuid.UUID) (*entity.PlanFeatureValue, error) {
	return uow.PlanFeatureValueRepository().FindOne(ctx,
		specification.ByPlan{PlanId: planId},
		specification.ByFeature{FeatureId: featureId},
	)
}

// apply sets the unlimited flag and display value from the current value
func apply(value *entity.PlanFeatureValue, flag bool, unit string) {
	value.IsUnlimited = valuefmt.IsUnlimited(value.Value, flag)
	value.DisplayValue = valuefmt.Display(value.Value, unit, value.IsUnlimited)
}
