package implementation

import (
	"context"
	"errors"

	"saas-manager-be/internal/entity"
	"saas-manager-be/internal/mapper"
	"saas-manager-be/internal/model"
	"saas-manager-be/internal/repository/contract"
	"saas-manager-be/internal/repository/scope"
	"saas-manager-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PlanFeatureConfigurationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PlanFeatureMapper
}

func NewPlanFeatureConfigurationRepository(db *gorm.DB) contract.PlanFeatureConfigurationRepository {
	return &PlanFeatureConfigurationRepositoryImpl{
		db:     db,
		mapper: mapper.NewPlanFeatureMapper(),
	}
}

func (r *PlanFeatureConfigurationRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PlanFeatureConfigurationRepositoryImpl) Create(ctx context.Context, cfg *entity.PlanFeatureConfiguration) error {
	m := r.mapper.ConfigurationToModel(cfg)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error; err != nil {
		return err
	}

	values := cfg.FieldValues
	*cfg = *r.mapper.ConfigurationToEntity(m)
	if err := r.insertFieldValues(ctx, cfg.Id, values); err != nil {
		return err
	}
	cfg.FieldValues = values
	return nil
}

func (r *PlanFeatureConfigurationRepositoryImpl) Update(ctx context.Context, cfg *entity.PlanFeatureConfiguration) error {
	m := r.mapper.ConfigurationToModel(cfg)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(m).Error; err != nil {
		return err
	}
	cfg.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *PlanFeatureConfigurationRepositoryImpl) ReplaceFieldValues(ctx context.Context, configurationId uuid.UUID, values []entity.FeatureCustomFieldValue) error {
	if err := r.db.WithContext(ctx).Where("configuration_id = ?", configurationId).Delete(&model.FeatureCustomFieldValue{}).Error; err != nil {
		return err
	}
	return r.insertFieldValues(ctx, configurationId, values)
}

// insertFieldValues writes values and stores the generated ids back into the slice.
func (r *PlanFeatureConfigurationRepositoryImpl) insertFieldValues(ctx context.Context, configurationId uuid.UUID, values []entity.FeatureCustomFieldValue) error {
	if len(values) == 0 {
		return nil
	}
	models := make([]*model.FeatureCustomFieldValue, 0, len(values))
	for i := range values {
		values[i].Id = uuid.Nil
		values[i].ConfigurationId = configurationId
		m, err := r.mapper.FieldValueToModel(&values[i])
		if err != nil {
			return err
		}
		models = append(models, m)
	}
	if err := r.db.WithContext(ctx).Create(&models).Error; err != nil {
		return err
	}
	for i, m := range models {
		values[i].Id = m.Id
	}
	return nil
}

func (r *PlanFeatureConfigurationRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("configuration_id = ?", id).Delete(&model.FeatureCustomFieldValue{}).Error; err != nil {
		return err
	}
	return db.Where("id = ?", id).Delete(&model.PlanFeatureConfiguration{}).Error
}

func (r *PlanFeatureConfigurationRepositoryImpl) DeleteByFeature(ctx context.Context, featureId uuid.UUID) (int64, error) {
	db := r.db.WithContext(ctx)
	configIds := db.Model(&model.PlanFeatureConfiguration{}).Select("id").Where("feature_id = ?", featureId)
	if err := db.Where("configuration_id IN (?)", configIds).Delete(&model.FeatureCustomFieldValue{}).Error; err != nil {
		return 0, err
	}
	result := db.Where("feature_id = ?", featureId).Delete(&model.PlanFeatureConfiguration{})
	return result.RowsAffected, result.Error
}

func (r *PlanFeatureConfigurationRepositoryImpl) DeleteFieldValuesByCustomField(ctx context.Context, customFieldId uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("custom_field_id = ?", customFieldId).Delete(&model.FeatureCustomFieldValue{})
	return result.RowsAffected, result.Error
}

func (r *PlanFeatureConfigurationRepositoryImpl) UpdateSortOrder(ctx context.Context, planId, applicationId, featureId uuid.UUID, sortOrder int) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.PlanFeatureConfiguration{}).
		Where("plan_id = ? AND application_id = ? AND feature_id = ?", planId, applicationId, featureId).
		Update("sort_order", sortOrder)
	return result.RowsAffected, result.Error
}

func (r *PlanFeatureConfigurationRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PlanFeatureConfiguration, error) {
	var m model.PlanFeatureConfiguration
	query := r.applySpecifications(r.db.WithContext(ctx).Preload("FieldValues"), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ConfigurationToEntity(&m), nil
}

func (r *PlanFeatureConfigurationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PlanFeatureConfiguration, error) {
	var models []*model.PlanFeatureConfiguration
	query := r.applySpecifications(r.db.WithContext(ctx).Preload("FieldValues").Scopes(scope.OrderBySortOrder, scope.OrderByCreatedAsc), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ConfigurationsToEntities(models), nil
}

type PlanFeatureValueRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PlanFeatureMapper
}

func NewPlanFeatureValueRepository(db *gorm.DB) contract.PlanFeatureValueRepository {
	return &PlanFeatureValueRepositoryImpl{
		db:     db,
		mapper: mapper.NewPlanFeatureMapper(),
	}
}

func (r *PlanFeatureValueRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PlanFeatureValueRepositoryImpl) Create(ctx context.Context, value *entity.PlanFeatureValue) error {
	m := r.mapper.ValueToModel(value)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	feature := value.Feature
	*value = *r.mapper.ValueToEntity(m)
	value.Feature = feature
	return nil
}

func (r *PlanFeatureValueRepositoryImpl) Update(ctx context.Context, value *entity.PlanFeatureValue) error {
	m := r.mapper.ValueToModel(value)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	value.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *PlanFeatureValueRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.PlanFeatureValue{}).Error
}

func (r *PlanFeatureValueRepositoryImpl) DeleteByPlan(ctx context.Context, planId uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("plan_id = ?", planId).Delete(&model.PlanFeatureValue{})
	return result.RowsAffected, result.Error
}

func (r *PlanFeatureValueRepositoryImpl) DeleteByFeature(ctx context.Context, featureId uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("feature_id = ?", featureId).Delete(&model.PlanFeatureValue{})
	return result.RowsAffected, result.Error
}

func (r *PlanFeatureValueRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PlanFeatureValue, error) {
	var m model.PlanFeatureValue
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ValueToEntity(&m), nil
}

func (r *PlanFeatureValueRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PlanFeatureValue, error) {
	var models []*model.PlanFeatureValue
	query := r.applySpecifications(r.db.WithContext(ctx).Scopes(scope.OrderByCreatedAsc), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ValuesToEntities(models), nil
}
