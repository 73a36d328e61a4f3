// FILE: internal/repository/implementation/feature_repository_impl.go
// Implementation of FeatureRepository
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

type FeatureRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.FeatureMapper
}

func NewFeatureRepository(db *gorm.DB) contract.FeatureRepository {
	return &FeatureRepositoryImpl{
		db:     db,
		mapper: mapper.NewFeatureMapper(),
	}
}

func (r *FeatureRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *FeatureRepositoryImpl) withCustomFields(db *gorm.DB) *gorm.DB {
	return db.Preload("CustomFields", scope.OrderBySortOrderThenName)
}

func (r *FeatureRepositoryImpl) Create(ctx context.Context, feature *entity.Feature) error {
	m := r.mapper.ToModel(feature)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error; err != nil {
		return err
	}

	for i := range feature.CustomFields {
		field := &feature.CustomFields[i]
		field.FeatureId = m.Id
		if err := r.CreateCustomField(ctx, field); err != nil {
			return err
		}
	}

	fields := feature.CustomFields
	*feature = *r.mapper.ToEntity(m)
	feature.CustomFields = fields
	return nil
}

func (r *FeatureRepositoryImpl) Update(ctx context.Context, feature *entity.Feature) error {
	m := r.mapper.ToModel(feature)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(m).Error; err != nil {
		return err
	}
	feature.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *FeatureRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Feature{}).Error
}

func (r *FeatureRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Feature, error) {
	var m model.Feature
	query := r.applySpecifications(r.withCustomFields(r.db.WithContext(ctx)), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *FeatureRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Feature, error) {
	var models []*model.Feature
	query := r.applySpecifications(r.withCustomFields(r.db.WithContext(ctx)).Scopes(scope.OrderBySortOrderThenName), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *FeatureRepositoryImpl) FindByKey(ctx context.Context, key string, applicationId *uuid.UUID) (*entity.Feature, error) {
	return r.FindOne(ctx, specification.ByFeatureKey{Key: key, ApplicationId: applicationId})
}

func (r *FeatureRepositoryImpl) CreateCustomField(ctx context.Context, field *entity.FeatureCustomField) error {
	m, err := r.mapper.CustomFieldToModel(field)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*field = *r.mapper.CustomFieldToEntity(m)
	return nil
}

func (r *FeatureRepositoryImpl) UpdateCustomField(ctx context.Context, field *entity.FeatureCustomField) error {
	m, err := r.mapper.CustomFieldToModel(field)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	field.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *FeatureRepositoryImpl) DeleteCustomField(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.FeatureCustomField{}).Error
}

func (r *FeatureRepositoryImpl) DeleteCustomFieldsByFeature(ctx context.Context, featureId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("feature_id = ?", featureId).Delete(&model.FeatureCustomField{}).Error
}
