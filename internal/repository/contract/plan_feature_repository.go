package contract

import (
	"context"

	"saas-manager-be/internal/entity"
	"saas-manager-be/internal/repository/specification"

	"github.com/google/uuid"
)

type PlanFeatureConfigurationRepository interface {
	// Create persists the configuration together with its FieldValues.
	Create(ctx context.Context, cfg *entity.PlanFeatureConfiguration) error
	// Update saves the configuration's own columns.
	Update(ctx context.Context, cfg *entity.PlanFeatureConfiguration) error
	// ReplaceFieldValues drops every value of the configuration and inserts values.
	ReplaceFieldValues(ctx context.Context, configurationId uuid.UUID, values []entity.FeatureCustomFieldValue) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByFeature(ctx context.Context, featureId uuid.UUID) (int64, error)
	DeleteFieldValuesByCustomField(ctx context.Context, customFieldId uuid.UUID) (int64, error)
	UpdateSortOrder(ctx context.Context, planId, applicationId, featureId uuid.UUID, sortOrder int) (int64, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PlanFeatureConfiguration, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PlanFeatureConfiguration, error)
}

type PlanFeatureValueRepository interface {
	Create(ctx context.Context, value *entity.PlanFeatureValue) error
	Update(ctx context.Context, value *entity.PlanFeatureValue) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByPlan(ctx context.Context, planId uuid.UUID) (int64, error)
	DeleteByFeature(ctx context.Context, featureId uuid.UUID) (int64, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PlanFeatureValue, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PlanFeatureValue, error)
}
