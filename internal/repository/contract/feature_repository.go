// FILE: internal/repository/contract/feature_repository.go
// Repository interface for the feature catalog and its custom fields
package contract

import (
	"context"

	"saas-manager-be/internal/entity"
	"saas-manager-be/internal/repository/specification"

	"github.com/google/uuid"
)

type FeatureRepository interface {
	// Create persists the feature together with its CustomFields.
	Create(ctx context.Context, feature *entity.Feature) error
	// Update saves the feature's own columns; custom fields are untouched.
	Update(ctx context.Context, feature *entity.Feature) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Feature, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Feature, error)
	FindByKey(ctx context.Context, key string, applicationId *uuid.UUID) (*entity.Feature, error)

	CreateCustomField(ctx context.Context, field *entity.FeatureCustomField) error
	UpdateCustomField(ctx context.Context, field *entity.FeatureCustomField) error
	DeleteCustomField(ctx context.Context, id uuid.UUID) error
	DeleteCustomFieldsByFeature(ctx context.Context, featureId uuid.UUID) error
}
