package feature

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
)

// Manager handles feature catalog operations
type Manager struct{}

// NewManager creates a new feature manager
func NewManager() *Manager {
	return &Manager{}
}

// DeleteResult counts the plan rows removed together with a feature
type DeleteResult struct {
	Configurations int64
	Values         int64
}

// List returns catalog features matching filter, ordered by sort order then name
func (m *Manager) List(ctx context.Context, uow unitofwork.UnitOfWork, filter dto.FeatureFilter) ([]*entity.Feature, error) {
	var specs []specification.Specification
	if filter.ApplicationId != nil {
		specs = append(specs, specification.ByApplication{ApplicationId: *filter.ApplicationId})
	}
	if filter.IsGlobal != nil {
		specs = append(specs, specification.Filter("is_global", *filter.IsGlobal))
	}
	if filter.Category != "" {
		specs = append(specs, specification.Filter("category", filter.Category))
	}
	if filter.IsActive != nil {
		specs = append(specs, specification.Filter("is_active", *filter.IsActive))
	}
	specs = append(specs, specification.Pagination{Limit: filter.Limit, Offset: filter.Offset})
	return uow.FeatureRepository().FindAll(ctx, specs...)
}

func (m *Manager) Get(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID) (*entity.Feature, error) {
	feature, err := uow.FeatureRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if feature == nil {
		return nil, serverutils.NotFound("Feature not found")
	}
	return feature, nil
}

// Create adds a feature and its custom fields to the catalog.
// A feature without application is global.
func (m *Manager) Create(ctx context.Context, uow unitofwork.UnitOfWork, req dto.CreateFeatureRequest) (*entity.Feature, error) {
	applicationId := req.ApplicationId
	isGlobal := req.IsGlobal || applicationId == nil
	if isGlobal {
		applicationId = nil
	}

	// Check for duplicate key
	existing, err := uow.FeatureRepository().FindByKey(ctx, req.Key, applicationId)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, serverutils.Conflict("Feature with key '%s' already exists", req.Key)
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	feature := &entity.Feature{
		ApplicationId: applicationId,
		IsGlobal:      isGlobal,
		Key:           req.Key,
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		Unit:          req.Unit,
		IsActive:      isActive,
		SortOrder:     req.SortOrder,
	}

	seen := make(map[string]bool, len(req.CustomFields))
	for _, fieldReq := range req.CustomFields {
		if seen[fieldReq.Name] {
			return nil, serverutils.Conflict("Custom field '%s' is defined twice", fieldReq.Name)
		}
		seen[fieldReq.Name] = true

		field := customFieldFromRequest(fieldReq)
		if err := valuefmt.ValidateDefinition(&field); err != nil {
			return nil, invalid(err)
		}
		feature.CustomFields = append(feature.CustomFields, field)
	}

	err = unitofwork.RunInTransaction(ctx, uow, func() error {
		return uow.FeatureRepository().Create(ctx, feature)
	})
	if err != nil {
		return nil, err
	}

	return feature, nil
}

// Update applies a partial update to a catalog feature
func (m *Manager) Update(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID, req dto.UpdateFeatureRequest) (*entity.Feature, error) {
	feature, err := m.Get(ctx, uow, id)
	if err != nil {
		return nil, err
	}

	if req.Key != nil && *req.Key != feature.Key {
		existing, err := uow.FeatureRepository().FindByKey(ctx, *req.Key, feature.ApplicationId)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.Id != feature.Id {
			return nil, serverutils.Conflict("Feature with key '%s' already exists", *req.Key)
		}
		feature.Key = *req.Key
	}
	if req.Name != nil {
		feature.Name = *req.Name
	}
	if req.Description != nil {
		feature.Description = *req.Description
	}
	if req.Category != nil {
		feature.Category = *req.Category
	}
	if req.Unit != nil {
		feature.Unit = *req.Unit
	}
	if req.IsActive != nil {
		feature.IsActive = *req.IsActive
	}
	if req.SortOrder != nil {
		feature.SortOrder = *req.SortOrder
	}

	if err := uow.FeatureRepository().Update(ctx, feature); err != nil {
		return nil, err
	}

	return feature, nil
}

// SetActive toggles the active flag
func (m *Manager) SetActive(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID, active bool) (*entity.Feature, error) {
	return m.Update(ctx, uow, id, dto.UpdateFeatureRequest{IsActive: &active})
}

// Delete removes a feature with everything that references it: custom
// fields, their values, plan configurations and flat plan values.
func (m *Manager) Delete(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID) (*DeleteResult, error) {
	if _, err := m.Get(ctx, uow, id); err != nil {
		return nil, err
	}

	result := &DeleteResult{}
	err := unitofwork.RunInTransaction(ctx, uow, func() error {
		var err error
		if result.Configurations, err = uow.PlanFeatureConfigurationRepository().DeleteByFeature(ctx, id); err != nil {
			return err
		}
		if result.Values, err = uow.PlanFeatureValueRepository().DeleteByFeature(ctx, id); err != nil {
			return err
		}
		if err := uow.FeatureRepository().DeleteCustomFieldsByFeature(ctx, id); err != nil {
			return err
		}
		return uow.FeatureRepository().Delete(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// AddCustomField appends a custom field to a feature
func (m *Manager) AddCustomField(ctx context.Context, uow unitofwork.UnitOfWork, featureId uuid.UUID, req dto.CreateCustomFieldRequest) (*entity.FeatureCustomField, error) {
	feature, err := m.Get(ctx, uow, featureId)
	if err != nil {
		return nil, err
	}

	for _, existing := range feature.CustomFields {
		if existing.Name == req.Name {
			return nil, serverutils.Conflict("Custom field '%s' already exists on feature '%s'", req.Name, feature.Key)
		}
	}

	field := customFieldFromRequest(req)
	field.FeatureId = feature.Id
	if err := valuefmt.ValidateDefinition(&field); err != nil {
		return nil, invalid(err)
	}

	if err := uow.FeatureRepository().CreateCustomField(ctx, &field); err != nil {
		return nil, err
	}
	return &field, nil
}

// UpdateCustomField applies a partial update to one custom field of a feature
func (m *Manager) UpdateCustomField(ctx context.Context, uow unitofwork.UnitOfWork, featureId, fieldId uuid.UUID, req dto.UpdateCustomFieldRequest) (*entity.FeatureCustomField, error) {
	feature, err := m.Get(ctx, uow, featureId)
	if err != nil {
		return nil, err
	}
	field := feature.FieldById(fieldId)
	if field == nil {
		return nil, serverutils.NotFound("Custom field not found")
	}

	if req.Name != nil && *req.Name != field.Name {
		for _, other := range feature.CustomFields {
			if other.Id != field.Id && other.Name == *req.Name {
				return nil, serverutils.Conflict("Custom field '%s' already exists on feature '%s'", *req.Name, feature.Key)
			}
		}
		field.Name = *req.Name
	}
	if req.DisplayName != nil {
		field.DisplayName = *req.DisplayName
	}
	if req.Description != nil {
		field.Description = *req.Description
	}
	if req.DataType != nil {
		field.DataType = entity.FieldType(*req.DataType)
	}
	if req.Unit != nil {
		field.Unit = *req.Unit
	}
	if req.Required != nil {
		field.Required = *req.Required
	}
	if req.DefaultValue != nil {
		field.DefaultValue = req.DefaultValue
	}
	if req.Min != nil {
		field.Min = req.Min
	}
	if req.Max != nil {
		field.Max = req.Max
	}
	if req.EnumOptions != nil {
		field.EnumOptions = req.EnumOptions
	}
	if req.SortOrder != nil {
		field.SortOrder = *req.SortOrder
	}

	if err := valuefmt.ValidateDefinition(field); err != nil {
		return nil, invalid(err)
	}
	if err := uow.FeatureRepository().UpdateCustomField(ctx, field); err != nil {
		return nil, err
	}
	return field, nil
}

// DeleteCustomField removes a custom field and every plan value set for it
func (m *Manager) DeleteCustomField(ctx context.Context, uow unitofwork.UnitOfWork, featureId, fieldId uuid.UUID) error {
	feature, err := m.Get(ctx, uow, featureId)
	if err != nil {
		return err
	}
	if feature.FieldById(fieldId) == nil {
		return serverutils.NotFound("Custom field not found")
	}

	return unitofwork.RunInTransaction(ctx, uow, func() error {
		if _, err := uow.PlanFeatureConfigurationRepository().DeleteFieldValuesByCustomField(ctx, fieldId); err != nil {
			return err
		}
		return uow.FeatureRepository().DeleteCustomField(ctx, fieldId)
	})
}

func customFieldFromRequest(req dto.CreateCustomFieldRequest) entity.FeatureCustomField {
	return entity.FeatureCustomField{
		Name:         req.Name,
		DisplayName:  req.DisplayName,
		Description:  req.Description,
		DataType:     entity.FieldType(req.DataType),
		Unit:         req.Unit,
		Required:     req.Required,
		DefaultValue: req.DefaultValue,
		Min:          req.Min,
		Max:          req.Max,
		EnumOptions:  req.EnumOptions,
		SortOrder:    req.SortOrder,
	}
}

func invalid(err error) error {
	if errors.Is(err, valuefmt.ErrInvalidValue) {
		return serverutils.WrapBadRequest(err, "Invalid custom field")
	}
	return err
}
