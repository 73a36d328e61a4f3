package mapper

import (
	"saas-manager-be/internal/entity"
	"saas-manager-be/internal/model"
)

type PlanFeatureMapper struct{}

func NewPlanFeatureMapper() *PlanFeatureMapper {
	return &PlanFeatureMapper{}
}

func (m *PlanFeatureMapper) ConfigurationToEntity(mdl *model.PlanFeatureConfiguration) *entity.PlanFeatureConfiguration {
	if mdl == nil {
		return nil
	}
	values := make([]entity.FeatureCustomFieldValue, 0, len(mdl.FieldValues))
	for i := range mdl.FieldValues {
		values = append(values, *m.FieldValueToEntity(&mdl.FieldValues[i]))
	}
	return &entity.PlanFeatureConfiguration{
		Id:                mdl.Id,
		PlanId:            mdl.PlanId,
		FeatureId:         mdl.FeatureId,
		ApplicationId:     mdl.ApplicationId,
		Status:            entity.FeatureStatus(mdl.Status),
		CustomName:        mdl.CustomName,
		CustomDescription: mdl.CustomDescription,
		IsHighlighted:     mdl.IsHighlighted,
		HighlightText:     mdl.HighlightText,
		SortOrder:         mdl.SortOrder,
		FieldValues:       values,
		CreatedAt:         mdl.CreatedAt,
		UpdatedAt:         mdl.UpdatedAt,
	}
}

func (m *PlanFeatureMapper) ConfigurationToModel(e *entity.PlanFeatureConfiguration) *model.PlanFeatureConfiguration {
	if e == nil {
		return nil
	}
	return &model.PlanFeatureConfiguration{
		Id:                e.Id,
		PlanId:            e.PlanId,
		FeatureId:         e.FeatureId,
		ApplicationId:     e.ApplicationId,
		Status:            string(e.Status),
		CustomName:        e.CustomName,
		CustomDescription: e.CustomDescription,
		IsHighlighted:     e.IsHighlighted,
		HighlightText:     e.HighlightText,
		SortOrder:         e.SortOrder,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}

func (m *PlanFeatureMapper) ConfigurationsToEntities(models []*model.PlanFeatureConfiguration) []*entity.PlanFeatureConfiguration {
	entities := make([]*entity.PlanFeatureConfiguration, 0, len(models))
	for _, mdl := range models {
		entities = append(entities, m.ConfigurationToEntity(mdl))
	}
	return entities
}

func (m *PlanFeatureMapper) FieldValueToEntity(mdl *model.FeatureCustomFieldValue) *entity.FeatureCustomFieldValue {
	if mdl == nil {
		return nil
	}
	return &entity.FeatureCustomFieldValue{
		Id:              mdl.Id,
		ConfigurationId: mdl.ConfigurationId,
		CustomFieldId:   mdl.CustomFieldId,
		Value:           decodeJSON(mdl.Value),
		DisplayValue:    mdl.DisplayValue,
		IsUnlimited:     mdl.IsUnlimited,
	}
}

func (m *PlanFeatureMapper) FieldValueToModel(e *entity.FeatureCustomFieldValue) (*model.FeatureCustomFieldValue, error) {
	if e == nil {
		return nil, nil
	}
	raw, err := encodeJSON(e.Value)
	if err != nil {
		return nil, err
	}
	return &model.FeatureCustomFieldValue{
		Id:              e.Id,
		ConfigurationId: e.ConfigurationId,
		CustomFieldId:   e.CustomFieldId,
		Value:           raw,
		DisplayValue:    e.DisplayValue,
		IsUnlimited:     e.IsUnlimited,
	}, nil
}

func (m *PlanFeatureMapper) ValueToEntity(mdl *model.PlanFeatureValue) *entity.PlanFeatureValue {
	if mdl == nil {
		return nil
	}
	return &entity.PlanFeatureValue{
		Id:            mdl.Id,
		PlanId:        mdl.PlanId,
		FeatureId:     mdl.FeatureId,
		ApplicationId: mdl.ApplicationId,
		Value:         mdl.Value,
		IsUnlimited:   mdl.IsUnlimited,
		DisplayValue:  mdl.DisplayValue,
		IsActive:      mdl.IsActive,
		CreatedAt:     mdl.CreatedAt,
		UpdatedAt:     mdl.UpdatedAt,
	}
}

func (m *PlanFeatureMapper) ValueToModel(e *entity.PlanFeatureValue) *model.PlanFeatureValue {
	if e == nil {
		return nil
	}
	return &model.PlanFeatureValue{
		Id:            e.Id,
		PlanId:        e.PlanId,
		FeatureId:     e.FeatureId,
		ApplicationId: e.ApplicationId,
		Value:         e.Value,
		IsUnlimited:   e.IsUnlimited,
		DisplayValue:  e.DisplayValue,
		IsActive:      e.IsActive,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func (m *PlanFeatureMapper) ValuesToEntities(models []*model.PlanFeatureValue) []*entity.PlanFeatureValue {
	entities := make([]*entity.PlanFeatureValue, 0, len(models))
	for _, mdl := range models {
		entities = append(entities, m.ValueToEntity(mdl))
	}
	return entities
}
