// FILE: internal/mapper/feature_mapper.go
// Mapper for Feature entity <-> model conversion
package mapper

import (
	"encoding/json"

	"saas-manager-be/internal/entity"
	"saas-manager-be/internal/model"
)

type FeatureMapper struct{}

func NewFeatureMapper() *FeatureMapper {
	return &FeatureMapper{}
}

func (m *FeatureMapper) ToEntity(mdl *model.Feature) *entity.Feature {
	if mdl == nil {
		return nil
	}
	fields := make([]entity.FeatureCustomField, 0, len(mdl.CustomFields))
	for i := range mdl.CustomFields {
		fields = append(fields, *m.CustomFieldToEntity(&mdl.CustomFields[i]))
	}
	return &entity.Feature{
		Id:            mdl.Id,
		ApplicationId: mdl.ApplicationId,
		IsGlobal:      mdl.IsGlobal,
		Key:           mdl.Key,
		Name:          mdl.Name,
		Description:   mdl.Description,
		Category:      mdl.Category,
		Unit:          mdl.Unit,
		IsActive:      mdl.IsActive,
		SortOrder:     mdl.SortOrder,
		CustomFields:  fields,
		CreatedAt:     mdl.CreatedAt,
		UpdatedAt:     mdl.UpdatedAt,
	}
}

// ToModel leaves CustomFields empty; repositories persist fields explicitly.
func (m *FeatureMapper) ToModel(e *entity.Feature) *model.Feature {
	if e == nil {
		return nil
	}
	return &model.Feature{
		Id:            e.Id,
		ApplicationId: e.ApplicationId,
		IsGlobal:      e.IsGlobal,
		Key:           e.Key,
		Name:          e.Name,
		Description:   e.Description,
		Category:      e.Category,
		Unit:          e.Unit,
		IsActive:      e.IsActive,
		SortOrder:     e.SortOrder,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func (m *FeatureMapper) ToEntities(models []*model.Feature) []*entity.Feature {
	entities := make([]*entity.Feature, 0, len(models))
	for _, mdl := range models {
		entities = append(entities, m.ToEntity(mdl))
	}
	return entities
}

func (m *FeatureMapper) CustomFieldToEntity(mdl *model.FeatureCustomField) *entity.FeatureCustomField {
	if mdl == nil {
		return nil
	}
	var options []string
	if len(mdl.EnumOptions) > 0 {
		_ = json.Unmarshal(mdl.EnumOptions, &options)
	}
	return &entity.FeatureCustomField{
		Id:           mdl.Id,
		FeatureId:    mdl.FeatureId,
		Name:         mdl.Name,
		DisplayName:  mdl.DisplayName,
		Description:  mdl.Description,
		DataType:     entity.FieldType(mdl.DataType),
		Unit:         mdl.Unit,
		Required:     mdl.Required,
		DefaultValue: decodeJSON(mdl.DefaultValue),
		Min:          mdl.Min,
		Max:          mdl.Max,
		EnumOptions:  options,
		SortOrder:    mdl.SortOrder,
		CreatedAt:    mdl.CreatedAt,
		UpdatedAt:    mdl.UpdatedAt,
	}
}

func (m *FeatureMapper) CustomFieldToModel(e *entity.FeatureCustomField) (*model.FeatureCustomField, error) {
	if e == nil {
		return nil, nil
	}
	defaultValue, err := encodeJSON(e.DefaultValue)
	if err != nil {
		return nil, err
	}
	var options model.JSONValue
	if len(e.EnumOptions) > 0 {
		if options, err = json.Marshal(e.EnumOptions); err != nil {
			return nil, err
		}
	}
	return &model.FeatureCustomField{
		Id:           e.Id,
		FeatureId:    e.FeatureId,
		Name:         e.Name,
		DisplayName:  e.DisplayName,
		Description:  e.Description,
		DataType:     string(e.DataType),
		Unit:         e.Unit,
		Required:     e.Required,
		DefaultValue: defaultValue,
		Min:          e.Min,
		Max:          e.Max,
		EnumOptions:  options,
		SortOrder:    e.SortOrder,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}, nil
}

func decodeJSON(raw model.JSONValue) interface{} {
	if len(raw) == 0 {
		return nil
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return v
}

func encodeJSON(v interface{}) (model.JSONValue, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return model.JSONValue(raw), nil
}
