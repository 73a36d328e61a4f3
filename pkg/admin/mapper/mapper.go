package mapper

import (
	"saas-manager-be/internal/dto"
	"saas-manager-be/internal/entity"
	"saas-manager-be/pkg/admin/featurevalue"
	"saas-manager-be/pkg/admin/valuefmt"
)

// FeatureToResponse converts a catalog feature to its response DTO
func FeatureToResponse(f *entity.Feature) *dto.FeatureResponse {
	if f == nil {
		return nil
	}
	fields := make([]dto.CustomFieldResponse, 0, len(f.CustomFields))
	for i := range f.CustomFields {
		fields = append(fields, *CustomFieldToResponse(&f.CustomFields[i]))
	}
	return &dto.FeatureResponse{
		Id:            f.Id,
		Key:           f.Key,
		Name:          f.Name,
		Description:   f.Description,
		Category:      f.Category,
		Unit:          f.Unit,
		ApplicationId: f.ApplicationId,
		IsGlobal:      f.IsGlobal,
		IsActive:      f.IsActive,
		SortOrder:     f.SortOrder,
		CustomFields:  fields,
		CreatedAt:     f.CreatedAt,
		UpdatedAt:     f.UpdatedAt,
	}
}

// FeaturesToResponse converts multiple features, never returning nil
func FeaturesToResponse(features []*entity.Feature) []*dto.FeatureResponse {
	res := make([]*dto.FeatureResponse, 0, len(features))
	for _, f := range features {
		res = append(res, FeatureToResponse(f))
	}
	return res
}

func CustomFieldToResponse(cf *entity.FeatureCustomField) *dto.CustomFieldResponse {
	if cf == nil {
		return nil
	}
	options := cf.EnumOptions
	if options == nil {
		options = []string{}
	}
	return &dto.CustomFieldResponse{
		Id:           cf.Id,
		FeatureId:    cf.FeatureId,
		Name:         cf.Name,
		DisplayName:  cf.DisplayName,
		Description:  cf.Description,
		DataType:     string(cf.DataType),
		Unit:         cf.Unit,
		Required:     cf.Required,
		DefaultValue: cf.DefaultValue,
		Min:          cf.Min,
		Max:          cf.Max,
		EnumOptions:  options,
		SortOrder:    cf.SortOrder,
	}
}

// PlanFeatureToResponse joins a configuration with its feature metadata.
// Field names and types come from the feature when it is attached.
func PlanFeatureToResponse(cfg *entity.PlanFeatureConfiguration) *dto.PlanFeatureResponse {
	if cfg == nil {
		return nil
	}
	values := make([]dto.FieldValueResponse, 0, len(cfg.FieldValues))
	for _, v := range cfg.FieldValues {
		res := dto.FieldValueResponse{
			Id:            v.Id,
			CustomFieldId: v.CustomFieldId,
			Value:         v.Value,
			DisplayValue:  v.DisplayValue,
			IsUnlimited:   v.IsUnlimited,
		}
		if cfg.Feature != nil {
			if field := cfg.Feature.FieldById(v.CustomFieldId); field != nil {
				res.Name = field.Name
				res.DisplayName = field.DisplayName
				res.DataType = string(field.DataType)
				res.Unit = field.Unit
			}
		}
		values = append(values, res)
	}

	return &dto.PlanFeatureResponse{
		Id:                cfg.Id,
		PlanId:            cfg.PlanId,
		FeatureId:         cfg.FeatureId,
		ApplicationId:     cfg.ApplicationId,
		Status:            string(cfg.Status),
		CustomName:        cfg.CustomName,
		CustomDescription: cfg.CustomDescription,
		IsHighlighted:     cfg.IsHighlighted,
		HighlightText:     cfg.HighlightText,
		SortOrder:         cfg.SortOrder,
		Feature:           FeatureToResponse(cfg.Feature),
		FieldValues:       values,
		CreatedAt:         cfg.CreatedAt,
		UpdatedAt:         cfg.UpdatedAt,
	}
}

func PlanFeaturesToResponse(configs []*entity.PlanFeatureConfiguration) []*dto.PlanFeatureResponse {
	res := make([]*dto.PlanFeatureResponse, 0, len(configs))
	for _, cfg := range configs {
		res = append(res, PlanFeatureToResponse(cfg))
	}
	return res
}

// PlanFeatureValueToResponse flattens the joined feature into the value
func PlanFeatureValueToResponse(v *entity.PlanFeatureValue) *dto.PlanFeatureValueResponse {
	if v == nil {
		return nil
	}
	res := &dto.PlanFeatureValueResponse{
		Id:            v.Id,
		PlanId:        v.PlanId,
		FeatureId:     v.FeatureId,
		ApplicationId: v.ApplicationId,
		Value:         v.Value,
		IsUnlimited:   v.IsUnlimited,
		DisplayValue:  v.DisplayValue,
		IsActive:      v.IsActive,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
	if v.Feature != nil {
		res.FeatureKey = v.Feature.Key
		res.FeatureName = v.Feature.Name
		res.FeatureDescription = v.Feature.Description
		res.FeatureUnit = v.Feature.Unit
	}
	return res
}

func PlanFeatureValuesToResponse(values []*entity.PlanFeatureValue) []*dto.PlanFeatureValueResponse {
	res := make([]*dto.PlanFeatureValueResponse, 0, len(values))
	for _, v := range values {
		res = append(res, PlanFeatureValueToResponse(v))
	}
	return res
}

// BulkResultToResponse keeps the processed and failed lists non-nil
func BulkResultToResponse(result *featurevalue.BulkResult) *dto.BulkUpsertResultResponse {
	res := &dto.BulkUpsertResultResponse{
		Processed: make([]dto.PlanFeatureValueResponse, 0, len(result.Processed)),
		Failed:    make([]dto.BulkFailureResponse, 0, len(result.Failed)),
	}
	for _, v := range result.Processed {
		res.Processed = append(res.Processed, *PlanFeatureValueToResponse(v))
	}
	for _, f := range result.Failed {
		res.Failed = append(res.Failed, dto.BulkFailureResponse{FeatureId: f.FeatureId, Error: f.Err.Error()})
	}
	return res
}

func FieldTypesToResponse(types []valuefmt.FieldType) []dto.FieldTypeResponse {
	res := make([]dto.FieldTypeResponse, 0, len(types))
	for _, t := range types {
		res = append(res, dto.FieldTypeResponse{Value: string(t.Value), Label: t.Label})
	}
	return res
}

func UnitsToResponse(units []valuefmt.Unit) []dto.UnitResponse {
	res := make([]dto.UnitResponse, 0, len(units))
	for _, u := range units {
		res = append(res, dto.UnitResponse{Value: u.Value, Label: u.Label, Category: u.Category})
	}
	return res
}

func UnitCategoriesToResponse(categories []valuefmt.UnitCategory) []dto.UnitCategoryResponse {
	res := make([]dto.UnitCategoryResponse, 0, len(categories))
	for _, c := range categories {
		res = append(res, dto.UnitCategoryResponse{Value: c.Value, Label: c.Label})
	}
	return res
}
