package plan

import (
	"errors"

	"saas-manager-be/internal/dto"
	"saas-manager-be/internal/entity"
	"saas-manager-be/internal/pkg/serverutils"
	"saas-manager-be/pkg/admin/valuefmt"

	"github.com/google/uuid"
)

// ResolveFieldValues turns submitted values into stored values for feature.
// Fields left out fall back to their default. The result follows the
// feature's field order.
func ResolveFieldValues(feature *entity.Feature, status entity.FeatureStatus, inputs []dto.FieldValueInput) ([]entity.FeatureCustomFieldValue, error) {
	byField := make(map[uuid.UUID]dto.FieldValueInput, len(inputs))
	for _, in := range inputs {
		if feature.FieldById(in.CustomFieldId) == nil {
			return nil, serverutils.BadRequest("Custom field %s does not belong to feature '%s'", in.CustomFieldId, feature.Key)
		}
		if _, dup := byField[in.CustomFieldId]; dup {
			return nil, serverutils.BadRequest("Custom field %s is set more than once", in.CustomFieldId)
		}
		byField[in.CustomFieldId] = in
	}

	values := make([]entity.FeatureCustomFieldValue, 0, len(feature.CustomFields))
	for i := range feature.CustomFields {
		field := &feature.CustomFields[i]
		in, submitted := byField[field.Id]
		if !submitted && field.DefaultValue == nil {
			continue
		}

		resolved, err := valuefmt.ResolveFieldValue(field, in.Value, in.IsUnlimited, feature.Unit)
		if err != nil {
			if errors.Is(err, valuefmt.ErrInvalidValue) {
				return nil, serverutils.WrapBadRequest(err, "Invalid value for '%s'", field.Name)
			}
			return nil, err
		}
		if resolved.Value == nil && !resolved.IsUnlimited {
			continue
		}

		values = append(values, entity.FeatureCustomFieldValue{
			CustomFieldId: field.Id,
			Value:         resolved.Value,
			DisplayValue:  resolved.DisplayValue,
			IsUnlimited:   resolved.IsUnlimited,
		})
	}

	if err := checkRequired(feature, status, values); err != nil {
		return nil, err
	}
	return values, nil
}

// checkRequired enforces required fields on limited configurations
func checkRequired(feature *entity.Feature, status entity.FeatureStatus, values []entity.FeatureCustomFieldValue) error {
	if status != entity.FeatureStatusLimited {
		return nil
	}
	set := make(map[uuid.UUID]bool, len(values))
	for _, v := range values {
		set[v.CustomFieldId] = true
	}
	for _, field := range feature.CustomFields {
		if field.Required && !set[field.Id] {
			return serverutils.BadRequest("Custom field '%s' is required for limited features", field.Name)
		}
	}
	return nil
}
