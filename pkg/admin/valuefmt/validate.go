package valuefmt

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"saas-manager-be/internal/entity"
)

var ErrInvalidValue = errors.New("invalid field value")

// ResolvedValue is a custom field value ready to be stored.
type ResolvedValue struct {
	Value        interface{}
	DisplayValue string
	IsUnlimited  bool
}

// ResolveFieldValue applies the field default when raw is nil, validates the
// result against the field definition and computes its display string.
// A nil result is allowed here; required checks depend on the plan status
// and are done by the caller.
func ResolveFieldValue(field *entity.FeatureCustomField, raw interface{}, unlimitedFlag bool, fallbackUnit string) (ResolvedValue, error) {
	value := raw
	if value == nil {
		value = field.DefaultValue
	}

	unlimited := unlimitedFlag
	if field.DataType == entity.FieldTypeNumber && value != nil {
		n, ok := toFloat(value)
		if !ok {
			return ResolvedValue{}, fmt.Errorf("%w: %s must be a number", ErrInvalidValue, field.Name)
		}
		value = n
		unlimited = IsUnlimited(n, unlimitedFlag)
	} else if field.DataType != entity.FieldTypeNumber {
		// Only numeric fields carry a limit
		unlimited = false
	}

	if value != nil && !unlimited {
		if err := ValidateFieldValue(field, value); err != nil {
			return ResolvedValue{}, err
		}
	}

	return ResolvedValue{
		Value:        value,
		DisplayValue: DisplayFieldValue(field, value, unlimited, fallbackUnit),
		IsUnlimited:  unlimited,
	}, nil
}

// ValidateFieldValue checks a non-nil, non-unlimited value against the field's type and bounds.
func ValidateFieldValue(field *entity.FeatureCustomField, value interface{}) error {
	switch field.DataType {
	case entity.FieldTypeNumber:
		n, ok := toFloat(value)
		if !ok {
			return fmt.Errorf("%w: %s must be a number", ErrInvalidValue, field.Name)
		}
		if field.Min != nil && n < *field.Min {
			return fmt.Errorf("%w: %s must be >= %s", ErrInvalidValue, field.Name, FormatNumber(*field.Min))
		}
		if field.Max != nil && n > *field.Max {
			return fmt.Errorf("%w: %s must be <= %s", ErrInvalidValue, field.Name, FormatNumber(*field.Max))
		}
	case entity.FieldTypeBoolean:
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("%w: %s must be a boolean", ErrInvalidValue, field.Name)
		}
	case entity.FieldTypeString:
		if _, ok := value.(string); !ok {
			return fmt.Errorf("%w: %s must be a string", ErrInvalidValue, field.Name)
		}
	case entity.FieldTypeEnum:
		s, ok := value.(string)
		if !ok || !slices.Contains(field.EnumOptions, s) {
			return fmt.Errorf("%w: %s must be one of %v", ErrInvalidValue, field.Name, field.EnumOptions)
		}
	case entity.FieldTypeDate:
		s, ok := value.(string)
		if !ok || !isDate(s) {
			return fmt.Errorf("%w: %s must be a date (YYYY-MM-DD or RFC3339)", ErrInvalidValue, field.Name)
		}
	case entity.FieldTypeJSON:
		// any decoded JSON is accepted
	default:
		return fmt.Errorf("%w: unknown data type %q", ErrInvalidValue, field.DataType)
	}
	return nil
}

// ValidateDefinition checks the constraints of a custom field definition itself.
func ValidateDefinition(field *entity.FeatureCustomField) error {
	if !IsFieldType(field.DataType) {
		return fmt.Errorf("%w: unknown data type %q", ErrInvalidValue, field.DataType)
	}
	if field.Min != nil && field.Max != nil && *field.Min > *field.Max {
		return fmt.Errorf("%w: min must not exceed max", ErrInvalidValue)
	}
	if field.DataType == entity.FieldTypeEnum && len(field.EnumOptions) == 0 {
		return fmt.Errorf("%w: enum field %s needs enum options", ErrInvalidValue, field.Name)
	}
	if field.DefaultValue != nil {
		if field.DataType == entity.FieldTypeNumber {
			if n, ok := toFloat(field.DefaultValue); ok && n == UnlimitedValue {
				return nil
			}
		}
		if err := ValidateFieldValue(field, field.DefaultValue); err != nil {
			return fmt.Errorf("default value: %w", err)
		}
	}
	return nil
}

func isDate(s string) bool {
	if _, err := time.Parse(time.DateOnly, s); err == nil {
		return true
	}
	_, err := time.Parse(time.RFC3339, s)
	return err == nil
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
