package valuefmt

import (
	"encoding/json"
	"fmt"
	"strconv"

	"saas-manager-be/internal/entity"
)

// UnlimitedValue is the numeric sentinel for "no limit".
const UnlimitedValue float64 = -1

func IsUnlimited(value float64, flag bool) bool {
	return flag || value == UnlimitedValue
}

// FormatNumber renders the shortest exact decimal form: 50 -> "50", 2.5 -> "2.5".
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Display renders a numeric value for its unit.
func Display(value float64, unit string, unlimited bool) string {
	if IsUnlimited(value, unlimited) {
		return UnlimitedLabel
	}
	if unit == UnitBoolean {
		if value > 0 {
			return IncludedLabel
		}
		return ExcludedLabel
	}

	n := FormatNumber(value)
	if unit == "" {
		return n
	}
	if u, ok := unitsByValue[unit]; ok {
		return fmt.Sprintf(u.pattern, n)
	}
	return n + " " + unit
}

// DisplayFieldValue renders an already validated custom field value.
// fallbackUnit is the feature's unit, used when the field has none.
func DisplayFieldValue(field *entity.FeatureCustomField, value interface{}, unlimited bool, fallbackUnit string) string {
	if unlimited {
		return UnlimitedLabel
	}
	if value == nil {
		return ""
	}

	switch field.DataType {
	case entity.FieldTypeNumber:
		n, _ := toFloat(value)
		unit := field.Unit
		if unit == "" {
			unit = fallbackUnit
		}
		return Display(n, unit, false)
	case entity.FieldTypeBoolean:
		if b, _ := value.(bool); b {
			return IncludedLabel
		}
		return ExcludedLabel
	case entity.FieldTypeJSON:
		raw, err := json.Marshal(value)
		if err != nil {
			return ""
		}
		return string(raw)
	default:
		return fmt.Sprint(value)
	}
}
