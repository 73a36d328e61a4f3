package valuefmt

import (
	"testing"

	"saas-manager-be/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestDisplay(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		unit      string
		unlimited bool
		want      string
	}{
		{"emails", 50, "emails", false, "50 emails/mois"},
		{"gigabytes", 10, "gb", false, "10 GB"},
		{"decimal", 2.5, "gb", false, "2.5 GB"},
		{"sentinel is unlimited", -1, "emails", false, "Illimité"},
		{"flag wins over value", 100, "users", true, "Illimité"},
		{"flag wins without unit", 3, "", true, "Illimité"},
		{"api calls", 10000, "api_calls", false, "10000 appels API/mois"},
		{"seats", 5, "seats", false, "5 sièges"},
		{"boolean on", 1, "boolean", false, "Inclus"},
		{"boolean off", 0, "boolean", false, "Non inclus"},
		{"unknown unit", 7, "widgets", false, "7 widgets"},
		{"no unit", 7, "", false, "7"},
		{"zero", 0, "sms", false, "0 SMS/mois"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Display(tt.value, tt.unit, tt.unlimited))
		})
	}
}

func TestIsUnlimited(t *testing.T) {
	assert.True(t, IsUnlimited(-1, false))
	assert.True(t, IsUnlimited(10, true))
	assert.False(t, IsUnlimited(0, false))
	assert.False(t, IsUnlimited(-2, false))
}

func TestDisplayFieldValue(t *testing.T) {
	numberField := &entity.FeatureCustomField{Name: "limit", DataType: entity.FieldTypeNumber}
	withUnit := &entity.FeatureCustomField{Name: "quota", DataType: entity.FieldTypeNumber, Unit: "mb"}

	assert.Equal(t, "20 emails/mois", DisplayFieldValue(numberField, float64(20), false, "emails"))
	assert.Equal(t, "20 MB", DisplayFieldValue(withUnit, float64(20), false, "emails"))
	assert.Equal(t, "Illimité", DisplayFieldValue(withUnit, float64(20), true, ""))
	assert.Equal(t, "Inclus", DisplayFieldValue(&entity.FeatureCustomField{DataType: entity.FieldTypeBoolean}, true, false, ""))
	assert.Equal(t, "Non inclus", DisplayFieldValue(&entity.FeatureCustomField{DataType: entity.FieldTypeBoolean}, false, false, ""))
	assert.Equal(t, "premium", DisplayFieldValue(&entity.FeatureCustomField{DataType: entity.FieldTypeEnum}, "premium", false, ""))
	assert.Equal(t, `{"a":1}`, DisplayFieldValue(&entity.FeatureCustomField{DataType: entity.FieldTypeJSON}, map[string]interface{}{"a": 1}, false, ""))
	assert.Equal(t, "", DisplayFieldValue(numberField, nil, false, "emails"))
}
