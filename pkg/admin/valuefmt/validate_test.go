package valuefmt

import (
	"testing"

	"saas-manager-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(f float64) *float64 { return &f }

func TestValidateFieldValue(t *testing.T) {
	bounded := &entity.FeatureCustomField{Name: "limit", DataType: entity.FieldTypeNumber, Min: ptr(0), Max: ptr(100)}
	enum := &entity.FeatureCustomField{Name: "tier", DataType: entity.FieldTypeEnum, EnumOptions: []string{"basic", "premium"}}

	tests := []struct {
		name    string
		field   *entity.FeatureCustomField
		value   interface{}
		wantErr bool
	}{
		{"number in range", bounded, float64(50), false},
		{"number at max", bounded, float64(100), false},
		{"number above max", bounded, float64(101), true},
		{"number below min", bounded, float64(-5), true},
		{"number as string", bounded, "50", true},
		{"int accepted", bounded, 10, false},
		{"enum option", enum, "premium", false},
		{"enum unknown", enum, "gold", true},
		{"enum not string", enum, 1.0, true},
		{"boolean", &entity.FeatureCustomField{DataType: entity.FieldTypeBoolean}, true, false},
		{"boolean as string", &entity.FeatureCustomField{DataType: entity.FieldTypeBoolean}, "true", true},
		{"string", &entity.FeatureCustomField{DataType: entity.FieldTypeString}, "hello", false},
		{"date only", &entity.FeatureCustomField{DataType: entity.FieldTypeDate}, "2025-01-31", false},
		{"date rfc3339", &entity.FeatureCustomField{DataType: entity.FieldTypeDate}, "2025-01-31T10:00:00Z", false},
		{"bad date", &entity.FeatureCustomField{DataType: entity.FieldTypeDate}, "31/01/2025", true},
		{"json object", &entity.FeatureCustomField{DataType: entity.FieldTypeJSON}, map[string]interface{}{"k": "v"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFieldValue(tt.field, tt.value)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidValue)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestResolveFieldValue(t *testing.T) {
	field := &entity.FeatureCustomField{
		Name:         "monthly_limit",
		DataType:     entity.FieldTypeNumber,
		Max:          ptr(1000),
		DefaultValue: float64(100),
	}

	t.Run("uses default when value missing", func(t *testing.T) {
		got, err := ResolveFieldValue(field, nil, false, "emails")
		require.NoError(t, err)
		assert.Equal(t, float64(100), got.Value)
		assert.Equal(t, "100 emails/mois", got.DisplayValue)
		assert.False(t, got.IsUnlimited)
	})

	t.Run("sentinel skips bounds", func(t *testing.T) {
		got, err := ResolveFieldValue(field, float64(-1), false, "emails")
		require.NoError(t, err)
		assert.True(t, got.IsUnlimited)
		assert.Equal(t, "Illimité", got.DisplayValue)
	})

	t.Run("flag skips bounds", func(t *testing.T) {
		got, err := ResolveFieldValue(field, float64(5000), true, "emails")
		require.NoError(t, err)
		assert.True(t, got.IsUnlimited)
	})

	t.Run("out of bounds", func(t *testing.T) {
		_, err := ResolveFieldValue(field, float64(5000), false, "emails")
		assert.ErrorIs(t, err, ErrInvalidValue)
	})

	t.Run("unlimited flag ignored for non numeric", func(t *testing.T) {
		enum := &entity.FeatureCustomField{Name: "tier", DataType: entity.FieldTypeEnum, EnumOptions: []string{"basic"}}
		got, err := ResolveFieldValue(enum, "basic", true, "")
		require.NoError(t, err)
		assert.False(t, got.IsUnlimited)
		assert.Equal(t, "basic", got.DisplayValue)
	})
}

func TestValidateDefinition(t *testing.T) {
	assert.NoError(t, ValidateDefinition(&entity.FeatureCustomField{Name: "n", DataType: entity.FieldTypeNumber, Min: ptr(0), Max: ptr(10)}))
	assert.ErrorIs(t, ValidateDefinition(&entity.FeatureCustomField{Name: "n", DataType: "decimal"}), ErrInvalidValue)
	assert.ErrorIs(t, ValidateDefinition(&entity.FeatureCustomField{Name: "n", DataType: entity.FieldTypeNumber, Min: ptr(10), Max: ptr(1)}), ErrInvalidValue)
	assert.ErrorIs(t, ValidateDefinition(&entity.FeatureCustomField{Name: "e", DataType: entity.FieldTypeEnum}), ErrInvalidValue)
	assert.ErrorIs(t, ValidateDefinition(&entity.FeatureCustomField{Name: "n", DataType: entity.FieldTypeNumber, Max: ptr(10), DefaultValue: float64(20)}), ErrInvalidValue)
	assert.NoError(t, ValidateDefinition(&entity.FeatureCustomField{Name: "n", DataType: entity.FieldTypeNumber, Max: ptr(10), DefaultValue: float64(-1)}))
}

func TestLookupTables(t *testing.T) {
	u, ok := LookupUnit("gb")
	require.True(t, ok)
	assert.Equal(t, "storage", u.Category)

	_, ok = LookupUnit("widgets")
	assert.False(t, ok)

	assert.Len(t, FieldTypes(), 6)
	assert.NotEmpty(t, UnitCategories())
	for _, unit := range Units() {
		found := false
		for _, c := range UnitCategories() {
			if c.Value == unit.Category {
				found = true
			}
		}
		assert.True(t, found, "unit %s has unknown category %s", unit.Value, unit.Category)
	}
}
