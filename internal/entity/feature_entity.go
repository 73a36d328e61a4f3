// FILE: internal/entity/feature_entity.go
// Domain entities for the feature catalog
package entity

import (
	"time"

	"github.com/google/uuid"
)

type FieldType string

const (
	FieldTypeNumber  FieldType = "number"
	FieldTypeString  FieldType = "string"
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeDate    FieldType = "date"
	FieldTypeEnum    FieldType = "enum"
	FieldTypeJSON    FieldType = "json"
)

// Feature represents a capability an application exposes to subscribers
type Feature struct {
	Id            uuid.UUID
	ApplicationId *uuid.UUID // nil for global features
	IsGlobal      bool
	Key           string // Unique per application: max_emails, storage, etc.
	Name          string
	Description   string
	Category      string
	Unit          string // Default unit for numeric values: emails, gb, users...
	IsActive      bool
	SortOrder     int
	CustomFields  []FeatureCustomField
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// FeatureCustomField is a typed parameter owned by a Feature
type FeatureCustomField struct {
	Id           uuid.UUID
	FeatureId    uuid.UUID
	Name         string
	DisplayName  string
	Description  string
	DataType     FieldType
	Unit         string
	Required     bool
	DefaultValue interface{} // decoded JSON
	Min          *float64
	Max          *float64
	EnumOptions  []string
	SortOrder    int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FieldById returns the custom field with the given id, nil when absent.
func (f *Feature) FieldById(id uuid.UUID) *FeatureCustomField {
	for i := range f.CustomFields {
		if f.CustomFields[i].Id == id {
			return &f.CustomFields[i]
		}
	}
	return nil
}
