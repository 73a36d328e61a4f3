// FILE: internal/dto/feature_dto.go
// DTOs for Feature catalog CRUD
package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- Feature Catalog DTOs ---

// CreateFeatureRequest adds a feature to an application catalog, or to the
// global catalog when application_id is omitted or is_global is set.
type CreateFeatureRequest struct {
	Key           string                     `json:"key" validate:"required,max=100"`
	Name          string                     `json:"name" validate:"required,max=255"`
	Description   string                     `json:"description,omitempty"`
	Category      string                     `json:"category,omitempty"`
	Unit          string                     `json:"unit,omitempty"`
	ApplicationId *uuid.UUID                 `json:"application_id,omitempty"`
	IsGlobal      bool                       `json:"is_global"`
	IsActive      *bool                      `json:"is_active,omitempty"` // defaults to true
	SortOrder     int                        `json:"sort_order"`
	CustomFields  []CreateCustomFieldRequest `json:"custom_fields,omitempty" validate:"dive"`
}

// UpdateFeatureRequest is a partial update; nil fields are left untouched
type UpdateFeatureRequest struct {
	Key         *string `json:"key,omitempty" validate:"omitempty,min=1,max=100"`
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	Unit        *string `json:"unit,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
	SortOrder   *int    `json:"sort_order,omitempty"`
}

// FeatureFilter is built from the list query string
type FeatureFilter struct {
	ApplicationId *uuid.UUID
	IsGlobal      *bool
	Category      string
	IsActive      *bool
	PageQuery
}

// FeatureResponse is returned when getting feature(s) from the catalog
type FeatureResponse struct {
	Id            uuid.UUID             `json:"id"`
	Key           string                `json:"key"`
	Name          string                `json:"name"`
	Description   string                `json:"description"`
	Category      string                `json:"category"`
	Unit          string                `json:"unit"`
	ApplicationId *uuid.UUID            `json:"application_id"`
	IsGlobal      bool                  `json:"is_global"`
	IsActive      bool                  `json:"is_active"`
	SortOrder     int                   `json:"sort_order"`
	CustomFields  []CustomFieldResponse `json:"custom_fields"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// --- Custom Field DTOs ---

type CreateCustomFieldRequest struct {
	Name         string      `json:"name" validate:"required,max=100"`
	DisplayName  string      `json:"display_name" validate:"required,max=255"`
	Description  string      `json:"description,omitempty"`
	DataType     string      `json:"data_type" validate:"required,oneof=number string boolean date enum json"`
	Unit         string      `json:"unit,omitempty"`
	Required     bool        `json:"required"`
	DefaultValue interface{} `json:"default_value,omitempty"`
	Min          *float64    `json:"min,omitempty"`
	Max          *float64    `json:"max,omitempty"`
	EnumOptions  []string    `json:"enum_options,omitempty" validate:"omitempty,dive,required"`
	SortOrder    int         `json:"sort_order"`
}

// UpdateCustomFieldRequest is a partial update. A null default_value leaves
// the current default in place.
type UpdateCustomFieldRequest struct {
	Name         *string     `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	DisplayName  *string     `json:"display_name,omitempty" validate:"omitempty,min=1,max=255"`
	Description  *string     `json:"description,omitempty"`
	DataType     *string     `json:"data_type,omitempty" validate:"omitempty,oneof=number string boolean date enum json"`
	Unit         *string     `json:"unit,omitempty"`
	Required     *bool       `json:"required,omitempty"`
	DefaultValue interface{} `json:"default_value,omitempty"`
	Min          *float64    `json:"min,omitempty"`
	Max          *float64    `json:"max,omitempty"`
	EnumOptions  []string    `json:"enum_options,omitempty" validate:"omitempty,dive,required"`
	SortOrder    *int        `json:"sort_order,omitempty"`
}

type CustomFieldResponse struct {
	Id           uuid.UUID   `json:"id"`
	FeatureId    uuid.UUID   `json:"feature_id"`
	Name         string      `json:"name"`
	DisplayName  string      `json:"display_name"`
	Description  string      `json:"description"`
	DataType     string      `json:"data_type"`
	Unit         string      `json:"unit"`
	Required     bool        `json:"required"`
	DefaultValue interface{} `json:"default_value"`
	Min          *float64    `json:"min"`
	Max          *float64    `json:"max"`
	EnumOptions  []string    `json:"enum_options"`
	SortOrder    int         `json:"sort_order"`
}
