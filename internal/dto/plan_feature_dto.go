package dto

import (
	"time"

	"github.com/google/uuid"
)

// FieldValueInput sets one custom field of a plan configuration
type FieldValueInput struct {
	CustomFieldId uuid.UUID   `json:"custom_field_id" validate:"required"`
	Value         interface{} `json:"value"`
	IsUnlimited   bool        `json:"is_unlimited"`
}

// PlanFeatureInput is one entry of a plan's feature set
type PlanFeatureInput struct {
	FeatureId         uuid.UUID         `json:"feature_id" validate:"required"`
	Status            string            `json:"status" validate:"required,oneof=enabled limited unlimited disabled coming_soon"`
	CustomName        string            `json:"custom_name,omitempty" validate:"max=255"`
	CustomDescription string            `json:"custom_description,omitempty"`
	IsHighlighted     bool              `json:"is_highlighted"`
	HighlightText     string            `json:"highlight_text,omitempty" validate:"max=255"`
	SortOrder         *int              `json:"sort_order,omitempty"`
	FieldValues       []FieldValueInput `json:"field_values,omitempty" validate:"dive"`
}

type ConfigurePlanFeaturesRequest struct {
	ApplicationId uuid.UUID          `json:"application_id" validate:"required"`
	Features      []PlanFeatureInput `json:"features" validate:"required,dive"`
}

type AddPlanFeatureRequest struct {
	ApplicationId uuid.UUID `json:"application_id" validate:"required"`
	PlanFeatureInput
}

// UpdatePlanFeatureRequest is a partial update. A non-nil field_values
// replaces the whole value set of the configuration.
type UpdatePlanFeatureRequest struct {
	Status            *string           `json:"status,omitempty" validate:"omitempty,oneof=enabled limited unlimited disabled coming_soon"`
	CustomName        *string           `json:"custom_name,omitempty" validate:"omitempty,max=255"`
	CustomDescription *string           `json:"custom_description,omitempty"`
	IsHighlighted     *bool             `json:"is_highlighted,omitempty"`
	HighlightText     *string           `json:"highlight_text,omitempty" validate:"omitempty,max=255"`
	SortOrder         *int              `json:"sort_order,omitempty"`
	FieldValues       []FieldValueInput `json:"field_values,omitempty" validate:"omitempty,dive"`
}

type FeatureOrderInput struct {
	FeatureId uuid.UUID `json:"feature_id" validate:"required"`
	SortOrder int       `json:"sort_order" validate:"min=0"`
}

type UpdateFeatureOrderRequest struct {
	Orders []FeatureOrderInput `json:"orders" validate:"required,min=1,dive"`
}

type FieldValueResponse struct {
	Id            uuid.UUID   `json:"id"`
	CustomFieldId uuid.UUID   `json:"custom_field_id"`
	Name          string      `json:"name"`
	DisplayName   string      `json:"display_name"`
	DataType      string      `json:"data_type"`
	Unit          string      `json:"unit"`
	Value         interface{} `json:"value"`
	DisplayValue  string      `json:"display_value"`
	IsUnlimited   bool        `json:"is_unlimited"`
}

// PlanFeatureResponse is a configuration joined with its catalog feature
type PlanFeatureResponse struct {
	Id                uuid.UUID            `json:"id"`
	PlanId            uuid.UUID            `json:"plan_id"`
	FeatureId         uuid.UUID            `json:"feature_id"`
	ApplicationId     uuid.UUID            `json:"application_id"`
	Status            string               `json:"status"`
	CustomName        string               `json:"custom_name"`
	CustomDescription string               `json:"custom_description"`
	IsHighlighted     bool                 `json:"is_highlighted"`
	HighlightText     string               `json:"highlight_text"`
	SortOrder         int                  `json:"sort_order"`
	Feature           *FeatureResponse     `json:"feature,omitempty"`
	FieldValues       []FieldValueResponse `json:"field_values"`
	CreatedAt         time.Time            `json:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at"`
}
