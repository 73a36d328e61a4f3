package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreatePlanFeatureValueRequest binds a numeric value to (plan, feature).
// A value of -1 means unlimited.
type CreatePlanFeatureValueRequest struct {
	PlanId        uuid.UUID  `json:"plan_id" validate:"required"`
	FeatureId     uuid.UUID  `json:"feature_id" validate:"required"`
	ApplicationId *uuid.UUID `json:"application_id,omitempty"`
	Value         *float64   `json:"value" validate:"required,gte=-1"`
	IsUnlimited   bool       `json:"is_unlimited"`
}

type UpdatePlanFeatureValueRequest struct {
	Value       *float64 `json:"value,omitempty" validate:"omitempty,gte=-1"`
	IsUnlimited *bool    `json:"is_unlimited,omitempty"`
	IsActive    *bool    `json:"is_active,omitempty"`
}

type PlanFeatureValueEntry struct {
	FeatureId   uuid.UUID `json:"feature_id" validate:"required"`
	Value       *float64  `json:"value" validate:"required,gte=-1"`
	IsUnlimited bool      `json:"is_unlimited"`
}

// BulkUpsertPlanFeatureValuesRequest upserts entries; rows not listed are kept
type BulkUpsertPlanFeatureValuesRequest struct {
	ApplicationId *uuid.UUID              `json:"application_id,omitempty"`
	FeatureValues []PlanFeatureValueEntry `json:"feature_values" validate:"required,dive"`
}

// BulkReplacePlanFeatureValuesRequest makes the plan's set equal to
// feature_values. An empty list clears the plan.
type BulkReplacePlanFeatureValuesRequest struct {
	PlanId        uuid.UUID               `json:"plan_id" validate:"required"`
	ApplicationId *uuid.UUID              `json:"application_id,omitempty"`
	FeatureValues []PlanFeatureValueEntry `json:"feature_values" validate:"dive"`
}

type PlanFeatureValueResponse struct {
	Id                 uuid.UUID  `json:"id"`
	PlanId             uuid.UUID  `json:"plan_id"`
	FeatureId          uuid.UUID  `json:"feature_id"`
	ApplicationId      *uuid.UUID `json:"application_id"`
	Value              float64    `json:"value"`
	IsUnlimited        bool       `json:"is_unlimited"`
	DisplayValue       string     `json:"display_value"`
	IsActive           bool       `json:"is_active"`
	FeatureKey         string     `json:"feature_key,omitempty"`
	FeatureName        string     `json:"feature_name,omitempty"`
	FeatureDescription string     `json:"feature_description,omitempty"`
	FeatureUnit        string     `json:"feature_unit,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

type BulkFailureResponse struct {
	FeatureId uuid.UUID `json:"feature_id"`
	Error     string    `json:"error"`
}

type BulkUpsertResultResponse struct {
	Processed []PlanFeatureValueResponse `json:"processed"`
	Failed    []BulkFailureResponse      `json:"failed"`
}

type DeletedCountResponse struct {
	Deleted int64 `json:"deleted"`
}
