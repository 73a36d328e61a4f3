// FILE: internal/entity/plan_feature_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type FeatureStatus string

const (
	FeatureStatusEnabled    FeatureStatus = "enabled"
	FeatureStatusLimited    FeatureStatus = "limited"
	FeatureStatusUnlimited  FeatureStatus = "unlimited"
	FeatureStatusDisabled   FeatureStatus = "disabled"
	FeatureStatusComingSoon FeatureStatus = "coming_soon"
)

// PlanFeatureConfiguration binds one feature to one plan within one application
type PlanFeatureConfiguration struct {
	Id                uuid.UUID
	PlanId            uuid.UUID
	FeatureId         uuid.UUID
	ApplicationId     uuid.UUID
	Status            FeatureStatus
	CustomName        string
	CustomDescription string
	IsHighlighted     bool
	HighlightText     string
	SortOrder         int
	FieldValues       []FeatureCustomFieldValue
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// Populated on reads
	Feature *Feature
}

// FeatureCustomFieldValue is the value of one custom field for one configuration
type FeatureCustomFieldValue struct {
	Id              uuid.UUID
	ConfigurationId uuid.UUID
	CustomFieldId   uuid.UUID
	Value           interface{} // decoded JSON
	DisplayValue    string
	IsUnlimited     bool
}

// PlanFeatureValue is the flat (plan, feature) -> number binding
type PlanFeatureValue struct {
	Id            uuid.UUID
	PlanId        uuid.UUID
	FeatureId     uuid.UUID
	ApplicationId *uuid.UUID
	Value         float64 // -1 = unlimited
	IsUnlimited   bool
	DisplayValue  string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Populated on reads
	Feature *Feature
}
