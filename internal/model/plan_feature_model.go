package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PlanFeatureConfiguration struct {
	Id                uuid.UUID                 `gorm:"type:uuid;primaryKey"`
	PlanId            uuid.UUID                 `gorm:"type:uuid;not null;uniqueIndex:idx_plan_feature_configurations_plan_feature,priority:1"`
	FeatureId         uuid.UUID                 `gorm:"type:uuid;not null;index;uniqueIndex:idx_plan_feature_configurations_plan_feature,priority:2"`
	ApplicationId     uuid.UUID                 `gorm:"type:uuid;not null;index"`
	Status            string                    `gorm:"type:varchar(20);not null"`
	CustomName        string                    `gorm:"type:varchar(255)"`
	CustomDescription string                    `gorm:"type:text"`
	IsHighlighted     bool                      `gorm:"not null"`
	HighlightText     string                    `gorm:"type:varchar(255)"`
	SortOrder         int                       `gorm:"not null;default:0"`
	FieldValues       []FeatureCustomFieldValue `gorm:"foreignKey:ConfigurationId"`
	CreatedAt         time.Time                 `gorm:"autoCreateTime"`
	UpdatedAt         time.Time                 `gorm:"autoUpdateTime"`
}

func (PlanFeatureConfiguration) TableName() string {
	return "plan_feature_configurations"
}

func (c *PlanFeatureConfiguration) BeforeCreate(tx *gorm.DB) error {
	if c.Id == uuid.Nil {
		c.Id = uuid.New()
	}
	return nil
}

type FeatureCustomFieldValue struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey"`
	ConfigurationId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_custom_field_values_configuration_field,priority:1"`
	CustomFieldId   uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_custom_field_values_configuration_field,priority:2"`
	Value           JSONValue
	DisplayValue    string    `gorm:"type:varchar(255)"`
	IsUnlimited     bool      `gorm:"not null"`
}

func (FeatureCustomFieldValue) TableName() string {
	return "feature_custom_field_values"
}

func (v *FeatureCustomFieldValue) BeforeCreate(tx *gorm.DB) error {
	if v.Id == uuid.Nil {
		v.Id = uuid.New()
	}
	return nil
}

// PlanFeatureValue is the flat model: one number per (plan, feature)
type PlanFeatureValue struct {
	Id            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	PlanId        uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_plan_feature_values_plan_feature,priority:1"`
	FeatureId     uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_plan_feature_values_plan_feature,priority:2"`
	ApplicationId *uuid.UUID `gorm:"type:uuid;index"`
	Value         float64    `gorm:"not null"`
	IsUnlimited   bool       `gorm:"not null"`
	DisplayValue  string     `gorm:"type:varchar(255)"`
	IsActive      bool       `gorm:"not null"`
	CreatedAt     time.Time  `gorm:"autoCreateTime"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime"`
}

func (PlanFeatureValue) TableName() string {
	return "plan_feature_values"
}

func (v *PlanFeatureValue) BeforeCreate(tx *gorm.DB) error {
	if v.Id == uuid.Nil {
		v.Id = uuid.New()
	}
	return nil
}
