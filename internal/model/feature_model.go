// FILE: internal/model/feature_model.go
// GORM models for the feature catalog tables
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Feature is a row of the features catalog.
// (application_id, key) is unique; global features have a NULL application_id.
type Feature struct {
	Id            uuid.UUID            `gorm:"type:uuid;primaryKey"`
	ApplicationId *uuid.UUID           `gorm:"type:uuid;uniqueIndex:idx_features_application_key,priority:1"`
	Key           string               `gorm:"type:varchar(100);not null;uniqueIndex:idx_features_application_key,priority:2"`
	IsGlobal      bool                 `gorm:"not null;index"`
	Name          string               `gorm:"type:varchar(255);not null"`
	Description   string               `gorm:"type:text"`
	Category      string               `gorm:"type:varchar(50);index"`
	Unit          string               `gorm:"type:varchar(50)"`
	IsActive      bool                 `gorm:"not null"`
	SortOrder     int                  `gorm:"not null;default:0"`
	CustomFields  []FeatureCustomField `gorm:"foreignKey:FeatureId"`
	CreatedAt     time.Time            `gorm:"autoCreateTime"`
	UpdatedAt     time.Time            `gorm:"autoUpdateTime"`
}

func (Feature) TableName() string {
	return "features"
}

func (f *Feature) BeforeCreate(tx *gorm.DB) error {
	if f.Id == uuid.Nil {
		f.Id = uuid.New()
	}
	return nil
}

type FeatureCustomField struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey"`
	FeatureId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_custom_fields_feature_name,priority:1"`
	Name         string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_custom_fields_feature_name,priority:2"`
	DisplayName  string    `gorm:"type:varchar(255)"`
	Description  string    `gorm:"type:text"`
	DataType     string    `gorm:"type:varchar(20);not null"`
	Unit         string    `gorm:"type:varchar(50)"`
	Required     bool      `gorm:"not null"`
	DefaultValue JSONValue
	Min          *float64
	Max          *float64
	EnumOptions  JSONValue
	SortOrder    int       `gorm:"not null;default:0"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (FeatureCustomField) TableName() string {
	return "feature_custom_fields"
}

func (f *FeatureCustomField) BeforeCreate(tx *gorm.DB) error {
	if f.Id == uuid.Nil {
		f.Id = uuid.New()
	}
	return nil
}
