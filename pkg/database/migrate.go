package database

import (
	"saas-manager-be/internal/model"

	"gorm.io/gorm"
)

// Models lists every table owned by the service, parents first.
func Models() []interface{} {
	return []interface{}{
		&model.Feature{},
		&model.FeatureCustomField{},
		&model.PlanFeatureConfiguration{},
		&model.FeatureCustomFieldValue{},
		&model.PlanFeatureValue{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
