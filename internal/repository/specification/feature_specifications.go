package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByFeatureKey scopes a key lookup to one application, or to the global
// catalog when ApplicationId is nil.
type ByFeatureKey struct {
	Key           string
	ApplicationId *uuid.UUID
}

func (s ByFeatureKey) Apply(db *gorm.DB) *gorm.DB {
	db = Filter("key", s.Key).Apply(db)
	if s.ApplicationId == nil {
		return db.Where("is_global = ?", true)
	}
	return db.Where("application_id = ?", *s.ApplicationId)
}

type ByApplication struct {
	ApplicationId uuid.UUID
}

func (s ByApplication) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("application_id = ?", s.ApplicationId)
}

type ByPlan struct {
	PlanId uuid.UUID
}

func (s ByPlan) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("plan_id = ?", s.PlanId)
}

type ByFeature struct {
	FeatureId uuid.UUID
}

func (s ByFeature) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("feature_id = ?", s.FeatureId)
}

// ActiveOnly keeps rows whose is_active flag is set
type ActiveOnly struct{}

func (s ActiveOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}
