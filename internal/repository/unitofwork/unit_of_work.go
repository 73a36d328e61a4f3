package unitofwork

import (
	"context"

	"saas-manager-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	FeatureRepository() contract.FeatureRepository
	PlanFeatureConfigurationRepository() contract.PlanFeatureConfigurationRepository
	PlanFeatureValueRepository() contract.PlanFeatureValueRepository
}
