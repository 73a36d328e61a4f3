package database_test

import (
	"context"
	"log"
	"os"
	"testing"

	"saas-manager-be/internal/entity"
	"saas-manager-be/internal/repository/specification"
	"saas-manager-be/internal/repository/unitofwork"
	"saas-manager-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn, false)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(gormDB))

	sqlDB, _ := gormDB.DB()
	assert.NoError(t, sqlDB.Ping())

	ctx := context.Background()
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)

	t.Run("Feature round trip with custom fields", func(t *testing.T) {
		uow := uowFactory.NewUnitOfWork(ctx)
		appId := uuid.New()
		f := &entity.Feature{
			Key:           "integration-" + uuid.NewString(),
			Name:          "Integration Feature",
			ApplicationId: &appId,
			IsActive:      true,
			CustomFields: []entity.FeatureCustomField{
				{Name: "limit", DisplayName: "Limit", DataType: entity.FieldTypeNumber, DefaultValue: float64(10)},
			},
		}
		require.NoError(t, uow.FeatureRepository().Create(ctx, f))
		t.Cleanup(func() {
			repo := uowFactory.NewUnitOfWork(ctx).FeatureRepository()
			_ = repo.DeleteCustomFieldsByFeature(ctx, f.Id)
			_ = repo.Delete(ctx, f.Id)
		})

		found, err := uow.FeatureRepository().FindOne(ctx, specification.ByID{ID: f.Id})
		require.NoError(t, err)
		require.NotNil(t, found)
		require.Len(t, found.CustomFields, 1)
		assert.Equal(t, float64(10), found.CustomFields[0].DefaultValue)
	})

	t.Run("Rolled back transaction leaves no rows", func(t *testing.T) {
		uow := uowFactory.NewUnitOfWork(ctx)
		planId := uuid.New()

		err := unitofwork.RunInTransaction(ctx, uow, func() error {
			value := &entity.PlanFeatureValue{PlanId: planId, FeatureId: uuid.New(), Value: 1, IsActive: true}
			if err := uow.PlanFeatureValueRepository().Create(ctx, value); err != nil {
				return err
			}
			return assert.AnError
		})
		assert.ErrorIs(t, err, assert.AnError)

		values, err := uowFactory.NewUnitOfWork(ctx).PlanFeatureValueRepository().FindAll(ctx, specification.ByPlan{PlanId: planId})
		require.NoError(t, err)
		assert.Empty(t, values)
	})
}
