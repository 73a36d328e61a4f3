package feature

import (
	"context"
	"testing"

	"saas-manager-be/internal/dto"
	"saas-manager-be/internal/entity"
	"saas-manager-be/internal/pkg/serverutils"
	"saas-manager-be/internal/repository/specification"
	"saas-manager-be/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool         { return &b }
func strPtr(s string) *string      { return &s }

func emailFeatureRequest(appId *uuid.UUID) dto.CreateFeatureRequest {
	return dto.CreateFeatureRequest{
		Key:           "max_emails",
		Name:          "Emails",
		Unit:          "emails",
		Category:      "communication",
		ApplicationId: appId,
		CustomFields: []dto.CreateCustomFieldRequest{
			{Name: "monthly_limit", DisplayName: "Monthly limit", DataType: "number", Required: true, Min: floatPtr(0), SortOrder: 1},
			{Name: "tier", DisplayName: "Tier", DataType: "enum", EnumOptions: []string{"basic", "pro"}, SortOrder: 0},
		},
	}
}

func TestManager_Create(t *testing.T) {
	ctx := context.Background()
	uow, _ := testutil.NewUnitOfWork(t)
	m := NewManager()

	t.Run("global feature with custom fields", func(t *testing.T) {
		f, err := m.Create(ctx, uow, emailFeatureRequest(nil))
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, f.Id)
		assert.True(t, f.IsGlobal)
		assert.Nil(t, f.ApplicationId)
		assert.True(t, f.IsActive)

		loaded, err := m.Get(ctx, uow, f.Id)
		require.NoError(t, err)
		require.Len(t, loaded.CustomFields, 2)
		assert.Equal(t, "tier", loaded.CustomFields[0].Name)
		assert.Equal(t, []string{"basic", "pro"}, loaded.CustomFields[0].EnumOptions)
		assert.Equal(t, entity.FieldTypeNumber, loaded.CustomFields[1].DataType)
	})

	t.Run("duplicate global key conflicts", func(t *testing.T) {
		_, err := m.Create(ctx, uow, emailFeatureRequest(nil))
		assert.ErrorIs(t, err, serverutils.ErrConflict)
	})

	t.Run("same key in an application is allowed once", func(t *testing.T) {
		appId := uuid.New()
		f, err := m.Create(ctx, uow, emailFeatureRequest(&appId))
		require.NoError(t, err)
		assert.False(t, f.IsGlobal)
		assert.Equal(t, appId, *f.ApplicationId)

		_, err = m.Create(ctx, uow, emailFeatureRequest(&appId))
		assert.ErrorIs(t, err, serverutils.ErrConflict)
	})

	t.Run("inactive on request", func(t *testing.T) {
		req := dto.CreateFeatureRequest{Key: "sso", Name: "SSO", IsActive: boolPtr(false)}
		f, err := m.Create(ctx, uow, req)
		require.NoError(t, err)
		assert.False(t, f.IsActive)
	})

	t.Run("invalid field definition", func(t *testing.T) {
		req := dto.CreateFeatureRequest{
			Key:  "broken",
			Name: "Broken",
			CustomFields: []dto.CreateCustomFieldRequest{
				{Name: "choice", DisplayName: "Choice", DataType: "enum"},
			},
		}
		_, err := m.Create(ctx, uow, req)
		assert.ErrorIs(t, err, serverutils.ErrBadRequest)

		missing, err := uow.FeatureRepository().FindByKey(ctx, "broken", nil)
		require.NoError(t, err)
		assert.Nil(t, missing)
	})
}

func TestManager_ListAndUpdate(t *testing.T) {
	ctx := context.Background()
	uow, _ := testutil.NewUnitOfWork(t)
	m := NewManager()
	appId := uuid.New()

	_, err := m.Create(ctx, uow, dto.CreateFeatureRequest{Key: "b", Name: "Bravo", Category: "storage", SortOrder: 1})
	require.NoError(t, err)
	_, err = m.Create(ctx, uow, dto.CreateFeatureRequest{Key: "a", Name: "Alpha", Category: "storage", SortOrder: 1})
	require.NoError(t, err)
	first, err := m.Create(ctx, uow, dto.CreateFeatureRequest{Key: "c", Name: "Charlie", SortOrder: 0, ApplicationId: &appId})
	require.NoError(t, err)

	all, err := m.List(ctx, uow, dto.FeatureFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"c", "a", "b"}, []string{all[0].Key, all[1].Key, all[2].Key})

	paged, err := m.List(ctx, uow, dto.FeatureFilter{PageQuery: dto.PageQuery{Limit: 2, Offset: 1}})
	require.NoError(t, err)
	require.Len(t, paged, 2)
	assert.Equal(t, []string{"a", "b"}, []string{paged[0].Key, paged[1].Key})

	storage, err := m.List(ctx, uow, dto.FeatureFilter{Category: "storage", IsGlobal: boolPtr(true)})
	require.NoError(t, err)
	assert.Len(t, storage, 2)

	byApp, err := m.List(ctx, uow, dto.FeatureFilter{ApplicationId: &appId})
	require.NoError(t, err)
	require.Len(t, byApp, 1)
	assert.Equal(t, first.Id, byApp[0].Id)

	_, err = m.Update(ctx, uow, all[1].Id, dto.UpdateFeatureRequest{Key: strPtr("b")})
	assert.ErrorIs(t, err, serverutils.ErrConflict)

	updated, err := m.Update(ctx, uow, all[1].Id, dto.UpdateFeatureRequest{Name: strPtr("Alpha 2"), Unit: strPtr("gb")})
	require.NoError(t, err)
	assert.Equal(t, "Alpha 2", updated.Name)
	assert.Equal(t, "gb", updated.Unit)

	deactivated, err := m.SetActive(ctx, uow, first.Id, false)
	require.NoError(t, err)
	assert.False(t, deactivated.IsActive)

	active, err := m.List(ctx, uow, dto.FeatureFilter{IsActive: boolPtr(true)})
	require.NoError(t, err)
	assert.Len(t, active, 2)

	_, err = m.Update(ctx, uow, uuid.New(), dto.UpdateFeatureRequest{Name: strPtr("x")})
	assert.ErrorIs(t, err, serverutils.ErrNotFound)
}

func TestManager_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	uow, _ := testutil.NewUnitOfWork(t)
	m := NewManager()

	f, err := m.Create(ctx, uow, emailFeatureRequest(nil))
	require.NoError(t, err)

	planId := uuid.New()
	cfg := &entity.PlanFeatureConfiguration{
		PlanId:        planId,
		FeatureId:     f.Id,
		ApplicationId: uuid.New(),
		Status:        entity.FeatureStatusLimited,
		FieldValues: []entity.FeatureCustomFieldValue{
			{CustomFieldId: f.CustomFields[0].Id, Value: float64(10), DisplayValue: "10"},
		},
	}
	require.NoError(t, uow.PlanFeatureConfigurationRepository().Create(ctx, cfg))
	require.NoError(t, uow.PlanFeatureValueRepository().Create(ctx, &entity.PlanFeatureValue{
		PlanId: planId, FeatureId: f.Id, Value: 10, IsActive: true,
	}))

	result, err := m.Delete(ctx, uow, f.Id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Configurations)
	assert.Equal(t, int64(1), result.Values)

	_, err = m.Get(ctx, uow, f.Id)
	assert.ErrorIs(t, err, serverutils.ErrNotFound)

	configs, err := uow.PlanFeatureConfigurationRepository().FindAll(ctx, specification.ByPlan{PlanId: planId})
	require.NoError(t, err)
	assert.Empty(t, configs)

	values, err := uow.PlanFeatureValueRepository().FindAll(ctx, specification.ByPlan{PlanId: planId})
	require.NoError(t, err)
	assert.Empty(t, values)

	_, err = m.Delete(ctx, uow, f.Id)
	assert.ErrorIs(t, err, serverutils.ErrNotFound)
}

func TestManager_CustomFields(t *testing.T) {
	ctx := context.Background()
	uow, _ := testutil.NewUnitOfWork(t)
	m := NewManager()

	f, err := m.Create(ctx, uow, emailFeatureRequest(nil))
	require.NoError(t, err)

	t.Run("add", func(t *testing.T) {
		field, err := m.AddCustomField(ctx, uow, f.Id, dto.CreateCustomFieldRequest{
			Name: "overage", DisplayName: "Overage allowed", DataType: "boolean", DefaultValue: false,
		})
		require.NoError(t, err)
		assert.Equal(t, f.Id, field.FeatureId)
		assert.Equal(t, false, field.DefaultValue)
	})

	t.Run("duplicate name conflicts", func(t *testing.T) {
		_, err := m.AddCustomField(ctx, uow, f.Id, dto.CreateCustomFieldRequest{
			Name: "tier", DisplayName: "Tier", DataType: "string",
		})
		assert.ErrorIs(t, err, serverutils.ErrConflict)
	})

	t.Run("update", func(t *testing.T) {
		loaded, err := m.Get(ctx, uow, f.Id)
		require.NoError(t, err)
		var limitId uuid.UUID
		for _, cf := range loaded.CustomFields {
			if cf.Name == "monthly_limit" {
				limitId = cf.Id
			}
		}

		field, err := m.UpdateCustomField(ctx, uow, f.Id, limitId, dto.UpdateCustomFieldRequest{
			DisplayName: strPtr("Emails per month"),
			Max:         floatPtr(1000),
		})
		require.NoError(t, err)
		assert.Equal(t, "Emails per month", field.DisplayName)
		assert.Equal(t, 1000.0, *field.Max)

		_, err = m.UpdateCustomField(ctx, uow, f.Id, limitId, dto.UpdateCustomFieldRequest{Name: strPtr("tier")})
		assert.ErrorIs(t, err, serverutils.ErrConflict)

		_, err = m.UpdateCustomField(ctx, uow, f.Id, limitId, dto.UpdateCustomFieldRequest{Min: floatPtr(5000)})
		assert.ErrorIs(t, err, serverutils.ErrBadRequest)

		_, err = m.UpdateCustomField(ctx, uow, f.Id, uuid.New(), dto.UpdateCustomFieldRequest{})
		assert.ErrorIs(t, err, serverutils.ErrNotFound)
	})

	t.Run("delete removes values", func(t *testing.T) {
		loaded, err := m.Get(ctx, uow, f.Id)
		require.NoError(t, err)
		field := loaded.CustomFields[0]

		cfg := &entity.PlanFeatureConfiguration{
			PlanId:        uuid.New(),
			FeatureId:     f.Id,
			ApplicationId: uuid.New(),
			Status:        entity.FeatureStatusEnabled,
			FieldValues:   []entity.FeatureCustomFieldValue{{CustomFieldId: field.Id, Value: "basic"}},
		}
		require.NoError(t, uow.PlanFeatureConfigurationRepository().Create(ctx, cfg))

		require.NoError(t, m.DeleteCustomField(ctx, uow, f.Id, field.Id))

		reloaded, err := uow.PlanFeatureConfigurationRepository().FindOne(ctx, specification.ByID{ID: cfg.Id})
		require.NoError(t, err)
		assert.Empty(t, reloaded.FieldValues)

		after, err := m.Get(ctx, uow, f.Id)
		require.NoError(t, err)
		assert.Nil(t, after.FieldById(field.Id))
	})
}
