package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"saas-manager-be/internal/dto"
	"saas-manager-be/internal/pkg/logger"
	"saas-manager-be/internal/repository/contract"
	"saas-manager-be/internal/repository/memory"
	"saas-manager-be/internal/repository/unitofwork"
	"saas-manager-be/internal/testutil"
	adminEvents "saas-manager-be/pkg/admin/events"
	"saas-manager-be/pkg/admin/feature"
	"saas-manager-be/pkg/admin/featurevalue"
	"saas-manager-be/pkg/admin/plan"
	"saas-manager-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTopic = "CATALOG_CHANGED"

type recordingPublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *recordingPublisher) record(eventType string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, eventType)
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.events...)
}

func (p *recordingPublisher) PublishFeatureCreated(ctx context.Context, featureId uuid.UUID, key string, applicationId *uuid.UUID) {
	p.record(adminEvents.FeatureCreated)
}

func (p *recordingPublisher) PublishFeatureUpdated(ctx context.Context, featureId uuid.UUID, key string, changes []string) {
	p.record(adminEvents.FeatureUpdated)
}

func (p *recordingPublisher) PublishFeatureDeleted(ctx context.Context, featureId uuid.UUID, key string, configurations, values int64) {
	p.record(adminEvents.FeatureDeleted)
}

func (p *recordingPublisher) PublishPlanFeaturesConfigured(ctx context.Context, planId, applicationId uuid.UUID, featureIds []uuid.UUID) {
	p.record(adminEvents.PlanFeaturesConfigured)
}

func (p *recordingPublisher) PublishPlanFeatureValuesReplaced(ctx context.Context, planId uuid.UUID, count int) {
	p.record(adminEvents.PlanFeatureValuesReplaced)
}

type services struct {
	features  IFeatureService
	plans     IPlanFeatureService
	values    IPlanFeatureValueService
	consumer  IConsumerService
	cache     contract.PlanFeatureCache
	published *recordingPublisher
}

func setupServices(t *testing.T) *services {
	t.Helper()
	db := testutil.SetupTestDB(t)
	factory := unitofwork.NewRepositoryFactory(db)
	log := logger.NewNopLogger()
	cache := memory.NewPlanFeatureCache(time.Minute)
	published := &recordingPublisher{}

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { _ = pubSub.Close() })

	return &services{
		features:  NewFeatureService(factory, log, feature.NewManager(), cache, NewPublisherService(testTopic, pubSub), published),
		plans:     NewPlanFeatureService(factory, log, plan.NewManager(), cache, time.Minute, published),
		values:    NewPlanFeatureValueService(factory, log, featurevalue.NewManager(), cache, time.Minute, published),
		consumer:  NewConsumerService(pubSub, testTopic, cache, log),
		cache:     cache,
		published: published,
	}
}

func cached(t *testing.T, cache contract.PlanFeatureCache, planId uuid.UUID, key string) bool {
	t.Helper()
	_, found, err := cache.Get(context.Background(), planId, key)
	require.NoError(t, err)
	return found
}

func createGlobalFeature(t *testing.T, s *services, key string) *dto.FeatureResponse {
	t.Helper()
	f, err := s.features.CreateFeature(context.Background(), dto.CreateFeatureRequest{
		Key: key, Name: key, Unit: "gb", IsGlobal: true,
	})
	require.NoError(t, err)
	return f
}

func TestPlanFeatureService_GetPlanFeaturesIsCachedUntilWrite(t *testing.T) {
	ctx := context.Background()
	s := setupServices(t)
	storage := createGlobalFeature(t, s, "storage")
	backups := createGlobalFeature(t, s, "backups")
	planId, appId := uuid.New(), uuid.New()

	res, err := s.plans.ConfigurePlanFeatures(ctx, planId, dto.ConfigurePlanFeaturesRequest{
		ApplicationId: appId,
		Features:      []dto.PlanFeatureInput{{FeatureId: storage.Id, Status: "enabled"}},
	})
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.True(t, cached(t, s.cache, planId, featuresCacheKey(appId)))
	assert.Contains(t, s.published.types(), adminEvents.PlanFeaturesConfigured)

	added, err := s.plans.AddFeatureToPlan(ctx, planId, dto.AddPlanFeatureRequest{
		ApplicationId:    appId,
		PlanFeatureInput: dto.PlanFeatureInput{FeatureId: backups.Id, Status: "coming_soon"},
	})
	require.NoError(t, err)
	assert.Equal(t, "coming_soon", added.Status)
	assert.False(t, cached(t, s.cache, planId, featuresCacheKey(appId)))

	res, err = s.plans.GetPlanFeatures(ctx, planId, appId)
	require.NoError(t, err)
	assert.Len(t, res, 2)

	require.NoError(t, s.plans.RemoveFeatureFromPlan(ctx, planId, backups.Id, appId))
	res, err = s.plans.GetPlanFeatures(ctx, planId, appId)
	require.NoError(t, err)
	assert.Len(t, res, 1)
}

func TestFeatureService_CatalogChangeFlushesPlanCache(t *testing.T) {
	ctx := context.Background()
	s := setupServices(t)

	planId := uuid.New()
	require.NoError(t, s.cache.Set(ctx, planId, valuesCacheKey, []byte("[]"), time.Minute))

	f := createGlobalFeature(t, s, "seats")
	assert.Equal(t, []string{adminEvents.FeatureCreated}, s.published.types())
	assert.False(t, cached(t, s.cache, planId, valuesCacheKey))

	require.NoError(t, s.features.DeleteFeature(ctx, f.Id))
	assert.Contains(t, s.published.types(), adminEvents.FeatureDeleted)

	_, err := s.features.GetFeature(ctx, f.Id)
	assert.Error(t, err)
}

func TestFeatureService_ReadAfterWriteWithWarmCache(t *testing.T) {
	ctx := context.Background()
	s := setupServices(t)
	storage := createGlobalFeature(t, s, "storage")
	seats := createGlobalFeature(t, s, "seats")
	planId, appId := uuid.New(), uuid.New()

	ten, five := 10.0, 5.0
	_, err := s.values.BulkUpdateForPlan(ctx, dto.BulkReplacePlanFeatureValuesRequest{
		PlanId: planId,
		FeatureValues: []dto.PlanFeatureValueEntry{
			{FeatureId: storage.Id, Value: &ten},
			{FeatureId: seats.Id, Value: &five},
		},
	})
	require.NoError(t, err)
	_, err = s.plans.ConfigurePlanFeatures(ctx, planId, dto.ConfigurePlanFeaturesRequest{
		ApplicationId: appId,
		Features: []dto.PlanFeatureInput{
			{FeatureId: storage.Id, Status: "enabled"},
			{FeatureId: seats.Id, Status: "enabled"},
		},
	})
	require.NoError(t, err)

	values, err := s.values.FindByPlanId(ctx, planId)
	require.NoError(t, err)
	require.Len(t, values, 2)
	configs, err := s.plans.GetPlanFeatures(ctx, planId, appId)
	require.NoError(t, err)
	require.Len(t, configs, 2)
	require.True(t, cached(t, s.cache, planId, valuesCacheKey))
	require.True(t, cached(t, s.cache, planId, featuresCacheKey(appId)))

	renamed := "Stockage"
	_, err = s.features.UpdateFeature(ctx, storage.Id, dto.UpdateFeatureRequest{Name: &renamed})
	require.NoError(t, err)

	values, err = s.values.FindByPlanId(ctx, planId)
	require.NoError(t, err)
	names := map[uuid.UUID]string{}
	for _, v := range values {
		names[v.FeatureId] = v.FeatureName
	}
	assert.Equal(t, "Stockage", names[storage.Id])

	configs, err = s.plans.GetPlanFeatures(ctx, planId, appId)
	require.NoError(t, err)
	for _, c := range configs {
		if c.FeatureId == storage.Id {
			require.NotNil(t, c.Feature)
			assert.Equal(t, "Stockage", c.Feature.Name)
		}
	}

	require.NoError(t, s.features.DeleteFeature(ctx, storage.Id))

	values, err = s.values.FindByPlanId(ctx, planId)
	require.NoError(t, err)
	require.Len(t, values, 1)
	assert.Equal(t, seats.Id, values[0].FeatureId)

	configs, err = s.plans.GetPlanFeatures(ctx, planId, appId)
	require.NoError(t, err)
	require.Len(t, configs, 1)
	assert.Equal(t, seats.Id, configs[0].FeatureId)
}

func TestConsumerService_CatalogMessageFlushesCache(t *testing.T) {
	ctx := context.Background()
	s := setupServices(t)

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { _ = pubSub.Close() })
	consumer := NewConsumerService(pubSub, testTopic, s.cache, logger.NewNopLogger())
	require.NoError(t, consumer.Consume(ctx))

	planId := uuid.New()
	require.NoError(t, s.cache.Set(ctx, planId, valuesCacheKey, []byte("[]"), time.Minute))

	payload, err := json.Marshal(dto.CatalogChangedMessage{FeatureId: uuid.New(), Action: dto.CatalogActionUpdated, OccurredAt: time.Now()})
	require.NoError(t, err)
	require.NoError(t, NewPublisherService(testTopic, pubSub).Publish(ctx, payload))

	assert.Eventually(t, func() bool {
		return !cached(t, s.cache, planId, valuesCacheKey)
	}, 2*time.Second, 10*time.Millisecond)
}

func TestPlanFeatureValueService_ReplaceAndCache(t *testing.T) {
	ctx := context.Background()
	s := setupServices(t)
	storage := createGlobalFeature(t, s, "storage")
	seats := createGlobalFeature(t, s, "seats")
	planId := uuid.New()

	ten, unlimited := 10.0, -1.0
	values, err := s.values.BulkUpdateForPlan(ctx, dto.BulkReplacePlanFeatureValuesRequest{
		PlanId: planId,
		FeatureValues: []dto.PlanFeatureValueEntry{
			{FeatureId: storage.Id, Value: &ten},
			{FeatureId: seats.Id, Value: &unlimited},
		},
	})
	require.NoError(t, err)
	require.Len(t, values, 2)
	assert.Contains(t, s.published.types(), adminEvents.PlanFeatureValuesReplaced)

	listed, err := s.values.FindByPlanId(ctx, planId)
	require.NoError(t, err)
	assert.Len(t, listed, 2)
	assert.True(t, cached(t, s.cache, planId, valuesCacheKey))

	bySeats, err := s.values.FindByPlanAndFeature(ctx, planId, seats.Id)
	require.NoError(t, err)
	assert.True(t, bySeats.IsUnlimited)
	assert.Equal(t, "Illimité", bySeats.DisplayValue)

	removed, err := s.values.Remove(ctx, bySeats.Id)
	require.NoError(t, err)
	assert.False(t, removed.IsActive)
	assert.False(t, cached(t, s.cache, planId, valuesCacheKey))

	listed, err = s.values.FindByPlanId(ctx, planId)
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	deleted, err := s.values.RemoveByPlan(ctx, planId)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted.Deleted)
}

func TestPlanFeatureValueService_BulkCreateOrUpdateReportsFailures(t *testing.T) {
	ctx := context.Background()
	s := setupServices(t)
	storage := createGlobalFeature(t, s, "storage")
	planId := uuid.New()
	five := 5.0

	res := s.values.BulkCreateOrUpdate(ctx, planId, dto.BulkUpsertPlanFeatureValuesRequest{
		FeatureValues: []dto.PlanFeatureValueEntry{
			{FeatureId: storage.Id, Value: &five},
			{FeatureId: uuid.New(), Value: &five},
		},
	})
	require.Len(t, res.Processed, 1)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, "5 GB", res.Processed[0].DisplayValue)
	assert.NotEmpty(t, res.Failed[0].Error)
}

func TestConsumerService_HandleBusEvent(t *testing.T) {
	ctx := context.Background()
	s := setupServices(t)
	planA, planB := uuid.New(), uuid.New()
	require.NoError(t, s.cache.Set(ctx, planA, valuesCacheKey, []byte("[]"), time.Minute))
	require.NoError(t, s.cache.Set(ctx, planB, valuesCacheKey, []byte("[]"), time.Minute))

	err := s.consumer.HandleBusEvent(ctx, events.BaseEvent{
		Type: adminEvents.PlanFeatureValuesReplaced,
		Data: map[string]interface{}{"plan_id": planA.String()},
	})
	require.NoError(t, err)
	assert.False(t, cached(t, s.cache, planA, valuesCacheKey))
	assert.True(t, cached(t, s.cache, planB, valuesCacheKey))

	err = s.consumer.HandleBusEvent(ctx, events.BaseEvent{Type: adminEvents.FeatureUpdated, Data: map[string]interface{}{}})
	require.NoError(t, err)
	assert.False(t, cached(t, s.cache, planB, valuesCacheKey))
}
