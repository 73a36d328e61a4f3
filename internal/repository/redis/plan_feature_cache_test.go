package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCache(t *testing.T) (*PlanFeatureCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewPlanFeatureCache(client, "test").(*PlanFeatureCache), mr
}

func TestPlanFeatureCache_GetMiss(t *testing.T) {
	c, _ := setupCache(t)

	data, found, err := c.Get(context.Background(), uuid.New(), "features")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, data)
}

func TestPlanFeatureCache_SetAndExpire(t *testing.T) {
	c, mr := setupCache(t)
	ctx := context.Background()
	planId := uuid.New()

	require.NoError(t, c.Set(ctx, planId, "features", []byte(`[1]`), time.Minute))

	data, found, err := c.Get(ctx, planId, "features")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[1]`, string(data))
	assert.True(t, mr.Exists(c.planIndexKey(planId)))

	mr.FastForward(2 * time.Minute)

	_, found, err = c.Get(ctx, planId, "features")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestPlanFeatureCache_InvalidatePlan(t *testing.T) {
	c, mr := setupCache(t)
	ctx := context.Background()
	planA := uuid.New()
	planB := uuid.New()

	require.NoError(t, c.Set(ctx, planA, "features", []byte("a"), time.Minute))
	require.NoError(t, c.Set(ctx, planA, "values", []byte("a"), time.Minute))
	require.NoError(t, c.Set(ctx, planB, "features", []byte("b"), time.Minute))

	require.NoError(t, c.InvalidatePlan(ctx, planA))

	assert.False(t, mr.Exists(c.entryKey(planA, "features")))
	assert.False(t, mr.Exists(c.entryKey(planA, "values")))
	assert.False(t, mr.Exists(c.planIndexKey(planA)))
	assert.True(t, mr.Exists(c.entryKey(planB, "features")))

	members, err := mr.SMembers(c.allIndexKey())
	require.NoError(t, err)
	assert.Equal(t, []string{c.planIndexKey(planB)}, members)
}

func TestPlanFeatureCache_InvalidateAll(t *testing.T) {
	c, mr := setupCache(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, c.Set(ctx, uuid.New(), "features", []byte("x"), time.Minute))
	}
	require.NoError(t, c.InvalidateAll(ctx))

	assert.Empty(t, mr.Keys())
}
