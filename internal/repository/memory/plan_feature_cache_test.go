package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanFeatureCache_InvalidatePlan(t *testing.T) {
	ctx := context.Background()
	c := NewPlanFeatureCache(time.Minute)

	planA := uuid.New()
	planB := uuid.New()
	require.NoError(t, c.Set(ctx, planA, "features", []byte("a"), 0))
	require.NoError(t, c.Set(ctx, planA, "values", []byte("a2"), time.Minute))
	require.NoError(t, c.Set(ctx, planB, "features", []byte("b"), 0))

	data, found, err := c.Get(ctx, planA, "values")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("a2"), data)

	require.NoError(t, c.InvalidatePlan(ctx, planA))

	_, found, _ = c.Get(ctx, planA, "features")
	assert.False(t, found)
	_, found, _ = c.Get(ctx, planA, "values")
	assert.False(t, found)

	data, found, _ = c.Get(ctx, planB, "features")
	assert.True(t, found)
	assert.Equal(t, []byte("b"), data)
}

func TestPlanFeatureCache_InvalidateAll(t *testing.T) {
	ctx := context.Background()
	c := NewPlanFeatureCache(time.Minute)

	planId := uuid.New()
	require.NoError(t, c.Set(ctx, planId, "features", []byte("x"), 0))
	require.NoError(t, c.InvalidateAll(ctx))

	_, found, err := c.Get(ctx, planId, "features")
	require.NoError(t, err)
	assert.False(t, found)
}
