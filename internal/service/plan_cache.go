package service

import (
	"context"
	"encoding/json"
	"time"

	"saas-manager-be/internal/pkg/logger"
	"saas-manager-be/internal/repository/contract"

	"github.com/google/uuid"
)

// planCache wraps the plan read-model cache with JSON encoding.
// Cache failures are logged and treated as misses.
type planCache struct {
	cache  contract.PlanFeatureCache
	ttl    time.Duration
	logger logger.ILogger
	module string
}

func newPlanCache(cache contract.PlanFeatureCache, ttl time.Duration, log logger.ILogger, module string) *planCache {
	return &planCache{cache: cache, ttl: ttl, logger: log, module: module}
}

func (c *planCache) get(ctx context.Context, planId uuid.UUID, key string, dest interface{}) bool {
	data, found, err := c.cache.Get(ctx, planId, key)
	if err != nil {
		c.logger.Warn(c.module, "Cache read failed", map[string]interface{}{"plan_id": planId.String(), "key": key, "error": err.Error()})
		return false
	}
	if !found {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		c.logger.Warn(c.module, "Cache entry undecodable", map[string]interface{}{"plan_id": planId.String(), "key": key, "error": err.Error()})
		return false
	}
	return true
}

func (c *planCache) set(ctx context.Context, planId uuid.UUID, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, planId, key, data, c.ttl); err != nil {
		c.logger.Warn(c.module, "Cache write failed", map[string]interface{}{"plan_id": planId.String(), "key": key, "error": err.Error()})
	}
}

func (c *planCache) invalidatePlan(ctx context.Context, planId uuid.UUID) {
	if err := c.cache.InvalidatePlan(ctx, planId); err != nil {
		c.logger.Error(c.module, "Cache invalidation failed", map[string]interface{}{"plan_id": planId.String(), "error": err.Error()})
	}
}

func (c *planCache) invalidateAll(ctx context.Context) {
	if err := c.cache.InvalidateAll(ctx); err != nil {
		c.logger.Error(c.module, "Cache flush failed", map[string]interface{}{"error": err.Error()})
	}
}
