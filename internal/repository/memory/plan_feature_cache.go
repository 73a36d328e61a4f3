package memory

import (
	"context"
	"strings"
	"time"

	"saas-manager-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// PlanFeatureCache keeps plan read models in process. Keys are
// "<planId>:<key>" so a plan can be dropped by prefix.
type PlanFeatureCache struct {
	cache *cache.Cache
}

func NewPlanFeatureCache(defaultTTL time.Duration) contract.PlanFeatureCache {
	// Purge expired entries twice per TTL window
	c := cache.New(defaultTTL, defaultTTL/2)
	return &PlanFeatureCache{
		cache: c,
	}
}

func entryKey(planId uuid.UUID, key string) string {
	return planId.String() + ":" + key
}

func (c *PlanFeatureCache) Get(ctx context.Context, planId uuid.UUID, key string) ([]byte, bool, error) {
	if x, found := c.cache.Get(entryKey(planId, key)); found {
		return x.([]byte), true, nil
	}
	return nil, false, nil
}

func (c *PlanFeatureCache) Set(ctx context.Context, planId uuid.UUID, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = cache.DefaultExpiration
	}
	c.cache.Set(entryKey(planId, key), value, ttl)
	return nil
}

func (c *PlanFeatureCache) InvalidatePlan(ctx context.Context, planId uuid.UUID) error {
	prefix := planId.String() + ":"
	for k := range c.cache.Items() {
		if strings.HasPrefix(k, prefix) {
			c.cache.Delete(k)
		}
	}
	return nil
}

func (c *PlanFeatureCache) InvalidateAll(ctx context.Context) error {
	c.cache.Flush()
	return nil
}
