package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"saas-manager-be/internal/repository/contract"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// PlanFeatureCache stores plan read models in Redis. Each plan keeps a set
// of its cache keys, and a global set lists every plan index, so
// invalidation never needs SCAN.
type PlanFeatureCache struct {
	client *goredis.Client
	prefix string
}

func NewPlanFeatureCache(client *goredis.Client, prefix string) contract.PlanFeatureCache {
	return &PlanFeatureCache{client: client, prefix: prefix}
}

func (c *PlanFeatureCache) entryKey(planId uuid.UUID, key string) string {
	return fmt.Sprintf("%s:plan:%s:%s", c.prefix, planId, key)
}

func (c *PlanFeatureCache) planIndexKey(planId uuid.UUID) string {
	return fmt.Sprintf("%s:index:plan:%s", c.prefix, planId)
}

func (c *PlanFeatureCache) allIndexKey() string {
	return c.prefix + ":index:all"
}

func (c *PlanFeatureCache) Get(ctx context.Context, planId uuid.UUID, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, c.entryKey(planId, key)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

func (c *PlanFeatureCache) Set(ctx context.Context, planId uuid.UUID, key string, value []byte, ttl time.Duration) error {
	entry := c.entryKey(planId, key)
	index := c.planIndexKey(planId)

	pipe := c.client.TxPipeline()
	pipe.Set(ctx, entry, value, ttl)
	pipe.SAdd(ctx, index, entry)
	pipe.SAdd(ctx, c.allIndexKey(), index)
	_, err := pipe.Exec(ctx)
	return err
}

func (c *PlanFeatureCache) InvalidatePlan(ctx context.Context, planId uuid.UUID) error {
	index := c.planIndexKey(planId)
	keys, err := c.client.SMembers(ctx, index).Result()
	if err != nil {
		return err
	}

	pipe := c.client.TxPipeline()
	if len(keys) > 0 {
		pipe.Del(ctx, keys...)
	}
	pipe.Del(ctx, index)
	pipe.SRem(ctx, c.allIndexKey(), index)
	_, err = pipe.Exec(ctx)
	return err
}

func (c *PlanFeatureCache) InvalidateAll(ctx context.Context) error {
	indexes, err := c.client.SMembers(ctx, c.allIndexKey()).Result()
	if err != nil {
		return err
	}

	toDelete := []string{c.allIndexKey()}
	for _, index := range indexes {
		keys, err := c.client.SMembers(ctx, index).Result()
		if err != nil {
			return err
		}
		toDelete = append(toDelete, keys...)
		toDelete = append(toDelete, index)
	}
	return c.client.Del(ctx, toDelete...).Err()
}
