package contract

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PlanFeatureCache stores serialized plan-level read models.
// Keys are grouped per plan so every write to a plan can drop them at once.
type PlanFeatureCache interface {
	Get(ctx context.Context, planId uuid.UUID, key string) ([]byte, bool, error)
	Set(ctx context.Context, planId uuid.UUID, key string, value []byte, ttl time.Duration) error
	InvalidatePlan(ctx context.Context, planId uuid.UUID) error
	InvalidateAll(ctx context.Context) error
}
