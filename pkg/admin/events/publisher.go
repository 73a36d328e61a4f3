package events

import (
	"context"
	"time"

	"saas-manager-be/internal/pkg/logger"
	pkgEvents "saas-manager-be/pkg/events"
	pktNats "saas-manager-be/pkg/nats"

	"github.com/google/uuid"
)

const (
	FeatureCreated            = "FEATURE_CREATED"
	FeatureUpdated            = "FEATURE_UPDATED"
	FeatureDeleted            = "FEATURE_DELETED"
	PlanFeaturesConfigured    = "PLAN_FEATURES_CONFIGURED"
	PlanFeatureValuesReplaced = "PLAN_FEATURE_VALUES_REPLACED"
)

// Publisher abstracts event publishing for admin operations
type Publisher interface {
	PublishFeatureCreated(ctx context.Context, featureId uuid.UUID, key string, applicationId *uuid.UUID)
	PublishFeatureUpdated(ctx context.Context, featureId uuid.UUID, key string, changes []string)
	PublishFeatureDeleted(ctx context.Context, featureId uuid.UUID, key string, configurations, values int64)
	PublishPlanFeaturesConfigured(ctx context.Context, planId, applicationId uuid.UUID, featureIds []uuid.UUID)
	PublishPlanFeatureValuesReplaced(ctx context.Context, planId uuid.UUID, count int)
}

// NatsPublisher implements Publisher using NATS. A nil underlying
// publisher turns every call into a no-op.
type NatsPublisher struct {
	publisher *pktNats.Publisher
	logger    logger.ILogger
}

// NewNatsPublisher creates a new NATS-based event publisher
func NewNatsPublisher(publisher *pktNats.Publisher, logger logger.ILogger) *NatsPublisher {
	return &NatsPublisher{
		publisher: publisher,
		logger:    logger,
	}
}

func (p *NatsPublisher) publish(ctx context.Context, eventType, entityType string, entityId uuid.UUID, data map[string]interface{}) {
	if p.publisher == nil {
		return
	}

	now := time.Now()
	data["entity_type"] = entityType
	data["entity_id"] = entityId.String()
	data["occurred_at"] = now

	evt := pkgEvents.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: now,
	}

	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("ADMIN", "Failed to publish "+eventType+" event", map[string]interface{}{"error": err.Error()})
	}
}

// PublishFeatureCreated emits FEATURE_CREATED
func (p *NatsPublisher) PublishFeatureCreated(ctx context.Context, featureId uuid.UUID, key string, applicationId *uuid.UUID) {
	data := map[string]interface{}{
		"feature_id": featureId,
		"key":        key,
	}
	if applicationId != nil {
		data["application_id"] = applicationId.String()
	}
	p.publish(ctx, FeatureCreated, "feature", featureId, data)
}

// PublishFeatureUpdated emits FEATURE_UPDATED with the names of what changed
func (p *NatsPublisher) PublishFeatureUpdated(ctx context.Context, featureId uuid.UUID, key string, changes []string) {
	p.publish(ctx, FeatureUpdated, "feature", featureId, map[string]interface{}{
		"feature_id": featureId,
		"key":        key,
		"changes":    changes,
	})
}

func (p *NatsPublisher) PublishFeatureDeleted(ctx context.Context, featureId uuid.UUID, key string, configurations, values int64) {
	p.publish(ctx, FeatureDeleted, "feature", featureId, map[string]interface{}{
		"feature_id":             featureId,
		"key":                    key,
		"deleted_configurations": configurations,
		"deleted_values":         values,
	})
}

func (p *NatsPublisher) PublishPlanFeaturesConfigured(ctx context.Context, planId, applicationId uuid.UUID, featureIds []uuid.UUID) {
	ids := make([]string, 0, len(featureIds))
	for _, id := range featureIds {
		ids = append(ids, id.String())
	}
	p.publish(ctx, PlanFeaturesConfigured, "plan", planId, map[string]interface{}{
		"plan_id":        planId.String(),
		"application_id": applicationId.String(),
		"feature_ids":    ids,
	})
}

func (p *NatsPublisher) PublishPlanFeatureValuesReplaced(ctx context.Context, planId uuid.UUID, count int) {
	p.publish(ctx, PlanFeatureValuesReplaced, "plan", planId, map[string]interface{}{
		"plan_id": planId.String(),
		"count":   count,
	})
}
