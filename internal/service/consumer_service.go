package service

import (
	"context"
	"encoding/json"
	"strings"

	"saas-manager-be/internal/dto"
	"saas-manager-be/internal/pkg/logger"
	"saas-manager-be/internal/repository/contract"
	"saas-manager-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// IConsumerService keeps the plan cache coherent with the catalog.
// Consume listens to in-process catalog changes; HandleBusEvent is the
// NATS handler used when several instances share the stream.
type IConsumerService interface {
	Consume(ctx context.Context) error
	HandleBusEvent(ctx context.Context, event events.Event) error
}

type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	cache     contract.PlanFeatureCache
	logger    logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	cache contract.PlanFeatureCache,
	logger logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		cache:     cache,
		logger:    logger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.CatalogChangedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("CATALOG_CONSUMER", "Failed to unmarshal message", map[string]interface{}{"error": err.Error()})
		msg.Ack() // never valid, do not redeliver
		return
	}

	// A feature can appear in any plan, so every plan view is dropped
	if err := cs.cache.InvalidateAll(ctx); err != nil {
		cs.logger.Error("CATALOG_CONSUMER", "Failed to flush plan cache", map[string]interface{}{
			"feature_id": payload.FeatureId.String(),
			"error":      err.Error(),
		})
		msg.Nack()
		return
	}

	cs.logger.Debug("CATALOG_CONSUMER", "Plan cache flushed", map[string]interface{}{
		"feature_id": payload.FeatureId.String(),
		"action":     payload.Action,
	})
	msg.Ack()
}

func (cs *consumerService) HandleBusEvent(ctx context.Context, event events.Event) error {
	eventType := event.EventType()

	switch {
	case strings.HasPrefix(eventType, "FEATURE_"):
		return cs.cache.InvalidateAll(ctx)
	case strings.HasPrefix(eventType, "PLAN_"):
		raw, ok := event.Payload()["plan_id"].(string)
		if !ok {
			return cs.cache.InvalidateAll(ctx)
		}
		planId, err := uuid.Parse(raw)
		if err != nil {
			cs.logger.Warn("CATALOG_CONSUMER", "Event carries an invalid plan_id", map[string]interface{}{
				"event_type": eventType,
				"plan_id":    raw,
			})
			return nil
		}
		return cs.cache.InvalidatePlan(ctx, planId)
	}
	return nil
}
