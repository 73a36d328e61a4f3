package bootstrap

import (
	"context"
	"time"

	"saas-manager-be/internal/config"
	"saas-manager-be/internal/controller"
	"saas-manager-be/internal/pkg/logger"
	"saas-manager-be/internal/pkg/serverutils"
	"saas-manager-be/internal/repository/contract"
	"saas-manager-be/internal/repository/memory"
	rediscache "saas-manager-be/internal/repository/redis"
	"saas-manager-be/internal/repository/unitofwork"
	"saas-manager-be/internal/service"
	adminEvents "saas-manager-be/pkg/admin/events"
	"saas-manager-be/pkg/admin/feature"
	"saas-manager-be/pkg/admin/featurevalue"
	"saas-manager-be/pkg/admin/plan"

	pktNats "saas-manager-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	FeatureController          controller.IFeatureController
	PlanFeatureController      controller.IPlanFeatureController
	PlanFeatureValueController controller.IPlanFeatureValueController
	LookupController           controller.ILookupController

	// AuthGuard protects the API group; nil when auth is disabled
	AuthGuard fiber.Handler

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger

	cfg     *config.Config
	pubSub  *gochannel.GoChannel
	natsPub *pktNats.Publisher
	natsSub *pktNats.Subscriber
	rdb     *redis.Client
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Infrastructure
	stream := pktNats.StreamConfig{Name: cfg.Events.StreamName, SubjectPrefix: cfg.Events.SubjectPrefix}
	var natsPub *pktNats.Publisher
	var natsSub *pktNats.Subscriber
	if cfg.App.NatsURL != "" {
		var err error
		natsPub, err = pktNats.NewPublisher(cfg.App.NatsURL, stream)
		if err != nil {
			sysLogger.Warn("BOOTSTRAP", "Failed to connect to NATS Publisher", map[string]interface{}{"error": err.Error()})
		}
		natsSub, err = pktNats.NewSubscriber(cfg.App.NatsURL, stream, sysLogger)
		if err != nil {
			sysLogger.Warn("BOOTSTRAP", "Failed to connect to NATS Subscriber", map[string]interface{}{"error": err.Error()})
		}
	} else {
		sysLogger.Info("BOOTSTRAP", "NATS_URL not set, audit events disabled", nil)
	}

	cache, rdb := newPlanFeatureCache(cfg, sysLogger)

	// 4. Services
	publisherService := service.NewPublisherService(cfg.Events.CatalogTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.Events.CatalogTopic, cache, sysLogger)

	adminEventPublisher := adminEvents.NewNatsPublisher(natsPub, sysLogger)
	featureManager := feature.NewManager()
	planManager := plan.NewManager()
	valueManager := featurevalue.NewManager()

	featureService := service.NewFeatureService(uowFactory, sysLogger, featureManager, cache, publisherService, adminEventPublisher)
	planFeatureService := service.NewPlanFeatureService(uowFactory, sysLogger, planManager, cache, cfg.Cache.TTL, adminEventPublisher)
	valueService := service.NewPlanFeatureValueService(uowFactory, sysLogger, valueManager, cache, cfg.Cache.TTL, adminEventPublisher)

	var authGuard fiber.Handler
	if cfg.Auth.Enabled {
		authGuard = serverutils.AdminJwtMiddleware(cfg.Auth.JwtSecret)
	}

	// 5. Controllers
	return &Container{
		FeatureController:          controller.NewFeatureController(featureService),
		PlanFeatureController:      controller.NewPlanFeatureController(planFeatureService),
		PlanFeatureValueController: controller.NewPlanFeatureValueController(valueService),
		LookupController:           controller.NewLookupController(),
		AuthGuard:                  authGuard,
		ConsumerService:            consumerService,
		Logger:                     sysLogger,

		cfg:     cfg,
		pubSub:  pubSub,
		natsPub: natsPub,
		natsSub: natsSub,
		rdb:     rdb,
	}
}

// newPlanFeatureCache falls back to the in-process cache when Redis is not
// selected or cannot be reached.
func newPlanFeatureCache(cfg *config.Config, sysLogger logger.ILogger) (contract.PlanFeatureCache, *redis.Client) {
	if cfg.Cache.Driver != "redis" {
		return memory.NewPlanFeatureCache(cfg.Cache.TTL), nil
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		sysLogger.Warn("BOOTSTRAP", "Failed to parse Redis URL, using direct Addr", map[string]interface{}{"error": err.Error()})
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		sysLogger.Warn("BOOTSTRAP", "Failed to connect to Redis, using memory cache", map[string]interface{}{"error": err.Error()})
		_ = rdb.Close()
		return memory.NewPlanFeatureCache(cfg.Cache.TTL), nil
	}
	return rediscache.NewPlanFeatureCache(rdb, cfg.Cache.Prefix), rdb
}

// StartBackground starts the catalog consumer and, when NATS is available,
// the cross-instance cache invalidation subscription.
func (c *Container) StartBackground(ctx context.Context) error {
	if err := c.ConsumerService.Consume(ctx); err != nil {
		return err
	}
	if c.natsSub != nil {
		if err := c.natsSub.Subscribe(ctx, c.cfg.Events.ConsumerName, c.ConsumerService.HandleBusEvent); err != nil {
			c.Logger.Warn("BOOTSTRAP", "NATS subscription failed, cache invalidation stays local", map[string]interface{}{"error": err.Error()})
		}
	}
	return nil
}

func (c *Container) Close() {
	if c.natsSub != nil {
		c.natsSub.Close()
	}
	if c.natsPub != nil {
		c.natsPub.Close()
	}
	if c.rdb != nil {
		_ = c.rdb.Close()
	}
	_ = c.pubSub.Close()
	_ = c.Logger.Sync()
}
