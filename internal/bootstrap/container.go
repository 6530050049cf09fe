package bootstrap

import (
	"context"
	"log"

	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/config"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/controller"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/pkg/logger"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/repository/memory"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/repository/unitofwork"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/service"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/pkg/ai/invoke"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/pkg/ai/pipeline"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/pkg/ai/prompt"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/pkg/cache"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/pkg/llm/factory"
	pktNats "github.com/Nagchi-Mohamed/MathSophos-sub003/pkg/nats"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/pkg/render"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/pkg/storage"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

const (
	referenceEventsSubject = pktNats.SubjectPrefix + "reference.>"
	referenceEventsDurable = "content-reference-cache"
)

type Container struct {
	// Controllers
	LessonContentController controller.ILessonContentController
	ReferenceController     controller.IReferenceController

	// Background Services (Exposed for main.go to run)
	ConsumerService  service.IConsumerService
	ReferenceService service.IReferenceService

	Logger logger.ILogger

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	exchangeLogger := logger.NewIsolatedLogger(cfg.Ai.ExchangeLogPath)

	// 2. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)

	// 3. AI Pipeline
	llmProvider, err := factory.NewLLMProvider(providerConfig(cfg.Ai))
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	coordinator := invoke.NewCoordinator(llmProvider, sysLogger, invoke.Config{
		MaxRetries:   cfg.Ai.MaxRetries,
		BaseDelay:    cfg.Ai.RetryBaseDelay,
		SafetyMargin: cfg.Ai.RetrySafetyMargin,
	})

	files, err := storage.New(context.Background(), storage.Config{
		Driver:          cfg.Storage.Driver,
		Root:            cfg.Storage.Root,
		Bucket:          cfg.Storage.Bucket,
		CredentialsFile: cfg.Storage.CredentialsFile,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize file storage: %v", err)
	}

	referenceStore := memory.NewCachedReferenceStore(uowFactory, cfg.Cache.ReferenceTTL)
	assembler := prompt.NewAssembler(referenceStore, files, sysLogger)
	generator := pipeline.NewGenerator(
		assembler,
		coordinator,
		sysLogger,
		pipeline.WithRenderOptions(render.WithSectionPrefix(cfg.Ai.SectionPrefix)),
		pipeline.WithExchangeLogger(exchangeLogger),
	)

	// 4. Infrastructure
	// NATS
	var eventPublisher service.EventPublisher
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL, sysLogger)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	} else {
		eventPublisher = natsPub
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL, sysLogger)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	rdb := cache.NewRedisClient(cfg.App.RedisURL)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}
	renderCache := cache.NewRenderCache(rdb, cfg.Cache.RenderTTL)

	// 5. Services
	publisherService := service.NewPublisherService(cfg.Events.ContentTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Events.ContentTopic,
		uowFactory,
		renderCache,
		eventPublisher,
		sysLogger,
	)

	lessonContentService := service.NewLessonContentService(
		uowFactory,
		generator,
		publisherService,
		renderCache,
		sysLogger,
	)
	referenceService := service.NewReferenceService(referenceStore, sysLogger)

	if natsSub != nil {
		err := natsSub.Subscribe(context.Background(), referenceEventsSubject, referenceEventsDurable, referenceService.HandleReferenceEvent)
		if err != nil {
			log.Printf("[WARN] Failed to subscribe to reference events: %v", err)
		}
	}

	c := &Container{
		LessonContentController: controller.NewLessonContentController(lessonContentService),
		ReferenceController:     controller.NewReferenceController(referenceService),

		ConsumerService:  consumerService,
		ReferenceService: referenceService,
		Logger:           sysLogger,
	}

	c.closers = append(c.closers, func() { _ = pubSub.Close() }, func() { _ = rdb.Close() })
	if natsSub != nil {
		c.closers = append(c.closers, natsSub.Close)
	}
	if natsPub != nil {
		c.closers = append(c.closers, natsPub.Close)
	}
	if closer, ok := files.(interface{ Close() error }); ok {
		c.closers = append(c.closers, func() { _ = closer.Close() })
	}
	c.closers = append(c.closers, func() {
		_ = exchangeLogger.Sync()
		_ = sysLogger.Sync()
	})
	return c
}

// Close releases the connections opened by NewContainer.
func (c *Container) Close() {
	for _, closeFn := range c.closers {
		closeFn()
	}
}

func providerConfig(ai config.AIConfig) factory.ProviderConfig {
	pc := factory.ProviderConfig{
		Provider: ai.LLMProvider,
		Model:    ai.LLMModel,
		Timeout:  ai.RequestTimeout,
	}
	switch ai.LLMProvider {
	case "ollama":
		pc.BaseURL = ai.OllamaBaseURL
	case "huggingface":
		pc.APIKeys = []string{ai.HuggingFaceAPIKey}
	default:
		pc.BaseURL = ai.GeminiBaseURL
		pc.APIKeys = ai.GeminiAPIKeys
	}
	return pc
}
