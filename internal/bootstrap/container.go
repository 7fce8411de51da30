package bootstrap

import (
	"context"
	"log"

	"pdf-knowledge-be/internal/agent"
	"pdf-knowledge-be/internal/config"
	"pdf-knowledge-be/internal/controller"
	"pdf-knowledge-be/internal/handler"
	"pdf-knowledge-be/internal/pkg/logger"
	"pdf-knowledge-be/internal/repository/memory"
	"pdf-knowledge-be/internal/service"
	"pdf-knowledge-be/internal/store"
	"pdf-knowledge-be/internal/tools"
	"pdf-knowledge-be/internal/tools/fulfilment"
	"pdf-knowledge-be/internal/tools/knowledge"
	"pdf-knowledge-be/internal/websocket"
	"pdf-knowledge-be/pkg/embedding"
	"pdf-knowledge-be/pkg/pdfdoc"
	"pdf-knowledge-be/pkg/vectorstore"
	"pdf-knowledge-be/pkg/vectorstore/pgstore"
	"pdf-knowledge-be/pkg/vectorstore/snapshot"

	pktNats "pdf-knowledge-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	// Controllers
	UploadController  controller.IUploadController
	LibraryController controller.ILibraryController
	SystemController  controller.ISystemController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Notification
	ChatHandler  *handler.ChatHandler
	WebSocketHub *websocket.Hub

	// Infrastructure held for teardown
	Logger  logger.ILogger
	natsPub *pktNats.Publisher
	natsSub *pktNats.Subscriber

	// Set by the server once the listener exists.
	stopListener func() error
}

// OnShutdown binds the listener teardown the shutdown route triggers.
func (c *Container) OnShutdown(fn func() error) {
	c.stopListener = fn
}

func (c *Container) shutdownAll() error {
	if c.natsPub != nil {
		c.natsPub.Close()
	}
	if c.natsSub != nil {
		c.natsSub.Close()
	}
	if c.Logger != nil {
		c.Logger.Sync()
	}
	if c.stopListener != nil {
		return c.stopListener()
	}
	return nil
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Domain Infrastructure
	// Initialize Embedding Provider based on Config
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Ai.GoogleGeminiKey)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	// Initialize Vector Store based on Config
	var vectorStore vectorstore.Store
	if cfg.Database.VectorBackend == "pgvector" {
		pg, err := pgstore.Open(cfg.Database.Connection)
		if err != nil {
			log.Fatalf("[FATAL] Failed to open pgvector store: %v", err)
		}
		vectorStore = pg
		log.Printf("[INFO] Using Vector Store: PGVECTOR")
	} else {
		snap, err := snapshot.New(cfg.Knowledge.VectorStorePath)
		if err != nil {
			log.Fatalf("[FATAL] Failed to open vector store snapshot: %v", err)
		}
		vectorStore = snap
		log.Printf("[INFO] Using Vector Store: SNAPSHOT (%s)", cfg.Knowledge.VectorStorePath)
	}

	registry := store.NewDocumentRegistry(cfg.Knowledge.RegistryPath)
	topicMemory := store.NewTopicMemory(cfg.Knowledge.TopicMemoryPath)
	loader := pdfdoc.NewLoader()

	// 4. Coded Tools
	toolRegistry := tools.NewRegistry()
	toolRegistry.Register(knowledge.NewAddPdfToKnowledge(
		loader, embeddingProvider, vectorStore, registry,
		cfg.Knowledge.ChunkSize, cfg.Knowledge.ChunkOverlap, sysLogger,
	))
	toolRegistry.Register(knowledge.NewQueryPdfKnowledge(
		embeddingProvider, vectorStore,
		cfg.Knowledge.TopK, cfg.Knowledge.ScoreThreshold, sysLogger,
	))
	toolRegistry.Register(knowledge.NewExtractPdfKnowledge(loader, sysLogger))
	toolRegistry.Register(knowledge.NewCommitToMemory(topicMemory, sysLogger))
	toolRegistry.Register(knowledge.NewRecallMemory(topicMemory, sysLogger))
	toolRegistry.Register(fulfilment.NewApprovedSupplierDatabase())
	toolRegistry.Register(fulfilment.NewProductionParameterDatabase())
	toolRegistry.Register(fulfilment.NewComplianceChecklistDatabase())
	toolRegistry.Register(fulfilment.NewQualityFailureModeDatabase())

	sysLogger.Info("Bootstrap", "Coded tools registered", map[string]interface{}{"tools": toolRegistry.Names()})

	agentSession := agent.NewSession(toolRegistry, sysLogger)
	sessionRepo := memory.NewSessionRepository()

	// 5. Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/chat.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 6. Services
	publisherService := service.NewPublisherService(cfg.Knowledge.ExtractTopicName, pubSub)
	chatService := service.NewChatService(sessionRepo, agentSession, sysLogger)
	knowledgeService := service.NewKnowledgeService(chatService, publisherService, natsPub, sysLogger)
	libraryService := service.NewLibraryService(registry, topicMemory, vectorStore)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Knowledge.ExtractTopicName,
		agentSession,
		natsPub,
		sysLogger,
	)

	notifService := service.NewNotificationService(natsSub, wsHub, wsLogger)
	if natsSub != nil {
		go notifService.Start()
	}

	chatHandler := handler.NewChatHandler(chatService, wsHub, cfg.App.SessionSecret, wsLogger)

	c := &Container{
		ChatHandler:  chatHandler,
		WebSocketHub: wsHub,

		UploadController:  controller.NewUploadController(knowledgeService, cfg.App.UploadDir),
		LibraryController: controller.NewLibraryController(libraryService),

		ConsumerService: consumerService,

		Logger:  sysLogger,
		natsPub: natsPub,
		natsSub: natsSub,
	}
	c.SystemController = controller.NewSystemController(cfg.App.SessionSecret, c.shutdownAll, sysLogger)

	return c
}
