package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"closetcircle/config"
	"closetcircle/cron"
	"closetcircle/database"
	commerceRepo "closetcircle/database/repository/commerce"
	recordsRepo "closetcircle/database/repository/records"
	"closetcircle/handlers"
	"closetcircle/middleware"
	"closetcircle/routes"
	"closetcircle/services/booking"
	"closetcircle/services/discovery"
	ai "closetcircle/services/intelligence"
	"closetcircle/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	cfg := config.AppConfig

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	sessionCache := utils.GetSessionCacheClient()

	// Mongo is only needed for the mongo backend driver and the booking event log.
	needsMongo := cfg.BackendDriver == config.BackendMongo || cfg.EventsEnabled
	if needsMongo {
		if err := database.InitDB(rootCtx); err != nil {
			logger.Fatal("main: failed to connect to MongoDB", zap.Error(err))
		}
	}

	// commerce backend.
	var backend commerceRepo.Backend
	switch cfg.BackendDriver {
	case config.BackendMongo:
		mongoBackend, err := commerceRepo.NewMongoBackend(database.Database(), cfg.BackendTimeout)
		if err != nil {
			logger.Fatal("main: failed to initialize mongo backend", zap.Error(err))
		}
		backend = mongoBackend
	default:
		backend = commerceRepo.NewHTTPBackend(cfg.BackendBaseURL, cfg.BackendTimeout)
	}
	logger.Info("Commerce backend ready", zap.String("driver", cfg.BackendDriver))

	// booking events.
	var publisher booking.EventPublisher = booking.NoopPublisher{}
	var eventsHandler *handlers.EventsHandler
	if cfg.EventsEnabled {
		queueOpt := asynq.RedisClientOpt{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisQueueDB,
		}
		queueClient := asynq.NewClient(queueOpt)
		defer queueClient.Close()
		publisher = booking.NewAsynqPublisher(queueClient)

		eventRepo, err := recordsRepo.NewMongoRecordRepo(database.Database(), cfg.BackendTimeout)
		if err != nil {
			logger.Fatal("main: failed to initialize booking event log", zap.Error(err))
		}
		worker := cron.InitBookingEventWorker(rootCtx, eventRepo, logger)
		defer worker.Shutdown()
		eventsHandler = handlers.NewEventsHandler(eventRepo)
	}

	// services.
	discoverySvc := discovery.NewDiscoveryService(backend, logger)
	bookingSvc := booking.NewBookingService(backend, publisher, logger)

	var lu ai.Understander
	if cfg.GeminiAPIKey != "" {
		gemini, err := ai.NewGeminiClient(rootCtx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiTimeout, logger)
		if err != nil {
			logger.Fatal("main: failed to initialize language understanding", zap.Error(err))
		}
		lu = gemini
	} else {
		logger.Warn("GEMINI_API_KEY not set; using keyword understanding")
		lu = ai.NewKeywordUnderstander()
	}

	store := ai.NewRedisContextStore(sessionCache, cfg.SessionTTL)
	assistant := ai.NewAssistantService(store, lu, discoverySvc, bookingSvc, logger)

	handlerBundle := handlers.NewHandlerBundle(handlers.NewAssistantHandler(assistant), eventsHandler, handlers.HealthHandler)

	utils.StartHealthMonitor(rootCtx, 30*time.Second, sessionCache, database.MongoClient)

	// Create the Gin router.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))

	routes.RegisterRoutes(router, handlerBundle, cfg.AllowedOrigins())

	srv := &http.Server{
		Addr:    "0.0.0.0:" + cfg.AppPort,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	if err := database.Disconnect(ctx); err != nil {
		logger.Sugar().Warnf("main: mongo disconnect: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
