package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"triz_edu_backend/internal/config"
	"triz_edu_backend/internal/controller"
	"triz_edu_backend/internal/middleware"
	"triz_edu_backend/internal/repository"
	"triz_edu_backend/internal/service"
	"triz_edu_backend/pkg/configwatcher"
	"triz_edu_backend/pkg/database"
	"triz_edu_backend/pkg/logger"
	"triz_edu_backend/pkg/monitoring"
	"triz_edu_backend/pkg/security"
	"triz_edu_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	Catalog         *repository.CatalogRepository
	Storage         repository.ProgressStorage
	DB              *gorm.DB
	Redis           *redis.Client
	Minio           *minio.Client
	services        *services
	configCallbacks []func(*config.Config)
	tracerShutdown  func(context.Context) error
}

type services struct {
	progress    *service.ProgressService
	learning    *service.LearningService
	ai          *service.AIService
	trainer     *service.TrainerService
	answerCheck *service.AnswerCheckService
}

type controllers struct {
	module      *controller.ModuleController
	progress    *controller.ProgressController
	chat        *controller.ChatController
	trainer     *controller.TrainerController
	answerCheck *controller.AnswerCheckController
	health      *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) applyConfig(cfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

// initStorage opens the progress backend selected by storage.type.
func (a *App) initStorage(cfg *config.Config) (repository.ProgressStorage, error) {
	switch cfg.Storage.Type {
	case config.StorageMemory:
		return repository.NewMemoryProgressStorage(), nil
	case config.StorageDatabase:
		db, err := database.InitDB(&cfg.Database, &repository.ProgressRecord{})
		if err != nil {
			return nil, fmt.Errorf("init database: %w", err)
		}
		a.DB = db
		return repository.NewGormProgressStorage(db), nil
	case config.StorageRedis:
		rdb, err := database.InitRedis(&cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("init redis: %w", err)
		}
		a.Redis = rdb
		return repository.NewRedisProgressStorage(rdb, cfg.Redis.Key), nil
	case config.StorageMinio:
		client, err := database.InitMinio(&cfg.Minio)
		if err != nil {
			return nil, fmt.Errorf("init minio: %w", err)
		}
		a.Minio = client
		return repository.NewMinioProgressStorage(client, cfg.Minio.Bucket, cfg.Minio.Object), nil
	default:
		return nil, fmt.Errorf("unsupported storage type %q", cfg.Storage.Type)
	}
}

func (a *App) initServices(cfg *config.Config) *services {
	s := &services{}
	s.progress = service.NewProgressService(a.Catalog, a.Storage)
	s.learning = service.NewLearningService(a.Catalog, s.progress)
	s.ai = service.NewAIService(cfg.GigaChat, service.NewGigaChatClient(cfg.GigaChat))
	s.trainer = service.NewTrainerService(a.Catalog)
	s.answerCheck = service.NewAnswerCheckService()
	return s
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		module:      controller.NewModuleController(s.learning),
		progress:    controller.NewProgressController(s.learning),
		chat:        controller.NewChatController(s.ai),
		trainer:     controller.NewTrainerController(s.trainer),
		answerCheck: controller.NewAnswerCheckController(s.answerCheck),
		health:      controller.NewHealthController(a.Catalog, s.ai, a.Config.Storage.Type),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(gin.Recovery())
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// New wires the application without starting the server. Logging must
// already be initialized.
func New(cfg *config.Config) (*App, error) {
	catalog, err := repository.LoadCatalog(cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}
	logger.Log.Info("Catalog loaded",
		zap.String("path", cfg.Catalog.Path),
		zap.Int("modules", len(catalog.Modules())),
	)

	app := &App{
		Config:  cfg,
		Catalog: catalog,
	}

	storage, err := app.initStorage(cfg)
	if err != nil {
		return nil, err
	}
	app.Storage = storage

	services := app.initServices(cfg)
	app.services = services
	controllers := app.initControllers(services)

	if cfg.Server.Mode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers)

	app.RegisterConfigCallback(logger.SetLevel)
	app.RegisterConfigCallback(func(c *config.Config) {
		services.ai.SetModel(c.GigaChat.Model)
	})

	return app, nil
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	monitoring.Init()

	app, err := New(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize application", zap.Error(err))
	}

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("triz-edu", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracerShutdown = tp.Shutdown
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	if a.Config.File != "" {
		go func() {
			if err := configwatcher.Watch(watchCtx, a.Config.File, a.applyConfig); err != nil {
				logger.Log.Error("Config watcher stopped", zap.Error(err))
			}
		}()
	}

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	if a.tracerShutdown != nil {
		if err := a.tracerShutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}

	logger.Log.Info("Server exiting")
	logger.Log.Sync()
}
