package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"youthhub_backend/internal/config"
	"youthhub_backend/internal/controller"
	"youthhub_backend/internal/middleware"
	"youthhub_backend/internal/repository"
	"youthhub_backend/internal/service"
	"youthhub_backend/pkg/configwatcher"
	"youthhub_backend/pkg/database"
	"youthhub_backend/pkg/logger"
	"youthhub_backend/pkg/monitoring"
	"youthhub_backend/pkg/security"
	"youthhub_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const configFile = "configs/config.yaml"

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	tracer          *sdktrace.TracerProvider
	stopWatcher     context.CancelFunc
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user        *repository.UserRepository
	badge       *repository.BadgeRepository
	course      *repository.CourseRepository
	progress    *repository.ProgressRepository
	challenge   *repository.ChallengeRepository
	completion  *repository.CompletionRepository
	activity    *repository.ActivityLogRepository
	quizAttempt *repository.QuizAttemptRepository
}

type services struct {
	ledger      *service.PointsLedger
	completion  *service.CompletionOrchestrator
	course      *service.CourseProgressionService
	challenge   *service.ChallengeService
	achievement *service.AchievementService
}

type controllers struct {
	course      *controller.CourseController
	challenge   *controller.ChallengeController
	achievement *controller.AchievementController
	health      *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		badge:       repository.NewBadgeRepository(db),
		course:      repository.NewCourseRepository(db),
		progress:    repository.NewProgressRepository(db),
		challenge:   repository.NewChallengeRepository(db),
		completion:  repository.NewCompletionRepository(db),
		activity:    repository.NewActivityLogRepository(db),
		quizAttempt: repository.NewQuizAttemptRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.ledger = service.NewPointsLedger(repos.user, repos.badge)
	s.completion = service.NewCompletionOrchestrator(
		db,
		s.ledger,
		repos.completion,
		repos.user,
		repos.challenge,
		repos.activity,
		rdb,
	)
	s.completion.SetRetryPolicy(cfg.Progression)

	s.course = service.NewCourseProgressionService(repos.course, repos.progress, repos.quizAttempt, s.completion)
	s.challenge = service.NewChallengeService(repos.challenge, repos.user, s.completion)
	s.achievement = service.NewAchievementService(repos.user, repos.badge, repos.activity, rdb, cfg.Cache.AchievementsTTL)

	// 重试策略支持热更新
	a.RegisterConfigCallback(func(newCfg *config.Config) {
		s.completion.SetRetryPolicy(newCfg.Progression)
		logger.Log.Info("Progression retry policy updated",
			zap.Int("maxAttempts", newCfg.Progression.MaxAttempts),
			zap.Duration("initialInterval", newCfg.Progression.RetryInitialInterval))
	})

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		course:      controller.NewCourseController(s.course),
		challenge:   controller.NewChallengeController(s.challenge),
		achievement: controller.NewAchievementController(s.achievement),
		health:      controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// learnerRateLimiter 在认证之后执行，按学习者限流
func learnerRateLimiter(cfg *config.Config) gin.HandlerFunc {
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	return security.RateLimiter(cfg.RateLimit.MaxRequests, window, security.LearnerKey(middleware.LearnerID))
}

func (a *App) startConfigWatcher() {
	ctx, cancel := context.WithCancel(context.Background())
	a.stopWatcher = cancel

	go func() {
		err := configwatcher.WatchConfig(ctx, configFile, func(newCfg *config.Config) {
			for _, cb := range a.configCallbacks {
				cb(newCfg)
			}
		})
		if err != nil {
			logger.Log.Warn("Config watcher stopped", zap.Error(err))
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	if err := logger.InitLogger(cfg); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// release 模式默认不迁移，除非通过 -migrate 强制
	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	app := &App{
		Config: cfg,
		DB:     db,
	}
	if cfg.MigrateOnly {
		return app
	}

	// Redis 只用作成就缓存，未启用时直接读库
	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
			log.Fatalf("Failed to initialize redis: %v", err)
		}
	}
	app.Redis = rdb

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	// 监控初始化
	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("youthhub-progression", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	app.registerRoutes(router, controllers, cfg)

	if _, err := os.Stat(filepath.Clean(configFile)); err == nil {
		app.startConfigWatcher()
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	if a.stopWatcher != nil {
		a.stopWatcher()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}

	log.Println("Server exiting")
}
