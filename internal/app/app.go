package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sanni11/slapbook/internal/config"
	"github.com/Sanni11/slapbook/internal/controller"
	"github.com/Sanni11/slapbook/internal/repository"
	"github.com/Sanni11/slapbook/internal/service"
	"github.com/Sanni11/slapbook/pkg/configwatcher"
	"github.com/Sanni11/slapbook/pkg/database"
	"github.com/Sanni11/slapbook/pkg/logger"
	"github.com/Sanni11/slapbook/pkg/monitoring"
	"github.com/Sanni11/slapbook/pkg/security"
	"github.com/Sanni11/slapbook/pkg/tracing"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user     *repository.UserRepository
	post     *repository.PostRepository
	comment  *repository.CommentRepository
	activity *repository.ActivityRepository
}

type services struct {
	auth      *service.AuthService
	feed      *service.FeedService
	activity  *service.ActivityService
	dashboard *service.DashboardService
	storage   *service.StorageService
}

type controllers struct {
	auth      *controller.AuthController
	feed      *controller.FeedController
	activity  *controller.ActivityController
	dashboard *controller.DashboardController
	user      *controller.UserController
	health    *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		post:     repository.NewPostRepository(db),
		comment:  repository.NewCommentRepository(db),
		activity: repository.NewActivityRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.feed = service.NewFeedService(repos.post, repos.comment, rdb)
	s.activity = service.NewActivityService(repos.activity, cfg)
	s.dashboard = service.NewDashboardService(repos.activity, rdb, cfg)

	return s
}

func (a *App) initControllers(s *services, repos *repositories, db *gorm.DB) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth),
		feed:      controller.NewFeedController(s.feed),
		activity:  controller.NewActivityController(s.activity),
		dashboard: controller.NewDashboardController(s.dashboard),
		user:      controller.NewUserController(repos.user, s.storage),
		health:    controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, repos, db)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("slapbook", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	// Allowlist edits take effect without a restart.
	go configwatcher.WatchConfig("configs/config.yaml", func(newCfg *config.Config) {
		services.auth.UpdateAllowlist(newCfg.Allowlist.Emails)
		logger.Log.Info("Allowlist reloaded", zap.Int("emails", len(newCfg.Allowlist.Emails)))
	})

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
