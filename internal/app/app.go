package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gesture_presentation_backend/internal/config"
	"gesture_presentation_backend/internal/controller"
	"gesture_presentation_backend/internal/repository"
	"gesture_presentation_backend/internal/service"
	"gesture_presentation_backend/pkg/database"
	"gesture_presentation_backend/pkg/logger"
	"gesture_presentation_backend/pkg/monitoring"
	"gesture_presentation_backend/pkg/security"
	"gesture_presentation_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	services *services
}

type repositories struct {
	user        *repository.UserRepository
	session     *repository.SessionRepository
	gestureLog  *repository.GestureLogRepository
	performance *repository.PerformanceRepository
}

type services struct {
	auth        *service.AuthService
	gesture     *service.GestureService
	session     *service.SessionService
	performance *service.PerformanceService
	demo        *service.DemoService
}

type controllers struct {
	auth        *controller.AuthController
	gesture     *controller.GestureController
	session     *controller.SessionController
	performance *controller.PerformanceController
	page        *controller.PageController
	health      *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		session:     repository.NewSessionRepository(db),
		gestureLog:  repository.NewGestureLogRepository(db),
		performance: repository.NewPerformanceRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	return &services{
		auth:        service.NewAuthService(repos.user, cfg),
		gesture:     service.NewGestureService(repos.gestureLog, repos.session),
		session:     service.NewSessionService(repos.session),
		performance: service.NewPerformanceService(repos.performance, repos.session),
		demo:        service.NewDemoService(repos.user, repos.session, repos.gestureLog),
	}
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth),
		gesture:     controller.NewGestureController(s.gesture),
		session:     controller.NewSessionController(s.session),
		performance: controller.NewPerformanceController(s.performance),
		page:        controller.NewPageController(s.session),
		health:      controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.AllowedHosts(cfg.Server.AllowedHosts))
	router.Use(security.CORS(&cfg.CORS))
	router.Use(security.Secure(cfg))

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Hour
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("starting up",
		zap.Bool("serverless", cfg.Serverless),
		zap.String("database_url", cfg.Database.URL),
	)

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg)
	app.services = services
	controllers := app.initControllers(services, db)

	monitoring.Init()

	if !cfg.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	router.LoadHTMLGlob("templates/*.html")

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("gesture-presentation", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	return app
}

// SetupDemo seeds the demo user, session and gesture logs.
func (a *App) SetupDemo() error {
	return a.services.demo.Setup()
}

func (a *App) Run() {
	port := a.Config.Server.Port
	if port == "" {
		port = "8000"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", port)
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
