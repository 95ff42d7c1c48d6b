package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	identityapp "github.com/studioerp/backend/internal/application/identity"
	inventoryapp "github.com/studioerp/backend/internal/application/inventory"
	notifyapp "github.com/studioerp/backend/internal/application/notify"
	partnerapp "github.com/studioerp/backend/internal/application/partner"
	procurementapp "github.com/studioerp/backend/internal/application/procurement"
	projectapp "github.com/studioerp/backend/internal/application/project"
	reportapp "github.com/studioerp/backend/internal/application/report"
	salesapp "github.com/studioerp/backend/internal/application/sales"
	"github.com/studioerp/backend/internal/infrastructure/auth"
	"github.com/studioerp/backend/internal/infrastructure/config"
	"github.com/studioerp/backend/internal/infrastructure/logger"
	"github.com/studioerp/backend/internal/infrastructure/persistence"
	"github.com/studioerp/backend/internal/infrastructure/telemetry"
	"github.com/studioerp/backend/internal/interfaces/http/handler"
	"github.com/studioerp/backend/internal/interfaces/http/middleware"
	"github.com/studioerp/backend/internal/interfaces/http/router"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log := logger.New(cfg.Log)
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Studio Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database connection
	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize tracing (query spans only when the collector is enabled)
	if cfg.Telemetry.Enabled {
		tp, err := telemetry.NewTracerProvider(context.Background(), cfg.Telemetry, log)
		if err != nil {
			log.Fatal("Failed to initialize tracer provider", zap.Error(err))
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(ctx); err != nil {
				log.Error("Error shutting down tracer provider", zap.Error(err))
			}
		}()
		if err := db.EnableTracing(); err != nil {
			log.Warn("Failed to enable database tracing", zap.Error(err))
		}
		log.Info("Telemetry enabled",
			zap.String("endpoint", cfg.Telemetry.CollectorEndpoint),
			zap.Float64("sampling_ratio", cfg.Telemetry.SamplingRatio),
		)
	}

	// Token blacklist: Redis when available, otherwise in-process
	var blacklist auth.TokenBlacklist
	if cfg.Redis.Enabled {
		redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisBlacklist.Close(); err != nil {
				log.Error("Error closing Redis connection", zap.Error(err))
			}
		}()
		blacklist = redisBlacklist
		log.Info("Redis token blacklist enabled", zap.String("addr", cfg.Redis.Addr()))
	} else {
		blacklist = auth.NewMemoryTokenBlacklist()
	}

	// Initialize repositories
	clientRepo := persistence.NewGormClientRepository(db.DB)
	itemRepo := persistence.NewGormItemRepository(db.DB)
	supplyItemRepo := persistence.NewGormSupplyItemRepository(db.DB)
	quotationRepo := persistence.NewGormQuotationRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	purchaseOrderRepo := persistence.NewGormPurchaseOrderRepository(db.DB)
	taskRepo := persistence.NewGormTaskRepository(db.DB)
	teamRepo := persistence.NewGormTeamRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	notificationRepo := persistence.NewGormNotificationRepository(db.DB)
	unitOfWork := persistence.NewGormUnitOfWork(db.DB)

	// Notifier fans out in-app notifications across services
	notifier := notifyapp.NewNotifier(notificationRepo, userRepo, log)

	// Initialize application services
	clientService := partnerapp.NewClientService(clientRepo)
	itemService := inventoryapp.NewItemService(itemRepo, notifier)
	supplyItemService := inventoryapp.NewSupplyItemService(supplyItemRepo, notifier)
	quotationService := salesapp.NewQuotationService(quotationRepo, invoiceRepo, clientRepo, userRepo, unitOfWork, notifier)
	invoiceService := salesapp.NewInvoiceService(invoiceRepo, clientRepo, userRepo, notifier)
	purchaseOrderService := procurementapp.NewPurchaseOrderService(purchaseOrderRepo, notifier)
	taskService := projectapp.NewTaskService(taskRepo, userRepo, notifier)
	teamService := projectapp.NewTeamService(teamRepo, userRepo)
	notificationService := notifyapp.NewNotificationService(notificationRepo)
	reportService := reportapp.NewReportService(
		clientRepo,
		itemRepo,
		supplyItemRepo,
		quotationRepo,
		invoiceRepo,
		purchaseOrderRepo,
		taskRepo,
		teamRepo,
		userRepo,
	)

	// Identity services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	userService := identityapp.NewUserService(userRepo)

	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()
	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack in order: request ID, panic recovery, request
	// logging, tracing, CORS, body limit
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	if cfg.Telemetry.Enabled {
		engine.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}
	engine.Use(middleware.CORS(cfg.HTTP))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning and authentication)
	healthHandler := handler.NewHealthHandler(db)
	healthHandler.Register(engine)

	// JWT authentication on the versioned API group
	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.Blacklist = blacklist
	jwtConfig.Logger = log

	r := router.NewRouter(engine,
		router.WithAPIVersion("v1"),
		router.WithGroupMiddleware(middleware.JWTAuthWithConfig(jwtConfig)),
	)

	r.Register(handler.NewAuthHandler(authService)).
		Register(handler.NewClientHandler(clientService)).
		Register(handler.NewInventoryHandler(itemService)).
		Register(handler.NewSupplyItemHandler(supplyItemService)).
		Register(handler.NewQuotationHandler(quotationService)).
		Register(handler.NewInvoiceHandler(invoiceService)).
		Register(handler.NewPurchaseOrderHandler(purchaseOrderService)).
		Register(handler.NewTaskHandler(taskService)).
		Register(handler.NewTeamHandler(teamService)).
		Register(handler.NewUserHandler(userService)).
		Register(handler.NewNotificationHandler(notificationService)).
		Register(handler.NewReportHandler(reportService))

	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
