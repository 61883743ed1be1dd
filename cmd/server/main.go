package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	auditapp "github.com/dovoc/backend/internal/application/audit"
	catalogapp "github.com/dovoc/backend/internal/application/catalog"
	identityapp "github.com/dovoc/backend/internal/application/identity"
	newsletterapp "github.com/dovoc/backend/internal/application/newsletter"
	orderapp "github.com/dovoc/backend/internal/application/order"
	reviewapp "github.com/dovoc/backend/internal/application/review"
	domainnotification "github.com/dovoc/backend/internal/domain/notification"
	"github.com/dovoc/backend/internal/infrastructure/auth"
	"github.com/dovoc/backend/internal/infrastructure/cache"
	"github.com/dovoc/backend/internal/infrastructure/config"
	"github.com/dovoc/backend/internal/infrastructure/logger"
	"github.com/dovoc/backend/internal/infrastructure/notification"
	"github.com/dovoc/backend/internal/infrastructure/persistence"
	"github.com/dovoc/backend/internal/infrastructure/storage"
	"github.com/dovoc/backend/internal/interfaces/http/handler"
	"github.com/dovoc/backend/internal/interfaces/http/middleware"
	"github.com/dovoc/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

const (
	shutdownTimeout = 30 * time.Second
	uploadMaxBytes  = 5 << 20
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		os.Stderr.WriteString("failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync(log) }()

	log.Info("starting storefront backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port))

	gormLevel := gormlogger.Silent
	if cfg.Log.Level == "debug" {
		gormLevel = gormlogger.Info
	}
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLevel)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	// Repositories
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	reviewRepo := persistence.NewGormReviewRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	subscriberRepo := persistence.NewGormSubscriberRepository(db.DB)
	auditRepo := persistence.NewGormAuditRepository(db.DB)

	// Outbound email: real sends only when the EmailJS keys are present
	var dispatcher domainnotification.Dispatcher
	if cfg.Mail.Enabled() {
		adapter, err := notification.NewEmailJSAdapter(&notification.EmailJSConfig{
			ServiceID:  cfg.Mail.ServiceID,
			TemplateID: cfg.Mail.TemplateID,
			PublicKey:  cfg.Mail.PublicKey,
			PrivateKey: cfg.Mail.PrivateKey,
			AdminEmail: cfg.Mail.AdminEmail,
			Timeout:    cfg.Mail.SendTimeout,
		})
		if err != nil {
			log.Fatal("failed to configure email delivery", zap.Error(err))
		}
		dispatcher = adapter
		log.Info("email delivery enabled", zap.String("service", cfg.Mail.ServiceID))
	} else {
		dispatcher = notification.NewStubDispatcher(log)
		log.Warn("email delivery disabled, sends will be logged only")
	}

	// Product image storage falls back to a stub when no bucket is set
	var imageStorage catalogapp.ImageStorage
	if cfg.Storage.Bucket != "" {
		s3Storage, err := storage.NewS3ImageStorage(&cfg.Storage)
		if err != nil {
			log.Fatal("failed to configure image storage", zap.Error(err))
		}
		imageStorage = s3Storage
		log.Info("image storage enabled", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		imageStorage = storage.NewStubImageStorage()
		log.Warn("image storage disabled, uploads will not be persisted")
	}

	jwtService := auth.NewJWTService(cfg.JWT)
	recorder := auditapp.NewRecorderService(auditRepo, log)

	// Application services
	orderService := orderapp.NewService(orderRepo, recorder, dispatcher, log)
	idempotencyStore := cache.NewIdempotencyStoreFactory(cfg.Redis, log).CreateStore()
	orderService.SetCheckoutGuard(idempotencyStore, cfg.Checkout.IdempotencyTTL)

	productService := catalogapp.NewProductService(productRepo, recorder, log)
	categoryService := catalogapp.NewCategoryService(categoryRepo, recorder, log)
	reviewService := reviewapp.NewService(reviewRepo, log)
	authService := identityapp.NewAuthService(userRepo, jwtService, recorder, log)
	userService := identityapp.NewUserService(userRepo, recorder, log)
	newsletterService := newsletterapp.NewService(subscriberRepo, recorder, dispatcher, cfg.Mail.BroadcastConcurrency, log)
	logService := auditapp.NewLogService(auditRepo)

	// New products are announced to newsletter subscribers
	productService.SetAnnouncer(newsletterService)

	// Handlers
	orderHandler := handler.NewOrderHandler(orderService)
	productHandler := handler.NewProductHandler(productService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	newsletterHandler := handler.NewNewsletterHandler(newsletterService)
	logHandler := handler.NewLogHandler(logService)
	contactHandler := handler.NewContactHandler(dispatcher)
	uploadHandler := handler.NewUploadHandler(imageStorage)
	systemHandler := handler.NewSystemHandler(db)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.RegisterValidators()
	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.GET("/health", systemHandler.Health)

	requireAuth := middleware.RequireAuth(jwtService, log)
	requireAdmin := middleware.RequireAdmin()
	loginLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitMax, cfg.HTTP.AuthRateLimitWindow)

	// Public storefront routes
	store := router.NewDomainGroup("store", "")
	store.POST("/orders", orderHandler.Create)
	store.GET("/products", productHandler.List)
	store.GET("/products/:id", productHandler.GetByID)
	store.GET("/categories", categoryHandler.List)
	store.POST("/reviews", reviewHandler.Create)
	store.GET("/reviews/product/:id", reviewHandler.ListByProduct)
	store.GET("/reviews/featured", reviewHandler.ListFeatured)
	store.POST("/newsletter/subscribe", newsletterHandler.Subscribe)
	store.POST("/contact", contactHandler.Submit)
	store.POST("/auth/login", middleware.RateLimit(loginLimiter), authHandler.Login)

	// Admin back-office routes
	admin := router.NewDomainGroup("admin", "")
	admin.Use(requireAuth, requireAdmin)
	admin.GET("/orders", orderHandler.List)
	admin.GET("/orders/:id", orderHandler.GetByID)
	admin.PATCH("/orders/:id/status", orderHandler.UpdateStatus)
	admin.DELETE("/orders/:id", orderHandler.Delete)
	admin.GET("/dashboard/summary", orderHandler.Summary)
	admin.POST("/products", productHandler.Create)
	admin.PUT("/products/:id", productHandler.Update)
	admin.DELETE("/products/:id", productHandler.Delete)
	admin.POST("/categories", categoryHandler.Create)
	admin.DELETE("/categories/:id", categoryHandler.Delete)
	admin.GET("/reviews", reviewHandler.List)
	admin.PATCH("/reviews/:id/featured", reviewHandler.ToggleFeatured)
	admin.DELETE("/reviews/:id", reviewHandler.Delete)
	admin.GET("/newsletter/subscribers", newsletterHandler.List)
	admin.POST("/newsletter/broadcast", newsletterHandler.Broadcast)
	admin.DELETE("/newsletter/subscribers/:id", newsletterHandler.Unsubscribe)
	admin.GET("/users", userHandler.List)
	admin.POST("/users", userHandler.Create)
	admin.PUT("/users/:id", userHandler.Update)
	admin.DELETE("/users/:id", userHandler.Delete)
	admin.GET("/logs", logHandler.List)
	admin.POST("/upload", middleware.BodyLimit(uploadMaxBytes), uploadHandler.Upload)

	router.NewRouter(engine).
		Register(store).
		Register(admin).
		Setup()

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}
