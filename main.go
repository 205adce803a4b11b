// File: lexbook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lexbook/backend"
	"lexbook/config"
	"lexbook/handlers"
	"lexbook/middleware"
	"lexbook/monitoring"
	"lexbook/routes"
	adminSvc "lexbook/services/admin"
	"lexbook/services/chat"
	portalSvc "lexbook/services/portal"
	"lexbook/services/wizard"
	"lexbook/utils"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitRedis()
	monitoring.Init()

	if dsn := config.AppConfig.SentryDSN; dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			Environment:      config.GetEnv(),
			TracesSampleRate: 0.2,
		}); err != nil {
			logger.Sugar().Fatalf("main: failed to initialize sentry: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	// Create the Gin router.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(middleware.SentryMiddleware())
	router.Use(middleware.PrometheusMetrics())

	// Capability client: every durable record lives behind this API.
	capClient := backend.New(config.AppConfig.BackendURL, config.AppConfig.BackendAnonKey, logger)

	// services.
	wizardService := &wizard.DefaultWizardService{
		API:         capClient,
		Store:       wizard.NewStore(utils.GetCacheClient()),
		Logger:      logger,
		Debounce:    wizard.NewDebouncer(400 * time.Millisecond),
		CallbackURL: config.AppConfig.SiteBaseURL + "/api/consultation/callback",
		DefaultFee:  config.AppConfig.DefaultConsultationFee,
		DemoAllowed: config.DemoPaymentsAllowed(),
	}
	adminService := adminSvc.NewService(capClient, logger)
	portalService := portalSvc.NewService(capClient, utils.GetAuthCacheClient(), logger)

	ctxStore := chat.NewRedisContextStore(utils.GetChatCacheClient(), 30*time.Minute)
	chatService := chat.NewService(chat.NewGeminiClient(config.AppConfig.GeminiAPIKey), ctxStore, logger)

	// Assemble the handler bundle.
	confirmationURL := config.AppConfig.SiteBaseURL + "/consultation/confirmation"
	handlerBundle := &handlers.HandlerBundle{
		Consultation: handlers.NewConsultationHandler(wizardService, logger, confirmationURL),
		Admin:        handlers.NewAdminHandler(adminService, logger),
		Portal:       handlers.NewPortalHandler(portalService, logger),
		Chat:         handlers.NewChatHandler(chatService, logger),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor([]*redis.Client{
		utils.GetCacheClient(), utils.GetAuthCacheClient(), utils.GetChatCacheClient(),
	}, capClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
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

	wizardService.Debounce.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
