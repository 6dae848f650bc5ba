package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/thekpsgroup/contractorjobcosting-backend/config"
	"github.com/thekpsgroup/contractorjobcosting-backend/handlers"
	"github.com/thekpsgroup/contractorjobcosting-backend/logger"
	"github.com/thekpsgroup/contractorjobcosting-backend/router"
	"github.com/thekpsgroup/contractorjobcosting-backend/services"
)

func main() {
	// A .env file is optional; environment variables win either way.
	_ = godotenv.Load()

	logger.InitLogger()
	log := logger.GetLogger()
	defer func() {
		_ = logger.Close()
	}()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Services
	rateLimiter := services.NewRateLimitService(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window())
	emailService := services.NewEmailService(&cfg.Email)
	contactService := services.NewContactService(cfg, rateLimiter, emailService)
	healthService := services.NewHealthService(cfg.Server.Version)

	// Handlers
	deps := router.Dependencies{
		Config:         cfg,
		ContactHandler: handlers.NewContactHandler(contactService),
		HealthHandler:  handlers.NewHealthHandler(healthService),
		SEOHandler:     handlers.NewSEOHandler(&cfg.Site),
		Logger:         log,
	}

	r := router.SetupRouter(deps)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Infow("Starting server", "port", cfg.Server.Port, "environment", cfg.Server.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	stop()
	log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("Server shutdown failed", "error", err)
	}
}
