package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prudhvinik1/odoosync/internal/config"
	"github.com/prudhvinik1/odoosync/internal/database"
	"github.com/prudhvinik1/odoosync/internal/handlers"
	"github.com/prudhvinik1/odoosync/internal/logging"
	"github.com/prudhvinik1/odoosync/internal/repositories"
	"github.com/prudhvinik1/odoosync/internal/services"
)

func main() {
	ctx := context.Background()

	godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, logCloser := logging.New(cfg.LogLevel, cfg.LogFile)
	defer logCloser.Close()

	for _, setting := range cfg.InsecureDefaults() {
		logger.Warn("insecure default in use, set it before deploying", "setting", setting)
	}

	// Initialize database connections
	store, err := database.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open local store: %v", err)
	}
	defer store.Close()

	redisClient, err := database.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to create redis client: %v", err)
	}

	authService, err := services.NewAuthService(services.AuthConfig{
		AdminUsername:     cfg.AdminUsername,
		AdminPassword:     cfg.AdminPassword,
		AdminPasswordHash: cfg.AdminPasswordHash,
		JWTSecret:         cfg.JWTSecret,
		JWTAlgorithm:      cfg.JWTAlgorithm,
		JWTExpiry:         cfg.JWTExpiry,
	})
	if err != nil {
		log.Fatalf("Failed to create auth service: %v", err)
	}

	deps := handlers.RouterDeps{
		Store:  store,
		Auth:   authService,
		Logger: logger,
	}
	if redisClient != nil {
		defer redisClient.Close()
		deps.SyncStatus = repositories.NewRedisSyncStatusRepository(redisClient)
	}

	// Start Server
	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.ServerPort),
		Handler:           handlers.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	logger.Info("starting server", "port", cfg.ServerPort, "dialect", store.Dialect(), "sync_status", redisClient != nil)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}

	logger.Info("server stopped gracefully")
}
