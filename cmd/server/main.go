package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bundestweets/bundestweets/internal/api"
	"github.com/bundestweets/bundestweets/internal/cache"
	"github.com/bundestweets/bundestweets/internal/members"
	"github.com/bundestweets/bundestweets/internal/stats"
	"github.com/bundestweets/bundestweets/internal/store"
	"github.com/bundestweets/bundestweets/internal/topics"
	"github.com/bundestweets/bundestweets/pkg/config"
	"github.com/bundestweets/bundestweets/pkg/logging"
	"github.com/bundestweets/bundestweets/pkg/telemetry"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logging.InitLogger(&cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logging.GetLogger().Sync()

	logger := logging.GetLogger()
	logger.Info("Starting Bundestweets API Server")

	// Initialize telemetry
	telemetryShutdown, err := telemetry.Init(&cfg.Telemetry)
	if err != nil {
		logger.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer telemetryShutdown()

	st, err := store.Open(&cfg.Database, cfg.Logging.Level)
	if err != nil {
		logger.Fatal("Failed to open corpus store", zap.Error(err))
	}
	defer st.Close()

	snap, err := members.Load(cfg.Data.MembersFile)
	if err != nil {
		logger.Fatal("Failed to load member snapshot", zap.Error(err))
	}

	topicSet, err := topics.LoadSet(cfg.Data.TopicsFile)
	if err != nil {
		logger.Fatal("Failed to load topic file", zap.Error(err))
	}

	resultCache, err := cache.New(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to initialize cache", zap.Error(err))
	}
	defer resultCache.Close()

	service := stats.NewService(st, snap, resultCache)

	// Create Gin router
	if cfg.Logging.Level == "DEBUG" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	router := api.NewRouter(service, topicSet, cfg.Data.OffensiveThreshold)
	router.SetupRoutes(engine)

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: engine,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Server starting", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
