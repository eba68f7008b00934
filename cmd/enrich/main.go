package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/bundestweets/bundestweets/internal/enrich"
	"github.com/bundestweets/bundestweets/internal/store"
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
	logger.Info("Starting Bundestweets Enrichment")

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

	// The probability document comes from an external classifier run and
	// may not exist yet; scoring is simply skipped then.
	var scorer enrich.Scorer
	if _, statErr := os.Stat(cfg.Data.OffensiveFile); statErr == nil {
		fileScorer, err := enrich.LoadFileScorer(cfg.Data.OffensiveFile)
		if err != nil {
			logger.Fatal("Failed to load offensive probabilities", zap.Error(err))
		}
		scorer = fileScorer
	} else {
		logger.Info("No offensive probability document found, skipping scoring",
			zap.String("path", cfg.Data.OffensiveFile))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		logger.Info("Interrupt received, aborting enrichment...")
		cancel()
	}()

	pass := enrich.NewPass(st, scorer, cfg.Data.TranslationFile)
	if err := pass.Run(ctx); err != nil {
		logger.Fatal("Enrichment failed", zap.Error(err))
	}

	logger.Info("Enrichment complete")
}
