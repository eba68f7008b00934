package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/bundestweets/bundestweets/internal/linkage"
	"github.com/bundestweets/bundestweets/internal/members"
	"github.com/bundestweets/bundestweets/internal/scraper"
	"github.com/bundestweets/bundestweets/internal/store"
	"github.com/bundestweets/bundestweets/pkg/config"
	"github.com/bundestweets/bundestweets/pkg/logging"
	"github.com/bundestweets/bundestweets/pkg/telemetry"
)

func main() {
	startIndex := flag.Int("start-index", 0, "member index to resume scraping from")
	since := flag.String("since", "2018-01-01", "scrape tweets newer than this date (YYYY-MM-DD)")
	registry := flag.String("registry", "", "registry document for a fresh linkage run")
	freshDownload := flag.Bool("fresh-download", false, "rebuild the member snapshot before scraping")
	flag.Parse()

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
	logger.Info("Starting Bundestweets Scraper")

	// Initialize telemetry
	telemetryShutdown, err := telemetry.Init(&cfg.Telemetry)
	if err != nil {
		logger.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer telemetryShutdown()

	sinceDate, err := time.Parse("2006-01-02", *since)
	if err != nil {
		logger.Fatal("Bad since date", zap.String("since", *since), zap.Error(err))
	}

	st, err := store.Open(&cfg.Database, cfg.Logging.Level)
	if err != nil {
		logger.Fatal("Failed to open corpus store", zap.Error(err))
	}
	defer st.Close()

	client, err := scraper.New(&cfg.Scraper)
	if err != nil {
		logger.Fatal("Failed to create scraper client", zap.Error(err))
	}

	// Cancel the run on interrupt so a rate-limit wait does not outlive the
	// process.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		logger.Info("Interrupt received, aborting scrape...")
		cancel()
	}()

	if err := st.EnsureSchema(ctx); err != nil {
		logger.Fatal("Failed to ensure schema", zap.Error(err))
	}

	snap, err := memberSnapshot(ctx, client, cfg, *registry, *freshDownload)
	if err != nil {
		logger.Fatal("Failed to load member snapshot", zap.Error(err))
	}

	if err := scraper.Run(ctx, client, st, snap, *startIndex, sinceDate); err != nil {
		logger.Fatal("Scrape aborted", zap.Error(err))
	}

	logger.Info("Scrape complete")
}

// memberSnapshot loads the persisted member snapshot, or rebuilds it from
// the registry document and the account list when asked to (or when no
// snapshot exists yet).
func memberSnapshot(ctx context.Context, client *scraper.Client, cfg *config.Config, registry string, fresh bool) (members.Snapshot, error) {
	logger := logging.GetLogger()

	if !fresh {
		if _, err := os.Stat(cfg.Data.MembersFile); err == nil {
			return members.Load(cfg.Data.MembersFile)
		}
		logger.Info("No member snapshot found, running fresh linkage")
	}

	if registry == "" {
		return nil, fmt.Errorf("fresh linkage requires -registry")
	}
	names, parties, err := members.LoadRegistry(registry)
	if err != nil {
		return nil, err
	}

	accounts, err := client.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}

	linked, err := linkage.NewLinker().Link(names, parties, accounts)
	if err != nil {
		return nil, err
	}

	snap := members.Snapshot(linked)
	if err := members.Save(cfg.Data.MembersFile, snap); err != nil {
		return nil, err
	}
	logger.Info("Member snapshot written",
		zap.String("path", cfg.Data.MembersFile),
		zap.Int("members", len(snap)))
	return snap, nil
}
