// Package main provides the entry point for the ingestion daemon.
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

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/trackside/internal/bots"
	"github.com/yourusername/trackside/internal/combiner"
	"github.com/yourusername/trackside/internal/config"
	"github.com/yourusername/trackside/internal/database"
	"github.com/yourusername/trackside/internal/health"
	"github.com/yourusername/trackside/internal/logger"
	"github.com/yourusername/trackside/internal/metrics"
	"github.com/yourusername/trackside/internal/oddsfeed"
	"github.com/yourusername/trackside/internal/parser"
	"github.com/yourusername/trackside/internal/repository"
	"github.com/yourusername/trackside/internal/scheduler"
	"github.com/yourusername/trackside/internal/scoring"
	"github.com/yourusername/trackside/internal/service"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	var configPath string

	root := &cobra.Command{
		Use:   "trackside-ingest",
		Short: "Race card ingestion and analysis daemon",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "config/config.yaml", "Path to config file")

	root.AddCommand(
		serveCommand(&configPath),
		syncCommand(&configPath),
		versionCommand(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the scheduler, odds polling, and health endpoints",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(*configPath)
		},
	}
}

func syncCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Ingest the configured card directory once and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(*configPath)
		},
	}
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("trackside-ingest %s (%s)\n", version, commit)
		},
	}
}

func runServe(configPath string) error {
	cfg, appLog, err := loadApp(configPath)
	if err != nil {
		return err
	}

	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"log_level":   cfg.App.LogLevel,
	}).Info("Trackside ingestion daemon starting")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := buildDeps(ctx, cfg, appLog)
	if err != nil {
		return err
	}
	defer app.close(appLog)

	sched := scheduler.NewScheduler(app.ingestion, log.New(os.Stdout, "scheduler: ", log.LstdFlags))
	if err := sched.ScheduleCardSync(cfg.Ingestion.Schedule.CardSync, cfg.Ingestion.CardDir); err != nil {
		return fmt.Errorf("failed to schedule card sync: %w", err)
	}
	if cfg.Features.LiveOddsEnabled {
		if err := sched.ScheduleLivePolling(cfg.Ingestion.Schedule.LivePollingIntervalSeconds); err != nil {
			return fmt.Errorf("failed to schedule odds polling: %w", err)
		}
	}
	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer sched.Stop()

	healthSrv := health.NewServer(health.Config{
		ServiceName: cfg.App.Name,
		Version:     version,
		Commit:      commit,
		Port:        fmt.Sprintf("%d", cfg.Health.Port),
		Logger:      appLog,
		DB:          app.db,
	})
	if cfg.Features.LiveOddsEnabled {
		healthSrv.AddCheck("odds_feed", func(ctx context.Context) error {
			return app.ingestion.OddsFeedStatus()
		})

		if cfg.OddsFeed.StreamURL != "" {
			stream := startOddsStream(ctx, cfg, app.ingestion, appLog)
			if stream != nil {
				defer stream.Close()
				healthSrv.AddCheck("odds_stream", func(ctx context.Context) error {
					if !stream.IsConnected() {
						return fmt.Errorf("stream disconnected since %s", stream.LastMessageTime().Format(time.RFC3339))
					}
					return nil
				})
			}
		}
	}
	if err := healthSrv.Start(ctx); err != nil {
		return fmt.Errorf("failed to start health server: %w", err)
	}
	healthSrv.SetReady(true)

	if cfg.Metrics.Enabled {
		startMetricsServer(cfg, appLog)
	}

	appLog.WithFields(logrus.Fields{
		"next_run":     sched.GetNextRun(),
		"bots_enabled": cfg.Features.BotsEnabled,
		"live_odds":    cfg.Features.LiveOddsEnabled,
	}).Info("Daemon running")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	appLog.WithField("signal", sig).Info("Shutdown signal received")

	healthSrv.SetReady(false)
	return nil
}

func runSync(configPath string) error {
	cfg, appLog, err := loadApp(configPath)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Hour)
	defer cancel()

	app, err := buildDeps(ctx, cfg, appLog)
	if err != nil {
		return err
	}
	defer app.close(appLog)

	m, err := app.ingestion.IngestDirectory(ctx, cfg.Ingestion.CardDir)
	if err != nil {
		return fmt.Errorf("card sync failed: %w", err)
	}

	appLog.WithField("metrics", m.String()).Info("Card sync complete")
	return nil
}

// deps bundles the wired dependencies shared by serve and sync
type deps struct {
	db        *database.DB
	ingestion *service.IngestionService
}

func (d *deps) close(appLog *logrus.Logger) {
	if d.db != nil {
		d.db.Close()
		appLog.Info("Database connection closed")
	}
}

func loadApp(configPath string) (*config.Config, *logrus.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			return nil, nil, fmt.Errorf("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			return nil, nil, fmt.Errorf("failed to load secrets: %w", err)
		}
	}

	if err := config.Validate(cfg); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment), nil
}

func buildDeps(ctx context.Context, cfg *config.Config, appLog *logrus.Logger) (*deps, error) {
	d := &deps{}

	var repos *repository.Repositories
	if cfg.Features.PersistEnabled {
		db, err := database.Initialize(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		d.db = db

		repos, err = repository.NewRepositories(db)
		if err != nil {
			d.close(appLog)
			return nil, fmt.Errorf("failed to build repositories: %w", err)
		}
		appLog.Info("Database connection established")
	} else {
		appLog.Warn("Persistence disabled; running without a database")
	}

	var analyzer service.BotAnalyzer
	if cfg.Features.BotsEnabled {
		orchestrator, err := buildBots(cfg, appLog)
		if err != nil {
			d.close(appLog)
			return nil, fmt.Errorf("failed to initialize bots: %w", err)
		}
		analyzer = orchestrator
		appLog.WithField("model", cfg.Bots.Model).Info("Analysis bots initialized")
	}

	comb := combiner.NewCombiner(appLog).WithUnits(
		decimal.NewFromFloat(cfg.Wagering.ExactaUnit),
		decimal.NewFromFloat(cfg.Wagering.TrifectaUnit),
	)
	analysis := service.NewAnalysisService(scoring.NewEngine(appLog), analyzer, comb, repos, appLog)

	var oddsClient service.OddsFetcher
	if cfg.Features.LiveOddsEnabled {
		oddsClient = oddsfeed.NewClient(&cfg.OddsFeed, log.New(os.Stdout, "odds-feed: ", log.LstdFlags))
		appLog.WithField("api_url", cfg.OddsFeed.APIURL).Info("Odds feed client initialized")
	}

	validator := service.NewDataValidator(log.New(os.Stdout, "validator: ", log.LstdFlags))
	d.ingestion = service.NewIngestionService(
		parser.NewParser(appLog), validator, analysis, repos, oddsClient, appLog)

	return d, nil
}

func buildBots(cfg *config.Config, appLog *logrus.Logger) (*bots.Orchestrator, error) {
	client, err := bots.NewGeminiClient(&cfg.Bots, appLog)
	if err != nil {
		return nil, err
	}

	cache := bots.NewAnalysisCache(time.Duration(cfg.Bots.CacheTTLSeconds)*time.Second, cfg.Bots.CacheMaxSize)
	breaker := bots.NewCircuitBreaker(bots.CircuitBreakerConfig{
		MaxFailureCount:   cfg.Bots.MaxFailureCount,
		FailureTimeWindow: time.Duration(cfg.Bots.FailureWindowSeconds) * time.Second,
		CooldownPeriod:    time.Duration(cfg.Bots.CooldownSeconds) * time.Second,
	}, appLog)
	return bots.NewOrchestrator(client, cache, breaker, appLog), nil
}

// startOddsStream connects the push stream and registers the tick
// handler. Polling continues regardless; returns nil when the stream is
// unavailable.
func startOddsStream(ctx context.Context, cfg *config.Config, ingestion *service.IngestionService, appLog *logrus.Logger) *oddsfeed.StreamClient {
	stream := oddsfeed.NewStreamClient(cfg.OddsFeed.StreamURL, cfg.OddsFeed.APIKey,
		log.New(os.Stdout, "odds-stream: ", log.LstdFlags))
	stream.AddHandler(func(ticks []oddsfeed.OddsTick) error {
		return ingestion.HandleOddsTicks(ctx, ticks)
	})

	if err := stream.Connect(ctx); err != nil {
		appLog.WithError(err).Warn("Odds stream unavailable; relying on polling")
		return nil
	}
	if err := stream.Authenticate(ctx); err != nil {
		appLog.WithError(err).Warn("Odds stream authentication failed")
		stream.Close()
		return nil
	}

	tracks, err := ingestion.SubscribedTracks(ctx)
	if err != nil {
		appLog.WithError(err).Warn("Could not determine tracks for stream subscription")
	} else if len(tracks) > 0 {
		if err := stream.SubscribeToTracks(ctx, tracks); err != nil {
			appLog.WithError(err).Warn("Odds stream subscription failed")
		}
	}

	appLog.WithField("stream_url", cfg.OddsFeed.StreamURL).Info("Odds stream connected")
	return stream
}

func startMetricsServer(cfg *config.Config, appLog *logrus.Logger) {
	metrics.InitRegistry()

	mux := http.NewServeMux()
	mux.Handle(cfg.Metrics.Path, metrics.Handler())

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Metrics.Port),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		appLog.WithFields(logrus.Fields{
			"port": cfg.Metrics.Port,
			"path": cfg.Metrics.Path,
		}).Info("Metrics server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.WithError(err).Error("Metrics server error")
		}
	}()
}
