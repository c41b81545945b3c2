// Package main provides the one-shot card analysis CLI tool.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/trackside/internal/bots"
	"github.com/yourusername/trackside/internal/combiner"
	"github.com/yourusername/trackside/internal/config"
	"github.com/yourusername/trackside/internal/models"
	"github.com/yourusername/trackside/internal/parser"
	"github.com/yourusername/trackside/internal/scoring"
	"github.com/yourusername/trackside/internal/service"
)

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "Path to config file")
		cardPath   = flag.String("card", "", "Path to a DRF card file to analyze")
		useBots    = flag.Bool("bots", false, "Run the analysis bots (requires an API key)")
		jsonOut    = flag.Bool("json", false, "Emit raw JSON results instead of the text report")
		output     = flag.String("output", "", "Write the report to a file instead of stdout")
	)
	flag.Parse()

	if *cardPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	appLog := newLogger()
	cfg := loadConfig(*configPath, appLog)
	ctx := context.Background()

	analysis := buildAnalysis(cfg, *useBots, appLog)
	validator := service.NewDataValidator(log.New(os.Stderr, "validator: ", log.LstdFlags))

	races, err := parser.NewParser(appLog).ParseFile(*cardPath)
	if err != nil {
		appLog.Fatalf("Failed to parse card: %v", err)
	}

	var results []*models.CombinedResult
	for _, race := range races {
		if problems := validator.ValidateRace(race); len(problems) > 0 {
			appLog.Warnf("Skipping %s race %d: %s",
				race.Header.TrackCode, race.Header.RaceNumber, strings.Join(problems, "; "))
			continue
		}
		result, err := analysis.AnalyzeRace(ctx, race)
		if err != nil {
			appLog.Warnf("Analysis failed for %s race %d: %v",
				race.Header.TrackCode, race.Header.RaceNumber, err)
			continue
		}
		results = append(results, result)
	}

	if len(results) == 0 {
		appLog.Fatal("No analyzable races on the card")
	}

	out := io.Writer(os.Stdout)
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			appLog.Fatalf("Failed to create output file: %v", err)
		}
		defer f.Close()
		out = f
	}

	if *jsonOut {
		writeJSON(out, results, appLog)
		return
	}
	fmt.Fprint(out, service.NewReportWriter().WriteCard(races, results))
}

func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)
	return logger
}

func loadConfig(path string, appLog *logrus.Logger) *config.Config {
	cfg, err := config.LoadWithDefaults(path)
	if err != nil {
		appLog.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func buildAnalysis(cfg *config.Config, useBots bool, appLog *logrus.Logger) *service.AnalysisService {
	comb := combiner.NewCombiner(appLog).WithUnits(
		decimal.NewFromFloat(cfg.Wagering.ExactaUnit),
		decimal.NewFromFloat(cfg.Wagering.TrifectaUnit),
	)

	var analyzer service.BotAnalyzer
	if useBots {
		if cfg.Bots.APIKey == "" {
			appLog.Fatal("Bots requested but no API key configured")
		}
		orchestrator, err := buildBots(cfg, appLog)
		if err != nil {
			appLog.Fatalf("Failed to initialize bots: %v", err)
		}
		analyzer = orchestrator
	}

	return service.NewAnalysisService(scoring.NewEngine(appLog), analyzer, comb, nil, appLog)
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

func writeJSON(out io.Writer, results []*models.CombinedResult, appLog *logrus.Logger) {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		appLog.Fatalf("Failed to encode results: %v", err)
	}
}
