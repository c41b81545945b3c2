package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/trackside/internal/logger"
	"github.com/yourusername/trackside/internal/metrics"
	"github.com/yourusername/trackside/internal/models"
	"github.com/yourusername/trackside/internal/oddsfeed"
	"github.com/yourusername/trackside/internal/parser"
	"github.com/yourusername/trackside/internal/repository"
)

// OddsFetcher fetches the current win odds for a track's card.
// Satisfied by oddsfeed.Client.
type OddsFetcher interface {
	FetchOdds(ctx context.Context, trackCode string, date time.Time) ([]oddsfeed.OddsTick, error)
}

// IngestionService loads DRF card files, validates and deduplicates the
// parsed races, persists them, and hands each race to the analysis
// pipeline.
type IngestionService struct {
	parser      *parser.Parser
	validator   *DataValidator
	analysis    *AnalysisService
	repos       *repository.Repositories
	oddsFetcher OddsFetcher
	analysisLog *logger.AnalysisLogger
	log         *logrus.Logger

	feedMu      sync.Mutex
	lastFeedErr error
}

// NewIngestionService creates an ingestion service. repos and
// oddsFetcher may be nil for report-only runs without persistence or a
// live feed.
func NewIngestionService(
	p *parser.Parser,
	validator *DataValidator,
	analysis *AnalysisService,
	repos *repository.Repositories,
	oddsFetcher OddsFetcher,
	log *logrus.Logger,
) *IngestionService {
	return &IngestionService{
		parser:      p,
		validator:   validator,
		analysis:    analysis,
		repos:       repos,
		oddsFetcher: oddsFetcher,
		analysisLog: logger.NewAnalysisLogger(log),
		log:         log,
	}
}

// IngestFile parses one card file and runs the full pipeline for every
// race on it. Returns the combined results in card order along with the
// run metrics. Individual race failures are counted, not fatal.
func (s *IngestionService) IngestFile(ctx context.Context, path string) ([]*models.CombinedResult, *IngestionMetrics, error) {
	start := time.Now()
	m := &IngestionMetrics{}

	races, err := s.parser.ParseFile(path)
	if err != nil {
		metrics.RecordParseFailure()
		return nil, m, fmt.Errorf("failed to parse card file %s: %w", path, err)
	}

	horses := 0
	for _, race := range races {
		horses += race.FieldSize()
	}
	s.analysisLog.LogCardParsed(filepath.Base(path), len(races), horses, 0,
		float64(time.Since(start).Milliseconds()))
	metrics.RecordCardIngested(len(races), time.Since(start).Seconds())

	results := make([]*models.CombinedResult, 0, len(races))
	for _, race := range races {
		m.RecordRace(race.FieldSize())

		result, err := s.ingestRace(ctx, race, m)
		if err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{
				"track":       race.Header.TrackCode,
				"race_number": race.Header.RaceNumber,
			}).Error("Failed to ingest race")
			continue
		}
		if result != nil {
			results = append(results, result)
		}
	}

	metrics.UpdateActiveRaces(float64(m.SuccessfulRaces))
	metrics.UpdateLastCardSync(float64(time.Now().Unix()))

	s.log.WithField("metrics", m.String()).Info("Card ingestion complete")
	return results, m, nil
}

func (s *IngestionService) ingestRace(ctx context.Context, race *models.ParsedRace, m *IngestionMetrics) (*models.CombinedResult, error) {
	if problems := s.validator.ValidateRace(race); len(problems) > 0 {
		m.RecordValidationError()
		return nil, fmt.Errorf("race failed validation: %s", strings.Join(problems, "; "))
	}

	if s.repos != nil {
		existing, err := s.repos.Race.GetByTrackAndDate(ctx, race.Header.TrackCode, race.Header.RaceDate)
		if err != nil && !errors.Is(err, models.ErrNotFound) {
			m.RecordError()
			return nil, fmt.Errorf("duplicate check failed: %w", err)
		}
		if err := s.validator.ValidateRaceUniqueness(race, existing); err != nil {
			m.RecordDuplicate()
			s.log.WithFields(logrus.Fields{
				"track":       race.Header.TrackCode,
				"race_number": race.Header.RaceNumber,
				"race_date":   race.Header.RaceDate.Format("2006-01-02"),
			}).Debug("Skipping duplicate race")
			return nil, nil
		}

		if err := s.repos.Race.Create(ctx, race); err != nil {
			m.RecordError()
			metrics.RecordPersistFailure()
			return nil, fmt.Errorf("failed to persist race: %w", err)
		}
	}

	result, err := s.analysis.AnalyzeRace(ctx, race)
	if err != nil {
		m.RecordError()
		return nil, err
	}

	m.RecordSuccess()
	return result, nil
}

// IngestDirectory ingests every card file in a directory, non-recursive.
// Files with unknown extensions are skipped.
func (s *IngestionService) IngestDirectory(ctx context.Context, dir string) (*IngestionMetrics, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read card directory %s: %w", dir, err)
	}

	total := &IngestionMetrics{}
	files := 0
	for _, entry := range entries {
		if entry.IsDir() || !isCardFile(entry.Name()) {
			continue
		}
		files++

		_, m, err := s.IngestFile(ctx, filepath.Join(dir, entry.Name()))
		if err != nil {
			s.log.WithError(err).WithField("file", entry.Name()).Error("Card file ingestion failed")
			total.RecordError()
			continue
		}

		total.mu.Lock()
		total.TotalRaces += m.TotalRaces
		total.SuccessfulRaces += m.SuccessfulRaces
		total.TotalHorses += m.TotalHorses
		total.Duplicates += m.Duplicates
		total.ValidationErrors += m.ValidationErrors
		total.Errors += m.Errors
		total.mu.Unlock()
	}

	if files == 0 {
		s.log.WithField("dir", dir).Warn("No card files found in directory")
	}

	return total, nil
}

func isCardFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".drf":
		return true
	}
	return false
}

// todayRaceIndex loads today's ingested races keyed by track and race
// number for odds tick resolution.
func (s *IngestionService) todayRaceIndex(ctx context.Context) (map[string]*models.ParsedRace, error) {
	today := time.Now().Truncate(24 * time.Hour)
	races, err := s.repos.Race.GetByDate(ctx, today)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load today's races: %w", err)
	}

	byKey := make(map[string]*models.ParsedRace, len(races))
	for _, race := range races {
		byKey[raceKey(race.Header.TrackCode, race.Header.RaceNumber)] = race
	}
	return byKey, nil
}

// resolveTicks maps provider ticks to odds snapshots. Ticks for races or
// entries we have not ingested are dropped.
func resolveTicks(byKey map[string]*models.ParsedRace, ticks []oddsfeed.OddsTick, source string) []*models.OddsSnapshot {
	snapshots := make([]*models.OddsSnapshot, 0, len(ticks))
	for _, tick := range ticks {
		race, ok := byKey[raceKey(tick.TrackCode, tick.RaceNumber)]
		if !ok || race.HorseByProgram(tick.ProgramNumber) == nil {
			continue
		}
		snapshots = append(snapshots, &models.OddsSnapshot{
			ID:            uuid.New(),
			RaceID:        race.ID,
			ProgramNumber: tick.ProgramNumber,
			DecimalOdds:   tick.DecimalOdds,
			Source:        source,
			TakenAt:       tick.TakenAt,
		})
	}
	return snapshots
}

func (s *IngestionService) storeSnapshots(ctx context.Context, snapshots []*models.OddsSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}
	if err := s.repos.Odds.InsertBatch(ctx, snapshots); err != nil {
		metrics.RecordPersistFailure()
		return fmt.Errorf("failed to store odds snapshots: %w", err)
	}
	s.log.WithField("snapshots", len(snapshots)).Debug("Stored live odds snapshots")
	return nil
}

// PollLiveOdds fetches current odds for every distinct track racing
// today and stores a snapshot per entry.
func (s *IngestionService) PollLiveOdds(ctx context.Context) error {
	if s.oddsFetcher == nil || s.repos == nil {
		return nil
	}

	byKey, err := s.todayRaceIndex(ctx)
	if err != nil {
		return err
	}
	if len(byKey) == 0 {
		return nil
	}

	tracks := make(map[string]bool)
	for _, race := range byKey {
		tracks[race.Header.TrackCode] = true
	}

	today := time.Now().Truncate(24 * time.Hour)

	var wg sync.WaitGroup
	var mu sync.Mutex
	var snapshots []*models.OddsSnapshot
	var feedErr error

	for track := range tracks {
		wg.Add(1)
		go func(track string) {
			defer wg.Done()

			ticks, err := s.oddsFetcher.FetchOdds(ctx, track, today)
			if err != nil {
				s.log.WithError(err).WithField("track", track).Warn("Odds fetch failed")
				mu.Lock()
				feedErr = fmt.Errorf("odds fetch for %s: %w", track, err)
				mu.Unlock()
				return
			}

			resolved := resolveTicks(byKey, ticks, "live_feed")
			mu.Lock()
			snapshots = append(snapshots, resolved...)
			mu.Unlock()
		}(track)
	}
	wg.Wait()

	metrics.UpdateOddsFeedConnected(feedErr == nil)
	s.feedMu.Lock()
	s.lastFeedErr = feedErr
	s.feedMu.Unlock()

	return s.storeSnapshots(ctx, snapshots)
}

// HandleOddsTicks stores a batch of ticks pushed by the stream client.
// Registered as an oddsfeed.TickHandler by the daemon.
func (s *IngestionService) HandleOddsTicks(ctx context.Context, ticks []oddsfeed.OddsTick) error {
	if s.repos == nil || len(ticks) == 0 {
		return nil
	}

	byKey, err := s.todayRaceIndex(ctx)
	if err != nil {
		return err
	}
	return s.storeSnapshots(ctx, resolveTicks(byKey, ticks, "live_stream"))
}

// SubscribedTracks returns the distinct track codes on today's ingested
// cards, for stream subscription.
func (s *IngestionService) SubscribedTracks(ctx context.Context) ([]string, error) {
	if s.repos == nil {
		return nil, nil
	}

	byKey, err := s.todayRaceIndex(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var tracks []string
	for _, race := range byKey {
		if !seen[race.Header.TrackCode] {
			seen[race.Header.TrackCode] = true
			tracks = append(tracks, race.Header.TrackCode)
		}
	}
	return tracks, nil
}

func raceKey(track string, raceNumber int) string {
	return fmt.Sprintf("%s:%d", track, raceNumber)
}

// OddsFeedStatus reports the outcome of the most recent polling pass,
// nil when the feed is healthy. Used by the readiness endpoint.
func (s *IngestionService) OddsFeedStatus() error {
	s.feedMu.Lock()
	defer s.feedMu.Unlock()
	return s.lastFeedErr
}
