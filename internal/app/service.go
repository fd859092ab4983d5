// Package service wires the ingestion pipeline together: read the daily
// export, filter tennis workouts, derive metrics, hand payloads to the
// report generator, and record processed workouts.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/loremdai/tennishealth/internal/adapters/export"
	"github.com/loremdai/tennishealth/internal/adapters/repository"
	"github.com/loremdai/tennishealth/internal/adapters/state"
	"github.com/loremdai/tennishealth/internal/domain/aggregate"
	"github.com/loremdai/tennishealth/internal/domain/dedupe"
	"github.com/loremdai/tennishealth/internal/domain/derive"
	"github.com/loremdai/tennishealth/internal/domain/filter"
	"github.com/loremdai/tennishealth/internal/domain/model"
	"github.com/loremdai/tennishealth/internal/domain/types"
	"github.com/loremdai/tennishealth/internal/report"
	"github.com/loremdai/tennishealth/pkg/logger"
	"github.com/loremdai/tennishealth/pkg/metrics"
)

// MatchReport pairs a processed workout with its generated report text.
type MatchReport struct {
	WorkoutID string
	Text      string
}

// BatchResult summarizes one ProcessDate run.
type BatchResult struct {
	Date              string
	Skipped           bool
	RecordsSeen       int
	Matched           int
	DuplicatesSkipped int
	Processed         int
	ReportFailures    int
	MatchReports      []MatchReport
	PeriodReport      string
	PeriodSummary     *model.PeriodSummary
}

// Service implements the daily batch pipeline.
type Service struct {
	mu sync.RWMutex

	// Core components
	reader    *export.Reader
	filter    *filter.Filter
	deriver   *derive.Deriver
	tracker   dedupe.Tracker
	sessions  repository.Store
	generator report.Generator

	// Configuration
	exportDir   string
	statePath   string
	nameMarkers []string
	minDuration time.Duration
	historySize int
	zoneLower   float64
	zoneUpper   float64
	// Report latency configuration
	reportMinLatency time.Duration
	reportMaxLatency time.Duration

	// Injection points for tests
	stateStore dedupe.StateStore

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithExportDir sets the directory holding daily export files.
func WithExportDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.exportDir = dir
		}
	}
}

// WithStatePath sets the processed-marker state file path.
func WithStatePath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.statePath = path
		}
	}
}

// WithNameMarkers sets the workout names that count as tennis.
func WithNameMarkers(markers []string) Option {
	return func(s *Service) {
		if len(markers) > 0 {
			s.nameMarkers = markers
		}
	}
}

// WithMinDuration sets the minimum workout duration.
func WithMinDuration(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.minDuration = d
		}
	}
}

// WithHistorySize bounds the processed workout ID history.
func WithHistorySize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.historySize = n
		}
	}
}

// WithZoneBounds sets the heart-rate zone boundaries as fractions of max HR.
func WithZoneBounds(lower, upper float64) Option {
	return func(s *Service) {
		if lower > 0 && upper > lower && upper < 1 {
			s.zoneLower = lower
			s.zoneUpper = upper
		}
	}
}

// WithReportLatencyRange sets the simulated report generation latency range.
func WithReportLatencyRange(minLatency, maxLatency time.Duration) Option {
	return func(s *Service) {
		if minLatency > 0 && maxLatency > minLatency {
			s.reportMinLatency = minLatency
			s.reportMaxLatency = maxLatency
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithGenerator replaces the report generator, e.g. with a fake in tests.
func WithGenerator(g report.Generator) Option {
	return func(s *Service) {
		if g != nil {
			s.generator = g
		}
	}
}

// WithStateStore replaces the marker state store, e.g. with a fake in tests.
func WithStateStore(store dedupe.StateStore) Option {
	return func(s *Service) {
		if store != nil {
			s.stateStore = store
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		exportDir:        "exports",
		statePath:        "state/processed_marker.json",
		minDuration:      3 * time.Minute,
		historySize:      200,
		zoneLower:        0.70,
		zoneUpper:        0.85,
		reportMinLatency: 80 * time.Millisecond,
		reportMaxLatency: 150 * time.Millisecond,
		logger:           nil, // Will be replaced when service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting tennis pipeline service...")

	s.reader = export.NewReader(
		export.WithBasePath(s.exportDir),
		export.WithLogger(s.logger),
	)
	s.filter = filter.New(
		filter.WithNameMarkers(s.nameMarkers...),
		filter.WithMinDuration(s.minDuration),
		filter.WithLogger(s.logger),
	)
	s.deriver = derive.New(
		derive.WithZoneBounds(s.zoneLower, s.zoneUpper),
	)

	if s.stateStore == nil {
		s.stateStore = state.NewFileStore(s.statePath)
	}
	tracker, err := dedupe.New(ctx, s.stateStore,
		dedupe.WithMaxHistory(s.historySize),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStartService, err)
	}
	s.tracker = tracker

	s.sessions = repository.NewMemoryStore()

	if s.generator == nil {
		s.generator = report.NewInMemoryGenerator(
			report.WithLatencyRange(s.reportMinLatency, s.reportMaxLatency),
		)
	}

	s.started = true
	s.logger.Info(ctx, "tennis pipeline service started",
		logger.String("exportDir", s.exportDir),
		logger.String("statePath", s.statePath),
		logger.Int("historySize", s.historySize),
	)

	return nil
}

// Stop shuts the service down.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping tennis pipeline service...")
	s.started = false
	s.logger.Info(context.Background(), "tennis pipeline service stopped")
}

// ProcessDate runs the batch pipeline for one day's export file. A missing
// file is a quiet no-op; everything else that stops a single workout is
// logged and skipped so the rest of the batch still runs.
func (s *Service) ProcessDate(ctx context.Context, date time.Time) (BatchResult, error) {
	s.mu.RLock()
	started := s.started
	s.mu.RUnlock()

	result := BatchResult{Date: date.Format("2006-01-02")}
	if !started {
		return result, ErrNotStarted
	}

	batchStart := time.Now()
	defer func() {
		metrics.RecordBatchDuration(float64(time.Since(batchStart).Milliseconds()))
	}()

	records, err := s.reader.ReadDate(ctx, date)
	if err != nil {
		if errors.Is(err, export.ErrMissingFile) {
			s.logger.Info(ctx, "no export file for date, nothing to do",
				logger.String("date", result.Date),
			)
			result.Skipped = true
			return result, nil
		}
		return result, fmt.Errorf("%w: %w", ErrReadExport, err)
	}

	result.RecordsSeen = len(records)
	metrics.RecordRecordsSeen(len(records))

	matched := s.filter.Apply(ctx, records)
	filter.SortByStart(matched)
	result.Matched = len(matched)
	metrics.RecordWorkoutsFiltered(len(matched))

	processed := make([]model.Session, 0, len(matched))
	for _, w := range matched {
		if s.tracker.Seen(ctx, w.ID) {
			result.DuplicatesSkipped++
			metrics.RecordDuplicateSkipped()
			s.logger.Debug(ctx, "workout already processed, skipping",
				logger.String("workoutID", w.ID),
			)
			continue
		}

		m := s.deriver.Derive(ctx, w)
		metrics.RecordUndefinedMetricFields(countUndefined(m))

		text, genErr := s.generateMatchReport(ctx, w, m)
		if genErr != nil {
			// Not marked as processed: the workout is retried on the
			// next run.
			result.ReportFailures++
			s.logger.Error(ctx, "report generation failed",
				logger.String("workoutID", w.ID),
				logger.Error(genErr),
			)
			continue
		}

		sess := model.Session{Workout: w, Metrics: m}
		if addErr := s.sessions.Add(ctx, sess); addErr != nil {
			s.logger.Warn(ctx, "failed to store session",
				logger.String("workoutID", w.ID),
				logger.Error(addErr),
			)
		}

		if markErr := s.tracker.MarkProcessed(ctx, w.ID, text); markErr != nil {
			return result, fmt.Errorf("%w: %w", ErrPersistState, markErr)
		}
		metrics.RecordWorkoutProcessed()
		metrics.UpdateProcessedHistorySize(s.tracker.Size())
		metrics.UpdateSessionsStored(s.sessions.Count(ctx))

		processed = append(processed, sess)
		result.Processed++
		result.MatchReports = append(result.MatchReports, MatchReport{
			WorkoutID: w.ID,
			Text:      text,
		})
	}

	// A day with several matches additionally gets a combined review.
	if len(processed) >= 2 {
		summary := aggregate.Summarize(ctx, processed)
		result.PeriodSummary = &summary
		if text, perErr := s.generatePeriodReport(ctx, date, processed, summary); perErr != nil {
			result.ReportFailures++
			s.logger.Error(ctx, "period report generation failed",
				logger.String("date", result.Date),
				logger.Error(perErr),
			)
		} else {
			result.PeriodReport = text
		}
	}

	s.logger.Info(ctx, "batch complete",
		logger.String("date", result.Date),
		logger.Int("recordsSeen", result.RecordsSeen),
		logger.Int("matched", result.Matched),
		logger.Int("duplicatesSkipped", result.DuplicatesSkipped),
		logger.Int("processed", result.Processed),
		logger.Int("reportFailures", result.ReportFailures),
	)

	return result, nil
}

func (s *Service) generateMatchReport(ctx context.Context, w model.Workout, m model.DerivedMetrics) (string, error) {
	payload, err := report.BuildMatchPayload(w, m)
	if err != nil {
		metrics.RecordReportError()
		return "", err
	}

	start := time.Now()
	text, err := s.generator.Generate(ctx, payload)
	metrics.RecordReportLatency(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordReportError()
		return "", err
	}
	metrics.RecordReportGenerated()
	return text, nil
}

func (s *Service) generatePeriodReport(ctx context.Context, date time.Time, sessions []model.Session, summary model.PeriodSummary) (string, error) {
	payload, err := report.BuildPeriodPayload(date, sessions, summary)
	if err != nil {
		metrics.RecordReportError()
		return "", err
	}

	start := time.Now()
	text, err := s.generator.Generate(ctx, payload)
	metrics.RecordReportLatency(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordReportError()
		return "", err
	}
	metrics.RecordReportGenerated()
	return text, nil
}

// Sessions exposes the stored sessions for inspection.
func (s *Service) Sessions(ctx context.Context) []model.Session {
	return s.sessions.List(ctx)
}

// countUndefined counts the scalar metric fields left without data.
func countUndefined(m model.DerivedMetrics) int {
	n := 0
	for _, v := range []types.Value{m.TRIMP, m.HRR1, m.Zones.Zone1, m.Zones.Zone2, m.Zones.Zone3} {
		if !v.IsDefined() {
			n++
		}
	}
	return n
}
