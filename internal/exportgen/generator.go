// Package exportgen produces synthetic Health Auto Export files with
// plausible tennis sessions, for trying the pipeline without a watch.
package exportgen

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/loremdai/tennishealth/pkg/logger"
)

// Default generation constants.
const (
	defaultWorkouts  = 2
	defaultMinutes   = 45
	defaultSeed      = 1
	exportTimeLayout = "2006-01-02 15:04:05 -0700"
	exportFileLayout = "HealthAutoExport-2006-01-02.json"
)

// Heart-rate simulation bounds (bpm).
const (
	restingHR   = 85.0
	rallyHRMin  = 130.0
	rallyHRSpan = 55.0
	maxHRCeil   = 195.0
)

type quantity struct {
	Qty   float64 `json:"qty"`
	Units string  `json:"units"`
}

type hrSample struct {
	Date string  `json:"date"`
	Avg  float64 `json:"Avg"`
	Min  float64 `json:"Min"`
	Max  float64 `json:"Max"`
}

type countSample struct {
	Date string  `json:"date"`
	Qty  float64 `json:"qty"`
}

type workout struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Start    string  `json:"start"`
	End      string  `json:"end"`
	Duration float64 `json:"duration"`

	AvgHeartRate       quantity `json:"avgHeartRate"`
	MaxHeartRate       quantity `json:"maxHeartRate"`
	ActiveEnergyBurned quantity `json:"activeEnergyBurned"`
	Distance           quantity `json:"distance"`

	HeartRateData     []hrSample    `json:"heartRateData"`
	HeartRateRecovery []hrSample    `json:"heartRateRecovery"`
	StepCount         []countSample `json:"stepCount"`
	ActiveEnergy      []countSample `json:"activeEnergy"`
}

type document struct {
	Data struct {
		Workouts []workout `json:"workouts"`
	} `json:"data"`
}

// Generator builds synthetic export documents.
type Generator struct {
	date     time.Time
	workouts int
	minutes  int
	rng      *rand.Rand
	noise    bool
}

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithDate sets the export day.
func WithDate(d time.Time) Option {
	return func(g *Generator) {
		if !d.IsZero() {
			g.date = d
		}
	}
}

// WithWorkouts sets how many tennis sessions to generate.
func WithWorkouts(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.workouts = n
		}
	}
}

// WithMinutes sets the duration of each session.
func WithMinutes(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.minutes = n
		}
	}
}

// WithSeed fixes the random source for reproducible files.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // deterministic seed for reproducible output
	}
}

// WithNoise adds non-tennis and too-short records, which the pipeline
// should filter out.
func WithNoise() Option {
	return func(g *Generator) {
		g.noise = true
	}
}

// New creates a Generator with default configuration.
func New(opts ...Option) *Generator {
	g := &Generator{
		date:     time.Now(),
		workouts: defaultWorkouts,
		minutes:  defaultMinutes,
		rng:      rand.New(rand.NewSource(defaultSeed)), //nolint:gosec // deterministic seed for reproducible output
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// WriteFile generates the document and writes it into dir under the
// pipeline's expected file name. It returns the file path.
func (g *Generator) WriteFile(ctx context.Context, dir string) (string, error) {
	doc := g.build(ctx)

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode export document: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	path := filepath.Join(dir, g.date.Format(exportFileLayout))
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // export files are not sensitive
		return "", fmt.Errorf("write export file: %w", err)
	}

	logger.Get().Info(ctx, "wrote synthetic export",
		logger.String("path", path),
		logger.Int("workouts", g.workouts),
	)
	return path, nil
}

func (g *Generator) build(_ context.Context) document {
	var doc document

	day := time.Date(g.date.Year(), g.date.Month(), g.date.Day(), 0, 0, 0, 0, g.date.Location())
	start := day.Add(9 * time.Hour)

	for i := 0; i < g.workouts; i++ {
		doc.Data.Workouts = append(doc.Data.Workouts, g.session(start))
		// Next session later the same day with a rest gap.
		start = start.Add(time.Duration(g.minutes)*time.Minute + time.Duration(2+g.rng.Intn(4))*time.Hour)
	}

	if g.noise {
		doc.Data.Workouts = append(doc.Data.Workouts,
			workout{
				ID:       uuid.New().String(),
				Name:     "Outdoor Run",
				Start:    day.Add(7 * time.Hour).Format(exportTimeLayout),
				End:      day.Add(7*time.Hour + 30*time.Minute).Format(exportTimeLayout),
				Duration: 1800,
			},
			workout{
				ID:       uuid.New().String(),
				Name:     "Tennis",
				Start:    day.Add(8 * time.Hour).Format(exportTimeLayout),
				End:      day.Add(8*time.Hour + 2*time.Minute).Format(exportTimeLayout),
				Duration: 120,
			},
		)
	}

	return doc
}

// session produces one tennis workout with per-minute series.
func (g *Generator) session(start time.Time) workout {
	end := start.Add(time.Duration(g.minutes) * time.Minute)

	var (
		hrData   []hrSample
		steps    []countSample
		energy   []countSample
		hrSum    float64
		hrPeak   float64
		totalKJ  float64
		lastRate float64
	)

	for minute := 0; minute < g.minutes; minute++ {
		ts := start.Add(time.Duration(minute)*time.Minute + 30*time.Second)

		// Warm up over the first few minutes, then oscillate with rallies.
		avg := rallyHRMin + g.rng.Float64()*rallyHRSpan
		if minute < 3 {
			avg = restingHR + float64(minute)*15
		}
		peak := avg + 8 + g.rng.Float64()*10
		if peak > maxHRCeil {
			peak = maxHRCeil
		}
		hrData = append(hrData, hrSample{
			Date: ts.Format(exportTimeLayout),
			Avg:  avg,
			Min:  avg - 10 - g.rng.Float64()*5,
			Max:  peak,
		})
		hrSum += avg
		if peak > hrPeak {
			hrPeak = peak
		}
		lastRate = avg

		stepQty := 40 + g.rng.Float64()*50
		steps = append(steps, countSample{Date: ts.Format(exportTimeLayout), Qty: stepQty})

		kj := 25 + g.rng.Float64()*25
		energy = append(energy, countSample{Date: ts.Format(exportTimeLayout), Qty: kj})
		totalKJ += kj
	}

	// Recovery: immediate post-exercise sample, then the one-minute drop.
	recovery := []hrSample{
		{Date: end.Add(5 * time.Second).Format(exportTimeLayout), Avg: lastRate, Min: lastRate - 5, Max: lastRate + 5},
		{Date: end.Add(70 * time.Second).Format(exportTimeLayout), Avg: lastRate - 25 - g.rng.Float64()*10, Min: lastRate - 40, Max: lastRate - 20},
	}

	avgHR := hrSum / float64(g.minutes)
	return workout{
		ID:       uuid.New().String(),
		Name:     "网球",
		Start:    start.Format(exportTimeLayout),
		End:      end.Format(exportTimeLayout),
		Duration: float64(g.minutes) * 60,

		AvgHeartRate:       quantity{Qty: avgHR, Units: "bpm"},
		MaxHeartRate:       quantity{Qty: hrPeak, Units: "bpm"},
		ActiveEnergyBurned: quantity{Qty: totalKJ, Units: "kJ"},
		Distance:           quantity{Qty: 2 + g.rng.Float64()*3, Units: "km"},

		HeartRateData:     hrData,
		HeartRateRecovery: recovery,
		StepCount:         steps,
		ActiveEnergy:      energy,
	}
}
