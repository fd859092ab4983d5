package report

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/loremdai/tennishealth/internal/domain/model"
)

// Default generator configuration constants.
const (
	defaultMinLatency = 80 * time.Millisecond
	defaultMaxLatency = 150 * time.Millisecond
	defaultRandomSeed = 42
)

// HRR1 interpretation thresholds (bpm drop at one minute). Labels are a
// presentation concern and therefore live here, next to the collaborator
// boundary, not in the metric core.
const (
	hrr1Excellent = 30.0
	hrr1Normal    = 20.0
)

// Generator turns a payload into free-form report text. The implementation
// may stand in for an external language-model service.
type Generator interface {
	// Generate produces report text, honoring ctx for cancellation.
	Generate(ctx context.Context, p Payload) (string, error)
}

// Option applies a configuration option to the InMemoryGenerator.
type Option func(*InMemoryGenerator)

// WithLatencyRange sets the simulated latency range.
func WithLatencyRange(minLatency, maxLatency time.Duration) Option {
	return func(g *InMemoryGenerator) {
		if minLatency > 0 && maxLatency > minLatency {
			g.minLatency = minLatency
			g.maxLatency = maxLatency
		}
	}
}

// InMemoryGenerator implements Generator with a deterministic rendering of
// the derived metrics and simulated service latency.
type InMemoryGenerator struct {
	minLatency time.Duration
	maxLatency time.Duration
	rng        *rand.Rand
}

// NewInMemoryGenerator creates a generator with configuration options.
func NewInMemoryGenerator(opts ...Option) *InMemoryGenerator {
	g := &InMemoryGenerator{
		minLatency: defaultMinLatency,
		maxLatency: defaultMaxLatency,
		rng:        rand.New(rand.NewSource(defaultRandomSeed)), //nolint:gosec // deterministic seed for reproducible testing
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Generate renders the payload into report text after a simulated delay.
func (g *InMemoryGenerator) Generate(ctx context.Context, p Payload) (string, error) {
	latency := g.minLatency + time.Duration(g.rng.Int63n(int64(g.maxLatency-g.minLatency)))
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("context cancelled: %w", ctx.Err())
	case <-time.After(latency):
	}

	switch p.Kind {
	case KindMatch:
		if p.Match == nil {
			return "", ErrEmptyPayload
		}
		return renderMatch(p.Match), nil
	case KindPeriod:
		if p.Period == nil {
			return "", ErrEmptyPayload
		}
		return renderPeriod(p.Period), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, p.Kind)
	}
}

func renderMatch(doc *MatchDocument) string {
	w := doc.Workout
	m := doc.Metrics

	var b strings.Builder
	fmt.Fprintf(&b, "Match %s (%s): %.1f min", w.ID, doc.Workout.Start.Format(payloadDateLayout), w.DurationMinutes())
	if w.AvgHeartRate > 0 {
		fmt.Fprintf(&b, ", avg HR %.0f bpm", w.AvgHeartRate)
	}
	if w.MaxHeartRate > 0 {
		fmt.Fprintf(&b, " (peak %.0f)", w.MaxHeartRate)
	}
	if w.ActiveEnergyKJ > 0 {
		fmt.Fprintf(&b, ", %.0f kcal", model.KilojoulesToKilocalories(w.ActiveEnergyKJ))
	}
	b.WriteString(".")

	if t, ok := m.TRIMP.Float(); ok {
		fmt.Fprintf(&b, " Load: TRIMP %.1f.", t)
	}
	if z3, ok := m.Zones.Zone3.Float(); ok {
		fmt.Fprintf(&b, " Time above 85%% of max: %.0f%% of sampled minutes.", z3*100)
	}
	if hrr, ok := m.HRR1.Float(); ok {
		fmt.Fprintf(&b, " Recovery: HRR1 %.0f bpm (%s).", hrr, hrr1Label(hrr))
	} else {
		b.WriteString(" Recovery: no usable recovery series.")
	}
	return b.String()
}

func renderPeriod(doc *PeriodDocument) string {
	s := doc.Summary

	var b strings.Builder
	fmt.Fprintf(&b, "Period review %s: %d sessions, %.1f min total", doc.Date, s.WorkoutCount, s.TotalDurationSeconds/60)
	if s.TotalActiveEnergyKJ > 0 {
		fmt.Fprintf(&b, ", %.0f kcal", model.KilojoulesToKilocalories(s.TotalActiveEnergyKJ))
	}
	if s.TotalDistanceKM > 0 {
		fmt.Fprintf(&b, ", %.1f km", s.TotalDistanceKM)
	}
	b.WriteString(".")

	if avg, ok := s.WeightedAvgHeartRate.Float(); ok {
		fmt.Fprintf(&b, " Weighted avg HR %.1f bpm", avg)
		if peak, ok := s.PeakHeartRate.Float(); ok {
			fmt.Fprintf(&b, ", day peak %.0f bpm", peak)
		}
		b.WriteString(".")
	}
	if t, ok := s.TotalTRIMP.Float(); ok {
		fmt.Fprintf(&b, " Cumulative TRIMP %.1f.", t)
	}
	return b.String()
}

func hrr1Label(drop float64) string {
	switch {
	case drop > hrr1Excellent:
		return "excellent"
	case drop >= hrr1Normal:
		return "normal"
	default:
		return "needs attention"
	}
}
