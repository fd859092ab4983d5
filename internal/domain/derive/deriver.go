// Package derive computes summary and time-series-derived metrics for a
// single workout.
//
// Every quotient with a zero or missing denominator comes back as an
// undefined types.Value; nothing in this package panics, errors, or
// substitutes zero for absent data.
package derive

import (
	"context"
	"sort"
	"time"

	"github.com/loremdai/tennishealth/internal/domain/model"
	"github.com/loremdai/tennishealth/internal/domain/types"
)

// Default zone boundaries as fractions of the workout's max heart rate.
const (
	defaultZoneLower = 0.70
	defaultZoneUpper = 0.85

	// recoveryOffset is how far into the recovery series the HRR1
	// comparison sample must sit.
	recoveryOffset = time.Minute
)

// Deriver computes DerivedMetrics from a valid workout.
type Deriver struct {
	zoneLower float64
	zoneUpper float64
}

// Option applies a configuration option to the Deriver.
type Option func(*Deriver)

// WithZoneBounds sets the zone boundaries as fractions of max heart rate.
// Values outside 0 < lower < upper < 1 are ignored.
func WithZoneBounds(lower, upper float64) Option {
	return func(d *Deriver) {
		if lower > 0 && upper > lower && upper < 1 {
			d.zoneLower = lower
			d.zoneUpper = upper
		}
	}
}

// New creates a Deriver with default configuration.
func New(opts ...Option) *Deriver {
	d := &Deriver{
		zoneLower: defaultZoneLower,
		zoneUpper: defaultZoneUpper,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Derive recomputes the full set of metrics for one workout. The input is
// consumed in seconds and kJ; minutes are an internal conversion and kcal
// is left to presentation boundaries.
func (d *Deriver) Derive(_ context.Context, w model.Workout) model.DerivedMetrics {
	hr := minuteSeries(w.Start, w.HeartRateData, func(s model.HeartRateSample) (time.Time, float64) { return s.Time, s.Avg })
	steps := minuteSeries(w.Start, w.StepCount, func(s model.CountSample) (time.Time, float64) { return s.Time, s.Qty })
	energy := minuteSeries(w.Start, w.ActiveEnergy, func(s model.CountSample) (time.Time, float64) { return s.Time, s.Qty })

	return model.DerivedMetrics{
		TRIMP:          trimp(w),
		Zones:          d.zoneShares(hr, w.MaxHeartRate),
		HRR1:           hrr1(w.HeartRateRecovery),
		HRCadenceRatio: alignedRatios(hr, steps),
		EnergyPerStep:  alignedRatios(energy, steps),
		SampledMinutes: len(hr),
	}
}

// trimp is duration_minutes x avgHR/maxHR. Undefined when the workout is
// missing any of the three inputs.
func trimp(w model.Workout) types.Value {
	if w.DurationSeconds <= 0 || w.AvgHeartRate <= 0 || w.MaxHeartRate <= 0 {
		return types.Undefined()
	}
	return types.Defined(w.DurationMinutes() * w.AvgHeartRate / w.MaxHeartRate)
}

// zoneShares classifies each sampled minute by its share of max heart rate
// and returns each zone's fraction of the sampled minutes. Minutes without
// a sample are ignored; the defined fractions sum to 1.
func (d *Deriver) zoneShares(hr map[int]float64, maxHR float64) model.ZoneShares {
	if len(hr) == 0 || maxHR <= 0 {
		return model.ZoneShares{
			Zone1: types.Undefined(),
			Zone2: types.Undefined(),
			Zone3: types.Undefined(),
		}
	}

	var z1, z2, z3 int
	for _, avg := range hr {
		switch rel := avg / maxHR; {
		case rel < d.zoneLower:
			z1++
		case rel > d.zoneUpper:
			z3++
		default:
			z2++
		}
	}

	total := float64(len(hr))
	return model.ZoneShares{
		Zone1: types.Defined(float64(z1) / total),
		Zone2: types.Defined(float64(z2) / total),
		Zone3: types.Defined(float64(z3) / total),
	}
}

// hrr1 is the drop from the heart rate at exercise end (the first recovery
// sample) to the first recovery sample at least one minute later. A series
// too short to cover the window yields undefined, never zero.
func hrr1(recovery []model.HeartRateSample) types.Value {
	if len(recovery) < 2 {
		return types.Undefined()
	}
	end := recovery[0]
	for _, s := range recovery[1:] {
		if s.Time.Sub(end.Time) >= recoveryOffset {
			return types.Defined(end.Avg - s.Avg)
		}
	}
	return types.Undefined()
}

// minuteSeries buckets samples by whole-minute offset from the workout
// start. A later sample in the same minute wins; samples before the start
// are dropped.
func minuteSeries[S any](start time.Time, samples []S, read func(S) (time.Time, float64)) map[int]float64 {
	out := make(map[int]float64, len(samples))
	for _, s := range samples {
		t, v := read(s)
		if t.Before(start) {
			continue
		}
		out[int(t.Sub(start)/time.Minute)] = v
	}
	return out
}

// alignedRatios divides numerator by denominator for the minutes present
// in both series, aligned by minute offset with no interpolation of
// missing minutes. A zero denominator yields an undefined point.
func alignedRatios(num, den map[int]float64) []types.MinuteValue {
	minutes := make([]int, 0, len(num))
	for m := range num {
		if _, ok := den[m]; ok {
			minutes = append(minutes, m)
		}
	}
	if len(minutes) == 0 {
		return nil
	}
	sort.Ints(minutes)

	out := make([]types.MinuteValue, 0, len(minutes))
	for _, m := range minutes {
		out = append(out, types.MinuteValue{
			Minute: m,
			Value:  types.Ratio(num[m], den[m]),
		})
	}
	return out
}
