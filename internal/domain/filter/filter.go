// Package filter selects valid tennis workouts from raw export records.
package filter

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/loremdai/tennishealth/internal/domain/model"
	"github.com/loremdai/tennishealth/pkg/logger"
)

// Default filter configuration constants.
const (
	// defaultMinDuration is the minimum duration for a valid session.
	// Anything at or below this is treated as a warm-up or a mis-tap.
	defaultMinDuration = 180 * time.Second
)

// defaultNameMarkers match both the English and the original Chinese
// workout naming used by the export app.
func defaultNameMarkers() []string {
	return []string{"Tennis", "网球"}
}

// Filter keeps workouts whose name contains a tennis marker and whose
// duration exceeds the configured minimum. It has no side effects beyond
// logging excluded records; output preserves input order.
type Filter struct {
	markers     []string
	minDuration time.Duration
	log         logger.Logger
}

// Option applies a configuration option to the Filter.
type Option func(*Filter)

// WithNameMarkers sets the substrings that identify a tennis workout.
// Empty markers are ignored.
func WithNameMarkers(markers ...string) Option {
	return func(f *Filter) {
		cleaned := make([]string, 0, len(markers))
		for _, m := range markers {
			if m != "" {
				cleaned = append(cleaned, m)
			}
		}
		if len(cleaned) > 0 {
			f.markers = cleaned
		}
	}
}

// WithMinDuration sets the minimum valid session duration.
func WithMinDuration(d time.Duration) Option {
	return func(f *Filter) {
		if d > 0 {
			f.minDuration = d
		}
	}
}

// WithLogger sets a custom logger for the filter.
func WithLogger(log logger.Logger) Option {
	return func(f *Filter) {
		if log != nil {
			f.log = log
		}
	}
}

// New creates a Filter with default configuration.
func New(opts ...Option) *Filter {
	f := &Filter{
		markers:     defaultNameMarkers(),
		minDuration: defaultMinDuration,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Apply returns the sub-sequence of records that are valid tennis sessions.
// Records missing required fields are excluded and logged, never errored.
// Applying the filter to its own output returns the same list.
func (f *Filter) Apply(ctx context.Context, records []model.Workout) []model.Workout {
	out := make([]model.Workout, 0, len(records))
	for _, w := range records {
		if !f.complete(w) {
			if f.log != nil {
				f.log.Warn(ctx, "excluding malformed workout record",
					logger.String("id", w.ID),
					logger.String("name", w.Name),
				)
			}
			continue
		}
		if !f.matchesMarker(w.Name) {
			continue
		}
		if time.Duration(w.DurationSeconds*float64(time.Second)) <= f.minDuration {
			continue
		}
		out = append(out, w)
	}
	return out
}

// complete reports whether a record carries the fields every downstream
// stage depends on.
func (f *Filter) complete(w model.Workout) bool {
	return w.ID != "" && w.Name != "" && !w.Start.IsZero() && w.DurationSeconds > 0
}

func (f *Filter) matchesMarker(name string) bool {
	for _, m := range f.markers {
		if strings.Contains(name, m) {
			return true
		}
	}
	return false
}

// SortByStart orders workouts by start time ascending, preserving the
// relative order of equal timestamps.
func SortByStart(ws []model.Workout) {
	sort.SliceStable(ws, func(i, j int) bool {
		return ws[i].Start.Before(ws[j].Start)
	})
}
