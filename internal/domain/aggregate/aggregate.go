// Package aggregate combines derived metrics across workouts for period
// and comparison views.
package aggregate

import (
	"context"

	"github.com/loremdai/tennishealth/internal/domain/model"
	"github.com/loremdai/tennishealth/internal/domain/types"
)

// Summarize folds an ordered sequence of sessions into a period summary.
// Cumulative sums over an empty input are zero; the weighted average and
// the peak are undefined, because "no sessions" is not "zero effort".
func Summarize(_ context.Context, sessions []model.Session) model.PeriodSummary {
	s := model.PeriodSummary{
		WorkoutCount:         len(sessions),
		WeightedAvgHeartRate: types.Undefined(),
		PeakHeartRate:        types.Undefined(),
		TotalTRIMP:           types.Undefined(),
	}

	var hrWeighted float64 // sum of avgHR_i x duration_i
	var trimpSum float64
	var trimpDefined bool

	for _, sess := range sessions {
		w := sess.Workout
		s.TotalDurationSeconds += w.DurationSeconds
		s.TotalActiveEnergyKJ += w.ActiveEnergyKJ
		s.TotalDistanceKM += w.DistanceKM
		hrWeighted += w.AvgHeartRate * w.DurationSeconds

		if peak, ok := s.PeakHeartRate.Float(); !ok || w.MaxHeartRate > peak {
			if w.MaxHeartRate > 0 {
				s.PeakHeartRate = types.Defined(w.MaxHeartRate)
			}
		}

		if t, ok := sess.Metrics.TRIMP.Float(); ok {
			trimpSum += t
			trimpDefined = true
		}
	}

	// Duration-weighted average is undefined when cumulative duration is
	// zero, including the empty input.
	s.WeightedAvgHeartRate = types.Ratio(hrWeighted, s.TotalDurationSeconds)

	if trimpDefined {
		s.TotalTRIMP = types.Defined(trimpSum)
	}

	return s
}
