package aggregate_test

import (
	"context"
	"testing"

	aggregate "github.com/loremdai/tennishealth/internal/domain/aggregate"
	model "github.com/loremdai/tennishealth/internal/domain/model"
	"github.com/loremdai/tennishealth/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func session(durationSec, avgHR, maxHR, energyKJ, distKM float64, tr types.Value) model.Session {
	return model.Session{
		Workout: model.Workout{
			DurationSeconds: durationSec,
			AvgHeartRate:    avgHR,
			MaxHeartRate:    maxHR,
			ActiveEnergyKJ:  energyKJ,
			DistanceKM:      distKM,
		},
		Metrics: model.DerivedMetrics{TRIMP: tr},
	}
}

func TestSummarize(t *testing.T) {
	Convey("Given the period aggregator", t, func() {
		ctx := context.Background()

		Convey("When aggregating two workouts with known averages", func() {
			sessions := []model.Session{
				session(3600, 140, 175, 2000, 3.1, types.Defined(48)),
				session(1800, 160, 182, 1200, 1.7, types.Defined(26.4)),
			}
			s := aggregate.Summarize(ctx, sessions)

			Convey("Then the weighted average heart rate should follow the durations", func() {
				// (140x3600 + 160x1800) / (3600+1800) = 146.67
				So(s.WeightedAvgHeartRate.IsDefined(), ShouldBeTrue)
				So(s.WeightedAvgHeartRate.Or(0), ShouldAlmostEqual, 146.6667, 0.001)
			})

			Convey("Then the peak should be the max of per-workout maxima", func() {
				So(s.PeakHeartRate.Or(0), ShouldEqual, 182)
			})

			Convey("Then cumulative sums should add up", func() {
				So(s.WorkoutCount, ShouldEqual, 2)
				So(s.TotalDurationSeconds, ShouldEqual, 5400)
				So(s.TotalActiveEnergyKJ, ShouldEqual, 3200)
				So(s.TotalDistanceKM, ShouldAlmostEqual, 4.8)
				So(s.TotalTRIMP.Or(0), ShouldAlmostEqual, 74.4)
			})
		})

		Convey("When the input is empty", func() {
			s := aggregate.Summarize(ctx, nil)

			Convey("Then sums should be zero and averages undefined", func() {
				So(s.WorkoutCount, ShouldEqual, 0)
				So(s.TotalDurationSeconds, ShouldEqual, 0)
				So(s.TotalActiveEnergyKJ, ShouldEqual, 0)
				So(s.TotalDistanceKM, ShouldEqual, 0)
				So(s.WeightedAvgHeartRate.IsDefined(), ShouldBeFalse)
				So(s.PeakHeartRate.IsDefined(), ShouldBeFalse)
				So(s.TotalTRIMP.IsDefined(), ShouldBeFalse)
			})
		})

		Convey("When no workout has a defined TRIMP", func() {
			sessions := []model.Session{
				session(3600, 140, 175, 2000, 3.1, types.Undefined()),
			}
			s := aggregate.Summarize(ctx, sessions)

			Convey("Then the cumulative TRIMP should stay undefined", func() {
				So(s.TotalTRIMP.IsDefined(), ShouldBeFalse)
			})

			Convey("And the rest of the summary should still compute", func() {
				So(s.WeightedAvgHeartRate.Or(0), ShouldAlmostEqual, 140)
				So(s.TotalDurationSeconds, ShouldEqual, 3600)
			})
		})

		Convey("When only some workouts have a defined TRIMP", func() {
			sessions := []model.Session{
				session(3600, 140, 175, 0, 0, types.Defined(48)),
				session(1800, 150, 180, 0, 0, types.Undefined()),
			}
			s := aggregate.Summarize(ctx, sessions)

			Convey("Then the sum should cover the defined ones", func() {
				So(s.TotalTRIMP.Or(0), ShouldAlmostEqual, 48)
			})
		})

		Convey("When workouts are missing max heart rate", func() {
			sessions := []model.Session{
				session(3600, 140, 0, 0, 0, types.Undefined()),
			}
			s := aggregate.Summarize(ctx, sessions)

			Convey("Then the peak should stay undefined, not zero", func() {
				So(s.PeakHeartRate.IsDefined(), ShouldBeFalse)
			})
		})
	})
}
