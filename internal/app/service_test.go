package service_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	service "github.com/loremdai/tennishealth/internal/app"
	"github.com/loremdai/tennishealth/internal/report"
	"github.com/loremdai/tennishealth/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.Init(logger.WithOutput(io.Discard)); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

const batchDate = "2025-03-15"

// sampleExport holds two tennis workouts, one non-tennis workout, and one
// too-short tennis recording.
const sampleExport = `{
  "data": {
    "workouts": [
      {
        "id": "match-1",
        "name": "Tennis",
        "start": "2025-03-15 09:00:00 +0000",
        "end": "2025-03-15 09:45:00 +0000",
        "duration": 2700,
        "avgHeartRate": {"qty": 150, "units": "bpm"},
        "maxHeartRate": {"qty": 188, "units": "bpm"},
        "activeEnergyBurned": {"qty": 1673.6, "units": "kJ"},
        "distance": {"qty": 3.2, "units": "km"},
        "heartRateData": [
          {"date": "2025-03-15 09:00:30 +0000", "Avg": 120, "Min": 110, "Max": 130},
          {"date": "2025-03-15 09:01:30 +0000", "Avg": 155, "Min": 150, "Max": 165},
          {"date": "2025-03-15 09:02:30 +0000", "Avg": 170, "Min": 160, "Max": 180}
        ],
        "heartRateRecovery": [
          {"date": "2025-03-15 09:45:05 +0000", "Avg": 160, "Min": 155, "Max": 165},
          {"date": "2025-03-15 09:46:10 +0000", "Avg": 130, "Min": 125, "Max": 140}
        ],
        "stepCount": [
          {"date": "2025-03-15 09:00:30 +0000", "qty": 60},
          {"date": "2025-03-15 09:01:30 +0000", "qty": 72}
        ],
        "activeEnergy": [
          {"date": "2025-03-15 09:00:30 +0000", "qty": 35.5},
          {"date": "2025-03-15 09:01:30 +0000", "qty": 41.2}
        ]
      },
      {
        "id": "match-2",
        "name": "网球",
        "start": "2025-03-15 17:00:00 +0000",
        "end": "2025-03-15 17:30:00 +0000",
        "duration": 1800,
        "avgHeartRate": {"qty": 140, "units": "bpm"},
        "maxHeartRate": {"qty": 175, "units": "bpm"}
      },
      {
        "id": "run-1",
        "name": "Running",
        "start": "2025-03-15 07:00:00 +0000",
        "end": "2025-03-15 07:30:00 +0000",
        "duration": 1800
      },
      {
        "id": "warmup-1",
        "name": "Tennis",
        "start": "2025-03-15 08:55:00 +0000",
        "end": "2025-03-15 08:57:00 +0000",
        "duration": 120
      }
    ]
  }
}`

// failingGenerator fails for a chosen workout and delegates otherwise.
type failingGenerator struct {
	failID string
	inner  report.Generator
}

func (g *failingGenerator) Generate(ctx context.Context, p report.Payload) (string, error) {
	if p.Match != nil && p.Match.Workout.ID == g.failID {
		return "", fmt.Errorf("generator unavailable")
	}
	return g.inner.Generate(ctx, p)
}

func writeExport(t *testing.T, dir, date, content string) {
	t.Helper()
	path := filepath.Join(dir, "HealthAutoExport-"+date+".json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func newService(dir, statePath string, opts ...service.Option) *service.Service {
	base := []service.Option{
		service.WithExportDir(dir),
		service.WithStatePath(statePath),
		service.WithReportLatencyRange(time.Millisecond, 2*time.Millisecond),
	}
	return service.New(append(base, opts...)...)
}

func TestServiceProcessDate(t *testing.T) {
	Convey("Given a service over a day's export", t, func() {
		ctx := context.Background()
		dir := t.TempDir()
		statePath := filepath.Join(t.TempDir(), "marker.json")
		writeExport(t, dir, batchDate, sampleExport)

		svc := newService(dir, statePath)
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		date, _ := time.Parse("2006-01-02", batchDate)

		Convey("When processing the date", func() {
			result, err := svc.ProcessDate(ctx, date)

			Convey("Then only complete tennis workouts should be processed", func() {
				So(err, ShouldBeNil)
				So(result.Skipped, ShouldBeFalse)
				So(result.RecordsSeen, ShouldEqual, 4)
				So(result.Matched, ShouldEqual, 2)
				So(result.Processed, ShouldEqual, 2)
				So(result.DuplicatesSkipped, ShouldEqual, 0)
			})

			Convey("Then each processed workout should have a report", func() {
				So(err, ShouldBeNil)
				So(result.MatchReports, ShouldHaveLength, 2)
				So(result.MatchReports[0].WorkoutID, ShouldEqual, "match-1")
				So(result.MatchReports[1].WorkoutID, ShouldEqual, "match-2")
				So(result.MatchReports[0].Text, ShouldNotBeEmpty)
			})

			Convey("Then two processed matches should yield a period review", func() {
				So(err, ShouldBeNil)
				So(result.PeriodReport, ShouldNotBeEmpty)
				So(result.PeriodReport, ShouldContainSubstring, "2 sessions")
				So(result.PeriodSummary, ShouldNotBeNil)
				So(result.PeriodSummary.WorkoutCount, ShouldEqual, 2)
				So(result.PeriodSummary.TotalDurationSeconds, ShouldEqual, 4500)
			})

			Convey("Then the sessions should be stored in start order", func() {
				So(err, ShouldBeNil)
				sessions := svc.Sessions(ctx)
				So(sessions, ShouldHaveLength, 2)
				So(sessions[0].Workout.ID, ShouldEqual, "match-1")
			})

			Convey("And reprocessing the same date should skip everything", func() {
				So(err, ShouldBeNil)
				again, err := svc.ProcessDate(ctx, date)
				So(err, ShouldBeNil)
				So(again.DuplicatesSkipped, ShouldEqual, 2)
				So(again.Processed, ShouldEqual, 0)
				So(again.PeriodReport, ShouldBeEmpty)
			})
		})

		Convey("When processing a date with no export file", func() {
			missing, _ := time.Parse("2006-01-02", "2025-03-16")
			result, err := svc.ProcessDate(ctx, missing)

			Convey("Then it should be a quiet no-op", func() {
				So(err, ShouldBeNil)
				So(result.Skipped, ShouldBeTrue)
				So(result.Processed, ShouldEqual, 0)
			})
		})
	})
}

func TestServiceRestartPersistence(t *testing.T) {
	Convey("Given a processed batch and a restarted service", t, func() {
		ctx := context.Background()
		dir := t.TempDir()
		statePath := filepath.Join(t.TempDir(), "marker.json")
		writeExport(t, dir, batchDate, sampleExport)
		date, _ := time.Parse("2006-01-02", batchDate)

		first := newService(dir, statePath)
		So(first.Start(ctx), ShouldBeNil)
		result, err := first.ProcessDate(ctx, date)
		So(err, ShouldBeNil)
		So(result.Processed, ShouldEqual, 2)
		first.Stop()

		Convey("When a new service loads the same state file", func() {
			second := newService(dir, statePath)
			So(second.Start(ctx), ShouldBeNil)
			defer second.Stop()

			result, err := second.ProcessDate(ctx, date)

			Convey("Then previously processed workouts should stay skipped", func() {
				So(err, ShouldBeNil)
				So(result.DuplicatesSkipped, ShouldEqual, 2)
				So(result.Processed, ShouldEqual, 0)
			})
		})
	})
}

func TestServiceReportFailure(t *testing.T) {
	Convey("Given a generator that fails for one workout", t, func() {
		ctx := context.Background()
		dir := t.TempDir()
		statePath := filepath.Join(t.TempDir(), "marker.json")
		writeExport(t, dir, batchDate, sampleExport)
		date, _ := time.Parse("2006-01-02", batchDate)

		gen := &failingGenerator{
			failID: "match-1",
			inner: report.NewInMemoryGenerator(
				report.WithLatencyRange(time.Millisecond, 2*time.Millisecond),
			),
		}
		svc := newService(dir, statePath, service.WithGenerator(gen))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When processing the date", func() {
			result, err := svc.ProcessDate(ctx, date)

			Convey("Then the failed workout should be skipped, not marked", func() {
				So(err, ShouldBeNil)
				So(result.ReportFailures, ShouldEqual, 1)
				So(result.Processed, ShouldEqual, 1)
				So(result.MatchReports[0].WorkoutID, ShouldEqual, "match-2")
			})

			Convey("And the failed workout should be retried on the next run", func() {
				So(err, ShouldBeNil)
				gen.failID = ""
				again, err := svc.ProcessDate(ctx, date)
				So(err, ShouldBeNil)
				So(again.Processed, ShouldEqual, 1)
				So(again.MatchReports[0].WorkoutID, ShouldEqual, "match-1")
				So(again.DuplicatesSkipped, ShouldEqual, 1)
			})
		})
	})
}

func TestServiceNotStarted(t *testing.T) {
	Convey("Given a service that was never started", t, func() {
		svc := service.New()

		Convey("When processing a date", func() {
			_, err := svc.ProcessDate(context.Background(), time.Now())

			Convey("Then it should fail with the not-started sentinel", func() {
				So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			})
		})
	})
}
