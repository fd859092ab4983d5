package state_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	state "github.com/loremdai/tennishealth/internal/adapters/state"
	model "github.com/loremdai/tennishealth/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFileStore(t *testing.T) {
	Convey("Given a file store in a temp directory", t, func() {
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "tennis", "state.json")
		s := state.NewFileStore(path)

		Convey("When loading before anything was saved", func() {
			_, ok, err := s.Load(ctx)

			Convey("Then it should be a first run, not an error", func() {
				So(err, ShouldBeNil)
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When saving and reloading a state", func() {
			in := model.TrackerState{
				Timestamp:           time.Date(2026, 3, 14, 11, 0, 0, 0, time.UTC),
				WorkoutID:           "w-1",
				AIReport:            "steady first set, fading second",
				ProcessedWorkoutIDs: []string{"w-0", "w-1"},
			}
			So(s.Save(ctx, in), ShouldBeNil)
			out, ok, err := s.Load(ctx)

			Convey("Then the whole document should round-trip", func() {
				So(err, ShouldBeNil)
				So(ok, ShouldBeTrue)
				So(out.WorkoutID, ShouldEqual, "w-1")
				So(out.AIReport, ShouldEqual, in.AIReport)
				So(out.ProcessedWorkoutIDs, ShouldResemble, in.ProcessedWorkoutIDs)
				So(out.Timestamp.Equal(in.Timestamp), ShouldBeTrue)
			})

			Convey("Then no temporary file should be left behind", func() {
				_, err := os.Stat(path + ".tmp")
				So(os.IsNotExist(err), ShouldBeTrue)
			})
		})

		Convey("When saving twice", func() {
			So(s.Save(ctx, model.TrackerState{WorkoutID: "w-1"}), ShouldBeNil)
			So(s.Save(ctx, model.TrackerState{WorkoutID: "w-2"}), ShouldBeNil)
			out, _, err := s.Load(ctx)

			Convey("Then the newer document should fully replace the older", func() {
				So(err, ShouldBeNil)
				So(out.WorkoutID, ShouldEqual, "w-2")
			})
		})

		Convey("When the file on disk is corrupt", func() {
			So(os.MkdirAll(filepath.Dir(path), 0o700), ShouldBeNil)
			So(os.WriteFile(path, []byte("{broken"), 0o600), ShouldBeNil)
			_, _, err := s.Load(ctx)

			Convey("Then the corrupt sentinel should surface", func() {
				So(errors.Is(err, state.ErrCorruptState), ShouldBeTrue)
			})
		})
	})
}
