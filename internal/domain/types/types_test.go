package types_test

import (
	"encoding/json"
	"testing"

	types "github.com/loremdai/tennishealth/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestValue(t *testing.T) {
	Convey("Given the tagged Value type", t, func() {
		Convey("When constructing a defined value", func() {
			v := types.Defined(48.0)

			Convey("Then it should report as defined and hold the value", func() {
				So(v.IsDefined(), ShouldBeTrue)
				f, ok := v.Float()
				So(ok, ShouldBeTrue)
				So(f, ShouldEqual, 48.0)
			})
		})

		Convey("When constructing an undefined value", func() {
			v := types.Undefined()

			Convey("Then it should report as undefined", func() {
				So(v.IsDefined(), ShouldBeFalse)
				_, ok := v.Float()
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When using the zero Value", func() {
			var v types.Value

			Convey("Then it should be undefined, not zero", func() {
				So(v.IsDefined(), ShouldBeFalse)
			})
		})

		Convey("When a defined value holds zero", func() {
			v := types.Defined(0)

			Convey("Then it should stay distinguishable from undefined", func() {
				So(v.IsDefined(), ShouldBeTrue)
				So(v.Or(-1), ShouldEqual, 0)
			})
		})

		Convey("When falling back with Or", func() {
			So(types.Defined(12.5).Or(0), ShouldEqual, 12.5)
			So(types.Undefined().Or(-1), ShouldEqual, -1)
		})
	})
}

func TestRatio(t *testing.T) {
	Convey("Given the Ratio constructor", t, func() {
		Convey("When the denominator is non-zero", func() {
			v := types.Ratio(140, 175)

			Convey("Then it should hold the quotient", func() {
				So(v.IsDefined(), ShouldBeTrue)
				So(v.Or(0), ShouldAlmostEqual, 0.8)
			})
		})

		Convey("When the denominator is zero", func() {
			v := types.Ratio(160, 0)

			Convey("Then the result should be explicitly undefined", func() {
				So(v.IsDefined(), ShouldBeFalse)
			})
		})

		Convey("When the numerator is zero", func() {
			v := types.Ratio(0, 30)

			Convey("Then the result should be a defined zero", func() {
				So(v.IsDefined(), ShouldBeTrue)
				So(v.Or(-1), ShouldEqual, 0)
			})
		})
	})
}

func TestValueJSON(t *testing.T) {
	Convey("Given JSON round-tripping of Values", t, func() {
		Convey("When marshalling a defined value", func() {
			data, err := json.Marshal(types.Defined(30))

			Convey("Then it should encode as a number", func() {
				So(err, ShouldBeNil)
				So(string(data), ShouldEqual, "30")
			})
		})

		Convey("When marshalling an undefined value", func() {
			data, err := json.Marshal(types.Undefined())

			Convey("Then it should encode as null", func() {
				So(err, ShouldBeNil)
				So(string(data), ShouldEqual, "null")
			})
		})

		Convey("When unmarshalling null", func() {
			var v types.Value
			err := json.Unmarshal([]byte("null"), &v)

			Convey("Then the value should be undefined", func() {
				So(err, ShouldBeNil)
				So(v.IsDefined(), ShouldBeFalse)
			})
		})

		Convey("When unmarshalling a number", func() {
			var v types.Value
			err := json.Unmarshal([]byte("146.67"), &v)

			Convey("Then the value should be defined", func() {
				So(err, ShouldBeNil)
				So(v.Or(0), ShouldAlmostEqual, 146.67)
			})
		})

		Convey("When a MinuteValue carries an undefined metric", func() {
			data, err := json.Marshal(types.MinuteValue{Minute: 7})

			Convey("Then the minute should survive with a null value", func() {
				So(err, ShouldBeNil)
				So(string(data), ShouldEqual, `{"minute":7,"value":null}`)
			})
		})
	})
}

func TestValueString(t *testing.T) {
	Convey("Given the String rendering", t, func() {
		So(types.Defined(48).String(), ShouldEqual, "48")
		So(types.Undefined().String(), ShouldEqual, "undefined")
	})
}
