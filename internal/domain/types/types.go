// Package types contains common types used across the application.
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Value is an optional float64 that distinguishes "no data" from zero.
// Derived metrics that cannot be computed (missing series, division by a
// zero denominator) are carried as an undefined Value rather than 0, so
// aggregation and report generation never mistake absence for effect.
//
// The zero Value is undefined.
type Value struct {
	defined bool
	v       float64
}

// Defined returns a Value holding v.
func Defined(v float64) Value {
	return Value{defined: true, v: v}
}

// Undefined returns the explicit "no data" Value.
func Undefined() Value {
	return Value{}
}

// Ratio returns num/den, or an undefined Value when den is zero.
func Ratio(num, den float64) Value {
	if den == 0 {
		return Undefined()
	}
	return Defined(num / den)
}

// IsDefined reports whether the Value holds data.
func (v Value) IsDefined() bool {
	return v.defined
}

// Float returns the held value and whether it is defined.
func (v Value) Float() (float64, bool) {
	return v.v, v.defined
}

// Or returns the held value, or fallback when undefined.
func (v Value) Or(fallback float64) float64 {
	if !v.defined {
		return fallback
	}
	return v.v
}

// String renders the value for logs; undefined renders as "undefined".
func (v Value) String() string {
	if !v.defined {
		return "undefined"
	}
	return fmt.Sprintf("%g", v.v)
}

// MarshalJSON encodes a defined Value as a JSON number and an undefined
// Value as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.defined {
		return []byte("null"), nil
	}
	return json.Marshal(v.v)
}

// UnmarshalJSON decodes null as undefined and a number as defined.
func (v *Value) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*v = Value{}
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("decode value: %w", err)
	}
	*v = Defined(f)
	return nil
}

// MinuteValue pairs a minute offset from the start of a workout with a
// possibly undefined per-minute metric.
type MinuteValue struct {
	Minute int   `json:"minute"`
	Value  Value `json:"value"`
}
