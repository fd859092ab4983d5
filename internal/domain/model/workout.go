// Package model contains domain models passed between layers.
package model

import "time"

// KilojoulesPerKilocalorie converts active energy at presentation
// boundaries. The core carries energy in kJ throughout; callers convert
// only when rendering.
const KilojoulesPerKilocalorie = 4.184

// HeartRateSample is one reading from a heart-rate series: per-minute
// samples during exercise, or the denser post-exercise recovery series.
type HeartRateSample struct {
	Time time.Time `json:"date"`
	Avg  float64   `json:"Avg"`
	Min  float64   `json:"Min"`
	Max  float64   `json:"Max"`
}

// CountSample is one per-minute quantity reading (step count, active
// energy in kJ).
type CountSample struct {
	Time time.Time `json:"date"`
	Qty  float64   `json:"qty"`
}

// Workout is a single exported workout record. It is read from an export
// file and never mutated; once metrics are derived only the identifier
// survives in persisted state.
type Workout struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	DurationSeconds float64   `json:"duration"`

	AvgHeartRate float64 `json:"avg_heart_rate"`
	MaxHeartRate float64 `json:"max_heart_rate"`
	MinHeartRate float64 `json:"min_heart_rate"`

	ActiveEnergyKJ float64 `json:"active_energy_kj"`
	DistanceKM     float64 `json:"distance_km"`
	SpeedKMH       float64 `json:"speed_kmh"`
	StepCadence    float64 `json:"step_cadence"`

	HeartRateData     []HeartRateSample `json:"heart_rate_data,omitempty"`
	HeartRateRecovery []HeartRateSample `json:"heart_rate_recovery,omitempty"`
	StepCount         []CountSample     `json:"step_count,omitempty"`
	ActiveEnergy      []CountSample     `json:"active_energy,omitempty"`
}

// DurationMinutes returns the workout duration in minutes. The export
// carries seconds; conversion happens here and nowhere else.
func (w Workout) DurationMinutes() float64 {
	return w.DurationSeconds / 60
}

// KilojoulesToKilocalories converts kJ to kcal for presentation.
func KilojoulesToKilocalories(kj float64) float64 {
	return kj / KilojoulesPerKilocalorie
}
