package model

import "github.com/loremdai/tennishealth/internal/domain/types"

// ZoneShares is the share of sampled minutes spent in each heart-rate
// intensity band, expressed as fractions that sum to 1 over the minutes
// that actually carried a sample. All three are undefined when the workout
// has no usable heart-rate series.
type ZoneShares struct {
	Zone1 types.Value `json:"zone1"`
	Zone2 types.Value `json:"zone2"`
	Zone3 types.Value `json:"zone3"`
}

// DerivedMetrics holds the computed fields for one workout. It is a value
// object: recomputed fully each time, never partially updated.
type DerivedMetrics struct {
	// TRIMP is duration_minutes x avgHR/maxHR.
	TRIMP types.Value `json:"trimp"`

	// Zones is the heart-rate zone distribution over per-minute samples.
	Zones ZoneShares `json:"zones"`

	// HRR1 is the heart-rate drop from exercise end to one minute into
	// the recovery series.
	HRR1 types.Value `json:"hrr1"`

	// HRCadenceRatio is heart rate over step count per minute, for minutes
	// present in both series.
	HRCadenceRatio []types.MinuteValue `json:"hr_cadence_ratio,omitempty"`

	// EnergyPerStep is active energy (kJ) over step count per minute.
	EnergyPerStep []types.MinuteValue `json:"energy_per_step,omitempty"`

	// SampledMinutes counts the minutes with a heart-rate sample.
	SampledMinutes int `json:"sampled_minutes"`
}

// Session pairs a workout with its derived metrics for aggregation and
// report generation.
type Session struct {
	Workout Workout        `json:"workout"`
	Metrics DerivedMetrics `json:"metrics"`
}

// PeriodSummary combines metrics across an ordered set of workouts for
// period and comparison views.
type PeriodSummary struct {
	WorkoutCount         int         `json:"workout_count"`
	TotalDurationSeconds float64     `json:"total_duration_seconds"`
	WeightedAvgHeartRate types.Value `json:"weighted_avg_heart_rate"`
	PeakHeartRate        types.Value `json:"peak_heart_rate"`
	TotalActiveEnergyKJ  float64     `json:"total_active_energy_kj"`
	TotalDistanceKM      float64     `json:"total_distance_km"`
	TotalTRIMP           types.Value `json:"total_trimp"`
}
