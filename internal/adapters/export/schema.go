package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/loremdai/tennishealth/internal/domain/model"
)

// exportTimeLayout is the timestamp format the export app writes, e.g.
// "2026-03-14 09:00:00 +0800".
const exportTimeLayout = "2006-01-02 15:04:05 -0700"

// exportTime decodes the export's timestamp format, falling back to
// RFC 3339 for hand-written fixtures. Empty and null decode to the zero
// time; structural validation of required fields is the filter's job.
type exportTime struct {
	time.Time
}

func (t *exportTime) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	s := string(bytes.Trim(data, `"`))
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{exportTimeLayout, time.RFC3339} {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognized export timestamp %q", s)
}

// quantity is the export's {qty, units} wrapper around scalar measurements.
type quantity struct {
	Qty   float64 `json:"qty"`
	Units string  `json:"units"`
}

type heartRateSample struct {
	Date exportTime `json:"date"`
	Avg  float64    `json:"Avg"`
	Min  float64    `json:"Min"`
	Max  float64    `json:"Max"`
}

type countSample struct {
	Date exportTime `json:"date"`
	Qty  float64    `json:"qty"`
}

// workoutRecord mirrors one entry of the export's workouts array. Optional
// fields decode to zero values.
type workoutRecord struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Start    exportTime `json:"start"`
	End      exportTime `json:"end"`
	Duration float64    `json:"duration"`

	AvgHeartRate quantity `json:"avgHeartRate"`
	MaxHeartRate quantity `json:"maxHeartRate"`
	HeartRate    struct {
		Avg quantity `json:"avg"`
		Min quantity `json:"min"`
		Max quantity `json:"max"`
	} `json:"heartRate"`

	ActiveEnergyBurned quantity `json:"activeEnergyBurned"`
	Distance           quantity `json:"distance"`
	Speed              quantity `json:"speed"`
	StepCadence        quantity `json:"stepCadence"`

	HeartRateData     []heartRateSample `json:"heartRateData"`
	HeartRateRecovery []heartRateSample `json:"heartRateRecovery"`
	StepCount         []countSample     `json:"stepCount"`
	ActiveEnergy      []countSample     `json:"activeEnergy"`
}

// exportDocument is the top-level shape of one export file.
type exportDocument struct {
	Data struct {
		Workouts []workoutRecord `json:"workouts"`
	} `json:"data"`
}

// toModel converts a raw record into the domain workout. Newer exports
// carry avg/max heart rate both at the top level and nested under
// heartRate; the top-level quantity wins when present.
func (r workoutRecord) toModel() model.Workout {
	avgHR := r.AvgHeartRate.Qty
	if avgHR == 0 {
		avgHR = r.HeartRate.Avg.Qty
	}
	maxHR := r.MaxHeartRate.Qty
	if maxHR == 0 {
		maxHR = r.HeartRate.Max.Qty
	}

	return model.Workout{
		ID:              r.ID,
		Name:            r.Name,
		Start:           r.Start.Time,
		End:             r.End.Time,
		DurationSeconds: r.Duration,
		AvgHeartRate:    avgHR,
		MaxHeartRate:    maxHR,
		MinHeartRate:    r.HeartRate.Min.Qty,
		ActiveEnergyKJ:  r.ActiveEnergyBurned.Qty,
		DistanceKM:      r.Distance.Qty,
		SpeedKMH:        r.Speed.Qty,
		StepCadence:     r.StepCadence.Qty,

		HeartRateData:     toHeartRateSamples(r.HeartRateData),
		HeartRateRecovery: toHeartRateSamples(r.HeartRateRecovery),
		StepCount:         toCountSamples(r.StepCount),
		ActiveEnergy:      toCountSamples(r.ActiveEnergy),
	}
}

func toHeartRateSamples(in []heartRateSample) []model.HeartRateSample {
	if len(in) == 0 {
		return nil
	}
	out := make([]model.HeartRateSample, len(in))
	for i, s := range in {
		out[i] = model.HeartRateSample{Time: s.Date.Time, Avg: s.Avg, Min: s.Min, Max: s.Max}
	}
	return out
}

func toCountSamples(in []countSample) []model.CountSample {
	if len(in) == 0 {
		return nil
	}
	out := make([]model.CountSample, len(in))
	for i, s := range in {
		out[i] = model.CountSample{Time: s.Date.Time, Qty: s.Qty}
	}
	return out
}
