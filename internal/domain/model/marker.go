package model

import "time"

// ProcessedMarker records the most recently processed workout and the
// report generated for it. It exists purely for deduplication and report
// recall; the workout itself is not persisted.
type ProcessedMarker struct {
	Timestamp time.Time `json:"timestamp"`
	WorkoutID string    `json:"workout_id"`
	AIReport  string    `json:"ai_report"`
}

// TrackerState is the single persisted state document of the system. It is
// read fully before a batch and overwritten fully after each successful
// processing; no partial updates are ever visible on disk.
type TrackerState struct {
	Timestamp time.Time `json:"timestamp"`
	WorkoutID string    `json:"workout_id"`
	AIReport  string    `json:"ai_report"`

	// ProcessedWorkoutIDs is a bounded, oldest-first history of handled
	// identifiers; the oldest entries are truncated beyond the cap.
	ProcessedWorkoutIDs []string `json:"processed_workout_ids,omitempty"`
}

// Marker returns the latest-marker view of the state and whether one has
// been recorded yet.
func (s TrackerState) Marker() (ProcessedMarker, bool) {
	if s.WorkoutID == "" {
		return ProcessedMarker{}, false
	}
	return ProcessedMarker{
		Timestamp: s.Timestamp,
		WorkoutID: s.WorkoutID,
		AIReport:  s.AIReport,
	}, true
}
