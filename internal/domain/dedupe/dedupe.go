// Package dedupe tracks already-processed workout identifiers so a session
// is analyzed at most once.
package dedupe

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/loremdai/tennishealth/internal/domain/model"
)

// Tracker answers whether a workout was already processed and records
// newly processed workouts together with their generated report.
type Tracker interface {
	// Seen reports whether id was already processed. Absence of any prior
	// state is a non-error first-run condition: nothing is seen.
	Seen(ctx context.Context, id string) bool

	// MarkProcessed records id with the generated report reference and the
	// current timestamp, then persists the whole state document. The
	// processed history is bounded; the oldest identifiers are truncated.
	MarkProcessed(ctx context.Context, id, report string) error

	// Marker returns the latest processed marker, if one exists.
	Marker() (model.ProcessedMarker, bool)

	// Size returns the current length of the processed history.
	Size() int
}

// StateStore is the persistence boundary for the tracker state. The state
// is read fully and written fully; no partial update is ever visible.
type StateStore interface {
	Load(ctx context.Context) (model.TrackerState, bool, error)
	Save(ctx context.Context, state model.TrackerState) error
}

// tracker implements Tracker over a StateStore with an in-memory index of
// the processed history. Single-writer, single-reader semantics; the mutex
// only guards against accidental concurrent use.
type tracker struct {
	mu    sync.Mutex
	store StateStore
	state model.TrackerState
	seen  map[string]struct{}

	maxHistory int
	now        func() time.Time
}

// New creates a Tracker, loading any previously persisted state through
// the store. A missing prior state is a first run, not an error.
func New(ctx context.Context, store StateStore, opts ...Option) (Tracker, error) {
	t := &tracker{
		store:      store,
		maxHistory: defaultMaxHistory,
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(t)
	}

	state, ok, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStateLoad, err)
	}
	if ok {
		t.state = state
	}

	t.seen = make(map[string]struct{}, len(t.state.ProcessedWorkoutIDs)+1)
	for _, id := range t.state.ProcessedWorkoutIDs {
		t.seen[id] = struct{}{}
	}
	if t.state.WorkoutID != "" {
		t.seen[t.state.WorkoutID] = struct{}{}
	}

	return t, nil
}

func (t *tracker) Seen(_ context.Context, id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, ok := t.seen[id]
	return ok
}

func (t *tracker) MarkProcessed(ctx context.Context, id, report string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, dup := t.seen[id]; !dup {
		t.state.ProcessedWorkoutIDs = append(t.state.ProcessedWorkoutIDs, id)
		if excess := len(t.state.ProcessedWorkoutIDs) - t.maxHistory; excess > 0 {
			for _, old := range t.state.ProcessedWorkoutIDs[:excess] {
				delete(t.seen, old)
			}
			t.state.ProcessedWorkoutIDs = append(
				[]string(nil), t.state.ProcessedWorkoutIDs[excess:]...,
			)
		}
		t.seen[id] = struct{}{}
	}

	t.state.Timestamp = t.now()
	t.state.WorkoutID = id
	t.state.AIReport = report

	if err := t.store.Save(ctx, t.state); err != nil {
		return fmt.Errorf("%w: %w", ErrStateSave, err)
	}
	return nil
}

func (t *tracker) Marker() (model.ProcessedMarker, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.state.Marker()
}

func (t *tracker) Size() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.state.ProcessedWorkoutIDs)
}
