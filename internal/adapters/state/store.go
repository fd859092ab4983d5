package state

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/loremdai/tennishealth/internal/domain/model"
	"github.com/loremdai/tennishealth/pkg/metrics"
)

// File permission constants.
const (
	statePermission = 0o600
	dirPermission   = 0o700
)

// FileStore implements dedupe.StateStore over one JSON file. Reads and
// writes always cover the whole document; the write goes through a
// temporary file and a rename so a crash never leaves a torn state file.
type FileStore struct {
	path string
}

// NewFileStore creates a store persisting to path. Parent directories are
// created on the first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the whole state document. A missing file is the first-run
// condition: no state, no error.
func (s *FileStore) Load(_ context.Context) (model.TrackerState, bool, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.TrackerState{}, false, nil
		}
		return model.TrackerState{}, false, fmt.Errorf("read state %s: %w", s.path, err)
	}

	var state model.TrackerState
	if err := json.Unmarshal(raw, &state); err != nil {
		return model.TrackerState{}, false, fmt.Errorf("%w: %s: %w", ErrCorruptState, s.path, err)
	}
	return state, true, nil
}

// Save overwrites the whole state document.
func (s *FileStore) Save(_ context.Context, state model.TrackerState) error {
	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		metrics.RecordMarkerWriteError()
		return fmt.Errorf("encode state: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), dirPermission); err != nil {
		metrics.RecordMarkerWriteError()
		return fmt.Errorf("create state dir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, statePermission); err != nil {
		metrics.RecordMarkerWriteError()
		return fmt.Errorf("write state %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		metrics.RecordMarkerWriteError()
		return fmt.Errorf("replace state %s: %w", s.path, err)
	}

	metrics.RecordMarkerWrite()
	return nil
}
