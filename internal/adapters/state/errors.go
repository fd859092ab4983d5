// Package state persists the tracker state as a single JSON document.
package state

import "errors"

// Sentinel kinds for state file errors.
var (
	ErrCorruptState = errors.New("state file corrupt")
)
