package dedupe

import "errors"

// Sentinel kinds for tracker state errors.
var (
	ErrStateLoad = errors.New("load tracker state failed")
	ErrStateSave = errors.New("save tracker state failed")
)
