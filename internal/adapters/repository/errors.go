package repository

import "errors"

// Sentinel kinds for session store errors.
var (
	ErrMissingID = errors.New("session missing workout id")
)
