package service

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrNotStarted   = errors.New("service not started")
	ErrStartService = errors.New("failed to start service")
	ErrReadExport   = errors.New("failed to read export")
	ErrPersistState = errors.New("failed to persist processed marker")
)
