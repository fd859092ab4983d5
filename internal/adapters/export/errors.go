// Package export reads Health Auto Export JSON workout files.
package export

import "errors"

// Sentinel kinds for export file errors. These allow errors.Is/As from
// callers; a missing file for a requested date is reported and skipped,
// never fatal.
var (
	ErrMissingFile     = errors.New("export file missing")
	ErrMalformedExport = errors.New("export file malformed")
)
