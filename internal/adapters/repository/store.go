// Package repository defines the session store interface and errors.
package repository

import (
	"context"

	"github.com/loremdai/tennishealth/internal/domain/model"
)

// Store provides access to the sessions processed so far, ordered by
// start time, for period aggregation and comparison views.
type Store interface {
	// Add records a session. Adding a session with an already-stored
	// workout ID replaces the previous entry.
	Add(ctx context.Context, s model.Session) error

	// List returns all stored sessions ordered by workout start ascending.
	List(ctx context.Context) []model.Session

	// Count returns the number of stored sessions.
	Count(ctx context.Context) int
}
