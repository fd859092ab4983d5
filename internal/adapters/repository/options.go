// Package repository defines the session store interface and errors.
package repository

import "github.com/loremdai/tennishealth/internal/domain/model"

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithInitialCapacity pre-sizes the backing storage.
func WithInitialCapacity(n int) Option {
	return func(s *MemoryStore) {
		if n > 0 {
			s.sessions = make([]model.Session, 0, n)
		}
	}
}
