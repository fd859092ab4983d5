package dedupe

import "time"

// defaultMaxHistory bounds the persisted processed-ID history.
const defaultMaxHistory = 200

// Option applies a configuration option to the tracker.
type Option func(*tracker)

// WithMaxHistory sets the maximum number of processed IDs to retain.
// Values below 1 are ignored.
func WithMaxHistory(n int) Option {
	return func(t *tracker) {
		if n > 0 {
			t.maxHistory = n
		}
	}
}

// WithClock overrides the timestamp source, for tests.
func WithClock(now func() time.Time) Option {
	return func(t *tracker) {
		if now != nil {
			t.now = now
		}
	}
}
