package port

import (
	"context"
	"time"
)

// RateLimitStore tracks request attempts per key inside a sliding window.
type RateLimitStore interface {
	// RecordAttempt registers an attempt at the given time.
	RecordAttempt(ctx context.Context, identifier string, at time.Time) error
	// CountAttempts reports attempts inside the window ending at reference.
	CountAttempts(ctx context.Context, identifier string, window time.Duration, reference time.Time) (int, error)
	// TrimWindow drops attempts older than the window relative to reference.
	TrimWindow(ctx context.Context, identifier string, window time.Duration, reference time.Time) error
	// OldestAttempt returns the oldest attempt still inside the window, and
	// whether one exists.
	OldestAttempt(ctx context.Context, identifier string, window time.Duration, reference time.Time) (time.Time, bool, error)
}
