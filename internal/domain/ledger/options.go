package ledger

import "time"

// Option applies a configuration option to the Ledger.
type Option func(*Ledger)

// WithPoints sets the placement -> points table; index 0 is first place.
func WithPoints(points []int) Option {
	return func(l *Ledger) {
		if len(points) > 0 {
			l.points = points
		}
	}
}

// WithClock sets the time source. Tests use a fixed clock.
func WithClock(clock func() time.Time) Option {
	return func(l *Ledger) {
		if clock != nil {
			l.clock = clock
		}
	}
}

// WithIDFunc sets the submission id generator.
func WithIDFunc(newID func() string) Option {
	return func(l *Ledger) {
		if newID != nil {
			l.newID = newID
		}
	}
}
