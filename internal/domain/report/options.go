package report

import "time"

// Option applies a configuration option to the Aggregator.
type Option func(*Aggregator)

// WithClock sets the time source. Tests use a fixed clock.
func WithClock(clock func() time.Time) Option {
	return func(a *Aggregator) {
		if clock != nil {
			a.clock = clock
		}
	}
}
