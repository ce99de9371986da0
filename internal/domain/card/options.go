// Package card generates bingo card grids from deck events.
package card

import "math/rand"

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithRand sets the random source used for shuffling. Tests use a seeded
// source for reproducible grids; the default is the shared global source.
func WithRand(rng *rand.Rand) Option {
	return func(g *Generator) {
		if rng != nil {
			g.rng = rng
		}
	}
}
