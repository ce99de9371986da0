// Package card generates bingo card grids from deck events.
package card

import (
	"math/rand"

	"github.com/streamkit/bingo/internal/domain/model"
)

// Supported grid dimensions.
const (
	MinSize = 3
	MaxSize = 7
)

// Required returns the number of distinct events needed for a size x size
// grid. Odd sizes reserve the center cell for the FREE sentinel.
func Required(size int) int {
	n := size * size
	if size%2 == 1 {
		n--
	}
	return n
}

// Generator draws grids from event pools. The zero value is not usable;
// construct with New.
type Generator struct {
	rng *rand.Rand
}

// New creates a Generator with configuration options.
func New(opts ...Option) *Generator {
	g := &Generator{}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate draws a size x size grid of distinct events. Events are placed
// row-major after a uniform shuffle; odd sizes get the FREE sentinel at the
// exact center. The returned grid must never be mutated.
func (g *Generator) Generate(events []string, size int) (model.Grid, error) {
	if size < MinSize || size > MaxSize {
		return nil, ErrInvalidSize
	}
	required := Required(size)
	if len(events) < required {
		return nil, ErrInsufficientEvents
	}

	shuffled := make([]string, len(events))
	copy(shuffled, events)
	shuffle := rand.Shuffle
	if g.rng != nil {
		shuffle = g.rng.Shuffle
	}
	shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	center := size / 2
	hasCenter := size%2 == 1

	grid := make(model.Grid, size)
	next := 0
	for row := 0; row < size; row++ {
		grid[row] = make([]string, size)
		for col := 0; col < size; col++ {
			if hasCenter && row == center && col == center {
				grid[row][col] = model.FreeCell
				continue
			}
			grid[row][col] = shuffled[next]
			next++
		}
	}
	return grid, nil
}
