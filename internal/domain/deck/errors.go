package deck

import "errors"

// Sentinel kinds for deck errors.
var (
	ErrDeckNotFound = errors.New("deck not found")
	ErrNoActiveDeck = errors.New("no active deck")
)
