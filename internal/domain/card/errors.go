package card

import "errors"

// Sentinel kinds for card generation errors.
var (
	ErrInsufficientEvents = errors.New("not enough events for requested grid size")
	ErrInvalidSize        = errors.New("invalid grid size")
)
